package crypto

import "strings"

const specialChars = `!@#$%^&*(),.?":{}|<>`

// StrengthResult is the outcome of scoring a candidate password.
type StrengthResult struct {
	Score int             `json:"score"`
	Tier  string          `json:"tier"`
	Rules map[string]bool `json:"rules"`
}

// MinRegisterScore is the lowest score accepted at registration.
const MinRegisterScore = 3

// PasswordStrength scores a password 0-5, one point per satisfied rule:
// length >= 8, uppercase, lowercase, digit, special character.
func PasswordStrength(password string) StrengthResult {
	rules := map[string]bool{
		"length":  len(password) >= 8,
		"upper":   strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }),
		"lower":   strings.ContainsFunc(password, func(r rune) bool { return r >= 'a' && r <= 'z' }),
		"number":  strings.ContainsFunc(password, func(r rune) bool { return r >= '0' && r <= '9' }),
		"special": strings.ContainsAny(password, specialChars),
	}

	score := 0
	for _, ok := range rules {
		if ok {
			score++
		}
	}

	tier := "very weak"
	switch {
	case score >= 5:
		tier = "strong"
	case score >= 4:
		tier = "good"
	case score >= 3:
		tier = "fair"
	case score >= 2:
		tier = "weak"
	}

	return StrengthResult{Score: score, Tier: tier, Rules: rules}
}
