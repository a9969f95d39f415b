package crypto

import "testing"

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		score    int
		tier     string
	}{
		{"Abc12345!", 5, "strong"},
		{"Abcdefg1", 4, "good"},
		{"Abc1", 3, "fair"},
		{"abcdefgh", 2, "weak"},
		{"abc", 1, "very weak"},
		{"", 0, "very weak"},
	}

	for _, tt := range tests {
		result := PasswordStrength(tt.password)
		if result.Score != tt.score {
			t.Errorf("PasswordStrength(%q).Score = %d, want %d", tt.password, result.Score, tt.score)
		}
		if result.Tier != tt.tier {
			t.Errorf("PasswordStrength(%q).Tier = %q, want %q", tt.password, result.Tier, tt.tier)
		}
	}
}

func TestPasswordStrengthRules(t *testing.T) {
	result := PasswordStrength("Abc12345!")
	for rule, ok := range result.Rules {
		if !ok {
			t.Errorf("rule %s not satisfied by a strong password", rule)
		}
	}

	result = PasswordStrength("abc")
	if !result.Rules["lower"] {
		t.Error("lower rule should hold")
	}
	if result.Rules["length"] || result.Rules["upper"] || result.Rules["number"] || result.Rules["special"] {
		t.Error("only the lower rule should hold for abc")
	}
}
