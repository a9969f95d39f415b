// Package crypto provides password hashing, verification and strength
// scoring for panel accounts.
package crypto

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"golang.org/x/crypto/bcrypt"
)

// HashPasswordAsBcrypt generates a bcrypt hash of the given password.
func HashPasswordAsBcrypt(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash verifies a password against a stored hash. Hashes
// imported from the legacy browser build ("h_" prefix) verify through the
// weak fold function; everything else is bcrypt.
func CheckPasswordHash(hash, password string) bool {
	if IsLegacyHash(hash) {
		return LegacyHash(password) == hash
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// IsLegacyHash reports whether hash came from the legacy fold function.
func IsLegacyHash(hash string) bool {
	return strings.HasPrefix(hash, "h_")
}

// LegacyHash reproduces the original client-side hash: a 31x fold of
// UTF-16 code units into a signed 32-bit accumulator, rendered as
// "h_" + base36(abs(hash)) + "_" + length. Not collision resistant and
// unsalted; kept only so imported accounts can still log in. New hashes
// are always bcrypt.
func LegacyHash(password string) string {
	var h int32
	units := utf16.Encode([]rune(password))
	for _, u := range units {
		h = h*31 + int32(u)
	}
	abs := int64(h)
	if abs < 0 {
		abs = -abs
	}
	return "h_" + strconv.FormatInt(abs, 36) + "_" + strconv.Itoa(len(units))
}
