package crypto

import "testing"

func TestLegacyHash(t *testing.T) {
	tests := []struct {
		password string
		expected string
	}{
		{"admin", "h_1j67nz_5"},
		{"Admin@123", "h_xhqjdt_9"},
		{"password123", "h_n7qt9z_11"},
		{"abc", "h_22ci_3"},
		{"", "h_0_0"},
	}

	for _, tt := range tests {
		if got := LegacyHash(tt.password); got != tt.expected {
			t.Errorf("LegacyHash(%q) = %q, want %q", tt.password, got, tt.expected)
		}
	}
}

func TestIsLegacyHash(t *testing.T) {
	if !IsLegacyHash("h_1j67nz_5") {
		t.Error("expected h_ prefixed value to be detected as legacy")
	}
	if IsLegacyHash("$2a$10$abcdefghijklmnopqrstuv") {
		t.Error("bcrypt hash misdetected as legacy")
	}
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPasswordAsBcrypt("Admin@123")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPasswordHash(hash, "Admin@123") {
		t.Error("bcrypt hash did not verify")
	}
	if CheckPasswordHash(hash, "Admin@124") {
		t.Error("wrong password verified against bcrypt hash")
	}

	legacy := LegacyHash("password123")
	if !CheckPasswordHash(legacy, "password123") {
		t.Error("legacy hash did not verify")
	}
	if CheckPasswordHash(legacy, "password124") {
		t.Error("wrong password verified against legacy hash")
	}
}
