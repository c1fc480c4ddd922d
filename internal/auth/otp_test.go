package auth

import (
	"testing"
	"time"
)

func TestGenerateOTP(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateOTP()
		if err != nil {
			t.Fatalf("GenerateOTP: %v", err)
		}
		if len(code) != OTPLength {
			t.Fatalf("len(%q) = %d, want %d", code, len(code), OTPLength)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("non-digit %q in code %q", r, code)
			}
		}
		if code[0] == '0' {
			t.Fatalf("code %q has leading zero", code)
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("50 generated codes were all identical")
	}
}

func TestIsOTPExpired(t *testing.T) {
	now := time.Now()
	expiry := now.Add(5 * time.Minute)

	tests := []struct {
		name    string
		at      time.Time
		expired bool
	}{
		{"one minute before expiry", now.Add(4 * time.Minute), false},
		{"exactly at expiry", expiry, false},
		{"one minute after expiry", now.Add(6 * time.Minute), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOTPExpired(expiry, tt.at); got != tt.expired {
				t.Errorf("IsOTPExpired at %v = %v, want %v", tt.at, got, tt.expired)
			}
		})
	}
}

func TestGenerateOTPExpiryDefault(t *testing.T) {
	before := time.Now()
	expiry := GenerateOTPExpiry(0)
	if d := expiry.Sub(before); d < 4*time.Minute || d > 6*time.Minute {
		t.Errorf("default expiry window = %v, want ~5m", d)
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	// Min cost keeps the test fast; the work factor is config-driven in prod.
	hash, err := HashPassword("Sup3rSecret", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Sup3rSecret" {
		t.Fatal("hash equals plaintext")
	}
	if !VerifyPassword("Sup3rSecret", hash) {
		t.Error("VerifyPassword rejected the correct password")
	}
	if VerifyPassword("wrong-password", hash) {
		t.Error("VerifyPassword accepted a wrong password")
	}
}
