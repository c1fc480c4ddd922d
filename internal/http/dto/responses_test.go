package dto

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRegisterDataShape(t *testing.T) {
	b, err := json.Marshal(RegisterData{
		Token:                     "jwt",
		User:                      map[string]string{"id": "u1"},
		RequiresEmailVerification: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"token"`, `"user"`, `"requires_email_verification":true`} {
		if !strings.Contains(string(b), key) {
			t.Errorf("payload missing %s: %s", key, b)
		}
	}
}
