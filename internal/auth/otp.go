package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// OTPLength is the number of digits in a one-time code.
const OTPLength = 6

// GenerateOTP returns a 6-digit numeric code from a CSPRNG.
// The first digit is never zero so the code survives naive integer handling
// on the client.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// GenerateOTPExpiry returns the expiry instant for a code issued now.
func GenerateOTPExpiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return time.Now().Add(ttl)
}

func IsOTPExpired(expiry time.Time, now time.Time) bool {
	return now.After(expiry)
}
