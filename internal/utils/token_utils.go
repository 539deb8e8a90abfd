package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims carries the staff identity and clinic scope in issued tokens.
type AuthClaims struct {
	ClinicID string `json:"clinicID"`
	jwt.RegisteredClaims
}

// CreateJWT issues a signed clinic-scoped token for a staff member.
func CreateJWT(staffID, clinicID, secret, issuer string, expiry time.Duration, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(expiry)
	claims := AuthClaims{
		ClinicID: clinicID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   staffID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}
