// Package token issues and verifies the signed bearer tokens used by the API.
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalid covers every verification failure: bad signature, wrong algorithm,
// malformed payload, or expired token.
var ErrInvalid = errors.New("invalid token")

// Claims is the JWT payload: the user id in the registered subject plus the email.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 tokens with a shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func New(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{secret: secret, ttl: ttl}
}

// Issue returns a signed token binding the user id and email, expiring after the configured lifetime.
func (i *Issuer) Issue(userID int, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify parses and validates tokenStr and returns the embedded user id and email.
// Only HS256 is accepted.
func (i *Issuer) Verify(tokenStr string) (int, string, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return 0, "", ErrInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return 0, "", ErrInvalid
	}
	userID, err := strconv.Atoi(claims.Subject)
	if err != nil || userID <= 0 {
		return 0, "", ErrInvalid
	}
	return userID, claims.Email, nil
}
