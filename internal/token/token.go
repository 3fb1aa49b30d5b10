// Package token issues and verifies the opaque bearer credential carried in
// the auth-token header. The credential binds {userId, isAdmin} and nothing
// else; there are no refresh semantics.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalid = errors.New("invalid or expired token")

type Claims struct {
	UserID  int64 `json:"userId"`
	IsAdmin bool  `json:"isAdmin"`
	jwt.RegisteredClaims
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: 7 * 24 * time.Hour}
}

func (i *Issuer) Issue(userID int64, isAdmin bool) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify returns the embedded claims or ErrInvalid. Rejections include
// expiry, signature mismatch and non-HMAC signing methods.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return i.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalid
	}
	return &claims, nil
}
