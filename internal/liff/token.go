// Package liff verifies LIFF ID tokens presented by the mini-app
// during registration.
package liff

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer is the fixed issuer of LINE Login ID tokens.
const Issuer = "https://access.line.me"

// Profile carries the identity claims the registration path needs.
type Profile struct {
	LineID string // "sub" claim, the stable LINE user ID
	Name   string // display name, may be empty
}

// Verifier checks LIFF ID tokens. Channels configured for symmetric
// signing issue HS256 tokens keyed with the channel secret.
type Verifier struct {
	channelID     string
	channelSecret string
}

func NewVerifier(channelID, channelSecret string) *Verifier {
	return &Verifier{channelID: channelID, channelSecret: channelSecret}
}

// Enabled reports whether token verification is configured. When it is
// not, registration falls back to the caller-supplied LINE ID.
func (v *Verifier) Enabled() bool {
	return v != nil && v.channelID != "" && v.channelSecret != ""
}

// Verify validates the token signature, issuer, audience and expiry,
// and extracts the sender profile.
func (v *Verifier) Verify(tokenString string) (*Profile, error) {
	token, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(v.channelSecret), nil
		},
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(v.channelID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid ID token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.New("missing sub claim")
	}
	name, _ := claims["name"].(string)

	return &Profile{LineID: sub, Name: name}, nil
}
