package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is the client's view of a session credential.
//
// SignedString is the compact header.payload.signature form that is sent in
// the Authorization header. RegisteredClaims are filled by a best-effort,
// unverified decode of the payload and are only used for the optional
// client-side expiry check; the backend stays the authority on validity.
type Token struct {
	jwt.RegisteredClaims

	// SignedString is the raw bearer credential.
	SignedString string `json:"-"`
}

// String returns the raw bearer credential.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// Expired reports whether the exp claim is set and not after now.
// A token without an exp claim never expires on the client side.
func (t *Token) Expired(now time.Time) bool {
	if t.ExpiresAt == nil {
		return false
	}
	return !now.Before(t.ExpiresAt.Time)
}
