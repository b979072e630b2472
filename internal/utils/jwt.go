package utils // package utils provides helper functions for token creation and hashing

import (
	"errors" // errors defines the sentinel returned for malformed claims
	"time"   // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// ErrInvalidToken is returned by ParseAuthToken for any token that fails
// signature, algorithm, expiry or claim checks.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity carried by an auth token.  UserID is the hex
// ObjectId of the user; IsAdmin is the role claim checked by admin-only
// routes.
type Claims struct {
	UserID  string
	IsAdmin bool
}

// AuthToken represents a signed JWT along with its expiry.  Exp is the zero
// time when the token never expires.
type AuthToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time, zero for no expiry
}

// NewAuthToken builds and signs an HS256 JWT for a user.  The token carries
// sub (user id), isAdmin and iat.  When ttlMin is positive an exp claim is
// added as well; a zero ttlMin issues a token without expiry.
func NewAuthToken(secret string, c Claims, ttlMin int) (AuthToken, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":     c.UserID,
		"isAdmin": c.IsAdmin,
		"iat":     now.Unix(),
	}
	var exp time.Time
	if ttlMin > 0 {
		exp = now.Add(time.Duration(ttlMin) * time.Minute)
		claims["exp"] = exp.Unix()
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AuthToken{}, err
	}
	return AuthToken{Token: signed, Exp: exp}, nil
}

// ParseAuthToken verifies the signature (HMAC only) and expiry of raw and
// extracts the identity claims.
func ParseAuthToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Type assert the signing method to HMAC; reject others.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	sub, _ := mc["sub"].(string)
	if sub == "" {
		return Claims{}, ErrInvalidToken
	}
	admin, _ := mc["isAdmin"].(bool)
	return Claims{UserID: sub, IsAdmin: admin}, nil
}
