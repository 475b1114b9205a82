package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateParseRoundTrip(t *testing.T) {
	tm := NewTokenManager("s3cret", "autoblog", time.Minute)
	tok, exp, err := tm.Generate("u1", "admin")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatal("expiry in the past")
	}
	c, err := tm.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.UserID != "u1" || c.Role != "admin" {
		t.Fatalf("claims = %+v", c)
	}
}

func TestParseRejects(t *testing.T) {
	tm := NewTokenManager("s3cret", "autoblog", time.Minute)
	otherSecret, _, _ := NewTokenManager("other", "autoblog", time.Minute).Generate("u1", "user")
	otherIssuer, _, _ := NewTokenManager("s3cret", "someone-else", time.Minute).Generate("u1", "user")
	expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "autoblog",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString([]byte("s3cret"))

	cases := map[string]string{
		"garbage":      "not-a-jwt",
		"other_secret": otherSecret,
		"other_issuer": otherIssuer,
		"expired":      expired,
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := tm.Parse(tok); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}
