// Package main generates bearer tokens for calling a local devportal.
// Tokens are signed with the development key and do not work in production.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"devportal/pkg/platform/middleware/auth"
)

const (
	// Matches the JWT_SIGNING_KEY default in internal/platform/config.
	devSigningKey   = "dev-secret-key-change-in-production"
	defaultAudience = "devportal"
	defaultTokenTTL = time.Hour
)

type tokenOutput struct {
	Token     string `json:"token"`
	Actor     string `json:"actor"`
	ExpiresIn string `json:"expires_in"`
	Header    string `json:"header"`
}

func main() {
	email := flag.String("email", "dev@example.com", "Actor email recorded on decisions and credential changes")
	subject := flag.String("sub", "", "Subject claim. Generated if empty.")
	audience := flag.String("aud", defaultAudience, "Audience claim")
	key := flag.String("key", devSigningKey, "HS256 signing key")
	ttl := flag.Duration("ttl", defaultTokenTTL, "Token time-to-live")
	asJSON := flag.Bool("json", false, "Output as JSON")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, `tokengen - generate bearer tokens for a local devportal

Usage:
  tokengen [flags]

Examples:
  tokengen -email approver@example.com
  curl -H "Authorization: Bearer $(tokengen)" http://localhost:8080/access-requests

Flags:`)
		flag.PrintDefaults()
	}
	flag.Parse()

	sub := *subject
	if sub == "" {
		sub = uuid.NewString()
	}
	now := time.Now()
	claims := auth.Claims{
		Email: *email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Audience:  jwt.ClaimStrings{*audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(*ttl)),
			ID:        uuid.NewString(),
		},
	}
	token, err := auth.SignHMAC(*key, claims)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	if !*asJSON {
		fmt.Println(token)
		return
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tokenOutput{
		Token:     token,
		Actor:     claims.Actor(),
		ExpiresIn: ttl.String(),
		Header:    "Authorization: Bearer <token>",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
		os.Exit(1)
	}
}
