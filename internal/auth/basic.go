package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
)

// BasicConfig holds configuration for Basic authentication.
type BasicConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type basicMethod struct{ c BasicConfig }

// Acquire returns a Basic auth header value constructed from Username and Password.
func (m basicMethod) Acquire(_ context.Context) (string, error) {
	u := strings.TrimSpace(m.c.Username)
	p := strings.TrimSpace(m.c.Password)
	if u == "" || p == "" {
		return "", errors.New("basic: username and password are required")
	}
	cred := base64.StdEncoding.EncodeToString([]byte(u + ":" + p))
	return "Basic " + cred, nil
}

// StaticConfig carries a pre-acquired token value, optionally without a
// scheme, in which case Bearer is assumed.
type StaticConfig struct {
	Token  string `mapstructure:"token"`
	Scheme string `mapstructure:"scheme"`
}

type staticMethod struct{ c StaticConfig }

func (m staticMethod) Acquire(_ context.Context) (string, error) {
	tok := strings.TrimSpace(m.c.Token)
	if tok == "" {
		return "", errors.New("static: token is required")
	}
	// Token already carrying a scheme is passed through untouched.
	if strings.Contains(tok, " ") {
		return tok, nil
	}
	scheme := strings.TrimSpace(m.c.Scheme)
	if scheme == "" {
		scheme = "Bearer"
	}
	return scheme + " " + tok, nil
}
