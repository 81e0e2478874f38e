package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"
)

// Method is the plugin interface for an authentication method.
// Acquire returns the full header value to inject (e.g. "Bearer ..." or
// "Basic ..."). Header placement is handled by the caller via HeaderSet.
type Method interface {
	Acquire(ctx context.Context) (value string, err error)
}

// Factory builds a Method from a loosely-typed spec map, typically by
// decoding it into a concrete config struct.
type Factory func(spec map[string]interface{}) (Method, error)

var (
	providersMu sync.RWMutex
	providers   = map[string]Factory{}
)

func normalizeKey(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Register registers an auth provider factory under a type key
// (e.g. "oauth2", "basic", "static"). The key is normalized to lower-case.
func Register(typ string, f Factory) {
	key := normalizeKey(typ)
	if key == "" || f == nil {
		return
	}
	providersMu.Lock()
	providers[key] = f
	providersMu.Unlock()
}

// Acquire builds a Method for the provider type from spec and acquires the
// header value once. The caller decides where to store it.
func Acquire(ctx context.Context, typ string, spec map[string]interface{}) (string, error) {
	providersMu.RLock()
	f, ok := providers[normalizeKey(typ)]
	providersMu.RUnlock()
	if !ok {
		return "", errors.New("auth: unsupported provider type: " + typ)
	}
	m, err := f(spec)
	if err != nil {
		return "", err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return m.Acquire(ctx)
}

// Built-in provider registrations
func init() {
	Register("static", func(spec map[string]interface{}) (Method, error) {
		var c StaticConfig
		if err := mapstructure.Decode(spec, &c); err != nil {
			return nil, err
		}
		return staticMethod{c: c}, nil
	})
	Register("basic", func(spec map[string]interface{}) (Method, error) {
		var c BasicConfig
		if err := mapstructure.Decode(spec, &c); err != nil {
			return nil, err
		}
		return basicMethod{c: c}, nil
	})
	Register("oauth2", func(spec map[string]interface{}) (Method, error) {
		var c ClientCredentialsConfig
		if err := mapstructure.Decode(spec, &c); err != nil {
			return nil, err
		}
		return clientCredentialsMethod{c: c}, nil
	})
}
