package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// ErrNotFound is returned when a secret has no value in its source
var ErrNotFound = errors.New("secret not found")

// Source names where secrets are read from
type Source string

const (
	SourceEnvironment Source = "environment"
	SourceVault       Source = "vault"
	// SourceAuto picks the vault in deployed environments that have one configured
	SourceAuto Source = "auto"
)

// ResolveSource turns SourceAuto into a concrete source. Unknown values are
// treated as the environment.
func ResolveSource(source Source, environment string, vaultConfigured bool) Source {
	switch source {
	case SourceVault:
		return SourceVault
	case SourceAuto:
		deployed := environment == "staging" || environment == "production"
		if deployed && vaultConfigured {
			return SourceVault
		}
	}
	return SourceEnvironment
}

// Getter reads a single named secret
type Getter interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// Resolver looks secrets up in a backing store. An environment variable
// with a value always wins over the store.
type Resolver struct {
	store  Getter
	logger *zap.Logger
}

func NewResolver(store Getter, logger *zap.Logger) *Resolver {
	return &Resolver{store: store, logger: logger}
}

// Lookup returns the value of envName when set, otherwise the secret from
// the store. Without a store only the environment is consulted.
func (r *Resolver) Lookup(ctx context.Context, secretName, envName string) (string, error) {
	if value := os.Getenv(envName); value != "" {
		r.logger.Debug("secret overridden by environment", zap.String("env", envName))
		return value, nil
	}
	if r.store == nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, envName)
	}
	return r.store.GetSecret(ctx, secretName)
}
