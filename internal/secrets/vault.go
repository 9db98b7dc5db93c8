package secrets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"go.uber.org/zap"
)

// Vault reads secrets from Azure Key Vault. Values are cached for ttl when
// ttl is positive.
type Vault struct {
	client *azsecrets.Client
	ttl    time.Duration
	logger *zap.Logger

	mu    sync.Mutex
	cache map[string]vaultEntry
}

type vaultEntry struct {
	value   string
	fetched time.Time
}

// NewVault connects to https://<name>.vault.azure.net using
// DefaultAzureCredential: environment, managed identity, then Azure CLI.
func NewVault(name string, ttl time.Duration, logger *zap.Logger) (*Vault, error) {
	if name == "" {
		return nil, errors.New("key vault name is required")
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	vaultURL := fmt.Sprintf("https://%s.vault.azure.net/", name)
	client, err := azsecrets.NewClient(vaultURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Key Vault client: %w", err)
	}

	logger.Info("Key Vault client initialized",
		zap.String("vault_url", vaultURL),
		zap.Duration("cache_ttl", ttl),
	)

	return &Vault{
		client: client,
		ttl:    ttl,
		logger: logger,
		cache:  make(map[string]vaultEntry),
	}, nil
}

// GetSecret returns the latest version of a secret. A secret that does not
// exist in the vault yields ErrNotFound.
func (v *Vault) GetSecret(ctx context.Context, name string) (string, error) {
	if value, ok := v.cached(name); ok {
		return value, nil
	}

	resp, err := v.client.GetSecret(ctx, name, "", nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return "", fmt.Errorf("failed to read secret %s: %w", name, err)
	}
	if resp.Value == nil {
		return "", fmt.Errorf("%w: %s has no value", ErrNotFound, name)
	}

	if v.ttl > 0 {
		v.mu.Lock()
		v.cache[name] = vaultEntry{value: *resp.Value, fetched: time.Now()}
		v.mu.Unlock()
	}

	v.logger.Debug("secret read from Key Vault", zap.String("secret", name))
	return *resp.Value, nil
}

func (v *Vault) cached(name string) (string, bool) {
	if v.ttl <= 0 {
		return "", false
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	entry, ok := v.cache[name]
	if !ok || time.Since(entry.fetched) > v.ttl {
		return "", false
	}
	return entry.value, true
}
