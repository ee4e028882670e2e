// Package vaultkv reads and writes secrets in HashiCorp Vault's KV v2
// engine. Each secret fetched is cached whole, keyed by path, for the
// life of the client, so sibling keys in one secret cost a single
// network read.
package vaultkv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hashicorp/vault/api"
	"github.com/rs/zerolog"
)

// ErrNoToken reports that no token was found in the config, the
// VAULT_TOKEN variable, or the token file.
var ErrNoToken = errors.New("vaultkv: no token")

// Config holds the connection and secret-layout options for a Client.
type Config struct {
	// Address is the Vault server URL. Empty falls back to VAULT_ADDR.
	Address string

	// Token authenticates the session. Empty falls back to VAULT_TOKEN,
	// then to the token file.
	Token string

	// TokenFile is read when no token is set any other way
	// (default: ~/.vault-token).
	TokenFile string

	// CACert is a PEM file path used to verify the server certificate.
	CACert string

	// Insecure skips server certificate verification.
	Insecure bool

	// Mount is the KV v2 mount point (default: "secret").
	Mount string

	// BasePath prefixes key lookups (default: "environment").
	BasePath string

	// PathFunc overrides the secret path computed for a key lookup.
	// The default is BasePath + "/" + key; a constant PathFunc puts
	// every key in one shared secret.
	PathFunc func(key string) string

	// DisableCache turns off the per-path secret cache.
	DisableCache bool

	// Logger receives fetch events (default: no output).
	Logger zerolog.Logger
}

// Client is an authenticated KV v2 session with a read-through cache.
type Client struct {
	api      *api.Client
	config   Config
	pathFunc func(string) string
	log      zerolog.Logger

	mu    sync.RWMutex
	cache map[string]map[string]string
}

// New connects to Vault and verifies the token with a self-lookup.
// Address and token fall back to the standard VAULT_ADDR and
// VAULT_TOKEN variables, then to the token file.
func New(config Config) (*Client, error) {
	apiConfig := api.DefaultConfig()
	if config.Address != "" {
		apiConfig.Address = config.Address
	}
	if config.CACert != "" || config.Insecure {
		tlsConfig := &api.TLSConfig{CACert: config.CACert, Insecure: config.Insecure}
		if err := apiConfig.ConfigureTLS(tlsConfig); err != nil {
			return nil, fmt.Errorf("vaultkv: tls setup: %w", err)
		}
	}

	client, err := api.NewClient(apiConfig)
	if err != nil {
		return nil, fmt.Errorf("vaultkv: client setup: %w", err)
	}
	if err := resolveToken(client, config); err != nil {
		return nil, err
	}

	if config.Mount == "" {
		config.Mount = "secret"
	}
	if config.BasePath == "" {
		config.BasePath = "environment"
	}

	c := &Client{
		api:    client,
		config: config,
		log:    config.Logger,
		cache:  make(map[string]map[string]string),
	}
	c.pathFunc = config.PathFunc
	if c.pathFunc == nil {
		c.pathFunc = func(key string) string {
			return config.BasePath + "/" + key
		}
	}

	if _, err := client.Logical().Read("auth/token/lookup-self"); err != nil {
		return nil, fmt.Errorf("vaultkv: token check: %w", err)
	}

	return c, nil
}

// resolveToken picks the session token: explicit config, then whatever
// the api client read from VAULT_TOKEN, then the token file.
func resolveToken(client *api.Client, config Config) error {
	if config.Token != "" {
		client.SetToken(config.Token)
		return nil
	}
	if client.Token() != "" {
		return nil
	}

	path := config.TokenFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ErrNoToken
		}
		path = filepath.Join(home, ".vault-token")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ErrNoToken
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return ErrNoToken
	}
	client.SetToken(token)
	return nil
}

// Get reads the secret at path and returns the value stored under key.
// An absent secret and an absent key both report found=false with no
// error; errors are transport or permission failures only.
func (c *Client) Get(ctx context.Context, path, key string) (string, bool, error) {
	data, err := c.secretData(ctx, path)
	if err != nil || data == nil {
		return "", false, err
	}
	value, ok := data[key]
	return value, ok, nil
}

// LookupKey resolves key to a secret path with the configured PathFunc
// and reads its value there.
func (c *Client) LookupKey(ctx context.Context, key string) (string, bool, error) {
	return c.Get(ctx, c.pathFunc(key), key)
}

// Put writes data as a new version of the secret at path and drops any
// cached copy so the next read refetches.
func (c *Client) Put(ctx context.Context, path string, data map[string]string) error {
	payload := map[string]interface{}{"data": data}
	if _, err := c.api.Logical().WriteWithContext(ctx, c.dataPath(path), payload); err != nil {
		return fmt.Errorf("vaultkv: write %s: %w", path, err)
	}

	c.mu.Lock()
	delete(c.cache, path)
	c.mu.Unlock()

	c.log.Debug().Str("path", path).Int("keys", len(data)).Msg("wrote secret")
	return nil
}

// ClearCache drops every cached secret.
func (c *Client) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]map[string]string)
}

// secretData returns the flattened data mapping of the secret at path,
// or nil when the secret does not exist. Successful fetches are cached
// by path; misses are not, so a secret written later becomes visible.
func (c *Client) secretData(ctx context.Context, path string) (map[string]string, error) {
	if !c.config.DisableCache {
		c.mu.RLock()
		data, ok := c.cache[path]
		c.mu.RUnlock()
		if ok {
			CacheHits.Inc()
			return data, nil
		}
	}

	secret, err := c.api.Logical().ReadWithContext(ctx, c.dataPath(path))
	if err != nil {
		Reads.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("vaultkv: read %s: %w", path, err)
	}
	if secret == nil {
		Reads.WithLabelValues("miss").Inc()
		return nil, nil
	}

	data := flattenSecret(secret)
	Reads.WithLabelValues("fetched").Inc()

	if !c.config.DisableCache {
		c.mu.Lock()
		c.cache[path] = data
		c.mu.Unlock()
	}
	c.log.Debug().Str("path", path).Int("keys", len(data)).Msg("fetched secret")
	return data, nil
}

// dataPath maps a logical secret path onto the KV v2 data endpoint.
func (c *Client) dataPath(path string) string {
	return c.config.Mount + "/data/" + strings.TrimPrefix(path, "/")
}

// flattenSecret pulls the inner data block out of a KV v2 read and
// stringifies every value.
func flattenSecret(secret *api.Secret) map[string]string {
	inner, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return map[string]string{}
	}
	data := make(map[string]string, len(inner))
	for k, v := range inner {
		if s, ok := v.(string); ok {
			data[k] = s
		} else {
			data[k] = fmt.Sprintf("%v", v)
		}
	}
	return data
}
