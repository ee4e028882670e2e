package envault

import (
	"context"

	"github.com/presbrey/envault/vaultkv"
	"github.com/rs/zerolog"
)

// secretSource is the read side of the secret overlay. A no-op
// implementation stands in when Vault is unconfigured or its setup
// failed.
type secretSource interface {
	Lookup(key string) (string, bool)
}

type noSecrets struct{}

func (noSecrets) Lookup(string) (string, bool) { return "", false }

// vaultSource adapts a vaultkv.Client to the overlay read path. Network
// and permission errors degrade to a miss.
type vaultSource struct {
	client *vaultkv.Client
	log    zerolog.Logger
}

func (s *vaultSource) Lookup(key string) (string, bool) {
	value, ok, err := s.client.LookupKey(context.Background(), key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("vault lookup failed")
		return "", false
	}
	return value, ok
}

// VaultEnabled reports whether the secret overlay survived
// construction and serves lookups.
func (e *Env) VaultEnabled() bool {
	_, ok := e.vault.(*vaultSource)
	return ok
}

// Vault returns the overlay client, or nil when the overlay is
// disabled.
func (e *Env) Vault() *vaultkv.Client {
	if s, ok := e.vault.(*vaultSource); ok {
		return s.client
	}
	return nil
}
