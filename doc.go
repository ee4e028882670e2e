// Package envault is a typed facade over environment configuration.
// It merges the process environment (or an injected mapping) with an
// optional .env file and an optional HashiCorp Vault KV v2 overlay,
// and hands values back as strings, ints, floats, bools, or lists.
//
// The zero-setup path binds to the process environment and the nearest
// .env file:
//
//	env := envault.Must(envault.New(nil))
//	port := env.GetIntWithDefault("PORT", 8080)
//	debug := env.IsEnabled("DEBUG")
//
// or, through the package-level instance:
//
//	dsn := envault.Get("DATABASE_URL")
//
// Values are resolved in a fixed precedence order: a value written via
// Set, then the env file merge (which never replaces an existing key
// unless Config.Overwrite is set), then the Vault overlay, then the
// caller's default. References like ${HOST} or $HOST inside a value
// are expanded against the mapping at read time, recursively up to
// Config.ExpandDepth; references that cannot be resolved stay literal
// unless Config.ExpandMissingToEmpty is set, and cycles cut off at the
// last fully-resolved partial string.
//
// Get and Lookup are pure reads. GetOrSet materializes its default
// into the mapping on miss, so later reads and Environ snapshots see
// it.
//
// The Vault overlay is strictly additive. When Config.Vault is set,
// keys absent from the mapping are fetched from the KV v2 engine at
// {BasePath}/{key} (one network read per secret path, cached for the
// life of the instance). Authentication or connection failures during
// construction disable the overlay and are logged; they never fail New.
//
// An Env does no internal locking. Callers that share one instance
// across goroutines synchronize around it.
package envault
