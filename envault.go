package envault

import (
	"os"
	"strings"
	"sync"

	"github.com/presbrey/envault/dotenv"
	"github.com/presbrey/envault/vaultkv"
	"github.com/rs/zerolog"
)

// Config holds the construction-time options for an Env. It is not
// consulted again after New returns.
type Config struct {
	// FileName is the env file to search for. Empty means the DOTENV
	// process variable when set, otherwise ".env".
	FileName string

	// SearchPaths lists directories to probe for FileName, in order.
	SearchPaths []string

	// SearchPath is a platform path-list alternative to SearchPaths
	// (":"-separated on Unix). Its directories are probed after
	// SearchPaths.
	SearchPath string

	// Parents extends the search from each directory through its
	// ancestors, nearest first.
	Parents bool

	// SkipWorkingDir leaves the working directory out of the search.
	// It is otherwise probed before SearchPaths.
	SkipWorkingDir bool

	// Overwrite lets env file entries replace values already present
	// in the mapping.
	Overwrite bool

	// Update writes mutations through to the live process environment
	// when Environ is nil, and mutates an injected Environ in place
	// instead of copying it.
	Update bool

	// Errors propagates missing-file and parse failures out of New and
	// ReadEnv. They are logged and ignored otherwise.
	Errors bool

	// Environ seeds the mapping. Nil takes a snapshot of the process
	// environment.
	Environ map[string]string

	// ExpandDepth bounds recursive reference expansion (default 10).
	ExpandDepth int

	// ExpandMissingToEmpty substitutes "" for references to missing
	// keys instead of leaving them literal.
	ExpandMissingToEmpty bool

	// DisableExpand turns off reference expansion in read results.
	DisableExpand bool

	// Logger receives merge and degradation events (default: no output).
	Logger zerolog.Logger

	// Vault enables the secret overlay. Lookups that miss the mapping
	// fall through to Vault's KV v2 engine. A failed Vault setup
	// disables the overlay instead of failing construction.
	Vault *vaultkv.Config
}

// DefaultConfig returns a Config with the library defaults: the ".env"
// file name (or DOTENV when set), working-directory search, a hermetic
// copy of the process environment, and no Vault overlay.
func DefaultConfig() *Config {
	name := os.Getenv("DOTENV")
	if name == "" {
		name = ".env"
	}
	return &Config{
		FileName:    name,
		ExpandDepth: defaultExpandDepth,
		Logger:      zerolog.Nop(),
	}
}

// Env is a typed facade over an environment mapping, with optional env
// file ingestion at construction and an optional Vault secret overlay
// consulted on miss. An Env performs no internal locking; callers
// sharing one across goroutines synchronize around it.
type Env struct {
	config       *Config
	values       map[string]string
	vault        secretSource
	processWrite bool
	log          zerolog.Logger
}

// New builds an Env from config. A nil config means DefaultConfig. The
// only errors New returns are env file problems, and only when
// config.Errors is set; Vault setup failures are logged and disable
// the overlay instead.
func New(config *Config) (*Env, error) {
	if config == nil {
		config = DefaultConfig()
	}
	cfg := *config
	if cfg.FileName == "" {
		if name := os.Getenv("DOTENV"); name != "" {
			cfg.FileName = name
		} else {
			cfg.FileName = ".env"
		}
	}
	if cfg.ExpandDepth <= 0 {
		cfg.ExpandDepth = defaultExpandDepth
	}

	e := &Env{config: &cfg, log: cfg.Logger, vault: noSecrets{}}

	switch {
	case cfg.Environ == nil:
		e.values = environMap()
		e.processWrite = cfg.Update
	case cfg.Update:
		e.values = cfg.Environ
	default:
		e.values = make(map[string]string, len(cfg.Environ))
		for k, v := range cfg.Environ {
			e.values[k] = v
		}
	}

	if err := e.ReadEnv(); err != nil {
		return nil, err
	}

	if cfg.Vault != nil {
		client, err := vaultkv.New(*cfg.Vault)
		if err != nil {
			e.log.Warn().Err(err).Msg("vault overlay disabled")
		} else {
			e.vault = &vaultSource{client: client, log: e.log}
		}
	}

	return e, nil
}

// Must returns env or panics on a non-nil err.
func Must(env *Env, err error) *Env {
	if err != nil {
		panic(err)
	}
	return env
}

// ReadEnv locates the configured env file and merges its entries into
// the mapping. Keys already present are kept unless Overwrite is set.
// Without the Errors flag, a missing file and malformed lines are
// logged and otherwise ignored.
func (e *Env) ReadEnv() error {
	path, err := dotenv.Find(e.config.FileName, e.searchDirs(), e.config.Parents)
	if err != nil {
		if e.config.Errors {
			return err
		}
		e.log.Debug().Str("file", e.config.FileName).Msg("no env file found")
		return nil
	}

	entries, err := dotenv.ParseFile(path)
	if err != nil {
		if e.config.Errors {
			return err
		}
		e.log.Warn().Err(err).Str("path", path).Msg("skipping malformed env lines")
	}

	merged := 0
	for key, value := range dotenv.Map(entries) {
		if !e.config.Overwrite {
			if _, exists := e.values[key]; exists {
				continue
			}
		}
		e.store(key, value)
		merged++
	}
	e.log.Debug().Str("path", path).Int("merged", merged).Msg("merged env file")
	return nil
}

// searchDirs builds the directory list for the env file search: the
// working directory unless skipped, then SearchPaths, then SearchPath.
func (e *Env) searchDirs() []string {
	var dirs []string
	if !e.config.SkipWorkingDir {
		if cwd, err := os.Getwd(); err == nil {
			dirs = append(dirs, cwd)
		}
	}
	dirs = append(dirs, e.config.SearchPaths...)
	if e.config.SearchPath != "" {
		dirs = append(dirs, dotenv.SplitPath(e.config.SearchPath)...)
	}
	return dirs
}

// Lookup returns the expanded value for key and whether it was found in
// the mapping or the secret overlay.
func (e *Env) Lookup(key string) (string, bool) {
	raw, ok := e.lookupRaw(key)
	if !ok {
		return "", false
	}
	return e.expandValue(key, raw), true
}

// Get returns the expanded value for key, or "" when it is absent. It
// never mutates the mapping.
func (e *Env) Get(key string) string {
	value, _ := e.Lookup(key)
	return value
}

// GetOrSet returns the expanded value for key. When neither the mapping
// nor the overlay has the key, def is first written into the mapping
// and then returned. This is the materializing counterpart to Get.
func (e *Env) GetOrSet(key, def string) string {
	if raw, ok := e.lookupRaw(key); ok {
		return e.expandValue(key, raw)
	}
	e.store(key, def)
	return e.expandValue(key, def)
}

// Value behaves like GetOrSet and coerces the result to kind, returning
// one of string, int, float64, bool, or []string.
func (e *Env) Value(key, def string, kind Kind) (interface{}, error) {
	v, err := Coerce(e.GetOrSet(key, def), kind)
	if err != nil {
		coerceKey(err, key)
		return nil, err
	}
	return v, nil
}

// Set writes value for key into the mapping.
func (e *Env) Set(key, value string) {
	e.store(key, value)
}

// Delete removes key from the mapping.
func (e *Env) Delete(key string) {
	e.remove(key)
}

// SetDefault writes value for key only when the key resolves nowhere,
// the secret overlay included. It reports whether the write happened.
func (e *Env) SetDefault(key, value string) bool {
	if _, ok := e.lookupRaw(key); ok {
		return false
	}
	e.store(key, value)
	return true
}

// Environ returns a copy of the current mapping with expansion applied
// to every value. The overlay is not consulted.
func (e *Env) Environ() map[string]string {
	m := make(map[string]string, len(e.values))
	for k, v := range e.values {
		m[k] = e.expandValue(k, v)
	}
	return m
}

// Len returns the number of keys in the mapping.
func (e *Env) Len() int {
	return len(e.values)
}

// lookupRaw resolves key without expansion: the mapping first, then the
// secret overlay.
func (e *Env) lookupRaw(key string) (string, bool) {
	if value, ok := e.values[key]; ok {
		return value, true
	}
	return e.vault.Lookup(key)
}

// expandValue expands s as the value of key. Seeding key into the
// active set makes a reference back to the originating key come out
// literal instead of recursing through it once more.
func (e *Env) expandValue(key, s string) string {
	if e.config.DisableExpand {
		return s
	}
	x := expander{
		lookup: func(name string) (string, bool) {
			value, ok := e.values[name]
			return value, ok
		},
		maxDepth:     e.config.ExpandDepth,
		missingEmpty: e.config.ExpandMissingToEmpty,
		active:       map[string]bool{key: true},
	}
	return x.expand(s, 0)
}

// store is the single write path into the mapping, so process
// write-through stays in one place.
func (e *Env) store(key, value string) {
	e.values[key] = value
	if e.processWrite {
		if err := os.Setenv(key, value); err != nil {
			e.log.Warn().Err(err).Str("key", key).Msg("setenv failed")
		}
	}
}

func (e *Env) remove(key string) {
	delete(e.values, key)
	if e.processWrite {
		if err := os.Unsetenv(key); err != nil {
			e.log.Warn().Err(err).Str("key", key).Msg("unsetenv failed")
		}
	}
}

// environMap snapshots the process environment into a mapping.
func environMap() map[string]string {
	environ := os.Environ()
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		if i := strings.IndexByte(kv, '='); i > 0 {
			m[kv[:i]] = kv[i+1:]
		}
	}
	return m
}

var (
	defaultEnv  *Env
	defaultOnce sync.Once
)

// Default returns the package-level Env, built on first use with
// DefaultConfig. With default options construction cannot fail.
func Default() *Env {
	defaultOnce.Do(func() {
		defaultEnv, _ = New(nil)
	})
	return defaultEnv
}

// Get returns the expanded value for key from the default Env.
func Get(key string) string { return Default().Get(key) }

// Lookup reads key from the default Env.
func Lookup(key string) (string, bool) { return Default().Lookup(key) }

// Set writes value for key into the default Env.
func Set(key, value string) { Default().Set(key, value) }

// Delete removes key from the default Env.
func Delete(key string) { Default().Delete(key) }

// GetOrSet reads key from the default Env, materializing def on miss.
func GetOrSet(key, def string) string { return Default().GetOrSet(key, def) }

// ReadEnv re-reads the default Env's env file.
func ReadEnv() error { return Default().ReadEnv() }
