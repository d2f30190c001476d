package storage

import (
	"fmt"
	"sort"
	"sync"

	apperrors "github.com/pelatformlabs/toolkits-sub000/errors"
	"github.com/pelatformlabs/toolkits-sub000/logger"
)

// Factory constructs a Storage backend from a validated Config.
type Factory func(cfg Config, log *logger.Logger) (Storage, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]Factory)
)

// RegisterFactory registers a storage backend factory under the given
// provider name. Provider packages call this from init(); registering the
// same name twice panics to surface wiring mistakes early.
func RegisterFactory(name string, factory Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	if _, dup := factories[name]; dup {
		panic(fmt.Sprintf("storage: factory %q registered twice", name))
	}
	factories[name] = factory
}

// RegisteredProviders returns the sorted names of registered backends.
func RegisteredProviders() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New validates cfg and constructs the backend selected by cfg.Provider.
// The S3 provider family (aws, cloudflare-r2, minio, digitalocean, supabase,
// custom) all dispatch to the factory registered under "s3".
func New(cfg Config, log *logger.Logger) (Storage, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Get("storage")
	}

	name := cfg.Provider
	if IsS3Provider(name) {
		name = "s3"
	}

	factoriesMu.RLock()
	factory, ok := factories[name]
	factoriesMu.RUnlock()
	if !ok {
		return nil, apperrors.ConfigError(fmt.Sprintf(
			"storage: no backend registered for provider %q (registered: %v); missing blank import?",
			cfg.Provider, RegisteredProviders()))
	}

	store, err := factory(cfg, log)
	if err != nil {
		return nil, apperrors.Wrap(err)
	}
	return store, nil
}

// NewFromEnv loads configuration from the environment and constructs the
// selected backend.
func NewFromEnv(log *logger.Logger) (Storage, error) {
	cfg, err := LoadFromEnv()
	if err != nil {
		return nil, err
	}
	return New(cfg, log)
}
