package email

import (
	"fmt"
	"sort"
	"sync"

	apperrors "github.com/pelatformlabs/toolkits-sub000/errors"
	"github.com/pelatformlabs/toolkits-sub000/logger"
)

// Factory constructs a Sender from a validated Config.
type Factory func(cfg Config, log *logger.Logger) (Sender, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]Factory)
)

// RegisterFactory registers a transport factory under the given provider
// name. Provider packages call this from init(); registering the same name
// twice panics to surface wiring mistakes early.
func RegisterFactory(name string, factory Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	if _, dup := factories[name]; dup {
		panic(fmt.Sprintf("email: factory %q registered twice", name))
	}
	factories[name] = factory
}

// RegisteredProviders returns the sorted names of registered transports.
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

// NewSender validates cfg and constructs the transport it selects.
func NewSender(cfg Config, log *logger.Logger) (Sender, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Get("email")
	}

	factoriesMu.RLock()
	factory, ok := factories[cfg.Provider]
	factoriesMu.RUnlock()
	if !ok {
		return nil, apperrors.ConfigError(fmt.Sprintf(
			"email: no transport registered for provider %q (registered: %v); missing blank import?",
			cfg.Provider, RegisteredProviders()))
	}

	sender, err := factory(cfg, log)
	if err != nil {
		return nil, apperrors.Wrap(err)
	}
	return sender, nil
}
