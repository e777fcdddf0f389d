package driver

import (
	"slices"

	"github.com/llxisdsh/pb"
	"github.com/pkg/errors"
)

// Registry is a set of named configs. The zero value is ready to use and
// safe for concurrent registration and lookup.
type Registry struct {
	m pb.MapOf[string, *Config]
}

// Register adds cfg. An invalid config or a duplicate name is an error.
func (r *Registry) Register(cfg *Config) error {
	if err := cfg.validate(); err != nil {
		return errors.Wrap(err, "register")
	}
	if _, loaded := r.m.LoadOrStore(cfg.Name, cfg); loaded {
		return errors.Errorf("config %q already registered", cfg.Name)
	}
	return nil
}

// MustRegister is Register for wiring done at startup; it panics on error.
func (r *Registry) MustRegister(cfg *Config) {
	if err := r.Register(cfg); err != nil {
		panic(err)
	}
}

// Lookup returns the config registered under name.
func (r *Registry) Lookup(name string) (*Config, bool) {
	return r.m.Load(name)
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	var names []string
	r.m.Range(func(name string, _ *Config) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)
	return names
}

// Len reports how many configs are registered.
func (r *Registry) Len() int { return r.m.Size() }
