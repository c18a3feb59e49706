// Package flags provides the feature-flag capability. Handlers consult the
// Provider interface so a remote flag service can replace the static map
// without touching call sites.
package flags

import "sync"

// Provider reports whether a named feature is enabled.
type Provider interface {
	IsEnabled(name string) bool
}

// StaticProvider implements Provider over a fixed map. Unknown flags are
// disabled.
type StaticProvider struct {
	mu    sync.RWMutex
	flags map[string]bool
}

// NewStaticProvider creates a provider from the configured flag map.
func NewStaticProvider(flags map[string]bool) *StaticProvider {
	p := &StaticProvider{
		flags: make(map[string]bool, len(flags)),
	}
	for name, enabled := range flags {
		p.flags[name] = enabled
	}
	return p
}

// IsEnabled reports whether the named flag is on.
func (p *StaticProvider) IsEnabled(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.flags[name]
}

// Set flips a flag at runtime. Used by tests and local tooling.
func (p *StaticProvider) Set(name string, enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flags[name] = enabled
}
