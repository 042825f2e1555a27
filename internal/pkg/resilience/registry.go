package resilience

import (
	"sort"
	"sync"
)

const (
	BreakerPostgres = "postgres"
	BreakerRedis    = "redis"
	BreakerOllama   = "ollama"
)

// Breakers holds one breaker per external dependency.
type Breakers struct {
	Postgres *Breaker
	Redis    *Breaker
	Ollama   *Breaker
}

// Registry looks breakers up by name for the admin endpoints.
type Registry struct {
	mu       sync.RWMutex
	breakers map[string]*Breaker
}

func NewRegistry(breakers ...*Breaker) *Registry {
	r := &Registry{breakers: make(map[string]*Breaker, len(breakers))}
	for _, b := range breakers {
		r.Register(b)
	}
	return r
}

func (r *Registry) Register(b *Breaker) {
	r.mu.Lock()
	r.breakers[b.Name()] = b
	r.mu.Unlock()
}

func (r *Registry) Get(name string) (*Breaker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.breakers[name]
	return b, ok
}

// Snapshots returns every breaker's snapshot ordered by name.
func (r *Registry) Snapshots() []Snapshot {
	r.mu.RLock()
	out := make([]Snapshot, 0, len(r.breakers))
	for _, b := range r.breakers {
		out = append(out, b.Snapshot())
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
