package lint

import (
	"fmt"
	"strings"
	"sync"
)

// Registry holds the rule catalog in registration order. Registration order
// is execution order and breaks ties between diagnostics at one offset.
type Registry struct {
	mu      sync.RWMutex
	ordered []*Definition
	byID    map[string]*Definition // upper-cased ID
	byName  map[string]*Definition
	aliases map[string]string // alias -> canonical ID
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]*Definition),
		byName:  make(map[string]*Definition),
		aliases: make(map[string]string),
	}
}

// Register appends a rule to the registry. It fails if the ID or name is
// already taken, or if the definition is incomplete.
func (r *Registry) Register(def Definition) error {
	if def.ID == "" || def.Pattern == nil || def.New == nil {
		return fmt.Errorf("register %q: id, pattern and constructor are required", def.ID)
	}
	if def.Group < 0 || def.Group > def.Pattern.NumSubexp() {
		return fmt.Errorf("register %s: capture group %d out of range", def.ID, def.Group)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := strings.ToUpper(def.ID)
	if _, ok := r.byID[id]; ok {
		return fmt.Errorf("register %s: duplicate rule id", def.ID)
	}
	name := strings.ToLower(def.Name)
	if _, ok := r.byName[name]; ok && name != "" {
		return fmt.Errorf("register %s: duplicate rule name %q", def.ID, def.Name)
	}

	entry := def
	r.ordered = append(r.ordered, &entry)
	r.byID[id] = &entry
	if name != "" {
		r.byName[name] = &entry
	}
	for _, alias := range def.Aliases {
		r.aliases[strings.ToLower(alias)] = id
	}
	return nil
}

// MustRegister is Register for the built-in catalog, where a failure is a
// programming error.
func (r *Registry) MustRegister(def Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// RegisterAlias maps an alias to a canonical rule ID.
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[strings.ToLower(alias)] = strings.ToUpper(ruleID)
}

// Resolve looks a rule up by ID (any case), name, or alias.
func (r *Registry) Resolve(key string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key = strings.TrimSpace(key)
	if def, ok := r.byID[strings.ToUpper(key)]; ok {
		return def, true
	}
	if def, ok := r.byName[strings.ToLower(key)]; ok {
		return def, true
	}
	if id, ok := r.aliases[strings.ToLower(key)]; ok {
		def, found := r.byID[id]
		return def, found
	}
	return nil, false
}

// Definitions returns all registered rules in registration order.
func (r *Registry) Definitions() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Definition, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// IDs returns all registered rule IDs in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.ordered))
	for _, def := range r.ordered {
		out = append(out, def.ID)
	}
	return out
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ordered)
}

// DefaultRegistry is the global registry for built-in rules.
// The rules package registers the catalog during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
