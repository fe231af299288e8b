package filter

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/PhucNguyen204/proteofilter/pkg/report"
)

// Registry maps descriptor short names to descriptors. Lookups are
// case-insensitive and resolve aliases. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	byShort map[string]Descriptor
	aliases map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		byShort: make(map[string]Descriptor),
		aliases: make(map[string]string),
	}
}

// Register adds a descriptor; a short name can only be claimed once.
func (r *Registry) Register(d Descriptor) error {
	if d == nil {
		return ErrNilDescriptor
	}
	short := strings.ToLower(strings.TrimSpace(d.ShortName()))
	if short == "" {
		return fmt.Errorf("descriptor has an empty short name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byShort[short]; ok {
		return fmt.Errorf("descriptor %q already registered", short)
	}
	if _, ok := r.aliases[short]; ok {
		return fmt.Errorf("descriptor %q collides with an alias", short)
	}
	r.byShort[short] = d
	return nil
}

// MustRegister panics on registration failure. Meant for built-in catalogs
// wired at startup.
func (r *Registry) MustRegister(d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Alias makes an alternate name resolve to an already registered descriptor.
func (r *Registry) Alias(alias, short string) error {
	alias = strings.ToLower(strings.TrimSpace(alias))
	short = strings.ToLower(strings.TrimSpace(short))
	if alias == "" {
		return fmt.Errorf("empty alias")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byShort[short]; !ok {
		return fmt.Errorf("alias %q points at unknown descriptor %q", alias, short)
	}
	if _, ok := r.byShort[alias]; ok {
		return fmt.Errorf("alias %q collides with a descriptor", alias)
	}
	if prev, ok := r.aliases[alias]; ok && prev != short {
		return fmt.Errorf("alias %q already points at %q", alias, prev)
	}
	r.aliases[alias] = short
	return nil
}

// Lookup resolves a short name or alias.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	defer r.mu.RUnlock()
	if tgt, ok := r.aliases[key]; ok {
		key = tgt
	}
	d, ok := r.byShort[key]
	return d, ok
}

// Descriptors lists every registered descriptor sorted by short name.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	out := make([]Descriptor, 0, len(r.byShort))
	for _, d := range r.byShort {
		out = append(out, d)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ShortName() < out[j].ShortName() })
	return out
}

// ForLevel lists the descriptors applicable at the given report level.
// Descriptors that cannot enumerate their levels are left out.
func (r *Registry) ForLevel(lv report.Level) []Descriptor {
	all := r.Descriptors()
	out := make([]Descriptor, 0, len(all))
	for _, d := range all {
		ls, ok := d.(LevelScoper)
		if !ok {
			continue
		}
		for _, l := range ls.Levels() {
			if l == lv {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

// Len reports the number of registered descriptors, aliases not included.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byShort)
}
