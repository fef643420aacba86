package plan

import (
	"fmt"
	"sort"

	"errenum-generator/internal/match"
)

// MarkerKind is the meaning of a variant marker.
type MarkerKind int

const (
	// MarkerWithoutCatchAll selects StrategyDirectWrap.
	MarkerWithoutCatchAll MarkerKind = iota + 1
)

// Canonical marker names.
const (
	MarkerNameWithoutCatchAll = "without_catchall"
	// MarkerNameWithoutAnyhow is an alias of MarkerNameWithoutCatchAll.
	MarkerNameWithoutAnyhow = "without_anyhow"
)

// MarkerRegistry resolves marker names to their meaning.
type MarkerRegistry struct {
	kinds map[string]MarkerKind
}

// NewMarkerRegistry returns a registry with the built-in markers.
func NewMarkerRegistry() *MarkerRegistry {
	return &MarkerRegistry{
		kinds: map[string]MarkerKind{
			MarkerNameWithoutCatchAll: MarkerWithoutCatchAll,
			MarkerNameWithoutAnyhow:   MarkerWithoutCatchAll,
		},
	}
}

// Alias registers alias as another name of the canonical marker.
func (r *MarkerRegistry) Alias(alias, canonical string) error {
	kind, ok := r.kinds[canonical]
	if !ok {
		return fmt.Errorf("unknown marker %q", canonical)
	}

	if existing, ok := r.kinds[alias]; ok && existing != kind {
		return fmt.Errorf("marker alias %q already names another marker", alias)
	}

	r.kinds[alias] = kind

	return nil
}

// Lookup returns the kind registered under name.
func (r *MarkerRegistry) Lookup(name string) (MarkerKind, bool) {
	kind, ok := r.kinds[name]
	return kind, ok
}

// Names returns all registered names, sorted.
func (r *MarkerRegistry) Names() []string {
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Suggest returns the registered name closest to an unknown one.
func (r *MarkerRegistry) Suggest(name string) (string, bool) {
	return match.Suggest(name, r.Names())
}
