package dotenv

import "sort"

// LookupFn is a function that looks up a variable by name and returns the Variable and whether it was found
type LookupFn func(string) (Variable, bool)

// PrioritizedLookup associates a lookup function with a priority value
type PrioritizedLookup struct {
	Priority int
	Lookup   LookupFn
}

// WithPriority pairs lookup with priority for NewCompositeLookup
func WithPriority(lookup LookupFn, priority int) PrioritizedLookup {
	return PrioritizedLookup{Priority: priority, Lookup: lookup}
}

// CompositeLookup tries several sources of variables, highest priority first
type CompositeLookup struct {
	sources []PrioritizedLookup
}

// NewCompositeLookup orders lookups by descending priority. Lookups with
// equal priority keep their argument order.
func NewCompositeLookup(lookups ...PrioritizedLookup) *CompositeLookup {
	sources := append([]PrioritizedLookup(nil), lookups...)
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Priority > sources[j].Priority
	})
	return &CompositeLookup{sources: sources}
}

// Lookup returns the variable from the first source that defines name
func (c *CompositeLookup) Lookup(name string) (Variable, bool) {
	for _, source := range c.sources {
		if v, ok := source.Lookup(name); ok {
			return v, true
		}
	}
	return Variable{}, false
}

// LookupFn returns a LookupFn over the effective definitions of the file.
// A nil EnvFile finds nothing.
func (e *EnvFile) LookupFn() LookupFn {
	return func(name string) (Variable, bool) {
		if e == nil {
			return Variable{}, false
		}
		return e.Lookup(name)
	}
}
