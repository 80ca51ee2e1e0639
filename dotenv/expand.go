package dotenv

import (
	"errors"
	"slices"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"
)

// expander resolves $VAR and ${VAR} references against the variables defined so far.
// Values are kept with escaped dollars marked (see protectDollars), so a
// marked dollar is never taken for a reference.
type expander struct {
	values    map[string]string
	locations map[string]Location
	// names sorted longest first, ties in definition order
	order []string
	// references matches any known name; rebuilt after order changes
	references *regexp2.Regexp
}

func newExpander() *expander {
	return &expander{
		values:    make(map[string]string),
		locations: make(map[string]Location),
	}
}

// define makes name visible to the expansion of later values
func (x *expander) define(name, value string, location Location) {
	if _, ok := x.values[name]; !ok {
		i := sort.Search(len(x.order), func(i int) bool {
			return len(x.order[i]) < len(name)
		})
		x.order = slices.Insert(x.order, i, name)
		x.references = nil
	}
	x.values[name] = value
	x.locations[name] = location
}

func (x *expander) forget(name string) {
	delete(x.values, name)
	delete(x.locations, name)
	x.order = slices.DeleteFunc(x.order, func(n string) bool { return n == name })
	x.references = nil
}

// pattern matches $NAME or ${NAME} for every known name. A bare $NAME must
// not be followed by a name character, so $FOOBAR never matches FOO.
// Group 1 holds a bare name, group 2 a braced one.
func (x *expander) pattern() *regexp2.Regexp {
	if x.references != nil || len(x.order) == 0 {
		return x.references
	}
	quoted := make([]string, len(x.order))
	for i, name := range x.order {
		quoted[i] = regexp2.Escape(name)
	}
	names := strings.Join(quoted, "|")
	x.references = regexp2.MustCompile(`\$(?:(`+names+`)(?![A-Za-z0-9_])|\{(`+names+`)\})`, regexp2.None)
	return x.references
}

// expandVariable expands the value being assigned to name. If name has no
// previous definition its own value stands in for it, so a chain of
// references that leads back to name is reported as circular.
func (x *expander) expandVariable(name, value string, location Location) (string, map[string]Location, error) {
	if _, ok := x.values[name]; !ok {
		x.define(name, value, location)
		defer x.forget(name)
	}

	expanded := make(map[string]Location)
	result, err := x.expand(value, make(map[string]struct{}), expanded)
	if err != nil {
		var circular *CircularReferenceError
		if errors.As(err, &circular) {
			circular.Name = name
			circular.Location = location
			circular.Value = restoreDollars(circular.Value)
		}
		return "", nil, err
	}
	return result, expanded, nil
}

// expand substitutes every known reference in value in a single pass, so
// substituted text is never matched again. visited holds the value strings
// on the current expansion chain. Direct references are recorded in
// expanded when it is non-nil.
func (x *expander) expand(value string, visited map[string]struct{}, expanded map[string]Location) (string, error) {
	if _, ok := visited[value]; ok {
		return "", &CircularReferenceError{Value: value}
	}
	re := x.pattern()
	if re == nil || !strings.Contains(value, "$") {
		return value, nil
	}
	visited[value] = struct{}{}
	defer delete(visited, value)

	var expandErr error
	result, err := re.ReplaceFunc(value, func(m regexp2.Match) string {
		if expandErr != nil {
			return m.String()
		}
		name := m.GroupByNumber(1).String()
		if name == "" {
			name = m.GroupByNumber(2).String()
		}
		replacement, err := x.expand(x.values[name], visited, nil)
		if err != nil {
			expandErr = err
			return m.String()
		}
		if expanded != nil {
			expanded[name] = x.locations[name]
		}
		return replacement
	}, -1, -1)
	if expandErr != nil {
		return "", expandErr
	}
	if err != nil {
		return "", err
	}
	return result, nil
}
