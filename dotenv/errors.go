package dotenv

import "fmt"

// CircularReferenceError is returned when expanding a variable leads back to a
// value that is already being expanded.
type CircularReferenceError struct {
	// Name is the variable whose definition could not be expanded
	Name     string
	Location Location
	// Value is the value string that was visited twice
	Value string
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("circular reference detected while expanding %s at %s: %q", e.Name, e.Location, e.Value)
}
