package env

import (
	"fmt"

	"github.com/cross-org/env/dotenv"
)

// CircularReferenceError is returned when a .env file contains variables that
// reference each other in a loop. It is never downgraded to a warning.
type CircularReferenceError = dotenv.CircularReferenceError

// UnsupportedEnvironmentError reports a host runtime that cannot provide a capability
type UnsupportedEnvironmentError struct {
	Runtime string
}

func (e *UnsupportedEnvironmentError) Error() string {
	if e.Runtime == "" {
		return "unsupported environment: no runtime"
	}
	return fmt.Sprintf("unsupported environment: %s", e.Runtime)
}

// FileReadError wraps the failure to read a .env file
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// ValidationError reports a variable that is missing or failed validation
type ValidationError struct {
	Key    string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Key, e.Reason)
}
