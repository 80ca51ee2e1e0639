// Package env reads, writes and validates environment variables through a
// host Runtime, optionally populating it from a .env file first.
package env

import (
	"context"
	"fmt"
	"strings"

	"github.com/cross-org/env/dotenv"
)

// Validator reports whether a variable's value is acceptable
type Validator func(value string) bool

// Env gives access to the variables of a Runtime
type Env struct {
	rt   Runtime
	opts Options
	file *dotenv.EnvFile
}

// Setup returns an Env over rt. When opts.DotEnv.Enabled is set the .env file
// is loaded and every variable it defines is written to rt, replacing any
// existing value.
func Setup(ctx context.Context, rt Runtime, opts Options) (*Env, error) {
	if rt == nil {
		err := &UnsupportedEnvironmentError{}
		if opts.ThrowErrors {
			return nil, err
		}
		opts.warn("falling back to an in-memory environment", "error", err)
		rt = NewMemory(nil, nil)
	}

	e := &Env{rt: rt, opts: opts}
	if !opts.DotEnv.Enabled {
		return e, nil
	}

	file, err := LoadFile(ctx, rt, opts)
	if err != nil {
		return nil, err
	}
	vars := file.Variables()
	for _, key := range file.Keys() {
		if err := rt.Set(key, vars[key]); err != nil {
			return nil, fmt.Errorf("setting %s: %w", key, err)
		}
	}
	e.file = file
	return e, nil
}

// Runtime returns the runtime e reads from and writes to
func (e *Env) Runtime() Runtime {
	return e.rt
}

// File returns the loaded .env file, or nil if none was loaded
func (e *Env) File() *dotenv.EnvFile {
	return e.file
}

// Lookup returns the value of key and whether it is set
func (e *Env) Lookup(key string) (string, bool) {
	return e.rt.Get(key)
}

// Get returns the value of key, or "" if it is not set
func (e *Env) Get(key string) string {
	value, _ := e.rt.Get(key)
	return value
}

// GetOr returns the value of key, or fallback if it is not set
func (e *Env) GetOr(key, fallback string) string {
	if value, ok := e.rt.Get(key); ok {
		return value
	}
	return fallback
}

// Require returns the value of key or a ValidationError if it is not set.
// It fails regardless of ThrowErrors.
func (e *Env) Require(key string) (string, error) {
	value, ok := e.rt.Get(key)
	if !ok {
		return "", &ValidationError{Key: key, Reason: "required variable is not set"}
	}
	return value, nil
}

// Set assigns value to key
func (e *Env) Set(key, value string) error {
	if key == "" {
		return &ValidationError{Key: key, Reason: "variable name is empty"}
	}
	return e.rt.Set(key, value)
}

// Has reports whether key is set
func (e *Env) Has(key string) bool {
	_, ok := e.rt.Get(key)
	return ok
}

// All returns every variable whose name starts with prefix
func (e *Env) All(prefix string) map[string]string {
	vars := e.rt.List()
	if prefix == "" {
		return vars
	}
	for key := range vars {
		if !strings.HasPrefix(key, prefix) {
			delete(vars, key)
		}
	}
	return vars
}

// Validate reports whether key is set and its value satisfies valid
func (e *Env) Validate(key string, valid Validator) bool {
	value, ok := e.rt.Get(key)
	return ok && valid(value)
}

// ValidateAndGet returns the value of key if it is set and satisfies valid.
// Otherwise it returns a ValidationError when ThrowErrors is set, or logs a
// warning and returns fallback.
func (e *Env) ValidateAndGet(key string, valid Validator, fallback string) (string, error) {
	value, ok := e.rt.Get(key)
	var err *ValidationError
	switch {
	case !ok:
		err = &ValidationError{Key: key, Reason: "variable is not set"}
	case !valid(value):
		err = &ValidationError{Key: key, Reason: "variable failed validation"}
	default:
		return value, nil
	}

	if e.opts.ThrowErrors {
		return "", err
	}
	e.opts.warn("using fallback value", "key", key, "error", err)
	return fallback, nil
}

// Explain describes where key comes from: the loaded .env file takes
// precedence over the runtime.
func (e *Env) Explain(key string) string {
	lookup := dotenv.NewCompositeLookup(
		dotenv.WithPriority(e.file.LookupFn(), 1),
		dotenv.WithPriority(e.runtimeLookup, 0),
	)
	v, ok := lookup.Lookup(key)
	if !ok {
		return "Variable not found"
	}
	if v.Location != e.runtimeLocation() {
		return e.file.Explain(key)
	}
	return "Variable: " + v.Name + "\n" +
		"Location: " + string(v.Location) + "\n" +
		"Final Value: " + v.Value + "\n"
}

func (e *Env) runtimeLocation() dotenv.Location {
	return dotenv.Location(":" + e.rt.Name())
}

func (e *Env) runtimeLookup(key string) (dotenv.Variable, bool) {
	value, ok := e.rt.Get(key)
	if !ok {
		return dotenv.Variable{}, false
	}
	return dotenv.Variable{
		Name:     key,
		Value:    value,
		RawValue: value,
		Location: e.runtimeLocation(),
	}, true
}
