package env_test

import (
	"context"
	"strconv"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	env "github.com/cross-org/env"
)

func setupMemory(t *testing.T, vars map[string]string, dotEnv string, opts env.Options) *env.Env {
	t.Helper()
	fsys := memFs(t, map[string]string{".env": dotEnv})
	opts.DotEnv.Enabled = true
	e, err := env.Setup(context.TODO(), env.NewMemory(vars, fsys), opts)
	assert.NilError(t, err)
	return e
}

func TestSetupAppliesDotEnv(t *testing.T) {
	e := setupMemory(t, map[string]string{"EXISTING": "old", "KEEP": "me"}, "EXISTING=new\nFOO=bar\nBAZ=$FOO/baz", env.DefaultOptions())

	assert.DeepEqual(t, e.All(""), map[string]string{
		"EXISTING": "new",
		"KEEP":     "me",
		"FOO":      "bar",
		"BAZ":      "bar/baz",
	})
	assert.Check(t, e.File() != nil)
	assert.Check(t, is.Equal(e.File().Len(), 3))
}

func TestSetupWithoutDotEnv(t *testing.T) {
	rt := env.NewMemory(map[string]string{"A": "1"}, nil)
	e, err := env.Setup(context.TODO(), rt, env.DefaultOptions())
	assert.NilError(t, err)

	assert.Check(t, e.File() == nil)
	assert.Check(t, is.Equal(e.Get("A"), "1"))
	assert.Check(t, e.Runtime() == env.Runtime(rt))
}

func TestSetupNilRuntime(t *testing.T) {
	opts := env.DefaultOptions()
	opts.ThrowErrors = true
	_, err := env.Setup(context.TODO(), nil, opts)
	assert.Check(t, is.ErrorType(err, &env.UnsupportedEnvironmentError{}))

	logger, buf := captureLogger()
	opts.ThrowErrors = false
	opts.Logger = logger
	e, err := env.Setup(context.TODO(), nil, opts)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(e.Runtime().Name(), env.MemoryRuntime))
	assert.Check(t, is.Contains(buf.String(), "in-memory environment"))
}

func TestSetupCircularReference(t *testing.T) {
	fsys := memFs(t, map[string]string{".env": "A=$A"})
	opts := env.DefaultOptions()
	opts.DotEnv.Enabled = true
	_, err := env.Setup(context.TODO(), env.NewMemory(nil, fsys), opts)
	assert.Check(t, is.ErrorType(err, &env.CircularReferenceError{}))
}

func TestAccessors(t *testing.T) {
	e := setupMemory(t, map[string]string{"APP_NAME": "demo"}, "APP_PORT=8080\nDB_HOST=localhost\nEMPTY=", env.DefaultOptions())

	assert.Check(t, is.Equal(e.Get("APP_PORT"), "8080"))
	assert.Check(t, is.Equal(e.Get("MISSING"), ""))
	assert.Check(t, is.Equal(e.GetOr("MISSING", "fallback"), "fallback"))
	assert.Check(t, is.Equal(e.GetOr("EMPTY", "fallback"), ""))

	value, ok := e.Lookup("EMPTY")
	assert.Check(t, ok)
	assert.Check(t, is.Equal(value, ""))

	assert.Check(t, e.Has("DB_HOST"))
	assert.Check(t, !e.Has("MISSING"))

	assert.DeepEqual(t, e.All("APP_"), map[string]string{
		"APP_NAME": "demo",
		"APP_PORT": "8080",
	})

	assert.NilError(t, e.Set("NEW", "value"))
	assert.Check(t, is.Equal(e.Get("NEW"), "value"))
	assert.Check(t, is.ErrorType(e.Set("", "value"), &env.ValidationError{}))
}

func TestRequire(t *testing.T) {
	e := setupMemory(t, nil, "TOKEN=secret", env.DefaultOptions())

	value, err := e.Require("TOKEN")
	assert.NilError(t, err)
	assert.Check(t, is.Equal(value, "secret"))

	_, err = e.Require("MISSING")
	assert.Error(t, err, "MISSING: required variable is not set")
}

func isPort(value string) bool {
	n, err := strconv.Atoi(value)
	return err == nil && n > 0 && n < 65536
}

func TestValidate(t *testing.T) {
	e := setupMemory(t, nil, "PORT=8080\nBAD_PORT=eighty", env.DefaultOptions())

	assert.Check(t, e.Validate("PORT", isPort))
	assert.Check(t, !e.Validate("BAD_PORT", isPort))
	assert.Check(t, !e.Validate("MISSING", isPort))
}

func TestValidateAndGet(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		throwErrors bool
		want        string
		err         string
		wantLog     bool
	}{
		{name: "valid", key: "PORT", want: "8080"},
		{name: "invalid falls back", key: "BAD_PORT", want: "3000", wantLog: true},
		{name: "missing falls back", key: "MISSING", want: "3000", wantLog: true},
		{name: "invalid strict", key: "BAD_PORT", throwErrors: true, err: "BAD_PORT: variable failed validation"},
		{name: "missing strict", key: "MISSING", throwErrors: true, err: "MISSING: variable is not set"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			logger, buf := captureLogger()
			opts := env.DefaultOptions()
			opts.ThrowErrors = test.throwErrors
			opts.Logger = logger
			e := setupMemory(t, nil, "PORT=8080\nBAD_PORT=eighty", opts)

			value, err := e.ValidateAndGet(test.key, isPort, "3000")
			if test.err != "" {
				assert.Error(t, err, test.err)
				return
			}
			assert.NilError(t, err)
			assert.Check(t, is.Equal(value, test.want))
			assert.Check(t, is.Equal(buf.Len() > 0, test.wantLog))
		})
	}
}

func TestEnvExplain(t *testing.T) {
	e := setupMemory(t, map[string]string{"HOME": "/home/demo"}, "BASE=/usr\nBIN=$BASE/bin", env.DefaultOptions())

	assert.Equal(t, e.Explain("BIN"), `Variable: BIN
Location: .env:2
Raw Value: $BASE/bin
Final Value: /usr/bin
Expanded from:
  - BASE=/usr at .env:1
`)
	assert.Equal(t, e.Explain("HOME"), `Variable: HOME
Location: :memory
Final Value: /home/demo
`)
	assert.Equal(t, e.Explain("MISSING"), "Variable not found")
}
