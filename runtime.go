package env

import (
	"context"
	"maps"
	"os"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// Runtime is the host environment that variables are read from and written to
type Runtime interface {
	// Name identifies the runtime in errors and logs
	Name() string
	Get(key string) (string, bool)
	Set(key, value string) error
	// List returns a copy of every variable
	List() map[string]string
}

// TextReader is implemented by runtimes that can read files. A runtime
// without it cannot load .env files.
type TextReader interface {
	ReadText(ctx context.Context, path string) (string, error)
}

// Runtime names accepted by RuntimeByName
const (
	ProcessRuntime = "process"
	MemoryRuntime  = "memory"
)

// RuntimeByName returns a new runtime of the named kind backed by fs.
// A nil fs selects the runtime's default file system.
func RuntimeByName(name string, fs afero.Fs) (Runtime, error) {
	switch name {
	case ProcessRuntime:
		return NewProcess(fs), nil
	case MemoryRuntime:
		return NewMemory(nil, fs), nil
	default:
		return nil, &UnsupportedEnvironmentError{Runtime: name}
	}
}

func readText(ctx context.Context, fs afero.Fs, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Process is the environment of the current process
type Process struct {
	fs afero.Fs
}

// NewProcess returns the process runtime reading files from fs, or from the
// operating system when fs is nil.
func NewProcess(fs afero.Fs) *Process {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Process{fs: fs}
}

func (p *Process) Name() string { return ProcessRuntime }

func (p *Process) Get(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (p *Process) Set(key, value string) error {
	return os.Setenv(key, value)
}

func (p *Process) List() map[string]string {
	environ := os.Environ()
	vars := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		vars[key] = value
	}
	return vars
}

func (p *Process) ReadText(ctx context.Context, path string) (string, error) {
	return readText(ctx, p.fs, path)
}

// Memory is an isolated environment held in memory. It is safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	vars map[string]string
	fs   afero.Fs
}

// NewMemory returns a runtime holding a copy of vars. Files are read from fs,
// or from an empty in-memory file system when fs is nil.
func NewMemory(vars map[string]string, fs afero.Fs) *Memory {
	if fs == nil {
		fs = afero.NewMemMapFs()
	}
	m := &Memory{
		vars: make(map[string]string, len(vars)),
		fs:   fs,
	}
	maps.Copy(m.vars, vars)
	return m
}

func (m *Memory) Name() string { return MemoryRuntime }

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.vars[key]
	return value, ok
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vars[key] = value
	return nil
}

func (m *Memory) List() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.vars)
}

func (m *Memory) ReadText(ctx context.Context, path string) (string, error) {
	return readText(ctx, m.fs, path)
}

// Fs returns the file system the runtime reads from
func (m *Memory) Fs() afero.Fs {
	return m.fs
}
