package env

import (
	"log/slog"

	"github.com/cross-org/env/dotenv"
)

// DefaultDotEnvPath is the file loaded when DotEnvOptions.Path is empty
const DefaultDotEnvPath = ".env"

// Options configures the behaviour of Setup and the Env it returns
type Options struct {
	// ThrowErrors turns unsupported runtimes, unreadable files and failed
	// validations into returned errors instead of warnings.
	ThrowErrors bool
	// LogWarnings logs the problems that ThrowErrors does not report
	LogWarnings bool
	// Logger receives warnings. If nil, slog.Default() is used.
	Logger *slog.Logger

	DotEnv DotEnvOptions
}

// DotEnvOptions controls loading of a .env file
type DotEnvOptions struct {
	Enabled bool
	Path    string
	// AllowQuotes strips matching quotes around values
	AllowQuotes bool
	// EnableExpansion substitutes $VAR references with earlier values
	EnableExpansion bool
}

// DefaultOptions returns the default Options: problems are logged rather than
// returned and no .env file is loaded.
func DefaultOptions() Options {
	return Options{
		ThrowErrors: false,
		LogWarnings: true,
		DotEnv: DotEnvOptions{
			Enabled:         false,
			Path:            DefaultDotEnvPath,
			AllowQuotes:     true,
			EnableExpansion: true,
		},
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) path() string {
	if o.DotEnv.Path == "" {
		return DefaultDotEnvPath
	}
	return o.DotEnv.Path
}

func (o Options) parseOptions() dotenv.Options {
	return dotenv.Options{
		Filename:        o.path(),
		AllowQuotes:     o.DotEnv.AllowQuotes,
		EnableExpansion: o.DotEnv.EnableExpansion,
	}
}

// warn logs msg when warnings are enabled
func (o Options) warn(msg string, args ...any) {
	if o.LogWarnings {
		o.logger().Warn(msg, args...)
	}
}
