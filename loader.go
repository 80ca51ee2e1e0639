package env

import (
	"context"
	"strings"

	"github.com/cross-org/env/dotenv"
)

// LoadFile reads the .env file named by opts from rt and parses it.
//
// An unsupported runtime or an unreadable file is returned as an error when
// opts.ThrowErrors is set, otherwise it is logged (if opts.LogWarnings) and
// the file is treated as empty. A circular reference is always returned.
// On success the result is never nil.
func LoadFile(ctx context.Context, rt Runtime, opts Options) (*dotenv.EnvFile, error) {
	path := opts.path()
	content, err := readDotEnv(ctx, rt, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if opts.ThrowErrors {
			return nil, err
		}
		opts.warn("could not load .env file", "path", path, "error", err)
		content = ""
	}

	return dotenv.Parse(ctx, strings.NewReader(content), opts.parseOptions())
}

func readDotEnv(ctx context.Context, rt Runtime, path string) (string, error) {
	reader, ok := rt.(TextReader)
	if !ok {
		return "", &UnsupportedEnvironmentError{Runtime: runtimeName(rt)}
	}
	content, err := reader.ReadText(ctx, path)
	if err != nil {
		return "", &FileReadError{Path: path, Err: err}
	}
	return content, nil
}

func runtimeName(rt Runtime) string {
	if rt == nil {
		return ""
	}
	return rt.Name()
}
