package dotenv

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Options controls how a .env file is parsed
type Options struct {
	// Filename prefixes the location of each variable. It may be empty.
	Filename string
	// AllowQuotes strips one pair of matching single or double quotes around a value
	AllowQuotes bool
	// EnableExpansion substitutes $VAR and ${VAR} with previously defined variables
	EnableExpansion bool
}

// DefaultOptions returns Options with quoting and expansion enabled
func DefaultOptions() Options {
	return Options{
		AllowQuotes:     true,
		EnableExpansion: true,
	}
}

// unescapeDoubleQuoted processes escape sequences in a double-quoted string.
// An escaped dollar is written as dollar, so an escaped backslash followed
// by $ still starts a reference.
func unescapeDoubleQuoted(s string, dollar string) string {
	var result strings.Builder
	result.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			// Handle escape sequences
			switch s[i+1] {
			case 'n':
				result.WriteByte('\n')
				i++
			case 't':
				result.WriteByte('\t')
				i++
			case 'r':
				result.WriteByte('\r')
				i++
			case '\\':
				result.WriteByte('\\')
				i++
			case '"':
				result.WriteByte('"')
				i++
			case '$':
				result.WriteString(dollar)
				i++
			default:
				// Unknown escape sequence, keep the backslash
				result.WriteByte(s[i])
			}
		} else {
			result.WriteByte(s[i])
		}
	}

	return result.String()
}

// unquote removes one pair of matching quotes surrounding value. An escaped
// dollar inside double quotes is replaced with dollar.
func unquote(value string, dollar string) (string, QuoteStyle) {
	if len(value) < 2 {
		return value, Unquoted
	}
	switch first, last := value[0], value[len(value)-1]; {
	case first == '"' && last == '"':
		// Double-quoted: remove quotes and process escape sequences
		return unescapeDoubleQuoted(value[1:len(value)-1], dollar), DoubleQuoted
	case first == '\'' && last == '\'':
		// Single-quoted: just remove quotes, no escape processing
		return value[1 : len(value)-1], SingleQuoted
	}
	return value, Unquoted
}

// splitEntry splits a trimmed line on its first '='. A line without one is a
// name with an empty value.
func splitEntry(line string) (name, value string) {
	name, value, _ = strings.Cut(line, "=")
	return strings.TrimSpace(name), strings.TrimSpace(value)
}

// Parse reads an .env file from the provided reader and returns a parsed EnvFile
func Parse(ctx context.Context, reader io.Reader, opts Options) (*EnvFile, error) {
	envFile := &EnvFile{
		variables: []Variable{},
	}

	var x *expander
	if opts.EnableExpansion {
		x = newExpander()
	}

	br := bufio.NewReader(reader)
	lineNumber := 0

	for done := false; !done; {
		line, err := br.ReadString('\n')
		switch {
		case err == io.EOF:
			done = true
			if line == "" {
				continue
			}
		case err != nil:
			return nil, err
		}
		lineNumber++

		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		line = strings.TrimSpace(line)

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Remove 'export ' prefix if present
		if rest, ok := strings.CutPrefix(line, "export "); ok {
			line = strings.TrimSpace(rest)
		}

		name, value := splitEntry(line)
		if name == "" {
			continue
		}

		raw, escaped, quoted := value, value, Unquoted
		if opts.AllowQuotes {
			raw, quoted = unquote(value, `\$`)
			escaped, _ = unquote(value, literalDollar)
		}
		if quoted != DoubleQuoted {
			escaped = protectDollars(escaped)
		}

		variable := Variable{
			Name:     name,
			Value:    raw,
			RawValue: raw,
			Location: Location(fmt.Sprintf("%s:%d", opts.Filename, lineNumber)),
			Quoted:   quoted,
			Expanded: make(map[string]Location),
			escaped:  escaped,
		}

		if x != nil {
			if err := variable.expandValue(x); err != nil {
				return nil, err
			}
			x.define(variable.Name, variable.escaped, variable.Location)
		}

		envFile.variables = append(envFile.variables, variable)
	}

	return envFile, nil
}

// ParseString parses the content of a .env file into a map of variables.
// Identical input always yields an identical map.
func ParseString(content string, opts Options) (map[string]string, error) {
	if content == "" {
		return map[string]string{}, nil
	}
	envFile, err := Parse(context.Background(), strings.NewReader(content), opts)
	if err != nil {
		return nil, err
	}
	return envFile.Variables(), nil
}
