package dotenv_test

import (
	"testing"

	"github.com/cross-org/env/dotenv"
	"gotest.tools/v3/assert"
)

func TestExpansion(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect map[string]string
	}{
		{
			name:   "transitive",
			input:  "A=x\nB=$A\nC=$B",
			expect: map[string]string{"A": "x", "B": "x", "C": "x"},
		},
		{
			name:   "escaped dollar is literal",
			input:  "A=x\nB=\\$A",
			expect: map[string]string{"A": "x", "B": "$A"},
		},
		{
			name:   "escaped dollar stays literal through references",
			input:  "A=x\nB=\\$A\nC=$B",
			expect: map[string]string{"A": "x", "B": "$A", "C": "$A"},
		},
		{
			name:   "escaped brace reference",
			input:  "A=x\nB=\\${A}",
			expect: map[string]string{"A": "x", "B": "${A}"},
		},
		{
			name:   "escaped and unescaped in one value",
			input:  "A=x\nB=$A\\$A$A",
			expect: map[string]string{"A": "x", "B": "x$Ax"},
		},
		{
			name:   "lone dollar",
			input:  "PRICE=5$\nOTHER=$ 5",
			expect: map[string]string{"PRICE": "5$", "OTHER": "$ 5"},
		},
		{
			name:   "prefix name is not a partial match",
			input:  "FOO=short\nFOOBAR=long\nA=$FOOBAR\nB=$FOO",
			expect: map[string]string{"FOO": "short", "FOOBAR": "long", "A": "long", "B": "short"},
		},
		{
			name:   "longer unknown name is kept",
			input:  "FOO=short\nA=$FOOBAR",
			expect: map[string]string{"FOO": "short", "A": "$FOOBAR"},
		},
		{
			name:   "braces delimit a prefix",
			input:  "FOO=short\nA=${FOO}BAR",
			expect: map[string]string{"FOO": "short", "A": "shortBAR"},
		},
		{
			name:   "repeated reference",
			input:  "A=ab\nB=$A$A-$A",
			expect: map[string]string{"A": "ab", "B": "abab-ab"},
		},
		{
			name:   "substituted value is not re-expanded by name",
			input:  "A=$$\nB=$A",
			expect: map[string]string{"A": "$$", "B": "$$"},
		},
		{
			name:   "identical values do not look circular",
			input:  "A=x\nB=x\nC=$A$B",
			expect: map[string]string{"A": "x", "B": "x", "C": "xx"},
		},
		{
			name:   "forward reference resolved when referenced later",
			input:  "A=$B/a\nB=b\nC=$A",
			expect: map[string]string{"A": "$B/a", "B": "b", "C": "b/a"},
		},
		{
			name:   "escaped self reference is literal",
			input:  "A=\\$A\nB=$A",
			expect: map[string]string{"A": "$A", "B": "$A"},
		},
		{
			name:   "adjacent references of different lengths",
			input:  "A=x\nBB=y\nC=$A$BB",
			expect: map[string]string{"A": "x", "BB": "y", "C": "xy"},
		},
		{
			name:   "adjacent references in a connection string",
			input:  "HOST=db\nPORT=5432\nDSN=$HOST$PORT",
			expect: map[string]string{"HOST": "db", "PORT": "5432", "DSN": "db5432"},
		},
		{
			name:   "adjacent references with a path",
			input:  "DIR=C:\\tmp\\\nNAME=file\nPATHX=$DIR$NAME",
			expect: map[string]string{"DIR": `C:\tmp\`, "NAME": "file", "PATHX": `C:\tmp\file`},
		},
		{
			name:   "value ending in backslash does not escape the next reference",
			input:  "A=x\\\nB=y\nC=$A$B",
			expect: map[string]string{"A": `x\`, "B": "y", "C": `x\y`},
		},
		{
			name:   "value ending in backslash before a lone dollar",
			input:  "A=x\\\nB=$A$5",
			expect: map[string]string{"A": `x\`, "B": `x\$5`},
		},
		{
			name:   "dollar in replacement is literal",
			input:  "A='$1'\nB=$A",
			expect: map[string]string{"A": "$1", "B": "$1"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			vars, err := dotenv.ParseString(test.input, dotenv.DefaultOptions())
			assert.NilError(t, err)
			assert.DeepEqual(t, test.expect, vars)
		})
	}
}

func TestExpansionCycles(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "self", input: "A=$A"},
		{name: "self with braces", input: "A=${A}"},
		{name: "two variables", input: "A=$B\nB=$A"},
		{name: "three variables", input: "A=$B\nB=$C\nC=$A"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := dotenv.ParseString(test.input, dotenv.DefaultOptions())
			assert.ErrorType(t, err, &dotenv.CircularReferenceError{})
		})
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{input: "", expect: ""},
		{input: "plain", expect: "plain"},
		{input: `\$HOME`, expect: "$HOME"},
		{input: `a\$b\$c`, expect: "a$b$c"},
		{input: `C:\path`, expect: `C:\path`},
		{input: `\\$X`, expect: `\$X`},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			assert.Equal(t, dotenv.Unescape(test.input), test.expect)
		})
	}
}
