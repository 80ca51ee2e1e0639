package dotenv

// QuoteStyle records which quotes, if any, surrounded a value in the source file
type QuoteStyle int

const (
	Unquoted QuoteStyle = iota
	SingleQuoted
	DoubleQuoted
)

func (q QuoteStyle) String() string {
	switch q {
	case SingleQuoted:
		return "single"
	case DoubleQuoted:
		return "double"
	default:
		return "none"
	}
}

// Variable represents a single environment variable with its metadata
type Variable struct {
	Name     string
	Value    string
	RawValue string
	Location Location
	Quoted   QuoteStyle
	Expanded map[string]Location // tracks which variables were expanded and where they came from

	// escaped is the value with escaped dollars marked. Later variables
	// expand against this form so an escaped dollar stays literal.
	escaped string
}

// expandValue replaces $VAR and ${VAR} references in the raw value with
// variables already known to x, then restores escaped dollars.
func (v *Variable) expandValue(x *expander) error {
	val, exp, err := x.expandVariable(v.Name, v.escaped, v.Location)
	if err != nil {
		return err
	}
	v.escaped = val
	v.Value = restoreDollars(val)
	v.Expanded = exp
	return nil
}
