package dotenv

import (
	"sort"
	"strings"
)

// Location tracks the source file and line number of an environment variable in the format "file:line"
type Location string

// EnvFile represents a parsed .env file containing a list of variables
type EnvFile struct {
	variables []Variable
}

// Variables returns the environment variables as a map[string]string.
// When a name is defined more than once the last definition wins.
func (e *EnvFile) Variables() map[string]string {
	result := make(map[string]string, len(e.variables))
	for _, variable := range e.variables {
		result[variable.Name] = variable.Value
	}
	return result
}

// Keys returns the distinct variable names in the order they were first defined
func (e *EnvFile) Keys() []string {
	seen := make(map[string]bool, len(e.variables))
	keys := make([]string, 0, len(e.variables))
	for _, variable := range e.variables {
		if seen[variable.Name] {
			continue
		}
		seen[variable.Name] = true
		keys = append(keys, variable.Name)
	}
	return keys
}

// Len returns the number of distinct variable names
func (e *EnvFile) Len() int {
	return len(e.Keys())
}

// Lookup returns the effective (last) definition of name
func (e *EnvFile) Lookup(name string) (Variable, bool) {
	for i := len(e.variables) - 1; i >= 0; i-- {
		if e.variables[i].Name == name {
			return e.variables[i], true
		}
	}
	return Variable{}, false
}

// Explain returns a detailed explanation of how a variable was set
func (e *EnvFile) Explain(name string) string {
	variable, ok := e.Lookup(name)
	if !ok {
		return "Variable not found"
	}

	var explanation strings.Builder
	explanation.WriteString("Variable: " + variable.Name + "\n")
	explanation.WriteString("Location: " + string(variable.Location) + "\n")
	explanation.WriteString("Raw Value: " + variable.RawValue + "\n")
	explanation.WriteString("Final Value: " + variable.Value + "\n")
	if variable.Quoted != Unquoted {
		explanation.WriteString("Quoted: " + variable.Quoted.String() + "\n")
	}

	if len(variable.Expanded) > 0 {
		explanation.WriteString("Expanded from:\n")
		// Values as they were when this variable was defined
		varMap := make(map[string]string)
		for _, v := range e.variables {
			if v.Location == variable.Location {
				break
			}
			varMap[v.Name] = v.Value
		}
		// Sort variable names for deterministic output
		varNames := make([]string, 0, len(variable.Expanded))
		for varName := range variable.Expanded {
			varNames = append(varNames, varName)
		}
		sort.Strings(varNames)
		for _, varName := range varNames {
			explanation.WriteString("  - " + varName + "=" + varMap[varName] + " at " + string(variable.Expanded[varName]) + "\n")
		}
	}

	var overridden []string
	for _, v := range e.variables {
		if v.Location == variable.Location {
			break
		}
		if v.Name == variable.Name {
			overridden = append(overridden, string(v.Location))
		}
	}
	if len(overridden) > 0 {
		explanation.WriteString("Overrides: " + strings.Join(overridden, ", ") + "\n")
	}

	return explanation.String()
}
