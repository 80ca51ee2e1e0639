package dotenv

import "strings"

// literalDollar stands in for an escaped dollar sign while a value is
// expanded. Environment values cannot contain NUL bytes, so it never
// collides with real text.
const literalDollar = "\x00"

// Unescape replaces every escaped dollar sign (\$) with a literal $.
// Other backslashes are left untouched.
func Unescape(s string) string {
	return restoreDollars(protectDollars(s))
}

// protectDollars marks escaped dollar signs so expansion cannot see them
func protectDollars(s string) string {
	if !strings.Contains(s, `\$`) {
		return s
	}
	return strings.ReplaceAll(s, `\$`, literalDollar)
}

// restoreDollars turns marked dollar signs back into literal ones
func restoreDollars(s string) string {
	if !strings.Contains(s, literalDollar) {
		return s
	}
	return strings.ReplaceAll(s, literalDollar, "$")
}
