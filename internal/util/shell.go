package util

import "strings"

// ShellQuote wraps a string in single quotes, escaping any existing single quotes.
// This is safe for use in shell commands where the string should be treated literally.
func ShellQuote(s string) string {
	// Replace ' with '\'' (end quote, escaped quote, start quote)
	escaped := strings.ReplaceAll(s, "'", "'\\''")
	return "'" + escaped + "'"
}

// ShellJoin quotes each argument and joins them with spaces, so the result
// runs as the same argv under "sh -c".
func ShellJoin(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if isShellSafe(a) {
			quoted[i] = a
			continue
		}
		quoted[i] = ShellQuote(a)
	}
	return strings.Join(quoted, " ")
}

func isShellSafe(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("-_./=:,+@%", r):
		default:
			return false
		}
	}
	return true
}
