// Package gs1 has small helpers for typing and showing GS1 element strings.
//
// A GS1 payload delimits variable-length fields with the ASCII group separator
// (0x1D), which cannot be typed in a shell or a text field. Expand turns a
// visible token back into the separator; Display does the reverse for output.
// None of these helpers validate application identifiers.
package gs1

import "strings"

// GroupSeparator is the ASCII GS control character (0x1D).
const GroupSeparator = '\x1d'

// DefaultToken is the visible stand-in for GroupSeparator.
const DefaultToken = "<GS>"

var escapes = []string{`\x1D`, `\x1d`, `\u001D`, `\u001d`}

// Expand replaces token and the escape sequences \x1D and \u001d with GroupSeparator.
// An empty token only expands the escape sequences.
func Expand(s, token string) string {
	pairs := make([]string, 0, 2*(len(escapes)+1))
	if token != "" {
		pairs = append(pairs, token, string(GroupSeparator))
	}
	for _, e := range escapes {
		pairs = append(pairs, e, string(GroupSeparator))
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

// Display renders every GroupSeparator as DefaultToken.
func Display(s string) string {
	return strings.ReplaceAll(s, string(GroupSeparator), DefaultToken)
}

// Fields splits s on GroupSeparator.
func Fields(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, string(GroupSeparator))
}

// Mask keeps the application identifiers of each field and hides the values,
// e.g. "(01)0123\x1d(10)ABC" becomes "(01)****<GS>(10)***".
func Mask(s string) string {
	fields := Fields(s)
	for i, f := range fields {
		head := ""
		if strings.HasPrefix(f, "(") {
			if end := strings.IndexByte(f, ')'); end > 0 {
				head, f = f[:end+1], f[end+1:]
			}
		}
		fields[i] = head + strings.Repeat("*", len([]rune(f)))
	}
	return strings.Join(fields, DefaultToken)
}
