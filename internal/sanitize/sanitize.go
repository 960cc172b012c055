// Package sanitize turns raw LLM output into text that has a fighting chance
// of being valid JSON. Models do not reliably honor formatting instructions:
// they wrap JSON in markdown fences, surround it with commentary, and leave
// raw control characters inside string literals.
package sanitize

import (
	"fmt"
	"strings"
)

// StripCodeFences removes a leading markdown fence opener (with or without a
// language tag) and a trailing fence closer.
func StripCodeFences(s string) string {
	t := strings.TrimSpace(s)
	if strings.HasPrefix(t, "```json") {
		t = t[len("```json"):]
	} else if strings.HasPrefix(t, "```") {
		t = t[len("```"):]
	}
	if strings.HasSuffix(t, "```") {
		t = t[:len(t)-len("```")]
	}
	return strings.TrimSpace(t)
}

// ExtractFirstJSONObject takes the substring between the first '{' and the
// last '}' inclusive. If either brace is missing, the text is returned
// unchanged. This handles the case where the model wrapped JSON in prose.
func ExtractFirstJSONObject(s string) string {
	t := strings.TrimSpace(s)
	first := strings.Index(t, "{")
	last := strings.LastIndex(t, "}")
	if first != -1 && last != -1 && last > first {
		return t[first : last+1]
	}
	return t
}

// Clean applies fence stripping and object extraction. Control-character
// escaping is deliberately not part of Clean: it is lossy-safe only when the
// text is otherwise valid JSON syntax, so it is applied as a second parse
// attempt instead.
func Clean(raw string) string {
	return ExtractFirstJSONObject(StripCodeFences(raw))
}

// EscapeControlChars escapes raw control characters (newline/tab/etc) that
// appear inside JSON string literals. Characters outside string literals are
// copied verbatim even when below 0x20, since whitespace used for JSON
// formatting is legal there.
//
// Single left-to-right pass, no backtracking. A boolean tracks whether we are
// inside a string literal and another whether the previous character was a
// backslash escape.
func EscapeControlChars(input string) string {
	var out strings.Builder
	out.Grow(len(input))

	inString := false
	escaped := false

	for _, ch := range input {
		if !inString {
			if ch == '"' {
				inString = true
			}
			out.WriteRune(ch)
			continue
		}

		if escaped {
			// This character was itself escaped, do not reinterpret it.
			out.WriteRune(ch)
			escaped = false
			continue
		}

		if ch == '\\' {
			out.WriteRune(ch)
			escaped = true
			continue
		}

		if ch == '"' {
			out.WriteRune(ch)
			inString = false
			continue
		}

		if ch < 0x20 {
			switch ch {
			case '\n':
				out.WriteString(`\n`)
			case '\r':
				out.WriteString(`\r`)
			case '\t':
				out.WriteString(`\t`)
			default:
				out.WriteString(fmt.Sprintf(`\u%04x`, ch))
			}
			continue
		}

		out.WriteRune(ch)
	}

	return out.String()
}
