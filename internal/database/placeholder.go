package database

import (
	"strconv"
	"strings"
)

// BindStyle is the positional parameter syntax a backend expects.
type BindStyle int

const (
	// BindQuestion leaves "?" placeholders untouched (SQLite, MySQL).
	BindQuestion BindStyle = iota
	// BindDollar numbers placeholders as $1, $2, ... (Postgres).
	BindDollar
)

// Rebind rewrites a query written with "?" placeholders into the given style.
// Question marks inside string literals (including Postgres E'' escape strings
// and $tag$ dollar quoting), quoted identifiers and comments are not
// placeholders and are copied as is.
func Rebind(style BindStyle, query string) string {
	if style == BindQuestion || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case (c == 'E' || c == 'e') && i+1 < len(query) && query[i+1] == '\'' && (i == 0 || !isIdentByte(query[i-1])):
			end := escapeStringEnd(query, i+2)
			if end < 0 {
				b.WriteString(query[i:])
				return b.String()
			}
			b.WriteString(query[i : end+1])
			i = end
		case c == '$' && (i == 0 || !isIdentByte(query[i-1])):
			tag := dollarTag(query[i:])
			if tag == "" {
				b.WriteByte(c)
				continue
			}
			end := strings.Index(query[i+len(tag):], tag)
			if end < 0 {
				b.WriteString(query[i:])
				return b.String()
			}
			stop := i + len(tag) + end + len(tag)
			b.WriteString(query[i:stop])
			i = stop - 1
		case c == '\'' || c == '"':
			// Copy through the closing quote. A doubled quote is an escape and
			// simply reopens the literal on the next iteration.
			end := strings.IndexByte(query[i+1:], c)
			if end < 0 {
				b.WriteString(query[i:])
				return b.String()
			}
			b.WriteString(query[i : i+end+2])
			i += end + 1
		case c == '-' && i+1 < len(query) && query[i+1] == '-':
			end := strings.IndexByte(query[i:], '\n')
			if end < 0 {
				b.WriteString(query[i:])
				return b.String()
			}
			b.WriteString(query[i : i+end+1])
			i += end
		case c == '/' && i+1 < len(query) && query[i+1] == '*':
			end := strings.Index(query[i+2:], "*/")
			if end < 0 {
				b.WriteString(query[i:])
				return b.String()
			}
			b.WriteString(query[i : i+end+4])
			i += end + 3
		case c == '?':
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// escapeStringEnd returns the index of the quote closing an E'' string whose
// body starts at start, or -1 if it is unterminated.
func escapeStringEnd(query string, start int) int {
	for j := start; j < len(query); j++ {
		switch query[j] {
		case '\\':
			j++
		case '\'':
			if j+1 < len(query) && query[j+1] == '\'' {
				j++
				continue
			}
			return j
		}
	}
	return -1
}

// dollarTag returns the opening $tag$ (or $$) at the start of s, or "".
func dollarTag(s string) string {
	for j := 1; j < len(s); j++ {
		c := s[j]
		if c == '$' {
			return s[:j+1]
		}
		if !isIdentByte(c) || (j == 1 && c >= '0' && c <= '9') {
			return ""
		}
	}
	return ""
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}
