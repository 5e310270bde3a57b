// Package keys builds the cache keys of catalog records.
package keys

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

const prefix = "ongc"

// Record returns the key under which the record that an identifier resolves
// to is cached. The dataset version is part of the key, so a new catalog
// release never reads records cached for an older one. catalog and key are
// expected in the canonical form produced by the names package.
func Record(dataset, catalog, key string) string {
	raw := catalog + "\x00" + key
	sum := xxhash.Sum64String(dataset + "\x00" + raw)

	const maxKeyTextLen = 64
	safe := sanitizeForKey(collapseASCIIWhitespace(key))
	if len(safe) > maxKeyTextLen {
		safe = safe[:maxKeyTextLen]
	}
	cat := sanitizeForKey(catalog)
	if cat == "" {
		cat = "name"
	}
	return fmt.Sprintf("%s:%s:%s:%s:h=%016x", prefix, sanitizeForKey(dataset), cat, safe, sum)
}

func sanitizeForKey(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))

	var prev rune
	for _, r := range s {
		out := rune(0)
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f':
			out = '_'
		case isAlphaNum(r) || r == '_' || r == '-' || r == '.':
			out = r
		default:
			// '|', ':' and any non-ASCII rune
			out = '-'
		}
		if (out == '_' || out == '-') && out == prev {
			continue
		}
		b.WriteRune(out)
		prev = out
	}
	return b.String()
}

// converts any run of ASCII whitespace to a single space.
func collapseASCIIWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	wasWS := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f' {
			if !wasWS {
				b.WriteByte(' ')
				wasWS = true
			}
			continue
		}
		b.WriteRune(r)
		wasWS = false
	}
	return strings.TrimSpace(b.String())
}

func isAlphaNum(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r < unicode.MaxASCII && unicode.IsDigit(r))
}
