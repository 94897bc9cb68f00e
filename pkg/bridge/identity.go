package bridge

import "strings"

// NormalizeID canonicalizes a raw bridge identifier into the form used as
// the unique registration key. Gateways, announcements, and the config
// endpoint emit the same id with varying casing and separators
// ("00:11:22:FF", "0011-22ff", ...); after normalization they compare equal.
// The function is total: input that carries no separators is simply
// lower-cased.
func NormalizeID(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch r {
		case ':', '-', '.', ' ':
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
