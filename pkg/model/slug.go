package model

import "strings"

// Slugify derives a project identifier from its name: lowercased, runs of
// spaces, dashes and underscores become one dash, and every other character
// outside [a-z0-9] is dropped. Slugify is idempotent.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			dash = true
		}
	}
	return b.String()
}
