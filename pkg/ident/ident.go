// Package ident cleans up user-supplied identifiers.
package ident

import "strings"

//Normalize keeps ASCII letters, digits, '-' and '_', lowercased
func Normalize(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case 'A' <= c && c <= 'Z':
			b.WriteByte(c + 'a' - 'A')
		case 'a' <= c && c <= 'z', '0' <= c && c <= '9', c == '-', c == '_':
			b.WriteByte(c)
		}
	}
	return b.String()
}
