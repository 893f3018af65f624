package users

import (
	"strings"
)

// NormalizeUsername lower-cases s and drops every character Moodle does not
// allow in a username, keeping a-z, 0-9 and - . @ _
func NormalizeUsername(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '.', r == '@', r == '_':
			return r
		}
		return -1
	}, strings.ToLower(s))
}
