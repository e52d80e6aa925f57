package util

import (
	"strings"

	"github.com/google/uuid"
)

// NewID mints a prefixed identifier such as "opt_8f14e45fceea167a5a36dedd4bea2543".
// The prefix makes identifiers self-describing on the wire: submission payloads
// rely on the "opt" prefix to distinguish option references from free text.
func NewID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// HasIDPrefix reports whether s looks like an identifier minted by NewID with
// the given prefix.
func HasIDPrefix(s, prefix string) bool {
	rest, ok := strings.CutPrefix(s, prefix+"_")
	if !ok || rest == "" {
		return false
	}
	for _, r := range rest {
		if !isIDRune(r) {
			return false
		}
	}
	return true
}

func isIDRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	default:
		return false
	}
}
