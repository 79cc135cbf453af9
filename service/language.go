package service

import (
	"strings"

	"googletrans-local/domain"
)

// Roles for Resolve, used only for error reporting.
const (
	RoleSource      = "source"
	RoleDestination = "destination"
)

// Resolve normalizes a language identifier (code or English name) to
// the code the endpoint accepts. "auto" is valid for the source role
// and means detect. Lookup is case-insensitive and tolerates a
// regional suffix ("en_US", "pt-BR"). No I/O, no side effects.
func Resolve(identifier, role string) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(identifier))
	if role == RoleSource && lower == "auto" {
		return lower, nil
	}

	if _, ok := languages[lower]; ok {
		return lower, nil
	}

	// en_US, pt-BR and friends: the endpoint only knows the bare code,
	// except for the zh-* pair which survives the exact match above.
	base := lower
	if i := strings.IndexAny(base, "_-"); i >= 0 {
		base = base[:i]
	}
	if _, ok := languages[base]; ok {
		return base, nil
	}
	if code, ok := aliases[base]; ok {
		return code, nil
	}
	for code, name := range languages {
		if name == lower {
			return code, nil
		}
	}
	return "", &domain.LanguageError{Role: role, Identifier: identifier}
}
