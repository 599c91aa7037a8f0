package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinNameLength = 2
	MaxNameLength = 100
)

var namePattern = regexp.MustCompile(`^[\p{L}\s'-]+$`)

// Name checks a display name or name part.
func Name(name string) error {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	switch {
	case n == 0:
		return fail("name", "Name is required")
	case n < MinNameLength:
		return fail("name", fmt.Sprintf("Name must be at least %d characters long", MinNameLength))
	case n > MaxNameLength:
		return fail("name", fmt.Sprintf("Name is too long (maximum %d characters)", MaxNameLength))
	case !namePattern.MatchString(name):
		return fail("name", "Name can only contain letters, spaces, hyphens, and apostrophes")
	}
	return nil
}

// SplitName splits a full name into the first word and the remainder.
func SplitName(full string) (first, last string) {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
