package validate

import (
	"regexp"
	"strings"
)

const MaxEmailLength = 254

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var disposableDomains = map[string]struct{}{
	"10minutemail.com":  {},
	"guerrillamail.com": {},
	"mailinator.com":    {},
	"tempmail.org":      {},
	"temp-mail.org":     {},
	"throwaway.email":   {},
	"yopmail.com":       {},
	"trashmail.com":     {},
	"sharklasers.com":   {},
	"getnada.com":       {},
	"dispostable.com":   {},
	"maildrop.cc":       {},
}

// NormalizeEmail trims and case-folds an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Email checks shape, length and the disposable-domain denylist.
func Email(email string) error {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		return fail("email", "Email is required")
	case len(email) > MaxEmailLength:
		return fail("email", "Email address is too long")
	case !emailPattern.MatchString(email):
		return fail("email", "Please enter a valid email address")
	}

	domain := strings.ToLower(email[strings.LastIndexByte(email, '@')+1:])
	if _, ok := disposableDomains[domain]; ok {
		return fail("email", "Disposable email addresses are not allowed")
	}
	return nil
}

// LocalPart returns the part of an address before the last '@'.
func LocalPart(email string) string {
	if i := strings.LastIndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}
