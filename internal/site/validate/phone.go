package validate

import (
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)

// Phone checks an optional phone number. The empty string is valid.
func Phone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil
	}
	if !phonePattern.MatchString(phone) {
		return fail("phone", "Please enter a valid phone number")
	}
	return nil
}
