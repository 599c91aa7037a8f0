package validate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"123456":      {},
	"12345678":    {},
	"123456789":   {},
	"qwerty":      {},
	"qwerty123":   {},
	"abc123":      {},
	"abcd1234":    {},
	"letmein":     {},
	"letmein1":    {},
	"welcome":     {},
	"welcome1":    {},
	"welcome123":  {},
	"admin":       {},
	"admin123":    {},
	"iloveyou":    {},
	"monkey":      {},
	"dragon":      {},
	"football":    {},
	"baseball":    {},
	"sunshine":    {},
	"princess":    {},
	"trustno1":    {},
	"passw0rd":    {},
	"changeme":    {},
	"changeme1":   {},
}

// PasswordRules are applied in order by Password.
var PasswordRules = []Rule{
	passwordLength,
	requireClass(unicode.IsUpper, "Password must contain at least one uppercase letter"),
	requireClass(unicode.IsLower, "Password must contain at least one lowercase letter"),
	requireClass(unicode.IsDigit, "Password must contain at least one number"),
	notCommon,
}

// Password checks length, character classes and the common-password denylist.
func Password(password string) error {
	return All(password, PasswordRules...)
}

func passwordLength(password string) error {
	n := utf8.RuneCountInString(password)
	switch {
	case n < MinPasswordLength:
		return fail("password", fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength))
	case n > MaxPasswordLength:
		return fail("password", fmt.Sprintf("Password is too long (maximum %d characters)", MaxPasswordLength))
	}
	return nil
}

func requireClass(match func(rune) bool, message string) Rule {
	return func(password string) error {
		if strings.IndexFunc(password, match) < 0 {
			return fail("password", message)
		}
		return nil
	}
}

func notCommon(password string) error {
	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		return fail("password", "This password is too common. Please choose a stronger password")
	}
	return nil
}
