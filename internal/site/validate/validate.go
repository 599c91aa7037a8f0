// Package validate holds the pure input checks shared by the account
// workflows. Every check is total: it never panics and reports the first
// policy violation as an *Error whose Message is safe to show to users.
package validate

// Error is a single policy violation.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func fail(field, message string) error {
	return &Error{Field: field, Message: message}
}

// Rule validates one value.
type Rule func(value string) error

// All runs rules in order and returns the first violation.
func All(value string, rules ...Rule) error {
	for _, rule := range rules {
		if err := rule(value); err != nil {
			return err
		}
	}
	return nil
}
