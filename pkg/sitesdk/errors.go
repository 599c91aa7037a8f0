package sitesdk

import "fmt"

// APIError is a non-2xx response from the site API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("sitesdk: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("sitesdk: HTTP %d: %s", e.StatusCode, e.Message)
}
