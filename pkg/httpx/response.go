package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// maxBodyBytes caps JSON request bodies accepted by DecodeJSON.
const maxBodyBytes = 1 << 20

// ErrMalformedRequest reports a request body that could not be decoded into
// the expected structure. Parser details are deliberately not carried.
var ErrMalformedRequest = errors.New("httpx: malformed request body")

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like session data.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// WriteSuccess writes the success envelope {status: "success", message, ...extra}.
// Keys in extra never override status or message.
func WriteSuccess(w http.ResponseWriter, code int, message string, extra map[string]any) {
	body := make(map[string]any, len(extra)+2)
	for k, v := range extra {
		body[k] = v
	}
	body["status"] = StatusSuccess
	body["message"] = message
	WriteJSON(w, code, body)
}

// WriteError writes the error envelope {status: "error", message}.
func WriteError(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, map[string]string{
		"status":  StatusError,
		"message": message,
	})
}

// DecodeJSON decodes the request body into v. Any failure, including an empty
// body or trailing garbage, is reported as ErrMalformedRequest.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return ErrMalformedRequest
	}
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return ErrMalformedRequest
	}
	if dec.More() {
		return ErrMalformedRequest
	}
	return nil
}
