package pocketbase

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// FieldError is a per-field validation failure from the "data" member of an
// error response.
type FieldError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ResponseError is a non-2xx answer from the server.
type ResponseError struct {
	Status  int
	Message string
	Data    map[string]FieldError
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("pocketbase: %d %s", e.Status, e.Message)
}

func newResponseError(status int, body []byte) *ResponseError {
	var envelope struct {
		Message string                     `json:"message"`
		Data    map[string]json.RawMessage `json:"data"`
	}

	e := &ResponseError{Status: status}
	if err := json.Unmarshal(body, &envelope); err == nil {
		e.Message = envelope.Message
		for field, raw := range envelope.Data {
			var fe FieldError
			if json.Unmarshal(raw, &fe) != nil {
				continue
			}
			if e.Data == nil {
				e.Data = make(map[string]FieldError)
			}
			e.Data[field] = fe
		}
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

// IsNotFound reports whether err is, or wraps, a 404 response.
func IsNotFound(err error) bool {
	var re *ResponseError
	return errors.As(err, &re) && re.Status == http.StatusNotFound
}
