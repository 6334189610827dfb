package nameless

import (
	"errors"
	"fmt"
	"strings"
)

// APIError is a domain error reported by the remote site. The error field
// carries a "namespace:code" pair that drives branching logic, for example
// "nameless:cannot_find_user".
type APIError struct {
	Raw       string
	Namespace string
	Code      string
	Message   string
	Meta      []string
}

func newAPIError(raw, message string, meta []string) *APIError {
	e := &APIError{Raw: raw, Message: message, Meta: meta}
	if ns, code, ok := strings.Cut(raw, ":"); ok {
		e.Namespace = ns
		e.Code = code
	} else {
		e.Code = raw
	}
	return e
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Raw, e.Message)
	}
	return e.Raw
}

// Is reports whether the error carries the given namespace:code pair.
func (e *APIError) Is(namespace, code string) bool {
	return e.Namespace == namespace && e.Code == code
}

// IsCode matches err against a nameless-namespaced error code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Is("nameless", code)
}
