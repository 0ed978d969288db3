package apperror

import "fmt"

// ValidationError signals malformed caller input. Surfaced as 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError signals a referenced resource that does not exist. Surfaced as 404.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// UpstreamError signals a failure talking to the AI service: unreachable,
// empty response body, or a stream that ended with no usable data.
// Surfaced as 502 when it reaches the HTTP layer.
type UpstreamError struct {
	Msg string
	Err error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func Upstreamf(format string, args ...interface{}) error {
	return &UpstreamError{Msg: fmt.Sprintf(format, args...)}
}

func UpstreamWrap(msg string, err error) error {
	return &UpstreamError{Msg: msg, Err: err}
}
