package nutrition

import (
	"errors"
	"fmt"
)

// ServiceError wraps any failure of the model capability: network, quota,
// auth or a rejected prompt.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// EmptyResponseError means the model answered but with no usable text.
type EmptyResponseError struct {
	Op string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("%s returned no usable text", e.Op)
}

// UnsupportedMediaError means an upload could not be decoded as an image.
type UnsupportedMediaError struct {
	Err error
}

func (e *UnsupportedMediaError) Error() string {
	return fmt.Sprintf("unsupported image: %v", e.Err)
}

func (e *UnsupportedMediaError) Unwrap() error { return e.Err }

type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// Notice is the inline message a page shows for a failed submission.
type Notice struct {
	Level Level
	Text  string
}

// NoticeFor converts an orchestrator error into display text.
func NoticeFor(err error) Notice {
	var (
		empty *EmptyResponseError
		media *UnsupportedMediaError
		svc   *ServiceError
	)

	switch {
	case errors.As(err, &empty):
		return Notice{Level: LevelWarning, Text: "No response received. " + capitalize(empty.Error()) + "."}
	case errors.As(err, &media):
		return Notice{Level: LevelError, Text: "Please upload a JPG or PNG photo. The file could not be read as an image."}
	case errors.As(err, &svc):
		return Notice{Level: LevelError, Text: fmt.Sprintf("Error during %s: %v", svc.Op, svc.Err)}
	default:
		return Notice{Level: LevelError, Text: fmt.Sprintf("Error: %v", err)}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
