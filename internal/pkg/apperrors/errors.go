package apperrors

import "errors"

var ErrNotFound = errors.New("not found")

// ClientError marks a failure caused by the caller's input. Handlers map it to 400.
type ClientError struct {
	Message string
	Err     error
}

func (e *ClientError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error { return e.Err }

// Client builds a ClientError with an optional cause.
func Client(message string, cause error) error {
	return &ClientError{Message: message, Err: cause}
}

// IsClient reports whether err carries a ClientError.
func IsClient(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce)
}
