package scoring

import "errors"

var (
	// ErrTransientFailure indicates a failure that may succeed on retry:
	// transport errors, 5xx responses and 429 Too Many Requests.
	ErrTransientFailure = errors.New("transient scoring service failure")

	// ErrUnexpectedStatus indicates a non-2xx response that is not retried.
	ErrUnexpectedStatus = errors.New("unexpected scoring service status")

	// ErrEmptyResponse indicates a 2xx response without a body.
	ErrEmptyResponse = errors.New("empty scoring service response")

	// ErrInvalidResponse indicates a body that could not be decoded or
	// failed validation.
	ErrInvalidResponse = errors.New("invalid scoring service response")

	// ErrInvalidConfig indicates the client could not be constructed.
	ErrInvalidConfig = errors.New("invalid scoring client configuration")
)
