package konorm

import "errors"

var (
	// ErrNilContext is returned by the context-taking entry points when ctx is nil.
	ErrNilContext = errors.New("konorm: ctx is nil")

	// ErrEmptyText signals a request without any text to normalize.
	ErrEmptyText = errors.New("konorm: empty text")

	// ErrTooLarge signals a request body over the server's limit.
	ErrTooLarge = errors.New("konorm: request too large")
)
