package advice

import "errors"

// Common errors returned by Advisor implementations.
var (
	// ErrEmptyMessage is returned when the user's message is empty.
	ErrEmptyMessage = errors.New("message cannot be empty")

	// ErrInvalidResponse is returned when the model response is missing
	// or cannot be interpreted.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model blocks the content due
	// to safety filters.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrUpstreamFailure is returned when the external call fails after
	// any retries are exhausted.
	ErrUpstreamFailure = errors.New("upstream language model request failed")

	// ErrInvalidConfig is returned when the advisor configuration is invalid.
	ErrInvalidConfig = errors.New("invalid advisor configuration")
)
