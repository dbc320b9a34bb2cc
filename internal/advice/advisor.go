// Package advice defines the boundary between the application core and
// the external AI text-generation backend.
package advice

import "context"

// Advisor produces plain-text productivity advice for a user's free-text
// request. Implementations wrap an external generative model; the
// returned text is already sanitized for plain-text display.
type Advisor interface {
	// Advise sends the user's message to the model and returns the
	// sanitized reply. Returns an error from this package's taxonomy if
	// the upstream call fails (see errors.go).
	Advise(ctx context.Context, message string) (string, error)
}
