package notion

import (
	"errors"
	"fmt"
)

// API errors. The HTTP layer maps vendor status codes onto these so callers
// can branch with errors.Is instead of inspecting responses.
var (
	// ErrAuthentication covers 401 and 403 responses (invalid or revoked token).
	ErrAuthentication = errors.New("notion: invalid credentials")

	// ErrNotFound covers 404 responses and the 400 the API returns for a
	// malformed database or data source id.
	ErrNotFound = errors.New("notion: resource not found")

	// ErrRateLimited covers 429 responses.
	ErrRateLimited = errors.New("notion: rate limit exceeded")
)

// CommunicationError wraps transport-level failures: timeouts, connection
// resets and 5xx responses. These are transient; callers retry on the next
// poll rather than immediately.
type CommunicationError struct {
	Err error
}

func (e *CommunicationError) Error() string {
	return fmt.Sprintf("notion: communication error: %v", e.Err)
}

func (e *CommunicationError) Unwrap() error {
	return e.Err
}

// IsAuthenticationError checks if an error means the token was rejected.
func IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrAuthentication)
}

// IsNotFoundError checks if an error means the database or data source id
// does not resolve.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRateLimitError checks if an error means the API throttled the request.
func IsRateLimitError(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsCommunicationError checks if an error is a transient transport failure.
func IsCommunicationError(err error) bool {
	var commErr *CommunicationError

	return errors.As(err, &commErr)
}
