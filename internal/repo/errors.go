package repo

import "errors"

// The four error kinds a backend is allowed to surface. Backend-internal
// detail is wrapped underneath for logs but callers branch only on these.
var (
	// ErrNotFound is a lookup miss. It is an expected outcome, not a failure.
	ErrNotFound = errors.New("record not found")

	// ErrConflict means a uniqueness precondition failed on creation.
	// Both backends reject duplicate usernames with this error.
	ErrConflict = errors.New("record already exists")

	// ErrUnavailable is a connectivity, auth, or timeout failure against the
	// remote table service after retries are exhausted.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrInvalid is malformed input the backend refuses to persist.
	ErrInvalid = errors.New("invalid record")
)
