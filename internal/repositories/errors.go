package repositories

import "cluetrack/internal/errors"

var (
	// ErrNoRecord is returned when the referenced record does not exist in the
	// collection the operation targets.
	ErrNoRecord = errors.NewSentinel("no matching record found")
	// ErrDuplicateUsername is returned when creating a user whose username is taken.
	ErrDuplicateUsername = errors.NewSentinel("username already exists")
	// ErrInvalidCredentials is returned on failed login attempts.
	ErrInvalidCredentials = errors.NewSentinel("invalid credentials")
	// ErrProtectedUser is returned when deactivating the bootstrap administrator.
	ErrProtectedUser = errors.NewSentinel("cannot deactivate the administrator account")
)
