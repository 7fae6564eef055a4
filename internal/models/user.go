package models

import (
	"slices"
	"time"
)

// Role separates administrators from regular operators. Administrators manage
// user accounts; operators act on clues according to their permissions.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

// Permission is a per-operator capability flag checked before invoking a clue
// operation. The clue lifecycle itself never authorizes; these are enforced at
// the handler boundary.
type Permission string

const (
	PermissionAddClue     Permission = "add_clue"
	PermissionEditClue    Permission = "edit_clue"
	PermissionViewArchive Permission = "view_archive"
)

// AllPermissions lists every known permission, used when seeding
// administrator accounts.
var AllPermissions = []Permission{PermissionAddClue, PermissionEditClue, PermissionViewArchive}

// UserStatus is the account state. Deactivated accounts cannot log in but are
// kept so that actor names in clue history stay resolvable.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User is a login account. PasswordHash is a bcrypt hash and never leaves the
// repository layer.
type User struct {
	ID           string     `db:"id"`
	Username     string     `db:"username"`
	Name         string     `db:"name"`
	PasswordHash []byte     `db:"password_hash"`
	Role         Role       `db:"role"`
	Status       UserStatus `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	Permissions  []Permission
}

// Can reports whether the user holds the given permission. Administrators
// implicitly hold every permission.
func (u User) Can(permission Permission) bool {
	if u.Role == RoleAdmin {
		return true
	}
	return slices.Contains(u.Permissions, permission)
}

// IsAdmin reports whether the user may manage accounts.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
