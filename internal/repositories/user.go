package repositories

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"

	"cluetrack/internal/errors"
	"cluetrack/internal/models"
	"cluetrack/internal/sqlite"
)

// adminUsername is the bootstrap administrator account. It cannot be deactivated.
const adminUsername = "admin"

// UserRepository persists login accounts and verifies credentials. Password
// hashing lives here so that plaintext passwords never cross the repository
// boundary outward.
type UserRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewUserRepository(dbs *sqlite.Database, logger *slog.Logger) *UserRepository {
	return &UserRepository{
		dbs:    dbs,
		logger: logger.With("source", "UserRepository"),
	}
}

// CreateUserInput carries the attributes for a new account.
type CreateUserInput struct {
	Username    string
	Name        string
	Password    string
	Role        models.Role
	Permissions []models.Permission
}

// Create adds a new active account. Returns ErrDuplicateUsername when the
// username is taken.
func (r *UserRepository) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	user := models.User{
		ID:           uuid.NewString(),
		Username:     input.Username,
		Name:         input.Name,
		PasswordHash: hash,
		Role:         input.Role,
		Status:       models.UserStatusActive,
		CreatedAt:    time.Now().UTC(),
		Permissions:  input.Permissions,
	}

	tx, err := r.dbs.ReadWrite.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt := `INSERT INTO users (id, username, name, password_hash, role, status, created_at)
VALUES (:id, :username, :name, :password_hash, :role, :status, :created_at)`
	if _, err = tx.NamedExecContext(ctx, stmt, user); err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, errors.Wrap(ErrDuplicateUsername, "insert user", slog.String("username", input.Username))
		}
		return nil, errors.Wrap(err, "insert user", slog.String("username", input.Username))
	}

	if err = insertPermissions(ctx, tx, user.ID, user.Permissions); err != nil {
		return nil, errors.Wrap(err, "insert permissions", slog.String("username", input.Username))
	}

	if err = tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit transaction")
	}
	return &user, nil
}

// Authenticate verifies a username and password against the active accounts.
// Returns ErrInvalidCredentials for unknown usernames, inactive accounts, and
// wrong passwords alike.
func (r *UserRepository) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := r.getWhere(ctx, "username = ?", username)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			// Equalize timing between unknown usernames and wrong passwords.
			_ = bcrypt.CompareHashAndPassword(
				[]byte("$2a$10$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"), []byte(password))
			return nil, errors.Wrap(ErrInvalidCredentials, "authenticate", slog.String("username", username))
		}
		return nil, errors.Wrap(err, "authenticate", slog.String("username", username))
	}
	if user.Status != models.UserStatusActive {
		return nil, errors.Wrap(ErrInvalidCredentials, "authenticate inactive account",
			slog.String("username", username))
	}
	if err = bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, errors.Wrap(ErrInvalidCredentials, "authenticate", slog.String("username", username))
	}
	return user, nil
}

// Get fetches an account by id. Returns ErrNoRecord when absent.
func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	return r.getWhere(ctx, "id = ?", id)
}

// GetByUsername fetches an account by username. Returns ErrNoRecord when absent.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getWhere(ctx, "username = ?", username)
}

// Exists reports whether an active account with the given id exists. Used by
// the session authentication middleware.
func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int
	if err := r.dbs.ReadOnly.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM users WHERE id = ? AND status = ?`, id, models.UserStatusActive); err != nil {
		return false, errors.Wrap(err, "count users", slog.String("user_id", id))
	}
	return count > 0, nil
}

// List returns every account, administrators first, then by username.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	stmt := `SELECT id, username, name, password_hash, role, status, created_at
FROM users ORDER BY role, username`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &users, stmt); err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	for i := range users {
		permissions, err := r.listPermissions(ctx, users[i].ID)
		if err != nil {
			return nil, errors.Wrap(err, "list permissions", slog.String("user_id", users[i].ID))
		}
		users[i].Permissions = permissions
	}
	return users, nil
}

// ResetPassword replaces the account's password hash.
func (r *UserRepository) ResetPassword(ctx context.Context, id, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	result, err := r.dbs.ReadWrite.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`, hash, id)
	if err != nil {
		return errors.Wrap(err, "update password", slog.String("user_id", id))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if affected == 0 {
		return errors.Wrap(ErrNoRecord, "reset password", slog.String("user_id", id))
	}
	return nil
}

// Deactivate soft-deletes an account so its name stays resolvable in clue
// history. The bootstrap administrator is protected.
func (r *UserRepository) Deactivate(ctx context.Context, id string) error {
	user, err := r.getWhere(ctx, "id = ?", id)
	if err != nil {
		return errors.Wrap(err, "deactivate user", slog.String("user_id", id))
	}
	if user.Username == adminUsername {
		return errors.Wrap(ErrProtectedUser, "deactivate user", slog.String("user_id", id))
	}
	if _, err = r.dbs.ReadWrite.ExecContext(ctx,
		`UPDATE users SET status = ? WHERE id = ?`, models.UserStatusInactive, id); err != nil {
		return errors.Wrap(err, "update status", slog.String("user_id", id))
	}
	return nil
}

// EnsureAdmin creates the bootstrap administrator account with every
// permission when it does not exist yet. Called on startup.
func (r *UserRepository) EnsureAdmin(ctx context.Context, password string) error {
	_, err := r.GetByUsername(ctx, adminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNoRecord) {
		return errors.Wrap(err, "look up administrator")
	}

	r.logger.LogAttrs(ctx, slog.LevelWarn, "creating bootstrap administrator account",
		slog.String("username", adminUsername))
	_, err = r.Create(ctx, CreateUserInput{
		Username:    adminUsername,
		Name:        "Administrator",
		Password:    password,
		Role:        models.RoleAdmin,
		Permissions: models.AllPermissions,
	})
	if err != nil {
		return errors.Wrap(err, "create administrator")
	}
	return nil
}

func (r *UserRepository) getWhere(ctx context.Context, where string, arg any) (*models.User, error) {
	var user models.User
	stmt := `SELECT id, username, name, password_hash, role, status, created_at FROM users WHERE ` + where
	if err := r.dbs.ReadOnly.GetContext(ctx, &user, stmt, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(ErrNoRecord, "get user")
		}
		return nil, errors.Wrap(err, "get user")
	}
	permissions, err := r.listPermissions(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "list permissions", slog.String("user_id", user.ID))
	}
	user.Permissions = permissions
	return &user, nil
}

func (r *UserRepository) listPermissions(ctx context.Context, userID string) ([]models.Permission, error) {
	var permissions []models.Permission
	if err := r.dbs.ReadOnly.SelectContext(ctx, &permissions,
		`SELECT permission FROM user_permissions WHERE user_id = ? ORDER BY permission`, userID); err != nil {
		return nil, errors.Wrap(err, "select permissions")
	}
	return permissions, nil
}

func insertPermissions(ctx context.Context, tx *sqlx.Tx, userID string, permissions []models.Permission) error {
	for _, permission := range permissions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_permissions (user_id, permission) VALUES (?, ?)`, userID, permission); err != nil {
			return errors.Wrap(err, "insert permission", slog.String("permission", string(permission)))
		}
	}
	return nil
}
