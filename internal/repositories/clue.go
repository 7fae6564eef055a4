package repositories

import (
	"context"
	"database/sql"
	"log/slog"

	"cluetrack/internal/errors"
	"cluetrack/internal/models"
	"cluetrack/internal/sqlite"
)

// ClueRepository persists the active and archive clue collections. The clue
// lifecycle computes transitions on in-memory records; this repository only
// stores what the lifecycle returns, inside a single transaction per
// operation, so a rejected transition never leaves a partial write.
type ClueRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewClueRepository(dbs *sqlite.Database, logger *slog.Logger) *ClueRepository {
	return &ClueRepository{
		dbs:    dbs,
		logger: logger.With("source", "ClueRepository"),
	}
}

// Insert adds a freshly created clue to the active collection.
func (r *ClueRepository) Insert(ctx context.Context, clue models.Clue) error {
	stmt := `INSERT INTO clues (id, name, source, location, description, receive_date, deadline, status, created_at, created_by)
VALUES (:id, :name, :source, :location, :description, :receive_date, :deadline, :status, :created_at, :created_by)`
	if _, err := r.dbs.ReadWrite.NamedExecContext(ctx, stmt, clue); err != nil {
		return errors.Wrap(err, "insert clue", slog.String("clue_id", clue.ID))
	}
	return nil
}

// Get fetches an active clue with its extension history. Returns ErrNoRecord
// when the id is not in the active collection.
func (r *ClueRepository) Get(ctx context.Context, id string) (*models.Clue, error) {
	var clue models.Clue
	stmt := `SELECT id, name, source, location, description, receive_date, deadline, status, created_at, created_by
FROM clues WHERE id = ?`
	if err := r.dbs.ReadOnly.GetContext(ctx, &clue, stmt, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(ErrNoRecord, "get clue", slog.String("clue_id", id))
		}
		return nil, errors.Wrap(err, "get clue", slog.String("clue_id", id))
	}

	extensions, err := r.listExtensions(ctx, "clue_extensions", id)
	if err != nil {
		return nil, errors.Wrap(err, "list extensions", slog.String("clue_id", id))
	}
	clue.Extensions = extensions

	return &clue, nil
}

// List returns the active collection ordered by deadline, soonest first, with
// extension histories loaded.
func (r *ClueRepository) List(ctx context.Context) ([]models.Clue, error) {
	var clues []models.Clue
	stmt := `SELECT id, name, source, location, description, receive_date, deadline, status, created_at, created_by
FROM clues ORDER BY deadline, created_at`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &clues, stmt); err != nil {
		return nil, errors.Wrap(err, "list clues")
	}

	for i := range clues {
		extensions, err := r.listExtensions(ctx, "clue_extensions", clues[i].ID)
		if err != nil {
			return nil, errors.Wrap(err, "list extensions", slog.String("clue_id", clues[i].ID))
		}
		clues[i].Extensions = extensions
	}

	return clues, nil
}

// Extend stores the new deadline and the appended extension record of a clue
// the lifecycle has just extended. The row must still be pending; a clue that
// was archived between read and write surfaces as ErrNoRecord without any
// mutation.
func (r *ClueRepository) Extend(ctx context.Context, clue models.Clue) error {
	if len(clue.Extensions) == 0 {
		return errors.New("clue has no extension to persist", slog.String("clue_id", clue.ID))
	}
	extension := clue.Extensions[len(clue.Extensions)-1]

	tx, err := r.dbs.ReadWrite.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx,
		`UPDATE clues SET deadline = ? WHERE id = ? AND status = ?`,
		clue.Deadline, clue.ID, models.ClueStatusPending)
	if err != nil {
		return errors.Wrap(err, "update deadline", slog.String("clue_id", clue.ID))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if affected == 0 {
		return errors.Wrap(ErrNoRecord, "extend clue", slog.String("clue_id", clue.ID))
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO clue_extensions (clue_id, date, reason, new_deadline, applied_by) VALUES (?, ?, ?, ?, ?)`,
		clue.ID, extension.Date, extension.Reason, extension.NewDeadline, extension.AppliedBy); err != nil {
		return errors.Wrap(err, "insert extension", slog.String("clue_id", clue.ID))
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	return nil
}

// Archive moves a completed clue from the active collection to the archive in
// one transaction. The extension history moves with it. Returns ErrNoRecord
// when the clue is not in the active collection.
func (r *ClueRepository) Archive(ctx context.Context, completed models.Clue) error {
	tx, err := r.dbs.ReadWrite.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx, `DELETE FROM clues WHERE id = ?`, completed.ID)
	if err != nil {
		return errors.Wrap(err, "delete active clue", slog.String("clue_id", completed.ID))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if affected == 0 {
		return errors.Wrap(ErrNoRecord, "archive clue", slog.String("clue_id", completed.ID))
	}

	stmt := `INSERT INTO archived_clues (id, name, source, location, description, receive_date, deadline, status,
created_at, created_by, completed_at, completed_by, remark)
VALUES (:id, :name, :source, :location, :description, :receive_date, :deadline, :status,
:created_at, :created_by, :completed_at, :completed_by, :remark)`
	if _, err = tx.NamedExecContext(ctx, stmt, completed); err != nil {
		return errors.Wrap(err, "insert archived clue", slog.String("clue_id", completed.ID))
	}

	for _, extension := range completed.Extensions {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO archived_clue_extensions (clue_id, date, reason, new_deadline, applied_by) VALUES (?, ?, ?, ?, ?)`,
			completed.ID, extension.Date, extension.Reason, extension.NewDeadline, extension.AppliedBy); err != nil {
			return errors.Wrap(err, "insert archived extension", slog.String("clue_id", completed.ID))
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	return nil
}

// ListArchived returns the archive ordered by completion time, newest first.
func (r *ClueRepository) ListArchived(ctx context.Context) ([]models.Clue, error) {
	var clues []models.Clue
	stmt := `SELECT id, name, source, location, description, receive_date, deadline, status, created_at, created_by,
completed_at, completed_by, remark
FROM archived_clues ORDER BY completed_at DESC`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &clues, stmt); err != nil {
		return nil, errors.Wrap(err, "list archived clues")
	}

	for i := range clues {
		extensions, err := r.listExtensions(ctx, "archived_clue_extensions", clues[i].ID)
		if err != nil {
			return nil, errors.Wrap(err, "list archived extensions", slog.String("clue_id", clues[i].ID))
		}
		clues[i].Extensions = extensions
	}

	return clues, nil
}

// GetArchived fetches a single archived clue with its extension history.
func (r *ClueRepository) GetArchived(ctx context.Context, id string) (*models.Clue, error) {
	var clue models.Clue
	stmt := `SELECT id, name, source, location, description, receive_date, deadline, status, created_at, created_by,
completed_at, completed_by, remark
FROM archived_clues WHERE id = ?`
	if err := r.dbs.ReadOnly.GetContext(ctx, &clue, stmt, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(ErrNoRecord, "get archived clue", slog.String("clue_id", id))
		}
		return nil, errors.Wrap(err, "get archived clue", slog.String("clue_id", id))
	}

	extensions, err := r.listExtensions(ctx, "archived_clue_extensions", id)
	if err != nil {
		return nil, errors.Wrap(err, "list archived extensions", slog.String("clue_id", id))
	}
	clue.Extensions = extensions

	return &clue, nil
}

func (r *ClueRepository) listExtensions(ctx context.Context, table, clueID string) ([]models.ExtensionRecord, error) {
	var extensions []models.ExtensionRecord
	stmt := `SELECT date, reason, new_deadline, applied_by FROM ` + table + ` WHERE clue_id = ? ORDER BY id`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &extensions, stmt, clueID); err != nil {
		return nil, errors.Wrap(err, "select extensions")
	}
	return extensions, nil
}
