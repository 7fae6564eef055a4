package models

import "time"

// ClueStatus is the lifecycle state of a clue.
type ClueStatus string

const (
	// ClueStatusPending marks an open clue in the active collection.
	ClueStatusPending ClueStatus = "pending"
	// ClueStatusCompleted marks an archived clue. Terminal.
	ClueStatusCompleted ClueStatus = "completed"
)

// Clue is a case lead tracked through a deadline-bound resolution workflow.
// It is mutable while pending and frozen once completed. A clue lives in
// exactly one of the two collections, active or archive, never both.
type Clue struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Source      string    `db:"source"`
	Location    string    `db:"location"`
	Description string    `db:"description"`
	ReceiveDate time.Time `db:"receive_date"`
	// Deadline is always receive date plus a multiple of the statutory
	// working-day period and always lands on a weekday.
	Deadline   time.Time  `db:"deadline"`
	Status     ClueStatus `db:"status"`
	CreatedAt  time.Time  `db:"created_at"`
	CreatedBy  string     `db:"created_by"`
	Extensions []ExtensionRecord

	// Set only on archived copies.
	CompletedAt time.Time `db:"completed_at"`
	CompletedBy string    `db:"completed_by"`
	Remark      string    `db:"remark"`
}

// ExtensionRecord logs one deadline extension. Records are append-only and
// their insertion order is chronological.
type ExtensionRecord struct {
	Date        time.Time `db:"date"`
	Reason      string    `db:"reason"`
	NewDeadline time.Time `db:"new_deadline"`
	AppliedBy   string    `db:"applied_by"`
}
