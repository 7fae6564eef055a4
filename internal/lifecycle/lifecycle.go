// Package lifecycle implements the clue state machine: creation with the
// statutory working-day deadline, deadline extensions, and completion into the
// archive. Every operation is a pure computation over the records it receives;
// persistence and permission checks belong to the caller, and the current time
// is always an explicit parameter.
package lifecycle

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"cluetrack/internal/errors"
	"cluetrack/internal/models"
	"cluetrack/internal/workdays"
)

// StatutoryWorkingDays is the working-day period granted at creation and by
// each extension.
const StatutoryWorkingDays = 15

// ErrInvalidStateTransition is returned when an extension or completion is
// attempted on a clue that is no longer pending.
var ErrInvalidStateTransition = errors.NewSentinel("clue is not pending")

// ValidationError reports per-field validation failures. No collection is
// mutated when it is returned.
type ValidationError struct {
	// Fields maps a field name to a human-readable message.
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	return "validation failed for fields: " + strings.Join(fields, ", ")
}

// CreateInput carries the operator-supplied attributes of a new clue.
type CreateInput struct {
	Name        string
	Source      string
	Location    string
	Description string
	ReceiveDate time.Time
}

// Validate checks the required fields and returns a ValidationError naming
// each failing field, or nil when the input is acceptable.
func (input CreateInput) Validate() *ValidationError {
	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "Name is required"
	}
	if strings.TrimSpace(input.Source) == "" {
		fields["source"] = "Source is required"
	}
	if input.ReceiveDate.IsZero() {
		fields["receiveDate"] = "Receive date is required"
	}
	if strings.TrimSpace(input.Location) == "" {
		fields["location"] = "Location is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Create validates the input and builds a new pending clue with its deadline
// set to the statutory working-day period after the receive date. The caller
// inserts the returned clue into the active collection.
func Create(input CreateInput, actor string, now time.Time) (models.Clue, error) {
	if validationErr := input.Validate(); validationErr != nil {
		return models.Clue{}, validationErr
	}

	clue := models.Clue{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		Source:      strings.TrimSpace(input.Source),
		Location:    strings.TrimSpace(input.Location),
		Description: strings.TrimSpace(input.Description),
		ReceiveDate: workdays.Midnight(input.ReceiveDate),
		Deadline:    workdays.Add(workdays.Midnight(input.ReceiveDate), StatutoryWorkingDays),
		Status:      models.ClueStatusPending,
		CreatedAt:   now,
		CreatedBy:   actor,
		Extensions:  []models.ExtensionRecord{},
	}
	return clue, nil
}

// Extend pushes the deadline forward by the statutory working-day period,
// counted from the current deadline rather than from today, and appends the
// extension to the clue's history. The clue must still be pending. Nothing is
// mutated on failure.
func Extend(clue models.Clue, reason, actor string, now time.Time) (models.Clue, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return models.Clue{}, &ValidationError{Fields: map[string]string{
			"reason": "Extension reason is required",
		}}
	}
	if clue.Status != models.ClueStatusPending {
		return models.Clue{}, errors.Wrap(ErrInvalidStateTransition, "extend clue")
	}

	newDeadline := workdays.Add(clue.Deadline, StatutoryWorkingDays)
	extension := models.ExtensionRecord{
		Date:        now,
		Reason:      reason,
		NewDeadline: newDeadline,
		AppliedBy:   actor,
	}

	extended := clue
	extended.Deadline = newDeadline
	extended.Extensions = append(append([]models.ExtensionRecord{}, clue.Extensions...), extension)
	return extended, nil
}

// Complete freezes a pending clue into its archived form. The caller removes
// the clue from the active collection and appends the returned copy to the
// archive; there is no un-archive operation.
func Complete(clue models.Clue, remark, actor string, now time.Time) (models.Clue, error) {
	if clue.Status != models.ClueStatusPending {
		return models.Clue{}, errors.Wrap(ErrInvalidStateTransition, "complete clue")
	}

	completed := clue
	completed.Status = models.ClueStatusCompleted
	completed.CompletedAt = now
	completed.CompletedBy = actor
	completed.Remark = strings.TrimSpace(remark)
	return completed, nil
}

// DaysLeft returns the working days remaining until the clue's deadline,
// negative when overdue.
func DaysLeft(clue models.Clue, today time.Time) int {
	return workdays.Until(today, clue.Deadline)
}

// Classify grades the clue's deadline pressure for urgency indicators and the
// worklist view.
func Classify(clue models.Clue, today time.Time) workdays.Urgency {
	return workdays.Classify(DaysLeft(clue, today))
}

// NeedsAttention reports whether the clue belongs on the pending worklist,
// which holds the urgent and overdue clues.
func NeedsAttention(clue models.Clue, today time.Time) bool {
	return Classify(clue, today) != workdays.Normal
}
