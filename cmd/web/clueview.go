package main

import (
	"fmt"
	"strings"
	"time"

	"cluetrack/internal/lifecycle"
	"cluetrack/internal/models"
	"cluetrack/internal/workdays"
)

// clueView decorates a clue with the deadline figures the pages display.
type clueView struct {
	models.Clue
	DaysLeft    int
	Urgency     workdays.Urgency
	StatusLabel string
}

func newClueView(clue models.Clue, today time.Time) clueView {
	daysLeft := lifecycle.DaysLeft(clue, today)
	return clueView{
		Clue:        clue,
		DaysLeft:    daysLeft,
		Urgency:     workdays.Classify(daysLeft),
		StatusLabel: statusLabel(daysLeft),
	}
}

func newClueViews(clues []models.Clue, today time.Time) []clueView {
	views := make([]clueView, 0, len(clues))
	for _, clue := range clues {
		views = append(views, newClueView(clue, today))
	}
	return views
}

func statusLabel(daysLeft int) string {
	switch {
	case daysLeft < 0:
		return fmt.Sprintf("Overdue by %d working days", -daysLeft)
	case daysLeft == 0:
		return "Due today"
	case daysLeft == 1:
		return "Due tomorrow"
	default:
		return fmt.Sprintf("%d working days left", daysLeft)
	}
}

// clueFilters narrows the clue list. The zero value matches everything.
type clueFilters struct {
	StartDate string
	EndDate   string
	Status    string
	Source    string
	Location  string
}

func (f clueFilters) Active() bool {
	return f.StartDate != "" || f.EndDate != "" || (f.Status != "" && f.Status != "all") ||
		f.Source != "" || f.Location != ""
}

func (f clueFilters) match(view clueView) bool {
	if f.StartDate != "" {
		if start, err := time.Parse("2006-01-02", f.StartDate); err == nil && view.ReceiveDate.Before(start) {
			return false
		}
	}
	if f.EndDate != "" {
		if end, err := time.Parse("2006-01-02", f.EndDate); err == nil && view.ReceiveDate.After(end) {
			return false
		}
	}
	if f.Status != "" && f.Status != "all" && f.Status != string(view.Urgency) {
		return false
	}
	if f.Source != "" && !strings.Contains(strings.ToLower(view.Source), strings.ToLower(f.Source)) {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(view.Location), strings.ToLower(f.Location)) {
		return false
	}
	return true
}

func (f clueFilters) apply(views []clueView) []clueView {
	filtered := make([]clueView, 0, len(views))
	for _, view := range views {
		if f.match(view) {
			filtered = append(filtered, view)
		}
	}
	return filtered
}

// clueStats summarises a filtered list for the header line.
type clueStats struct {
	Total   int
	Urgent  int
	Overdue int
	Normal  int
}

func newClueStats(views []clueView) clueStats {
	stats := clueStats{Total: len(views)}
	for _, view := range views {
		switch view.Urgency {
		case workdays.Overdue:
			stats.Overdue++
		case workdays.Urgent:
			stats.Urgent++
		case workdays.Normal:
			stats.Normal++
		}
	}
	return stats
}
