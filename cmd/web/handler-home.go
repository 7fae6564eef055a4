package main

import (
	"net/http"

	"cluetrack/internal/lifecycle"
)

type homeTemplateData struct {
	BaseTemplateData
	TotalClues int
	// NeedsAttention counts clues due within the urgency window or overdue.
	NeedsAttention int
	InProgress     int
	Completed      int
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clues, err := app.clues.List(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	archived, err := app.clues.ListArchived(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		TotalClues:       len(clues),
		Completed:        len(archived),
	}
	today := app.now()
	for _, clue := range clues {
		if lifecycle.NeedsAttention(clue, today) {
			data.NeedsAttention++
		} else {
			data.InProgress++
		}
	}

	app.render(w, r, http.StatusOK, "home", data)
}
