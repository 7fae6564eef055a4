package main

import (
	"net/http"

	"cluetrack/internal/models"
)

type archiveTemplateData struct {
	BaseTemplateData
	Clues []models.Clue
}

// archiveList shows completed clues, most recently completed first.
func (app *application) archiveList(w http.ResponseWriter, r *http.Request) {
	clues, err := app.clues.ListArchived(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := archiveTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Clues:            clues,
	}

	app.render(w, r, http.StatusOK, "archive", data)
}
