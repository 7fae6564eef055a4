package main

import (
	"net/http"

	"cluetrack/internal/errors"
	"cluetrack/internal/repositories"
)

type clueDetailTemplateData struct {
	BaseTemplateData
	Clue clueView
	// Archived suppresses the extend and complete actions on frozen clues.
	Archived    bool
	FieldErrors map[string]string
}

func (app *application) clueDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	clue, err := app.clues.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNoRecord) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	data := clueDetailTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Clue:             newClueView(*clue, app.now()),
		Archived:         false,
	}

	app.render(w, r, http.StatusOK, "cluedetail", data)
}

func (app *application) archiveDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	clue, err := app.clues.GetArchived(r.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNoRecord) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	data := clueDetailTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Clue:             newClueView(*clue, app.now()),
		Archived:         true,
	}

	app.render(w, r, http.StatusOK, "cluedetail", data)
}
