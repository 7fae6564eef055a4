package main

import (
	"net/http"

	"cluetrack/internal/contexthelpers"
	"cluetrack/internal/errors"
	"cluetrack/internal/lifecycle"
	"cluetrack/internal/repositories"
)

// clueExtendPost grants another statutory working-day period counted from the
// clue's current deadline and records the extension.
func (app *application) clueExtendPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
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

	actor := contexthelpers.CurrentUser(r.Context()).Username
	extended, err := lifecycle.Extend(*clue, r.PostForm.Get("reason"), actor, app.now())
	if err != nil {
		var validationErr *lifecycle.ValidationError
		switch {
		case errors.As(err, &validationErr):
			data := clueDetailTemplateData{
				BaseTemplateData: newBaseTemplateData(r),
				Clue:             newClueView(*clue, app.now()),
				Archived:         false,
				FieldErrors:      validationErr.Fields,
			}
			app.render(w, r, http.StatusUnprocessableEntity, "cluedetail", data)
		case errors.Is(err, lifecycle.ErrInvalidStateTransition):
			app.clientError(w, r, http.StatusConflict)
		default:
			app.serverError(w, r, err)
		}
		return
	}

	if err = app.clues.Extend(r.Context(), extended); err != nil {
		if errors.Is(err, repositories.ErrNoRecord) {
			// The clue was completed or removed between the read and the
			// write. Treat it as a state conflict.
			app.clientError(w, r, http.StatusConflict)
			return
		}
		app.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/clues/"+id, http.StatusSeeOther)
}

// clueCompletePost freezes the clue and moves it to the archive.
func (app *application) clueCompletePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
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

	actor := contexthelpers.CurrentUser(r.Context()).Username
	completed, err := lifecycle.Complete(*clue, r.PostForm.Get("remark"), actor, app.now())
	if err != nil {
		if errors.Is(err, lifecycle.ErrInvalidStateTransition) {
			app.clientError(w, r, http.StatusConflict)
			return
		}
		app.serverError(w, r, err)
		return
	}

	if err = app.clues.Archive(r.Context(), completed); err != nil {
		if errors.Is(err, repositories.ErrNoRecord) {
			app.clientError(w, r, http.StatusConflict)
			return
		}
		app.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
