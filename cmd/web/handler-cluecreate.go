package main

import (
	"net/http"
	"time"

	"cluetrack/internal/contexthelpers"
	"cluetrack/internal/errors"
	"cluetrack/internal/lifecycle"
)

type clueCreateTemplateData struct {
	BaseTemplateData
	Input       lifecycle.CreateInput
	ReceiveDate string
	FieldErrors map[string]string
}

func (app *application) clueCreateForm(w http.ResponseWriter, r *http.Request) {
	data := clueCreateTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		ReceiveDate:      app.now().Format("2006-01-02"),
	}

	app.render(w, r, http.StatusOK, "cluecreate", data)
}

func (app *application) clueCreatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	receiveDateRaw := r.PostForm.Get("receive_date")
	var receiveDate time.Time
	if receiveDateRaw != "" {
		var err error
		if receiveDate, err = time.Parse("2006-01-02", receiveDateRaw); err != nil {
			app.clientError(w, r, http.StatusBadRequest)
			return
		}
	}

	input := lifecycle.CreateInput{
		Name:        r.PostForm.Get("name"),
		Source:      r.PostForm.Get("source"),
		Location:    r.PostForm.Get("location"),
		Description: r.PostForm.Get("description"),
		ReceiveDate: receiveDate,
	}

	actor := contexthelpers.CurrentUser(r.Context()).Username
	clue, err := lifecycle.Create(input, actor, app.now())
	if err != nil {
		var validationErr *lifecycle.ValidationError
		if errors.As(err, &validationErr) {
			data := clueCreateTemplateData{
				BaseTemplateData: newBaseTemplateData(r),
				Input:            input,
				ReceiveDate:      receiveDateRaw,
				FieldErrors:      validationErr.Fields,
			}
			app.render(w, r, http.StatusUnprocessableEntity, "cluecreate", data)
			return
		}
		app.serverError(w, r, err)
		return
	}

	if err = app.clues.Insert(r.Context(), clue); err != nil {
		app.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/clues/"+clue.ID, http.StatusSeeOther)
}
