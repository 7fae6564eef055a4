package main

import (
	"net/http"

	"cluetrack/internal/contexthelpers"
	"cluetrack/internal/errors"
	"cluetrack/internal/repositories"
)

type loginTemplateData struct {
	BaseTemplateData
	Username string
	Error    string
}

func (app *application) loginForm(w http.ResponseWriter, r *http.Request) {
	if contexthelpers.IsAuthenticated(r.Context()) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := loginTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
	}

	app.render(w, r, http.StatusOK, "login", data)
}

func (app *application) loginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	user, err := app.users.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidCredentials) {
			data := loginTemplateData{
				BaseTemplateData: newBaseTemplateData(r),
				Username:         username,
				Error:            "Invalid username or password",
			}
			app.render(w, r, http.StatusUnprocessableEntity, "login", data)
			return
		}
		app.serverError(w, r, err)
		return
	}

	// Renew the session token on privilege change to avoid session fixation.
	if err = app.sessionManager.RenewToken(r.Context()); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.sessionManager.Put(r.Context(), string(userIDSessionKey), user.ID)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) logoutPost(w http.ResponseWriter, r *http.Request) {
	if err := app.sessionManager.RenewToken(r.Context()); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.sessionManager.Remove(r.Context(), string(userIDSessionKey))

	http.Redirect(w, r, "/user/login", http.StatusSeeOther)
}
