package main

import (
	"net/http"

	"cluetrack/internal/errors"
	"cluetrack/internal/models"
	"cluetrack/internal/repositories"
)

type userListTemplateData struct {
	BaseTemplateData
	Users []models.User
	Error string
}

func (app *application) userList(w http.ResponseWriter, r *http.Request) {
	app.renderUserList(w, r, http.StatusOK, "")
}

func (app *application) renderUserList(w http.ResponseWriter, r *http.Request, status int, errorMessage string) {
	users, err := app.users.List(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := userListTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Users:            users,
		Error:            errorMessage,
	}

	app.render(w, r, status, "users", data)
}

func (app *application) userCreatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	input := repositories.CreateUserInput{
		Username: r.PostForm.Get("username"),
		Name:     r.PostForm.Get("name"),
		Password: r.PostForm.Get("password"),
		Role:     models.RoleOperator,
	}
	for _, permission := range models.AllPermissions {
		if r.PostForm.Has("permission_" + string(permission)) {
			input.Permissions = append(input.Permissions, permission)
		}
	}

	if input.Username == "" || input.Password == "" {
		app.renderUserList(w, r, http.StatusUnprocessableEntity, "Username and password are required")
		return
	}

	if _, err := app.users.Create(r.Context(), input); err != nil {
		if errors.Is(err, repositories.ErrDuplicateUsername) {
			app.renderUserList(w, r, http.StatusUnprocessableEntity, "Username is already taken")
			return
		}
		app.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (app *application) userResetPasswordPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	id := r.PathValue("id")

	password := r.PostForm.Get("password")
	if password == "" {
		app.renderUserList(w, r, http.StatusUnprocessableEntity, "Password is required")
		return
	}

	if err := app.users.ResetPassword(r.Context(), id, password); err != nil {
		if errors.Is(err, repositories.ErrNoRecord) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (app *application) userDeactivatePost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := app.users.Deactivate(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrProtectedUser):
			app.renderUserList(w, r, http.StatusUnprocessableEntity, "The built-in admin account cannot be deactivated")
		case errors.Is(err, repositories.ErrNoRecord):
			app.notFound(w, r)
		default:
			app.serverError(w, r, err)
		}
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}
