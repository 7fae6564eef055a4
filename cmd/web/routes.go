package main

import (
	"net/http"

	"github.com/justinas/alice"

	"cluetrack/internal/models"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	session := alice.New(app.sessionManager.LoadAndSave, noSurf, app.authenticate, commonContext)
	protected := session.Append(app.requireAuthentication)
	admin := protected.Append(app.requireAdmin)

	mux.Handle("GET /{$}", protected.ThenFunc(app.home))

	mux.Handle("GET /user/login", session.ThenFunc(app.loginForm))
	mux.Handle("POST /user/login", session.ThenFunc(app.loginPost))
	mux.Handle("POST /user/logout", protected.ThenFunc(app.logoutPost))

	mux.Handle("GET /clues", protected.ThenFunc(app.clueList))
	mux.Handle("GET /clues/worklist", protected.ThenFunc(app.clueWorklist))
	mux.Handle("GET /clues/create",
		protected.Append(app.requirePermission(models.PermissionAddClue)).ThenFunc(app.clueCreateForm))
	mux.Handle("POST /clues/create",
		protected.Append(app.requirePermission(models.PermissionAddClue)).ThenFunc(app.clueCreatePost))
	mux.Handle("GET /clues/{id}", protected.ThenFunc(app.clueDetail))
	mux.Handle("POST /clues/{id}/extend",
		protected.Append(app.requirePermission(models.PermissionEditClue)).ThenFunc(app.clueExtendPost))
	mux.Handle("POST /clues/{id}/complete",
		protected.Append(app.requirePermission(models.PermissionEditClue)).ThenFunc(app.clueCompletePost))

	mux.Handle("GET /archive",
		protected.Append(app.requirePermission(models.PermissionViewArchive)).ThenFunc(app.archiveList))
	mux.Handle("GET /archive/{id}",
		protected.Append(app.requirePermission(models.PermissionViewArchive)).ThenFunc(app.archiveDetail))

	mux.Handle("GET /users", admin.ThenFunc(app.userList))
	mux.Handle("POST /users/create", admin.ThenFunc(app.userCreatePost))
	mux.Handle("POST /users/{id}/reset-password", admin.ThenFunc(app.userResetPasswordPost))
	mux.Handle("POST /users/{id}/deactivate", admin.ThenFunc(app.userDeactivatePost))

	mux.HandleFunc("GET /api/healthy", app.healthy)

	return app.recoverPanic(app.logRequest(secureHeaders(mux)))
}
