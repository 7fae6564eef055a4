package main

import (
	"net/http"

	"cluetrack/internal/contexthelpers"
	"cluetrack/internal/models"
)

type BaseTemplateData struct {
	Authenticated  bool
	CurrentUser    models.User
	CurrentPath    string
	CanAddClue     bool
	CanEditClue    bool
	CanViewArchive bool
	IsAdmin        bool
}

func newBaseTemplateData(r *http.Request) BaseTemplateData {
	ctx := r.Context()
	user := contexthelpers.CurrentUser(ctx)
	return BaseTemplateData{
		Authenticated:  contexthelpers.IsAuthenticated(ctx),
		CurrentUser:    user,
		CurrentPath:    contexthelpers.CurrentPath(ctx),
		CanAddClue:     user.Can(models.PermissionAddClue),
		CanEditClue:    user.Can(models.PermissionEditClue),
		CanViewArchive: user.Can(models.PermissionViewArchive),
		IsAdmin:        user.IsAdmin(),
	}
}
