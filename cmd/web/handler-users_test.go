package main

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cluetrack/internal/e2etest"
)

func Test_application_userManagement(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	ctx := context.Background()
	admin := server.Client()

	_, err := admin.Login(ctx, "admin", "123456")
	require.NoError(t, err)

	doc, err := admin.SubmitForm(ctx, "/users", "/users/create", url.Values{
		"username":            []string{"watson"},
		"name":                []string{"John Watson"},
		"password":            []string{"elementary"},
		"permission_add_clue": []string{"on"},
	})
	require.NoError(t, err)
	assert.Contains(t, doc.Find("table").Text(), "watson")

	// The operator can sign in and add clues but cannot see the archive or
	// manage users.
	operator, err := e2etest.NewClient(server.URL())
	require.NoError(t, err)
	doc, err = operator.Login(ctx, "watson", "elementary")
	require.NoError(t, err)
	assert.Contains(t, doc.Find("h2").Text(), "Dashboard")

	resp, err := operator.Get(ctx, "/archive")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = operator.Get(ctx, "/users")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	_, err = operator.SubmitForm(ctx, "/clues/create", "/clues/create", url.Values{
		"name":         []string{"Operator clue"},
		"source":       []string{"Walk-in"},
		"location":     []string{"Front desk"},
		"receive_date": []string{"2024-01-01"},
	})
	require.NoError(t, err)

	// No edit permission, so no extension form on the detail page.
	doc, err = operator.GetDoc(ctx, "/clues")
	require.NoError(t, err)
	href, ok := doc.Find("table a").First().Attr("href")
	require.True(t, ok)
	doc, err = operator.GetDoc(ctx, href)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find("form[action$='/extend']").Length())
}

func Test_application_deactivateUser(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	ctx := context.Background()
	admin := server.Client()

	_, err := admin.Login(ctx, "admin", "123456")
	require.NoError(t, err)

	doc, err := admin.SubmitForm(ctx, "/users", "/users/create", url.Values{
		"username": []string{"lestrade"},
		"name":     []string{"Greg Lestrade"},
		"password": []string{"scotlandyard"},
	})
	require.NoError(t, err)

	action, ok := doc.Find("tr:contains('lestrade') form[action$='/deactivate']").Attr("action")
	require.True(t, ok, "deactivate form not found")

	operator, err := e2etest.NewClient(server.URL())
	require.NoError(t, err)
	_, err = operator.Login(ctx, "lestrade", "scotlandyard")
	require.NoError(t, err)

	doc, err = admin.SubmitForm(ctx, "/users", action, url.Values{})
	require.NoError(t, err)
	assert.Contains(t, doc.Find("tr:contains('lestrade')").Text(), "inactive")

	// The existing session loses access immediately.
	doc, err = operator.GetDoc(ctx, "/")
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("form[action='/user/login']").Length())

	// And the deactivated account cannot sign in again.
	_, err = operator.Login(ctx, "lestrade", "scotlandyard")
	require.Error(t, err)
}

func Test_application_adminCannotBeDeactivated(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	ctx := context.Background()
	admin := server.Client()

	_, err := admin.Login(ctx, "admin", "123456")
	require.NoError(t, err)

	doc, err := admin.GetDoc(ctx, "/users")
	require.NoError(t, err)
	action, ok := doc.Find("tr:contains('admin') form[action$='/deactivate']").Attr("action")
	require.True(t, ok)

	_, err = admin.SubmitForm(ctx, "/users", action, url.Values{})
	require.Error(t, err)
}
