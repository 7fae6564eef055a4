package main

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_application_login(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	ctx := context.Background()
	client := server.Client()

	// Anonymous visitors land on the login page.
	doc, err := client.GetDoc(ctx, "/")
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("form[action='/user/login']").Length())

	doc, err = client.Login(ctx, "admin", "123456")
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("button:contains('Log out')").Length())
	assert.Contains(t, doc.Find("h2").Text(), "Dashboard")

	doc, err = client.Logout(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("form[action='/user/login']").Length())
}

func Test_application_loginInvalidCredentials(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	ctx := context.Background()
	client := server.Client()

	doc, err := client.GetDoc(ctx, "/user/login")
	require.NoError(t, err)
	csrfToken, ok := doc.Find("form[action='/user/login'] input[name=csrf_token]").Attr("value")
	require.True(t, ok)

	formData := url.Values{}
	formData.Add("csrf_token", csrfToken)
	formData.Add("username", "admin")
	formData.Add("password", "wrong")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, server.URL()+"/user/login",
		strings.NewReader(formData.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
