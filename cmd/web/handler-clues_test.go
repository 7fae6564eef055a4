package main

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_application_clueLifecycle(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	ctx := context.Background()
	client := server.Client()

	_, err := client.Login(ctx, "admin", "123456")
	require.NoError(t, err)

	// 2024-01-01 is a Monday, fifteen working days later is 2024-01-22.
	doc, err := client.SubmitForm(ctx, "/clues/create", "/clues/create", url.Values{
		"name":         []string{"Night market tip"},
		"source":       []string{"Hotline"},
		"location":     []string{"Dock 4"},
		"receive_date": []string{"2024-01-01"},
		"description":  []string{"Caller reported suspicious crates."},
	})
	require.NoError(t, err)

	assert.Contains(t, doc.Find("h2").Text(), "Night market tip")
	assert.Contains(t, doc.Text(), "2024-01-22")

	// The extension form action carries the clue ID.
	action, ok := doc.Find("form[action$='/extend']").Attr("action")
	require.True(t, ok, "extend form not found on detail page")
	clueID := strings.TrimSuffix(strings.TrimPrefix(action, "/clues/"), "/extend")
	require.NotEmpty(t, clueID)
	cluePath := "/clues/" + clueID

	// Extending adds fifteen working days to the current deadline.
	doc, err = client.SubmitForm(ctx, cluePath, cluePath+"/extend", url.Values{
		"reason": []string{"Waiting for the lab report"},
	})
	require.NoError(t, err)
	assert.Contains(t, doc.Text(), "2024-02-12")
	assert.Contains(t, doc.Find("ol.extensions").Text(), "Waiting for the lab report")

	// A second extension counts from the extended deadline.
	doc, err = client.SubmitForm(ctx, cluePath, cluePath+"/extend", url.Values{
		"reason": []string{"Witness out of town"},
	})
	require.NoError(t, err)
	assert.Contains(t, doc.Text(), "2024-03-04")
	assert.Equal(t, 2, doc.Find("ol.extensions li").Length())

	// Completing moves the clue to the archive.
	doc, err = client.SubmitForm(ctx, cluePath, cluePath+"/complete", url.Values{
		"remark": []string{"Resolved, crates were fireworks"},
	})
	require.NoError(t, err)
	assert.Equal(t, "1", doc.Find("#stat-completed").Text())
	assert.Equal(t, "0", doc.Find("#stat-total").Text())

	doc, err = client.GetDoc(ctx, "/archive")
	require.NoError(t, err)
	assert.Contains(t, doc.Find("table").Text(), "Night market tip")

	doc, err = client.GetDoc(ctx, "/archive/"+clueID)
	require.NoError(t, err)
	assert.Contains(t, doc.Text(), "Resolved, crates were fireworks")
	// Frozen clues offer no further actions.
	assert.Equal(t, 0, doc.Find("form[action$='/extend']").Length())

	// The active detail page is gone.
	resp, err := client.Get(ctx, cluePath)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func Test_application_clueWorklist(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	ctx := context.Background()
	client := server.Client()

	_, err := client.Login(ctx, "admin", "123456")
	require.NoError(t, err)

	// Long past its deadline, so it needs attention.
	_, err = client.SubmitForm(ctx, "/clues/create", "/clues/create", url.Values{
		"name":         []string{"Cold trail"},
		"source":       []string{"Patrol"},
		"location":     []string{"Old mill"},
		"receive_date": []string{"2024-01-01"},
	})
	require.NoError(t, err)

	doc, err := client.GetDoc(ctx, "/clues/worklist")
	require.NoError(t, err)
	assert.Contains(t, doc.Find("table").Text(), "Cold trail")
	assert.Contains(t, doc.Text(), "Overdue by")
}

func Test_application_clueListFilters(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	ctx := context.Background()
	client := server.Client()

	_, err := client.Login(ctx, "admin", "123456")
	require.NoError(t, err)

	_, err = client.SubmitForm(ctx, "/clues/create", "/clues/create", url.Values{
		"name":         []string{"Harbour sighting"},
		"source":       []string{"Hotline"},
		"location":     []string{"Pier 7"},
		"receive_date": []string{"2024-01-01"},
	})
	require.NoError(t, err)
	_, err = client.SubmitForm(ctx, "/clues/create", "/clues/create", url.Values{
		"name":         []string{"Market rumour"},
		"source":       []string{"Informant"},
		"location":     []string{"Town square"},
		"receive_date": []string{"2024-02-01"},
	})
	require.NoError(t, err)

	doc, err := client.GetDoc(ctx, "/clues?source=hotline")
	require.NoError(t, err)
	assert.Contains(t, doc.Find("table").Text(), "Harbour sighting")
	assert.NotContains(t, doc.Find("table").Text(), "Market rumour")

	doc, err = client.GetDoc(ctx, "/clues?start_date=2024-01-15")
	require.NoError(t, err)
	assert.NotContains(t, doc.Find("table").Text(), "Harbour sighting")
	assert.Contains(t, doc.Find("table").Text(), "Market rumour")
}

func Test_application_clueListHtmxPartial(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	ctx := context.Background()
	client := server.Client()

	_, err := client.Login(ctx, "admin", "123456")
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL()+"/clues", nil)
	require.NoError(t, err)
	req.Header.Set("HX-Request", "true")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	// Fragment response swaps in without the page layout.
	assert.NotContains(t, string(body), "<html")
	assert.Contains(t, string(body), `id="clue-table"`)
}

func Test_application_createClueValidation(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	ctx := context.Background()
	client := server.Client()

	_, err := client.Login(ctx, "admin", "123456")
	require.NoError(t, err)

	doc, err := client.GetDoc(ctx, "/clues/create")
	require.NoError(t, err)
	csrfToken, ok := doc.Find("form[action='/clues/create'] input[name=csrf_token]").Attr("value")
	require.True(t, ok)

	formData := url.Values{}
	formData.Add("csrf_token", csrfToken)
	formData.Add("name", "Missing everything else")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, server.URL()+"/clues/create",
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

func Test_application_extendRequiresReason(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	ctx := context.Background()
	client := server.Client()

	_, err := client.Login(ctx, "admin", "123456")
	require.NoError(t, err)

	doc, err := client.SubmitForm(ctx, "/clues/create", "/clues/create", url.Values{
		"name":         []string{"Silent caller"},
		"source":       []string{"Hotline"},
		"location":     []string{"Old town"},
		"receive_date": []string{"2024-01-01"},
	})
	require.NoError(t, err)

	action, ok := doc.Find("form[action$='/extend']").Attr("action")
	require.True(t, ok, "extend form not found on detail page")
	csrfToken, ok := doc.Find("form[action$='/extend'] input[name=csrf_token]").Attr("value")
	require.True(t, ok)

	formData := url.Values{}
	formData.Add("csrf_token", csrfToken)
	formData.Add("reason", "   ")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, server.URL()+action,
		strings.NewReader(formData.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// The detail page is re-rendered with the field error.
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Silent caller")
	assert.Contains(t, string(body), "Extension reason is required")
}
