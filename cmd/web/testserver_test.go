package main

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"cluetrack/internal/e2etest"
)

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "CLUETRACK_ADDR":
		return "localhost:0", true
	case "CLUETRACK_SQLITE_URL":
		return ":memory:", true
	case "CLUETRACK_TEMPLATE_DIR":
		// Tests run inside cmd/web.
		return "../../ui/templates", true
	default:
		return "", false
	}
}

// startTestServer starts the application on a random port with an in-memory
// database and returns the server handle for testing.
func startTestServer(t *testing.T) *e2etest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server, err := e2etest.StartServer(ctx, io.Discard, testLookupEnv, run)
	require.NoError(t, err)
	return server
}
