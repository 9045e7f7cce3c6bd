package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/tasktracker/internal/config"
	"github.com/phrazzld/tasktracker/internal/domain"
	"github.com/phrazzld/tasktracker/internal/platform/logger"
	"github.com/stretchr/testify/require"
)

// testConfig returns a valid configuration whose data file lives in a
// per-test temporary directory.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   config.DefaultPort,
			LogLevel:               "debug",
			ShutdownTimeoutSeconds: 5,
			CORSAllowedOrigins:     []string{"*"},
		},
		Storage: config.StorageConfig{
			DataFile: filepath.Join(t.TempDir(), "data", "tasks.json"),
		},
	}
}

func newTestApplication(t *testing.T, cfg *config.Config) (*application, *logger.TestLogBuffer) {
	t.Helper()
	buf, log := logger.NewTestLogger(t)
	app, err := newApplication(context.Background(), cfg, log)
	require.NoError(t, err)
	return app, buf
}

// waitIdle blocks until every pending data file write has completed.
func waitIdle(t *testing.T, app *application) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, app.coalescer.Wait(ctx))
}

func readDataFile(t *testing.T, path string) []domain.Task {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var tasks []domain.Task
	require.NoError(t, json.Unmarshal(data, &tasks))
	return tasks
}

func doJSON(t *testing.T, client *http.Client, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rdr)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}
