package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/CageChen/entryhub/internal/entry"
	mfs "github.com/CageChen/entryhub/internal/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtureTime = time.UnixMilli(1_700_000_000_123)

func newTestApp(t *testing.T) *app {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fixtures use slash-rooted paths")
	}

	ts := mfs.SameTimes(fixtureTime)
	fsys := mfs.NewMemFS().
		AddDir("/", ts).
		AddDir("/work", ts).
		AddFile("/work/README.md", 9, ts).
		AddDir("/work/docs", ts).
		AddFile("/work/docs/guide.md", 24, ts)
	return newApp(fsys)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func run(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	cmd := a.rootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGetCommand(t *testing.T) {
	a := newTestApp(t)
	cfgPath := writeConfig(t, "log:\n  level: error\n")

	out, err := run(t, a, "--config", cfgPath, "get", "/work/README.md")
	require.NoError(t, err)

	var e entry.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &e))
	assert.Equal(t, "README.md", e.Name)
	assert.Equal(t, int64(9), e.Size)
	assert.Equal(t, entry.TypeFile, e.Type)
	assert.Contains(t, out, "\n  \"name\"")
}

func TestGetCommand_Error(t *testing.T) {
	a := newTestApp(t)
	cfgPath := writeConfig(t, "log:\n  level: error\n")

	_, err := run(t, a, "--config", cfgPath, "get", "/work/missing")
	require.Error(t, err)
	assert.Equal(t, "not_found", entry.Kind(err))

	_, err = run(t, a, "--config", cfgPath, "get")
	assert.Error(t, err)
}

func TestListCommand(t *testing.T) {
	a := newTestApp(t)
	cfgPath := writeConfig(t, "log:\n  level: error\n")

	out, err := run(t, a, "--config", cfgPath, "list", "/work")
	require.NoError(t, err)

	var entries []entry.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "/work/README.md", entries[0].Path)
	assert.Equal(t, "/work/docs", entries[1].Path)
}

func TestParentCommand(t *testing.T) {
	a := newTestApp(t)
	cfgPath := writeConfig(t, "log:\n  level: error\n")

	out, err := run(t, a, "--config", cfgPath, "parent", "/work/docs/guide.md")
	require.NoError(t, err)

	var e entry.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &e))
	assert.Equal(t, "/work/docs", e.Path)

	_, err = run(t, a, "--config", cfgPath, "parent", "/")
	assert.ErrorIs(t, err, entry.ErrParentNotFound)
}

func TestResolveCommand(t *testing.T) {
	a := newTestApp(t)
	cfgPath := writeConfig(t, "log:\n  level: error\n")

	out, err := run(t, a, "--config", cfgPath, "resolve", "/work/docs", "/nope", "/work/README.md")
	require.NoError(t, err)

	var entries []entry.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "docs", entries[0].Name)
	assert.Equal(t, "README.md", entries[1].Name)

	out, err = run(t, a, "--config", cfgPath, "resolve")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestResolveCommand_Detailed(t *testing.T) {
	a := newTestApp(t)
	cfgPath := writeConfig(t, "log:\n  level: error\n")

	out, err := run(t, a, "--config", cfgPath, "resolve", "--detailed", "/nope", "/work")
	require.NoError(t, err)

	var results []resultOutput
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "/nope", results[0].Path)
	assert.Equal(t, "not_found", results[0].Kind)
	assert.Nil(t, results[0].Entry)
	assert.Equal(t, "ok", results[1].Kind)
	require.NotNil(t, results[1].Entry)
	assert.Equal(t, entry.TypeDirectory, results[1].Entry.Type)
}

func TestHierarchyCommand(t *testing.T) {
	a := newTestApp(t)
	cfgPath := writeConfig(t, "log:\n  level: error\n")

	out, err := run(t, a, "--config", cfgPath, "hierarchy", "/work/docs/guide.md")
	require.NoError(t, err)

	var root entry.Node
	require.NoError(t, json.Unmarshal([]byte(out), &root))
	assert.Equal(t, "/", root.Name)
	require.Len(t, root.Children, 1)
	work := root.Children[0]
	require.Len(t, work.Children, 2)
	docs := work.Children[1]
	assert.Equal(t, "/work/docs", docs.Path)
	require.Len(t, docs.Children, 1)
	assert.Equal(t, "guide.md", docs.Children[0].Name)
}

func TestConfigPrecedence(t *testing.T) {
	cfgPath := writeConfig(t, "concurrency: 5\nport: 9000\nlog:\n  level: error\n")

	// File value
	a := newTestApp(t)
	_, err := run(t, a, "--config", cfgPath, "get", "/work")
	require.NoError(t, err)
	assert.Equal(t, 5, a.cfg.Concurrency)

	// Environment beats the file
	t.Setenv("ENTRYHUB_CONCURRENCY", "3")
	a = newTestApp(t)
	_, err = run(t, a, "--config", cfgPath, "get", "/work")
	require.NoError(t, err)
	assert.Equal(t, 3, a.cfg.Concurrency)

	// An explicit flag beats both
	a = newTestApp(t)
	_, err = run(t, a, "--config", cfgPath, "--concurrency", "2", "get", "/work")
	require.NoError(t, err)
	assert.Equal(t, 2, a.cfg.Concurrency)
	assert.Equal(t, 9000, a.cfg.Port)
}

func TestInvalidFlagValue(t *testing.T) {
	a := newTestApp(t)
	cfgPath := writeConfig(t, "log:\n  level: error\n")

	_, err := run(t, a, "--config", cfgPath, "--concurrency", "0", "get", "/work")
	assert.Error(t, err)

	_, err = run(t, a, "--config", cfgPath, "--log-level", "loud", "get", "/work")
	assert.Error(t, err)
}

func TestRouter(t *testing.T) {
	a := newTestApp(t)
	cfgPath := writeConfig(t, "log:\n  level: error\n")
	_, err := run(t, a, "--config", cfgPath, "get", "/work")
	require.NoError(t, err)

	r := a.newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/entry?path=/work/README.md", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "entryhub_resolutions_total")
	assert.Contains(t, w.Body.String(), `entryhub_http_requests_total{method="GET",path="/api/entry",status="200"} 1`)
}
