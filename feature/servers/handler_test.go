package servers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) (*fiber.App, afero.Fs) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(root, 0755))
	app := fiber.New()
	feature := NewFeature(newTestService(fs))
	assert.Equal(t, "servers", feature.Name())
	assert.True(t, feature.IsEnabled())
	require.NoError(t, feature.Load(app))
	return app, fs
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestServerLifecycleRoutes(t *testing.T) {
	app, fs := setupTestApp(t)

	status, body := doJSON(t, app, "POST", "/servers", `{"name":"alpha"}`)
	assert.Equal(t, 201, status)
	assert.Contains(t, body["path"], "alpha_20250314.json")

	status, _ = doJSON(t, app, "POST", "/servers", `{"name":"alpha"}`)
	assert.Equal(t, 409, status)

	status, body = doJSON(t, app, "GET", "/servers", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, []any{"alpha"}, body["servers"])

	status, _ = doJSON(t, app, "PUT", "/servers/alpha/config", `{"name":"alpha","logoutAfter":1}`)
	assert.Equal(t, 201, status)

	status, _ = doJSON(t, app, "PUT", "/servers/alpha/config", `{"name":`)
	assert.Equal(t, 400, status)

	resp, err := app.Test(httptest.NewRequest("GET", "/servers/alpha/latest", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "alpha_20250314_103000.json", resp.Header.Get("X-Snapshot-File"))
	assert.Equal(t, "2025-03-14", resp.Header.Get("X-Snapshot-Date"))

	status, body = doJSON(t, app, "GET", "/servers/alpha/snapshots", "")
	assert.Equal(t, 200, status)
	assert.Len(t, body["snapshots"], 2)

	status, body = doJSON(t, app, "POST", "/servers/alpha/copy", `{"target":"beta"}`)
	assert.Equal(t, 201, status)
	assert.EqualValues(t, 3, body["files"])

	copied, err := afero.ReadFile(fs, root+"/beta/beta_20250314_103000.json")
	require.NoError(t, err)
	assert.Contains(t, string(copied), `"name": "beta"`)

	status, _ = doJSON(t, app, "POST", "/servers/ghost/copy", `{"target":"x"}`)
	assert.Equal(t, 404, status)

	status, body = doJSON(t, app, "DELETE", "/servers/alpha", "")
	assert.Equal(t, 200, status)
	assert.Contains(t, body["backup"], "alpha.deleted.20250314_103000")

	status, _ = doJSON(t, app, "GET", "/servers/alpha/latest", "")
	assert.Equal(t, 404, status)
}

func TestHandleChangelogAndMissing(t *testing.T) {
	app, fs := setupTestApp(t)
	writeFile(t, fs, root+"/alpha/alpha_20250101.json", `{"v":1}`)

	status, _ := doJSON(t, app, "PUT", "/servers/alpha/config", `{"v":2}`)
	require.Equal(t, 201, status)

	resp, err := app.Test(httptest.NewRequest("GET", "/servers/alpha/changelog", nil))
	require.NoError(t, err)
	text, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(text), "modified: v 1 -> 2")

	status, body := doJSON(t, app, "GET", "/servers/alpha/missing", "")
	assert.Equal(t, 200, status)
	assert.EqualValues(t, 1, body["count"])
}

func TestHandleJSON(t *testing.T) {
	app, _ := setupTestApp(t)

	status, _ := doJSON(t, app, "POST", "/json/write", `{"path":"/srv/alpha/x.json","content":"{\"a\":1}"}`)
	assert.Equal(t, 200, status)

	status, _ = doJSON(t, app, "POST", "/json/write", `{"path":"/srv/alpha/y.json","content":{"b":[1]}}`)
	assert.Equal(t, 200, status)

	status, body := doJSON(t, app, "POST", "/json/read", `{"path":"/srv/alpha/y.json"}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, []any{float64(1)}, body["b"])

	status, _ = doJSON(t, app, "POST", "/json/read", `{"path":"/etc/hosts"}`)
	assert.Equal(t, 403, status)

	status, _ = doJSON(t, app, "POST", "/json/read", `{}`)
	assert.Equal(t, 400, status)
}
