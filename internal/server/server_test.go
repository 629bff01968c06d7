package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/project-tracker-api/internal/config"
	"github.com/nulzo/project-tracker-api/internal/store/sqlstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, err := sqlstore.Open(config.StoreConfig{
		Driver:  config.DriverSQLite,
		URL:     "file::memory:?_foreign_keys=on",
		Migrate: true,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	cfg := &config.Config{
		Server:  config.ServerConfig{Port: "0", Env: "test"},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}

	return New(cfg, zap.NewNop(), repo, "test").Handler()
}

func request(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type row = map[string]interface{}

func createClient(t *testing.T, h http.Handler, name string) int64 {
	t.Helper()
	w := request(t, h, http.MethodPost, "/clients", row{"name": name, "email": name + "@example.com", "phone": "555-0100"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return int64(decode[row](t, w)["id"].(float64))
}

func createProject(t *testing.T, h http.Handler, clientID int64, name string) int64 {
	t.Helper()
	w := request(t, h, http.MethodPost, "/projects", row{"client_id": clientID, "name": name, "description": "d"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return int64(decode[row](t, w)["id"].(float64))
}

func TestDashboardScenario(t *testing.T) {
	h := newTestServer(t)

	c1 := createClient(t, h, "acme")
	p1 := createProject(t, h, c1, "Website")

	w := request(t, h, http.MethodPost, "/tasks", row{
		"project_id":  p1,
		"title":       "Wireframes",
		"description": "Homepage layout",
		"status":      "in_progress",
		"priority":    "high",
		"deadline":    "2025-02-14",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	t1 := decode[row](t, w)
	assert.Equal(t, "2025-02-14", t1["deadline"])
	assert.NotEmpty(t, t1["created_at"])

	w = request(t, h, http.MethodGet, "/tasks/overview", nil)
	require.Equal(t, http.StatusOK, w.Code)
	overview := decode[row](t, w)
	assert.GreaterOrEqual(t, overview["total"], float64(1))
	assert.GreaterOrEqual(t, overview["inProgress"], float64(1))
	assert.LessOrEqual(t, overview["inProgress"], overview["total"])

	w = request(t, h, http.MethodGet, fmt.Sprintf("/projects/client/%d", c1), nil)
	require.Equal(t, http.StatusOK, w.Code)
	projects := decode[[]row](t, w)
	require.Len(t, projects, 1)
	assert.Equal(t, float64(p1), projects[0]["id"])

	w = request(t, h, http.MethodGet, fmt.Sprintf("/tasks/project/%d", p1), nil)
	require.Equal(t, http.StatusOK, w.Code)
	tasks := decode[[]row](t, w)
	require.Len(t, tasks, 1)
	assert.Equal(t, t1["id"], tasks[0]["id"])
}

func TestListsNewestFirst(t *testing.T) {
	h := newTestServer(t)

	a := createClient(t, h, "a")
	b := createClient(t, h, "b")

	w := request(t, h, http.MethodGet, "/clients", nil)
	require.Equal(t, http.StatusOK, w.Code)
	clients := decode[[]row](t, w)
	require.Len(t, clients, 2)
	assert.Equal(t, float64(b), clients[0]["id"])
	assert.Equal(t, float64(a), clients[1]["id"])
}

func TestCreateRejectedLeavesCountUnchanged(t *testing.T) {
	h := newTestServer(t)
	createClient(t, h, "acme")

	w := request(t, h, http.MethodPost, "/clients", row{"name": "", "email": "x@example.com", "phone": "1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Name, email, and phone are required"}`, w.Body.String())

	w = request(t, h, http.MethodGet, "/clients/count", nil)
	assert.JSONEq(t, `{"totalCount":1}`, w.Body.String())
}

func TestUpdateAndDeleteLifecycle(t *testing.T) {
	h := newTestServer(t)
	c := createClient(t, h, "acme")
	p := createProject(t, h, c, "Site")

	w := request(t, h, http.MethodPut, fmt.Sprintf("/projects/%d", p), row{
		"client_id":   c,
		"name":        "Site v2",
		"description": "Relaunch",
		"status":      "active",
		"start_date":  "2025-01-06",
		"due_date":    "2025-03-31",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[row](t, w)
	assert.Equal(t, "Site v2", updated["name"])
	assert.Equal(t, "active", updated["status"])
	assert.Equal(t, "2025-03-31", updated["due_date"])

	w = request(t, h, http.MethodPut, "/projects/9999", row{
		"client_id": c, "name": "x", "description": "x", "status": "x",
		"start_date": "2025-01-01", "due_date": "2025-01-02",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = request(t, h, http.MethodDelete, fmt.Sprintf("/projects/%d", p), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Project deleted successfully"}`, w.Body.String())

	w = request(t, h, http.MethodGet, fmt.Sprintf("/projects/%d", p), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Project not found"}`, w.Body.String())

	w = request(t, h, http.MethodDelete, fmt.Sprintf("/clients/%d", c), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = request(t, h, http.MethodDelete, fmt.Sprintf("/clients/%d", c), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecentProjects(t *testing.T) {
	h := newTestServer(t)
	acme := createClient(t, h, "acme")
	globex := createClient(t, h, "globex")

	createProject(t, h, acme, "p1")
	createProject(t, h, globex, "p2")
	createProject(t, h, acme, "p3")
	p4 := createProject(t, h, globex, "p4")

	w := request(t, h, http.MethodGet, "/projects/recent", nil)
	require.Equal(t, http.StatusOK, w.Code)
	recent := decode[[]row](t, w)
	require.Len(t, recent, 3)
	assert.Equal(t, float64(p4), recent[0]["id"])
	assert.Equal(t, row{"id": float64(globex), "name": "globex"}, recent[0]["client"])
}

func TestEmptyChildListsAreNotNotFound(t *testing.T) {
	h := newTestServer(t)

	paths := []string{
		"/projects/client/12345", "/projects/client/0", "/projects/client/abc",
		"/tasks/project/12345", "/tasks/project/abc", "/tasks/project/-1",
		"/tasks",
	}
	for _, path := range paths {
		w := request(t, h, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, `[]`, w.Body.String(), path)
	}
}

func TestForeignKeyViolationIsStoreError(t *testing.T) {
	h := newTestServer(t)

	w := request(t, h, http.MethodPost, "/projects", row{"client_id": 999, "name": "Orphan", "description": "d"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error, failed to create project"}`, w.Body.String())
}

func TestAmbientRoutes(t *testing.T) {
	h := newTestServer(t)

	w := request(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = request(t, h, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(t, h, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_request_duration_seconds")

	w = request(t, h, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, w.Body.String())
}
