package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starwars-blog/api/pkg/database/databasetest"
	"github.com/starwars-blog/api/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

type testClient struct {
	t *testing.T
	h http.Handler
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()
	dep := Wire(databasetest.New(t))
	dep.MetricsEnabled = true
	return &testClient{t: t, h: NewRouter(dep)}
}

func (c *testClient) do(method, path, body string) (int, string) {
	c.t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	c.h.ServeHTTP(rr, req)
	return rr.Code, rr.Body.String()
}

func TestEmptyTablesAnswer404(t *testing.T) {
	c := newTestClient(t)

	for path, msg := range map[string]string{
		"/user":      "No users",
		"/people":    "No people",
		"/planets":   "No planets",
		"/favorites": "No favorites",
	} {
		code, body := c.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, code, path)
		assert.JSONEq(t, fmt.Sprintf(`{"msg":%q}`, msg), body, path)
	}
}

func TestCreatedUserIsListedWithoutPassword(t *testing.T) {
	c := newTestClient(t)

	code, body := c.do(http.MethodPost, "/user", `{"email":"luke@tatooine.org","password":"blue-milk","name":"Luke"}`)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"msg":"User created"}`, body)

	code, body = c.do(http.MethodGet, "/user", "")
	require.Equal(t, http.StatusOK, code)

	var users []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "luke@tatooine.org", users[0]["email"])
	assert.Equal(t, "Luke", users[0]["name"])
	assert.NotContains(t, users[0], "password")
	assert.NotContains(t, body, "blue-milk")

	code, body = c.do(http.MethodPost, "/user", `{"email":"luke@tatooine.org","password":"x","name":"Other Luke"}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"msg":"User already exists"}`, body)
}

func TestDeletedUserIsGone(t *testing.T) {
	c := newTestClient(t)

	code, _ := c.do(http.MethodPost, "/user", `{"email":"ben@kenobi.net","password":"force","name":"Ben"}`)
	require.Equal(t, http.StatusOK, code)

	code, body := c.do(http.MethodGet, "/user/1", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"id":1,"email":"ben@kenobi.net","name":"Ben"}`, body)

	code, body = c.do(http.MethodDelete, "/user/1", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"msg":"User deleted"}`, body)

	code, body = c.do(http.MethodGet, "/user/1", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"msg":"User doesn't exists"}`, body)

	code, _ = c.do(http.MethodDelete, "/user/1", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestDuplicatePersonIsRejected(t *testing.T) {
	c := newTestClient(t)

	code, body := c.do(http.MethodPost, "/people", `{"name":"Chewbacca","description":"Wookiee"}`)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"msg":"Person created"}`, body)

	code, body = c.do(http.MethodPost, "/people", `{"name":"Chewbacca","description":"another one"}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"msg":"Person already exists"}`, body)

	code, body = c.do(http.MethodGet, "/people", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[{"id":1,"name":"Chewbacca","description":"Wookiee"}]`, body)
}

func TestEmptyNameIsStored(t *testing.T) {
	c := newTestClient(t)

	code, body := c.do(http.MethodPost, "/people", `{"name":""}`)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"msg":"Person created"}`, body)

	code, body = c.do(http.MethodGet, "/people/1", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"id":1,"name":"","description":null}`, body)

	code, body = c.do(http.MethodPost, "/people", `{"description":"no name"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"msg":"name is required"}`, body)
}

func TestPlanetsLifecycle(t *testing.T) {
	c := newTestClient(t)

	code, _ := c.do(http.MethodPost, "/planets", `{"name":"Naboo"}`)
	require.Equal(t, http.StatusOK, code)

	code, body := c.do(http.MethodGet, "/planets/1", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"id":1,"name":"Naboo","description":null}`, body)

	code, body = c.do(http.MethodPost, "/planets/", `{"name":"Naboo"}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"msg":"Planet already exists"}`, body)

	code, body = c.do(http.MethodDelete, "/planets/1", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"msg":"Planet deleted"}`, body)

	code, body = c.do(http.MethodGet, "/planets/1", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"msg":"Planet doesn't exist"}`, body)
}

func TestFavoritesWithUnknownReferences(t *testing.T) {
	c := newTestClient(t)

	code, body := c.do(http.MethodPost, "/favorites", `{"user_id":41,"planet_id":42,"people_id":43}`)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"msg":"Favorite created"}`, body)

	code, _ = c.do(http.MethodPost, "/favorites", `{"user_id":41,"planet_id":42,"people_id":43}`)
	require.Equal(t, http.StatusOK, code)

	code, body = c.do(http.MethodGet, "/favorites", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[
		{"id":1,"user_id":41,"planet_id":42,"people_id":43},
		{"id":2,"user_id":41,"planet_id":42,"people_id":43}
	]`, body)

	code, body = c.do(http.MethodGet, "/user/favorites", `{"user_id":41}`)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"people_id":43`)

	code, body = c.do(http.MethodGet, "/user/favorites", `{"user_id":7}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"msg":"No favorites"}`, body)
}

func TestRoutingEdges(t *testing.T) {
	c := newTestClient(t)

	code, body := c.do(http.MethodGet, "/user/luke", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"msg":"Not found"}`, body)

	code, _ = c.do(http.MethodPut, "/planets", "")
	assert.Equal(t, http.StatusMethodNotAllowed, code)

	// trailing slash reaches the list handler
	code, body = c.do(http.MethodGet, "/user/", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"msg":"No users"}`, body)

	code, _ = c.do(http.MethodPost, "/favorites", `not json`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSitemapDocsAndMetrics(t *testing.T) {
	c := newTestClient(t)

	code, body := c.do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, code)
	var sm struct {
		Endpoints []struct {
			Method string `json:"method"`
			Path   string `json:"path"`
		} `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &sm))
	var seen []string
	for _, e := range sm.Endpoints {
		seen = append(seen, e.Method+" "+e.Path)
	}
	assert.Contains(t, seen, "POST /favorites")
	assert.Contains(t, seen, "GET /user")
	assert.Contains(t, seen, "GET /user/favorites")
	for _, e := range seen {
		assert.False(t, strings.HasSuffix(e, "/"), e)
	}
	assert.NotContains(t, seen, "GET /metrics")

	code, body = c.do(http.MethodGet, "/docs/doc.json", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"/user/favorites"`)

	code, body = c.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "starwars_http_requests_total")

	code, _ = c.do(http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, code)
}
