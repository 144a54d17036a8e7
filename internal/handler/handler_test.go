package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"braincards/internal/domain"
	"braincards/internal/middleware"
	"braincards/internal/repository/file"
	"braincards/internal/service"
	"braincards/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router http.Handler
	repo   *file.CategoryRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := file.NewCategoryRepo(filepath.Join(t.TempDir(), "db_card.json"))
	_, err := repo.Ensure(context.Background())
	require.NoError(t, err)

	logger := testutil.NewTestLogger()
	categoryService := service.NewCategoryService(repo, logger)
	h := NewHandler(categoryService, middleware.NewMetrics(), logger)

	return &testEnv{router: h.Router(), repo: repo}
}

func (e *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var msg service.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	return msg.Message
}

func assertCommonHeaders(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestCreateCategory(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/category", `{"title":"Animals","pairs":[["cat","meow"],["dog","woof"]]}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assertCommonHeaders(t, rec)

	var created domain.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Regexp(t, `^bc[0-9a-z]{10}$`, created.ID)
	assert.Equal(t, "Animals", created.Title)
	assert.Equal(t, []domain.Pair{{"cat", "meow"}, {"dog", "woof"}}, created.Pairs)

	assert.Equal(t, "/api/category/"+created.ID, rec.Header().Get("Location"))
	assert.Equal(t, "Location", rec.Header().Get("Access-Control-Expose-Headers"))

	rec = env.do(http.MethodGet, "/api/category", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var summaries []domain.CategorySummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	assert.Equal(t, []domain.CategorySummary{{ID: created.ID, Title: "Animals", Length: 2}}, summaries)
}

func TestCreateCategory_Validation(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		expectedMessage string
	}{
		{
			name:            "missing title",
			body:            `{"pairs":[]}`,
			expectedMessage: service.MsgTitleRequired,
		},
		{
			name:            "body is an array",
			body:            `[1,2]`,
			expectedMessage: service.MsgTitleRequired,
		},
		{
			name:            "body is null",
			body:            `null`,
			expectedMessage: service.MsgTitleRequired,
		},
		{
			name:            "pairs not an array",
			body:            `{"title":"Animals","pairs":{"cat":"meow"}}`,
			expectedMessage: service.MsgPairsNotArray,
		},
		{
			name:            "first pair not an array",
			body:            `{"title":"Animals","pairs":["cat"]}`,
			expectedMessage: service.MsgPairsOnlyArrays,
		},
		{
			name:            "pair with non-string element",
			body:            `{"title":"Animals","pairs":[["cat",1]]}`,
			expectedMessage: service.MsgPairsMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			rec := env.do(http.MethodPost, "/api/category", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assertCommonHeaders(t, rec)
			assert.Equal(t, tt.expectedMessage, decodeMessage(t, rec))
			assert.Empty(t, rec.Header().Get("Location"))

			data, err := os.ReadFile(env.repo.Path())
			require.NoError(t, err)
			assert.Equal(t, "[]", string(data))
		})
	}
}

func TestCreateCategory_MalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{"title":`},
		{name: "empty body", body: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			rec := env.do(http.MethodPost, "/api/category", tt.body)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, "Server Error", decodeMessage(t, rec))
		})
	}
}

func TestGetCategory(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/category", `{"title":"Animals","pairs":[["cat","meow"],["dog","woof"],["cow","moo"]]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	tests := []struct {
		name           string
		target         string
		expectedStatus int
	}{
		{name: "existing id", target: "/api/category/" + created.ID, expectedStatus: http.StatusOK},
		{name: "last segment is the id", target: "/api/category/extra/" + created.ID, expectedStatus: http.StatusOK},
		{name: "query string ignored", target: "/api/category/" + created.ID + "?shuffle=1", expectedStatus: http.StatusOK},
		{name: "unknown id", target: "/api/category/bcdoesnotexist", expectedStatus: http.StatusNotFound},
		{name: "empty id", target: "/api/category/", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodGet, tt.target, "")

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assertCommonHeaders(t, rec)

			if tt.expectedStatus == http.StatusOK {
				var got domain.Category
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, created, got)
			} else {
				assert.Equal(t, service.MsgItemNotFound, decodeMessage(t, rec))
			}
		})
	}
}

func TestListCategories(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/category", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	for _, body := range []string{
		`{"title":"First","pairs":[["a","b"]]}`,
		`{"title":"Second"}`,
	} {
		require.Equal(t, http.StatusCreated, env.do(http.MethodPost, "/api/category", body).Code)
	}

	first := env.do(http.MethodGet, "/api/category", "")
	second := env.do(http.MethodGet, "/api/category", "")
	assert.Equal(t, first.Body.String(), second.Body.String())

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &raw))
	require.Len(t, raw, 2)

	assert.Equal(t, "First", raw[0]["title"])
	assert.Equal(t, float64(1), raw[0]["length"])
	assert.Equal(t, "Second", raw[1]["title"])
	assert.Equal(t, float64(0), raw[1]["length"])
	for _, item := range raw {
		assert.NotContains(t, item, "pairs")
		assert.Contains(t, item, "id")
	}
}

func TestCreateCategory_AppendsToStoreFile(t *testing.T) {
	env := newTestEnv(t)

	existing := []domain.Category{
		testutil.NewTestCategory("bcexisting01", "Colors", domain.Pair{"red", "rouge"}),
	}
	require.NoError(t, env.repo.Save(context.Background(), existing))

	rec := env.do(http.MethodPost, "/api/category", `{"title":"Animals","pairs":[["cat","meow"]]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	data, err := os.ReadFile(env.repo.Path())
	require.NoError(t, err)

	var stored []domain.Category
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, append(existing, created), stored)
}

func TestCorruptStore(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.repo.Path(), []byte("{broken"), 0o644))

	tests := []struct {
		method string
		target string
		body   string
	}{
		{method: http.MethodGet, target: "/api/category"},
		{method: http.MethodGet, target: "/api/category/bc0123456789"},
		{method: http.MethodPost, target: "/api/category", body: `{"title":"Animals"}`},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := env.do(tt.method, tt.target, tt.body)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, "Server Error", decodeMessage(t, rec))
		})
	}
}

func TestOptions(t *testing.T) {
	env := newTestEnv(t)

	for _, target := range []string{"/api/category", "/api/category/bc0123456789", "/anything"} {
		t.Run(target, func(t *testing.T) {
			rec := env.do(http.MethodOptions, target, "")

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Empty(t, rec.Body.String())
			assertCommonHeaders(t, rec)
		})
	}
}

func TestNotFound(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		method string
		target string
	}{
		{name: "outside prefix", method: http.MethodGet, target: "/category"},
		{name: "root", method: http.MethodGet, target: "/"},
		{name: "prefix without route", method: http.MethodGet, target: "/api"},
		{name: "unknown api route", method: http.MethodGet, target: "/api/unknown"},
		{name: "post to item path", method: http.MethodPost, target: "/api/category/bc0123456789"},
		{name: "delete category", method: http.MethodDelete, target: "/api/category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(tt.method, tt.target, "")

			assert.Equal(t, http.StatusNotFound, rec.Code)
			assertCommonHeaders(t, rec)
			assert.Equal(t, "Not Found", decodeMessage(t, rec))
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/category", "").Code)

	rec := env.do(http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
	assert.Contains(t, rec.Body.String(), `route="/api/category"`)
}

func TestLastSegment(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "bc0123456789", expected: "bc0123456789"},
		{input: "a/b", expected: "b"},
		{input: "", expected: ""},
		{input: "a/", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, lastSegment(tt.input))
		})
	}
}
