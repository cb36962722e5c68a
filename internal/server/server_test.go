package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-sygnea/pkg/orchestrator"
	"github.com/goliatone/go-sygnea/pkg/render"
	"github.com/goliatone/go-sygnea/pkg/social"
)

const sampleBody = `{
  "profile": {
    "name": "Ada Lovelace",
    "position": "Analyst",
    "website": "ada.dev",
    "socialLinks": {"twitter": "ada", "github": "  "}
  }
}`

func newTestServer(t *testing.T, cfg Config) http.Handler {
	t.Helper()
	srv, err := New(context.Background(), orchestrator.New(), cfg, nil)
	require.NoError(t, err)
	return srv.Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestServer(t, Config{}), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListTemplates(t *testing.T) {
	rec := do(t, newTestServer(t, Config{}), http.MethodGet, "/api/templates", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var templates []render.Template
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &templates))
	ids := make([]string, 0, len(templates))
	for _, tpl := range templates {
		ids = append(ids, tpl.ID)
	}
	assert.Equal(t, []string{"minimal", "professional", "creative", "compact", "modern", "executive"}, ids)
}

func TestListPlatforms(t *testing.T) {
	rec := do(t, newTestServer(t, Config{}), http.MethodGet, "/api/platforms", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var platforms []social.Platform
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &platforms))
	assert.Equal(t, social.Platforms(), platforms)
}

func TestRenderSignature(t *testing.T) {
	rec := do(t, newTestServer(t, Config{}), http.MethodPost, "/api/signatures/compact", sampleBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result orchestrator.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "compact", result.Template.ID)
	assert.Contains(t, result.HTML, `href="https://ada.dev"`)
	assert.Contains(t, result.HTML, `href="https://twitter.com/ada"`)
	assert.NotContains(t, result.HTML, "github.com")
	assert.Contains(t, result.Text, "twitter: ada")
	assert.False(t, result.Sample)
}

func TestRenderSignatureFormats(t *testing.T) {
	h := newTestServer(t, Config{})

	rec := do(t, h, http.MethodPost, "/api/signatures/minimal/text", sampleBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Ada Lovelace\nAnalyst\nWebsite: ada.dev\ntwitter: ada", rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/signatures/minimal/html", sampleBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Ada Lovelace")

	rec = do(t, h, http.MethodPost, "/api/signatures/minimal/pdf", sampleBody)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRenderSignatureErrors(t *testing.T) {
	h := newTestServer(t, Config{})

	cases := map[string]struct {
		target string
		body   string
		status int
	}{
		"unknown template":  {target: "/api/signatures/fancy", body: sampleBody, status: http.StatusNotFound},
		"empty body":        {target: "/api/signatures/minimal", body: "", status: http.StatusBadRequest},
		"malformed json":    {target: "/api/signatures/minimal", body: "{", status: http.StatusBadRequest},
		"unknown field":     {target: "/api/signatures/minimal", body: `{"profile":{"email":"a@b.c"}}`, status: http.StatusBadRequest},
		"wrong field type":  {target: "/api/signatures/minimal", body: `{"profile":{"name":42}}`, status: http.StatusBadRequest},
		"unknown palette":   {target: "/api/signatures/minimal", body: `{"profile":{"name":"Ada"},"palette":"neon"}`, status: http.StatusBadRequest},
		"non-string handle": {target: "/api/signatures/minimal", body: `{"profile":{"socialLinks":{"twitter":1}}}`, status: http.StatusBadRequest},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tc.target, tc.body)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
			assert.NotEmpty(t, errorMessage(t, rec))
		})
	}
}

func TestRenderSignatureReportsIssues(t *testing.T) {
	h := newTestServer(t, Config{})
	rec := do(t, h, http.MethodPost, "/api/signatures/minimal", `{"profile":{"name":42}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Issues)
	assert.Equal(t, "profile.name", body.Issues[0].Field)
	assert.Equal(t, "#/profile/name", body.Issues[0].Path)
}

func TestRenderSignatureRequiresToken(t *testing.T) {
	h := newTestServer(t, Config{APIToken: "s3cret"})

	rec := do(t, h, http.MethodPost, "/api/signatures/minimal", sampleBody)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/signatures/minimal", sampleBody, "Authorization", "Bearer wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/signatures/minimal", sampleBody, "Authorization", "Bearer s3cret")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/templates", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRenderSignatureBodyLimit(t *testing.T) {
	h := newTestServer(t, Config{MaxBodyBytes: 16})
	rec := do(t, h, http.MethodPost, "/api/signatures/minimal", sampleBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreview(t *testing.T) {
	h := newTestServer(t, Config{})

	rec := do(t, h, http.MethodGet, "/preview/modern?name=Ada+Lovelace&twitter=ada", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Ada Lovelace")
	assert.Contains(t, body, "https://twitter.com/ada")
	assert.Contains(t, body, `href="/preview/compact?name=Ada+Lovelace&amp;twitter=ada"`)

	rec = do(t, h, http.MethodGet, "/preview/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPreviewSampleData(t *testing.T) {
	rec := do(t, newTestServer(t, Config{}), http.MethodGet, "/preview", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alex Johnson")
}

func TestOpenAPIDocument(t *testing.T) {
	rec := do(t, newTestServer(t, Config{}), http.MethodGet, "/openapi.json", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/api/signatures/{template}")
	assert.Contains(t, paths, "/preview/{template}")
}

func TestNotFound(t *testing.T) {
	rec := do(t, newTestServer(t, Config{}), http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", errorMessage(t, rec))
}

func TestNewRequiresOrchestrator(t *testing.T) {
	_, err := New(context.Background(), nil, Config{}, nil)
	assert.Error(t, err)
}
