package webserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemindhq/codemind/internal/aiengine"
	"github.com/codemindhq/codemind/internal/contract"
	"github.com/codemindhq/codemind/schema"
)

// memStore is an in-memory ProfileStore for handler tests.
type memStore struct {
	profiles map[string]*schema.StoredProfile
}

func newMemStore() *memStore {
	return &memStore{profiles: make(map[string]*schema.StoredProfile)}
}

func (m *memStore) SaveProfile(owner string, profile *schema.StyleProfile) error {
	stored, ok := m.profiles[owner]
	if !ok {
		stored = &schema.StoredProfile{Owner: owner}
		m.profiles[owner] = stored
	}
	stored.Profile = *profile
	return nil
}

func (m *memStore) GetProfile(owner string) (*schema.StoredProfile, error) {
	stored, ok := m.profiles[owner]
	if !ok {
		return nil, nil
	}
	clone := *stored
	return &clone, nil
}

func (m *memStore) RecordFeedback(owner string, action schema.FeedbackAction) (*schema.StoredProfile, error) {
	stored, ok := m.profiles[owner]
	if !ok {
		return nil, fmt.Errorf("no stored profile for %s", owner)
	}
	updated := aiengine.ApplyFeedback(stored, action)
	m.profiles[owner] = updated
	return updated, nil
}

func (m *memStore) GetStatus() (schema.StoreStatus, error) {
	return schema.StoreStatus{Backend: schema.NoneBackend, ProfileCount: len(m.profiles)}, nil
}

func (m *memStore) Close() error { return nil }

// stubFetcher returns canned files for one username.
type stubFetcher struct {
	files map[string][]schema.SourceFile
}

func (s *stubFetcher) ListRepos(_ context.Context, owner string) ([]string, error) {
	if _, ok := s.files[owner]; !ok {
		return nil, fmt.Errorf("github resource not found: %s", owner)
	}
	return []string{"repo"}, nil
}

func (s *stubFetcher) FetchFiles(_ context.Context, owner string, _ contract.ProgressFunc) ([]schema.SourceFile, error) {
	return s.files[owner], nil
}

// stubSuggester echoes a fixed suggestion.
type stubSuggester struct{}

func (s *stubSuggester) Suggest(_ context.Context, _ string, profile *schema.StyleProfile) (*schema.SuggestionResult, error) {
	return &schema.SuggestionResult{
		HasSuggestion: true,
		ImprovedCode:  "improved",
		Explanation:   "uses " + string(profile.NamingStyle),
		Confidence:    0.8,
	}, nil
}

const pythonSample = `def get_data(value):
    """Fetch data.

    Args:
        value: the input.
    """
    return value
`

func newTestRouter(store contract.ProfileStore) *http.ServeMux {
	fetcher := &stubFetcher{files: map[string][]schema.SourceFile{
		"alice": {{Filename: "repo/main.py", Content: pythonSample}},
	}}
	api := NewAPI(&contract.Config{}, store, fetcher, &stubSuggester{})
	return NewRouter(api)
}

// multipartBody builds a multipart form with the given named files.
func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func doRequest(t *testing.T, router *http.ServeMux, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return rec, payload
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(newMemStore())
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)

	rec, payload := doRequest(t, router, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", payload["status"])
}

func TestAnalyzeFilesEndpoint(t *testing.T) {
	store := newMemStore()
	router := newTestRouter(store)

	body, contentType := multipartBody(t, map[string]string{
		"main.py":    pythonSample,
		"notes.xyz2": "not code",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-files?owner=alice", body)
	req.Header.Set("Content-Type", contentType)

	rec, payload := doRequest(t, router, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["success"])

	report := payload["report"].(map[string]any)
	assert.Equal(t, string(schema.LangPython), report["primary_language"])
	assert.Equal(t, float64(1), report["files_analyzed"])

	// The profile was persisted for the owner passed in the form.
	stored, err := store.GetProfile("alice")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, schema.LangPython, stored.Profile.PrimaryLanguage)
}

func TestAnalyzeFilesRejectsEmptyUpload(t *testing.T) {
	router := newTestRouter(newMemStore())

	body, contentType := multipartBody(t, map[string]string{"data.bin2": "x"})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-files", body)
	req.Header.Set("Content-Type", contentType)

	rec, payload := doRequest(t, router, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, payload["error"], "no recognized source files")
}

func TestAnalyzeGitHubEndpoint(t *testing.T) {
	store := newMemStore()
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-github",
		strings.NewReader(`{"username": "alice"}`))

	rec, payload := doRequest(t, router, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["success"])

	stored, err := store.GetProfile("alice")
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestAnalyzeGitHubUnknownUser(t *testing.T) {
	router := newTestRouter(newMemStore())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-github",
		strings.NewReader(`{"username": "ghost"}`))

	rec, payload := doRequest(t, router, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, payload["error"], "ghost")
}

func TestAnalyzeGitHubRequiresUsername(t *testing.T) {
	router := newTestRouter(newMemStore())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-github",
		strings.NewReader(`{"username": "  "}`))

	rec, _ := doRequest(t, router, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSuggestEndpointUsesStoredProfile(t *testing.T) {
	store := newMemStore()
	require.NoError(t, store.SaveProfile("alice", &schema.StyleProfile{
		NamingStyle:   schema.CamelCase,
		FilesAnalyzed: 1,
	}))
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/api/suggest",
		strings.NewReader(`{"code": "x = 1", "owner": "alice"}`))

	rec, payload := doRequest(t, router, req)
	require.Equal(t, http.StatusOK, rec.Code)

	suggestion := payload["suggestion"].(map[string]any)
	assert.Equal(t, true, suggestion["has_suggestion"])
	assert.Equal(t, "uses camelCase", suggestion["explanation"])
}

func TestSuggestEndpointRequiresCode(t *testing.T) {
	router := newTestRouter(newMemStore())

	req := httptest.NewRequest(http.MethodPost, "/api/suggest",
		strings.NewReader(`{"code": ""}`))

	rec, _ := doRequest(t, router, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeedbackEndpoint(t *testing.T) {
	store := newMemStore()
	require.NoError(t, store.SaveProfile("alice", &schema.StyleProfile{FilesAnalyzed: 1}))
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/api/feedback",
		strings.NewReader(`{"owner": "alice", "action": "accept"}`))

	rec, payload := doRequest(t, router, req)
	require.Equal(t, http.StatusOK, rec.Code)

	profile := payload["profile"].(map[string]any)
	assert.Equal(t, float64(1), profile["total_interactions"])
	assert.Equal(t, float64(1), profile["suggestions_accepted"])
}

func TestFeedbackEndpointRejectsBadAction(t *testing.T) {
	router := newTestRouter(newMemStore())

	req := httptest.NewRequest(http.MethodPost, "/api/feedback",
		strings.NewReader(`{"owner": "alice", "action": "maybe"}`))

	rec, _ := doRequest(t, router, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProfileEndpoint(t *testing.T) {
	store := newMemStore()
	require.NoError(t, store.SaveProfile("alice", &schema.StyleProfile{
		NamingStyle:   schema.SnakeCase,
		FilesAnalyzed: 2,
	}))
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/profile/alice", nil)
	rec, payload := doRequest(t, router, req)
	require.Equal(t, http.StatusOK, rec.Code)

	profile := payload["profile"].(map[string]any)
	assert.Equal(t, "alice", profile["owner"])

	req = httptest.NewRequest(http.MethodGet, "/api/profile/nobody", nil)
	rec, _ = doRequest(t, router, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
