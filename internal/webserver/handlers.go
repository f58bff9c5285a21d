package webserver

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/codemindhq/codemind/core"
	"github.com/codemindhq/codemind/core/lang"
	"github.com/codemindhq/codemind/internal/contract"
	"github.com/codemindhq/codemind/schema"
)

// maxUploadBytes bounds one multipart upload in memory.
const maxUploadBytes = 32 << 20

// API holds the collaborators the HTTP handlers glue together. The handlers
// themselves are thin: decode, delegate, encode.
type API struct {
	cfg       *contract.Config
	store     contract.ProfileStore
	fetcher   contract.RepoFetcher
	suggester contract.Suggester
}

// NewAPI builds the handler set. Store, fetcher and suggester may be nil
// when the corresponding feature is not configured; the affected endpoints
// then report that instead of panicking.
func NewAPI(cfg *contract.Config, store contract.ProfileStore, fetcher contract.RepoFetcher, suggester contract.Suggester) *API {
	return &API{cfg: cfg, store: store, fetcher: fetcher, suggester: suggester}
}

// NewRouter registers all API routes on a fresh mux.
func NewRouter(api *API) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/analyze-files", api.handleAnalyzeFiles)
	mux.HandleFunc("POST /api/analyze-github", api.handleAnalyzeGitHub)
	mux.HandleFunc("POST /api/suggest", api.handleSuggest)
	mux.HandleFunc("POST /api/feedback", api.handleFeedback)
	mux.HandleFunc("GET /api/profile/{owner}", api.handleGetProfile)
	mux.HandleFunc("GET /api/health", api.handleHealth)
	return mux
}

// handleAnalyzeFiles profiles a multipart batch of uploaded source files.
func (api *API) handleAnalyzeFiles(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}
	uploads := r.MultipartForm.File["files"]
	if len(uploads) == 0 {
		writeError(w, http.StatusBadRequest, "no files uploaded")
		return
	}

	var files []schema.SourceFile
	for _, header := range uploads {
		name := path.Base(header.Filename)
		ext := strings.ToLower(path.Ext(name))
		if lang.FromExtension(ext) == schema.LangUnknown {
			continue
		}
		f, err := header.Open()
		if err != nil {
			continue
		}
		content, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil || !isText(content) {
			continue
		}
		files = append(files, schema.SourceFile{Filename: name, Content: string(content)})
	}
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no recognized source files uploaded")
		return
	}

	profile := core.BuildProfile(files)
	api.persist(r.FormValue("owner"), profile)

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "report": profile})
}

// handleAnalyzeGitHub fetches an account's repositories and profiles them.
func (api *API) handleAnalyzeGitHub(w http.ResponseWriter, r *http.Request) {
	if api.fetcher == nil {
		writeError(w, http.StatusServiceUnavailable, "github fetching is not configured")
		return
	}

	var body struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	username := strings.TrimSpace(body.Username)
	if username == "" {
		writeError(w, http.StatusBadRequest, "github username required")
		return
	}

	files, err := api.fetcher.FetchFiles(r.Context(), username, nil)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	if len(files) == 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no source files found in %s's repositories", username))
		return
	}

	profile := core.BuildProfile(files)
	api.persist(username, profile)

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "report": profile})
}

// handleSuggest rewrites a snippet in the caller's stored (or supplied)
// style profile.
func (api *API) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if api.suggester == nil {
		writeError(w, http.StatusServiceUnavailable, "suggestion engine is not configured")
		return
	}

	var body struct {
		Code         string               `json:"code"`
		Owner        string               `json:"owner"`
		StyleProfile *schema.StyleProfile `json:"style_profile"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if strings.TrimSpace(body.Code) == "" {
		writeError(w, http.StatusBadRequest, "code required")
		return
	}

	profile := body.StyleProfile
	if profile == nil && api.store != nil && body.Owner != "" {
		stored, err := api.store.GetProfile(body.Owner)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if stored != nil {
			profile = &stored.Profile
		}
	}
	if profile == nil {
		profile = core.BuildProfile(nil)
	}

	suggestion, err := api.suggester.Suggest(r.Context(), body.Code, profile)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "suggestion": suggestion})
}

// handleFeedback records one accept/reject/ask-more interaction.
func (api *API) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if api.store == nil {
		writeError(w, http.StatusServiceUnavailable, "profile store is not configured")
		return
	}

	var body struct {
		Owner  string `json:"owner"`
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if strings.TrimSpace(body.Owner) == "" {
		writeError(w, http.StatusBadRequest, "owner required")
		return
	}
	action := schema.FeedbackAction(body.Action)
	if _, ok := schema.ValidFeedbackActions[action]; !ok {
		writeError(w, http.StatusBadRequest, "action must be accept, reject or ask_more")
		return
	}

	stored, err := api.store.RecordFeedback(body.Owner, action)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "profile": stored})
}

// handleGetProfile returns the stored profile for an owner.
func (api *API) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	if api.store == nil {
		writeError(w, http.StatusServiceUnavailable, "profile store is not configured")
		return
	}

	owner := r.PathValue("owner")
	stored, err := api.store.GetProfile(owner)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if stored == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no stored profile for %s", owner))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "profile": stored})
}

// handleHealth is the liveness probe.
func (api *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "healthy", "service": "codemind"})
}

// persist saves a profile when both a store and an owner are present.
// Analysis responses never depend on persistence succeeding.
func (api *API) persist(owner string, profile *schema.StyleProfile) {
	if api.store == nil || owner == "" {
		return
	}
	if err := api.store.SaveProfile(owner, profile); err != nil {
		contract.LogWarn("profile not saved", err)
	}
}

// isText applies the same NUL-byte probe the CLI walker uses.
func isText(raw []byte) bool {
	probe := raw
	if len(probe) > 8000 {
		probe = probe[:8000]
	}
	for _, b := range probe {
		if b == 0 {
			return false
		}
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}
