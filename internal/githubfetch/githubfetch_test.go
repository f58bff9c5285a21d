package githubfetch

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemindhq/codemind/internal/contract"
)

// newTestConfig returns a config pointing at a fake API server.
func newTestConfig(apiURL string) *contract.Config {
	return &contract.Config{
		GitHubAPI:       apiURL,
		MaxRepos:        20,
		MaxFilesPerRepo: 30,
		MaxTotalFiles:   50,
		MaxFileBytes:    100 * 1024,
	}
}

// fakeGitHub wires up the three endpoint shapes the fetcher touches.
func fakeGitHub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/users/alice/repos", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[
			{"name": "webapp", "fork": false},
			{"name": "forked-lib", "fork": true},
			{"name": "scripts", "fork": false}
		]`)
	})

	blob := func(r *http.Request, id, content string) string {
		return fmt.Sprintf(`{"path": %q, "type": "blob", "size": %d, "url": %q}`,
			id, len(content), "http://"+r.Host+"/blobs/"+id)
	}
	mux.HandleFunc("/repos/alice/webapp/git/trees/main", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"tree": [%s, %s, {"path": "docs", "type": "tree"}]}`,
			blob(r, "app.py", "def run():\n    pass\n"),
			blob(r, "README.txt", "hello"))
	})
	// scripts has no main branch; only master resolves.
	mux.HandleFunc("/repos/alice/scripts/git/trees/main", func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	})
	mux.HandleFunc("/repos/alice/scripts/git/trees/master", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"tree": [%s]}`, blob(r, "deploy.sh", "#!/bin/sh\necho hi\n"))
	})

	contents := map[string]string{
		"app.py":    "def run():\n    pass\n",
		"deploy.sh": "#!/bin/sh\necho hi\n",
	}
	mux.HandleFunc("/blobs/", func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path[len("/blobs/"):]
		content, ok := contents[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		encoded := base64.StdEncoding.EncodeToString([]byte(content))
		fmt.Fprintf(w, `{"content": %q, "encoding": "base64"}`, encoded)
	})

	mux.HandleFunc("/users/ghost/repos", func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	})
	mux.HandleFunc("/users/busy/repos", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusForbidden)
	})

	return httptest.NewServer(mux)
}

func TestListReposSkipsForks(t *testing.T) {
	server := fakeGitHub(t)
	defer server.Close()

	fetcher := New(newTestConfig(server.URL))
	repos, err := fetcher.ListRepos(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"webapp", "scripts"}, repos)
}

func TestFetchFilesDownloadsCodeBlobs(t *testing.T) {
	server := fakeGitHub(t)
	defer server.Close()

	fetcher := New(newTestConfig(server.URL))

	var stages []string
	files, err := fetcher.FetchFiles(context.Background(), "alice", func(_ int, stage string) {
		stages = append(stages, stage)
	})
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Equal(t, "webapp/app.py", files[0].Filename)
	assert.Equal(t, "def run():\n    pass\n", files[0].Content)
	assert.Equal(t, "scripts/deploy.sh", files[1].Filename)
	assert.NotEmpty(t, stages)
	assert.Equal(t, "listing repositories", stages[0])
}

func TestFetchFilesHonorsTotalCap(t *testing.T) {
	server := fakeGitHub(t)
	defer server.Close()

	cfg := newTestConfig(server.URL)
	cfg.MaxTotalFiles = 1
	fetcher := New(cfg)

	files, err := fetcher.FetchFiles(context.Background(), "alice", nil)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestListReposUserNotFound(t *testing.T) {
	server := fakeGitHub(t)
	defer server.Close()

	fetcher := New(newTestConfig(server.URL))
	_, err := fetcher.ListRepos(context.Background(), "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListReposRateLimited(t *testing.T) {
	server := fakeGitHub(t)
	defer server.Close()

	fetcher := New(newTestConfig(server.URL))
	_, err := fetcher.ListRepos(context.Background(), "busy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}
