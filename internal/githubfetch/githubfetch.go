// Package githubfetch pulls source files from the GitHub REST API so they
// can be analyzed like any locally collected batch.
package githubfetch

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/codemindhq/codemind/core/lang"
	"github.com/codemindhq/codemind/internal/contract"
	"github.com/codemindhq/codemind/schema"
)

// DefaultAPIBase is the public GitHub REST endpoint.
const DefaultAPIBase = "https://api.github.com"

// Fetcher downloads source files for one GitHub account. All caps come from
// the validated config; the fetcher itself keeps no mutable state between
// calls, so one instance can serve concurrent requests.
type Fetcher struct {
	client  *http.Client
	baseURL string
	token   string

	maxRepos        int
	maxFilesPerRepo int
	maxTotalFiles   int
	maxFileBytes    int
}

var _ contract.RepoFetcher = &Fetcher{} // Compile-time check

// New builds a Fetcher from the validated config.
func New(cfg *contract.Config) *Fetcher {
	baseURL := cfg.GitHubAPI
	if baseURL == "" {
		baseURL = DefaultAPIBase
	}
	return &Fetcher{
		client:          &http.Client{Timeout: 10 * time.Second},
		baseURL:         strings.TrimRight(baseURL, "/"),
		token:           cfg.GitHubToken,
		maxRepos:        cfg.MaxRepos,
		maxFilesPerRepo: cfg.MaxFilesPerRepo,
		maxTotalFiles:   cfg.MaxTotalFiles,
		maxFileBytes:    cfg.MaxFileBytes,
	}
}

// repoEntry is the subset of the repository listing payload we care about.
type repoEntry struct {
	Name string `json:"name"`
	Fork bool   `json:"fork"`
}

// treeEntry is one node of a git tree listing.
type treeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
	Size int    `json:"size"`
	URL  string `json:"url"`
}

// blobPayload is the base64 blob response.
type blobPayload struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// ListRepos returns the account's non-fork repository names, most recently
// pushed first, capped at the configured repo limit.
func (f *Fetcher) ListRepos(ctx context.Context, owner string) ([]string, error) {
	url := fmt.Sprintf("%s/users/%s/repos?sort=pushed&per_page=100", f.baseURL, owner)
	var entries []repoEntry
	if err := f.getJSON(ctx, url, &entries); err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.Fork {
			continue
		}
		names = append(names, entry.Name)
		if len(names) >= f.maxRepos {
			break
		}
	}
	return names, nil
}

// FetchFiles downloads recognized source files across the account's
// repositories. Per-repo and total file caps bound the work; files larger
// than the size cap or with unrecognized extensions are skipped. Progress is
// reported through the callback as each repository completes.
func (f *Fetcher) FetchFiles(ctx context.Context, owner string, progress contract.ProgressFunc) ([]schema.SourceFile, error) {
	report := func(percent int, stage string) {
		if progress != nil {
			progress(percent, stage)
		}
	}

	report(0, "listing repositories")
	repos, err := f.ListRepos(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(repos) == 0 {
		return nil, nil
	}

	var files []schema.SourceFile
	for i, repo := range repos {
		report(5+90*i/len(repos), fmt.Sprintf("fetching %s (%d/%d)", repo, i+1, len(repos)))

		repoFiles, err := f.fetchRepoFiles(ctx, owner, repo, f.maxTotalFiles-len(files))
		if err != nil {
			// One broken repo must not sink the whole account.
			contract.LogWarn("skipping repository "+repo, err)
			continue
		}
		files = append(files, repoFiles...)
		if len(files) >= f.maxTotalFiles {
			break
		}
	}

	report(100, fmt.Sprintf("fetched %d files", len(files)))
	return files, nil
}

// fetchRepoFiles walks one repository tree and downloads its code blobs.
// The default branch is assumed to be main, with a master fallback.
func (f *Fetcher) fetchRepoFiles(ctx context.Context, owner, repo string, remaining int) ([]schema.SourceFile, error) {
	var tree struct {
		Tree []treeEntry `json:"tree"`
	}
	url := fmt.Sprintf("%s/repos/%s/%s/git/trees/main?recursive=1", f.baseURL, owner, repo)
	if err := f.getJSON(ctx, url, &tree); err != nil {
		url = fmt.Sprintf("%s/repos/%s/%s/git/trees/master?recursive=1", f.baseURL, owner, repo)
		if err := f.getJSON(ctx, url, &tree); err != nil {
			return nil, err
		}
	}

	var files []schema.SourceFile
	for _, entry := range tree.Tree {
		if len(files) >= f.maxFilesPerRepo || len(files) >= remaining {
			break
		}
		if entry.Type != "blob" || entry.URL == "" {
			continue
		}
		if f.maxFileBytes > 0 && entry.Size > f.maxFileBytes {
			continue
		}
		ext := strings.ToLower(path.Ext(entry.Path))
		if lang.FromExtension(ext) == schema.LangUnknown {
			continue
		}

		content, err := f.fetchBlob(ctx, entry.URL)
		if err != nil {
			contract.LogWarn("skipping blob "+entry.Path, err)
			continue
		}
		files = append(files, schema.SourceFile{
			Filename: repo + "/" + entry.Path,
			Content:  content,
		})
	}
	return files, nil
}

// fetchBlob downloads and decodes one base64 blob.
func (f *Fetcher) fetchBlob(ctx context.Context, url string) (string, error) {
	var payload blobPayload
	if err := f.getJSON(ctx, url, &payload); err != nil {
		return "", err
	}
	if payload.Encoding != "base64" {
		return "", fmt.Errorf("unexpected blob encoding %q", payload.Encoding)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(payload.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("cannot decode blob: %w", err)
	}
	return string(raw), nil
}

// getJSON performs one authenticated GET and decodes the JSON body. The
// common GitHub failure modes get dedicated messages since they are the
// errors users actually see.
func (f *Fetcher) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("github request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("github resource not found: %s", url)
	case resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		return fmt.Errorf("github rate limit exceeded; set a token via --github-token or CODEMIND_GITHUB_TOKEN")
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("github returned status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("cannot read github response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("cannot decode github response: %w", err)
	}
	return nil
}
