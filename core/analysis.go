package core

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/codemindhq/codemind/core/agg"
	"github.com/codemindhq/codemind/core/lang"
	"github.com/codemindhq/codemind/internal/contract"
	"github.com/codemindhq/codemind/schema"
)

// BuildProfile runs the whole pipeline on an in-memory batch: classify,
// extract, fold, synthesize. Pure and deterministic; safe for concurrent
// callers as long as each passes its own slice.
func BuildProfile(files []schema.SourceFile) *schema.StyleProfile {
	return Synthesize(agg.Merge(files))
}

// CollectFiles walks a directory tree and loads the source files worth
// analyzing: recognized code extensions, within the size cap, not excluded,
// and not binary. Unreadable files are skipped with a warning rather than
// aborting the walk.
func CollectFiles(root string, cfg *contract.Config) ([]schema.SourceFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", root, err)
	}
	if !info.IsDir() {
		file, err := loadSourceFile(root, filepath.Base(root), cfg.MaxFileBytes)
		if err != nil {
			return nil, err
		}
		if file == nil {
			return nil, fmt.Errorf("%s is not a recognized source file", root)
		}
		return []schema.SourceFile{*file}, nil
	}

	var files []schema.SourceFile
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if entry.IsDir() {
			if rel != "." && contract.ShouldIgnore(rel+"/", cfg.Excludes) {
				return filepath.SkipDir
			}
			return nil
		}
		if contract.ShouldIgnore(rel, cfg.Excludes) {
			return nil
		}
		file, loadErr := loadSourceFile(path, rel, cfg.MaxFileBytes)
		if loadErr != nil {
			contract.LogWarn("skipping file", loadErr)
			return nil
		}
		if file != nil {
			files = append(files, *file)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// loadSourceFile reads one candidate file. A nil result with nil error means
// the file was filtered out (unrecognized extension, too large, or binary).
func loadSourceFile(path, name string, maxBytes int) (*schema.SourceFile, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if lang.FromExtension(ext) == schema.LangUnknown {
		return nil, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if maxBytes > 0 && info.Size() > int64(maxBytes) {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isBinary(raw) {
		return nil, nil
	}
	return &schema.SourceFile{Filename: name, Content: string(raw)}, nil
}

// isBinary applies the usual NUL-byte probe over the leading bytes.
func isBinary(raw []byte) bool {
	probe := raw
	if len(probe) > 8000 {
		probe = probe[:8000]
	}
	for _, b := range probe {
		if b == 0 {
			return true
		}
	}
	return false
}
