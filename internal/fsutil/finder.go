// Package fsutil provides file system utility functions.
package fsutil

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/specialistvlad/drawcheck/internal/ctxlog"
)

// HasSuffix reports whether name ends with one of the extensions. Matching
// is case-insensitive so "Flow.DRAWIO" is found as well.
func HasSuffix(name string, extensions []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		if ext != "" && strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// FindFilesByExtension recursively searches the given root path for all files
// ending with one of the specified extensions. It returns their full paths in
// walk order.
func FindFilesByExtension(rootPath string, extensions ...string) ([]string, error) {
	if len(extensions) == 0 {
		panic("at least one extension is required")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && HasSuffix(d.Name(), extensions) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// Expand resolves command-line paths into a sorted, de-duplicated list of
// files. Directories are searched for the given extensions; files named
// explicitly are kept whatever their extension. Paths that do not exist are
// logged and skipped.
func Expand(ctx context.Context, paths []string, extensions []string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Path does not exist, skipping.", "path", path)
			continue
		}
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			add(path)
			continue
		}

		found, err := FindFilesByExtension(path, extensions...)
		if err != nil {
			return nil, err
		}
		logger.Debug("Directory searched.", "path", path, "files_found", len(found))
		for _, f := range found {
			add(f)
		}
	}

	sort.Strings(files)
	return files, nil
}
