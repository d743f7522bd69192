package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdview"
	"github.com/alnah/go-mdview/internal/fileutil"
	"github.com/alnah/go-mdview/internal/hints"
)

// Sentinel errors for input discovery.
var (
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrRemoteInput        = errors.New("remote URLs are not fetched")
)

// MaxWorkers bounds --workers.
const MaxWorkers = 64

// renderableExts lists the extensions picked up when walking directories.
var renderableExts = []string{".md", ".markdown", ".txt", ".json"}

// FileToRender represents a single file to process.
type FileToRender struct {
	InputPath  string
	OutputPath string // empty = stdout
	Type       mdview.DeclaredType
}

// discoverFiles finds the files to render under inputPath.
// A directory is walked for renderable extensions; a single file must have
// a known extension unless forced is set.
func discoverFiles(inputPath, outputDir string, forced *mdview.DeclaredType) ([]FileToRender, error) {
	if fileutil.IsURL(inputPath) {
		return nil, fmt.Errorf("%w: %s (fetch it and pipe to 'mdview render --type remote -')", ErrRemoteInput, inputPath)
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		t, err := fileType(inputPath, forced)
		if err != nil {
			return nil, withHint(err, hints.ForUnknownType(renderableExts))
		}
		return []FileToRender{{
			InputPath:  inputPath,
			OutputPath: resolveOutputPath(inputPath, outputDir, ""),
			Type:       t,
		}}, nil
	}

	var files []FileToRender
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !isRenderable(path) {
			return nil
		}
		t, err := fileType(path, forced)
		if err != nil {
			return err
		}
		files = append(files, FileToRender{
			InputPath:  path,
			OutputPath: resolveOutputPath(path, outputDir, inputPath),
			Type:       t,
		})
		return nil
	})

	return files, err
}

// fileType returns forced when set, else the type for the path's extension.
func fileType(path string, forced *mdview.DeclaredType) (mdview.DeclaredType, error) {
	if forced != nil {
		return *forced, nil
	}
	return mdview.TypeForPath(path)
}

// isRenderable reports whether path has one of the renderable extensions.
func isRenderable(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range renderableExts {
		if ext == e {
			return true
		}
	}
	return false
}

// resolveOutputPath determines the HTML output path for an input file.
// An empty outputDir means stdout; an outputDir ending in .html is a file.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	if outputDir == "" {
		return ""
	}
	if strings.HasSuffix(outputDir, ".html") {
		return outputDir
	}

	name := filepath.Base(inputPath)
	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			name = rel
		}
	}
	out, _ := fileutil.ReplaceExt(filepath.Join(outputDir, name), "html") // constant extension is valid
	return out
}

// withHint appends an actionable hint to err, keeping it matchable with errors.Is.
func withHint(err error, hint string) error {
	if err == nil || hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}
