// Package scanner discovers analyzable source files for multi-file
// runs.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/presagehq/presage/pkg/config"
	"github.com/presagehq/presage/pkg/parser"
)

// Scanner finds source files under the configured exclusions.
type Scanner struct {
	config *config.Config
}

// New creates a scanner.
func New(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scanner{config: cfg}
}

// ScanPaths expands files and directories into a sorted, deduplicated
// list of supported source files.
func (s *Scanner) ScanPaths(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.IsDir() {
			if s.includes(path) {
				add(path)
			}
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // skip unreadable entries
			}
			if d.IsDir() {
				if s.excludedDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if s.includes(p) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// includes reports whether a file is a supported, non-excluded source
// file.
func (s *Scanner) includes(path string) bool {
	if parser.DetectLanguage(path) == parser.LangUnknown {
		return false
	}

	ext := filepath.Ext(path)
	for _, excluded := range s.config.Exclude.Extensions {
		if ext == excluded {
			return false
		}
	}

	normalized := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, pattern := range s.config.Exclude.Patterns {
		if ok, _ := doublestar.Match(pattern, normalized); ok {
			return false
		}
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, base); ok {
				return false
			}
		}
	}
	return true
}

func (s *Scanner) excludedDir(name string) bool {
	for _, d := range s.config.Exclude.Dirs {
		if name == d {
			return true
		}
	}
	return false
}
