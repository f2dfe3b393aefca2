package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"apexdoc/internal/apexdoc"
)

// sourceExts maps Apex file extensions to the host parser used by
// whole-file formatting.
var sourceExts = map[string]apexdoc.Parser{
	".cls":     apexdoc.ParserApex,
	".trigger": apexdoc.ParserApex,
	".apex":    apexdoc.ParserAnonymous,
}

// IsSourceFile reports whether path has an Apex source extension.
func IsSourceFile(path string) bool {
	_, ok := sourceExts[strings.ToLower(filepath.Ext(path))]
	return ok
}

func parserFor(path string) apexdoc.Parser {
	if p, ok := sourceExts[strings.ToLower(filepath.Ext(path))]; ok {
		return p
	}
	return apexdoc.ParserAnonymous
}

// CollectFiles expands paths into a sorted list of Apex source files.
// Directories are walked recursively; files and directories matching any
// exclude glob (doublestar syntax, slash-separated) are skipped.
func CollectFiles(ctx context.Context, paths, excludes []string) ([]string, error) {
	for _, pat := range excludes {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("collect: invalid exclude pattern %q", pat)
		}
	}
	excluded := func(path string) bool {
		slash := filepath.ToSlash(path)
		for _, pat := range excludes {
			if ok, _ := doublestar.Match(pat, slash); ok {
				return true
			}
			if ok, _ := doublestar.Match(pat, filepath.Base(path)); ok {
				return true
			}
		}
		return false
	}

	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			// явно указанный файл берём даже с чужим расширением
			if !excluded(p) {
				addFile(p)
			}
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && excluded(path) {
					return filepath.SkipDir
				}
				return nil
			}
			if IsSourceFile(path) && !excluded(path) {
				addFile(path)
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
