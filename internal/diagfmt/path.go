package diagfmt

import (
	"path/filepath"
	"strings"

	"apexdoc/internal/source"
)

func displayPath(fs *source.FileSet, f *source.File, mode PathMode) string {
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(filepath.FromSlash(f.Path)); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case PathModeRelative:
		if filepath.IsAbs(filepath.FromSlash(f.Path)) {
			return fs.RelPath(f)
		}
		return f.Path
	case PathModeBasename:
		return filepath.Base(f.Path)
	default:
		rel := fs.RelPath(f)
		if strings.HasPrefix(rel, "../") {
			return f.Path
		}
		return rel
	}
}
