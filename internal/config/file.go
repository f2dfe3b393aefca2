package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileNames are the project file names searched for, in priority order.
var FileNames = []string{".apexdoc.toml", ".apexdoc.yaml", ".apexdoc.yml"}

// File is the on-disk project configuration.
type File struct {
	PrintWidth *int        `toml:"print_width" yaml:"print_width"`
	TabWidth   *int        `toml:"tab_width" yaml:"tab_width"`
	UseTabs    *bool       `toml:"use_tabs" yaml:"use_tabs"`
	Files      FilesConfig `toml:"files" yaml:"files"`
	Cache      CacheConfig `toml:"cache" yaml:"cache"`
}

type FilesConfig struct {
	Exclude []string `toml:"exclude" yaml:"exclude"`
}

type CacheConfig struct {
	Enabled *bool `toml:"enabled" yaml:"enabled"`
}

// Project is a loaded configuration file together with where it was found.
type Project struct {
	Path string
	Root string
	File File
}

// Options overlays the file's values on Default().
func (p *Project) Options() Options {
	opts := Default()
	if p == nil {
		return opts
	}
	if p.File.PrintWidth != nil {
		opts.PrintWidth = *p.File.PrintWidth
	}
	if p.File.TabWidth != nil {
		opts.TabWidth = *p.File.TabWidth
	}
	if p.File.UseTabs != nil {
		opts.UseTabs = Bool(*p.File.UseTabs)
	}
	return opts
}

// CacheEnabled defaults to true when the file does not say otherwise.
func (p *Project) CacheEnabled() bool {
	if p == nil || p.File.Cache.Enabled == nil {
		return true
	}
	return *p.File.Cache.Enabled
}

// Excludes returns the exclude globs from [files].
func (p *Project) Excludes() []string {
	if p == nil {
		return nil
	}
	return p.File.Files.Exclude
}

// Find walks up from startDir looking for one of FileNames.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and loads the project file above startDir. A missing file is
// not an error: (nil, false, nil) is returned.
func Load(startDir string) (*Project, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	f, err := LoadFile(path)
	if err != nil {
		return nil, true, err
	}
	return &Project{Path: path, Root: filepath.Dir(path), File: f}, true, nil
}

// LoadFile decodes a TOML or YAML config file chosen by extension and
// validates the resulting options.
func LoadFile(path string) (File, error) {
	var f File
	switch filepath.Ext(path) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &f); err != nil {
			return File{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return File{}, fmt.Errorf("%s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &f); err != nil {
			return File{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	default:
		return File{}, fmt.Errorf("%s: unsupported config format", path)
	}
	p := Project{File: f}
	if err := p.Options().Validate(); err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
