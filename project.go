package rigging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Project is the editor's project configuration: where to find definition
// files and textures. Paths in the file are relative to the project file's
// directory and are resolved to absolute paths on load.
type Project struct {
	Name        string `toml:"name"`
	EntitiesDir string `toml:"entities_dir"`
	PartsDir    string `toml:"parts_dir"`
	TexturesDir string `toml:"textures_dir"`

	root string // directory of the project file
}

// LoadProject reads a TOML project file.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rigging: failed to read project file: %w", err)
	}
	var p Project
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("rigging: failed to parse project file %s: %w", path, err)
	}
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		abs = filepath.Dir(path)
	}
	p.root = abs
	return &p, nil
}

// resolve turns a possibly-relative configured path into an absolute one.
func (p *Project) resolve(dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(p.root, dir)
}

// ScanDirs returns the absolute definition directories, in scan order.
// Unconfigured entries are omitted; the index skips missing directories on
// its own.
func (p *Project) ScanDirs() []string {
	var dirs []string
	for _, d := range []string{p.EntitiesDir, p.PartsDir} {
		if d != "" {
			dirs = append(dirs, p.resolve(d))
		}
	}
	return dirs
}

// TexturePath returns the absolute texture directory, or "" if unconfigured.
func (p *Project) TexturePath() string {
	return p.resolve(p.TexturesDir)
}

// NewIndexForProject creates a reference index over the project's scan
// directories.
func NewIndexForProject(p *Project) *Index {
	return NewIndex(p.ScanDirs()...)
}
