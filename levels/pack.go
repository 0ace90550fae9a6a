// File: levels/pack.go
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/goccy/go-yaml"
)

//go:embed data
var embedded embed.FS

const manifestName = "pack.yaml"

// PackLevel is one entry of a pack manifest.
type PackLevel struct {
	Name  string `yaml:"name"`
	File  string `yaml:"file"`
	Title string `yaml:"title"`
}

// Pack is a set of levels described by a pack.yaml manifest.
type Pack struct {
	Name   string      `yaml:"name"`
	Author string      `yaml:"author"`
	Levels []PackLevel `yaml:"levels"`

	fsys fs.FS
}

// DefaultPack returns the pack compiled into the binary.
func DefaultPack() (*Pack, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return LoadPack(sub)
}

// LoadPack reads the manifest at the root of fsys.
func LoadPack(fsys fs.FS) (*Pack, error) {
	data, err := fs.ReadFile(fsys, manifestName)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", manifestName, err)
	}
	pack := &Pack{fsys: fsys}
	if err := yaml.Unmarshal(data, pack); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", manifestName, err)
	}

	seen := make(map[string]bool, len(pack.Levels))
	for i, lvl := range pack.Levels {
		if err := ValidateName(lvl.Name); err != nil {
			return nil, fmt.Errorf("%s level %d: %w", manifestName, i+1, err)
		}
		if seen[lvl.Name] {
			return nil, fmt.Errorf("%s: duplicate level %q", manifestName, lvl.Name)
		}
		seen[lvl.Name] = true
		if lvl.File == "" {
			pack.Levels[i].File = lvl.Name + ".txt"
		}
	}
	return pack, nil
}

func (p *Pack) Names() []string {
	names := make([]string, len(p.Levels))
	for i, lvl := range p.Levels {
		names[i] = lvl.Name
	}
	return names
}

// Level returns the text of the named level.
func (p *Pack) Level(name string) (string, error) {
	for _, lvl := range p.Levels {
		if lvl.Name != name {
			continue
		}
		data, err := fs.ReadFile(p.fsys, path.Clean(lvl.File))
		if err != nil {
			return "", fmt.Errorf("failed to read level %s: %w", name, err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}
