// File: levels/fs_store.go
package levels

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FSStore serves a read-only pack plus user levels saved as <name>.txt in a
// directory. User levels shadow pack levels of the same name.
type FSStore struct {
	pack *Pack
	dir  string
}

// NewFSStore creates a store over pack. An empty dir makes it read-only.
func NewFSStore(pack *Pack, dir string) *FSStore {
	return &FSStore{pack: pack, dir: dir}
}

// List returns pack levels in manifest order followed by user levels sorted
// by name.
func (s *FSStore) List(ctx context.Context) ([]string, error) {
	names := []string{}
	seen := map[string]bool{}
	if s.pack != nil {
		for _, name := range s.pack.Names() {
			names = append(names, name)
			seen[name] = true
		}
	}
	if s.dir == "" {
		return names, nil
	}

	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return names, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.dir, err)
	}
	var user []string
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".txt")
		if !ok || e.IsDir() || seen[name] || ValidateName(name) != nil {
			continue
		}
		user = append(user, name)
	}
	sort.Strings(user)
	return append(names, user...), nil
}

func (s *FSStore) Load(ctx context.Context, name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if s.dir != "" {
		data, err := os.ReadFile(s.path(name))
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to read level %s: %w", name, err)
		}
	}
	if s.pack == nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return s.pack.Level(name)
}

func (s *FSStore) Save(ctx context.Context, name, text string) error {
	if s.dir == "" {
		return ErrReadOnly
	}
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", s.dir, err)
	}
	if err := os.WriteFile(s.path(name), []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to save level %s: %w", name, err)
	}
	return nil
}

func (s *FSStore) path(name string) string {
	return filepath.Join(s.dir, name+".txt")
}
