// File: levels/store.go
package levels

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrNotFound    = errors.New("level not found")
	ErrInvalidName = errors.New("invalid level name")
	ErrReadOnly    = errors.New("level store is read-only")
)

// Store persists level text by name.
type Store interface {
	List(ctx context.Context) ([]string, error)
	Load(ctx context.Context, name string) (string, error)
	Save(ctx context.Context, name, text string) error
}

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// ValidateName accepts short lower-case names usable as file names and keys.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
