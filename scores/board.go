// File: scores/board.go
package scores

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidEntry = errors.New("invalid score entry")

// Entry is one finished game.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"sessionId"`
	Player    string    `json:"player"`
	Level     string    `json:"level"`
	Score     int       `json:"score"`
	Seconds   float64   `json:"seconds"`
	Won       bool      `json:"won"`
	At        time.Time `json:"at"`
}

// NewEntry stamps a result with a fresh id and the current time.
func NewEntry(sessionID uuid.UUID, player, level string, score int, seconds float64, won bool) Entry {
	return Entry{
		ID:        uuid.New(),
		SessionID: sessionID,
		Player:    player,
		Level:     level,
		Score:     score,
		Seconds:   seconds,
		Won:       won,
		At:        time.Now().UTC(),
	}
}

func (e Entry) validate() error {
	if e.ID == uuid.Nil || e.Level == "" || e.Score < 0 {
		return ErrInvalidEntry
	}
	return nil
}

// Board is a per-level leaderboard.
type Board interface {
	Submit(ctx context.Context, entry Entry) error
	Top(ctx context.Context, level string, n int) ([]Entry, error)
}

// less orders entries best first: higher score, then faster, then earlier.
func less(a, b Entry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Seconds != b.Seconds {
		return a.Seconds < b.Seconds
	}
	return a.At.Before(b.At)
}

// MemoryBoard keeps entries in process.
type MemoryBoard struct {
	mu      sync.RWMutex
	entries map[string][]Entry
}

func NewMemoryBoard() *MemoryBoard {
	return &MemoryBoard{entries: make(map[string][]Entry)}
}

func (b *MemoryBoard) Submit(ctx context.Context, entry Entry) error {
	if err := entry.validate(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	list := append(b.entries[entry.Level], entry)
	sort.SliceStable(list, func(i, j int) bool { return less(list[i], list[j]) })
	b.entries[entry.Level] = list
	return nil
}

func (b *MemoryBoard) Top(ctx context.Context, level string, n int) ([]Entry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	list := b.entries[level]
	if n <= 0 || n > len(list) {
		n = len(list)
	}
	out := make([]Entry, n)
	copy(out, list[:n])
	return out, nil
}
