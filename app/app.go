// File: app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/lguibr/brickbreaker/game"
	"github.com/lguibr/brickbreaker/levels"
	"github.com/lguibr/brickbreaker/scores"
	"github.com/lguibr/brickbreaker/utils"
)

// Options selects configuration and storage backends for a front end.
type Options struct {
	ConfigPath string
	LevelsDir  string // user level directory for the file store
	RedisAddr  string // enables Redis level storage and leaderboard
	SQLDriver  string // "postgres" or "mysql"
	SQLDSN     string
}

// App bundles the config, level storage and leaderboard shared by the
// terminal and windowed front ends.
type App struct {
	Config utils.Config
	Pack   *levels.Pack
	Scores scores.Board

	// Levels is the writable store; pack levels back it for reads.
	Levels levels.Store
	files  *levels.FSStore

	redis *redis.Client
	sql   *levels.SQLStore
}

// Open loads the config and connects the configured backends. Without a
// remote backend levels live on disk and scores in memory.
func Open(ctx context.Context, opts Options) (*App, error) {
	cfg, err := utils.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	pack, err := levels.DefaultPack()
	if err != nil {
		return nil, err
	}

	a := &App{
		Config: cfg,
		Pack:   pack,
		Scores: scores.NewMemoryBoard(),
		files:  levels.NewFSStore(pack, opts.LevelsDir),
	}
	a.Levels = a.files

	if opts.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: opts.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if _, err := client.Ping(pingCtx).Result(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.RedisAddr, err)
		}
		a.redis = client
		a.Levels = levels.NewRedisStore(client, "")
		a.Scores = scores.NewRedisBoard(client, 0)
	}

	if opts.SQLDriver != "" {
		store, err := levels.OpenSQLStore(ctx, opts.SQLDriver, opts.SQLDSN)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.sql = store
		a.Levels = store
	}
	return a, nil
}

// LevelNames lists the pack followed by every stored level not in it.
func (a *App) LevelNames(ctx context.Context) ([]string, error) {
	names := a.Pack.Names()
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	stored, err := a.Levels.List(ctx)
	if err != nil {
		return names, err
	}
	for _, n := range stored {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	return names, nil
}

// LoadLevel reads a level from the active store, falling back to the pack
// and the level directory.
func (a *App) LoadLevel(ctx context.Context, name string) (string, error) {
	text, err := a.Levels.Load(ctx, name)
	if err == nil || a.Levels == levels.Store(a.files) || !errors.Is(err, levels.ErrNotFound) {
		return text, err
	}
	return a.files.Load(ctx, name)
}

// NewGame starts a game on the named level.
func (a *App) NewGame(ctx context.Context, name string) (*game.Game, error) {
	g, err := game.NewGame(a.Config)
	if err != nil {
		return nil, err
	}
	text, err := a.LoadLevel(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := g.LoadLevel(text); err != nil {
		return nil, fmt.Errorf("level %q: %w", name, err)
	}
	return g, nil
}

// SaveLevel stores the game's current grid under name.
func (a *App) SaveLevel(ctx context.Context, name string, g *game.Game) error {
	return a.Levels.Save(ctx, name, g.LevelText())
}

// SubmitResult records a finished game. Unfinished games are ignored.
func (a *App) SubmitResult(ctx context.Context, player, level string, snap game.Snapshot) error {
	if !snap.Won && !snap.Lost {
		return nil
	}
	entry := scores.NewEntry(snap.SessionID, player, level, snap.Score, snap.Time, snap.Won)
	if err := a.Scores.Submit(ctx, entry); err != nil {
		return fmt.Errorf("failed to submit score: %w", err)
	}
	return nil
}

func (a *App) Close() {
	if a.sql != nil {
		if err := a.sql.Close(); err != nil {
			log.Printf("WARN: closing level database: %v", err)
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("WARN: closing redis client: %v", err)
		}
	}
}
