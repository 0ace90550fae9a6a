// File: levels/levels_test.go
package levels

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/go-sql-driver/mysql"
	"github.com/lguibr/brickbreaker/game"
	"github.com/lguibr/brickbreaker/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPack_LevelsParse(t *testing.T) {
	pack, err := DefaultPack()
	require.NoError(t, err)
	require.NotEmpty(t, pack.Levels)
	assert.Equal(t, []string{"classic", "checker", "fortress"}, pack.Names())

	canvas := game.NewCanvas(utils.DefaultConfig())
	for _, name := range pack.Names() {
		t.Run(name, func(t *testing.T) {
			text, err := pack.Level(name)
			require.NoError(t, err)
			grid, err := game.ParseLevel(canvas, text)
			require.NoError(t, err)
			assert.Positive(t, grid.CountDestructible())
		})
	}

	_, err = pack.Level("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadPack_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		manifest string
	}{
		{"bad yaml", "levels: [\n"},
		{"bad name", "levels:\n  - name: Bad Name\n"},
		{"duplicate", "levels:\n  - name: a\n  - name: a\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fsys := fstest.MapFS{manifestName: {Data: []byte(tc.manifest)}}
			_, err := LoadPack(fsys)
			assert.Error(t, err)
		})
	}

	_, err := LoadPack(fstest.MapFS{})
	assert.Error(t, err)
}

func TestLoadPack_DefaultFileName(t *testing.T) {
	fsys := fstest.MapFS{
		manifestName: {Data: []byte("name: tiny\nlevels:\n  - name: one\n")},
		"one.txt":    {Data: []byte("1\n")},
	}
	pack, err := LoadPack(fsys)
	require.NoError(t, err)
	text, err := pack.Level("one")
	require.NoError(t, err)
	assert.Equal(t, "1\n", text)
}

func TestFSStore(t *testing.T) {
	ctx := context.Background()
	pack, err := DefaultPack()
	require.NoError(t, err)
	dir := filepath.Join(t.TempDir(), "user")
	store := NewFSStore(pack, dir)

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, pack.Names(), names, "missing directory lists only the pack")

	custom := game.EmptyLevel(14, 15)
	require.NoError(t, store.Save(ctx, "zigzag", custom))
	require.NoError(t, store.Save(ctx, "alpha", custom))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o644))

	names, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, append(pack.Names(), "alpha", "zigzag"), names)

	text, err := store.Load(ctx, "zigzag")
	require.NoError(t, err)
	assert.Equal(t, custom, text)

	// Saving over a pack level shadows it.
	require.NoError(t, store.Save(ctx, "classic", custom))
	text, err = store.Load(ctx, "classic")
	require.NoError(t, err)
	assert.Equal(t, custom, text)

	_, err = store.Load(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Save(ctx, "../escape", custom), ErrInvalidName)
}

func TestFSStore_ReadOnly(t *testing.T) {
	pack, err := DefaultPack()
	require.NoError(t, err)
	store := NewFSStore(pack, "")
	assert.ErrorIs(t, store.Save(context.Background(), "x", ""), ErrReadOnly)
	_, err = store.Load(context.Background(), "fortress")
	assert.NoError(t, err)
}

func TestValidateName(t *testing.T) {
	for name, ok := range map[string]bool{
		"classic":   true,
		"level_2-b": true,
		"":          false,
		"Upper":     false,
		"a/b":       false,
		"-dash":     false,
	} {
		err := ValidateName(name)
		if ok {
			assert.NoError(t, err, name)
		} else {
			assert.ErrorIs(t, err, ErrInvalidName, name)
		}
	}
}

func TestRebind(t *testing.T) {
	q := "SELECT body FROM levels WHERE name = ? AND x = ?"
	assert.Equal(t, q, rebind(DriverMySQL, q))
	assert.Equal(t, "SELECT body FROM levels WHERE name = $1 AND x = $2", rebind(DriverPostgres, q))
	assert.Contains(t, upsertQuery(DriverPostgres), "VALUES ($1, $2) ON CONFLICT")
	assert.Contains(t, upsertQuery(DriverMySQL), "ON DUPLICATE KEY UPDATE")
}

func TestMySQLDSN(t *testing.T) {
	dsn := MySQLDSN("user", "secret", "localhost:3306", "breakout")
	assert.Contains(t, dsn, "user:secret@tcp(localhost:3306)/breakout")

	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "breakout", cfg.DBName)
	assert.True(t, cfg.AllowNativePasswords)
}

func TestOpenSQLStore_UnknownDriver(t *testing.T) {
	_, err := OpenSQLStore(context.Background(), "sqlite", "")
	assert.Error(t, err)
}
