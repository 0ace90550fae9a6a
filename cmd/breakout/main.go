// File: cmd/breakout/main.go
package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lguibr/brickbreaker/app"
	"github.com/lguibr/brickbreaker/audio"
)

func main() {
	configPath := flag.String("config", "", "config file (yaml, json or toml)")
	level := flag.String("level", "classic", "level to play")
	levelsDir := flag.String("levels-dir", "levels.d", "directory for edited levels")
	redisAddr := flag.String("redis", "", "redis address for levels and scores")
	player := flag.String("player", "player", "name on the leaderboard")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	ctx := context.Background()
	a, err := app.Open(ctx, app.Options{
		ConfigPath: *configPath,
		LevelsDir:  *levelsDir,
		RedisAddr:  *redisAddr,
	})
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	defer a.Close()

	g, err := a.NewGame(ctx, *level)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}

	sound := audio.NewPlayer(0)
	if !*mute {
		if err := sound.Init(); err != nil {
			log.Printf("WARN: audio disabled: %v", err)
		}
	}
	defer sound.Close()

	w := newWindow(ctx, a, g, *level, *player, sound)
	ebiten.SetWindowSize(a.Config.CanvasWidth, a.Config.CanvasHeight)
	ebiten.SetWindowTitle("Brick Breaker")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(w); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}
