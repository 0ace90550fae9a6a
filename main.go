package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lguibr/brickbreaker/app"
	"github.com/lguibr/brickbreaker/audio"
	"github.com/lguibr/brickbreaker/bollywood"
	"github.com/lguibr/brickbreaker/game"
	"github.com/lguibr/brickbreaker/terminal"
)

func main() {
	configPath := flag.String("config", "", "config file (yaml, json or toml)")
	level := flag.String("level", "classic", "level to play")
	levelsDir := flag.String("levels-dir", "levels.d", "directory for edited levels")
	redisAddr := flag.String("redis", "", "redis address for levels and scores")
	sqlDriver := flag.String("sql-driver", "", "level database driver: postgres or mysql")
	sqlDSN := flag.String("sql-dsn", "", "level database DSN")
	player := flag.String("player", "player", "name on the leaderboard")
	mute := flag.Bool("mute", false, "disable sound")
	logPath := flag.String("log", "brickbreaker.log", "log file while the terminal UI runs")

	headless := flag.Bool("headless", false, "run without a terminal UI and print the final frame")
	defaults := terminal.DefaultHeadlessOptions()
	ticks := flag.Int("ticks", defaults.Ticks, "headless: number of fixed ticks")
	cols := flag.Int("cols", defaults.Cols, "headless: frame width in characters")
	rows := flag.Int("rows", defaults.Rows, "headless: frame height in characters")
	color := flag.Bool("color", false, "headless: ANSI colored frame")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := app.Open(ctx, app.Options{
		ConfigPath: *configPath,
		LevelsDir:  *levelsDir,
		RedisAddr:  *redisAddr,
		SQLDriver:  *sqlDriver,
		SQLDSN:     *sqlDSN,
	})
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	defer a.Close()

	g, err := a.NewGame(ctx, *level)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}

	engine := bollywood.NewEngine()
	defer engine.Shutdown(2 * time.Second)

	if *headless {
		pid := engine.Spawn(bollywood.NewProps(game.NewGameActorProducer(engine, g, 0)))
		opts := defaults
		opts.Ticks, opts.Cols, opts.Rows, opts.Color = *ticks, *cols, *rows, *color
		snap, err := terminal.RunHeadless(engine, pid, opts, os.Stdout)
		if err != nil {
			log.Fatalf("ERROR: %v", err)
		}
		if err := a.SubmitResult(ctx, *player, *level, snap); err != nil {
			log.Printf("WARN: %v", err)
		}
		return
	}

	if f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		log.SetOutput(f)
		defer f.Close()
	}

	sound := audio.NewPlayer(0)
	if !*mute {
		if err := sound.Init(); err != nil {
			log.Printf("WARN: audio disabled: %v", err)
		}
	}
	defer sound.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	defer screen.Fini()

	period := time.Duration(a.Config.TickPeriodMs) * time.Millisecond
	pid := engine.Spawn(bollywood.NewProps(game.NewGameActorProducer(engine, g, period)))
	ui := terminal.NewUI(screen, engine, pid, a, sound, *level, *player)
	if err := ui.Run(ctx); err != nil && ctx.Err() == nil {
		log.Printf("ERROR: %v", err)
	}
}
