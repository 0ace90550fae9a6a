// File: cmd/breakout/window.go
package main

import (
	"context"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lguibr/brickbreaker/app"
	"github.com/lguibr/brickbreaker/audio"
	"github.com/lguibr/brickbreaker/game"
	"github.com/lguibr/brickbreaker/render"
	"github.com/lguibr/brickbreaker/utils"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	frameDt = 1.0 / 60

	// keyboardSpeed is paddle travel per second with the arrow keys.
	keyboardSpeed = 600.0
	// keyboardAim is aim input per second with the up/down keys.
	keyboardAim = 120.0
)

var (
	hudColor  = color.RGBA{220, 220, 220, 0xff}
	gridColor = color.RGBA{40, 40, 48, 0xff}
	aimColor  = color.RGBA{120, 120, 120, 0xff}
)

// editorSymbols are picked with the digit keys or cycled with tab.
var editorSymbols = []rune("123456789abcABC*")

var digitKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// powerupKeys grant powerups directly, in PowerupTypes order.
var powerupKeys = []ebiten.Key{ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4, ebiten.KeyF5}

// window adapts the simulation to ebiten's fixed 60 TPS loop.
type window struct {
	ctx    context.Context
	app    *app.App
	game   *game.Game
	level  string
	player string
	sound  *audio.Player
	face   font.Face

	lastCursorY int
	symbol      rune
	submitted   bool
	status      string
}

func newWindow(ctx context.Context, a *app.App, g *game.Game, level, player string, sound *audio.Player) *window {
	_, y := ebiten.CursorPosition()
	return &window{
		ctx:         ctx,
		app:         a,
		game:        g,
		level:       level,
		player:      player,
		sound:       sound,
		face:        basicfont.Face7x13,
		lastCursorY: y,
		symbol:      '1',
	}
}

func (w *window) Update() error {
	w.handleKeys()
	if w.game.EditorMode {
		w.handleEditor()
	} else {
		w.handlePointer()
	}

	w.game.Update(frameDt)
	w.sound.Play(w.game.DrainEvents())

	if (w.game.Won || w.game.Lost) && !w.submitted {
		w.submitted = true
		if err := w.app.SubmitResult(w.ctx, w.player, w.level, w.game.Snapshot()); err != nil {
			log.Printf("WARN: %v", err)
		}
	}
	return nil
}

func (w *window) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		w.game.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		w.game.Reset()
		w.submitted = false
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		w.game.SetEditorMode(!w.game.EditorMode)
		w.submitted = false
	case inpututil.IsKeyJustPressed(ebiten.KeyS) && w.game.EditorMode:
		if err := w.app.SaveLevel(w.ctx, w.level, w.game); err != nil {
			w.status = err.Error()
		} else {
			w.status = "saved " + w.level
		}
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		w.game.Launch()
	}

	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		dx -= keyboardSpeed * frameDt
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		dx += keyboardSpeed * frameDt
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		dy -= keyboardAim * frameDt
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		dy += keyboardAim * frameDt
	}
	if dx != 0 || dy != 0 {
		w.game.Move(dx, dy)
	}

	for i, t := range game.PowerupTypes {
		if i < len(powerupKeys) && inpututil.IsKeyJustPressed(powerupKeys[i]) {
			w.game.ActivatePowerup(t)
		}
	}
}

// handlePointer makes the paddle follow the cursor horizontally; vertical
// cursor motion aims a stuck ball.
func (w *window) handlePointer() {
	x, y := ebiten.CursorPosition()
	dy := float64(y - w.lastCursorY)
	w.lastCursorY = y
	dx := float64(x) - w.game.Paddle.Position.X
	if dx != 0 || dy != 0 {
		w.game.Move(dx, dy)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		w.game.Launch()
	}
}

func (w *window) handleEditor() {
	for i, key := range digitKeys {
		if inpututil.IsKeyJustPressed(key) {
			w.symbol = editorSymbols[i]
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		w.symbol = nextSymbol(w.symbol)
	}

	x, y := ebiten.CursorPosition()
	row, col := w.game.Canvas.BrickCoordsFromDrawCoords(utils.NewVector2(float64(x), float64(y)))
	if !w.game.Canvas.Grid.InBounds(row, col) {
		return
	}
	var err error
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		err = w.game.PlaceBrick(row, col, w.symbol)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		err = w.game.EraseBrick(row, col)
	}
	if err != nil {
		w.status = err.Error()
	}
}

func nextSymbol(current rune) rune {
	for i, s := range editorSymbols {
		if s == current {
			return editorSymbols[(i+1)%len(editorSymbols)]
		}
	}
	return editorSymbols[0]
}

func (w *window) Draw(screen *ebiten.Image) {
	snap := w.game.Snapshot()
	screen.Fill(render.Background.Color())

	if snap.EditorMode {
		w.drawEditorGrid(screen)
	}
	for _, row := range snap.Bricks {
		for _, b := range row {
			if b == nil {
				continue
			}
			r := b.Rect()
			vector.DrawFilledRect(screen, float32(r.Min.X)+1, float32(r.Min.Y)+1,
				float32(r.Width())-2, float32(r.Height())-2, render.BrickColor(b).Color(), false)
		}
	}

	paddleColor := render.PaddleColor
	if snap.Paddle.Sticky {
		paddleColor = render.StickyPaddleColor
	}
	pr := snap.Paddle.Rect
	vector.DrawFilledRect(screen, float32(pr.Min.X), float32(pr.Min.Y),
		float32(pr.Width()), float32(pr.Height()), paddleColor.Color(), true)

	for _, f := range snap.Falling {
		half := snap.PowerupSize / 2
		vector.DrawFilledRect(screen, float32(f.Position.X-half), float32(f.Position.Y-half),
			float32(snap.PowerupSize), float32(snap.PowerupSize), render.PowerupColor(f.Type).Color(), true)
	}

	for _, b := range snap.Balls {
		c := render.BallColor
		if b.Fireball {
			c = render.FireballColor
		}
		vector.DrawFilledCircle(screen, float32(b.Position.X), float32(b.Position.Y),
			float32(snap.BallRadius), c.Color(), true)
		if b.Stuck {
			aim := b.Position.Plus(utils.VectorFromAngle(snap.Paddle.AimAngle, 6*snap.BallRadius))
			vector.StrokeLine(screen, float32(b.Position.X), float32(b.Position.Y),
				float32(aim.X), float32(aim.Y), 1, aimColor, true)
		}
	}

	w.drawHUD(screen, snap)
}

func (w *window) drawEditorGrid(screen *ebiten.Image) {
	c := w.game.Canvas
	for row := 0; row < c.Rows(); row++ {
		for col := 0; col < c.Cols(); col++ {
			p := c.DrawCoordsFromBrickCoords(row, col)
			vector.StrokeRect(screen, float32(p.X), float32(p.Y),
				float32(c.BrickWidth), float32(c.BrickHeight), 1, gridColor, false)
		}
	}
}

func (w *window) drawHUD(screen *ebiten.Image, snap game.Snapshot) {
	line := fmt.Sprintf("%s  score %d  lives %d  time %.1fs", w.level, snap.Score, snap.Lives, snap.Time)
	for _, p := range snap.Powerups {
		line += fmt.Sprintf("  %s %.0f", p.Type, p.Remaining)
	}
	text.Draw(screen, line, w.face, 8, 16, hudColor)

	var banner string
	switch {
	case snap.LoadFailed:
		banner = "level failed to load"
	case snap.EditorMode:
		banner = fmt.Sprintf("EDITOR  brick %c  [1-9/tab] pick  [click] place  [right] erase  [s] save  [e] play", w.symbol)
	case snap.Won:
		banner = "YOU WIN  [r] restart"
	case snap.Lost:
		banner = "GAME OVER  [r] restart"
	case snap.Paused:
		banner = "PAUSED"
	}
	if banner != "" {
		text.Draw(screen, banner, w.face, 8, int(snap.Height)-12, hudColor)
	}
	if w.status != "" {
		text.Draw(screen, w.status, w.face, 8, 32, hudColor)
	}
}

func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.app.Config.CanvasWidth, w.app.Config.CanvasHeight
}
