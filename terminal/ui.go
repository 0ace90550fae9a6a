// File: terminal/ui.go
package terminal

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lguibr/brickbreaker/app"
	"github.com/lguibr/brickbreaker/audio"
	"github.com/lguibr/brickbreaker/bollywood"
	"github.com/lguibr/brickbreaker/game"
	"github.com/lguibr/brickbreaker/render"
	"github.com/lguibr/brickbreaker/utils"
)

const (
	frameInterval = time.Second / 30

	// keyStep is paddle travel per arrow key press in draw units.
	keyStep = 24.0
	// aimStep is aim input per up/down key press.
	aimStep = 8.0
)

// editorSymbols are the brick symbols accepted from the keyboard in the
// editor.
const editorSymbols = "123456789abcABC*"

type control int

const (
	controlNone control = iota
	controlQuit
	controlSave
)

// UI is the terminal front end. It owns the screen and talks to the game
// only through its actor.
type UI struct {
	screen tcell.Screen
	game   client
	canvas *game.Canvas // grid geometry for mouse editing
	app    *app.App
	sound  *audio.Player
	level  string
	player string

	last       game.Snapshot
	symbol     rune
	status     string
	submitted  bool
	lastMouseY int
}

func NewUI(screen tcell.Screen, engine *bollywood.Engine, pid *bollywood.PID, a *app.App, sound *audio.Player, level, player string) *UI {
	return &UI{
		screen:     screen,
		game:       client{engine: engine, pid: pid},
		canvas:     game.NewCanvas(a.Config),
		app:        a,
		sound:      sound,
		level:      level,
		player:     player,
		symbol:     '1',
		lastMouseY: -1,
	}
}

// Run polls input and redraws until the user quits or ctx is done.
func (u *UI) Run(ctx context.Context) error {
	u.screen.EnableMouse()
	u.screen.HideCursor()

	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || u.handleEvent(ctx, ev) == controlQuit {
				return nil
			}
		case <-ticker.C:
			if err := u.frame(ctx); err != nil {
				return err
			}
		}
	}
}

func (u *UI) frame(ctx context.Context) error {
	snap, err := u.game.snapshot()
	if err != nil {
		return err
	}
	u.last = snap

	events, err := u.game.drainEvents()
	if err != nil {
		return err
	}
	u.sound.Play(events)

	if (snap.Won || snap.Lost) && !u.submitted {
		u.submitted = true
		if err := u.app.SubmitResult(ctx, u.player, u.level, snap); err != nil {
			log.Printf("WARN: %v", err)
		}
	}

	u.draw(snap)
	return nil
}

func (u *UI) handleEvent(ctx context.Context, ev tcell.Event) control {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		u.screen.Sync()
	case *tcell.EventKey:
		msg, ctrl := u.mapKey(ev.Key(), ev.Rune())
		if msg != nil {
			u.game.send(msg)
		}
		if ctrl == controlSave {
			u.save(ctx)
		}
		return ctrl
	case *tcell.EventMouse:
		u.handleMouse(ev)
	}
	return controlNone
}

// mapKey turns a key press into a game command and/or a UI control.
func (u *UI) mapKey(key tcell.Key, r rune) (interface{}, control) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return nil, controlQuit
	case tcell.KeyLeft:
		return game.MoveCommand{DX: -keyStep}, controlNone
	case tcell.KeyRight:
		return game.MoveCommand{DX: keyStep}, controlNone
	case tcell.KeyUp:
		return game.MoveCommand{DY: -aimStep}, controlNone
	case tcell.KeyDown:
		return game.MoveCommand{DY: aimStep}, controlNone
	case tcell.KeyF1, tcell.KeyF2, tcell.KeyF3, tcell.KeyF4, tcell.KeyF5:
		i := int(key - tcell.KeyF1)
		if i < len(game.PowerupTypes) {
			return game.ActivatePowerupCommand{Type: game.PowerupTypes[i]}, controlNone
		}
		return nil, controlNone
	case tcell.KeyRune:
	default:
		return nil, controlNone
	}

	if u.last.EditorMode {
		for _, s := range editorSymbols {
			if r == s {
				u.symbol = s
				u.status = fmt.Sprintf("brick %c", s)
				return nil, controlNone
			}
		}
	}

	switch r {
	case 'q':
		return nil, controlQuit
	case ' ':
		return game.LaunchCommand{}, controlNone
	case 'p':
		return game.TogglePauseCommand{}, controlNone
	case 'r':
		u.submitted = false
		return game.ResetCommand{}, controlNone
	case 'm':
		return game.SpawnBallCommand{}, controlNone
	case 'e':
		u.submitted = false
		enabled := !u.last.EditorMode
		u.last.EditorMode = enabled
		return game.SetEditorModeCommand{Enabled: enabled}, controlNone
	case 's':
		if u.last.EditorMode {
			return nil, controlSave
		}
	}
	return nil, controlNone
}

func (u *UI) save(ctx context.Context) {
	text, err := u.game.levelText()
	if err == nil {
		err = u.app.Levels.Save(ctx, u.level, text)
	}
	if err != nil {
		u.status = err.Error()
		return
	}
	u.status = "saved " + u.level
}

func (u *UI) handleMouse(ev *tcell.EventMouse) {
	if u.last.Width <= 0 {
		return
	}
	cols, rows := u.fieldSize()
	cx, cy := ev.Position()
	x, y := cellToDraw(cx, cy, cols, rows, u.last.Width, u.last.Height)

	if u.last.EditorMode {
		u.editAt(ev.Buttons(), x, y)
		return
	}

	var dy float64
	if u.lastMouseY >= 0 {
		dy = float64(cy-u.lastMouseY) * u.last.Height / float64(rows)
	}
	u.lastMouseY = cy
	u.game.send(game.MoveCommand{DX: x - u.last.Paddle.Rect.Center().X, DY: dy})
	if ev.Buttons()&tcell.Button1 != 0 {
		u.game.send(game.LaunchCommand{})
	}
}

func (u *UI) editAt(buttons tcell.ButtonMask, x, y float64) {
	var symbol rune
	switch {
	case buttons&tcell.Button1 != 0:
		symbol = u.symbol
	case buttons&(tcell.Button2|tcell.Button3) != 0:
		symbol = 0
	default:
		return
	}
	row, col := u.canvas.BrickCoordsFromDrawCoords(utils.NewVector2(x, y))
	if !u.canvas.Grid.InBounds(row, col) {
		return
	}
	if err := u.game.editCell(row, col, symbol); err != nil {
		u.status = err.Error()
	}
}

// fieldSize is the screen area used by the play field; the last row holds
// the HUD.
func (u *UI) fieldSize() (cols, rows int) {
	w, h := u.screen.Size()
	return w, max(h-1, 1)
}

// cellToDraw maps the center of a terminal cell to draw coordinates.
func cellToDraw(cx, cy, cols, rows int, width, height float64) (float64, float64) {
	return (float64(cx) + 0.5) * width / float64(cols), (float64(cy) + 0.5) * height / float64(rows)
}

func (u *UI) draw(snap game.Snapshot) {
	u.screen.Clear()
	cols, rows := u.fieldSize()
	drawPixels(u.screen, render.Rasterize(snap, cols, rows))
	drawText(u.screen, 0, rows, hudLine(snap, u.level, u.symbol, u.status), tcell.StyleDefault.Reverse(true))
	u.screen.Show()
}

// cellSetter is the part of tcell.Screen the renderer writes to.
type cellSetter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

func drawPixels(s cellSetter, pixels [][]render.RGBPixel) {
	for y, row := range pixels {
		for x, px := range row {
			if px == render.Background {
				continue
			}
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(px.R), int32(px.G), int32(px.B)))
			s.SetContent(x, y, render.Glyph(px), nil, style)
		}
	}
}

func drawText(s cellSetter, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func hudLine(snap game.Snapshot, level string, symbol rune, status string) string {
	line := fmt.Sprintf(" %s | score %d | lives %d | %.1fs", level, snap.Score, snap.Lives, snap.Time)
	for _, p := range snap.Powerups {
		line += fmt.Sprintf(" | %s %.0f", p.Type, p.Remaining)
	}
	switch {
	case snap.LoadFailed:
		line += " | LEVEL FAILED TO LOAD"
	case snap.EditorMode:
		line += fmt.Sprintf(" | EDITOR brick %c [s]ave [e]xit", symbol)
	case snap.Won:
		line += " | YOU WIN [r]estart"
	case snap.Lost:
		line += " | GAME OVER [r]estart"
	case snap.Paused:
		line += " | PAUSED"
	}
	if status != "" {
		line += " | " + status
	}
	return line + " "
}
