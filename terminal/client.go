// File: terminal/client.go
package terminal

import (
	"fmt"
	"time"

	"github.com/lguibr/brickbreaker/bollywood"
	"github.com/lguibr/brickbreaker/game"
)

const askTimeout = 2 * time.Second

// client wraps the Ask/Send calls a front end makes to a GameActor.
type client struct {
	engine *bollywood.Engine
	pid    *bollywood.PID
}

func (c client) send(msg interface{}) {
	c.engine.Send(c.pid, msg, nil)
}

func (c client) snapshot() (game.Snapshot, error) {
	reply, err := c.engine.Ask(c.pid, game.GetSnapshotRequest{}, askTimeout)
	if err != nil {
		return game.Snapshot{}, err
	}
	snap, ok := reply.(game.Snapshot)
	if !ok {
		return game.Snapshot{}, fmt.Errorf("unexpected snapshot reply %T", reply)
	}
	return snap, nil
}

func (c client) drainEvents() ([]game.Event, error) {
	reply, err := c.engine.Ask(c.pid, game.DrainEventsRequest{}, askTimeout)
	if err != nil {
		return nil, err
	}
	events, _ := reply.([]game.Event)
	return events, nil
}

func (c client) levelText() (string, error) {
	reply, err := c.engine.Ask(c.pid, game.GetLevelTextRequest{}, askTimeout)
	if err != nil {
		return "", err
	}
	text, _ := reply.(string)
	return text, nil
}

func (c client) editCell(row, col int, symbol rune) error {
	reply, err := c.engine.Ask(c.pid, game.EditCellRequest{Row: row, Col: col, Symbol: symbol}, askTimeout)
	if err != nil {
		return err
	}
	if resp, ok := reply.(game.EditCellResponse); ok {
		return resp.Err
	}
	return fmt.Errorf("unexpected edit reply %T", reply)
}
