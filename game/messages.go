// File: game/messages.go
package game

// --- Commands (fire and forget) ---

// GameTick is sent by the actor's own ticker.
type GameTick struct{}

// TickCommand advances the game by a fixed Dt, for hosts that drive time.
type TickCommand struct {
	Dt float64
}

type LaunchCommand struct{}

type MoveCommand struct {
	DX float64
	DY float64
}

type SpawnBallCommand struct{}

type ActivatePowerupCommand struct {
	Type PowerupType
}

type TogglePauseCommand struct{}

type ResetCommand struct{}

type SetEditorModeCommand struct {
	Enabled bool
}

// --- Requests (answered through Engine.Ask) ---

// GetSnapshotRequest is answered with a Snapshot.
type GetSnapshotRequest struct{}

// DrainEventsRequest is answered with the []Event emitted since the last drain.
type DrainEventsRequest struct{}

// LoadLevelRequest is answered with a LoadLevelResponse.
type LoadLevelRequest struct {
	Text string
}

type LoadLevelResponse struct {
	Err error
}

// EditCellRequest places (Symbol != 0) or erases a brick and is answered with
// an EditCellResponse.
type EditCellRequest struct {
	Row    int
	Col    int
	Symbol rune
}

type EditCellResponse struct {
	Err error
}

// GetLevelTextRequest is answered with the grid in level text form.
type GetLevelTextRequest struct{}
