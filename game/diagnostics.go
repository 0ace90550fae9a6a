// File: game/diagnostics.go
package game

import (
	"fmt"
	"log"
)

// Diagnostics collects physics invariant violations. They are logged and
// counted, never fatal.
type Diagnostics struct {
	Count int
	Last  string
}

func (d *Diagnostics) Reportf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if d != nil {
		d.Count++
		d.Last = msg
	}
	log.Printf("WARN: %s", msg)
}
