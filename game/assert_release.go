//go:build !debug

// File: game/assert_release.go
package game

import "log"

// assertf logs a contract violation and reports cond so callers can bail out.
func assertf(cond bool, format string, args ...interface{}) bool {
	if !cond {
		log.Printf("ERROR: contract violation: "+format, args...)
	}
	return cond
}
