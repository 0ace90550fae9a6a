//go:build debug

// File: game/assert_debug.go
package game

import "fmt"

// assertf panics when cond is false. Only built with -tags debug.
func assertf(cond bool, format string, args ...interface{}) bool {
	if !cond {
		panic(fmt.Sprintf("contract violation: "+format, args...))
	}
	return true
}
