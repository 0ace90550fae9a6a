package utils

const (
	// Level text symbols
	EmptyCell          = '.'
	IndestructibleCell = '*'

	// MaxBrickVariant is the highest hex digit accepted in level text (C).
	MaxBrickVariant = 12
)
