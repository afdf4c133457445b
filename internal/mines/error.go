package mines

import "fmt"

// ConfigurationError reports board parameters that cannot produce a game.
// It is only ever returned while a game is being set up.
type ConfigurationError struct {
	Width, Height, MineCount int
	message                  string
}

// [ConfigurationError] implements [error]
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf(
		"invalid board %dx%d with %d mines: %s",
		e.Width, e.Height, e.MineCount, e.message,
	)
}

// InvalidCoordinateError is returned for points outside the board. The
// presentation layer never produces one, so seeing it means a caller bug.
type InvalidCoordinateError struct {
	Point         Point
	Width, Height int
}

// [InvalidCoordinateError] implements [error]
func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf(
		"point %s is outside of %dx%d board", e.Point, e.Width, e.Height,
	)
}
