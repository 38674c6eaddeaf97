package game

import "fmt"

// Clock counts whole elapsed seconds of a session and keeps the HUD string
// in sync with the count.
type Clock struct {
	elapsed   int
	formatted string
}

// NewClock returns a clock at zero.
func NewClock() Clock {
	return Clock{formatted: FormatElapsed(0)}
}

// Tick advances the clock by one second and returns the new count.
func (c *Clock) Tick() int {
	c.elapsed++
	c.formatted = FormatElapsed(c.elapsed)
	return c.elapsed
}

// Reset sets the clock back to zero.
func (c *Clock) Reset() {
	*c = NewClock()
}

// Elapsed returns the elapsed seconds.
func (c Clock) Elapsed() int {
	return c.elapsed
}

// String returns the elapsed time as HH:MM:SS.
func (c Clock) String() string {
	return c.formatted
}

// FormatElapsed formats seconds as HH:MM:SS. Minutes are the total minutes
// and hours are minutes/60; minutes do not wrap at 60.
func FormatElapsed(seconds int) string {
	sec := seconds % 60
	minutes := seconds / 60
	hours := minutes / 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, sec)
}
