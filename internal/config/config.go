package config

import "time"

// Client rendering
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Max render resolution in terminal cells. Larger terminals get a centered,
// bordered render area.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 50
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity (SSH sessions only)
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Menu
const (
	MaxNameLength  = 16
	MaxLevelLength = 16
)
