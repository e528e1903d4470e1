// Package config centralizes the tunables of the terminal frontend.
package config

import "time"

// Max render resolution in terminal cells. Larger terminals get the
// playfield centered inside a border.
const (
	MaxTermWidth  = 240
	MaxTermHeight = 80
)

// Inactivity limits for remote sessions.
const (
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)
