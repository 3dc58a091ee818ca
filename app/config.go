package app

import (
	"io"
	"log"
	"time"
)

// Bell modes
const (
	BellOff      = "off"
	BellTerminal = "terminal"
	BellAudio    = "audio"
)

// Beeper plays the unhandled-event tone; audio.Bell implements it
type Beeper interface {
	Bell()
}

// Rejecter is optionally implemented by a Beeper with a distinct tone for modal rejections
type Rejecter interface {
	Reject()
}

// Config holds Program settings
type Config struct {
	// PollTimeout bounds each wait for input; idle work runs when it elapses
	PollTimeout time.Duration
	// DoubleClick is the longest gap between two presses counted as a double click
	DoubleClick time.Duration
	// Bell is one of BellOff, BellTerminal, BellAudio
	Bell string
	// Palette names the application table: color, bw, mono
	Palette string

	Logger *log.Logger
	// Beeper is used in BellAudio mode; nil falls back to the terminal bell
	Beeper Beeper
}

// DefaultConfig returns the default program configuration
func DefaultConfig() *Config {
	return &Config{
		PollTimeout: 100 * time.Millisecond,
		DoubleClick: 300 * time.Millisecond,
		Bell:        BellTerminal,
		Palette:     "color",
		Logger:      log.New(io.Discard, "termdesk: ", log.LstdFlags),
	}
}
