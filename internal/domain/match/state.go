package match

import (
	"bytes"

	"github.com/okian/mvdstats/internal/domain/roster"
)

const minValidSize = 1024

var (
	// print level 2, "Match stopped by majority vote" in coloured text
	abortedNeedle = []byte{
		0x08, 0x02, 0xCD, 0xE1, 0xF4, 0xE3, 0xE8, 0x20, 0xF3, 0xF4, 0xEF, 0xF0, 0xF0, 0xE5, 0xE4,
		0x20, 0xE2, 0xF9, 0x20, 0xED, 0xE1, 0xEA, 0xEF, 0xF2, 0xE9, 0xF4, 0xF9, 0x20, 0xF6, 0xEF,
		0xF4, 0xE5, 0x0A, 0x00,
	}
	endOfDemoNeedle    = []byte("\x00\x02EndOfDemo\x00")
	serverPausedNeedle = []byte("Server is paused")
	pausedGameNeedle   = []byte("paused the game")
)

// IsAborted reports whether the match was stopped by vote.
func IsAborted(data []byte) bool {
	return bytes.Contains(data, abortedNeedle)
}

// IsPaused reports whether an unfinished demo was left paused.
func IsPaused(data []byte) bool {
	if hasEndOfDemo(data) {
		return false
	}
	return bytes.Contains(data, serverPausedNeedle) || bytes.Contains(data, pausedGameNeedle)
}

// IsValid reports whether the demo is complete enough to analyse.
func IsValid(data []byte) bool {
	if len(data) < minValidSize || !hasEndOfDemo(data) {
		return false
	}
	if _, err := ServerinfoString(data); err != nil {
		return false
	}
	clients, err := roster.Clients(data)
	return err == nil && len(clients) > 0
}

func hasEndOfDemo(data []byte) bool {
	return len(data) > len(endOfDemoNeedle) && bytes.HasSuffix(data, endOfDemoNeedle)
}
