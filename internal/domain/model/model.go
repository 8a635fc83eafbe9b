// Package model contains domain models passed between layers.
package model

import "time"

// Demo is an uploaded recording waiting for analysis.
type Demo struct {
	ID       string    // match id assigned on upload
	Checksum string    // hex SHA-256 of Data
	Data     []byte    // complete MVD buffer
	Received time.Time // upload timestamp
}

// Client is a connected client as announced by its userinfo.
type Client struct {
	Number      uint8    `json:"number"`
	Name        string   `json:"name"`
	Team        string   `json:"team"`
	Color       [2]uint8 `json:"color"`
	IsSpectator bool     `json:"is_spectator"`
	IsBot       bool     `json:"is_bot"`
}

// Player is a participant with final figures.
type Player struct {
	Name  string   `json:"name"`
	Team  string   `json:"team"`
	Color [2]uint8 `json:"color"`
	Frags int      `json:"frags"`
	Ping  int      `json:"ping"`
	IsBot bool     `json:"is_bot"`
}

// Team aggregates the players sharing a team name.
type Team struct {
	Name    string   `json:"name"`
	Color   [2]uint8 `json:"color"`
	Frags   int      `json:"frags"`
	Ping    int      `json:"ping"`
	Players []Player `json:"players"`
}

// FlagCounts tallies the capture-the-flag events of one player.
type FlagCounts struct {
	Captures                   int `json:"captures"`
	Pickups                    int `json:"pickups"`
	Returns                    int `json:"returns"`
	CarrierFrags               int `json:"carrier_frags"`
	Defends                    int `json:"defends"`
	CarrierDefends             int `json:"carrier_defends"`
	CarrierDefendsVsAggressive int `json:"carrier_defends_vs_aggressive"`
}

// Source tells where a match's player figures came from.
type Source string

const (
	SourceKtxstats Source = "ktxstats"
	SourceParsing  Source = "parsing"
)

// Match is the analysis result for one demo.
type Match struct {
	ID                string                `json:"id"`
	Checksum          string                `json:"checksum"`
	Filename          string                `json:"filename,omitempty"`
	Map               string                `json:"map,omitempty"`
	Mode              string                `json:"mode,omitempty"`
	Hostname          string                `json:"hostname,omitempty"`
	Matchtag          string                `json:"matchtag,omitempty"`
	MatchDate         string                `json:"match_date,omitempty"` // as printed by the server, e.g. "2024-04-26 16:59:29 CEST"
	Source            Source                `json:"source"`
	DemoDuration      time.Duration         `json:"demo_duration"`
	CountdownDuration time.Duration         `json:"countdown_duration"`
	MatchDuration     time.Duration         `json:"match_duration"`
	IsCTF             bool                  `json:"is_ctf"`
	IsAborted         bool                  `json:"is_aborted"`
	IsPaused          bool                  `json:"is_paused"`
	IsValid           bool                  `json:"is_valid"`
	Players           []Player              `json:"players"`
	Teams             []Team                `json:"teams"`
	Flags             map[string]FlagCounts `json:"flags,omitempty"`
	AnalyzedAt        time.Time             `json:"analyzed_at"`
}

// PlayerScore is one player's score in one match, offered to the leaderboard.
type PlayerScore struct {
	Player  string
	Score   int
	MatchID string
	Map     string
}
