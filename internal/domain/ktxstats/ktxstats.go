// Package ktxstats decodes the statistics document KTX servers embed in
// their demos.
package ktxstats

import (
	"encoding/json"
	"fmt"

	"github.com/okian/mvdstats/internal/mvd/block"
)

// Stats is the ktxstats document. Only the fields used for match analysis
// and reporting are decoded.
type Stats struct {
	Version    int      `json:"version"`
	Date       string   `json:"date"`
	Map        string   `json:"map"`
	Hostname   string   `json:"hostname"`
	IP         string   `json:"ip"`
	Port       int      `json:"port"`
	Mode       string   `json:"mode"`
	Timelimit  int      `json:"tl"`
	Deathmatch int      `json:"dm"`
	Teamplay   int      `json:"tp"`
	Duration   float64  `json:"duration"`
	Demo       string   `json:"demo"`
	Teams      []string `json:"teams"`
	Players    []Player `json:"players"`
}

// Player is one entry of the players list.
type Player struct {
	TopColor    int         `json:"top-color"`
	BottomColor int         `json:"bottom-color"`
	Ping        int         `json:"ping"`
	Login       string      `json:"login"`
	Name        string      `json:"name"`
	Team        string      `json:"team"`
	Stats       PlayerStats `json:"stats"`
	Dmg         Damage      `json:"dmg"`
	Spree       Spree       `json:"spree"`
	Ctf         *Ctf        `json:"ctf,omitempty"`
}

// PlayerStats holds the scoring counters.
type PlayerStats struct {
	Frags      int `json:"frags"`
	Deaths     int `json:"deaths"`
	Tk         int `json:"tk"`
	SpawnFrags int `json:"spawn-frags"`
	Kills      int `json:"kills"`
	Suicides   int `json:"suicides"`
}

// Damage holds damage totals.
type Damage struct {
	Taken        int `json:"taken"`
	Given        int `json:"given"`
	Team         int `json:"team"`
	Self         int `json:"self"`
	TeamWeapons  int `json:"team-weapons"`
	EnemyWeapons int `json:"enemy-weapons"`
	TakenToDie   int `json:"taken-to-die"`
}

// Spree holds the longest kill streaks.
type Spree struct {
	Max  int `json:"max"`
	Quad int `json:"quad"`
}

// Ctf holds the flag counters written for capture-the-flag matches.
type Ctf struct {
	Points       int `json:"points"`
	Caps         int `json:"caps"`
	Defends      int `json:"defends"`
	CarrierDefs  int `json:"carrier-defends"`
	CarrierFrags int `json:"carrier-frags"`
	Pickups      int `json:"pickups"`
	Returns      int `json:"returns"`
}

// botPing is the ping the server reports for bots.
const botPing = 10

// IsBot reports whether the entry belongs to a bot.
func (p Player) IsBot() bool { return p.Ping == botPing }

// Decode parses a ktxstats document.
func Decode(doc string) (Stats, error) {
	var s Stats
	if err := json.Unmarshal([]byte(doc), &s); err != nil {
		return Stats{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if s.Version == 0 {
		return Stats{}, fmt.Errorf("%w: missing version", ErrInvalid)
	}
	return s, nil
}

// FromDemo recovers and decodes the document embedded in a demo. It returns
// block.ErrAbsent when the demo carries none and ErrInvalid when it does not
// decode.
func FromDemo(data []byte) (Stats, error) {
	doc, err := block.Ktxstats(data)
	if err != nil {
		return Stats{}, err
	}
	return Decode(doc)
}
