package tally

import (
	"bytes"

	"github.com/okian/mvdstats/internal/domain/event"
	"github.com/okian/mvdstats/internal/domain/model"
	"github.com/okian/mvdstats/internal/mvd/frame"
	"github.com/okian/mvdstats/internal/mvd/message"
	"github.com/okian/mvdstats/internal/mvd/qtext"
)

// Capture-the-flag bonuses.
const (
	CaptureBonus                   = 15
	CaptureTeamBonus               = 10
	CarrierFragBonus               = 2
	CarrierDefendBonus             = 1
	CarrierDefendVsAggressiveBonus = 2
	FlagDefendBonus                = 2
	ReturnFlagBonus                = 1
)

var flagNeedle = []byte("flag")

// FlagEvents returns the flag events printed in a demo. The server may print
// the player name and the rest of a flag message as two high-level prints
// in the same frame; those are joined before classification.
func FlagEvents(data []byte) []Record {
	var out []Record
	c := frame.NewCursor(data, 0)
	for c.Next() {
		body := c.Body()
		if len(body) == 0 || !bytes.Contains(body, flagNeedle) {
			continue
		}
		offset := c.Frame().Offset
		for _, text := range flagPrints(body) {
			if ev, ok := event.Classify(text); ok && ev.Kind.IsFlag() {
				out = append(out, Record{Offset: offset, Event: ev})
			}
		}
	}
	return out
}

func flagPrints(body []byte) []string {
	var (
		out     []string
		current string
	)
	rd := message.NewReader(body)
	for {
		m, ok, err := rd.Next()
		if err != nil || !ok {
			break
		}
		p, isPrint := m.(message.Print)
		if !isPrint || p.ID != message.PrintHigh || len(p.Content) == 0 {
			continue
		}
		text := qtext.Unicode(p.Content)
		if current != "" && !isFlagMessage(current) && event.IsFlagSuffix(text) {
			out = append(out, current+text)
			current = ""
			continue
		}
		if current != "" {
			out = append(out, current)
		}
		current = text
	}
	if current != "" {
		out = append(out, current)
	}
	return out
}

func isFlagMessage(text string) bool {
	ev, ok := event.Classify(text)
	return ok && ev.Kind.IsFlag()
}

// FlagCounts tallies flag records per player.
func FlagCounts(records []Record) map[string]model.FlagCounts {
	out := make(map[string]model.FlagCounts)
	for _, r := range records {
		fc := out[r.Event.Player]
		switch r.Event.Kind {
		case event.KindCapturedFlag:
			fc.Captures++
		case event.KindGotFlag:
			fc.Pickups++
		case event.KindReturnedFlag:
			fc.Returns++
		case event.KindReturnedFlagAssist:
			fc.CarrierFrags++
		case event.KindDefendsFlag:
			fc.Defends++
		case event.KindDefendsFlagCarrier:
			fc.CarrierDefends++
		case event.KindDefendsFlagCarrierVsAggressive:
			fc.CarrierDefendsVsAggressive++
		default:
			continue
		}
		out[r.Event.Player] = fc
	}
	return out
}

// CTFPoints returns the flag bonus per player. A capture also rewards every
// teammate of the capturer. Players missing from clients are ignored.
func CTFPoints(counts map[string]model.FlagCounts, clients []model.Client) map[string]int {
	players := make([]model.Client, 0, len(clients))
	out := make(map[string]int, len(clients))
	for _, c := range clients {
		if c.IsSpectator {
			continue
		}
		players = append(players, c)
		out[c.Name] = 0
	}

	for _, p := range players {
		fc := counts[p.Name]
		out[p.Name] += CaptureBonus*fc.Captures +
			CarrierFragBonus*fc.CarrierFrags +
			CarrierDefendBonus*fc.CarrierDefends +
			CarrierDefendVsAggressiveBonus*fc.CarrierDefendsVsAggressive +
			FlagDefendBonus*fc.Defends +
			ReturnFlagBonus*fc.Returns
		team := CaptureTeamBonus * fc.Captures
		if team == 0 {
			continue
		}
		for _, mate := range players {
			if mate.Team == p.Team && mate.Name != p.Name {
				out[mate.Name] += team
			}
		}
	}
	return out
}

// Scores adds the flag bonus to the frag counts when ctf is set.
func Scores(frags, bonus map[string]int, ctf bool) map[string]int {
	out := make(map[string]int, len(frags))
	for name, v := range frags {
		out[name] = v
	}
	if !ctf {
		return out
	}
	for name, v := range bonus {
		out[name] += v
	}
	return out
}
