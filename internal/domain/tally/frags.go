package tally

import (
	"github.com/okian/mvdstats/internal/domain/event"
	"github.com/okian/mvdstats/internal/domain/model"
	"github.com/okian/mvdstats/internal/domain/teamkill"
	"github.com/okian/mvdstats/internal/mvd/message"
)

// Frag score deltas.
const (
	FragDelta            = 1
	DeathDelta           = -1
	SuicideDelta         = -2
	SuicideByWeaponDelta = -1
	TeamkillDelta        = -1
)

// Record is a classified event with the offset of the frame it was printed in.
type Record struct {
	Offset int         `json:"offset"`
	Event  event.Event `json:"event"`
}

// FragScan is the outcome of one scan over the obituary prints of a demo.
// Resolved anonymous teamkills are reported as Teamkill events of the killer.
type FragScan struct {
	Events       []Record
	Unclassified int
	Unresolved   int
}

// ScanFrags classifies the medium-level prints of a demo.
func ScanFrags(data []byte, clients []model.Client, opts ...Option) FragScan {
	o := newOptions(opts)
	resolver := teamkill.NewResolver(data, clients, teamkill.WithLookahead(o.lookahead))

	var scan FragScan
	for _, p := range Prints(data) {
		if p.ID != message.PrintMedium {
			continue
		}
		ev, ok := event.ClassifyBytes(p.Content)
		if !ok || ev.Kind.IsFlag() {
			scan.Unclassified++
			continue
		}
		if ev.Kind == event.KindTeamkillByUnknown {
			killer, ok := resolver.Resolve(p.Offset, ev.Player)
			if !ok {
				scan.Unresolved++
				continue
			}
			ev = event.Of(event.KindTeamkill, killer)
		}
		scan.Events = append(scan.Events, Record{Offset: p.Offset, Event: ev})
	}
	return scan
}

// FoldFrags applies the frag score deltas of records.
func FoldFrags(records []Record) map[string]int {
	out := make(map[string]int)
	for _, r := range records {
		ev := r.Event
		switch ev.Kind {
		case event.KindFrag:
			out[ev.Player] += FragDelta
		case event.KindDeath:
			out[ev.Player] += DeathDelta
		case event.KindSuicide:
			out[ev.Player] += SuicideDelta
		case event.KindSuicideByWeapon:
			out[ev.Player] += SuicideByWeaponDelta
		case event.KindTeamkill:
			out[ev.Player] += TeamkillDelta
		}
	}
	return out
}

// Frags returns the frag count per player name computed from the prints.
func Frags(data []byte, clients []model.Client, opts ...Option) map[string]int {
	return FoldFrags(ScanFrags(data, clients, opts...).Events)
}
