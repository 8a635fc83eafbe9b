package event

import (
	"fmt"
	"strings"

	"github.com/okian/mvdstats/internal/mvd/qtext"
)

type rule struct {
	kind     Kind
	patterns []string
	match    func(kind Kind, text, pattern string) (Event, bool)
}

// rules is evaluated in order and the first match wins.
var rules = []rule{
	{KindDeath, deaths, suffix},
	{KindSuicideByWeapon, suicidesByWeapon, suffix},
	{KindSuicide, suicides, suffix},
	{KindTeamkill, teamkills, suffix},
	{KindTeamkillByUnknown, teamkillsByUnknown, suffix},
	{KindFrag, xFragsY, killerFirst},
	{KindFrag, yFragsX, victimFirst},
	{KindCapturedFlag, capturedFlag, suffix},
	{KindReturnedFlagAssist, returnedFlagAssist, suffix},
	{KindReturnedFlag, returnedFlag, suffix},
	{KindDefendsFlag, defendsFlag, suffix},
	{KindDefendsFlagCarrier, defendsFlagCarrier, suffix},
	{KindDefendsFlagCarrierVsAggressive, defendsFlagCarrierVsAggressive, suffix},
	{KindGotFlag, gotFlag, suffix},
}

// Classify turns a console message in its Latin-1 form into an Event. It
// returns false for text that matches no template or yields an empty name.
func Classify(text string) (Event, bool) {
	for _, r := range rules {
		for _, p := range r.patterns {
			if ev, ok := r.match(r.kind, text, p); ok {
				return ev, true
			}
		}
	}
	return Event{}, false
}

// ClassifyBytes classifies raw Quake text.
func ClassifyBytes(b []byte) (Event, bool) {
	return Classify(qtext.Unicode(b))
}

// IsFlagSuffix reports whether text ends with the second half of a flag
// message the server printed in two parts.
func IsFlagSuffix(text string) bool {
	for _, set := range [][]string{returnedFlag, gotFlag, capturedFlag} {
		for _, p := range set {
			if strings.HasSuffix(text, p) {
				return true
			}
		}
	}
	return false
}

func suffix(kind Kind, text, pattern string) (Event, bool) {
	name, ok := strings.CutSuffix(text, pattern)
	if !ok || name == "" {
		return Event{}, false
	}
	return Of(kind, name), true
}

func killerFirst(_ Kind, text, pattern string) (Event, bool) {
	x, y, ok := split(text, pattern)
	if !ok {
		return Event{}, false
	}
	return Frag(x, y), true
}

func victimFirst(_ Kind, text, pattern string) (Event, bool) {
	x, y, ok := split(text, pattern)
	if !ok {
		return Event{}, false
	}
	return Frag(y, x), true
}

// split returns the names on both sides of an infix template. For wildcard
// templates the second name is the text between prefix and suffix.
func split(text, pattern string) (x, y string, ok bool) {
	if prefix, sfx, wild := strings.Cut(pattern, Wildcard); wild {
		var rest string
		if x, rest, ok = strings.Cut(text, prefix); !ok {
			return "", "", false
		}
		if y, _, ok = strings.Cut(rest, sfx); !ok {
			return "", "", false
		}
	} else if x, y, ok = strings.Cut(text, pattern); !ok {
		return "", "", false
	}
	if x == "" || y == "" {
		return "", "", false
	}
	return x, y, true
}

func flagPhrases(verbs []string, format string) []string {
	out := make([]string, 0, len(verbs)*len(teamNames))
	for _, team := range teamNames {
		for _, verb := range verbs {
			out = append(out, " "+verb+fmt.Sprintf(format, team))
		}
	}
	return out
}
