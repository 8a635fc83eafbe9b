// Package event classifies server console messages into frag and flag events.
package event

// Kind identifies the type of an Event.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindDeath
	KindSuicide
	KindSuicideByWeapon
	KindFrag
	KindTeamkill
	KindTeamkillByUnknown
	KindCapturedFlag
	KindGotFlag
	KindReturnedFlag
	KindReturnedFlagAssist
	KindDefendsFlag
	KindDefendsFlagCarrier
	KindDefendsFlagCarrierVsAggressive
)

var kindNames = map[Kind]string{
	KindUnknown:                        "unknown",
	KindDeath:                          "death",
	KindSuicide:                        "suicide",
	KindSuicideByWeapon:                "suicide_by_weapon",
	KindFrag:                           "frag",
	KindTeamkill:                       "teamkill",
	KindTeamkillByUnknown:              "teamkill_by_unknown",
	KindCapturedFlag:                   "captured_flag",
	KindGotFlag:                        "got_flag",
	KindReturnedFlag:                   "returned_flag",
	KindReturnedFlagAssist:             "returned_flag_assist",
	KindDefendsFlag:                    "defends_flag",
	KindDefendsFlagCarrier:             "defends_flag_carrier",
	KindDefendsFlagCarrierVsAggressive: "defends_flag_carrier_vs_aggressive",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return kindNames[KindUnknown]
}

// MarshalText encodes k as its name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name. Unknown names decode as KindUnknown.
func (k *Kind) UnmarshalText(b []byte) error {
	*k = KindUnknown
	for kind, name := range kindNames {
		if name == string(b) {
			*k = kind
			break
		}
	}
	return nil
}

// IsFlag reports whether k is a capture-the-flag event.
func (k Kind) IsFlag() bool { return k >= KindCapturedFlag }

// Event is one classified console message.
//
// Player is the subject of the message: the killer for Frag and Teamkill,
// the victim for Death, Suicide, SuicideByWeapon and TeamkillByUnknown, and
// the acting player for flag events. Victim is only set for Frag.
type Event struct {
	Kind   Kind   `json:"kind"`
	Player string `json:"player"`
	Victim string `json:"victim,omitempty"`
}

// Frag returns a Frag event.
func Frag(killer, victim string) Event {
	return Event{Kind: KindFrag, Player: killer, Victim: victim}
}

// Of returns a single-player event of kind k.
func Of(k Kind, player string) Event {
	return Event{Kind: k, Player: player}
}
