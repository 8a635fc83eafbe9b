// Package teamkill attributes teamkills whose message omits the killer.
//
// The server updates the killer's frag count right after printing the
// message, so the killer is the one teammate of the victim whose frags
// change within a few frames of the print.
package teamkill

import (
	"github.com/okian/mvdstats/internal/domain/model"
	"github.com/okian/mvdstats/internal/mvd/frame"
	"github.com/okian/mvdstats/internal/mvd/message"
)

// DefaultLookahead is the number of frames scanned, starting with the frame
// carrying the print.
const DefaultLookahead = 4

// Resolver finds the killer of a TeamkillByUnknown event.
type Resolver struct {
	data      []byte
	slots     map[uint8]model.Client
	byName    map[string]model.Client
	lookahead int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLookahead sets the scan window in frames. Values below 1 are ignored.
func WithLookahead(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.lookahead = n
		}
	}
}

// NewResolver returns a Resolver over data using clients as the roster.
func NewResolver(data []byte, clients []model.Client, opts ...Option) *Resolver {
	r := &Resolver{
		data:      data,
		slots:     make(map[uint8]model.Client, len(clients)),
		byName:    make(map[string]model.Client, len(clients)),
		lookahead: DefaultLookahead,
	}
	for _, c := range clients {
		if c.IsSpectator {
			continue
		}
		r.slots[c.Number] = c
		r.byName[c.Name] = c
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the killer of victim for the message printed in the frame
// at offset. It returns false when no teammate or more than one teammate of
// the victim had their frags updated in the window.
func (r *Resolver) Resolve(offset int, victim string) (string, bool) {
	v, ok := r.byName[victim]
	if !ok {
		return "", false
	}

	candidates := make(map[string]struct{})
	for _, slot := range r.fragSlots(offset) {
		c, ok := r.slots[slot]
		if !ok || c.Team != v.Team || c.Name == v.Name {
			continue
		}
		candidates[c.Name] = struct{}{}
	}
	if len(candidates) != 1 {
		return "", false
	}
	for name := range candidates {
		return name, true
	}
	return "", false
}

func (r *Resolver) fragSlots(offset int) []uint8 {
	var slots []uint8
	c := frame.NewCursor(r.data, offset)
	for c.Count() < r.lookahead && c.Next() {
		rd := message.NewReader(c.Body())
		for {
			m, ok, err := rd.Next()
			if err != nil || !ok {
				break
			}
			if u, isFrags := m.(message.UpdateFrags); isFrags {
				slots = append(slots, u.Slot)
			}
		}
	}
	return slots
}
