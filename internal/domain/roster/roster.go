// Package roster extracts the connected clients from the userinfo strings a
// server writes when a demo starts.
package roster

import (
	"bytes"

	"github.com/okian/mvdstats/internal/domain/model"
	"github.com/okian/mvdstats/internal/mvd/infostring"
	"github.com/okian/mvdstats/internal/mvd/qtext"
)

const (
	maxClients   = 24
	maxLookahead = 256
	minLen       = len(`\name\ `)
	maxLen       = 256
)

var (
	spawnNeedle = []byte("\tcmd spawn")
	nameNeedle  = []byte(`\name\`)
)

// Strings returns the userinfo strings that follow the spawn command, in
// slot order. It returns ErrNotFound when the demo has no spawn command.
func Strings(data []byte) ([]string, error) {
	offset := bytes.Index(data, spawnNeedle)
	if offset < 0 {
		return nil, ErrNotFound
	}
	limit := offset + maxClients*maxLookahead

	var out []string
	for {
		window := data[offset:min(offset+maxLookahead, len(data))]
		idx := bytes.Index(window, nameNeedle)
		if idx < 0 {
			break
		}
		at := offset + idx
		from := bytes.LastIndexByte(data[:at], 0) + 1
		if from == 0 {
			break
		}
		n := bytes.IndexByte(data[from:], 0)
		if n < 0 {
			break
		}
		to := from + n
		if to-from < minLen || to-from > maxLen {
			break
		}
		out = append(out, qtext.Unicode(data[from:to]))
		offset = to
		if offset >= limit {
			break
		}
	}
	return out, nil
}

// Clients decodes the userinfo strings into clients numbered by slot.
func Clients(data []byte) ([]model.Client, error) {
	infos, err := Strings(data)
	if err != nil {
		return nil, err
	}
	out := make([]model.Client, 0, len(infos))
	for i, s := range infos {
		ci := infostring.ParseClientinfo(s)
		out = append(out, model.Client{
			Number:      uint8(i),
			Name:        ci.Name,
			Team:        ci.Team,
			Color:       [2]uint8{uint8(ci.TopColor), uint8(ci.BottomColor)},
			IsSpectator: ci.IsSpectator(),
			IsBot:       ci.IsBot(),
		})
	}
	return out, nil
}

// Players returns the clients that are not spectators.
func Players(clients []model.Client) []model.Client {
	out := make([]model.Client, 0, len(clients))
	for _, c := range clients {
		if !c.IsSpectator {
			out = append(out, c)
		}
	}
	return out
}

// BySlot indexes clients by slot number.
func BySlot(clients []model.Client) map[uint8]model.Client {
	out := make(map[uint8]model.Client, len(clients))
	for _, c := range clients {
		out[c.Number] = c
	}
	return out
}
