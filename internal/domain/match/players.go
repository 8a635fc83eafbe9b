package match

import (
	"sort"

	"github.com/okian/mvdstats/internal/domain/ktxstats"
	"github.com/okian/mvdstats/internal/domain/model"
)

// PlayersFromKtxstats converts the ktxstats player entries.
func PlayersFromKtxstats(s ktxstats.Stats) []model.Player {
	out := make([]model.Player, 0, len(s.Players))
	for _, p := range s.Players {
		out = append(out, model.Player{
			Name:  p.Name,
			Team:  p.Team,
			Color: [2]uint8{uint8(p.TopColor), uint8(p.BottomColor)},
			Frags: p.Stats.Frags,
			Ping:  p.Ping,
			IsBot: p.IsBot(),
		})
	}
	SortPlayers(out)
	return out
}

// PlayersFromClients builds players from the roster. Pings are looked up by
// slot and scores by name; missing entries count as zero.
func PlayersFromClients(clients []model.Client, pings map[uint8]int, scores map[string]int) []model.Player {
	out := make([]model.Player, 0, len(clients))
	for _, c := range clients {
		if c.IsSpectator {
			continue
		}
		out = append(out, model.Player{
			Name:  c.Name,
			Team:  c.Team,
			Color: c.Color,
			Frags: scores[c.Name],
			Ping:  pings[c.Number],
			IsBot: c.IsBot,
		})
	}
	SortPlayers(out)
	return out
}

// SortPlayers orders players by frags, highest first, then by name.
func SortPlayers(players []model.Player) {
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Frags != players[j].Frags {
			return players[i].Frags > players[j].Frags
		}
		return players[i].Name < players[j].Name
	})
}

// Teams groups players by team name. Teams are ordered by name and keep the
// player order of the input.
func Teams(players []model.Player) []model.Team {
	byName := make(map[string][]model.Player)
	for _, p := range players {
		byName[p.Team] = append(byName[p.Team], p)
	}

	out := make([]model.Team, 0, len(byName))
	for name, members := range byName {
		t := model.Team{Name: name, Color: majorityColor(members), Players: members}
		ping := 0
		for _, p := range members {
			t.Frags += p.Frags
			ping += p.Ping
		}
		t.Ping = ping / len(members)
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// majorityColor returns the most common colour pair. Ties go to the pair
// that reached the count first.
func majorityColor(players []model.Player) [2]uint8 {
	counts := make(map[[2]uint8]int, len(players))
	var best [2]uint8
	top := 0
	for _, p := range players {
		counts[p.Color]++
		if n := counts[p.Color]; n > top {
			best, top = p.Color, n
		}
	}
	return best
}
