package main

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/okian/mvdstats/internal/domain/ktxstats"
	"github.com/okian/mvdstats/internal/domain/roster"
	"github.com/okian/mvdstats/internal/domain/tally"
)

func newInfoCmd(opts *options) *cobra.Command {
	return demoCmd("info", "Show the match summary", func(cmd *cobra.Command, data []byte) error {
		m, err := opts.analyzer().Analyze(cmd.Context(), data)
		if err != nil {
			return err
		}
		if opts.json {
			return writeJSON(cmd.OutOrStdout(), m)
		}
		rows := [][]string{
			{"filename", opts.name(m.Filename)},
			{"hostname", opts.name(m.Hostname)},
			{"map", m.Map},
			{"mode", m.Mode},
			{"matchtag", opts.name(m.Matchtag)},
			{"source", string(m.Source)},
			{"demo duration", m.DemoDuration.String()},
			{"countdown", m.CountdownDuration.String()},
			{"match duration", m.MatchDuration.String()},
			{"ctf", yesNo(m.IsCTF)},
			{"aborted", yesNo(m.IsAborted)},
			{"paused", yesNo(m.IsPaused)},
			{"valid", yesNo(m.IsValid)},
		}
		return writeTable(cmd.OutOrStdout(), []string{"Field", "Value"}, rows)
	})
}

func newPlayersCmd(opts *options) *cobra.Command {
	return demoCmd("players", "List players with frags and ping", func(cmd *cobra.Command, data []byte) error {
		m, err := opts.analyzer().Analyze(cmd.Context(), data)
		if err != nil {
			return err
		}
		if opts.json {
			return writeJSON(cmd.OutOrStdout(), m.Players)
		}
		rows := make([][]string, 0, len(m.Players))
		for _, p := range m.Players {
			rows = append(rows, []string{
				opts.name(p.Name),
				opts.name(p.Team),
				strconv.Itoa(p.Frags),
				strconv.Itoa(p.Ping),
				yesNo(p.IsBot),
			})
		}
		return writeTable(cmd.OutOrStdout(), []string{"Name", "Team", "Frags", "Ping", "Bot"}, rows)
	})
}

func newTeamsCmd(opts *options) *cobra.Command {
	return demoCmd("teams", "List teams with frags and ping", func(cmd *cobra.Command, data []byte) error {
		m, err := opts.analyzer().Analyze(cmd.Context(), data)
		if err != nil {
			return err
		}
		if opts.json {
			return writeJSON(cmd.OutOrStdout(), m.Teams)
		}
		rows := make([][]string, 0, len(m.Teams))
		for _, t := range m.Teams {
			rows = append(rows, []string{
				opts.name(t.Name),
				strconv.Itoa(int(t.Color[0])) + "/" + strconv.Itoa(int(t.Color[1])),
				strconv.Itoa(t.Frags),
				strconv.Itoa(t.Ping),
				strconv.Itoa(len(t.Players)),
			})
		}
		return writeTable(cmd.OutOrStdout(), []string{"Team", "Color", "Frags", "Ping", "Players"}, rows)
	})
}

type pingRow struct {
	Slot uint8  `json:"slot"`
	Name string `json:"name"`
	Ping int    `json:"ping"`
}

func newPingsCmd(opts *options) *cobra.Command {
	return demoCmd("pings", "Show the mean ping of every client slot", func(cmd *cobra.Command, data []byte) error {
		clients, err := roster.Clients(data)
		if err != nil {
			return err
		}
		pings := tally.Pings(data, opts.tallyOptions()...)

		out := make([]pingRow, 0, len(clients))
		for _, c := range roster.Players(clients) {
			out = append(out, pingRow{Slot: c.Number, Name: opts.name(c.Name), Ping: pings[c.Number]})
		}
		if opts.json {
			return writeJSON(cmd.OutOrStdout(), out)
		}
		rows := make([][]string, 0, len(out))
		for _, r := range out {
			rows = append(rows, []string{strconv.Itoa(int(r.Slot)), r.Name, strconv.Itoa(r.Ping)})
		}
		return writeTable(cmd.OutOrStdout(), []string{"Slot", "Name", "Ping"}, rows)
	})
}

type fragRow struct {
	Name  string `json:"name"`
	Frags int    `json:"frags"`
}

func newFragsCmd(opts *options) *cobra.Command {
	return demoCmd("frags", "Count frags from the obituary prints", func(cmd *cobra.Command, data []byte) error {
		clients, err := roster.Clients(data)
		if err != nil {
			return err
		}
		frags := tally.Frags(data, clients, opts.tallyOptions()...)

		out := make([]fragRow, 0, len(frags))
		for name, n := range frags {
			out = append(out, fragRow{Name: name, Frags: n})
		}
		slices.SortFunc(out, func(a, b fragRow) int {
			if c := cmp.Compare(b.Frags, a.Frags); c != 0 {
				return c
			}
			return cmp.Compare(a.Name, b.Name)
		})
		for i := range out {
			out[i].Name = opts.name(out[i].Name)
		}
		if opts.json {
			return writeJSON(cmd.OutOrStdout(), out)
		}
		rows := make([][]string, 0, len(out))
		for _, r := range out {
			rows = append(rows, []string{r.Name, strconv.Itoa(r.Frags)})
		}
		return writeTable(cmd.OutOrStdout(), []string{"Name", "Frags"}, rows)
	})
}

func newFlagsCmd(opts *options) *cobra.Command {
	return demoCmd("flags", "Tally capture-the-flag events per player", func(cmd *cobra.Command, data []byte) error {
		counts := tally.FlagCounts(tally.FlagEvents(data))
		if opts.json {
			return writeJSON(cmd.OutOrStdout(), counts)
		}
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		slices.Sort(names)

		rows := make([][]string, 0, len(names))
		for _, name := range names {
			c := counts[name]
			rows = append(rows, []string{
				opts.name(name),
				strconv.Itoa(c.Captures),
				strconv.Itoa(c.Pickups),
				strconv.Itoa(c.Returns),
				strconv.Itoa(c.CarrierFrags),
				strconv.Itoa(c.Defends),
				strconv.Itoa(c.CarrierDefends),
				strconv.Itoa(c.CarrierDefendsVsAggressive),
			})
		}
		return writeTable(cmd.OutOrStdout(),
			[]string{"Name", "Caps", "Pickups", "Returns", "Carrier frags", "Defends", "Carrier defends", "Vs aggressive"}, rows)
	})
}

func newEventsCmd(opts *options) *cobra.Command {
	return demoCmd("events", "List classified frag and flag events in stream order", func(cmd *cobra.Command, data []byte) error {
		clients, err := roster.Clients(data)
		if err != nil {
			return err
		}
		records := tally.ScanFrags(data, clients, opts.tallyOptions()...).Events
		records = append(records, tally.FlagEvents(data)...)
		slices.SortStableFunc(records, func(a, b tally.Record) int {
			return cmp.Compare(a.Offset, b.Offset)
		})
		for i := range records {
			records[i].Event.Player = opts.name(records[i].Event.Player)
			records[i].Event.Victim = opts.name(records[i].Event.Victim)
		}
		if opts.json {
			return writeJSON(cmd.OutOrStdout(), records)
		}
		rows := make([][]string, 0, len(records))
		for _, r := range records {
			rows = append(rows, []string{
				strconv.Itoa(r.Offset),
				r.Event.Kind.String(),
				r.Event.Player,
				r.Event.Victim,
			})
		}
		return writeTable(cmd.OutOrStdout(), []string{"Offset", "Kind", "Player", "Victim"}, rows)
	})
}

func newKtxstatsCmd(opts *options) *cobra.Command {
	return demoCmd("ktxstats", "Decode the embedded ktxstats document", func(cmd *cobra.Command, data []byte) error {
		stats, err := ktxstats.FromDemo(data)
		if err != nil {
			return err
		}
		if opts.json {
			return writeJSON(cmd.OutOrStdout(), stats)
		}
		rows := make([][]string, 0, len(stats.Players))
		for _, p := range stats.Players {
			rows = append(rows, []string{
				opts.name(p.Name),
				opts.name(p.Team),
				strconv.Itoa(p.Stats.Frags),
				strconv.Itoa(p.Stats.Kills),
				strconv.Itoa(p.Stats.Deaths),
				strconv.Itoa(p.Stats.Tk),
				strconv.Itoa(p.Ping),
				yesNo(p.IsBot()),
			})
		}
		return writeTable(cmd.OutOrStdout(),
			[]string{"Name", "Team", "Frags", "Kills", "Deaths", "TK", "Ping", "Bot"}, rows)
	})
}
