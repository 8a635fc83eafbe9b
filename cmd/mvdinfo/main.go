// Command mvdinfo prints match details decoded from a QuakeWorld MVD demo.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/mvdstats/internal/domain/match"
	"github.com/okian/mvdstats/internal/domain/tally"
	"github.com/okian/mvdstats/internal/domain/teamkill"
)

type options struct {
	json       bool
	ascii      bool
	pingFrames int
	lookahead  int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "mvdinfo",
		Short:         "Inspect QuakeWorld MVD demos",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&opts.json, "json", false, "print JSON instead of tables")
	flags.BoolVar(&opts.ascii, "ascii", false, "render names as plain ASCII")
	flags.IntVar(&opts.pingFrames, "ping-frames", tally.DefaultPingFrames, "ping updates averaged per player")
	flags.IntVar(&opts.lookahead, "lookahead", teamkill.DefaultLookahead, "frames searched to resolve anonymous teamkills")

	rootCmd.AddCommand(
		newInfoCmd(opts),
		newPlayersCmd(opts),
		newTeamsCmd(opts),
		newPingsCmd(opts),
		newFragsCmd(opts),
		newFlagsCmd(opts),
		newEventsCmd(opts),
		newKtxstatsCmd(opts),
	)
	return rootCmd
}

// demoCmd builds a sub-command that reads the demo named by its only argument.
func demoCmd(use, short string, run func(cmd *cobra.Command, data []byte) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <demo.mvd>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read demo: %w", err)
			}
			return run(cmd, data)
		},
	}
}

func (o *options) analyzer() *match.Analyzer {
	return match.NewAnalyzer(
		match.WithPingFrames(o.pingFrames),
		match.WithLookahead(o.lookahead),
	)
}

func (o *options) tallyOptions() []tally.Option {
	return []tally.Option{
		tally.WithPingFrames(o.pingFrames),
		tally.WithLookahead(o.lookahead),
	}
}
