package scoring_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/mvdstats/internal/domain/model"
	scoring "github.com/okian/mvdstats/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func validMatch() model.Match {
	return model.Match{
		ID:      "m1",
		Map:     "dm2",
		IsValid: true,
		Players: []model.Player{
			{Name: "alpha", Frags: 20},
			{Name: "bravo", Frags: -2},
			{Name: "[bot]", Frags: 40, IsBot: true},
		},
	}
}

func TestFragScorer_Score(t *testing.T) {
	ctx := context.Background()

	Convey("Given a default frag scorer", t, func() {
		scorer := scoring.NewFragScorer()

		Convey("When scoring a valid match", func() {
			scores, err := scorer.Score(ctx, validMatch())

			Convey("Then every human player gets their frags", func() {
				So(err, ShouldBeNil)
				So(scores, ShouldResemble, []model.PlayerScore{
					{Player: "alpha", Score: 20, MatchID: "m1", Map: "dm2"},
					{Player: "bravo", Score: -2, MatchID: "m1", Map: "dm2"},
				})
			})
		})

		Convey("When the match was aborted", func() {
			m := validMatch()
			m.IsAborted = true
			_, err := scorer.Score(ctx, m)

			Convey("Then it is not ranked", func() {
				So(errors.Is(err, scoring.ErrUnranked), ShouldBeTrue)
			})
		})

		Convey("When the match is invalid", func() {
			m := validMatch()
			m.IsValid = false
			_, err := scorer.Score(ctx, m)

			Convey("Then it is not ranked", func() {
				So(errors.Is(err, scoring.ErrUnranked), ShouldBeTrue)
			})
		})

		Convey("When only one human played", func() {
			m := validMatch()
			m.Players = m.Players[:1]
			_, err := scorer.Score(ctx, m)

			Convey("Then it is not ranked", func() {
				So(errors.Is(err, scoring.ErrUnranked), ShouldBeTrue)
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := scorer.Score(cctx, validMatch())

			Convey("Then the cancellation is returned", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})

	Convey("Given a scorer that ranks bots", t, func() {
		scorer := scoring.NewFragScorer(scoring.WithBots(true))
		scores, err := scorer.Score(ctx, validMatch())

		Convey("Then bots are scored too", func() {
			So(err, ShouldBeNil)
			So(len(scores), ShouldEqual, 3)
			So(scores[2].Player, ShouldEqual, "[bot]")
		})
	})

	Convey("Given a scorer with a capture bonus", t, func() {
		scorer := scoring.NewFragScorer(scoring.WithCaptureBonus(5), scoring.WithMinPlayers(1))

		m := validMatch()
		m.IsCTF = true
		m.Flags = map[string]model.FlagCounts{"alpha": {Captures: 2}}
		scores, err := scorer.Score(ctx, m)

		Convey("Then captures add to the score", func() {
			So(err, ShouldBeNil)
			So(scores[0].Score, ShouldEqual, 30)
			So(scores[1].Score, ShouldEqual, -2)
		})
	})
}
