package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/mvdstats/internal/adapters/repository"
	"github.com/okian/mvdstats/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func archivedMatch(id, checksum string, at time.Time) model.Match {
	return model.Match{
		ID:            id,
		Checksum:      checksum,
		Filename:      "duel_alpha_vs_bravo[dm4].mvd",
		Map:           "dm4",
		Mode:          "duel",
		Source:        model.SourceParsing,
		MatchDuration: 10 * time.Minute,
		IsValid:       true,
		Players: []model.Player{
			{Name: "alpha", Team: "red", Frags: 21, Ping: 12},
			{Name: "bravo", Team: "blue", Frags: 9, Ping: 25},
		},
		AnalyzedAt: at,
	}
}

func TestArchive(t *testing.T) {
	Convey("Given an archive in a temporary directory", t, func() {
		ctx := context.Background()
		archive, err := repository.OpenArchive(filepath.Join(t.TempDir(), "nested", "matches.db"))
		So(err, ShouldBeNil)
		Reset(func() { _ = archive.Close() })

		first := time.Date(2024, 4, 26, 17, 16, 0, 0, time.UTC)
		So(archive.Save(ctx, archivedMatch("m1", "c1", first)), ShouldBeNil)
		So(archive.Save(ctx, archivedMatch("m2", "c2", first.Add(time.Hour))), ShouldBeNil)

		Convey("When a match is read back", func() {
			m, err := archive.Get(ctx, "m1")

			Convey("Then the summary is intact", func() {
				So(err, ShouldBeNil)
				So(m.Checksum, ShouldEqual, "c1")
				So(m.MatchDuration, ShouldEqual, 10*time.Minute)
				So(m.Players, ShouldResemble, archivedMatch("m1", "c1", first).Players)
				So(m.AnalyzedAt.Equal(first), ShouldBeTrue)
			})
		})

		Convey("When looking up by checksum", func() {
			id, err := archive.FindByChecksum(ctx, "c2")
			_, missing := archive.FindByChecksum(ctx, "nope")

			Convey("Then the match id is returned", func() {
				So(err, ShouldBeNil)
				So(id, ShouldEqual, "m2")
				So(errors.Is(missing, repository.ErrMatchNotFound), ShouldBeTrue)
			})
		})

		Convey("When listing a player's results", func() {
			results, err := archive.PlayerResults(ctx, "alpha", 10)

			Convey("Then the newest match comes first", func() {
				So(err, ShouldBeNil)
				So(results, ShouldHaveLength, 2)
				So(results[0].MatchID, ShouldEqual, "m2")
				So(results[0].Frags, ShouldEqual, 21)
				So(results[1].AnalyzedAt.Equal(first), ShouldBeTrue)
			})

			Convey("Then the limit is validated", func() {
				_, err := archive.PlayerResults(ctx, "alpha", 0)
				So(errors.Is(err, repository.ErrInvalidLimit), ShouldBeTrue)
			})
		})

		Convey("When a match is saved again with fewer players", func() {
			m := archivedMatch("m1", "c1", first)
			m.Players = m.Players[:1]
			So(archive.Save(ctx, m), ShouldBeNil)

			Convey("Then it replaces the earlier copy", func() {
				n, err := archive.Count(ctx)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 2)

				results, _ := archive.PlayerResults(ctx, "bravo", 10)
				So(results, ShouldHaveLength, 1)
				So(results[0].MatchID, ShouldEqual, "m2")
			})
		})

		Convey("When iterating over the archive", func() {
			var ids []string
			err := archive.Each(ctx, func(m model.Match) error {
				ids = append(ids, m.ID)
				return nil
			})

			Convey("Then matches come oldest first", func() {
				So(err, ShouldBeNil)
				So(ids, ShouldResemble, []string{"m1", "m2"})
			})

			Convey("Then a callback error stops the walk", func() {
				stop := errors.New("stop")
				calls := 0
				err := archive.Each(ctx, func(model.Match) error {
					calls++
					return stop
				})
				So(errors.Is(err, stop), ShouldBeTrue)
				So(calls, ShouldEqual, 1)
			})
		})

		Convey("When an older match is analysed last", func() {
			late := archivedMatch("m3", "c3", first.Add(2*time.Hour))
			late.MatchDate = "2024-04-20 12:00:00 CEST"
			So(archive.Save(ctx, late), ShouldBeNil)

			Convey("Then iteration follows the match dates", func() {
				var ids []string
				err := archive.Each(ctx, func(m model.Match) error {
					ids = append(ids, m.ID)
					return nil
				})
				So(err, ShouldBeNil)
				So(ids, ShouldResemble, []string{"m3", "m1", "m2"})
			})

			Convey("Then it is the oldest of the player's results", func() {
				results, err := archive.PlayerResults(ctx, "alpha", 10)
				So(err, ShouldBeNil)
				So(results, ShouldHaveLength, 3)
				So(results[2].MatchID, ShouldEqual, "m3")
				So(results[2].MatchDate, ShouldEqual, "2024-04-20 12:00:00 CEST")
			})
		})

		Convey("When two players share a name", func() {
			m := archivedMatch("m4", "c4", first.Add(3*time.Hour))
			m.Players = append(m.Players, model.Player{Name: "alpha", Team: "blue", Frags: 3, Ping: 40})
			err := archive.Save(ctx, m)

			Convey("Then both appearances are stored", func() {
				So(err, ShouldBeNil)
				results, err := archive.PlayerResults(ctx, "alpha", 10)
				So(err, ShouldBeNil)
				So(results, ShouldHaveLength, 4)
				So(results[0].MatchID, ShouldEqual, "m4")
				So(results[0].Frags, ShouldEqual, 21)
				So(results[1].MatchID, ShouldEqual, "m4")
				So(results[1].Frags, ShouldEqual, 3)
			})
		})

		Convey("When an unknown match is requested", func() {
			_, err := archive.Get(ctx, "missing")

			Convey("Then it is not found", func() {
				So(errors.Is(err, repository.ErrMatchNotFound), ShouldBeTrue)
			})
		})
	})
}
