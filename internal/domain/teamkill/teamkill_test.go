package teamkill_test

import (
	"testing"

	"github.com/okian/mvdstats/internal/domain/model"
	"github.com/okian/mvdstats/internal/domain/teamkill"
	"github.com/okian/mvdstats/internal/mvd/mvdtest"
	. "github.com/smartystreets/goconvey/convey"
)

var clients = []model.Client{
	{Number: 0, Name: "alpha", Team: "red"},
	{Number: 1, Name: "bravo", Team: "red"},
	{Number: 2, Name: "charlie", Team: "blue"},
	{Number: 3, Name: "delta", Team: "red"},
	{Number: 4, Name: "spec", Team: "red", IsSpectator: true},
}

const tk = "alpha was crushed by his teammate"

func TestResolve(t *testing.T) {
	Convey("Given a teammate's frags updated right after the print", t, func() {
		data := mvdtest.New().
			All(0, mvdtest.Print(mvdtest.PrintMedium, tk), mvdtest.UpdateFrags(2, 5)).
			All(10, mvdtest.UpdateFrags(1, -1)).
			Bytes()

		killer, ok := teamkill.NewResolver(data, clients).Resolve(0, "alpha")

		Convey("Then that teammate is the killer", func() {
			So(ok, ShouldBeTrue)
			So(killer, ShouldEqual, "bravo")
		})
	})

	Convey("Given the same teammate updated twice", t, func() {
		data := mvdtest.New().
			All(0, mvdtest.Print(mvdtest.PrintMedium, tk), mvdtest.UpdateFrags(1, -1)).
			All(10, mvdtest.UpdateFrags(1, -1)).
			Bytes()

		killer, ok := teamkill.NewResolver(data, clients).Resolve(0, "alpha")

		Convey("Then it still resolves", func() {
			So(ok, ShouldBeTrue)
			So(killer, ShouldEqual, "bravo")
		})
	})

	Convey("Given two teammates updated in the window", t, func() {
		data := mvdtest.New().
			All(0, mvdtest.Print(mvdtest.PrintMedium, tk)).
			All(10, mvdtest.UpdateFrags(1, -1), mvdtest.UpdateFrags(3, 4)).
			Bytes()

		_, ok := teamkill.NewResolver(data, clients).Resolve(0, "alpha")

		Convey("Then resolution fails", func() {
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given only the victim, enemies and spectators updated", t, func() {
		data := mvdtest.New().
			All(0, mvdtest.Print(mvdtest.PrintMedium, tk), mvdtest.UpdateFrags(0, 3)).
			All(10, mvdtest.UpdateFrags(2, 1), mvdtest.UpdateFrags(4, 1)).
			Bytes()

		_, ok := teamkill.NewResolver(data, clients).Resolve(0, "alpha")

		Convey("Then resolution fails", func() {
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given the killer updated outside the window", t, func() {
		b := mvdtest.New().All(0, mvdtest.Print(mvdtest.PrintMedium, tk))
		for i := 0; i < 4; i++ {
			b.All(10, mvdtest.Print(mvdtest.PrintHigh, "noise"))
		}
		data := b.All(10, mvdtest.UpdateFrags(1, -1)).Bytes()

		Convey("Then the default window misses it", func() {
			_, ok := teamkill.NewResolver(data, clients).Resolve(0, "alpha")
			So(ok, ShouldBeFalse)
		})

		Convey("Then a wider window finds it", func() {
			killer, ok := teamkill.NewResolver(data, clients, teamkill.WithLookahead(6)).Resolve(0, "alpha")
			So(ok, ShouldBeTrue)
			So(killer, ShouldEqual, "bravo")
		})
	})

	Convey("Given an unknown victim", t, func() {
		data := mvdtest.New().All(0, mvdtest.UpdateFrags(1, -1)).Bytes()

		_, ok := teamkill.NewResolver(data, clients).Resolve(0, "nobody")

		So(ok, ShouldBeFalse)
	})
}
