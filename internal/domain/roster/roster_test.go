package roster_test

import (
	"errors"
	"testing"

	"github.com/okian/mvdstats/internal/domain/model"
	"github.com/okian/mvdstats/internal/domain/roster"
	"github.com/okian/mvdstats/internal/mvd/mvdtest"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	infoEqu     = `\*client\ezQuake 1\bottomcolor\4\topcolor\4\team\red\name\eQu`
	infoServeMe = `\*client\libqwclient 0.1\*spectator\1\bottomcolor\11\topcolor\12\team\lqwc\name\[ServeMe]`
	infoBot     = `\team\red\*bot\1\bottomcolor\4\topcolor\4\skin\base\name\: Timber`
)

func demo() []byte {
	return mvdtest.New().
		All(0, mvdtest.Spawn()).
		All(0, mvdtest.Userinfo(0, infoEqu)).
		All(0, mvdtest.Userinfo(1, infoServeMe)).
		All(0, mvdtest.Userinfo(2, infoBot)).
		All(0, mvdtest.Print(mvdtest.PrintHigh, "hello")).
		Bytes()
}

func TestStrings(t *testing.T) {
	Convey("Given a demo with three userinfo strings after spawn", t, func() {
		infos, err := roster.Strings(demo())

		Convey("Then they are returned in order", func() {
			So(err, ShouldBeNil)
			So(infos, ShouldResemble, []string{infoEqu, infoServeMe, infoBot})
		})
	})

	Convey("Given a demo without the spawn command", t, func() {
		_, err := roster.Strings(mvdtest.New().All(0, mvdtest.Userinfo(0, infoEqu)).Bytes())

		Convey("Then the roster is not found", func() {
			So(errors.Is(err, roster.ErrNotFound), ShouldBeTrue)
		})
	})

	Convey("Given userinfo too far from the previous string", t, func() {
		data := mvdtest.New().
			All(0, mvdtest.Spawn()).
			All(0, mvdtest.Userinfo(0, infoEqu)).
			All(0, mvdtest.Pad(300)).
			All(0, mvdtest.Userinfo(1, infoBot)).
			Bytes()

		infos, err := roster.Strings(data)

		Convey("Then scanning stops at the gap", func() {
			So(err, ShouldBeNil)
			So(infos, ShouldResemble, []string{infoEqu})
		})
	})

	Convey("Given a coloured name", t, func() {
		data := mvdtest.New().
			All(0, mvdtest.Spawn()).
			All(0, mvdtest.Userinfo(0, "\\team\\red\\name\\\xe4\xe1\xe7\xef")).
			Bytes()

		infos, err := roster.Strings(data)

		Convey("Then the string is returned in its Latin-1 form", func() {
			So(err, ShouldBeNil)
			So(infos, ShouldResemble, []string{`\team\red\name\äáçï`})
		})
	})
}

func TestClients(t *testing.T) {
	Convey("Given a demo with a player, a spectator and a bot", t, func() {
		clients, err := roster.Clients(demo())

		Convey("Then clients are numbered by slot", func() {
			So(err, ShouldBeNil)
			So(clients, ShouldResemble, []model.Client{
				{Number: 0, Name: "eQu", Team: "red", Color: [2]uint8{4, 4}},
				{Number: 1, Name: "[ServeMe]", Team: "lqwc", Color: [2]uint8{12, 11}, IsSpectator: true},
				{Number: 2, Name: ": Timber", Team: "red", Color: [2]uint8{4, 4}, IsBot: true},
			})
		})

		Convey("Then Players drops the spectator", func() {
			players := roster.Players(clients)
			So(players, ShouldHaveLength, 2)
			So(players[1].Name, ShouldEqual, ": Timber")
		})

		Convey("Then BySlot indexes them", func() {
			m := roster.BySlot(clients)
			So(m[1].Name, ShouldEqual, "[ServeMe]")
		})
	})
}
