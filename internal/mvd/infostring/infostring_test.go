package infostring_test

import (
	"testing"

	"github.com/okian/mvdstats/internal/mvd/infostring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given an info string", t, func() {
		m := infostring.Parse(`\maxfps\77\*version\MVDSV 0.36\map\dm2`)

		Convey("Then every pair is returned", func() {
			So(m, ShouldResemble, map[string]string{
				"maxfps":   "77",
				"*version": "MVDSV 0.36",
				"map":      "dm2",
			})
		})
	})

	Convey("Given a trailing key without value", t, func() {
		m := infostring.Parse(`\a\1\b`)

		So(m["a"], ShouldEqual, "1")
		v, ok := m["b"]
		So(ok, ShouldBeTrue)
		So(v, ShouldEqual, "")
	})

	Convey("Given an empty string", t, func() {
		So(infostring.Parse(""), ShouldBeEmpty)
	})
}

func TestClientinfo(t *testing.T) {
	Convey("Given a player's userinfo", t, func() {
		ci := infostring.ParseClientinfo(`\*client\ezQuake 1\gender\m\bottomcolor\4\topcolor\4\team\red\name\eQu`)

		Convey("Then the known keys are decoded", func() {
			So(ci, ShouldResemble, infostring.Clientinfo{
				Name:        "eQu",
				Team:        "red",
				TopColor:    4,
				BottomColor: 4,
				Client:      "ezQuake 1",
			})
			So(ci.IsSpectator(), ShouldBeFalse)
			So(ci.IsBot(), ShouldBeFalse)
		})
	})

	Convey("Given a spectating bot with a broken colour", t, func() {
		ci := infostring.ParseClientinfo(`\*spectator\1\*bot\1\topcolor\x\bottomcolor\11\name\[ServeMe]`)

		Convey("Then the broken value decodes as zero", func() {
			So(ci.Name, ShouldEqual, "[ServeMe]")
			So(ci.TopColor, ShouldEqual, 0)
			So(ci.BottomColor, ShouldEqual, 11)
			So(ci.IsSpectator(), ShouldBeTrue)
			So(ci.IsBot(), ShouldBeTrue)
		})
	})
}

func TestServerinfo(t *testing.T) {
	Convey("Given a serverinfo string", t, func() {
		si := infostring.ParseServerinfo(`\maxfps\77\pm_ktjump\1\*version\MVDSV 0.36\*z_ext\511\*admin\suom1 <suom1@irc.ax>\ktxver\1.42\sv_antilag\2\maxspectators\12\*gamedir\qw\timelimit\10\deathmatch\3\mode\1on1\hostname\QUAKE.SE KTX:28501\fpd\142\*qvm\so\*progs\so\maxclients\2\map\bravado\status\Countdown\serverdemo\duel_holy_vs_dago[bravado]20240426-1659.mvd`)

		Convey("Then the settings are decoded", func() {
			So(si, ShouldResemble, infostring.Serverinfo{
				Admin:         "suom1 <suom1@irc.ax>",
				Deathmatch:    3,
				Fpd:           142,
				Gamedir:       "qw",
				Hostname:      "QUAKE.SE KTX:28501",
				Ktxver:        "1.42",
				Map:           "bravado",
				Maxclients:    2,
				Maxfps:        77,
				Maxspectators: 12,
				Mode:          "1on1",
				PmKtjump:      1,
				Progs:         "so",
				Qvm:           "so",
				Serverdemo:    "duel_holy_vs_dago[bravado]20240426-1659.mvd",
				Status:        "Countdown",
				SvAntilag:     2,
				Timelimit:     10,
				Version:       "MVDSV 0.36",
				ZExt:          511,
			})
		})
	})
}
