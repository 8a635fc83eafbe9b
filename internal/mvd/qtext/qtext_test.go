package qtext_test

import (
	"testing"

	"github.com/okian/mvdstats/internal/mvd/qtext"
	. "github.com/smartystreets/goconvey/convey"
)

func TestUnicode(t *testing.T) {
	Convey("Given coloured Quake text", t, func() {
		raw := []byte{0xC2, 0xCC, 0xD5, 0xC5}

		Convey("Then every byte becomes its Latin-1 code point", func() {
			So(qtext.Unicode(raw), ShouldEqual, "ÂÌÕÅ")
			So(qtext.Unicode([]byte("plain")), ShouldEqual, "plain")
		})

		Convey("Then Latin1 restores the original bytes", func() {
			So(qtext.Latin1(qtext.Unicode(raw)), ShouldResemble, raw)
		})
	})

	Convey("Given runes outside Latin-1", t, func() {
		So(qtext.Latin1("a€b"), ShouldResemble, []byte("a?b"))
	})
}

func TestASCII(t *testing.T) {
	Convey("Given coloured text", t, func() {
		Convey("Then the high bit is dropped", func() {
			So(qtext.ASCII([]byte{0xC2, 0xCC, 0xD5, 0xC5}), ShouldEqual, "BLUE")
			So(qtext.ASCIIString("äáçï"), ShouldEqual, "dago")
		})
	})

	Convey("Given control glyphs", t, func() {
		Convey("Then they map to readable characters", func() {
			So(qtext.ASCII([]byte{0x10, 0x12, 0x1B, 0x11}), ShouldEqual, "[09]")
			So(qtext.ASCII([]byte{0x90, 0x7F, 0x05}), ShouldEqual, "[_.")
		})
	})
}
