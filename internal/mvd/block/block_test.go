package block_test

import (
	"errors"
	"testing"

	"github.com/okian/mvdstats/internal/mvd/block"
	"github.com/okian/mvdstats/internal/mvd/mvdtest"
	. "github.com/smartystreets/goconvey/convey"
)

const demoinfo = uint16(block.KindDemoinfo)

func TestParseHeader(t *testing.T) {
	Convey("Given a block header", t, func() {
		raw := mvdtest.Block(demoinfo, 7, []byte("abcd"))

		h, err := block.ParseHeader(raw)

		Convey("Then the body size excludes the two kind bytes", func() {
			So(err, ShouldBeNil)
			So(h.Kind, ShouldEqual, block.KindDemoinfo)
			So(h.Number, ShouldEqual, 7)
			So(h.BodySize, ShouldEqual, 4)
			So(h.TotalSize(), ShouldEqual, 12)
		})
	})

	Convey("Given malformed headers", t, func() {
		Convey("Then short input is rejected", func() {
			_, err := block.ParseHeader([]byte{1, 2, 3})
			So(errors.Is(err, block.ErrMalformed), ShouldBeTrue)
		})

		Convey("Then a declared size below two is rejected", func() {
			_, err := block.ParseHeader([]byte{1, 0, 0, 0, 3, 0, 0, 0})
			So(errors.Is(err, block.ErrMalformed), ShouldBeTrue)
		})
	})

	Convey("Given raw kind values", t, func() {
		So(block.KindOf(3), ShouldEqual, block.KindDemoinfo)
		So(block.KindOf(0x0A), ShouldEqual, block.KindPausedDuration)
		So(block.KindOf(0xFFFF), ShouldEqual, block.KindExtended)
		So(block.KindOf(0x0B), ShouldEqual, block.KindUnknown)
	})
}

func TestChain(t *testing.T) {
	Convey("Given a chain of Demoinfo blocks numbered 3 down to 0 followed by another Demoinfo block", t, func() {
		b := mvdtest.New().All(0, []byte{1, 2, 3})
		start := b.Len()
		b.Multiple(0, mvdtest.Block(demoinfo, 3, []byte(`{"version": 3,`))).
			Multiple(0, mvdtest.Block(demoinfo, 2, []byte(` "a": 1,`))).
			Multiple(0, mvdtest.Block(demoinfo, 1, []byte(` "b": 2`))).
			Multiple(0, mvdtest.Block(demoinfo, 0, []byte(`}`))).
			Multiple(0, mvdtest.Block(demoinfo, 5, []byte(`garbage`)))
		data := b.Bytes()

		Convey("When reassembling from the first chain frame", func() {
			content := block.Chain(data, start)

			Convey("Then bodies are joined in order and the block numbered 0 ends the chain", func() {
				So(string(content), ShouldEqual, `{"version": 3, "a": 1, "b": 2}`)
			})
		})

		Convey("When locating the document by its marker", func() {
			doc, err := block.Ktxstats(data)

			Convey("Then the same document is recovered", func() {
				So(err, ShouldBeNil)
				So(doc, ShouldEqual, `{"version": 3, "a": 1, "b": 2}`)
			})
		})
	})

	Convey("Given a chain interrupted by a block of another kind", t, func() {
		data := mvdtest.New().
			Multiple(0, mvdtest.Block(demoinfo, 2, []byte(`{"version": 3`))).
			Multiple(0, mvdtest.Block(uint16(block.KindDmgdone), 1, []byte(`xx`))).
			Multiple(0, mvdtest.Block(demoinfo, 0, []byte(`}`))).
			Bytes()

		doc, err := block.Ktxstats(data)

		Convey("Then reassembly stops at the foreign block", func() {
			So(err, ShouldBeNil)
			So(doc, ShouldEqual, `{"version": 3`)
		})
	})

	Convey("Given a chain whose last block is truncated", t, func() {
		data := mvdtest.New().
			Multiple(0, mvdtest.Block(demoinfo, 1, []byte(`{"version": 3`))).
			Multiple(0, mvdtest.Block(demoinfo, 0, []byte(`, "x": 1}`))).
			Bytes()
		data = data[:len(data)-3]

		doc, err := block.Ktxstats(data)

		Convey("Then the complete blocks are kept", func() {
			So(err, ShouldBeNil)
			So(doc, ShouldEqual, `{"version": 3`)
		})
	})

	Convey("Given a demo without the marker", t, func() {
		data := mvdtest.New().All(0, []byte("no stats here")).Bytes()

		_, err := block.Ktxstats(data)

		Convey("Then the document is absent", func() {
			So(errors.Is(err, block.ErrAbsent), ShouldBeTrue)
		})
	})

	Convey("Given a marker too close to the start to have a header", t, func() {
		_, err := block.Ktxstats([]byte(`{"version": 3}`))

		Convey("Then the document is absent", func() {
			So(errors.Is(err, block.ErrAbsent), ShouldBeTrue)
		})
	})

	Convey("Given a chain with invalid utf-8", t, func() {
		data := mvdtest.New().
			Multiple(0, mvdtest.Block(demoinfo, 0, append([]byte(`{"version": `), 0xFF, 0xFE))).
			Bytes()

		_, err := block.Ktxstats(data)

		Convey("Then the document is absent", func() {
			So(errors.Is(err, block.ErrAbsent), ShouldBeTrue)
		})
	})
}
