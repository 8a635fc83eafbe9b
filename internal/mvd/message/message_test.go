package message_test

import (
	"errors"
	"testing"

	"github.com/okian/mvdstats/internal/mvd/message"
	"github.com/okian/mvdstats/internal/mvd/mvdtest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTypeOf(t *testing.T) {
	Convey("Given tag bytes", t, func() {
		Convey("Then defined codes map to their type", func() {
			So(message.TypeOf(8), ShouldEqual, message.TypePrint)
			So(message.TypeOf(14), ShouldEqual, message.TypeUpdateFrags)
			So(message.TypeOf(36), ShouldEqual, message.TypeUpdatePing)
			So(message.TypeOf(53), ShouldEqual, message.TypeUpdatePl)
			So(message.TypeOf(84), ShouldEqual, message.TypeFteVoiceChat)
		})

		Convey("Then gaps in the catalogue are unknown", func() {
			So(message.TypeOf(55), ShouldEqual, message.TypeUnknown)
			So(message.TypeOf(200), ShouldEqual, message.TypeUnknown)
			So(message.TypeOf(55).String(), ShouldEqual, "unknown")
		})
	})
}

func TestDecodePrint(t *testing.T) {
	Convey("Given print payloads", t, func() {
		Convey("Then the id, null and trailing newline are stripped", func() {
			p, err := message.DecodePrint([]byte{1, 2, 3, 4, 10, 0})
			So(err, ShouldBeNil)
			So(p.ID, ShouldEqual, message.PrintMedium)
			So(p.Content, ShouldResemble, []byte{2, 3, 4})
		})

		Convey("Then text without a newline is kept whole", func() {
			p, err := message.DecodePrint([]byte{2, 'a', 'b', 0})
			So(err, ShouldBeNil)
			So(p.ID, ShouldEqual, message.PrintHigh)
			So(string(p.Content), ShouldEqual, "ab")
		})

		Convey("Then short input is rejected", func() {
			_, err := message.DecodePrint([]byte{1, 0})
			So(errors.Is(err, message.ErrInsufficientLength), ShouldBeTrue)
			So(errors.Is(err, message.ErrMalformed), ShouldBeTrue)
		})

		Convey("Then a missing terminator is rejected", func() {
			_, err := message.DecodePrint([]byte{1, 2, 3, 4, 5})
			So(errors.Is(err, message.ErrMissingTerminator), ShouldBeTrue)
		})

		Convey("Then an unknown level is reported as such", func() {
			p, err := message.DecodePrint([]byte{9, 'x', 0})
			So(err, ShouldBeNil)
			So(p.ID, ShouldEqual, message.PrintUnknown)
		})
	})
}

func TestDecodeUpdates(t *testing.T) {
	Convey("Given update payloads", t, func() {
		Convey("Then UpdateFrags reads a slot and a little-endian count", func() {
			u, err := message.DecodeUpdateFrags([]byte{9, 23, 1})
			So(err, ShouldBeNil)
			So(u, ShouldResemble, message.UpdateFrags{Slot: 9, Frags: 279})
		})

		Convey("Then negative frag counts are signed", func() {
			u, err := message.DecodeUpdateFrags([]byte{1, 0xFE, 0xFF})
			So(err, ShouldBeNil)
			So(u.Frags, ShouldEqual, -2)
		})

		Convey("Then UpdatePing reads a slot and a little-endian ping", func() {
			u, err := message.DecodeUpdatePing([]byte{4, 1, 2, 0})
			So(err, ShouldBeNil)
			So(u, ShouldResemble, message.UpdatePing{Slot: 4, Ping: 513})
		})

		Convey("Then truncated payloads are rejected", func() {
			_, err := message.DecodeUpdateFrags([]byte{1, 2})
			So(errors.Is(err, message.ErrInsufficientLength), ShouldBeTrue)
			_, err = message.DecodeUpdatePing([]byte{1})
			So(errors.Is(err, message.ErrInsufficientLength), ShouldBeTrue)
		})
	})
}

func TestReader(t *testing.T) {
	Convey("Given a body with a burst of pings", t, func() {
		body := append(mvdtest.UpdatePing(0, 25), mvdtest.UpdatePing(1, 40)...)
		body = append(body, mvdtest.UpdatePing(2, 12)...)

		Convey("When reading while the tag keeps matching", func() {
			r := message.NewReader(body)
			var pings []message.UpdatePing
			for {
				t, ok := r.PeekType()
				if !ok || t != message.TypeUpdatePing {
					break
				}
				_, err := r.ReadType()
				So(err, ShouldBeNil)
				p, err := r.ReadUpdatePing()
				So(err, ShouldBeNil)
				pings = append(pings, p)
			}

			Convey("Then the UpdatePl records are skipped and the cursor stays aligned", func() {
				So(pings, ShouldResemble, []message.UpdatePing{
					{Slot: 0, Ping: 25}, {Slot: 1, Ping: 40}, {Slot: 2, Ping: 12},
				})
				So(r.Len(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a body mixing decodable and undecodable messages", t, func() {
		var body []byte
		body = append(body, mvdtest.Print(mvdtest.PrintMedium, "FOO stomps BAR")...)
		body = append(body, mvdtest.UpdateFrags(3, 7)...)
		body = append(body, mvdtest.Stufftext("ignored")...)
		body = append(body, mvdtest.UpdateFrags(4, 1)...)

		msgs, err := message.Messages(body)

		Convey("Then scanning stops at the first undecoded tag without error", func() {
			So(err, ShouldBeNil)
			So(len(msgs), ShouldEqual, 2)
			p, ok := msgs[0].(message.Print)
			So(ok, ShouldBeTrue)
			So(string(p.Content), ShouldEqual, "FOO stomps BAR")
			So(msgs[1], ShouldResemble, message.UpdateFrags{Slot: 3, Frags: 7})
		})
	})

	Convey("Given a body whose last print is truncated", t, func() {
		body := append(mvdtest.UpdateFrags(1, 2), 8, 2, 'a', 'b')

		msgs, err := message.Messages(body)

		Convey("Then the decoded prefix is returned with the error", func() {
			So(len(msgs), ShouldEqual, 1)
			So(errors.Is(err, message.ErrMissingTerminator), ShouldBeTrue)
		})
	})

	Convey("Given consecutive prints", t, func() {
		body := append(mvdtest.Print(mvdtest.PrintHigh, "one"), mvdtest.Print(mvdtest.PrintChat, "two")...)
		r := message.NewReader(body)

		Convey("Then each print consumes its id, text and terminator", func() {
			m, ok, err := r.Next()
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(string(m.(message.Print).Content), ShouldEqual, "one")
			m, ok, err = r.Next()
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(m.(message.Print).ID, ShouldEqual, message.PrintChat)
			_, ok, err = r.Next()
			So(ok, ShouldBeFalse)
			So(err, ShouldBeNil)
			So(r.Offset(), ShouldEqual, len(body))
		})
	})
}
