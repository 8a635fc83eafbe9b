package frame_test

import (
	"errors"
	"testing"

	"github.com/okian/mvdstats/internal/mvd/frame"
	"github.com/okian/mvdstats/internal/mvd/mvdtest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDecodeTag(t *testing.T) {
	Convey("Given every value of the low three tag bits", t, func() {
		cases := []struct {
			tag     byte
			target  frame.Target
			command frame.Command
		}{
			{0, frame.TargetNone, frame.CommandQwd},
			{1, frame.TargetNone, frame.CommandRead},
			{2, frame.TargetNone, frame.CommandSet},
			{3, frame.TargetMultiple, frame.CommandRead},
			{4, frame.TargetSingle, frame.CommandRead},
			{5, frame.TargetStats, frame.CommandRead},
			{6, frame.TargetAll, frame.CommandRead},
			{7, frame.TargetNone, frame.CommandEmpty},
		}

		Convey("Then target and command are decoded from the same bits", func() {
			for _, c := range cases {
				target, command := frame.DecodeTag(c.tag)
				So(target, ShouldEqual, c.target)
				So(command, ShouldEqual, c.command)

				// high bits are ignored
				target, command = frame.DecodeTag(c.tag | 0xF8)
				So(target, ShouldEqual, c.target)
				So(command, ShouldEqual, c.command)
			}
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Given a Read frame addressed to all clients", t, func() {
		data := mvdtest.New().All(12, []byte{1, 2, 3}).Bytes()

		f, err := frame.Parse(data, 0)

		Convey("Then the header is six bytes and the body follows", func() {
			So(err, ShouldBeNil)
			So(f.Duration, ShouldEqual, 12)
			So(f.Target, ShouldEqual, frame.TargetAll)
			So(f.Command, ShouldEqual, frame.CommandRead)
			So(f.HeaderSize, ShouldEqual, frame.HeaderSize)
			So(f.BodySize, ShouldEqual, 3)
			So(f.TotalSize, ShouldEqual, f.HeaderSize+f.BodySize)
			So(f.Body(data), ShouldResemble, []byte{1, 2, 3})
		})
	})

	Convey("Given a Multiple frame", t, func() {
		data := mvdtest.New().Multiple(0, []byte{9, 9}).Bytes()

		f, err := frame.Parse(data, 0)

		Convey("Then exactly four filler bytes are skipped before the size field", func() {
			So(err, ShouldBeNil)
			So(f.Target, ShouldEqual, frame.TargetMultiple)
			So(f.HeaderSize, ShouldEqual, frame.MultiHeaderSize)
			So(f.BodySize, ShouldEqual, 2)
			So(f.Body(data), ShouldResemble, []byte{9, 9})
		})
	})

	Convey("Given a Set frame whose body resembles a size field", t, func() {
		data := mvdtest.New().Set(5, [8]byte{0xFF, 0xFF, 0xFF, 0x7F, 1, 2, 3, 4}).Bytes()

		f, err := frame.Parse(data, 0)

		Convey("Then the body size is always eight", func() {
			So(err, ShouldBeNil)
			So(f.Command, ShouldEqual, frame.CommandSet)
			So(f.HeaderSize, ShouldEqual, 2)
			So(f.BodySize, ShouldEqual, 8)
			So(f.TotalSize, ShouldEqual, 10)
		})
	})

	Convey("Given an Empty command frame", t, func() {
		f, err := frame.Parse([]byte{3, 7}, 0)

		Convey("Then it has no body", func() {
			So(err, ShouldBeNil)
			So(f.Command, ShouldEqual, frame.CommandEmpty)
			So(f.TotalSize, ShouldEqual, 2)
		})
	})

	Convey("Given truncated input", t, func() {
		full := mvdtest.New().All(0, []byte{1, 2, 3, 4}).Bytes()

		Convey("Then a missing tag byte is malformed", func() {
			_, err := frame.Parse(full[:1], 0)
			So(errors.Is(err, frame.ErrMalformed), ShouldBeTrue)
		})

		Convey("Then a missing size field is malformed", func() {
			_, err := frame.Parse(full[:4], 0)
			So(errors.Is(err, frame.ErrMalformed), ShouldBeTrue)
		})

		Convey("Then a body overrunning the buffer is malformed", func() {
			_, err := frame.Parse(full[:len(full)-1], 0)
			So(errors.Is(err, frame.ErrMalformed), ShouldBeTrue)
		})

		Convey("Then an offset past the end is malformed", func() {
			_, err := frame.Parse(full, len(full))
			So(errors.Is(err, frame.ErrMalformed), ShouldBeTrue)
		})

		Convey("Then a truncated multi-target filler is malformed", func() {
			_, err := frame.Parse([]byte{0, 3, 0, 0}, 0)
			So(errors.Is(err, frame.ErrMalformed), ShouldBeTrue)
		})
	})

	Convey("Given a frame at a non-zero offset", t, func() {
		data := mvdtest.New().All(1, []byte{1}).Stats(2, []byte{2, 2}).Bytes()

		f, err := frame.Parse(data, 7)

		Convey("Then offsets are absolute", func() {
			So(err, ShouldBeNil)
			So(f.Offset, ShouldEqual, 7)
			So(f.Target, ShouldEqual, frame.TargetStats)
			So(f.BodyOffset(), ShouldEqual, 13)
			So(f.End(), ShouldEqual, len(data))
		})
	})
}

func TestCursor(t *testing.T) {
	Convey("Given a buffer of mixed frames", t, func() {
		data := mvdtest.New().
			All(10, []byte{1, 2}).
			Set(20, [8]byte{}).
			Multiple(30, []byte{3}).
			Single(40).
			Bytes()

		Convey("When iterating from offset zero", func() {
			c := frame.NewCursor(data, 0)
			sum := 0
			var durations []uint8
			for c.Next() {
				sum += c.Frame().TotalSize
				durations = append(durations, c.Frame().Duration)
			}

			Convey("Then every frame is visited and sizes add up to the final offset", func() {
				So(c.Err(), ShouldBeNil)
				So(c.Count(), ShouldEqual, 4)
				So(durations, ShouldResemble, []uint8{10, 20, 30, 40})
				So(sum, ShouldEqual, c.Offset())
				So(c.Offset(), ShouldEqual, len(data))
			})
		})
	})

	Convey("Given a buffer ending with a truncated frame", t, func() {
		good := mvdtest.New().All(0, []byte{1}).Bytes()
		data := append(good, 0, 6, 50, 0, 0, 0, 1)

		c := frame.NewCursor(data, 0)
		sum := 0
		for c.Next() {
			sum += c.Frame().TotalSize
		}

		Convey("Then iteration stops before the overrun and reports it", func() {
			So(c.Count(), ShouldEqual, 1)
			So(sum, ShouldEqual, len(good))
			So(c.Offset(), ShouldEqual, len(good))
			So(c.Offset(), ShouldBeLessThanOrEqualTo, len(data))
			So(errors.Is(c.Err(), frame.ErrMalformed), ShouldBeTrue)
		})
	})

	Convey("Given arbitrary garbage", t, func() {
		data := []byte{0xFF, 0x01, 0xFF, 0xFF, 0xFF, 0x0F, 0x00, 0x02}

		c := frame.NewCursor(data, 0)
		for c.Next() {
		}

		Convey("Then the cursor never passes the buffer end", func() {
			So(c.Offset(), ShouldBeLessThanOrEqualTo, len(data))
		})
	})
}
