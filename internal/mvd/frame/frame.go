// Package frame parses MVD frame headers and walks a demo buffer frame by frame.
//
// Frame header layout (little-endian):
//
//	byte 0      duration in ms since the previous frame
//	byte 1      target/command tag (low 3 bits)
//	bytes 2..5  zero filler, present only when the target is Multiple
//	u32         body size, present only when the command is Read
//
// Set frames always carry an 8 byte body and no size field.
package frame

import (
	"encoding/binary"
	"fmt"
)

// Header sizes in bytes.
const (
	HeaderSize      = 6  // duration + tag + u32 size
	MultiHeaderSize = 10 // HeaderSize + 4 byte multi-target filler
	multiFillerSize = 4
	sizeFieldSize   = 4
	setBodySize     = 8
	tagMask         = 0x07
)

// Target is the recipient class encoded in the frame tag.
type Target uint8

const (
	TargetNone     Target = 0
	TargetMultiple Target = 3
	TargetSingle   Target = 4
	TargetStats    Target = 5
	TargetAll      Target = 6
)

func (t Target) String() string {
	switch t {
	case TargetMultiple:
		return "multiple"
	case TargetSingle:
		return "single"
	case TargetStats:
		return "stats"
	case TargetAll:
		return "all"
	default:
		return "none"
	}
}

// Command is the frame command encoded in the same tag bits as Target.
type Command uint8

const (
	CommandQwd   Command = 0
	CommandRead  Command = 1
	CommandSet   Command = 2
	CommandEmpty Command = 7
)

func (c Command) String() string {
	switch c {
	case CommandQwd:
		return "qwd"
	case CommandRead:
		return "read"
	case CommandSet:
		return "set"
	default:
		return "empty"
	}
}

// DecodeTag maps the low three bits of a tag byte to both its Target and its
// Command. The two values share one numeric domain on the wire.
func DecodeTag(b byte) (Target, Command) {
	v := b & tagMask

	target := TargetNone
	switch v {
	case 3:
		target = TargetMultiple
	case 4:
		target = TargetSingle
	case 5:
		target = TargetStats
	case 6:
		target = TargetAll
	}

	command := CommandEmpty
	switch v {
	case 0:
		command = CommandQwd
	case 1, 3, 4, 5, 6:
		command = CommandRead
	case 2:
		command = CommandSet
	}

	return target, command
}

// Frame describes one frame header located at Offset.
type Frame struct {
	Duration   uint8
	Target     Target
	Command    Command
	Offset     int
	HeaderSize int
	BodySize   int
	TotalSize  int
}

// BodyOffset returns the absolute offset of the first body byte.
func (f Frame) BodyOffset() int { return f.Offset + f.HeaderSize }

// End returns the absolute offset just past the frame.
func (f Frame) End() int { return f.Offset + f.TotalSize }

// Body returns the frame body as a sub-slice of data.
func (f Frame) Body(data []byte) []byte {
	return data[f.BodyOffset():f.End()]
}

// Parse reads the frame header at offset. It returns ErrMalformed when the
// header does not fit in data or the declared frame would overrun data.
func Parse(data []byte, offset int) (Frame, error) {
	if offset < 0 || offset+2 > len(data) {
		return Frame{}, fmt.Errorf("frame at %d: header: %w", offset, ErrMalformed)
	}

	f := Frame{Offset: offset, Duration: data[offset]}
	f.Target, f.Command = DecodeTag(data[offset+1])
	pos := offset + 2

	if f.Target == TargetMultiple {
		pos += multiFillerSize
		if pos > len(data) {
			return Frame{}, fmt.Errorf("frame at %d: multi target filler: %w", offset, ErrMalformed)
		}
	}

	switch f.Command {
	case CommandRead:
		if pos+sizeFieldSize > len(data) {
			return Frame{}, fmt.Errorf("frame at %d: size field: %w", offset, ErrMalformed)
		}
		f.BodySize = int(binary.LittleEndian.Uint32(data[pos:]))
		pos += sizeFieldSize
	case CommandSet:
		f.BodySize = setBodySize
	}

	f.HeaderSize = pos - offset
	f.TotalSize = f.HeaderSize + f.BodySize
	if f.BodySize < 0 || f.End() > len(data) {
		return Frame{}, fmt.Errorf("frame at %d: %d bytes declared, %d available: %w",
			offset, f.TotalSize, len(data)-offset, ErrMalformed)
	}

	return f, nil
}
