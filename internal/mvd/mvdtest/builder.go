// Package mvdtest builds synthetic MVD buffers for tests.
package mvdtest

import (
	"bytes"
	"encoding/binary"
)

// Tag bytes written by the builder.
const (
	tagRead     = 1
	tagSet      = 2
	tagMultiple = 3
	tagSingle   = 4
	tagStats    = 5
	tagAll      = 6

	msgDisconnect  = 2
	msgPrint       = 8
	msgStufftext   = 9
	msgUpdateFrags = 14
	msgUpdatePing  = 36
	msgUserinfo    = 40
	msgUpdatePl    = 53
)

// Print levels.
const (
	PrintLow    = 0
	PrintMedium = 1
	PrintHigh   = 2
	PrintChat   = 3
)

// Builder appends frames to an in-memory demo.
type Builder struct {
	buf bytes.Buffer
}

// New returns an empty Builder.
func New() *Builder { return &Builder{} }

// Bytes returns the demo built so far.
func (b *Builder) Bytes() []byte { return bytes.Clone(b.buf.Bytes()) }

// Len returns the current demo size.
func (b *Builder) Len() int { return b.buf.Len() }

// Raw appends raw bytes.
func (b *Builder) Raw(p []byte) *Builder {
	b.buf.Write(p)
	return b
}

// All appends a Read frame addressed to all clients.
func (b *Builder) All(duration uint8, body ...[]byte) *Builder {
	return b.read(tagAll, duration, bytes.Join(body, nil))
}

// Stats appends a Read frame addressed to the stats target.
func (b *Builder) Stats(duration uint8, body ...[]byte) *Builder {
	return b.read(tagStats, duration, bytes.Join(body, nil))
}

// Single appends a Read frame addressed to one client.
func (b *Builder) Single(duration uint8, body ...[]byte) *Builder {
	return b.read(tagSingle, duration, bytes.Join(body, nil))
}

// Plain appends a Read frame with no target.
func (b *Builder) Plain(duration uint8, body ...[]byte) *Builder {
	return b.read(tagRead, duration, bytes.Join(body, nil))
}

// Multiple appends a Read frame with the multi-target filler.
func (b *Builder) Multiple(duration uint8, body ...[]byte) *Builder {
	joined := bytes.Join(body, nil)
	b.buf.WriteByte(duration)
	b.buf.WriteByte(tagMultiple)
	b.buf.Write([]byte{0, 0, 0, 0})
	b.writeU32(uint32(len(joined)))
	b.buf.Write(joined)
	return b
}

// Set appends a Set frame. Its size field is absent and the body is 8 bytes.
func (b *Builder) Set(duration uint8, body [8]byte) *Builder {
	b.buf.WriteByte(duration)
	b.buf.WriteByte(tagSet)
	b.buf.Write(body[:])
	return b
}

func (b *Builder) read(tag byte, duration uint8, body []byte) *Builder {
	b.buf.WriteByte(duration)
	b.buf.WriteByte(tag)
	b.writeU32(uint32(len(body)))
	b.buf.Write(body)
	return b
}

func (b *Builder) writeU32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.buf.Write(tmp[:])
}

// Print encodes a Print message with a trailing newline.
func Print(level byte, text string) []byte {
	out := []byte{msgPrint, level}
	out = append(out, text...)
	return append(out, '\n', 0)
}

// UpdateFrags encodes an UpdateFrags message.
func UpdateFrags(slot byte, frags int16) []byte {
	out := []byte{msgUpdateFrags, slot, 0, 0}
	binary.LittleEndian.PutUint16(out[2:], uint16(frags))
	return out
}

// UpdatePing encodes an UpdatePing message followed by its UpdatePl record.
func UpdatePing(slot byte, ping uint16) []byte {
	out := []byte{msgUpdatePing, slot, 0, 0, msgUpdatePl, slot, 0}
	binary.LittleEndian.PutUint16(out[2:], ping)
	return out
}

// Stufftext encodes a Stufftext message.
func Stufftext(text string) []byte {
	out := []byte{msgStufftext}
	out = append(out, text...)
	return append(out, 0)
}

// Userinfo encodes an UpdateUserinfo message for slot.
func Userinfo(slot byte, info string) []byte {
	out := []byte{msgUserinfo, slot, 0, 0, 0, 0}
	out = append(out, info...)
	return append(out, 0)
}

// Serverinfo encodes the stufftext carrying the full serverinfo string.
func Serverinfo(info string) []byte {
	return Stufftext(`fullserverinfo "` + info + "\"\n")
}

// Spawn encodes the spawn command that precedes the client userinfo strings.
func Spawn() []byte {
	return Stufftext("\tcmd spawn 1 0\n")
}

// Block encodes a hidden block header followed by body.
func Block(kind, number uint16, body []byte) []byte {
	out := make([]byte, 8, 8+len(body))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(body)+2))
	binary.LittleEndian.PutUint16(out[4:], kind)
	binary.LittleEndian.PutUint16(out[6:], number)
	return append(out, body...)
}

// EndOfDemo encodes the disconnect message servers write as the last frame.
func EndOfDemo() []byte {
	out := []byte{msgDisconnect}
	out = append(out, "EndOfDemo"...)
	return append(out, 0)
}

// Pad returns n filler bytes that never contain a recognised needle.
func Pad(n int) []byte {
	return bytes.Repeat([]byte{0x01}, n)
}
