// Package block parses hidden message blocks and reassembles the document
// a server splits across a chain of them.
//
// Block header layout (little-endian):
//
//	u32  declared size (body size + 2)
//	u16  hidden message kind
//	u16  sequence number, counting down to 0 on the last block
package block

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/okian/mvdstats/internal/mvd/frame"
)

// HeaderSize is the size of a block header in bytes.
const HeaderSize = 8

// ChainHeaderSize is the distance from a chain frame to its block body.
const ChainHeaderSize = frame.MultiHeaderSize + HeaderSize

// KtxstatsMarker opens the ktxstats JSON document.
var KtxstatsMarker = []byte(`{"version": `)

// HiddenKind identifies the payload of a hidden block.
type HiddenKind uint16

const (
	KindAntilagPosition       HiddenKind = 0x0000
	KindUsercmd               HiddenKind = 0x0001
	KindUsercmdWeapons        HiddenKind = 0x0002
	KindDemoinfo              HiddenKind = 0x0003
	KindCommentaryTrack       HiddenKind = 0x0004
	KindCommentaryData        HiddenKind = 0x0005
	KindCommentaryTextSegment HiddenKind = 0x0006
	KindDmgdone               HiddenKind = 0x0007
	KindUsercmdWeaponsSs      HiddenKind = 0x0008
	KindUsercmdWeaponInstruct HiddenKind = 0x0009
	KindPausedDuration        HiddenKind = 0x000A
	KindExtended              HiddenKind = 0xFFFF
	KindUnknown               HiddenKind = 0xFFFE
)

// KindOf maps a raw kind value to a HiddenKind.
func KindOf(v uint16) HiddenKind {
	k := HiddenKind(v)
	if k <= KindPausedDuration || k == KindExtended {
		return k
	}
	return KindUnknown
}

// Header is a parsed block header.
type Header struct {
	Kind     HiddenKind
	Number   uint16
	BodySize int
}

// TotalSize returns the header size plus the body size.
func (h Header) TotalSize() int { return HeaderSize + h.BodySize }

// ParseHeader reads a block header from the start of b.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("block header: %d bytes: %w", len(b), ErrMalformed)
	}
	declared := binary.LittleEndian.Uint32(b[0:])
	if declared < 2 {
		return Header{}, fmt.Errorf("block header: declared size %d: %w", declared, ErrMalformed)
	}
	return Header{
		Kind:     KindOf(binary.LittleEndian.Uint16(b[4:])),
		Number:   binary.LittleEndian.Uint16(b[6:]),
		BodySize: int(declared - 2),
	}, nil
}

// Chain concatenates the bodies of consecutive Demoinfo blocks, starting with
// the chain frame at offset. It stops at the first block of another kind, at
// the block numbered 0, or at the first block that does not fit in data.
func Chain(data []byte, offset int) []byte {
	var content []byte
	for offset >= 0 && offset+ChainHeaderSize <= len(data) {
		h, err := ParseHeader(data[offset+frame.MultiHeaderSize:])
		if err != nil || h.Kind != KindDemoinfo {
			break
		}
		offset += ChainHeaderSize
		if offset+h.BodySize > len(data) {
			break
		}
		content = append(content, data[offset:offset+h.BodySize]...)
		if h.Number == 0 {
			break
		}
		offset += h.BodySize
	}
	return content
}

// Document locates the last occurrence of marker and reassembles the block
// chain that starts with it. It returns ErrAbsent when the marker is missing
// or the reassembled bytes are empty or not valid UTF-8.
func Document(data, marker []byte) (string, error) {
	idx := bytes.LastIndex(data, marker)
	if idx < 0 {
		return "", fmt.Errorf("marker %q: %w", marker, ErrAbsent)
	}
	content := Chain(data, idx-ChainHeaderSize)
	if len(content) == 0 {
		return "", fmt.Errorf("empty block chain: %w", ErrAbsent)
	}
	if !utf8.Valid(content) {
		return "", fmt.Errorf("block chain is not utf-8: %w", ErrAbsent)
	}
	return string(content), nil
}

// Ktxstats returns the ktxstats JSON document embedded in a demo.
func Ktxstats(data []byte) (string, error) {
	return Document(data, KtxstatsMarker)
}
