package message

import (
	"bytes"
	"encoding/binary"
)

// Message is a payload-decoded protocol message.
type Message interface {
	Type() Type
}

// Print is a server console text message. Content excludes the id byte, the
// terminating null and a trailing newline.
type Print struct {
	ID      PrintID
	Content []byte
}

// Type implements Message.
func (Print) Type() Type { return TypePrint }

// UpdateFrags carries the frag count of a player slot.
type UpdateFrags struct {
	Slot  uint8
	Frags int16
}

// Type implements Message.
func (UpdateFrags) Type() Type { return TypeUpdateFrags }

// UpdatePing carries the ping of a player slot in milliseconds.
type UpdatePing struct {
	Slot uint8
	Ping uint16
}

// Type implements Message.
func (UpdatePing) Type() Type { return TypeUpdatePing }

const (
	minPrintSize   = 3 // id + at least one byte + null
	updateFragSize = 3
	updatePingSize = 3
	updatePlSize   = 2 // slot + packet loss, after the tag
)

// DecodePrint decodes a Print payload starting at its id byte.
func DecodePrint(b []byte) (Print, error) {
	if len(b) < minPrintSize {
		return Print{}, ErrInsufficientLength
	}
	end := bytes.IndexByte(b, 0)
	if end < 0 {
		return Print{}, ErrMissingTerminator
	}
	return Print{ID: PrintIDOf(b[0]), Content: printContent(b[1:end])}, nil
}

func printContent(raw []byte) []byte {
	raw = bytes.TrimSuffix(raw, []byte{'\n'})
	if len(raw) == 0 {
		return []byte{}
	}
	return raw
}

// DecodeUpdateFrags decodes an UpdateFrags payload starting at its slot byte.
func DecodeUpdateFrags(b []byte) (UpdateFrags, error) {
	if len(b) < updateFragSize {
		return UpdateFrags{}, ErrInsufficientLength
	}
	return UpdateFrags{Slot: b[0], Frags: int16(binary.LittleEndian.Uint16(b[1:]))}, nil
}

// DecodeUpdatePing decodes an UpdatePing payload starting at its slot byte.
func DecodeUpdatePing(b []byte) (UpdatePing, error) {
	if len(b) < updatePingSize {
		return UpdatePing{}, ErrInsufficientLength
	}
	return UpdatePing{Slot: b[0], Ping: binary.LittleEndian.Uint16(b[1:])}, nil
}
