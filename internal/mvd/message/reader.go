package message

import "bytes"

// Reader reads messages sequentially from one frame body.
type Reader struct {
	b   []byte
	pos int
}

// NewReader returns a Reader over body.
func NewReader(body []byte) *Reader {
	return &Reader{b: body}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int { return len(r.b) - r.pos }

// Offset returns the number of bytes consumed.
func (r *Reader) Offset() int { return r.pos }

// PeekType returns the type of the next message without consuming its tag.
func (r *Reader) PeekType() (Type, bool) {
	if r.Len() < 1 {
		return TypeUnknown, false
	}
	return TypeOf(r.b[r.pos]), true
}

// ReadType consumes one tag byte.
func (r *Reader) ReadType() (Type, error) {
	t, ok := r.PeekType()
	if !ok {
		return TypeUnknown, ErrInsufficientLength
	}
	r.pos++
	return t, nil
}

// ReadPrint reads a Print payload: id byte then a null-terminated string.
// The tag must already be consumed.
func (r *Reader) ReadPrint() (Print, error) {
	rest := r.b[r.pos:]
	if len(rest) < 2 {
		return Print{}, ErrInsufficientLength
	}
	end := bytes.IndexByte(rest[1:], 0)
	if end < 0 {
		return Print{}, ErrMissingTerminator
	}
	p := Print{ID: PrintIDOf(rest[0]), Content: printContent(rest[1 : 1+end])}
	r.pos += end + 2
	return p, nil
}

// ReadUpdateFrags reads an UpdateFrags payload. The tag must already be consumed.
func (r *Reader) ReadUpdateFrags() (UpdateFrags, error) {
	u, err := DecodeUpdateFrags(r.b[r.pos:])
	if err != nil {
		return UpdateFrags{}, err
	}
	r.pos += updateFragSize
	return u, nil
}

// ReadUpdatePing reads an UpdatePing payload and skips the UpdatePl record
// the server writes right after it. The tag must already be consumed.
func (r *Reader) ReadUpdatePing() (UpdatePing, error) {
	u, err := DecodeUpdatePing(r.b[r.pos:])
	if err != nil {
		return UpdatePing{}, err
	}
	r.pos += updatePingSize
	if t, ok := r.PeekType(); ok && t == TypeUpdatePl && r.Len() >= 1+updatePlSize {
		r.pos += 1 + updatePlSize
	}
	return u, nil
}

// Next reads the next payload-decoded message. It returns ok=false without
// an error when the body is exhausted or the next tag is not one this
// package decodes; the reader is left positioned at that tag.
func (r *Reader) Next() (Message, bool, error) {
	for {
		t, ok := r.PeekType()
		if !ok {
			return nil, false, nil
		}
		switch t {
		case TypePrint:
			r.pos++
			p, err := r.ReadPrint()
			if err != nil {
				return nil, false, err
			}
			return p, true, nil
		case TypeUpdateFrags:
			r.pos++
			u, err := r.ReadUpdateFrags()
			if err != nil {
				return nil, false, err
			}
			return u, true, nil
		case TypeUpdatePing:
			r.pos++
			u, err := r.ReadUpdatePing()
			if err != nil {
				return nil, false, err
			}
			return u, true, nil
		case TypeUpdatePl:
			if r.Len() < 1+updatePlSize {
				return nil, false, ErrInsufficientLength
			}
			r.pos += 1 + updatePlSize
		default:
			return nil, false, nil
		}
	}
}

// Messages decodes the leading run of decodable messages in body. On a
// malformed record it returns the messages decoded so far with the error.
func Messages(body []byte) ([]Message, error) {
	r := NewReader(body)
	var out []Message
	for {
		m, ok, err := r.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, m)
	}
}
