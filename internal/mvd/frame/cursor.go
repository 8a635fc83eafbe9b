package frame

// Cursor walks consecutive frames of a buffer. Use it like bufio.Scanner:
//
//	c := frame.NewCursor(data, 0)
//	for c.Next() {
//		f := c.Frame()
//	}
//	if err := c.Err(); err != nil { ... }
type Cursor struct {
	data   []byte
	offset int
	frame  Frame
	err    error
	count  int
}

// NewCursor returns a cursor positioned at offset.
func NewCursor(data []byte, offset int) *Cursor {
	return &Cursor{data: data, offset: offset}
}

// Next parses the frame at the current offset and advances past it.
// It returns false at the end of the buffer or on the first malformed frame.
func (c *Cursor) Next() bool {
	if c.err != nil || c.offset >= len(c.data) {
		return false
	}
	f, err := Parse(c.data, c.offset)
	if err != nil {
		c.err = err
		return false
	}
	c.frame = f
	c.offset = f.End()
	c.count++
	return true
}

// Frame returns the frame produced by the last successful Next.
func (c *Cursor) Frame() Frame { return c.frame }

// Body returns the body of the current frame.
func (c *Cursor) Body() []byte { return c.frame.Body(c.data) }

// Offset returns the offset of the next frame to be parsed.
func (c *Cursor) Offset() int { return c.offset }

// Count returns the number of frames parsed so far.
func (c *Cursor) Count() int { return c.count }

// Err returns the error that stopped iteration, nil on a clean end of buffer.
func (c *Cursor) Err() error { return c.err }
