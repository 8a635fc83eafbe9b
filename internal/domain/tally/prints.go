package tally

import (
	"bytes"

	"github.com/okian/mvdstats/internal/mvd/frame"
	"github.com/okian/mvdstats/internal/mvd/message"
)

// PrintAt is a Print message with the offset of the frame carrying it.
type PrintAt struct {
	Offset int
	message.Print
}

// Prints returns every decodable Print message of a demo in stream order.
// A print repeating the previous one without game time passing in between
// is a copy sent to another target and is dropped.
func Prints(data []byte) []PrintAt {
	var out []PrintAt
	c := frame.NewCursor(data, 0)
	for c.Next() {
		f := c.Frame()
		if f.BodySize == 0 {
			continue
		}
		first := true
		rd := message.NewReader(c.Body())
		for {
			m, ok, err := rd.Next()
			if err != nil || !ok {
				break
			}
			p, isPrint := m.(message.Print)
			if !isPrint {
				continue
			}
			if first && f.Duration == 0 && len(out) > 0 && samePrint(out[len(out)-1].Print, p) {
				first = false
				continue
			}
			first = false
			out = append(out, PrintAt{Offset: f.Offset, Print: p})
		}
	}
	return out
}

func samePrint(a, b message.Print) bool {
	return a.ID == b.ID && bytes.Equal(a.Content, b.Content)
}
