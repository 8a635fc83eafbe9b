package tally

import (
	"github.com/okian/mvdstats/internal/mvd/frame"
	"github.com/okian/mvdstats/internal/mvd/message"
)

// Pings samples the ping updates at the start of a demo and returns the mean
// ping per player slot, truncated toward zero. Sampling stops once the
// configured number of frames have each contributed at least one sample.
func Pings(data []byte, opts ...Option) map[uint8]int {
	o := newOptions(opts)
	samples := make(map[uint8][]int)

	contributing := 0
	c := frame.NewCursor(data, 0)
	for contributing < o.pingFrames && c.Next() {
		if c.Frame().BodySize == 0 {
			continue
		}
		found := false
		rd := message.NewReader(c.Body())
		for {
			m, ok, err := rd.Next()
			if err != nil || !ok {
				break
			}
			if u, isPing := m.(message.UpdatePing); isPing {
				samples[u.Slot] = append(samples[u.Slot], int(u.Ping))
				found = true
			}
		}
		if found {
			contributing++
		}
	}

	out := make(map[uint8]int, len(samples))
	for slot, s := range samples {
		sum := 0
		for _, v := range s {
			sum += v
		}
		out[slot] = sum / len(s)
	}
	return out
}
