package match

import (
	"bytes"
	"strconv"
	"time"

	"github.com/okian/mvdstats/internal/mvd/block"
	"github.com/okian/mvdstats/internal/mvd/frame"
)

const modeHoony = "hoonymode"

var (
	matchOverNeedle = []byte("The match is over")
	standbyNeedle   = []byte("4status\x00Standby\x00") // serverinfo status set to Standby
	matchdateNeedle = []byte("\x08\x02matchdate: ")
	durationKey     = []byte(`"duration": `)
)

// elapsed sums the durations of the frames that start before target. It also
// returns the number of frames visited.
func elapsed(data []byte, target int) (time.Duration, int) {
	var ms int
	c := frame.NewCursor(data, 0)
	for c.Next() {
		f := c.Frame()
		if f.Offset >= target {
			break
		}
		ms += int(f.Duration)
	}
	return time.Duration(ms) * time.Millisecond, c.Count()
}

// DemoDuration returns the recorded time up to the end of the match: the
// last "The match is over" print, else the last switch to standby, else the
// end of the demo.
func DemoDuration(data []byte) time.Duration {
	d, _ := elapsed(data, demoEnd(data))
	return d
}

func demoEnd(data []byte) int {
	if i := bytes.LastIndex(data, matchOverNeedle); i >= 0 {
		return i
	}
	if i := bytes.LastIndex(data, standbyNeedle); i >= 0 {
		return i
	}
	return len(data)
}

// CountdownDuration returns the recorded time before the match started.
// Hoonymode matches have no countdown.
func CountdownDuration(data []byte) (time.Duration, error) {
	if si, err := Serverinfo(data); err == nil && si.Mode == modeHoony {
		return 0, nil
	}
	return countdown(data)
}

func countdown(data []byte) (time.Duration, error) {
	i := bytes.Index(data, matchdateNeedle)
	if i < 0 {
		return 0, ErrCountdownNotFound
	}
	d, _ := elapsed(data, i)
	return d, nil
}

// MatchDuration returns the played time. Outside hoonymode the ktxstats
// duration is preferred; otherwise it is the demo duration minus the
// countdown. A missing countdown counts as zero.
func MatchDuration(data []byte) time.Duration {
	si, err := Serverinfo(data)
	hoony := err == nil && si.Mode == modeHoony
	if !hoony {
		if d, ok := ktxDuration(data); ok {
			return d
		}
	}
	demo := DemoDuration(data)
	if hoony {
		return demo
	}
	cd, _ := countdown(data)
	return max(demo-cd, 0)
}

// ktxDuration reads the duration straight from the ktxstats text so a
// document that fails to decode still yields it.
func ktxDuration(data []byte) (time.Duration, bool) {
	doc, err := block.Ktxstats(data)
	if err != nil {
		return 0, false
	}
	b := []byte(doc)
	from := bytes.Index(b, durationKey)
	if from < 0 {
		return 0, false
	}
	from += len(durationKey)
	n := bytes.IndexByte(b[from:], ',')
	if n < 0 {
		return 0, false
	}
	secs, err := strconv.ParseFloat(string(bytes.TrimSpace(b[from:from+n])), 64)
	if err != nil || secs < 0 {
		return 0, false
	}
	return seconds(secs), true
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
