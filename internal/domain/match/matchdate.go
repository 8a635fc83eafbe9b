package match

import "bytes"

// Raw matchdates look like "2024-04-26 16:59:29 CEST": a date, a time and a
// timezone abbreviation or offset of two to five characters.
const (
	minMatchdateLen = len("yyyy-mm-dd hh:mm:ss ab")
	maxMatchdateLen = len("yyyy-mm-dd hh:mm:ss abcde")
)

// Matchdate returns the raw text of the matchdate print announced when the
// match starts. The timezone is left as written by the server.
func Matchdate(data []byte) (string, error) {
	i := bytes.Index(data, matchdateNeedle)
	if i < 0 {
		return "", ErrMatchdateNotFound
	}
	rest := data[i+len(matchdateNeedle):]
	n := bytes.IndexByte(rest, '\n')
	if n < 0 {
		return "", ErrInvalidMatchdate
	}
	raw := string(rest[:n])
	if !validMatchdate(raw) {
		return "", ErrInvalidMatchdate
	}
	return raw, nil
}

func validMatchdate(s string) bool {
	return len(s) >= minMatchdateLen && len(s) <= maxMatchdateLen
}
