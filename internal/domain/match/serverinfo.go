package match

import (
	"bytes"

	"github.com/okian/mvdstats/internal/mvd/infostring"
	"github.com/okian/mvdstats/internal/mvd/qtext"
)

// serverinfoWindow bounds the search for the serverinfo stufftext. Servers
// write it within the first few hundred bytes of a demo.
const serverinfoWindow = 256 + 1024

var serverinfoNeedle = []byte(`fullserverinfo "`)

// ServerinfoString returns the raw serverinfo string in its readable form.
func ServerinfoString(data []byte) (string, error) {
	window := data[:min(len(data), serverinfoWindow)]
	from := bytes.Index(window, serverinfoNeedle)
	if from < 0 {
		return "", ErrServerinfoNotFound
	}
	from += len(serverinfoNeedle)
	n := bytes.IndexByte(window[from:], '"')
	if n < 0 {
		return "", ErrServerinfoNotFound
	}
	return qtext.ASCII(window[from : from+n]), nil
}

// Serverinfo returns the decoded server settings.
func Serverinfo(data []byte) (infostring.Serverinfo, error) {
	s, err := ServerinfoString(data)
	if err != nil {
		return infostring.Serverinfo{}, err
	}
	return infostring.ParseServerinfo(s), nil
}

// Filename returns the demo file name the server recorded to.
func Filename(data []byte) (string, error) {
	si, err := Serverinfo(data)
	if err != nil {
		return "", err
	}
	if si.Serverdemo == "" {
		return "", ErrFilenameNotFound
	}
	return si.Serverdemo, nil
}
