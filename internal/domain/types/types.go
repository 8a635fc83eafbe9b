// Package types contains the response shapes shared by the service and the HTTP API.
package types

import (
	"time"

	"github.com/okian/mvdstats/internal/domain/model"
)

// Status is the processing state of an uploaded demo.
type Status string

const (
	StatusQueued Status = "queued"
	StatusDone   Status = "done"
	StatusFailed Status = "failed"
)

// Upload acknowledges a demo upload.
type Upload struct {
	ID        string `json:"id"`
	Status    Status `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// MatchResult reports the state of one uploaded demo and, once analysed,
// its match summary.
type MatchResult struct {
	ID       string       `json:"id"`
	Status   Status       `json:"status"`
	Error    string       `json:"error,omitempty"`
	Received time.Time    `json:"received"`
	Match    *model.Match `json:"match,omitempty"`
}

// Finished reports whether the demo has left the queue.
func (r MatchResult) Finished() bool {
	return r.Status == StatusDone || r.Status == StatusFailed
}
