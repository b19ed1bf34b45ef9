package queue

import (
	"context"
	"encoding/json"
	"time"
)

// Version of the batch event payload. Bump when fields change meaning.
const Version = 1

// BatchSubmitted announces an accepted analyzeBatch job so consumers can
// poll for completion and trigger an export.
type BatchSubmitted struct {
	RunID             string    `json:"runId"`
	ResultID          string    `json:"resultId"`
	OperationLocation string    `json:"operationLocation"`
	Prefix            string    `json:"prefix"`
	ResultContainer   string    `json:"resultContainer"`
	SubmittedAt       time.Time `json:"submittedAt"`
	Version           int       `json:"version"`
}

// Publisher delivers batch events to a queue backend.
type Publisher interface {
	Publish(ctx context.Context, evt BatchSubmitted) error
}

// Encode returns the wire form of an event, stamping the current version.
func Encode(evt BatchSubmitted) ([]byte, error) {
	if evt.Version == 0 {
		evt.Version = Version
	}
	return json.Marshal(evt)
}

// Nop drops every event. Used when no queue is configured.
type Nop struct{}

func (Nop) Publish(context.Context, BatchSubmitted) error { return nil }
