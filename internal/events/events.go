package events

import (
	"encoding/json"
	"time"
)

// Event types published on the hub.
const (
	JobUpserted  = "job_upserted"
	JobDeleted   = "job_deleted"
	JobsImported = "jobs_imported"
	ConfigSaved  = "config_saved"
)

// Version of the event envelope.
const Version = 1

// Event is the envelope sent to SSE clients. Seq is assigned by the hub and
// doubles as the SSE id.
type Event struct {
	Seq       uint64          `json:"seq"`
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// New builds an envelope around data, which must marshal to JSON.
func New(reqID, typ string, data any) (Event, error) {
	e := Event{Type: typ, Version: Version, At: time.Now().UTC(), RequestID: reqID}
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return Event{}, err
		}
		e.Data = b
	}
	return e, nil
}

func (e Event) JSON() []byte {
	b, _ := json.Marshal(e) // every field marshals
	return b
}
