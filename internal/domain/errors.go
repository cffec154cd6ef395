package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("not found")

// MalformedRecordError reports a job record that fails validation.
type MalformedRecordError struct {
	ID       JobID    `json:"id,omitempty"`
	Problems []string `json:"problems"`
}

func (e *MalformedRecordError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

func (e *MalformedRecordError) Error() string {
	id := string(e.ID)
	if id == "" {
		id = "<no id>"
	}
	return fmt.Sprintf("malformed job record %s: %s", id, strings.Join(e.Problems, "; "))
}

// IsMalformed reports whether err wraps a *MalformedRecordError and returns it.
func IsMalformed(err error) (*MalformedRecordError, bool) {
	var me *MalformedRecordError
	if errors.As(err, &me) {
		return me, true
	}
	return nil, false
}
