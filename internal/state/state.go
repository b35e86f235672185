package state

import (
	"encoding/json"
	"fmt"
	"time"

	"paydesk/internal/payroll"
)

// Snapshot is one saved payroll session.
//
// Selection holds indices into Employees for a partial dispatch; empty
// means "everyone".
type Snapshot struct {
	SavedAt   time.Time         `json:"savedAt"`
	Period    payroll.Period    `json:"period"`
	Employees []*payroll.Record `json:"employees"`
	Selection []int             `json:"selection,omitempty"`
}

// Encode serializes a snapshot for storage. Backends store this opaque
// payload; schema evolution happens here, not in SQL.
func Encode(s *Snapshot) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("state: encode snapshot: %w", err)
	}
	return b, nil
}

// Decode deserializes a stored payload.
func Decode(b []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("state: decode snapshot: %w", err)
	}
	return &s, nil
}
