package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Audit actions. One entry is written per employee lifecycle event.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// AuditEntry is one immutable audit log row. Rows are only ever inserted;
// application code never updates or deletes them. RecordID is nulled (not
// cascaded) when the referenced employee row is removed, so history outlives
// the record.
type AuditEntry struct {
	ID         uuid.UUID       `json:"id"`
	RecordID   *int            `json:"record_id"`
	Action     string          `json:"action"`
	ActorID    int             `json:"actor_id"`
	ActorEmail string          `json:"actor_email"`
	ActorName  string          `json:"actor_name"`
	OldData    json.RawMessage `json:"old_data,omitempty"`
	NewData    json.RawMessage `json:"new_data,omitempty"`
	Changes    json.RawMessage `json:"changes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
