package domain

import "time"

// AuditLog is one activity-log row. Posting and unposting write these
// best-effort; a failed audit write never fails the posting itself.
type AuditLog struct {
	LogID     string    `json:"logID"` // Primary key (UUID)
	ActorID   string    `json:"actorID"`
	Action    string    `json:"action"` // e.g. "journal.post", "journal.unpost"
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entityID"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}
