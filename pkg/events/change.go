package events

import (
	"time"

	"github.com/google/uuid"
)

// Change kinds published whenever session rows mutate. The subscription
// worker dispatches on the kind with a single switch; subscribers never need
// to sniff payload content to detect what changed.
const (
	ChangeSessionUpdated  = "SESSION_UPDATED"
	ChangeMessageAppended = "MESSAGE_APPENDED"
	ChangeAiResultUpdated = "AI_RESULT_UPDATED"
)

// NewChange builds the change event published after a successful mutation
// against a session's rows.
func NewChange(kind string, sessionID uuid.UUID) BaseEvent {
	return BaseEvent{
		Type: kind,
		Data: map[string]interface{}{
			"session_id": sessionID.String(),
		},
		OccurredAt: time.Now(),
	}
}

// SessionIDOf extracts the session id from a change event payload.
func SessionIDOf(e Event) (uuid.UUID, bool) {
	raw, ok := e.Payload()["session_id"].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
