package events

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInfo    EventType = "info"
	EventWarn    EventType = "warn"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

const (
	DiscussionTurn  = "events:discussion:turn"
	DiscussionDone  = "events:discussion:done"
	DocsGenerated   = "events:docs:generated"
	AnalysisStarted = "events:analysis:started"
)

// DiscussionEvent is a simple struct representing a backend event payload
type DiscussionEvent struct {
	ID         string            `json:"id"`
	Type       EventType         `json:"type"`
	Message    string            `json:"message"`
	Timestamp  time.Time         `json:"timestamp"`
	SessionKey string            `json:"sessionKey,omitempty"`
	Team       string            `json:"team,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

type contextKey string

const sessionContextKey contextKey = "roundtable/events/session"

// WithSession returns a derived context annotated with the given session key
// so event emitters can automatically scope payloads.
func WithSession(ctx context.Context, sessionKey string) context.Context {
	if strings.TrimSpace(sessionKey) == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionContextKey, sessionKey)
}

// SessionFromContext extracts the session key associated with ctx.
func SessionFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(sessionContextKey).(string); ok {
		return v
	}
	return ""
}

func CreateDiscussionEvent(eventType EventType, message string) DiscussionEvent {
	return DiscussionEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewInfo creates an info DiscussionEvent.
func NewInfo(message string) DiscussionEvent {
	return CreateDiscussionEvent(EventInfo, message)
}

// NewWarn creates a warn DiscussionEvent.
func NewWarn(message string) DiscussionEvent {
	return CreateDiscussionEvent(EventWarn, message)
}

// NewError creates an error DiscussionEvent.
func NewError(message string) DiscussionEvent {
	return CreateDiscussionEvent(EventError, message)
}

// NewSuccess creates a success DiscussionEvent.
func NewSuccess(message string) DiscussionEvent {
	return CreateDiscussionEvent(EventSuccess, message)
}

// NewTurn creates a success DiscussionEvent carrying the team that spoke.
func NewTurn(team, message string) DiscussionEvent {
	evt := CreateDiscussionEvent(EventSuccess, message)
	evt.Team = team
	return evt
}
