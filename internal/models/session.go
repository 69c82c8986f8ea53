package models

import "github.com/google/uuid"

// Phase tracks where a discussion session is in its lifecycle.
type Phase string

const (
	PhaseAwaitingInput Phase = "awaiting_input"
	PhaseInProgress    Phase = "in_progress"
	PhaseComplete      Phase = "complete"
)

// ChatMessage is the transcript view of a persisted Message, used by the
// discussion core and the frontend.
type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Team      string `json:"team,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Session is the full per-browser-session discussion state. It is a value
// object: every operation takes a Session and returns the updated one, so
// there is no hidden ambient state. The round-robin cursor is never stored
// here; it is always derived from Messages.
type Session struct {
	SessionID           string        `json:"sessionId"`
	ConversationID      uint          `json:"conversationId"`
	Title               string        `json:"title"`
	Teams               []string      `json:"teams"`
	Rounds              int           `json:"rounds"`
	Style               string        `json:"style"`
	Provider            string        `json:"provider"`
	ModelName           string        `json:"modelName"`
	UploadedFileName    string        `json:"uploadedFileName,omitempty"`
	UploadedFileContent string        `json:"uploadedFileContent,omitempty"`
	Messages            []ChatMessage `json:"messages"`
	Phase               Phase         `json:"phase"`
}

// NewSession creates an empty session with a fresh identifier.
func NewSession() Session {
	return Session{
		SessionID: uuid.NewString(),
		Phase:     PhaseAwaitingInput,
	}
}
