package models

import (
	"encoding/json"
	"time"
)

// Conversation lifecycle states.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation is one discussion session, keyed by a browser session id.
// Core logic never deletes conversations; cascade cleanup is left to the
// storage layer.
type Conversation struct {
	ID                  uint   `gorm:"primaryKey" json:"id"`
	SessionID           string `gorm:"size:255;not null;uniqueIndex" json:"sessionId"`
	Title               string `gorm:"size:500" json:"title"`
	TeamsJSON           string `gorm:"type:text" json:"-"`
	Rounds              int    `gorm:"not null;default:1" json:"rounds"`
	Style               string `gorm:"size:50" json:"style"`
	Provider            string `gorm:"size:50" json:"provider"`
	ModelName           string `gorm:"size:255" json:"modelName"`
	UploadedFileName    string `gorm:"size:500" json:"uploadedFileName"`
	UploadedFileContent string `gorm:"type:text" json:"-"`
	Status              string `gorm:"size:20;not null;default:active" json:"status"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Teams decodes the stored team list. A malformed or empty column yields nil.
func (c *Conversation) Teams() []string {
	if c.TeamsJSON == "" {
		return nil
	}
	var teams []string
	if err := json.Unmarshal([]byte(c.TeamsJSON), &teams); err != nil {
		return nil
	}
	return teams
}

// SetTeams encodes the selected team list into the stored column.
func (c *Conversation) SetTeams(teams []string) error {
	data, err := json.Marshal(teams)
	if err != nil {
		return err
	}
	c.TeamsJSON = string(data)
	return nil
}

// Message belongs to exactly one conversation. Team is set iff the role is
// assistant; message 0 of every conversation is the user's project
// description and carries no team.
type Message struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	ConversationID uint   `gorm:"not null;index:idx_message_conversation" json:"conversationId"`
	Role           string `gorm:"size:20;not null" json:"role"`
	Content        string `gorm:"type:text;not null" json:"content"`
	Team           string `gorm:"size:100" json:"team,omitempty"`
	CreatedAt      time.Time
}

// GeneratedFile is a rendered documentation artifact. Appended once a
// discussion completes, never mutated.
type GeneratedFile struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	ConversationID uint   `gorm:"not null;index:idx_file_conversation" json:"conversationId"`
	Kind           string `gorm:"size:30;not null" json:"kind"`
	Name           string `gorm:"size:500;not null" json:"name"`
	Content        string `gorm:"type:text;not null" json:"content"`
	CreatedAt      time.Time
}

// ConversationBundle is everything loaded for one session id: the
// conversation row, its messages in chronological order and its generated
// files newest first.
type ConversationBundle struct {
	Conversation Conversation    `json:"conversation"`
	Messages     []Message       `json:"messages"`
	Files        []GeneratedFile `json:"files"`
}
