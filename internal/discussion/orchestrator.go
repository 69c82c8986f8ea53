// Package discussion holds the pure round-robin core: who speaks next, what
// context they see, and when the discussion is over. Nothing here touches the
// network or the database.
package discussion

import (
	"fmt"

	"github.com/cloudwego/eino/schema"

	"roundtable/internal/models"
)

// AssistantCount returns the number of assistant turns taken so far. The
// round-robin cursor is always derived from this, never stored separately.
func AssistantCount(messages []models.ChatMessage) int {
	n := 0
	for _, m := range messages {
		if m.Role == models.RoleAssistant {
			n++
		}
	}
	return n
}

// TurnLimit is the total number of assistant turns a discussion produces.
func TurnLimit(rounds, teamCount int) int {
	return rounds * teamCount
}

// Done reports whether the discussion has produced all of its turns.
func Done(assistantCount, rounds, teamCount int) bool {
	return assistantCount >= TurnLimit(rounds, teamCount)
}

// NextTeam picks the speaker for the next assistant turn: a strict modular
// cycle through the team list in selection order. No randomness, no
// priority, no skipping.
func NextTeam(teams []string, assistantCount int) (string, error) {
	if len(teams) == 0 {
		return "", fmt.Errorf("no teams selected")
	}
	return teams[assistantCount%len(teams)], nil
}

// BuildHistory assembles the context window sent to the model: the original
// user message followed by every prior assistant message in chronological
// order. Team attribution is dropped; the model only sees content. The full
// history is replayed every turn, there is no sliding window.
func BuildHistory(messages []models.ChatMessage) []*schema.Message {
	if len(messages) == 0 {
		return nil
	}
	history := make([]*schema.Message, 0, len(messages))
	if messages[0].Role == models.RoleUser {
		history = append(history, schema.UserMessage(messages[0].Content))
	}
	for _, m := range messages[1:] {
		if m.Role == models.RoleAssistant {
			history = append(history, schema.AssistantMessage(m.Content, nil))
		}
	}
	return history
}

// ValidateSetup checks the start-of-discussion invariants: 1..MaxTeams
// unique teams and a round count within bounds.
func ValidateSetup(teams []string, rounds int) error {
	if len(teams) == 0 {
		return fmt.Errorf("at least one team must be selected")
	}
	if len(teams) > MaxTeams {
		return fmt.Errorf("at most %d teams may be selected", MaxTeams)
	}
	seen := make(map[string]bool, len(teams))
	for _, t := range teams {
		if seen[t] {
			return fmt.Errorf("team %q selected more than once", t)
		}
		seen[t] = true
	}
	if rounds < MinRounds || rounds > MaxRounds {
		return fmt.Errorf("rounds must be between %d and %d", MinRounds, MaxRounds)
	}
	return nil
}
