package discussion

import (
	"fmt"
	"testing"

	"roundtable/internal/models"
)

func transcript(teams []string, turns int) []models.ChatMessage {
	messages := []models.ChatMessage{{Role: models.RoleUser, Content: "Topic: test\n\nGoals: test"}}
	for i := 0; i < turns; i++ {
		messages = append(messages, models.ChatMessage{
			Role:    models.RoleAssistant,
			Content: fmt.Sprintf("turn %d", i),
			Team:    teams[i%len(teams)],
		})
	}
	return messages
}

func TestNextTeamRoundRobin(t *testing.T) {
	teams := []string{TeamFrontendDev, TeamBackendDev, TeamSecuritySpecialist}
	for count := 0; count < 9; count++ {
		team, err := NextTeam(teams, count)
		if err != nil {
			t.Fatalf("NextTeam(%d): %v", count, err)
		}
		if want := teams[count%3]; team != want {
			t.Fatalf("NextTeam(%d) = %q, want %q", count, team, want)
		}
	}
}

func TestNextTeamEmpty(t *testing.T) {
	if _, err := NextTeam(nil, 0); err == nil {
		t.Fatal("expected error for empty team list")
	}
}

// Every combination of team count and rounds must dole out exactly
// rounds contributions per team, in rotation order.
func TestRotationCoversAllSetups(t *testing.T) {
	catalog := Catalog()
	for teamCount := 1; teamCount <= MaxTeams; teamCount++ {
		for rounds := MinRounds; rounds <= MaxRounds; rounds++ {
			teams := catalog[:teamCount]
			perTeam := make(map[string]int, teamCount)
			limit := TurnLimit(rounds, teamCount)
			if limit != rounds*teamCount {
				t.Fatalf("TurnLimit(%d, %d) = %d", rounds, teamCount, limit)
			}
			for count := 0; count < limit; count++ {
				if Done(count, rounds, teamCount) {
					t.Fatalf("Done(%d) true before limit %d", count, limit)
				}
				team, err := NextTeam(teams, count)
				if err != nil {
					t.Fatalf("NextTeam: %v", err)
				}
				perTeam[team]++
			}
			if !Done(limit, rounds, teamCount) {
				t.Fatalf("Done(%d) false at limit", limit)
			}
			for _, team := range teams {
				if perTeam[team] != rounds {
					t.Fatalf("%d teams / %d rounds: %s spoke %d times, want %d",
						teamCount, rounds, team, perTeam[team], rounds)
				}
			}
		}
	}
}

func TestAssistantCountIgnoresUserMessages(t *testing.T) {
	teams := []string{TeamFrontendDev, TeamBackendDev}
	messages := transcript(teams, 3)
	if got := AssistantCount(messages); got != 3 {
		t.Fatalf("AssistantCount = %d, want 3", got)
	}
}

func TestBuildHistoryDropsAttribution(t *testing.T) {
	teams := []string{TeamFrontendDev, TeamBackendDev}
	messages := transcript(teams, 2)
	history := BuildHistory(messages)
	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}
	if history[0].Role != "user" {
		t.Fatalf("first history role = %q, want user", history[0].Role)
	}
	if history[0].Content != messages[0].Content {
		t.Fatalf("project description not replayed verbatim")
	}
	for i, m := range history[1:] {
		if m.Role != "assistant" {
			t.Fatalf("history[%d] role = %q, want assistant", i+1, m.Role)
		}
		// Team names must not leak into the replayed content.
		if m.Content != messages[i+1].Content {
			t.Fatalf("history[%d] content altered: %q", i+1, m.Content)
		}
	}
}

func TestBuildHistoryEmptyTranscript(t *testing.T) {
	if got := BuildHistory(nil); len(got) != 0 {
		t.Fatalf("expected empty history, got %d messages", len(got))
	}
}

func TestValidateSetup(t *testing.T) {
	catalog := Catalog()
	if err := ValidateSetup(catalog, 5); err != nil {
		t.Fatalf("full catalog should validate: %v", err)
	}
	if err := ValidateSetup(nil, 1); err == nil {
		t.Fatal("empty team list should fail")
	}
	if err := ValidateSetup([]string{TeamBackendDev, TeamBackendDev}, 1); err == nil {
		t.Fatal("duplicate teams should fail")
	}
	if err := ValidateSetup(catalog[:2], 0); err == nil {
		t.Fatal("zero rounds should fail")
	}
	if err := ValidateSetup(catalog[:2], MaxRounds+1); err == nil {
		t.Fatal("rounds above limit should fail")
	}
}
