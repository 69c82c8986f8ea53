package discussion

import (
	"fmt"
	"strings"
)

// The fixed specialist catalog, in selection-list order. Up to MaxTeams of
// these can participate in one discussion.
const (
	TeamFrontendDev        = "Frontend Dev"
	TeamBackendDev         = "Backend Dev"
	TeamDatabaseExpert     = "Database Expert"
	TeamSecuritySpecialist = "Security Specialist"
	TeamAIEngineer         = "AI Engineer"
	TeamProjectManager     = "Project Manager"
	TeamDevOpsEngineer     = "DevOps Engineer"
)

const (
	MaxTeams  = 7
	MinRounds = 1
	MaxRounds = 10
)

// Discussion styles. Each appends one fixed directive sentence to every
// team's system prompt; an unrecognized style appends nothing.
const (
	StyleCollaborative      = "Collaborative"
	StyleDebate             = "Debate"
	StyleTechnicalReview    = "Technical Review"
	StyleCreativeBrainstorm = "Creative Brainstorm"
)

var teamPromptFiles = map[string]string{
	TeamFrontendDev:        "prompts/frontend_dev.txt",
	TeamBackendDev:         "prompts/backend_dev.txt",
	TeamDatabaseExpert:     "prompts/database_expert.txt",
	TeamSecuritySpecialist: "prompts/security_specialist.txt",
	TeamAIEngineer:         "prompts/ai_engineer.txt",
	TeamProjectManager:     "prompts/project_manager.txt",
	TeamDevOpsEngineer:     "prompts/devops_engineer.txt",
}

var styleSuffixes = map[string]string{
	StyleCollaborative:      "Approach this collaboratively, building on previous suggestions and finding common ground between different perspectives.",
	StyleDebate:             "Approach this as a constructive debate, presenting well-reasoned arguments and considering alternative viewpoints.",
	StyleTechnicalReview:    "Conduct a thorough technical review, focusing on best practices, potential issues, and optimization opportunities.",
	StyleCreativeBrainstorm: "Brainstorm creative and innovative solutions, thinking outside the box while maintaining technical feasibility.",
}

// teamTemplate is one parsed role template: a body with placeholders for the
// team name and a context paragraph, plus the two context variants.
type teamTemplate struct {
	body          string
	uploadContext string
	manualContext string
}

var teamTemplates = map[string]teamTemplate{}

func init() {
	for team, path := range teamPromptFiles {
		data, err := embeddedPrompts.ReadFile(path)
		if err != nil {
			panic(fmt.Sprintf("discussion: missing embedded prompt %s: %v", path, err))
		}
		tmpl, err := parseTeamTemplate(string(data))
		if err != nil {
			panic(fmt.Sprintf("discussion: malformed prompt %s: %v", path, err))
		}
		teamTemplates[team] = tmpl
	}
}

// parseTeamTemplate splits a prompt file into body, upload-variant and
// manual-variant sections separated by lines containing only "---".
func parseTeamTemplate(raw string) (teamTemplate, error) {
	parts := strings.Split(raw, "\n---\n")
	if len(parts) != 3 {
		return teamTemplate{}, fmt.Errorf("expected 3 sections, got %d", len(parts))
	}
	return teamTemplate{
		body:          strings.TrimSpace(parts[0]),
		uploadContext: strings.TrimSpace(parts[1]),
		manualContext: strings.TrimSpace(parts[2]),
	}, nil
}

// Catalog returns the full team list in its fixed presentation order.
func Catalog() []string {
	return []string{
		TeamFrontendDev,
		TeamBackendDev,
		TeamDatabaseExpert,
		TeamSecuritySpecialist,
		TeamAIEngineer,
		TeamProjectManager,
		TeamDevOpsEngineer,
	}
}

// Styles returns the selectable discussion styles.
func Styles() []string {
	return []string{StyleCollaborative, StyleDebate, StyleTechnicalReview, StyleCreativeBrainstorm}
}

// KnownTeam reports whether name is part of the fixed catalog.
func KnownTeam(name string) bool {
	_, ok := teamPromptFiles[name]
	return ok
}

// RolePrompt renders the role template for a team. hasUpload selects the
// wording variant that refers to the uploaded document. Teams outside the
// catalog get a generic expert prompt rather than an error.
func RolePrompt(team string, hasUpload bool) string {
	tmpl, ok := teamTemplates[team]
	if !ok {
		return fmt.Sprintf("You are %s, an expert in your field. Provide valuable insights for this project.", team)
	}
	ctx := tmpl.manualContext
	if hasUpload {
		ctx = tmpl.uploadContext
	}
	return fmt.Sprintf(tmpl.body, team, ctx)
}

// ComposeSystemPrompt builds the full system prompt for one turn: the team's
// role template plus the style directive, if the style is recognized.
func ComposeSystemPrompt(team string, hasUpload bool, style string) string {
	prompt := RolePrompt(team, hasUpload)
	if suffix, ok := styleSuffixes[style]; ok {
		prompt += "\n\n" + suffix
	}
	return prompt
}
