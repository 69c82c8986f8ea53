// Package docgen renders the three documentation artifacts from a finished
// discussion transcript. Rendering is pure: same transcript and clock in,
// byte-identical markdown out. Callers persist the results.
package docgen

import (
	"embed"
	"fmt"
	"strings"
	"time"

	"roundtable/internal/models"
)

// Document kinds. These generalize the inconsistent markdown/cursor_guide
// tags the storage schema used historically.
const (
	KindSpecification  = "specification"
	KindIDEGuide       = "ide-guide"
	KindManagerSummary = "manager-summary"
)

//go:embed templates/*.md
var templates embed.FS

// Document is one rendered artifact, ready to persist or download.
type Document struct {
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

const timestampLayout = "2006-01-02 15:04:05"

var fileSuffixes = map[string]string{
	KindSpecification:  "_Specification.md",
	KindIDEGuide:       "_Cursor_Prompts.md",
	KindManagerSummary: "_Manager_Summary.md",
}

// Per-team technology guideline blocks for the IDE guide. Teams without an
// entry are silently omitted from that document.
var teamGuidelines = map[string]string{
	"Frontend Dev": `### Frontend Guidelines
- Prioritize user experience and accessibility
- Use semantic HTML and ARIA attributes
- Implement responsive design with mobile-first approach
- Optimize for Core Web Vitals metrics
- Use modern CSS features and animations judiciously`,

	"Backend Dev": `### Backend Guidelines
- Implement proper API versioning
- Use middleware for cross-cutting concerns
- Implement rate limiting and request validation
- Use connection pooling for database operations
- Implement proper logging and monitoring`,

	"Database Expert": `### Database Guidelines
- Design normalized database schemas
- Implement proper indexing strategies
- Use database transactions for data consistency
- Implement database connection pooling
- Regular database maintenance and optimization`,

	"Security Specialist": `### Security Guidelines
- Implement input validation and sanitization
- Use parameterized queries to prevent SQL injection
- Implement proper authentication and authorization
- Regular security audits and penetration testing
- Keep dependencies updated and monitor vulnerabilities`,

	"AI Engineer": `### AI/ML Guidelines
- Implement proper data preprocessing pipelines
- Use version control for ML models
- Implement model validation and testing
- Monitor model performance and drift
- Document model decisions and limitations`,

	"Project Manager": `### Project Management Guidelines
- Maintain clear project documentation
- Regular progress updates and status reports
- Risk assessment and mitigation planning
- Stakeholder communication and management
- Quality assurance and testing coordination`,
}

func boilerplate(name string) string {
	data, err := templates.ReadFile("templates/" + name)
	if err != nil {
		panic(fmt.Sprintf("docgen: missing embedded template %s: %v", name, err))
	}
	return strings.TrimRight(string(data), "\n")
}

// RenderAll produces the three artifacts for one transcript. now is the
// single timestamp that appears in the generation headers; tests inject a
// fixed clock to get deterministic output.
func RenderAll(title string, teams []string, messages []models.ChatMessage, now time.Time) []Document {
	return []Document{
		RenderSpecification(title, teams, messages, now),
		RenderIDEGuide(title, teams, messages, now),
		RenderManagerSummary(title, teams, messages, now),
	}
}

// RenderSpecification builds the project specification document.
func RenderSpecification(title string, teams []string, messages []models.ChatMessage, now time.Time) Document {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	b.WriteString("## Project Overview\n\n")
	fmt.Fprintf(&b, "**Generated on:** %s\n", now.Format(timestampLayout))
	fmt.Fprintf(&b, "**Teams Involved:** %s\n", strings.Join(teams, ", "))
	b.WriteString("**Status:** Active Development\n\n---\n\n")

	b.WriteString("## Project Goals & Requirements\n\n")
	if objectives := objectivesSection(messages); objectives != "" {
		b.WriteString(objectives + "\n\n")
	}

	b.WriteString("## Team Analysis & Recommendations\n\n")
	order, contributions := groupByTeam(messages)
	for _, team := range order {
		fmt.Fprintf(&b, "### %s Analysis\n\n", team)
		for i, contribution := range contributions[team] {
			fmt.Fprintf(&b, "#### Contribution %d\n%s\n\n", i+1, contribution)
		}
	}

	b.WriteString(boilerplate("specification_guidelines.md"))
	b.WriteString("\n")

	return Document{Kind: KindSpecification, Name: FileName(title, KindSpecification), Content: b.String()}
}

// RenderIDEGuide builds the IDE prompt guide. Teams without a guideline
// entry contribute no block.
func RenderIDEGuide(title string, teams []string, messages []models.ChatMessage, now time.Time) Document {
	var b strings.Builder
	fmt.Fprintf(&b, "# IDE Development Guidelines for %s\n\n", title)
	b.WriteString("## Project Context\n\n")
	fmt.Fprintf(&b, "**Project:** %s\n", title)
	fmt.Fprintf(&b, "**Generated:** %s\n", now.Format(timestampLayout))
	fmt.Fprintf(&b, "**Teams:** %s\n\n", strings.Join(teams, ", "))

	b.WriteString("## Development Objectives\n\n")
	if objectives := objectivesSection(messages); objectives != "" {
		b.WriteString(objectives + "\n\n")
	}

	order, contributions := groupByTeam(messages)
	b.WriteString("## Team Analysis\n\n")
	for _, team := range order {
		fmt.Fprintf(&b, "### %s\n\n", team)
		for i, contribution := range contributions[team] {
			fmt.Fprintf(&b, "#### Contribution %d\n%s\n\n", i+1, contribution)
		}
	}

	b.WriteString(boilerplate("ide_guide_practices.md"))
	b.WriteString("\n\n")
	for _, team := range teams {
		if guideline, ok := teamGuidelines[team]; ok {
			b.WriteString(guideline + "\n\n")
		}
	}
	b.WriteString(boilerplate("ide_guide_deployment.md"))
	b.WriteString("\n")

	return Document{Kind: KindIDEGuide, Name: FileName(title, KindIDEGuide), Content: b.String()}
}

// RenderManagerSummary builds the manager summary with per-team aggregate
// statistics (message count and total character count).
func RenderManagerSummary(title string, teams []string, messages []models.ChatMessage, now time.Time) Document {
	var b strings.Builder
	fmt.Fprintf(&b, "# Project Manager Summary: %s\n\n", title)
	b.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&b, "**Project:** %s\n", title)
	fmt.Fprintf(&b, "**Date:** %s\n", now.Format(timestampLayout))
	b.WriteString("**Status:** Analysis Complete\n")
	fmt.Fprintf(&b, "**Team Size:** %d specialists\n\n---\n\n", len(teams))

	b.WriteString("## Project Objectives & Scope\n\n")
	if objectives := objectivesSection(messages); objectives != "" {
		b.WriteString(objectives + "\n\n")
	}

	b.WriteString("## Team Contributions Overview\n\n")
	order, contributions := groupByTeam(messages)
	for _, team := range order {
		totalChars := 0
		for _, c := range contributions[team] {
			totalChars += len(c)
		}
		fmt.Fprintf(&b, "### %s\n", team)
		fmt.Fprintf(&b, "- **Contributions:** %d responses\n", len(contributions[team]))
		fmt.Fprintf(&b, "- **Content Volume:** %d characters\n\n", totalChars)
	}

	b.WriteString(boilerplate("manager_findings.md"))
	b.WriteString("\n")
	for _, team := range teams {
		fmt.Fprintf(&b, "- [ ] %s\n", team)
	}
	b.WriteString("\n")
	b.WriteString(boilerplate("manager_closing.md"))
	b.WriteString("\n")

	return Document{Kind: KindManagerSummary, Name: FileName(title, KindManagerSummary), Content: b.String()}
}

// objectivesSection returns message 0 verbatim when it is the user's project
// description, otherwise "". A transcript that starts with anything else
// still renders, just with an empty objectives section.
func objectivesSection(messages []models.ChatMessage) string {
	if len(messages) == 0 || messages[0].Role != models.RoleUser {
		return ""
	}
	return messages[0].Content
}

// groupByTeam groups assistant messages by team, preserving the order teams
// first appear in the transcript and, within a team, chronological order.
func groupByTeam(messages []models.ChatMessage) ([]string, map[string][]string) {
	order := make([]string, 0)
	grouped := make(map[string][]string)
	for i, m := range messages {
		if i == 0 || m.Role != models.RoleAssistant || m.Team == "" {
			continue
		}
		if _, seen := grouped[m.Team]; !seen {
			order = append(order, m.Team)
		}
		grouped[m.Team] = append(grouped[m.Team], m.Content)
	}
	return order, grouped
}

// FileName derives the artifact filename from the conversation title: spaces
// become underscores, path-hostile characters are stripped, and the per-kind
// suffix is appended.
func FileName(title, kind string) string {
	return sanitizeTitle(title) + fileSuffixes[kind]
}

func sanitizeTitle(title string) string {
	replaced := strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
	var b strings.Builder
	for _, r := range replaced {
		switch {
		case r < 0x20:
			continue
		case strings.ContainsRune(`/\:*?"<>|`, r):
			continue
		default:
			b.WriteRune(r)
		}
	}
	cleaned := strings.Trim(b.String(), ".")
	if cleaned == "" {
		return "Untitled"
	}
	return cleaned
}
