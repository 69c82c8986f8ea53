package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino/schema"

	"roundtable/internal/discussion"
	"roundtable/internal/events"
	"roundtable/internal/llm/client"
	"roundtable/internal/models"
	"roundtable/internal/repositories"
	"roundtable/internal/utils"
)

// Input caps for the manual project description fields.
const (
	maxDescriptionWords = 150
	maxDescriptionChars = 1500
)

const manualProjectTitle = "Manual Project Description"

// turn pacing keeps the streamed transcript readable and spreads provider
// load across the round
const defaultTurnPause = time.Second

// Completer is the one LLM call the orchestrator needs. *client.LLMClient
// satisfies it; tests substitute a fake.
type Completer interface {
	Complete(ctx context.Context, systemPrompt string, history []*schema.Message) (string, error)
}

// ClientFactory builds a provider client from a resolved API key.
type ClientFactory func(ctx context.Context, provider, modelName, apiKey string) (Completer, error)

type DiscussionService interface {
	Startup(ctx context.Context)
	NewSession() models.Session
	ComposeManualProject(session models.Session, topic, goals string) (models.Session, error)
	ComposeUploadProject(session models.Session, fileName, content string) (models.Session, error)
	StartDiscussion(ctx context.Context, session models.Session, teams []string, rounds int, style, provider, modelName string) (models.Session, error)
	AdvanceTurn(ctx context.Context, session models.Session) (models.Session, error)
	RunDiscussion(ctx context.Context, session models.Session) (models.Session, error)
	CancelDiscussion(ctx context.Context, session models.Session) (models.Session, error)
	ResumeSession(ctx context.Context, sessionID string) (*models.Session, error)
}

type discussionService struct {
	conversations repositories.ConversationRepository
	keys          *KeyringService
	factory       ClientFactory
	turnPause     time.Duration
	ctx           context.Context

	mu      sync.Mutex
	clients map[string]Completer
}

func NewDiscussionService(conversations repositories.ConversationRepository, keys *KeyringService) DiscussionService {
	return &discussionService{
		conversations: conversations,
		keys:          keys,
		factory:       defaultClientFactory,
		turnPause:     defaultTurnPause,
		clients:       make(map[string]Completer),
	}
}

// NewDiscussionServiceWithFactory lets tests inject a fake client and drop
// the per-turn pause.
func NewDiscussionServiceWithFactory(conversations repositories.ConversationRepository, keys *KeyringService, factory ClientFactory, turnPause time.Duration) DiscussionService {
	return &discussionService{
		conversations: conversations,
		keys:          keys,
		factory:       factory,
		turnPause:     turnPause,
		clients:       make(map[string]Completer),
	}
}

func defaultClientFactory(ctx context.Context, provider, modelName, apiKey string) (Completer, error) {
	switch provider {
	case "openai":
		return client.NewOpenAIClient(ctx, apiKey, client.OpenAIModelOptions{Model: modelName})
	case "anthropic":
		return client.NewClaudeClient(ctx, apiKey, client.ClaudeModelOptions{Model: modelName})
	case "gemini":
		return client.NewGeminiClient(ctx, apiKey, client.GeminiModelOptions{Model: modelName})
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}

func (s *discussionService) Startup(ctx context.Context) {
	s.ctx = ctx
}

func (s *discussionService) NewSession() models.Session {
	return models.NewSession()
}

// ComposeManualProject sets the opening user message from typed topic and
// goals. Both fields are capped so the first prompt stays within a sane
// context size.
func (s *discussionService) ComposeManualProject(session models.Session, topic, goals string) (models.Session, error) {
	topic = strings.TrimSpace(topic)
	goals = strings.TrimSpace(goals)
	if topic == "" {
		return session, NewValidationError("topic", "a project topic is required")
	}
	if err := checkDescriptionLimits("topic", topic); err != nil {
		return session, err
	}
	if goals != "" {
		if err := checkDescriptionLimits("goals", goals); err != nil {
			return session, err
		}
	}

	content := fmt.Sprintf("Topic: %s\n\nGoals: %s", topic, goals)
	session.Title = manualProjectTitle
	session.UploadedFileName = ""
	session.UploadedFileContent = ""
	session.Messages = []models.ChatMessage{{Role: models.RoleUser, Content: content}}
	session.Phase = models.PhaseAwaitingInput
	return session, nil
}

// ComposeUploadProject sets the opening user message from an uploaded
// project description file. Only markdown and plain text are accepted.
func (s *discussionService) ComposeUploadProject(session models.Session, fileName, content string) (models.Session, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return session, NewValidationError("file", "a file name is required")
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext != ".md" && ext != ".txt" {
		return session, NewValidationError("file", "only .md and .txt files are accepted")
	}
	if strings.TrimSpace(content) == "" {
		return session, NewValidationError("file", "the uploaded file is empty")
	}

	session.Title = strings.TrimSuffix(fileName, filepath.Ext(fileName))
	session.UploadedFileName = fileName
	session.UploadedFileContent = content
	session.Messages = []models.ChatMessage{{
		Role:    models.RoleUser,
		Content: fmt.Sprintf("File: %s\n\nContent:\n%s", fileName, content),
	}}
	session.Phase = models.PhaseAwaitingInput
	return session, nil
}

func checkDescriptionLimits(field, text string) error {
	if n := utils.CountWords(text); n > maxDescriptionWords {
		return NewValidationError(field, fmt.Sprintf("limited to %d words (got %d)", maxDescriptionWords, n))
	}
	if n := len(text); n > maxDescriptionChars {
		return NewValidationError(field, fmt.Sprintf("limited to %d characters (got %d)", maxDescriptionChars, n))
	}
	return nil
}

// StartDiscussion validates the setup, builds the provider client and
// persists the conversation with its opening message. The session comes
// back in the in-progress phase ready for AdvanceTurn.
func (s *discussionService) StartDiscussion(ctx context.Context, session models.Session, teams []string, rounds int, style, provider, modelName string) (models.Session, error) {
	if session.Phase == models.PhaseInProgress {
		return session, NewValidationError("session", "discussion already running")
	}
	if len(session.Messages) == 0 || session.Messages[0].Role != models.RoleUser {
		return session, NewValidationError("session", "describe the project before starting the discussion")
	}
	if err := discussion.ValidateSetup(teams, rounds); err != nil {
		return session, NewValidationError("setup", err.Error())
	}
	for _, t := range teams {
		if !discussion.KnownTeam(t) {
			return session, NewValidationError("setup", fmt.Sprintf("unknown team %q", t))
		}
	}
	if modelName == "" {
		return session, NewValidationError("model", "a model must be selected")
	}

	session.Provider = provider
	session.ModelName = modelName
	if _, err := s.bindClient(ctx, session); err != nil {
		return session, err
	}

	conversation := &models.Conversation{
		SessionID:           session.SessionID,
		Title:               session.Title,
		Rounds:              rounds,
		Style:               style,
		Provider:            provider,
		ModelName:           modelName,
		UploadedFileName:    session.UploadedFileName,
		UploadedFileContent: session.UploadedFileContent,
		Status:              models.StatusActive,
	}
	if err := conversation.SetTeams(teams); err != nil {
		return session, err
	}
	if err := s.conversations.Create(ctx, conversation); err != nil {
		return session, fmt.Errorf("persist conversation: %w", err)
	}
	if err := s.conversations.AppendMessage(ctx, &models.Message{
		ConversationID: conversation.ID,
		Role:           models.RoleUser,
		Content:        session.Messages[0].Content,
	}); err != nil {
		return session, fmt.Errorf("persist opening message: %w", err)
	}

	session.ConversationID = conversation.ID
	session.Teams = append([]string(nil), teams...)
	session.Rounds = rounds
	session.Style = style
	session.Phase = models.PhaseInProgress

	ctx = events.WithSession(ctx, session.SessionID)
	events.Emit(ctx, events.DiscussionTurn, events.NewInfo(fmt.Sprintf("discussion started with %d teams over %d rounds", len(teams), rounds)))
	return session, nil
}

// AdvanceTurn runs exactly one specialist turn. The speaker is always
// derived from the number of assistant messages already in the transcript,
// so replaying a persisted session lands on the same rotation. An upstream
// failure does not abort the discussion: the error text becomes that team's
// transcript entry and the rotation moves on.
func (s *discussionService) AdvanceTurn(ctx context.Context, session models.Session) (models.Session, error) {
	if session.Phase != models.PhaseInProgress {
		return session, NewValidationError("session", "no discussion in progress")
	}

	ctx = events.WithSession(ctx, session.SessionID)
	count := discussion.AssistantCount(session.Messages)
	if discussion.Done(count, session.Rounds, len(session.Teams)) {
		return s.finish(ctx, session)
	}

	team, err := discussion.NextTeam(session.Teams, count)
	if err != nil {
		return session, err
	}

	s.mu.Lock()
	completer, ok := s.clients[session.SessionID]
	s.mu.Unlock()
	if !ok {
		// Rebind after a restart: the provider and model are persisted with
		// the conversation, so a resumed session rebuilds its client here.
		completer, err = s.bindClient(ctx, session)
		if err != nil {
			return session, err
		}
	}

	hasUpload := session.UploadedFileName != ""
	systemPrompt := discussion.ComposeSystemPrompt(team, hasUpload, session.Style)
	history := discussion.BuildHistory(session.Messages)

	content, err := completer.Complete(ctx, systemPrompt, history)
	if err != nil {
		// Keep the failure in the transcript instead of dropping the turn.
		content = "Error: " + err.Error()
		events.Emit(ctx, events.DiscussionTurn, events.NewError(fmt.Sprintf("%s turn failed: %v", team, err)))
	}

	message := models.ChatMessage{
		Role:      models.RoleAssistant,
		Content:   content,
		Team:      team,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	session.Messages = append(session.Messages, message)

	if err := s.conversations.AppendMessage(ctx, &models.Message{
		ConversationID: session.ConversationID,
		Role:           models.RoleAssistant,
		Content:        content,
		Team:           team,
	}); err != nil {
		return session, fmt.Errorf("persist turn: %w", err)
	}

	events.Emit(ctx, events.DiscussionTurn, events.NewTurn(team, content))

	if s.turnPause > 0 {
		select {
		case <-ctx.Done():
			return session, ctx.Err()
		case <-time.After(s.turnPause):
		}
	}

	if discussion.Done(discussion.AssistantCount(session.Messages), session.Rounds, len(session.Teams)) {
		return s.finish(ctx, session)
	}
	return session, nil
}

// RunDiscussion advances turns until the round budget is spent or ctx is
// cancelled.
func (s *discussionService) RunDiscussion(ctx context.Context, session models.Session) (models.Session, error) {
	for session.Phase == models.PhaseInProgress {
		if err := ctx.Err(); err != nil {
			return session, err
		}
		var err error
		session, err = s.AdvanceTurn(ctx, session)
		if err != nil {
			return session, err
		}
	}
	return session, nil
}

func (s *discussionService) finish(ctx context.Context, session models.Session) (models.Session, error) {
	session.Phase = models.PhaseComplete
	s.releaseClient(session.SessionID)
	if err := s.conversations.SetStatus(ctx, session.SessionID, models.StatusCompleted); err != nil {
		return session, fmt.Errorf("mark conversation completed: %w", err)
	}
	events.Emit(ctx, events.DiscussionDone, events.NewSuccess(fmt.Sprintf("discussion complete after %d contributions", discussion.AssistantCount(session.Messages))))
	return session, nil
}

// CancelDiscussion stops an in-progress session. The transcript so far is
// kept; the conversation is marked cancelled rather than completed.
func (s *discussionService) CancelDiscussion(ctx context.Context, session models.Session) (models.Session, error) {
	if session.Phase != models.PhaseInProgress {
		return session, NewValidationError("session", "no discussion in progress")
	}
	s.releaseClient(session.SessionID)
	if err := s.conversations.SetStatus(ctx, session.SessionID, models.StatusCancelled); err != nil {
		return session, fmt.Errorf("mark conversation cancelled: %w", err)
	}
	session.Phase = models.PhaseComplete
	events.Emit(ctx, events.DiscussionDone, events.NewWarn("discussion cancelled"))
	return session, nil
}

// ResumeSession rebuilds a session from its persisted conversation. The
// phase is derived from the transcript, never stored. Returns nil when the
// session is unknown.
func (s *discussionService) ResumeSession(ctx context.Context, sessionID string) (*models.Session, error) {
	bundle, err := s.conversations.LoadBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if bundle == nil {
		return nil, nil
	}

	session := models.Session{
		SessionID:           bundle.Conversation.SessionID,
		ConversationID:      bundle.Conversation.ID,
		Title:               bundle.Conversation.Title,
		Teams:               bundle.Conversation.Teams(),
		Rounds:              bundle.Conversation.Rounds,
		Style:               bundle.Conversation.Style,
		Provider:            bundle.Conversation.Provider,
		ModelName:           bundle.Conversation.ModelName,
		UploadedFileName:    bundle.Conversation.UploadedFileName,
		UploadedFileContent: bundle.Conversation.UploadedFileContent,
	}
	for _, m := range bundle.Messages {
		session.Messages = append(session.Messages, models.ChatMessage{
			Role:      m.Role,
			Content:   m.Content,
			Team:      m.Team,
			CreatedAt: m.CreatedAt.Format(time.RFC3339),
		})
	}

	switch {
	case len(session.Messages) == 0:
		session.Phase = models.PhaseAwaitingInput
	case bundle.Conversation.Status == models.StatusActive:
		session.Phase = models.PhaseInProgress
	default:
		session.Phase = models.PhaseComplete
	}
	return &session, nil
}

// bindClient resolves the API key for the session's provider, builds the
// completer and caches it under the session id.
func (s *discussionService) bindClient(ctx context.Context, session models.Session) (Completer, error) {
	if session.Provider == "" || session.ModelName == "" {
		return nil, NewConfigurationError("session has no provider binding; start the discussion first")
	}
	apiKey, err := s.keys.GetApiKey(session.Provider)
	if err != nil || apiKey == "" {
		return nil, NewConfigurationError(fmt.Sprintf("no API key configured for %s", session.Provider))
	}
	completer, err := s.factory(ctx, session.Provider, session.ModelName, apiKey)
	if err != nil {
		return nil, NewConfigurationError(fmt.Sprintf("could not initialise %s client: %v", session.Provider, err))
	}
	s.mu.Lock()
	s.clients[session.SessionID] = completer
	s.mu.Unlock()
	return completer, nil
}

func (s *discussionService) releaseClient(sessionID string) {
	s.mu.Lock()
	delete(s.clients, sessionID)
	s.mu.Unlock()
}
