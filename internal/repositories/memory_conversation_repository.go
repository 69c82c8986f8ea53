package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"roundtable/internal/models"
)

// memoryConversationRepository keeps everything in process memory. It backs
// ephemeral runs and tests where no database file is wanted.
type memoryConversationRepository struct {
	mu            sync.Mutex
	nextID        uint
	nextMessageID uint
	nextFileID    uint
	conversations map[string]*models.Conversation
	messages      map[uint][]models.Message
	files         map[uint][]models.GeneratedFile
}

func NewMemoryConversationRepository() ConversationRepository {
	return &memoryConversationRepository{
		conversations: make(map[string]*models.Conversation),
		messages:      make(map[uint][]models.Message),
		files:         make(map[uint][]models.GeneratedFile),
	}
}

func (r *memoryConversationRepository) Create(ctx context.Context, conversation *models.Conversation) error {
	if conversation.SessionID == "" {
		return fmt.Errorf("session id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conversations[conversation.SessionID]; ok {
		return fmt.Errorf("conversation for session %s already exists", conversation.SessionID)
	}
	r.nextID++
	conversation.ID = r.nextID
	if conversation.Status == "" {
		conversation.Status = models.StatusActive
	}
	now := time.Now()
	conversation.CreatedAt = now
	conversation.UpdatedAt = now
	stored := *conversation
	r.conversations[conversation.SessionID] = &stored
	return nil
}

func (r *memoryConversationRepository) AppendMessage(ctx context.Context, message *models.Message) error {
	if message.ConversationID == 0 {
		return fmt.Errorf("conversation id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextMessageID++
	message.ID = r.nextMessageID
	message.CreatedAt = time.Now()
	r.messages[message.ConversationID] = append(r.messages[message.ConversationID], *message)
	return nil
}

func (r *memoryConversationRepository) AppendGeneratedFile(ctx context.Context, file *models.GeneratedFile) error {
	if file.ConversationID == 0 {
		return fmt.Errorf("conversation id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextFileID++
	file.ID = r.nextFileID
	file.CreatedAt = time.Now()
	r.files[file.ConversationID] = append(r.files[file.ConversationID], *file)
	return nil
}

func (r *memoryConversationRepository) List(ctx context.Context) ([]models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Conversation, 0, len(r.conversations))
	for _, c := range r.conversations {
		out = append(out, *c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memoryConversationRepository) LoadBySession(ctx context.Context, sessionID string) (*models.ConversationBundle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conversations[sessionID]
	if !ok {
		return nil, nil
	}

	messages := make([]models.Message, len(r.messages[c.ID]))
	copy(messages, r.messages[c.ID])

	files := make([]models.GeneratedFile, len(r.files[c.ID]))
	copy(files, r.files[c.ID])
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].CreatedAt.After(files[j].CreatedAt)
	})

	return &models.ConversationBundle{
		Conversation: *c,
		Messages:     messages,
		Files:        files,
	}, nil
}

func (r *memoryConversationRepository) SetStatus(ctx context.Context, sessionID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conversations[sessionID]
	if !ok {
		return fmt.Errorf("no conversation for session %s", sessionID)
	}
	c.Status = status
	c.UpdatedAt = time.Now()
	return nil
}
