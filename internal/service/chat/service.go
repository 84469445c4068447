package chat

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	faqmatch "github.com/ecosrev/ecosrev-backend/internal/analysis/faq"
	chatmodel "github.com/ecosrev/ecosrev-backend/internal/model/chat"
	faqmodel "github.com/ecosrev/ecosrev-backend/internal/model/faq"
)

// DefaultGreeting seeds every freshly opened session.
const DefaultGreeting = "Olá! Eu sou o Reciclo. Como posso ajudar você hoje?"

var ErrSessionNotFound = errors.New("session not found")

// Speaker plays one utterance on the device text-to-speech capability.
// Stop cancels whatever is currently playing.
type Speaker interface {
	Stop(ctx context.Context) error
	Speak(ctx context.Context, text string) error
}

// Service owns conversation state: an append-only message log per session,
// reset and seeded with a greeting every time a session opens.
type Service struct {
	mu       sync.RWMutex
	greeting string
	intents  []faqmodel.Intent
	sessions map[string]chatmodel.Session
	messages map[string][]chatmodel.Message
}

// NewService bootstraps the in-memory chat service. The intent store is
// snapshotted once; it never changes at runtime.
func NewService(store faqmodel.Store, greeting string) *Service {
	if greeting == "" {
		greeting = DefaultGreeting
	}
	return &Service{
		greeting: greeting,
		intents:  store.List(),
		sessions: make(map[string]chatmodel.Session),
		messages: make(map[string][]chatmodel.Message),
	}
}

// Open transitions a session to visible. An empty sessionID provisions a new
// session. Opening always discards the previous log and seeds exactly one
// bot greeting, so repeated opens stay idempotent.
func (s *Service) Open(_ context.Context, sessionID string) (chatmodel.Session, chatmodel.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		if sessionID != "" {
			return chatmodel.Session{}, chatmodel.Message{}, ErrSessionNotFound
		}
		session = chatmodel.Session{
			ID:        uuid.NewString(),
			CreatedAt: time.Now().UTC(),
		}
	}
	session.Open = true
	s.sessions[session.ID] = session

	greeting := chatmodel.Message{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		Sender:    chatmodel.SenderBot,
		Text:      s.greeting,
		CreatedAt: time.Now().UTC(),
	}
	s.messages[session.ID] = []chatmodel.Message{greeting}

	return session, greeting, nil
}

// Close marks the session hidden. The message log is kept; the next Open
// discards it.
func (s *Service) Close(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	session.Open = false
	s.sessions[sessionID] = session
	return nil
}

// Submit records the user message and synchronously appends the matched bot
// answer. Whitespace-only input appends nothing and returns no messages.
// Matching is pure and runs under the session lock, so the user message is
// never visible without its answer following immediately.
func (s *Service) Submit(_ context.Context, sessionID, text string) ([]chatmodel.Message, error) {
	trimmed := strings.TrimSpace(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return nil, ErrSessionNotFound
	}
	if trimmed == "" {
		return nil, nil
	}

	userMsg := chatmodel.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Sender:    chatmodel.SenderUser,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	botMsg := chatmodel.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Sender:    chatmodel.SenderBot,
		Text:      faqmatch.Match(text, s.intents),
		CreatedAt: time.Now().UTC(),
	}

	s.messages[sessionID] = append(s.messages[sessionID], userMsg, botMsg)
	return []chatmodel.Message{userMsg, botMsg}, nil
}

// Transcript returns the stored messages in insertion order.
func (s *Service) Transcript(_ context.Context, sessionID string) ([]chatmodel.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages, ok := s.messages[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := make([]chatmodel.Message, len(messages))
	copy(copied, messages)
	return copied, nil
}

// Speak reads a message aloud through the device speech capability,
// cancelling any utterance already playing. Failures are logged and never
// reach the caller.
func (s *Service) Speak(ctx context.Context, speaker Speaker, text string) {
	if speaker == nil || strings.TrimSpace(text) == "" {
		return
	}
	if err := speaker.Stop(ctx); err != nil {
		log.Printf("[chat] stop current utterance: %v", err)
	}
	if err := speaker.Speak(ctx, text); err != nil {
		log.Printf("[chat] speak: %v", err)
	}
}
