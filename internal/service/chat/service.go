package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zhouzirui/newsdesk/backend/internal/model/chat"
	"github.com/zhouzirui/newsdesk/backend/internal/service/ai"
	"github.com/zhouzirui/newsdesk/backend/internal/service/conversation"
)

// ErrEmptyMessage rejects sends whose message is empty after trimming.
// Validation happens before any store mutation or provider call.
var ErrEmptyMessage = errors.New("message must not be empty")

// Generator abstracts the completion provider so tests can substitute a fake.
type Generator interface {
	Generate(ctx context.Context, req ai.Request) (*ai.Completion, error)
}

// SendRequest is one chat turn. Nil override fields keep the configured
// defaults.
type SendRequest struct {
	Message      string
	Model        *string
	MaxTokens    *int
	Temperature  *float64
	SystemPrompt *string
}

// SendResult is the composed response for a successful turn.
type SendResult struct {
	Content            string
	Model              string
	Usage              chat.Usage
	ConversationLength int
}

// History pairs a conversation snapshot with its derived counts.
type History struct {
	Messages []chat.Message
	Stats    conversation.Stats
}

// Service orchestrates chat turns against the shared conversation.
//
// Concurrent sends are not serialized into a queue; they interleave at the
// granularity of whole store appends, so simultaneous turns may land in the
// shared history in nondeterministic order.
type Service struct {
	store        *conversation.Store
	generator    Generator
	systemPrompt string
}

// NewService wires the chat pipeline to its conversation store and
// completion provider.
func NewService(store *conversation.Store, generator Generator, systemPrompt string) *Service {
	return &Service{
		store:        store,
		generator:    generator,
		systemPrompt: systemPrompt,
	}
}

// Send runs one chat turn: append the user message, call the completion
// provider with the full prior history, append the reply.
//
// When the provider fails the user message stays in history and no
// assistant message is appended; the attempted turn remains visible.
func (s *Service) Send(ctx context.Context, req SendRequest) (*SendResult, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}

	userMsg, err := s.store.Append(chat.RoleUser, req.Message)
	if err != nil {
		return nil, fmt.Errorf("failed to append user message: %w", err)
	}

	// History for the model call is everything except the turn's own user
	// message, which travels as the query. Filtering by id keeps this exact
	// when concurrent turns interleave into the snapshot.
	snapshot := s.store.Snapshot()
	history := make([]chat.Message, 0, len(snapshot))
	for _, msg := range snapshot {
		if msg.ID != userMsg.ID {
			history = append(history, msg)
		}
	}

	system := s.systemPrompt
	if req.SystemPrompt != nil && strings.TrimSpace(*req.SystemPrompt) != "" {
		system = *req.SystemPrompt
	}

	completion, err := s.generator.Generate(ctx, ai.Request{
		System:  system,
		History: history,
		Query:   req.Message,
		Options: ai.Options{
			Model:       req.Model,
			MaxTokens:   req.MaxTokens,
			Temperature: req.Temperature,
		},
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.store.Append(chat.RoleAssistant, completion.Content); err != nil {
		return nil, fmt.Errorf("failed to append assistant message: %w", err)
	}

	return &SendResult{
		Content:            completion.Content,
		Model:              completion.Model,
		Usage:              completion.Usage,
		ConversationLength: s.store.Stats().Total,
	}, nil
}

// History returns the conversation snapshot and derived counts without side
// effects.
func (s *Service) History() History {
	return History{
		Messages: s.store.Snapshot(),
		Stats:    s.store.Stats(),
	}
}

// Reset clears the shared conversation.
func (s *Service) Reset() {
	s.store.Clear()
}
