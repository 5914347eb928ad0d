package ai

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/zhouzirui/newsdesk/backend/internal/config"
	"github.com/zhouzirui/newsdesk/backend/internal/model/chat"
)

// ErrProvider marks failures of the upstream completion provider so HTTP
// handlers can map them separately from validation errors.
var ErrProvider = errors.New("completion provider failure")

// Options carries per-call overrides. Nil fields fall back to the
// configured defaults; the merge is explicit in buildModelOptions.
type Options struct {
	Model       *string
	MaxTokens   *int
	Temperature *float64
}

// Request describes one completion call: the system instruction, prior
// turns, and the new query.
type Request struct {
	System  string
	History []chat.Message
	Query   string
	Options Options
}

// Completion is the provider result surfaced to the pipelines.
type Completion struct {
	Content string
	Model   string
	Usage   chat.Usage
}

// Service encapsulates access to the chat-completion model.
type Service struct {
	cfg   config.AIConfig
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewService creates the completion service backed by the configured model.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		cfg:   cfg,
		chain: runnable,
	}, nil
}

// Models returns the configured model identifiers in their configured order.
func (s *Service) Models() []string {
	return append([]string(nil), s.cfg.AvailableModels...)
}

// Generate runs one completion call and reports the generated text together
// with the model used and the provider's token accounting.
func (s *Service) Generate(ctx context.Context, req Request) (*Completion, error) {
	input := map[string]any{
		"system":  req.System,
		"history": buildHistoryMessages(req.History),
		"query":   req.Query,
	}

	opts, modelID := s.buildModelOptions(req.Options)

	response, err := s.chain.Invoke(ctx, input, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	usage := chat.Usage{}
	if response.ResponseMeta != nil && response.ResponseMeta.Usage != nil {
		usage = chat.Usage{
			PromptTokens:     response.ResponseMeta.Usage.PromptTokens,
			CompletionTokens: response.ResponseMeta.Usage.CompletionTokens,
			TotalTokens:      response.ResponseMeta.Usage.TotalTokens,
		}
	}

	log.Printf("[ai] completion model=%s tokens=%d length=%d", modelID, usage.TotalTokens, len(response.Content))

	return &Completion{
		Content: response.Content,
		Model:   modelID,
		Usage:   usage,
	}, nil
}

// buildModelOptions merges per-call overrides with configured defaults and
// reports the model identifier the call will use.
func (s *Service) buildModelOptions(o Options) ([]compose.Option, string) {
	modelID := s.cfg.Model

	var modelOpts []model.Option
	if o.Model != nil && *o.Model != "" {
		modelID = *o.Model
		modelOpts = append(modelOpts, model.WithModel(modelID))
	}
	if o.MaxTokens != nil {
		modelOpts = append(modelOpts, model.WithMaxTokens(*o.MaxTokens))
	}
	if o.Temperature != nil {
		modelOpts = append(modelOpts, model.WithTemperature(float32(*o.Temperature)))
	}

	if len(modelOpts) == 0 {
		return nil, modelID
	}
	return []compose.Option{compose.WithChatModelOption(modelOpts...)}, modelID
}

// buildHistoryMessages converts stored turns to the model message format.
// System entries never appear in history; the prompt template injects the
// system instruction fresh on every call.
func buildHistoryMessages(messages []chat.Message) []*schema.Message {
	if len(messages) == 0 {
		return nil
	}

	history := make([]*schema.Message, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(msg.Content))
		case chat.RoleAssistant:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}

	return history
}
