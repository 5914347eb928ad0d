package chat

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/newsdesk/backend/internal/model/chat"
	"github.com/zhouzirui/newsdesk/backend/internal/service/ai"
	chatService "github.com/zhouzirui/newsdesk/backend/internal/service/chat"
	"github.com/zhouzirui/newsdesk/backend/pkg/utils"
)

// Handler 聊天服务的HTTP处理器
type Handler struct {
	chatSvc *chatService.Service
	models  []string
}

// New 创建聊天处理器
func New(chatSvc *chatService.Service, models []string) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		models:  models,
	}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleSend)
	r.Get("/history", h.handleHistory)
	r.Delete("/history", h.handleClearHistory)
	r.Get("/models", h.handleModels)
}

type sendPayload struct {
	Message      string   `json:"message"`
	Model        *string  `json:"model,omitempty"`
	MaxTokens    *int     `json:"max_tokens,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
	SystemPrompt *string  `json:"system_prompt,omitempty"`
}

type sendResponse struct {
	Content            string     `json:"content"`
	Model              string     `json:"model"`
	Usage              chat.Usage `json:"usage"`
	ConversationLength int        `json:"conversation_length"`
}

type historyResponse struct {
	ConversationHistory []chat.Message `json:"conversation_history"`
	MessageCount        int            `json:"message_count"`
	UserMessages        int            `json:"user_messages"`
	AssistantMessages   int            `json:"assistant_messages"`
}

// handleSend 处理一轮对话
func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	var payload sendPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.chatSvc.Send(r.Context(), chatService.SendRequest{
		Message:      payload.Message,
		Model:        payload.Model,
		MaxTokens:    payload.MaxTokens,
		Temperature:  payload.Temperature,
		SystemPrompt: payload.SystemPrompt,
	})
	if err != nil {
		switch {
		case errors.Is(err, chatService.ErrEmptyMessage):
			utils.RespondError(w, http.StatusBadRequest, "message is required")
		case errors.Is(err, ai.ErrProvider):
			log.Printf("[chat] completion failed: %v", err)
			utils.RespondError(w, http.StatusBadGateway, "completion provider failed")
		default:
			log.Printf("[chat] send failed: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "failed to generate chat completion")
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, sendResponse{
		Content:            result.Content,
		Model:              result.Model,
		Usage:              result.Usage,
		ConversationLength: result.ConversationLength,
	})
}

// handleHistory 返回当前会话历史及统计
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	history := h.chatSvc.History()

	utils.RespondJSON(w, http.StatusOK, historyResponse{
		ConversationHistory: history.Messages,
		MessageCount:        history.Stats.Total,
		UserMessages:        history.Stats.User,
		AssistantMessages:   history.Stats.Assistant,
	})
}

// handleClearHistory 清空会话历史
func (h *Handler) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	h.chatSvc.Reset()
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Conversation history cleared"})
}

// handleModels 返回可用模型列表（保持配置顺序）
func (h *Handler) handleModels(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.models)
}
