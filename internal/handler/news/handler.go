package news

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/newsdesk/backend/internal/model/chat"
	modelNews "github.com/zhouzirui/newsdesk/backend/internal/model/news"
	"github.com/zhouzirui/newsdesk/backend/internal/service/ai"
	newsService "github.com/zhouzirui/newsdesk/backend/internal/service/news"
	"github.com/zhouzirui/newsdesk/backend/pkg/utils"
)

// Handler 新闻搜索的HTTP处理器
type Handler struct {
	newsSvc *newsService.Service
}

// New 创建新闻搜索处理器
func New(newsSvc *newsService.Service) *Handler {
	return &Handler{newsSvc: newsSvc}
}

// RegisterRoutes 注册新闻搜索路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/news-search", h.handleSearch)
}

type searchPayload struct {
	Keyword    string `json:"keyword"`
	MaxResults *int   `json:"max_results,omitempty"`
}

type searchResponse struct {
	Summary  string              `json:"summary"`
	Keyword  string              `json:"keyword"`
	Articles []modelNews.Article `json:"articles"`
	Model    string              `json:"model"`
	Usage    chat.Usage          `json:"usage"`
}

// handleSearch 搜索新闻并生成摘要
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	var payload searchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.newsSvc.Search(r.Context(), payload.Keyword, payload.MaxResults)
	if err != nil {
		switch {
		case errors.Is(err, newsService.ErrEmptyKeyword):
			utils.RespondError(w, http.StatusBadRequest, "keyword is required")
		case errors.Is(err, newsService.ErrInvalidMaxResults):
			utils.RespondError(w, http.StatusBadRequest, "max_results must be a positive integer")
		case errors.Is(err, newsService.ErrSearchProvider), errors.Is(err, ai.ErrProvider):
			log.Printf("[news] provider failed: %v", err)
			utils.RespondError(w, http.StatusBadGateway, "news search provider failed")
		default:
			log.Printf("[news] search failed: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "failed to search news")
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, searchResponse{
		Summary:  result.Summary,
		Keyword:  result.Keyword,
		Articles: result.Articles,
		Model:    result.Model,
		Usage:    result.Usage,
	})
}
