package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zhouzirui/newsdesk/backend/internal/model/news"
	"github.com/zhouzirui/newsdesk/backend/internal/service/ai"
	chatService "github.com/zhouzirui/newsdesk/backend/internal/service/chat"
	"github.com/zhouzirui/newsdesk/backend/internal/service/conversation"
	newsService "github.com/zhouzirui/newsdesk/backend/internal/service/news"
)

type stubGenerator struct{}

func (stubGenerator) Generate(context.Context, ai.Request) (*ai.Completion, error) {
	return &ai.Completion{Content: "ok", Model: "test-model"}, nil
}

type stubSearcher struct{}

func (stubSearcher) Search(context.Context, string, int) ([]news.Article, error) {
	return nil, nil
}

func newTestRouter() http.Handler {
	store := conversation.NewStore()
	chatSvc := chatService.NewService(store, stubGenerator{}, "test system prompt")
	newsSvc := newsService.NewService(stubSearcher{}, stubGenerator{})
	return NewRouter(chatSvc, newsSvc, []string{"model-a"})
}

func TestRootServiceInfo(t *testing.T) {
	r := newTestRouter()

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["service"] == "" || body["version"] == "" {
		t.Fatalf("expected service info, got %+v", body)
	}
	if body["health"] != "/health" || body["api"] != "/api" {
		t.Fatalf("expected endpoint pointers, got %+v", body)
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter()

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if body["status"] != "healthy" {
		t.Fatalf("unexpected health body: %+v", body)
	}
}
