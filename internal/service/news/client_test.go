package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zhouzirui/newsdesk/backend/internal/config"
)

func newTestClient(server *httptest.Server) *Client {
	return NewClient(config.NewsConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 5,
	})
}

func TestClientSearchMapsArticles(t *testing.T) {
	var gotPath, gotQuery, gotPageSize, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		gotPageSize = r.URL.Query().Get("pageSize")
		gotKey = r.Header.Get("X-Api-Key")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "ok",
			"articles": [
				{"title": "First", "url": "https://a.example/1", "description": "one", "source": {"name": "Wire A"}},
				{"title": "Second", "url": "https://b.example/2", "description": "two", "source": {"name": "Wire B"}}
			]
		}`))
	}))
	defer server.Close()

	articles, err := newTestClient(server).Search(context.Background(), "golang", 2)
	if err != nil {
		t.Fatalf("Search err: %v", err)
	}

	if gotPath != "/everything" || gotQuery != "golang" || gotPageSize != "2" || gotKey != "test-key" {
		t.Fatalf("unexpected request: path=%q q=%q pageSize=%q key=%q", gotPath, gotQuery, gotPageSize, gotKey)
	}

	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].Title != "First" || articles[0].Snippet != "one" || articles[0].Source != "Wire A" {
		t.Fatalf("unexpected first article: %+v", articles[0])
	}
	if articles[1].URL != "https://b.example/2" {
		t.Fatalf("unexpected second article: %+v", articles[1])
	}
}

func TestClientSearchEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status": "ok", "articles": []}`))
	}))
	defer server.Close()

	articles, err := newTestClient(server).Search(context.Background(), "zzznoresults", 5)
	if err != nil {
		t.Fatalf("Search err: %v", err)
	}
	if len(articles) != 0 {
		t.Fatalf("expected no articles, got %d", len(articles))
	}
}

func TestClientSearchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status": "error", "code": "apiKeyInvalid", "message": "Your API key is invalid"}`))
	}))
	defer server.Close()

	if _, err := newTestClient(server).Search(context.Background(), "golang", 5); err == nil {
		t.Fatal("expected error for provider failure status")
	}
}

func TestClientSearchUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	if _, err := newTestClient(server).Search(context.Background(), "golang", 5); err == nil {
		t.Fatal("expected error when provider is unreachable")
	}
}
