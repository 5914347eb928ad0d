package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/zhouzirui/newsdesk/backend/internal/config"
	"github.com/zhouzirui/newsdesk/backend/internal/model/news"
)

// Client queries a NewsAPI-compatible search endpoint.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewClient builds the search client from configuration.
func NewClient(cfg config.NewsConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
	}
}

type searchResponse struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		Description string `json:"description"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Search fetches up to limit articles for the keyword, preserving the
// provider's ordering.
func (c *Client) Search(ctx context.Context, keyword string, limit int) ([]news.Article, error) {
	endpoint, err := url.Parse(c.baseURL + "/everything")
	if err != nil {
		return nil, fmt.Errorf("invalid news base url: %w", err)
	}

	query := endpoint.Query()
	query.Set("q", keyword)
	query.Set("pageSize", strconv.Itoa(limit))
	query.Set("sortBy", "publishedAt")
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build news request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode news response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || payload.Status != "ok" {
		msg := payload.Message
		if msg == "" {
			msg = payload.Code
		}
		return nil, fmt.Errorf("news api returned status %d: %s", resp.StatusCode, msg)
	}

	articles := make([]news.Article, 0, len(payload.Articles))
	for _, item := range payload.Articles {
		articles = append(articles, news.Article{
			Title:   item.Title,
			URL:     item.URL,
			Snippet: item.Description,
			Source:  item.Source.Name,
		})
	}

	return articles, nil
}
