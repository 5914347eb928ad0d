package news

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/zhouzirui/newsdesk/backend/internal/model/chat"
	"github.com/zhouzirui/newsdesk/backend/internal/model/news"
	"github.com/zhouzirui/newsdesk/backend/internal/service/ai"
)

var (
	// ErrEmptyKeyword rejects searches whose keyword is empty after trimming.
	ErrEmptyKeyword = errors.New("keyword must not be empty")
	// ErrInvalidMaxResults rejects non-positive result bounds.
	ErrInvalidMaxResults = errors.New("max_results must be a positive integer")
	// ErrSearchProvider marks failures of the upstream search provider.
	ErrSearchProvider = errors.New("news search provider failure")
)

const (
	// DefaultMaxResults applies when the request omits max_results.
	DefaultMaxResults = 5
	// MaxResultsCap bounds how many articles feed the summarization prompt.
	// Larger requests are clamped, not rejected.
	MaxResultsCap = 20
)

// Searcher abstracts the news search provider.
type Searcher interface {
	Search(ctx context.Context, keyword string, limit int) ([]news.Article, error)
}

// Generator abstracts the completion provider used for summarization.
type Generator interface {
	Generate(ctx context.Context, req ai.Request) (*ai.Completion, error)
}

// SearchResult is the composed response for one news-search turn.
type SearchResult struct {
	Summary  string
	Keyword  string
	Articles []news.Article
	Model    string
	Usage    chat.Usage
}

// Service orchestrates the search-then-summarize pipeline. Each call is a
// single-shot completion with no ties to the chat conversation.
type Service struct {
	searcher  Searcher
	generator Generator
}

// NewService wires the news pipeline to its providers.
func NewService(searcher Searcher, generator Generator) *Service {
	return &Service{searcher: searcher, generator: generator}
}

// Search looks up articles for the keyword and asks the completion model
// for a short factual summary. Article ordering follows the provider.
func (s *Service) Search(ctx context.Context, keyword string, maxResults *int) (*SearchResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}

	limit := DefaultMaxResults
	if maxResults != nil {
		if *maxResults < 1 {
			return nil, ErrInvalidMaxResults
		}
		limit = *maxResults
		if limit > MaxResultsCap {
			limit = MaxResultsCap
		}
	}

	articles, err := s.searcher.Search(ctx, keyword, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchProvider, err)
	}
	if articles == nil {
		articles = []news.Article{}
	}
	if len(articles) > limit {
		articles = articles[:limit]
	}

	completion, err := s.generator.Generate(ctx, ai.Request{
		System: summarySystemPrompt,
		Query:  buildSummaryQuery(keyword, articles),
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[news] summarized keyword=%q articles=%d", keyword, len(articles))

	return &SearchResult{
		Summary:  completion.Content,
		Keyword:  keyword,
		Articles: articles,
		Model:    completion.Model,
		Usage:    completion.Usage,
	}, nil
}
