package news

import (
	"fmt"
	"strings"

	"github.com/zhouzirui/newsdesk/backend/internal/model/news"
)

const summarySystemPrompt = "You are a news editor. Write a concise, factual summary of the provided " +
	"articles in a few sentences. Stick strictly to the listed material and never invent events or details."

// buildSummaryQuery enumerates the articles for the summarization call.
// When the search returned nothing the prompt says so explicitly, so the
// model reports the absence of results instead of fabricating coverage.
func buildSummaryQuery(keyword string, articles []news.Article) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "News search keyword: %q\n\n", keyword)

	if len(articles) == 0 {
		builder.WriteString("No articles were found for this keyword. ")
		builder.WriteString("Reply that no recent news results were found; do not invent any content.")
		return builder.String()
	}

	builder.WriteString("Articles:\n")
	for i, article := range articles {
		fmt.Fprintf(&builder, "%d. %s (%s)\n", i+1, article.Title, article.Source)
		if snippet := strings.TrimSpace(article.Snippet); snippet != "" {
			fmt.Fprintf(&builder, "   %s\n", snippet)
		}
	}

	builder.WriteString("\nSummarize the key developments these articles report.")
	return builder.String()
}
