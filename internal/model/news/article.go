package news

// Article is a single search hit as reported by the news provider. Values
// are read-only and live only for the request that fetched them.
type Article struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
}
