package chat

// Usage carries the provider-reported token accounting for one completion
// call, passed through verbatim.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
