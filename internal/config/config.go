package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	AI     AIConfig
	News   NewsConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	news, err := loadNewsConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, AI: ai, News: news}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig 描述大模型相关配置。Model/MaxTokens/Temperature/SystemPrompt
// 是每次请求可覆盖的默认值。
type AIConfig struct {
	APIKey          string
	BaseURL         string
	Region          string
	Model           string
	AvailableModels []string
	MaxTokens       int
	Temperature     float64
	SystemPrompt    string
}

// NewsConfig 描述新闻搜索提供方的配置。
type NewsConfig struct {
	APIKey  string
	BaseURL string
	Timeout int // seconds
}

// NewChatModel 使用配置创建一个模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("ARK_API_KEY is required")
	}

	maxTokens := c.MaxTokens
	temperature := float32(c.Temperature)

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		Model:       c.Model,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
	}

	return ark.NewChatModel(ctx, cfg)
}

const defaultSystemPrompt = "You are a helpful assistant. Answer clearly and concisely."

func loadAIConfig() (AIConfig, error) {
	apiKey := strings.TrimSpace(os.Getenv("ARK_API_KEY"))
	if apiKey == "" {
		return AIConfig{}, fmt.Errorf("ARK_API_KEY environment variable is required")
	}

	maxTokens := 1024
	if override, err := parseOptionalIntEnv("DEFAULT_MAX_TOKENS"); err != nil {
		return AIConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return AIConfig{}, fmt.Errorf("DEFAULT_MAX_TOKENS must be positive, got %d", *override)
		}
		maxTokens = *override
	}

	temperature := 0.7
	if override, err := parseOptionalFloatEnv("DEFAULT_TEMPERATURE"); err != nil {
		return AIConfig{}, err
	} else if override != nil {
		temperature = *override
	}

	models := splitModels(os.Getenv("AVAILABLE_MODELS"))
	if len(models) == 0 {
		models = []string{
			"doubao-1-5-pro-32k-250115",
			"doubao-1-5-lite-32k-250115",
			"deepseek-v3-250324",
		}
	}

	return AIConfig{
		APIKey:          apiKey,
		BaseURL:         getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:          getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Model:           getEnvOrDefault("CHAT_MODEL", models[0]),
		AvailableModels: models,
		MaxTokens:       maxTokens,
		Temperature:     temperature,
		SystemPrompt:    getEnvOrDefault("SYSTEM_PROMPT", defaultSystemPrompt),
	}, nil
}

func loadNewsConfig() (NewsConfig, error) {
	timeout := 10
	if override, err := parseOptionalIntEnv("NEWS_TIMEOUT"); err != nil {
		return NewsConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return NewsConfig{}, fmt.Errorf("NEWS_TIMEOUT must be positive, got %d", *override)
		}
		timeout = *override
	}

	return NewsConfig{
		APIKey:  strings.TrimSpace(os.Getenv("NEWS_API_KEY")),
		BaseURL: getEnvOrDefault("NEWS_BASE_URL", "https://newsapi.org/v2"),
		Timeout: timeout,
	}, nil
}

// splitModels 解析逗号分隔的模型列表，保持原有顺序。
func splitModels(raw string) []string {
	parts := strings.Split(raw, ",")
	models := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			models = append(models, trimmed)
		}
	}
	return models
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
