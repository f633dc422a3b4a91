package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	ProviderOpenRouter       = "openrouter"
	ProviderOpenAICompatible = "openai-compatible"
	ProviderOpenAI           = "openai"
	ProviderAnthropic        = "anthropic"

	defaultOpenRouterEndpoint = "https://openrouter.ai/api/v1/chat/completions"
	defaultOpenRouterModel    = "openai/gpt-4o"
	defaultOpenAIModel        = "gpt-4o"
	defaultAnthropicModel     = "claude-haiku-4-5-20251001"

	maxErrorBodyLen = 512
)

var errInvalidUpstreamBody = errors.New("upstream returned a non-JSON body")

// Config is the explicit provider configuration handed to NewCompletionClient.
type Config struct {
	Provider string
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration // 0 means no client-side timeout
}

// ResolvedModel returns the configured model or the provider default.
func (c Config) ResolvedModel() string {
	if model := strings.TrimSpace(c.Model); model != "" {
		return model
	}
	switch normalizeProviderType(c.Provider) {
	case ProviderOpenAI:
		return defaultOpenAIModel
	case ProviderAnthropic:
		return defaultAnthropicModel
	default:
		return defaultOpenRouterModel
	}
}

// CompletionClient sends one prompt upstream and returns the raw assistant text.
// Failures are reported as *UpstreamError. Implementations never retry.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// NewCompletionClient builds the client for cfg.Provider.
func NewCompletionClient(cfg Config) (CompletionClient, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	apiKey := strings.TrimSpace(cfg.APIKey)

	switch t := normalizeProviderType(cfg.Provider); t {
	case "", ProviderOpenRouter, ProviderOpenAICompatible, "openaicompatible":
		return &compatibleClient{
			provider:   firstNonEmpty(t, ProviderOpenRouter),
			endpoint:   normalizeChatCompletionsEndpoint(cfg.Endpoint),
			apiKey:     apiKey,
			httpClient: httpClient,
		}, nil
	case ProviderOpenAI:
		return newOpenAIClient(apiKey, cfg.Endpoint, httpClient), nil
	case ProviderAnthropic:
		return newAnthropicClient(apiKey, cfg.Endpoint, httpClient), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider %q", cfg.Provider)
	}
}

// compatibleClient speaks the OpenAI chat-completions wire format over plain
// HTTP. OpenRouter is the default target.
type compatibleClient struct {
	provider   string
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionBody struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

func (c *compatibleClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	body, err := json.Marshal(chatCompletionBody{
		Model:       req.Model,
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &UpstreamError{Provider: c.provider, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &UpstreamError{Provider: c.provider, Err: err}
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &UpstreamError{
			Provider:   c.provider,
			StatusCode: resp.StatusCode,
			Body:       truncateText(strings.TrimSpace(string(respBody)), maxErrorBodyLen),
		}
	}
	if readErr != nil {
		return "", &UpstreamError{Provider: c.provider, Err: readErr}
	}
	if !gjson.ValidBytes(respBody) {
		return "", &UpstreamError{Provider: c.provider, Err: errInvalidUpstreamBody}
	}
	return completionText(gjson.ParseBytes(respBody).Get("choices.0")), nil
}

// completionText prefers message.content and falls back to the legacy text
// field; providers drift between the two shapes.
func completionText(choice gjson.Result) string {
	if content := choice.Get("message.content").String(); content != "" {
		return content
	}
	return choice.Get("text").String()
}

func normalizeProviderType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.ReplaceAll(t, "_", "-")
	t = strings.ReplaceAll(t, " ", "")
	return t
}

// normalizeChatCompletionsEndpoint accepts a full endpoint, an API base
// ("https://host/v1", "https://openrouter.ai/api/v1") or a bare host.
func normalizeChatCompletionsEndpoint(raw string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if base == "" {
		return defaultOpenRouterEndpoint
	}
	if strings.HasSuffix(base, "/chat/completions") {
		return base
	}

	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		if strings.HasSuffix(base, "/v1") {
			return base + "/chat/completions"
		}
		return base + "/v1/chat/completions"
	}

	path := strings.TrimRight(parsed.Path, "/")
	if !strings.HasSuffix(path, "/v1") {
		path += "/v1"
	}
	parsed.Path = path + "/chat/completions"
	return parsed.String()
}

// normalizeAPIBaseURL turns an endpoint into the base URL the SDKs expect.
func normalizeAPIBaseURL(raw string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	base = strings.TrimSuffix(base, "/chat/completions")
	base = strings.TrimSuffix(base, "/messages")
	return base
}

func truncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
