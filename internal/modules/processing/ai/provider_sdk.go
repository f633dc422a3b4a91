package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	"github.com/tidwall/gjson"
)

type openAIClient struct {
	client openaiclient.Client
}

func newOpenAIClient(apiKey, endpoint string, httpClient *http.Client) *openAIClient {
	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(apiKey),
		openaioption.WithMaxRetries(0),
		openaioption.WithHTTPClient(httpClient),
	}
	if base := normalizeAPIBaseURL(endpoint); base != "" {
		if !strings.HasSuffix(base, "/v1") {
			base += "/v1"
		}
		opts = append(opts, openaioption.WithBaseURL(base))
	}
	return &openAIClient{client: openaiclient.NewClient(opts...)}
}

func (c *openAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openaiclient.ChatCompletionNewParams{
		Model: openaiclient.ChatModel(req.Model),
		Messages: []openaiclient.ChatCompletionMessageParamUnion{
			openaiclient.UserMessage(req.Prompt),
		},
		MaxTokens:   openaiclient.Int(int64(req.MaxTokens)),
		Temperature: openaiclient.Float(req.Temperature),
	})
	if err != nil {
		var apiErr *openaiclient.Error
		if errors.As(err, &apiErr) {
			return "", &UpstreamError{Provider: ProviderOpenAI, StatusCode: apiErr.StatusCode, Err: err}
		}
		return "", &UpstreamError{Provider: ProviderOpenAI, Err: err}
	}
	if completion == nil || len(completion.Choices) == 0 {
		return "", nil
	}

	choice := completion.Choices[0]
	if choice.Message.Content != "" {
		return choice.Message.Content, nil
	}
	// Some compatible backends still answer with the legacy completion shape.
	return gjson.Get(choice.RawJSON(), "text").String(), nil
}

type anthropicClient struct {
	client anthropicclient.Client
}

func newAnthropicClient(apiKey, endpoint string, httpClient *http.Client) *anthropicClient {
	opts := []anthropicoption.RequestOption{
		anthropicoption.WithAPIKey(apiKey),
		anthropicoption.WithMaxRetries(0),
		anthropicoption.WithHTTPClient(httpClient),
	}
	if base := strings.TrimSuffix(normalizeAPIBaseURL(endpoint), "/v1"); base != "" {
		opts = append(opts, anthropicoption.WithBaseURL(base))
	}
	return &anthropicClient{client: anthropicclient.NewClient(opts...)}
}

func (c *anthropicClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropicclient.MessageNewParams{
		Model:       anthropicclient.Model(req.Model),
		MaxTokens:   int64(req.MaxTokens),
		Temperature: anthropicclient.Float(req.Temperature),
		Messages: []anthropicclient.MessageParam{
			anthropicclient.NewUserMessage(anthropicclient.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		var apiErr *anthropicclient.Error
		if errors.As(err, &apiErr) {
			return "", &UpstreamError{Provider: ProviderAnthropic, StatusCode: apiErr.StatusCode, Err: err}
		}
		return "", &UpstreamError{Provider: ProviderAnthropic, Err: err}
	}
	if message == nil {
		return "", nil
	}

	var full strings.Builder
	for _, block := range message.Content {
		if block.Type != "text" || block.Text == "" {
			continue
		}
		full.WriteString(block.Text)
	}
	return full.String(), nil
}
