package external

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// SuggestionClient asks a chat model for the briefing's one-line motivation.
// Without an API key it returns a fixed line; the briefing never blocks on an
// unconfigured integration.
type SuggestionClient struct {
	client *openai.Client
}

func NewSuggestionClient(apiKey string) *SuggestionClient {
	if apiKey == "" {
		return &SuggestionClient{}
	}
	return &SuggestionClient{client: openai.NewClient(apiKey)}
}

func (c *SuggestionClient) Suggest(ctx context.Context, prompt string) (string, error) {
	if c.client == nil {
		return "Take it one small step at a time today.", nil
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     openai.GPT4oMini,
		MaxTokens: 60,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "Take it one small step at a time today.", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
