package ai

import (
	"context"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/xcop32221/xhs-auto-search/internal/types"
)

const (
	classifyTimeout = 30 * time.Second
	defaultModel    = openai.GPT4oMini
)

type openAIClassifier struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
}

func newOpenAIClassifier(apiKey, baseURL, model string) *openAIClassifier {
	if model == "" {
		model = defaultModel
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &openAIClassifier{
		client:  openai.NewClientWithConfig(config),
		model:   model,
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

func (c *openAIClassifier) Classify(ctx context.Context, post types.PostRecord) types.Verdict {
	if err := c.limiter.Wait(ctx); err != nil {
		log.Printf("Classifier rate wait interrupted: %v. Accepting.", err)
		return types.VerdictAccept
	}

	ctx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: userContent(post)},
		},
		Temperature: 0.1, // deterministic single-token answer
		MaxTokens:   8,
	})
	if err != nil {
		log.Printf("Classifier call failed: %v. Accepting.", err)
		return types.VerdictAccept
	}

	if len(resp.Choices) == 0 {
		log.Println("Classifier returned no choices. Accepting.")
		return types.VerdictAccept
	}

	return parseVerdict(resp.Choices[0].Message.Content)
}
