package ai

import (
	"context"
	"log"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/xcop32221/xhs-auto-search/internal/types"
)

const defaultGeminiModel = "gemini-2.0-flash"

type geminiClassifier struct {
	apiKey  string
	model   string
	limiter *rate.Limiter
}

func newGeminiClassifier(apiKey, model string) *geminiClassifier {
	if model == "" {
		model = defaultGeminiModel
	}
	return &geminiClassifier{
		apiKey:  apiKey,
		model:   model,
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

func (c *geminiClassifier) Classify(ctx context.Context, post types.PostRecord) types.Verdict {
	if err := c.limiter.Wait(ctx); err != nil {
		log.Printf("Classifier rate wait interrupted: %v. Accepting.", err)
		return types.VerdictAccept
	}

	ctx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Printf("Failed to create gemini client: %v. Accepting.", err)
		return types.VerdictAccept
	}

	contents := []*genai.Content{
		{
			Parts: []*genai.Part{{Text: userContent(post)}},
			Role:  "user",
		},
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		Temperature:     genai.Ptr[float32](0.1),
		MaxOutputTokens: 8,
	})
	if err != nil {
		log.Printf("Gemini API call failed: %v. Accepting.", err)
		return types.VerdictAccept
	}

	return parseVerdict(resp.Text())
}
