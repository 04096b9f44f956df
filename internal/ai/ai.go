/*
Package ai screens candidate notes for genuine demand versus provider
advertisements using an external language model. The filter is a precision
layer on top of a recall-oriented search, so it fails open: any classifier
problem resolves to accept.
*/
package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/xcop32221/xhs-auto-search/internal/types"
)

// Classifier decides whether an unseen candidate should be notified.
type Classifier interface {
	Classify(ctx context.Context, post types.PostRecord) types.Verdict
}

// Config selects and configures the classifier backend. Leaving every
// credential empty is a valid configuration meaning the filter is disabled.
type Config struct {
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	GeminiAPIKey  string
	GeminiModel   string
}

// FromConfig builds the classifier for the given configuration. With no
// credential configured every candidate is accepted.
func FromConfig(cfg Config) Classifier {
	switch {
	case cfg.OpenAIAPIKey != "":
		log.Printf("AI filter enabled (OpenAI-compatible, model %s)", cfg.OpenAIModel)
		return newOpenAIClassifier(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	case cfg.GeminiAPIKey != "":
		log.Printf("AI filter enabled (Gemini, model %s)", cfg.GeminiModel)
		return newGeminiClassifier(cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		log.Println("No AI credential configured. Accepting all new notes.")
		return acceptAll{}
	}
}

// acceptAll is the disabled-filter adapter.
type acceptAll struct{}

func (acceptAll) Classify(ctx context.Context, post types.PostRecord) types.Verdict {
	return types.VerdictAccept
}

// userContent renders the note fields the model judges on.
func userContent(post types.PostRecord) string {
	return fmt.Sprintf("Title: %s\nAuthor: %s\nContent: %s", post.Title, post.Author, post.Description)
}

// parseVerdict maps the model's reply onto a verdict. Only a clear NO
// rejects; anything else, including garbage, accepts.
func parseVerdict(reply string) types.Verdict {
	reply = strings.ToUpper(strings.TrimSpace(reply))
	switch {
	case strings.HasPrefix(reply, "YES"):
		return types.VerdictAccept
	case strings.HasPrefix(reply, "NO"):
		return types.VerdictReject
	default:
		log.Printf("Unparseable classifier reply %q. Accepting.", reply)
		return types.VerdictAccept
	}
}
