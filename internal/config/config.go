/*
Package config loads the immutable run configuration from the environment.
The monitor reads it once at process start and passes it into every
component; nothing looks up environment variables after that.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultCount    = 5
	seenFileName    = "xhs_seen_notes.json"
	seenDirName     = "xhs-monitor"
	defaultSMTPPort = 587
)

// Config is the full run configuration.
type Config struct {
	// Search
	Keywords       []string
	BackupKeywords []string
	Count          int
	Cookie         string
	Geo            string

	// Persistence
	SeenFile string

	// Classifier (all optional; empty disables the filter)
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	GeminiAPIKey  string
	GeminiModel   string

	// Notification channels (optional)
	WebhookURL string
	SMTPServer string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	SMTPFrom   string
	SMTPTo     string
}

// LoadFromEnv reads the configuration from environment variables, applying
// defaults where values are absent.
func LoadFromEnv() Config {
	count := defaultCount
	if val := os.Getenv("XHS_COUNT"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			count = parsed
		}
	}

	// The original panel script read the session cookie from COOKIES; keep
	// that alias working.
	cookie := os.Getenv("XHS_COOKIE")
	if cookie == "" {
		cookie = os.Getenv("COOKIES")
	}

	seenFile := os.Getenv("XHS_SEEN_FILE")
	if seenFile == "" {
		seenFile = filepath.Join(os.TempDir(), seenDirName, seenFileName)
	}

	smtpPort := defaultSMTPPort
	if val := os.Getenv("SMTP_PORT"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			smtpPort = parsed
		}
	}

	return Config{
		Keywords:       ParseKeywords(os.Getenv("XHS_KEYWORDS")),
		BackupKeywords: ParseKeywords(os.Getenv("XHS_BACKUP_KEYWORDS")),
		Count:          count,
		Cookie:         cookie,
		Geo:            os.Getenv("XHS_GEO"),

		SeenFile: seenFile,

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:   os.Getenv("OPENAI_MODEL"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),

		WebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
		SMTPServer: os.Getenv("SMTP_SERVER"),
		SMTPPort:   smtpPort,
		SMTPUser:   os.Getenv("SMTP_USER"),
		SMTPPass:   os.Getenv("SMTP_PASS"),
		SMTPFrom:   os.Getenv("SMTP_FROM"),
		SMTPTo:     os.Getenv("SMTP_TO"),
	}
}

// Validate reports the one fatal configuration error: no search credential.
// Everything else has a default or disables a feature.
func (c Config) Validate() error {
	if c.Cookie == "" {
		return fmt.Errorf("search cookie is not configured (set XHS_COOKIE)")
	}
	if len(c.Keywords) == 0 {
		return fmt.Errorf("no keywords configured (set XHS_KEYWORDS)")
	}
	return nil
}

// ParseKeywords splits a comma-separated keyword list, trimming entries and
// dropping empty ones.
func ParseKeywords(s string) []string {
	parts := strings.Split(s, ",")
	var keywords []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}
