/*
Package monitor drives one end-to-end run: aggregate keyword search results,
filter against the seen-set, classify, persist, notify. A run never lets an
error escape; every failure path ends in a notification and a boolean result.
*/
package monitor

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/xcop32221/xhs-auto-search/internal/ai"
	"github.com/xcop32221/xhs-auto-search/internal/config"
	"github.com/xcop32221/xhs-auto-search/internal/fingerprint"
	"github.com/xcop32221/xhs-auto-search/internal/history"
	"github.com/xcop32221/xhs-auto-search/internal/notify"
	"github.com/xcop32221/xhs-auto-search/internal/search"
	"github.com/xcop32221/xhs-auto-search/internal/types"
	"github.com/xcop32221/xhs-auto-search/internal/xhs"
)

// fallbackQuota is the small-scale result count for the backup keyword pass.
const fallbackQuota = 3

// notifyInterval is the pause between consecutive item notifications.
const notifyInterval = 3 * time.Second

// Monitor owns one run of the pipeline.
type Monitor struct {
	cfg           config.Config
	seen          *history.Manager
	aggregator    *search.Aggregator
	classifier    ai.Classifier
	notifier      notify.Notifier
	chooser       *search.Chooser
	notifyLimiter *rate.Limiter
}

// New wires a monitor from configuration. Construction succeeds even with
// missing credentials so Run can report them through the notification
// channels.
func New(cfg config.Config) (*Monitor, error) {
	client, err := xhs.NewClient(cfg.Cookie)
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}

	chooser := search.NewChooser()

	return &Monitor{
		cfg:        cfg,
		seen:       history.NewManager(cfg.SeenFile),
		aggregator: search.NewAggregator(client, chooser, cfg.Geo),
		classifier: ai.FromConfig(ai.Config{
			OpenAIAPIKey:  cfg.OpenAIAPIKey,
			OpenAIBaseURL: cfg.OpenAIBaseURL,
			OpenAIModel:   cfg.OpenAIModel,
			GeminiAPIKey:  cfg.GeminiAPIKey,
			GeminiModel:   cfg.GeminiModel,
		}),
		notifier: notify.FromConfig(cfg.WebhookURL, notify.EmailConfig{
			SMTPServer: cfg.SMTPServer,
			SMTPPort:   cfg.SMTPPort,
			SMTPUser:   cfg.SMTPUser,
			SMTPPass:   cfg.SMTPPass,
			FromEmail:  cfg.SMTPFrom,
			ToEmail:    cfg.SMTPTo,
		}),
		chooser:       chooser,
		notifyLimiter: rate.NewLimiter(rate.Every(notifyInterval), 1),
	}, nil
}

// Run executes one monitoring cycle and reports success. The deferred
// recover is the outermost boundary: nothing propagates past it uncaught.
func (m *Monitor) Run() (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Run aborted by panic: %v", r)
			m.notifier.Notify("💥 Monitor error", fmt.Sprintf("Unexpected failure: %v", r))
			ok = false
		}
	}()

	ctx := context.Background()

	if err := m.cfg.Validate(); err != nil {
		log.Printf("Configuration error: %v", err)
		m.notifier.Notify("❌ Configuration error", fmt.Sprintf("%v\n\nSet the variable in the environment or .env file and rerun.", err))
		return false
	}

	log.Printf("Starting monitor run for keywords: %s", strings.Join(m.cfg.Keywords, ", "))

	candidates, report := m.aggregator.Aggregate(ctx, m.cfg.Keywords, m.cfg.Count)

	if report.Outcome == search.OutcomeFailed {
		m.notifySearchFailure(report)
		return false
	}

	if len(candidates) == 0 {
		log.Println("No notes found.")
		m.notifier.Notify("ℹ️ Monitor result", fmt.Sprintf("%s\nNo matching notes found.", strings.Join(m.cfg.Keywords, ", ")))
		return true
	}

	log.Printf("Fetched %d candidate notes.", len(candidates))

	accepted, stats := m.filterClassify(ctx, candidates)
	stats.Keywords = m.cfg.Keywords
	stats.Fetched = len(candidates)

	if len(accepted) == 0 && len(m.cfg.BackupKeywords) > 0 {
		accepted = m.runFallback(ctx, accepted, &stats)
	}

	if err := m.seen.Save(); err != nil {
		// Notifications already reflect this run; losing the snapshot only
		// risks duplicates next run.
		log.Printf("Failed to persist seen notes: %v", err)
	}

	stats.SeenTotal = m.seen.Len()

	title, body := notify.FormatSummary(stats)
	m.notifier.Notify(title, body)

	for i, post := range accepted {
		if err := m.notifyLimiter.Wait(ctx); err != nil {
			log.Printf("Notify pacing interrupted: %v", err)
			break
		}
		title, body := notify.FormatItem(post)
		m.notifier.Notify(title, body)
		log.Printf("Notified %d/%d: %s", i+1, len(accepted), title)
	}

	log.Printf("Run complete. New: %d, accepted: %d, rejected: %d.", stats.New, stats.Accepted, stats.Rejected)
	return true
}

// filterClassify walks the candidate set, skips already-seen notes, and
// classifies the rest. Every newly adjudicated fingerprint is added to the
// seen-set whether accepted or rejected, so a rejected advertisement is
// never re-classified on a later run.
func (m *Monitor) filterClassify(ctx context.Context, candidates []types.PostRecord) ([]types.PostRecord, types.RunStats) {
	var accepted []types.PostRecord
	var stats types.RunStats

	for _, post := range candidates {
		fp := fingerprint.For(post)
		if m.seen.Contains(fp) {
			log.Printf("Already seen: %s", shortTitle(post))
			continue
		}

		verdict := m.classifier.Classify(ctx, post)
		m.seen.Add(fp)
		stats.New++

		if verdict == types.VerdictAccept {
			accepted = append(accepted, post)
			stats.Accepted++
		} else {
			stats.Rejected++
			log.Printf("Rejected as advertisement: %s", shortTitle(post))
		}
	}

	return accepted, stats
}

// runFallback makes one small-scale pass over a randomly chosen backup
// keyword when the primary keywords produced candidates but none survived
// classification.
func (m *Monitor) runFallback(ctx context.Context, accepted []types.PostRecord, stats *types.RunStats) []types.PostRecord {
	keyword := m.chooser.Keyword(m.cfg.BackupKeywords)
	log.Printf("No accepted notes. Trying backup keyword %q.", keyword)

	candidates, report := m.aggregator.Aggregate(ctx, []string{keyword}, fallbackQuota)
	if report.Outcome != search.OutcomeFound {
		log.Printf("Backup keyword %q produced nothing.", keyword)
		return accepted
	}

	more, fbStats := m.filterClassify(ctx, candidates)
	stats.Fetched += len(candidates)
	stats.New += fbStats.New
	stats.Accepted += fbStats.Accepted
	stats.Rejected += fbStats.Rejected

	return append(accepted, more...)
}

func (m *Monitor) notifySearchFailure(report search.Report) {
	summary := report.FailureSummary()
	log.Printf("All keyword searches failed:\n%s", summary)

	if looksLikeAuthFailure(summary) {
		m.notifier.Notify("❌ Search failed",
			fmt.Sprintf("%s\n\nThe session cookie looks expired or unauthorized. Refresh XHS_COOKIE from a logged-in browser session.", summary))
		return
	}
	m.notifier.Notify("❌ Search failed", fmt.Sprintf("Keywords: %s\n%s", strings.Join(m.cfg.Keywords, ", "), summary))
}

var authMarkers = []string{"cookie", "login", "auth", "unauthorized", "401", "403", "expired", "登录"}

// looksLikeAuthFailure guesses whether a failure message points at the
// search credential, so the notification can carry remediation guidance.
func looksLikeAuthFailure(msg string) bool {
	msg = strings.ToLower(msg)
	for _, marker := range authMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func shortTitle(post types.PostRecord) string {
	runes := []rune(post.Title)
	if len(runes) > 20 {
		return string(runes[:20]) + "..."
	}
	return post.Title
}
