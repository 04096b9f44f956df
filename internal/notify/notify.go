/*
Package notify delivers monitor notifications through the configured
channels and renders notes and run summaries into title/body pairs.
*/
package notify

import (
	"fmt"
	"log"
)

// Notifier delivers one notification. Delivery is fire-and-forget; the
// pipeline never consumes a confirmation.
type Notifier interface {
	Notify(title, content string) error
}

// ConsoleNotifier echoes notifications to stdout. It is always active so an
// unconfigured deployment still shows results.
type ConsoleNotifier struct{}

func (ConsoleNotifier) Notify(title, content string) error {
	fmt.Printf("\n=== %s ===\n%s\n==========\n", title, content)
	return nil
}

// Multi fans a notification out to every channel. Channel errors are logged
// and swallowed; one broken channel must not silence the others.
type Multi []Notifier

func (m Multi) Notify(title, content string) error {
	for _, n := range m {
		if err := n.Notify(title, content); err != nil {
			log.Printf("Notification channel error (%s): %v", title, err)
		}
	}
	return nil
}

// FromConfig assembles the channel fan-out: console always, plus webhook
// and email when configured.
func FromConfig(webhookURL string, email EmailConfig) Notifier {
	channels := Multi{ConsoleNotifier{}}
	if webhookURL != "" {
		channels = append(channels, NewWebhookNotifier(webhookURL))
	}
	if email.Enabled() {
		channels = append(channels, NewEmailNotifier(email))
	}
	return channels
}
