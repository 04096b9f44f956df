package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/xcop32221/xhs-auto-search/internal/types"
)

const (
	titlePrefixLen = 30
	maxTagsShown   = 3
)

// FormatItem renders one note into a notification title/body pair. The body
// is a fixed ordered list of the fields present on the record; absent fields
// are omitted rather than rendered empty.
func FormatItem(post types.PostRecord) (string, string) {
	title := post.Title
	if title == "" {
		title = "(untitled)"
	}
	title = "📝 " + truncateRunes(title, titlePrefixLen)

	var parts []string
	if post.Author != "" {
		parts = append(parts, fmt.Sprintf("👤 Author: %s", post.Author))
	}
	parts = append(parts,
		fmt.Sprintf("❤️ Likes: %d", post.LikeCount),
		fmt.Sprintf("💬 Comments: %d", post.CommentCount),
		fmt.Sprintf("⭐ Collects: %d", post.CollectCount),
	)
	if post.Description != "" {
		parts = append(parts, fmt.Sprintf("📄 %s", post.Description))
	}
	if len(post.Tags) > 0 {
		tags := post.Tags
		if len(tags) > maxTagsShown {
			tags = tags[:maxTagsShown]
		}
		hashed := make([]string, len(tags))
		for i, t := range tags {
			hashed[i] = "#" + t
		}
		parts = append(parts, fmt.Sprintf("🏷️ %s", strings.Join(hashed, " ")))
	}
	if post.URL != "" {
		parts = append(parts, fmt.Sprintf("🔗 %s", post.URL))
	}
	if post.PublishTime != "" {
		parts = append(parts, fmt.Sprintf("🕒 %s", post.PublishTime))
	}
	if post.ImageCount > 0 {
		parts = append(parts, fmt.Sprintf("🖼️ Images: %d", post.ImageCount))
	}
	if post.HasVideo {
		parts = append(parts, "🎬 Has video")
	}

	return title, strings.Join(parts, "\n")
}

// FormatSummary renders the end-of-run counters.
func FormatSummary(stats types.RunStats) (string, string) {
	body := fmt.Sprintf(`📊 Run summary - %s
📝 Fetched: %d
🆕 New: %d
✅ Accepted: %d
🚫 Rejected: %d
⏰ %s
📚 Seen total: %d`,
		strings.Join(stats.Keywords, ", "),
		stats.Fetched,
		stats.New,
		stats.Accepted,
		stats.Rejected,
		time.Now().Format("15:04:05"),
		stats.SeenTotal,
	)

	return "📊 XHS Monitor", body
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
