package notify

import (
	"strings"
	"testing"

	"github.com/xcop32221/xhs-auto-search/internal/types"
)

func TestFormatItem_FullRecord(t *testing.T) {
	post := types.PostRecord{
		NoteID:       "n1",
		Title:        "looking for a makeup artist",
		Author:       "someone",
		Description:  "wedding next month, need recommendations",
		LikeCount:    12,
		CommentCount: 3,
		CollectCount: 1,
		Tags:         []string{"makeup", "wedding", "chengdu", "extra"},
		ImageCount:   2,
		PublishTime:  "2026-08-01 10:00",
		URL:          "https://example.com/n1",
	}

	title, body := FormatItem(post)

	if !strings.HasPrefix(title, "📝 ") {
		t.Errorf("Expected item title prefix, got %q", title)
	}
	for _, want := range []string{"someone", "12", "wedding next month", "#makeup #wedding #chengdu", "https://example.com/n1", "2026-08-01 10:00", "Images: 2"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected body to contain %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, "#extra") {
		t.Error("Expected at most 3 tags in the body")
	}
}

func TestFormatItem_OmitsAbsentFields(t *testing.T) {
	_, body := FormatItem(types.PostRecord{Title: "bare"})

	for _, banned := range []string{"📄", "🏷️", "🔗", "🕒", "🖼️", "🎬", "👤"} {
		if strings.Contains(body, banned) {
			t.Errorf("Expected absent field marker %q to be omitted:\n%s", banned, body)
		}
	}
	// Counts are integers, zero is real data.
	if !strings.Contains(body, "Likes: 0") {
		t.Errorf("Expected zero counts rendered:\n%s", body)
	}
}

func TestFormatItem_TruncatesTitleByRunes(t *testing.T) {
	long := strings.Repeat("长", 40)
	title, _ := FormatItem(types.PostRecord{Title: long})

	if got := len([]rune(title)); got != len([]rune("📝 "))+30 {
		t.Errorf("Expected 30-rune title prefix, got %d runes: %q", got, title)
	}
}

func TestFormatItem_UntitledFallback(t *testing.T) {
	title, _ := FormatItem(types.PostRecord{})
	if title != "📝 (untitled)" {
		t.Errorf("Expected untitled fallback, got %q", title)
	}
}

func TestFormatSummary(t *testing.T) {
	title, body := FormatSummary(types.RunStats{
		Keywords:  []string{"foo", "bar"},
		Fetched:   5,
		New:       4,
		Accepted:  3,
		Rejected:  1,
		SeenTotal: 20,
	})

	if title != "📊 XHS Monitor" {
		t.Errorf("Unexpected summary title %q", title)
	}
	for _, want := range []string{"foo, bar", "Fetched: 5", "New: 4", "Accepted: 3", "Rejected: 1", "Seen total: 20"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected summary to contain %q:\n%s", want, body)
		}
	}
}
