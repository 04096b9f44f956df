package xhs

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/xcop32221/xhs-auto-search/internal/types"
)

func recordFromCard(noteID, xsecToken string, card *noteCard) types.PostRecord {
	title := card.Title
	if title == "" {
		title = card.DisplayTitle
	}

	var tags []string
	for _, t := range card.TagList {
		if t.Name != "" {
			tags = append(tags, t.Name)
		}
	}

	post := types.PostRecord{
		NoteID:       noteID,
		XsecToken:    xsecToken,
		Title:        title,
		Author:       card.User.Nickname,
		Description:  card.Desc,
		LikeCount:    parseCount(card.InteractInfo.LikedCount),
		CommentCount: parseCount(card.InteractInfo.CommentCount),
		CollectCount: parseCount(card.InteractInfo.CollectedCount),
		Tags:         tags,
		ImageCount:   len(card.ImageList),
		HasVideo:     card.Type == "video",
	}

	if card.Time > 0 {
		post.PublishTime = time.UnixMilli(card.Time).Format("2006-01-02 15:04")
	}

	if noteID != "" {
		post.URL = fmt.Sprintf(noteURLFormat, noteID, xsecToken)
	}

	return post
}

// mergeDetail overlays detail-endpoint fields onto a search summary. The
// detail response is authoritative where populated; summary values survive
// where it is not.
func mergeDetail(summary, detail types.PostRecord) types.PostRecord {
	merged := detail
	merged.NoteID = summary.NoteID
	merged.XsecToken = summary.XsecToken
	merged.URL = summary.URL

	if merged.Title == "" {
		merged.Title = summary.Title
	}
	if merged.Author == "" {
		merged.Author = summary.Author
	}
	if merged.Description == "" {
		merged.Description = summary.Description
	}
	if merged.LikeCount == 0 {
		merged.LikeCount = summary.LikeCount
	}
	if merged.CommentCount == 0 {
		merged.CommentCount = summary.CommentCount
	}
	if merged.CollectCount == 0 {
		merged.CollectCount = summary.CollectCount
	}
	if len(merged.Tags) == 0 {
		merged.Tags = summary.Tags
	}
	if merged.ImageCount == 0 {
		merged.ImageCount = summary.ImageCount
	}
	if !merged.HasVideo {
		merged.HasVideo = summary.HasVideo
	}
	if merged.PublishTime == "" {
		merged.PublishTime = summary.PublishTime
	}

	return merged
}

// parseCount handles the API's count strings, which may be plain numbers or
// abbreviated forms like "1.2万" / "10万+".
func parseCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.TrimSuffix(s, "+")

	if rest, ok := strings.CutSuffix(s, "万"); ok {
		f, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return 0
		}
		return int(f * 10000)
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

const searchIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// newSearchID mimics the web client's per-search identifier: an opaque
// timestamp-plus-noise token the endpoint expects on every query.
func newSearchID() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatInt(time.Now().UnixMilli(), 36))
	for i := 0; i < 10; i++ {
		sb.WriteByte(searchIDAlphabet[rand.Intn(len(searchIDAlphabet))])
	}
	return sb.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
