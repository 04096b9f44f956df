package ai

import (
	"context"
	"testing"

	"github.com/xcop32221/xhs-auto-search/internal/types"
)

func TestFromConfig_NoCredentialAcceptsAll(t *testing.T) {
	c := FromConfig(Config{})

	posts := []types.PostRecord{
		{NoteID: "n1", Title: "looking for a makeup artist"},
		{NoteID: "n2", Title: "studio promo, book now"},
		{},
	}
	for _, post := range posts {
		if got := c.Classify(context.Background(), post); got != types.VerdictAccept {
			t.Errorf("Expected ACCEPT with classifier disabled, got %v for %q", got, post.Title)
		}
	}
}

func TestParseVerdict(t *testing.T) {
	cases := []struct {
		reply string
		want  types.Verdict
	}{
		{"YES", types.VerdictAccept},
		{"yes", types.VerdictAccept},
		{" Yes.", types.VerdictAccept},
		{"NO", types.VerdictReject},
		{"no", types.VerdictReject},
		{"No, this is an advertisement", types.VerdictReject},
		{"", types.VerdictAccept},
		{"maybe?", types.VerdictAccept},
	}

	for _, c := range cases {
		if got := parseVerdict(c.reply); got != c.want {
			t.Errorf("parseVerdict(%q) = %v, want %v", c.reply, got, c.want)
		}
	}
}

func TestUserContent(t *testing.T) {
	post := types.PostRecord{Title: "t", Author: "a", Description: "d"}
	got := userContent(post)
	want := "Title: t\nAuthor: a\nContent: d"
	if got != want {
		t.Errorf("userContent = %q, want %q", got, want)
	}
}
