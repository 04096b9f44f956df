/*
Package xhs implements the Xiaohongshu web API collaborators used by the
monitor: keyword search and note detail fetch. Authentication is the web
session cookie; all calls share one rate limiter to stay under the
platform's limits.
*/
package xhs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"

	"github.com/xcop32221/xhs-auto-search/internal/types"
)

const (
	defaultSearchURL = "https://edith.xiaohongshu.com/api/sns/web/v1/search/notes"
	defaultFeedURL   = "https://edith.xiaohongshu.com/api/sns/web/v1/feed"

	noteURLFormat = "https://www.xiaohongshu.com/explore/%s?xsec_token=%s&xsec_source=pc_search"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	requestTimeout = 15 * time.Second
)

// SortChoice is a search result ordering accepted by the search endpoint.
type SortChoice string

const (
	SortGeneral SortChoice = "general"
	SortNewest  SortChoice = "time_descending"
	SortHottest SortChoice = "popularity_descending"
)

// NoteWindow restricts search results to a recency window, in days.
// Zero means unbounded.
type NoteWindow int

const (
	WindowAll  NoteWindow = 0
	WindowDay  NoteWindow = 1
	WindowWeek NoteWindow = 7
)

// SearchParams carries one keyword plus the per-run parameters chosen for it.
type SearchParams struct {
	Keyword string
	Quota   int
	Sort    SortChoice
	Window  NoteWindow
	Geo     string
}

// Client talks to the Xiaohongshu web API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	cookie     string
	searchURL  string
	feedURL    string
}

// NewClient builds a client authenticated with the given web session cookie.
func NewClient(cookie string) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Jar:     jar,
		},
		// ~1 request every 2 seconds keeps us well under the web API limits
		limiter:   rate.NewLimiter(rate.Every(2*time.Second), 1),
		cookie:    cookie,
		searchURL: defaultSearchURL,
		feedURL:   defaultFeedURL,
	}, nil
}

type searchRequest struct {
	Keyword  string `json:"keyword"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	SearchID string `json:"search_id"`
	Sort     string `json:"sort"`
	NoteType int    `json:"note_type"`
	NoteTime int    `json:"note_time,omitempty"`
	Geo      string `json:"geo,omitempty"`
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Msg     string          `json:"msg"`
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
}

type searchData struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	ID        string    `json:"id"`
	ModelType string    `json:"model_type"`
	XsecToken string    `json:"xsec_token"`
	NoteCard  *noteCard `json:"note_card"`
}

type noteCard struct {
	DisplayTitle string `json:"display_title"`
	Title        string `json:"title"`
	Desc         string `json:"desc"`
	Type         string `json:"type"`
	Time         int64  `json:"time"`
	User         struct {
		Nickname string `json:"nickname"`
	} `json:"user"`
	InteractInfo struct {
		LikedCount     string `json:"liked_count"`
		CommentCount   string `json:"comment_count"`
		CollectedCount string `json:"collected_count"`
	} `json:"interact_info"`
	TagList []struct {
		Name string `json:"name"`
	} `json:"tag_list"`
	ImageList []json.RawMessage `json:"image_list"`
}

type feedRequest struct {
	SourceNoteID string   `json:"source_note_id"`
	XsecToken    string   `json:"xsec_token"`
	XsecSource   string   `json:"xsec_source"`
	ImageFormats []string `json:"image_formats"`
}

type feedData struct {
	Items []struct {
		NoteCard *noteCard `json:"note_card"`
	} `json:"items"`
}

// SearchNotes runs one keyword search and enriches each summary through the
// detail endpoint. A failed detail fetch degrades to the summary fields
// rather than dropping the note.
func (c *Client) SearchNotes(ctx context.Context, params SearchParams) ([]types.PostRecord, error) {
	if c.cookie == "" {
		return nil, fmt.Errorf("search cookie is not configured")
	}

	body := searchRequest{
		Keyword:  params.Keyword,
		Page:     1,
		PageSize: params.Quota,
		SearchID: newSearchID(),
		Sort:     string(params.Sort),
		NoteType: 0,
		NoteTime: int(params.Window),
		Geo:      params.Geo,
	}

	raw, err := c.postJSON(ctx, c.searchURL, body)
	if err != nil {
		return nil, err
	}

	var data searchData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	var posts []types.PostRecord
	for _, item := range data.Items {
		if item.ModelType != "" && item.ModelType != "note" {
			continue
		}
		if item.NoteCard == nil {
			continue
		}

		post := recordFromCard(item.ID, item.XsecToken, item.NoteCard)

		detail, err := c.NoteDetail(ctx, item.ID, item.XsecToken)
		if err != nil {
			log.Printf("Detail fetch failed for note %s, using summary fields: %v", item.ID, err)
		} else {
			post = mergeDetail(post, detail)
		}

		posts = append(posts, post)
		if len(posts) >= params.Quota {
			break
		}
	}

	return posts, nil
}

// NoteDetail fetches the fully populated record for one note. The xsec token
// from the search summary authorizes the fetch.
func (c *Client) NoteDetail(ctx context.Context, noteID, xsecToken string) (types.PostRecord, error) {
	body := feedRequest{
		SourceNoteID: noteID,
		XsecToken:    xsecToken,
		XsecSource:   "pc_search",
		ImageFormats: []string{"jpg", "webp"},
	}

	raw, err := c.postJSON(ctx, c.feedURL, body)
	if err != nil {
		return types.PostRecord{}, err
	}

	var data feedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return types.PostRecord{}, fmt.Errorf("failed to parse feed response: %w", err)
	}

	if len(data.Items) == 0 || data.Items[0].NoteCard == nil {
		return types.PostRecord{}, fmt.Errorf("feed response has no note card for %s", noteID)
	}

	return recordFromCard(noteID, xsecToken, data.Items[0].NoteCard), nil
}

func (c *Client) postJSON(ctx context.Context, url string, body any) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Cookie", c.cookie)
	req.Header.Set("Origin", "https://www.xiaohongshu.com")
	req.Header.Set("Referer", "https://www.xiaohongshu.com/")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received status %d from %s: %s", resp.StatusCode, url, truncate(string(respBody), 200))
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse API envelope: %w", err)
	}

	if !envelope.Success {
		return nil, fmt.Errorf("API error (code %d): %s", envelope.Code, envelope.Msg)
	}

	return envelope.Data, nil
}
