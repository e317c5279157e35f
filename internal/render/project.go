package render

import (
	"encoding/json"
	"strings"

	"hangul_edu_backend/internal/model"
)

// Card is one rendered list entry.
type Card struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Excerpt   string            `json:"excerpt"`
	Thumbnail string            `json:"thumbnail"`
	Meta      []ResolvedMeta    `json:"meta,omitempty"`
	Actions   []ResolvedAction  `json:"actions,omitempty"`
	Style     map[string]string `json:"style,omitempty"`
}

type ResolvedMeta struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type ResolvedAction struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Style string `json:"style,omitempty"`
}

// ListView is the full list page payload. Empty is explicit so the page
// renders its "no posts" copy instead of a bare empty array.
type ListView struct {
	Cards        []Card `json:"cards"`
	Empty        bool   `json:"empty"`
	EmptyMessage string `json:"emptyMessage,omitempty"`
}

// DetailView is the detail page payload.
type DetailView struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Body         string           `json:"body"` // markdown, rendered client-side
	Thumbnail    string           `json:"thumbnail,omitempty"`
	EmbedURL     string           `json:"embedUrl,omitempty"` // privacy-enhanced, only for recognized videos
	ImageURLs    []string         `json:"imageUrls,omitempty"`
	Meta         []ResolvedMeta   `json:"meta,omitempty"`
	Actions      []ResolvedAction `json:"actions,omitempty"`
	RelatedLinks []RelatedLink    `json:"relatedLinks,omitempty"`
	Likes        int              `json:"likes"`
	Views        int              `json:"views"`
	PublishedAt  string           `json:"publishedAt,omitempty"`
}

type RelatedLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

const defaultExcerptLength = 120

// The default resolution chains, used when a page config leaves a display
// field unset.
const (
	defaultTitleExpr     = "title"
	defaultExcerptExpr   = "summary || body"
	defaultThumbnailExpr = "thumbnail_url || youtubeThumb(youtube_url) || image_urls"
)

// ProjectList turns fetched records into the list payload for cfg. The
// records are expected to arrive already filtered, ordered and limited by
// the store query.
func ProjectList(cfg Config, posts []model.Post) ListView {
	if len(posts) == 0 {
		msg := cfg.EmptyMessage
		if msg == "" {
			msg = "아직 등록된 게시물이 없습니다."
		}
		return ListView{Cards: []Card{}, Empty: true, EmptyMessage: msg}
	}

	cards := make([]Card, 0, len(posts))
	for i := range posts {
		cards = append(cards, projectCard(cfg, &posts[i]))
	}
	return ListView{Cards: cards}
}

func projectCard(cfg Config, p *model.Post) Card {
	rec := NewRecord(p)

	titleExpr := cfg.Display.Title
	if titleExpr == "" {
		titleExpr = defaultTitleExpr
	}
	excerptExpr := cfg.Display.Excerpt
	if excerptExpr == "" {
		excerptExpr = defaultExcerptExpr
	}
	thumbExpr := cfg.Display.Thumbnail
	if thumbExpr == "" {
		thumbExpr = defaultThumbnailExpr
	}

	length := cfg.ExcerptLength
	if length <= 0 {
		length = defaultExcerptLength
	}

	return Card{
		ID:        p.ID,
		Title:     Eval(rec, titleExpr),
		Excerpt:   Truncate(Eval(rec, excerptExpr), length),
		Thumbnail: Eval(rec, thumbExpr),
		Meta:      resolveMeta(rec, cfg.Display.Meta),
		Actions:   resolveActions(rec, cfg.Display.Actions),
		Style:     cfg.Style,
	}
}

// ProjectDetail builds the detail payload for a single record.
func ProjectDetail(cfg Config, p *model.Post) DetailView {
	rec := NewRecord(p)

	view := DetailView{
		ID:        p.ID,
		Title:     p.Title,
		Body:      p.Body,
		Thumbnail: Eval(rec, defaultThumbnailExpr),
		EmbedURL:  YoutubeEmbedURL(p.YoutubeURL),
		Meta:      resolveMeta(rec, cfg.Display.Meta),
		Actions:   resolveActions(rec, cfg.Display.Actions),
		Likes:     p.Likes,
		Views:     p.Views,
	}
	if p.PublishAt != nil {
		view.PublishedAt = p.PublishAt.Format("2006-01-02")
	}
	if imgs, ok := rec["image_urls"].([]string); ok {
		view.ImageURLs = imgs
	}
	view.RelatedLinks = decodeRelatedLinks(p)
	return view
}

func resolveMeta(rec Record, fields []MetaField) []ResolvedMeta {
	if len(fields) == 0 {
		return nil
	}
	out := make([]ResolvedMeta, 0, len(fields))
	for _, f := range fields {
		v := Eval(rec, f.Expr)
		if v == "" {
			continue
		}
		out = append(out, ResolvedMeta{Label: f.Label, Value: v})
	}
	return out
}

func resolveActions(rec Record, actions []Action) []ResolvedAction {
	if len(actions) == 0 {
		return nil
	}
	out := make([]ResolvedAction, 0, len(actions))
	for _, a := range actions {
		url := a.URL
		if needsEval(url) {
			url = Eval(rec, url)
		}
		if url == "" {
			continue
		}
		out = append(out, ResolvedAction{Label: a.Label, URL: url, Style: a.Style})
	}
	return out
}

// needsEval distinguishes literal URLs from template expressions.
func needsEval(s string) bool {
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "{{") || strings.Contains(s, "||") {
		return true
	}
	return !strings.Contains(s, "/") && !strings.Contains(s, ":")
}

func decodeRelatedLinks(p *model.Post) []RelatedLink {
	if len(p.RelatedLinks) == 0 {
		return nil
	}
	var links []RelatedLink
	if err := json.Unmarshal(p.RelatedLinks, &links); err != nil {
		return nil
	}
	return links
}

// Truncate cuts s to at most max runes, appending an ellipsis when content
// was dropped. Korean text makes byte-based cuts unsafe.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
