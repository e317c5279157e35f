package render

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"hangul_edu_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestProjectListEmpty(t *testing.T) {
	cfg := Config{Type: TypePostList, EmptyMessage: "게시물이 없습니다"}
	view := ProjectList(cfg, nil)

	assert.True(t, view.Empty)
	assert.Equal(t, "게시물이 없습니다", view.EmptyMessage)
	assert.NotNil(t, view.Cards)
	assert.Len(t, view.Cards, 0)

	// default copy when the config has none
	view = ProjectList(Config{Type: TypePostList}, nil)
	assert.Equal(t, "아직 등록된 게시물이 없습니다.", view.EmptyMessage)
}

func TestProjectListCards(t *testing.T) {
	cfg, ok := PageConfig("news")
	assert.True(t, ok)

	posts := []model.Post{*testPost()}
	view := ProjectList(cfg, posts)

	assert.False(t, view.Empty)
	assert.Len(t, view.Cards, 1)

	card := view.Cards[0]
	assert.Equal(t, "post-1", card.ID)
	assert.Equal(t, "봄 학기 개강 안내", card.Title)
	assert.Equal(t, "3월 새 학기가 시작됩니다.", card.Excerpt)
	// no explicit thumbnail, so the youtube fallback kicks in
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", card.Thumbnail)
}

func TestThumbnailFallbackOrder(t *testing.T) {
	p := testPost()
	p.ThumbnailURL = "/uploads/custom.png"
	card := projectCard(Config{}, p)
	assert.Equal(t, "/uploads/custom.png", card.Thumbnail, "explicit thumbnail wins over video")

	p.ThumbnailURL = ""
	p.YoutubeURL = ""
	card = projectCard(Config{}, p)
	assert.Equal(t, "/uploads/a.jpg", card.Thumbnail, "first image is the last resort")

	p.ImageURLs = nil
	card = projectCard(Config{}, p)
	assert.Equal(t, "", card.Thumbnail)
}

func TestExcerptTruncation(t *testing.T) {
	p := testPost()
	p.Summary = strings.Repeat("가", 200)
	card := projectCard(Config{ExcerptLength: 50}, p)

	assert.Equal(t, strings.Repeat("가", 50)+"…", card.Excerpt)
	assert.Equal(t, 51, len([]rune(card.Excerpt)))

	short := Truncate("짧은 글", 50)
	assert.Equal(t, "짧은 글", short)
}

func TestProjectDetail(t *testing.T) {
	cfg, _ := PageConfig("post")
	p := testPost()
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	p.PublishAt = &at
	links, _ := json.Marshal([]RelatedLink{{Label: "수업 안내", URL: "/classes"}})
	p.RelatedLinks = links

	view := ProjectDetail(cfg, p)

	assert.Equal(t, "post-1", view.ID)
	assert.Equal(t, "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ", view.EmbedURL)
	assert.Equal(t, "2026-03-02", view.PublishedAt)
	assert.Equal(t, []string{"/uploads/a.jpg", "/uploads/b.jpg"}, view.ImageURLs)
	assert.Len(t, view.RelatedLinks, 1)
	assert.Equal(t, "/classes", view.RelatedLinks[0].URL)
}

func TestMetaSkipsEmptyValues(t *testing.T) {
	rec := NewRecord(testPost())
	meta := resolveMeta(rec, []MetaField{
		{Label: "과정", Expr: "metadata.course"},
		{Label: "수료증", Expr: "metadata.certificate"},
	})

	assert.Len(t, meta, 1)
	assert.Equal(t, "과정", meta[0].Label)
	assert.Equal(t, "초급 1반", meta[0].Value)
}

func TestActionURLs(t *testing.T) {
	rec := NewRecord(testPost())
	actions := resolveActions(rec, []Action{
		{Label: "수업 신청", URL: "/classes", Style: "primary"},
		{Label: "영상", URL: "youtube_url"},
		{Label: "없음", URL: "metadata.missing"},
	})

	assert.Len(t, actions, 2)
	assert.Equal(t, "/classes", actions[0].URL, "literal URLs pass through untouched")
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", actions[1].URL)
}

func TestSourceListUnmarshal(t *testing.T) {
	var single SourceList
	assert.NoError(t, json.Unmarshal([]byte(`"news"`), &single))
	assert.Equal(t, SourceList{"news"}, single)

	var multi SourceList
	assert.NoError(t, json.Unmarshal([]byte(`["activity","news"]`), &multi))
	assert.Equal(t, SourceList{"activity", "news"}, multi)
}

func TestPageConfigs(t *testing.T) {
	for _, slug := range PageSlugs() {
		cfg, ok := PageConfig(slug)
		assert.True(t, ok, slug)
		if slug == "post" {
			assert.Equal(t, TypePostDetail, cfg.Type)
			continue
		}
		assert.Equal(t, TypePostList, cfg.Type, slug)
		assert.NotEmpty(t, cfg.Source, slug)
	}

	_, ok := PageConfig("nope")
	assert.False(t, ok)
}
