package render

import (
	"encoding/json"
	"testing"

	"hangul_edu_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestYoutubeID(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":           "dQw4w9WgXcQ",
		"https://www.youtube.com/watch?list=abc&v=dQw4w9WgXcQ":  "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                          "dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ":             "dQw4w9WgXcQ",
		"https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ":    "dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ":            "dQw4w9WgXcQ",
		"https://example.org/watch?v=dQw4w9WgXcQ":               "",
		"not a url":                                             "",
		"":                                                      "",
		"https://www.youtube.com/watch?v=tooshort":              "",
	}
	for url, want := range cases {
		assert.Equal(t, want, YoutubeID(url), "url %q", url)
	}
}

func TestYoutubeThumbnailAndEmbed(t *testing.T) {
	url := "https://youtu.be/dQw4w9WgXcQ"
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", YoutubeThumbnail(url))
	assert.Equal(t, "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ", YoutubeEmbedURL(url))

	assert.Equal(t, "", YoutubeThumbnail("https://example.org/video"))
	assert.Equal(t, "", YoutubeEmbedURL(""))
}

func testPost() *model.Post {
	meta, _ := json.Marshal(map[string]interface{}{
		"student_name": "김하늘",
		"course":       "초급 1반",
		"satisfaction": 4.5,
	})
	imgs, _ := json.Marshal([]string{"/uploads/a.jpg", "/uploads/b.jpg"})
	p := &model.Post{
		Category:   model.CategoryNews,
		Title:      "봄 학기 개강 안내",
		Summary:    "3월 새 학기가 시작됩니다.",
		YoutubeURL: "https://youtu.be/dQw4w9WgXcQ",
		Body:       "본문입니다.",
		Metadata:   meta,
		ImageURLs:  imgs,
	}
	p.ID = "post-1"
	return p
}

func TestRecordLookup(t *testing.T) {
	rec := NewRecord(testPost())

	assert.Equal(t, "봄 학기 개강 안내", rec.Lookup("title"))
	assert.Equal(t, "김하늘", rec.Lookup("metadata.student_name"))
	assert.Equal(t, "4.5", rec.Lookup("metadata.satisfaction"))
	assert.Equal(t, "/uploads/a.jpg", rec.Lookup("image_urls"), "arrays resolve to their first element")
	assert.Equal(t, "", rec.Lookup("metadata.missing"))
	assert.Equal(t, "", rec.Lookup("no.such.path"))
}

func TestEvalFallbackChain(t *testing.T) {
	rec := NewRecord(testPost())

	assert.Equal(t, "3월 새 학기가 시작됩니다.", Eval(rec, "summary || body"))
	assert.Equal(t, "본문입니다.", Eval(rec, "no_field || body"))
	assert.Equal(t, "익명", Eval(rec, "missing || '익명'"))
	assert.Equal(t, "fallback", Eval(rec, `nothing || "fallback"`))

	// wrapper tolerated
	assert.Equal(t, "봄 학기 개강 안내", Eval(rec, "{{ title }}"))
}

func TestEvalYoutubeThumb(t *testing.T) {
	rec := NewRecord(testPost())
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg",
		Eval(rec, "thumbnail_url || youtubeThumb(youtube_url)"))

	// no video and no thumbnail: resolves to empty, never errors
	bare := &model.Post{Title: "x"}
	assert.Equal(t, "", Eval(NewRecord(bare), "thumbnail_url || youtubeThumb(youtube_url) || image_urls"))
}

func TestEvalNeverErrors(t *testing.T) {
	rec := NewRecord(&model.Post{})
	for _, expr := range []string{"", "||", "garbage..path", "youtubeThumb(", "{{ }}"} {
		assert.Equal(t, "", Eval(rec, expr))
	}
}
