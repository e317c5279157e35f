package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"hangul_edu_backend/internal/model"
)

// The template expression language is deliberately tiny and whitelisted:
//
//	expr        = alternative { "||" alternative }
//	alternative = literal | call | path
//	literal     = '...' | "..."
//	call        = "youtubeThumb(" path ")"
//	path        = ident { "." ident }
//
// Alternatives are tried left to right; the first non-empty result wins.
// Evaluation never fails: unknown paths, bad syntax and missing data all
// resolve to "".

var youtubeIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube(?:-nocookie)?\.com/watch\?(?:[^#&]*&)*v=([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube(?:-nocookie)?\.com/embed/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([A-Za-z0-9_-]{11})`),
}

// YoutubeID extracts the 11-character video id from any recognized YouTube
// URL form, or returns "".
func YoutubeID(url string) string {
	for _, re := range youtubeIDPatterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

// YoutubeThumbnail builds the canonical thumbnail URL for a video URL, or
// returns "" when no video id can be extracted.
func YoutubeThumbnail(url string) string {
	id := YoutubeID(url)
	if id == "" {
		return ""
	}
	return fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", id)
}

// YoutubeEmbedURL builds the privacy-enhanced embed URL, or "".
func YoutubeEmbedURL(url string) string {
	id := YoutubeID(url)
	if id == "" {
		return ""
	}
	return fmt.Sprintf("https://www.youtube-nocookie.com/embed/%s", id)
}

// Record is the flat view of a Post the evaluator resolves paths against.
type Record map[string]interface{}

// NewRecord flattens a Post into an evaluation record. The metadata bag is
// reachable under "metadata.<key>".
func NewRecord(p *model.Post) Record {
	rec := Record{
		"id":            p.ID,
		"category":      p.Category,
		"title":         p.Title,
		"summary":       p.Summary,
		"thumbnail_url": p.ThumbnailURL,
		"youtube_url":   p.YoutubeURL,
		"status":        p.Status,
		"body":          p.Body,
		"views":         p.Views,
		"likes":         p.Likes,
	}
	if p.PublishAt != nil {
		rec["publish_at"] = p.PublishAt.Format("2006-01-02")
	}
	if len(p.Metadata) > 0 {
		var meta map[string]interface{}
		if err := json.Unmarshal(p.Metadata, &meta); err == nil {
			rec["metadata"] = meta
		}
	}
	if len(p.Tags) > 0 {
		var tags []string
		if err := json.Unmarshal(p.Tags, &tags); err == nil {
			rec["tags"] = tags
		}
	}
	if len(p.ImageURLs) > 0 {
		var imgs []string
		if err := json.Unmarshal(p.ImageURLs, &imgs); err == nil {
			rec["image_urls"] = imgs
		}
	}
	return rec
}

// Lookup resolves a dotted path against the record. Intermediate maps may
// come from the metadata bag; arrays resolve their first element so
// "image_urls" can feed a thumbnail chain.
func (r Record) Lookup(path string) string {
	parts := strings.Split(path, ".")
	var cur interface{} = map[string]interface{}(r)
	for _, part := range parts {
		m, ok := toMap(cur)
		if !ok {
			return ""
		}
		cur, ok = m[part]
		if !ok {
			return ""
		}
	}
	return stringify(cur)
}

func toMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case Record:
		return map[string]interface{}(m), true
	case map[string]interface{}:
		return m, true
	}
	return nil, false
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		if len(t) == 0 {
			return ""
		}
		return t[0]
	case []interface{}:
		if len(t) == 0 {
			return ""
		}
		return stringify(t[0])
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Eval evaluates a template expression against the record. An optional
// "{{ ... }}" wrapper is tolerated since the configs were historically
// authored that way.
func Eval(rec Record, expr string) string {
	expr = strings.TrimSpace(expr)
	expr = strings.TrimPrefix(expr, "{{")
	expr = strings.TrimSuffix(expr, "}}")

	for _, alt := range strings.Split(expr, "||") {
		if v := evalAlternative(rec, strings.TrimSpace(alt)); v != "" {
			return v
		}
	}
	return ""
}

func evalAlternative(rec Record, alt string) string {
	if alt == "" {
		return ""
	}
	// quoted literal
	if len(alt) >= 2 {
		if (alt[0] == '\'' && alt[len(alt)-1] == '\'') || (alt[0] == '"' && alt[len(alt)-1] == '"') {
			return alt[1 : len(alt)-1]
		}
	}
	// single whitelisted function
	if strings.HasPrefix(alt, "youtubeThumb(") && strings.HasSuffix(alt, ")") {
		arg := strings.TrimSpace(alt[len("youtubeThumb(") : len(alt)-1])
		return YoutubeThumbnail(rec.Lookup(arg))
	}
	return rec.Lookup(alt)
}
