package render

import "hangul_edu_backend/internal/model"

// Page configs are authored here, not persisted. Each public content page
// of the site resolves its slug to one of these.
var pages = map[string]Config{
	"news": {
		Type:          TypePostList,
		Source:        SourceList{model.CategoryNews},
		Order:         Order{Field: "publish_at", Direction: "desc"},
		Limit:         20,
		ExcerptLength: 120,
		EmptyMessage:  "등록된 소식이 없습니다.",
		Display: Display{
			Meta: []MetaField{
				{Label: "날짜", Expr: "publish_at"},
			},
		},
	},
	"achievements": {
		Type:          TypePostList,
		Source:        SourceList{model.CategoryAchievement},
		Order:         Order{Field: "publish_at", Direction: "desc"},
		Limit:         12,
		ExcerptLength: 80,
		EmptyMessage:  "아직 인증된 학습 성과가 없습니다.",
		Display: Display{
			Thumbnail: "thumbnail_url || youtubeThumb(youtube_url) || image_urls",
			Meta: []MetaField{
				{Label: "수료 과정", Expr: "metadata.course || '-'"},
				{Label: "인증", Expr: "metadata.certificate"},
			},
		},
	},
	"surveys": {
		Type:          TypePostList,
		Source:        SourceList{model.CategorySurvey},
		Order:         Order{Field: "publish_at", Direction: "desc"},
		Limit:         10,
		EmptyMessage:  "설문 결과가 아직 없습니다.",
		ExcerptLength: 100,
		Display: Display{
			Meta: []MetaField{
				{Label: "응답 수", Expr: "metadata.responses"},
				{Label: "만족도", Expr: "metadata.satisfaction"},
			},
		},
	},
	"testimonials": {
		Type:          TypePostList,
		Source:        SourceList{model.CategoryTestimonial},
		Order:         Order{Field: "publish_at", Direction: "desc"},
		Limit:         12,
		ExcerptLength: 160,
		EmptyMessage:  "아직 등록된 후기가 없습니다.",
		Display: Display{
			Thumbnail: "thumbnail_url || youtubeThumb(youtube_url)",
			Meta: []MetaField{
				{Label: "이름", Expr: "metadata.student_name || '익명'"},
				{Label: "국가", Expr: "metadata.country"},
			},
		},
	},
	"activities": {
		Type:          TypePostList,
		Source:        SourceList{model.CategoryActivity, model.CategoryNews},
		Order:         Order{Field: "publish_at", Direction: "desc"},
		Limit:         20,
		ExcerptLength: 120,
		EmptyMessage:  "활동 소식이 없습니다.",
	},
	"post": {
		Type: TypePostDetail,
		Display: Display{
			Meta: []MetaField{
				{Label: "날짜", Expr: "publish_at"},
				{Label: "분류", Expr: "category"},
			},
			Actions: []Action{
				{Label: "수업 신청", URL: "/classes", Style: "primary"},
			},
		},
	},
}

// PageConfig resolves a page slug. The second return is false for unknown
// slugs.
func PageConfig(slug string) (Config, bool) {
	cfg, ok := pages[slug]
	return cfg, ok
}

// PageSlugs lists the authored slugs; used by the admin console to show
// which pages exist.
func PageSlugs() []string {
	out := make([]string, 0, len(pages))
	for slug := range pages {
		out = append(out, slug)
	}
	return out
}
