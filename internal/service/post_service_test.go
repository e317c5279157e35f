package service

import (
	"testing"
	"time"

	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/repository"
	"hangul_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostFixture(t *testing.T) *PostService {
	t.Helper()
	db := newTestDB(t)
	return NewPostService(repository.NewPostRepository(db), repository.NewCommentRepository(db), nil)
}

func TestCreatePostDefaultsToDraft(t *testing.T) {
	svc := newPostFixture(t)

	post, err := svc.CreatePost(1, PostRequest{
		Category: model.CategoryNews,
		Title:    "새 소식",
		Body:     "내용",
	})
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusDraft, post.Status)
	assert.NotEmpty(t, post.ID)
	assert.EqualValues(t, 1, post.AuthorID)
}

func TestCreatePostInvalidStatus(t *testing.T) {
	svc := newPostFixture(t)
	_, err := svc.CreatePost(1, PostRequest{Category: model.CategoryNews, Title: "x", Status: "archived"})
	assert.Error(t, err)
}

func TestPublishedPostGetsPublishTime(t *testing.T) {
	svc := newPostFixture(t)

	post, err := svc.CreatePost(1, PostRequest{
		Category: model.CategoryNews,
		Title:    "즉시 공개",
		Status:   model.PostStatusPublished,
	})
	require.NoError(t, err)
	require.NotNil(t, post.PublishAt)
	assert.WithinDuration(t, time.Now(), *post.PublishAt, time.Minute)
}

func TestRenderPage(t *testing.T) {
	svc := newPostFixture(t)

	_, err := svc.CreatePost(1, PostRequest{
		Category:   model.CategoryNews,
		Title:      "공개 소식",
		Summary:    "요약",
		Status:     model.PostStatusPublished,
		YoutubeURL: "https://youtu.be/dQw4w9WgXcQ",
	})
	require.NoError(t, err)

	// drafts never surface
	_, err = svc.CreatePost(1, PostRequest{Category: model.CategoryNews, Title: "초안"})
	require.NoError(t, err)

	view, err := svc.RenderPage("news")
	require.NoError(t, err)
	assert.False(t, view.Empty)
	require.Len(t, view.Cards, 1)
	assert.Equal(t, "공개 소식", view.Cards[0].Title)
	assert.Equal(t, "요약", view.Cards[0].Excerpt)
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", view.Cards[0].Thumbnail)
}

func TestRenderPageEmptyState(t *testing.T) {
	svc := newPostFixture(t)

	view, err := svc.RenderPage("achievements")
	require.NoError(t, err)
	assert.True(t, view.Empty)
	assert.Equal(t, "아직 인증된 학습 성과가 없습니다.", view.EmptyMessage)
}

func TestRenderPageUnknownSlug(t *testing.T) {
	svc := newPostFixture(t)
	_, err := svc.RenderPage("nope")
	assert.ErrorIs(t, err, util.ErrPostNotFound)

	// the detail config is not a list page
	_, err = svc.RenderPage("post")
	assert.ErrorIs(t, err, util.ErrPostNotFound)
}

func TestRenderDetail(t *testing.T) {
	svc := newPostFixture(t)
	post, err := svc.CreatePost(1, PostRequest{
		Category:   model.CategoryNews,
		Title:      "공개 글",
		Body:       "본문입니다.",
		Status:     model.PostStatusPublished,
		YoutubeURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	})
	require.NoError(t, err)

	// the fixture runs without redis; detail must still render
	view, err := svc.RenderDetail(post.ID, "client-a")
	require.NoError(t, err)
	assert.Equal(t, post.ID, view.ID)
	assert.Equal(t, "공개 글", view.Title)
	assert.Equal(t, "본문입니다.", view.Body)
	assert.Equal(t, "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ", view.EmbedURL)
}

func TestRenderDetailMissingPost(t *testing.T) {
	svc := newPostFixture(t)
	_, err := svc.RenderDetail("missing-id", "client-a")
	assert.ErrorIs(t, err, util.ErrPostNotFound)
}

func TestRenderDetailHidesDrafts(t *testing.T) {
	svc := newPostFixture(t)
	draft, err := svc.CreatePost(1, PostRequest{Category: model.CategoryNews, Title: "초안"})
	require.NoError(t, err)

	_, err = svc.RenderDetail(draft.ID, "client-a")
	assert.ErrorIs(t, err, util.ErrPostNotFound)
}

func TestUpdatePostKeepsCounters(t *testing.T) {
	svc := newPostFixture(t)
	post, err := svc.CreatePost(1, PostRequest{Category: model.CategoryNews, Title: "원본", Status: model.PostStatusPublished})
	require.NoError(t, err)

	require.NoError(t, svc.PostRepo.IncrementViews(post.ID))

	updated, err := svc.UpdatePost(post.ID, PostRequest{Category: model.CategoryNews, Title: "수정본", Status: model.PostStatusPublished})
	require.NoError(t, err)
	assert.Equal(t, "수정본", updated.Title)
	assert.Equal(t, post.ID, updated.ID)

	stored, err := svc.GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Views, "counters survive edits")
}

func TestCommentsRequireExistingPost(t *testing.T) {
	svc := newPostFixture(t)
	_, err := svc.AddComment("missing", CommentRequest{Author: "익명", Body: "안녕하세요"})
	assert.ErrorIs(t, err, util.ErrPostNotFound)

	post, err := svc.CreatePost(1, PostRequest{Category: model.CategoryNews, Title: "글", Status: model.PostStatusPublished})
	require.NoError(t, err)

	comment, err := svc.AddComment(post.ID, CommentRequest{Author: "익명", Body: "안녕하세요"})
	require.NoError(t, err)
	assert.Equal(t, post.ID, comment.PostID)

	list, total, err := svc.GetComments(post.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
}

func TestProcessScheduledPublishes(t *testing.T) {
	svc := newPostFixture(t)
	due := time.Now().Add(-time.Minute)
	_, err := svc.CreatePost(1, PostRequest{
		Category:  model.CategoryNews,
		Title:     "예약",
		PublishAt: &due,
	})
	require.NoError(t, err)

	require.NoError(t, svc.ProcessScheduledPublishes())

	view, err := svc.RenderPage("news")
	require.NoError(t, err)
	require.Len(t, view.Cards, 1)
	assert.Equal(t, "예약", view.Cards[0].Title)
}
