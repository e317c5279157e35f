package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/render"
	"hangul_edu_backend/internal/repository"
	"hangul_edu_backend/internal/util"
	"hangul_edu_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostService serves the config-driven content pages and the admin-side
// post CRUD. Public reads go through the render package; nothing here is
// page-specific.
type PostService struct {
	PostRepo    *repository.PostRepository
	CommentRepo *repository.CommentRepository
	Redis       *redis.Client
}

func NewPostService(postRepo *repository.PostRepository, commentRepo *repository.CommentRepository, rdb *redis.Client) *PostService {
	return &PostService{
		PostRepo:    postRepo,
		CommentRepo: commentRepo,
		Redis:       rdb,
	}
}

// pageCacheTTL bounds how stale a public list page can be after an edit.
const pageCacheTTL = time.Minute

// RenderPage executes a post-list page config. Rendered pages are cached
// in redis for pageCacheTTL; admin edits surface within that window.
func (s *PostService) RenderPage(slug string) (*render.ListView, error) {
	cfg, ok := render.PageConfig(slug)
	if !ok || cfg.Type != render.TypePostList {
		return nil, util.ErrPostNotFound
	}

	cacheKey := "page:" + slug
	if s.Redis != nil {
		if cached, err := s.Redis.Get(context.Background(), cacheKey).Bytes(); err == nil {
			var view render.ListView
			if json.Unmarshal(cached, &view) == nil {
				return &view, nil
			}
		}
	}

	field, direction := cfg.QueryOrder()
	posts, err := s.PostRepo.FindPublished(cfg.Source, field, direction, cfg.Limit)
	if err != nil {
		return nil, err
	}

	view := render.ProjectList(cfg, posts)

	if s.Redis != nil {
		if body, err := json.Marshal(view); err == nil {
			s.Redis.Set(context.Background(), cacheKey, body, pageCacheTTL)
		}
	}
	return &view, nil
}

// RenderDetail fetches and projects one post. A missing record maps to
// ErrPostNotFound, distinct from a query failure. View counting is
// deduplicated per client for ten minutes and never blocks the response.
func (s *PostService) RenderDetail(id, clientKey string) (*render.DetailView, error) {
	cfg, _ := render.PageConfig("post")

	post, err := s.PostRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}
	if post.Status != model.PostStatusPublished {
		return nil, util.ErrPostNotFound
	}

	if s.Redis != nil {
		viewKey := fmt.Sprintf("post_v:%s:c:%s", id, clientKey)
		isNewVisit, _ := s.Redis.SetNX(context.Background(), viewKey, "1", 10*time.Minute).Result()
		if isNewVisit {
			go func(pid string) {
				if err := s.PostRepo.IncrementViews(pid); err != nil {
					logger.Log.Warn("view counter update failed", zap.String("post_id", pid), zap.Error(err))
				}
			}(post.ID)
			post.Views++
		}
	}

	view := render.ProjectDetail(cfg, post)
	return &view, nil
}

// Like toggles the caller's like. Independent of comments; a failure here
// never affects them.
func (s *PostService) Like(postID, clientKey string) (bool, int, error) {
	if _, err := s.PostRepo.FindByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, util.ErrPostNotFound
		}
		return false, 0, err
	}

	liked, err := s.PostRepo.ToggleLike(postID, clientKey)
	if err != nil {
		return false, 0, err
	}
	post, err := s.PostRepo.FindByID(postID)
	if err != nil {
		return liked, 0, err
	}
	return liked, post.Likes, nil
}

type CommentRequest struct {
	Author string `json:"author" binding:"required,max=100"`
	Body   string `json:"body" binding:"required,max=1000"`
}

func (s *PostService) AddComment(postID string, req CommentRequest) (*model.Comment, error) {
	if _, err := s.PostRepo.FindByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		PostID: postID,
		Author: req.Author,
		Body:   req.Body,
	}
	if err := s.CommentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *PostService) GetComments(postID string, page, limit int) ([]model.Comment, int64, error) {
	return s.CommentRepo.ListByPost(postID, page, limit)
}

func (s *PostService) DeleteComment(id string) error {
	return s.CommentRepo.Delete(id)
}

// PostRequest is the admin create/update payload.
type PostRequest struct {
	Category     string                 `json:"category" binding:"required"`
	Title        string                 `json:"title" binding:"required"`
	Summary      string                 `json:"summary"`
	ThumbnailURL string                 `json:"thumbnailUrl"`
	ImageURLs    []string               `json:"imageUrls"`
	YoutubeURL   string                 `json:"youtubeUrl"`
	Tags         []string               `json:"tags"`
	Status       string                 `json:"status"`
	PublishAt    *time.Time             `json:"publishAt"`
	Body         string                 `json:"body"`
	RelatedLinks []render.RelatedLink   `json:"relatedLinks"`
	Metadata     map[string]interface{} `json:"metadata"`
}

func (s *PostService) CreatePost(authorID uint, req PostRequest) (*model.Post, error) {
	post, err := s.buildPost(req)
	if err != nil {
		return nil, err
	}
	post.AuthorID = authorID
	if err := s.PostRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost replaces the editable fields wholesale. Single-actor
// editing; last write wins.
func (s *PostService) UpdatePost(id string, req PostRequest) (*model.Post, error) {
	existing, err := s.PostRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}

	updated, err := s.buildPost(req)
	if err != nil {
		return nil, err
	}
	updated.UUIDBase = existing.UUIDBase
	updated.AuthorID = existing.AuthorID
	updated.Views = existing.Views
	updated.Likes = existing.Likes

	if err := s.PostRepo.Update(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *PostService) DeletePost(id string) error {
	if _, err := s.PostRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrPostNotFound
		}
		return err
	}
	return s.PostRepo.Delete(id)
}

func (s *PostService) ListForAdmin(page, limit int, category, status string) ([]model.Post, int64, error) {
	return s.PostRepo.ListForAdmin(page, limit, category, status)
}

func (s *PostService) GetPost(id string) (*model.Post, error) {
	post, err := s.PostRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *PostService) buildPost(req PostRequest) (*model.Post, error) {
	status := req.Status
	if status == "" {
		status = model.PostStatusDraft
	}
	if status != model.PostStatusDraft && status != model.PostStatusPublished {
		return nil, fmt.Errorf("invalid status %q", req.Status)
	}

	post := &model.Post{
		Category:     req.Category,
		Title:        req.Title,
		Summary:      req.Summary,
		ThumbnailURL: req.ThumbnailURL,
		YoutubeURL:   req.YoutubeURL,
		Status:       status,
		PublishAt:    req.PublishAt,
		Body:         req.Body,
	}
	if req.Status == model.PostStatusPublished && req.PublishAt == nil {
		now := time.Now()
		post.PublishAt = &now
	}

	var err error
	if post.ImageURLs, err = marshalOrNil(req.ImageURLs); err != nil {
		return nil, err
	}
	if post.Tags, err = marshalOrNil(req.Tags); err != nil {
		return nil, err
	}
	if post.RelatedLinks, err = marshalOrNil(req.RelatedLinks); err != nil {
		return nil, err
	}
	if post.Metadata, err = marshalOrNil(req.Metadata); err != nil {
		return nil, err
	}
	return post, nil
}

func marshalOrNil(v interface{}) (json.RawMessage, error) {
	switch t := v.(type) {
	case []string:
		if len(t) == 0 {
			return nil, nil
		}
	case []render.RelatedLink:
		if len(t) == 0 {
			return nil, nil
		}
	case map[string]interface{}:
		if len(t) == 0 {
			return nil, nil
		}
	}
	return json.Marshal(v)
}

// ProcessScheduledPublishes flips due drafts to published. Triggered by a
// background ticker.
func (s *PostService) ProcessScheduledPublishes() error {
	due, err := s.PostRepo.FindDueScheduled(time.Now())
	if err != nil {
		return err
	}
	for _, post := range due {
		if err := s.PostRepo.SetStatus(post.ID, model.PostStatusPublished); err != nil {
			logger.Log.Error("scheduled publish failed", zap.String("post_id", post.ID), zap.Error(err))
			continue
		}
		logger.Log.Info("post published on schedule", zap.String("post_id", post.ID), zap.String("title", post.Title))
	}
	return nil
}
