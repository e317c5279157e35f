package repository

import (
	"errors"
	"time"

	"hangul_edu_backend/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

// Columns a page config may order by. Anything else falls back to
// publish_at so a typo in a config cannot reach the SQL layer.
var orderableColumns = map[string]bool{
	"publish_at": true,
	"created_at": true,
	"views":      true,
	"likes":      true,
	"title":      true,
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

func (r *PostRepository) Update(post *model.Post) error {
	return r.DB.Save(post).Error
}

func (r *PostRepository) Delete(id string) error {
	return r.DB.Delete(&model.Post{}, "id = ?", id).Error
}

func (r *PostRepository) FindByID(id string) (*model.Post, error) {
	var post model.Post
	err := r.DB.First(&post, "id = ?", id).Error
	return &post, err
}

// FindPublished runs the list query for a page config: category in-set
// filter, published status, publish time reached, ordering and limit all
// pushed into the query. Ties keep insertion order as returned by the
// store.
func (r *PostRepository) FindPublished(categories []string, orderField, direction string, limit int) ([]model.Post, error) {
	if !orderableColumns[orderField] {
		orderField = "publish_at"
	}
	if direction != "asc" {
		direction = "desc"
	}

	query := r.DB.Model(&model.Post{}).
		Where("status = ?", model.PostStatusPublished).
		Where("publish_at IS NULL OR publish_at <= ?", time.Now())
	if len(categories) == 1 {
		query = query.Where("category = ?", categories[0])
	} else if len(categories) > 1 {
		query = query.Where("category IN ?", categories)
	}

	query = query.Order(orderField + " " + direction)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var posts []model.Post
	err := query.Find(&posts).Error
	return posts, err
}

// ListForAdmin includes drafts.
func (r *PostRepository) ListForAdmin(page, limit int, category, status string) ([]model.Post, int64, error) {
	var posts []model.Post
	var total int64

	query := r.DB.Model(&model.Post{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, total, err
}

func (r *PostRepository) IncrementViews(id string) error {
	return r.DB.Model(&model.Post{}).Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

// ToggleLike registers or removes a like for the client key and keeps the
// denormalized counter in step. Returns whether the post is liked after
// the call.
func (r *PostRepository) ToggleLike(postID, clientKey string) (bool, error) {
	var liked bool
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var reaction model.PostReaction
		err := tx.Where("post_id = ? AND client_key = ?", postID, clientKey).First(&reaction).Error
		switch {
		case err == nil:
			if err := tx.Delete(&reaction).Error; err != nil {
				return err
			}
			liked = false
			return tx.Model(&model.Post{}).Where("id = ? AND likes > 0", postID).
				Update("likes", gorm.Expr("likes - 1")).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&model.PostReaction{PostID: postID, ClientKey: clientKey}).Error; err != nil {
				return err
			}
			liked = true
			return tx.Model(&model.Post{}).Where("id = ?", postID).
				Update("likes", gorm.Expr("likes + 1")).Error
		default:
			return err
		}
	})
	return liked, err
}

// FindDueScheduled returns drafts whose publish time has arrived.
func (r *PostRepository) FindDueScheduled(now time.Time) ([]model.Post, error) {
	var posts []model.Post
	err := r.DB.Where("status = ? AND publish_at IS NOT NULL AND publish_at <= ?",
		model.PostStatusDraft, now).Find(&posts).Error
	return posts, err
}

func (r *PostRepository) SetStatus(id, status string) error {
	return r.DB.Model(&model.Post{}).Where("id = ?", id).Update("status", status).Error
}
