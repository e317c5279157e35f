package repository

import (
	"hangul_edu_backend/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

func (r *CommentRepository) FindByID(id string) (*model.Comment, error) {
	var c model.Comment
	err := r.DB.First(&c, "id = ?", id).Error
	return &c, err
}

func (r *CommentRepository) ListByPost(postID string, page, limit int) ([]model.Comment, int64, error) {
	var comments []model.Comment
	var total int64

	query := r.DB.Model(&model.Comment{}).Where("post_id = ?", postID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at asc").Offset(offset).Limit(limit).Find(&comments).Error
	return comments, total, err
}

func (r *CommentRepository) Delete(id string) error {
	return r.DB.Delete(&model.Comment{}, "id = ?", id).Error
}
