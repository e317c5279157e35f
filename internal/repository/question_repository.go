package repository

import (
	"hangul_edu_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// FindActive loads the whole active pool; the engine partitions it by
// level in memory.
func (r *QuestionRepository) FindActive() ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("active = ?", true).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	return &q, err
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

func (r *QuestionRepository) ListForAdmin(page, limit int, level string) ([]model.Question, int64, error) {
	var questions []model.Question
	var total int64

	query := r.DB.Model(&model.Question{})
	if level != "" {
		query = query.Where("level = ?", level)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("level asc, id asc").Offset(offset).Limit(limit).Find(&questions).Error
	return questions, total, err
}

// CountActiveByLevel reports pool sizes per band, used by the admin
// dashboard to spot degraded levels before learners do.
func (r *QuestionRepository) CountActiveByLevel() (map[string]int64, error) {
	type row struct {
		Level string
		N     int64
	}
	var rows []row
	err := r.DB.Model(&model.Question{}).
		Select("level, count(*) as n").
		Where("active = ?", true).
		Group("level").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Level] = rw.N
	}
	return counts, nil
}
