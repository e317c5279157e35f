package repository

import (
	"hangul_edu_backend/internal/model"

	"gorm.io/gorm"
)

type LevelTestResultRepository struct {
	DB *gorm.DB
}

func NewLevelTestResultRepository(db *gorm.DB) *LevelTestResultRepository {
	return &LevelTestResultRepository{DB: db}
}

func (r *LevelTestResultRepository) Create(result *model.LevelTestResult) error {
	return r.DB.Create(result).Error
}

func (r *LevelTestResultRepository) ListForAdmin(page, limit int, level string) ([]model.LevelTestResult, int64, error) {
	var results []model.LevelTestResult
	var total int64

	query := r.DB.Model(&model.LevelTestResult{})
	if level != "" {
		query = query.Where("level = ?", level)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&results).Error
	return results, total, err
}

// CountByLevel summarizes terminal results per band.
func (r *LevelTestResultRepository) CountByLevel() (map[string]int64, error) {
	type row struct {
		Level string
		N     int64
	}
	var rows []row
	err := r.DB.Model(&model.LevelTestResult{}).
		Select("level, count(*) as n").
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
