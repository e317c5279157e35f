package repository

import (
	"hangul_edu_backend/internal/model"

	"gorm.io/gorm"
)

type ApplicationRepository struct {
	DB *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{DB: db}
}

func (r *ApplicationRepository) Create(app *model.ClassApplication) error {
	return r.DB.Create(app).Error
}

func (r *ApplicationRepository) Update(app *model.ClassApplication) error {
	return r.DB.Save(app).Error
}

func (r *ApplicationRepository) FindByID(id string) (*model.ClassApplication, error) {
	var app model.ClassApplication
	err := r.DB.First(&app, "id = ?", id).Error
	return &app, err
}

func (r *ApplicationRepository) ListForAdmin(page, limit int, status, classID string) ([]model.ClassApplication, int64, error) {
	var apps []model.ClassApplication
	var total int64

	query := r.DB.Model(&model.ClassApplication{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if classID != "" {
		query = query.Where("class_id = ?", classID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&apps).Error
	return apps, total, err
}

func (r *ApplicationRepository) CountByStatus(classID string) (map[string]int64, error) {
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	query := r.DB.Model(&model.ClassApplication{}).Select("status, count(*) as n")
	if classID != "" {
		query = query.Where("class_id = ?", classID)
	}
	if err := query.Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.N
	}
	return counts, nil
}
