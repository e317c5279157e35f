package repository

import (
	"hangul_edu_backend/internal/model"

	"gorm.io/gorm"
)

type ClassRepository struct {
	DB *gorm.DB
}

func NewClassRepository(db *gorm.DB) *ClassRepository {
	return &ClassRepository{DB: db}
}

func (r *ClassRepository) Create(class *model.Class) error {
	return r.DB.Create(class).Error
}

func (r *ClassRepository) Update(class *model.Class) error {
	return r.DB.Save(class).Error
}

func (r *ClassRepository) Delete(id string) error {
	return r.DB.Delete(&model.Class{}, "id = ?", id).Error
}

func (r *ClassRepository) FindByID(id string) (*model.Class, error) {
	var class model.Class
	err := r.DB.First(&class, "id = ?", id).Error
	return &class, err
}

func (r *ClassRepository) ListOpen() ([]model.Class, error) {
	var classes []model.Class
	err := r.DB.Where("status = ?", model.ClassStatusOpen).
		Order("created_at desc").Find(&classes).Error
	return classes, err
}

func (r *ClassRepository) ListForAdmin(page, limit int) ([]model.Class, int64, error) {
	var classes []model.Class
	var total int64

	if err := r.DB.Model(&model.Class{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.DB.Order("created_at desc").Offset(offset).Limit(limit).Find(&classes).Error
	return classes, total, err
}
