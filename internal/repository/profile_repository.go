package repository

import (
	"errors"

	"github.com/thewaterbar/waterbar/internal/model"
	"gorm.io/gorm"
)

// ProfileRepository 档案数据访问
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 创建档案仓库
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create 创建档案
func (r *ProfileRepository) Create(profile *model.Profile) error {
	return r.db.Create(profile).Error
}

// GetByID 获取档案
func (r *ProfileRepository) GetByID(id string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.Where("id = ?", id).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update 更新档案
func (r *ProfileRepository) Update(profile *model.Profile) error {
	return r.db.Save(profile).Error
}

// GetOrCreate 获取档案，不存在则以默认值创建
func (r *ProfileRepository) GetOrCreate(id string) (*model.Profile, error) {
	profile, err := r.GetByID(id)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile = &model.Profile{
		ID:            id,
		WeightKG:      model.DefaultWeightKG,
		ActivityLevel: model.DefaultActivityLevel,
	}
	if err := r.Create(profile); err != nil {
		return nil, err
	}
	return profile, nil
}
