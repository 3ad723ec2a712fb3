package repository

import (
	"github.com/thewaterbar/waterbar/internal/model"
	"gorm.io/gorm"
)

// VideoRepository 视频库数据访问
type VideoRepository struct {
	db *gorm.DB
}

// NewVideoRepository 创建视频仓库
func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// List 列出视频，可按类别筛选
func (r *VideoRepository) List(category string) ([]*model.Video, error) {
	var videos []*model.Video
	query := r.db.Order("sort ASC, created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Find(&videos).Error
	return videos, err
}

// GetByID 获取视频
func (r *VideoRepository) GetByID(id string) (*model.Video, error) {
	var video model.Video
	err := r.db.Where("id = ?", id).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}
