// Package video 提供饮水科普视频目录
package video

import (
	"context"
	"fmt"

	"github.com/thewaterbar/waterbar/internal/model"
	"github.com/thewaterbar/waterbar/internal/repository"
)

// Service 视频服务
type Service struct {
	videos *repository.VideoRepository
}

// NewService 创建视频服务
func NewService(videos *repository.VideoRepository) *Service {
	return &Service{videos: videos}
}

// List 按类别列出视频，category 为空时返回全部
func (s *Service) List(ctx context.Context, category string) ([]*model.Video, error) {
	videos, err := s.videos.List(category)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return videos, nil
}

// Get 获取单个视频
func (s *Service) Get(ctx context.Context, id string) (*model.Video, error) {
	return s.videos.GetByID(id)
}
