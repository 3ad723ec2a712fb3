package profile

import (
	"context"
	"fmt"

	"github.com/thewaterbar/waterbar/internal/model"
	"github.com/thewaterbar/waterbar/internal/repository"
)

// Service 档案服务
type Service struct {
	profiles repository.ProfileStore
}

// NewService 创建档案服务
func NewService(profiles repository.ProfileStore) *Service {
	return &Service{profiles: profiles}
}

// Get 获取档案，首次访问时以默认值创建
func (s *Service) Get(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.profiles.GetOrCreate(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// Needs 获取档案并计算每日目标
func (s *Service) Needs(ctx context.Context, userID string) (*model.Profile, HydrationNeeds, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, HydrationNeeds{}, err
	}
	return profile, CalculateNeeds(profile), nil
}

// UpdateRequest 更新档案请求，零值字段不改动
type UpdateRequest struct {
	WeightKG        float64 `json:"weight_kg"`
	HeightCM        float64 `json:"height_cm"`
	ActivityLevel   string  `json:"activity_level"`
	BodyType        string  `json:"body_type"`
	Age             int     `json:"age"`
	Gender          string  `json:"gender"`
	Location        string  `json:"location"`
	UnitsPreference string  `json:"units_preference"`
}

// Update 更新档案
func (s *Service) Update(ctx context.Context, userID string, req *UpdateRequest) (*model.Profile, error) {
	profile, err := s.profiles.GetOrCreate(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if req.WeightKG > 0 {
		profile.WeightKG = req.WeightKG
	}
	if req.HeightCM > 0 {
		profile.HeightCM = req.HeightCM
	}
	if req.ActivityLevel != "" {
		profile.ActivityLevel = req.ActivityLevel
	}
	if req.BodyType != "" {
		profile.BodyType = req.BodyType
	}
	if req.Age > 0 {
		profile.Age = req.Age
	}
	if req.Gender != "" {
		profile.Gender = req.Gender
	}
	if req.Location != "" {
		profile.Location = req.Location
	}
	if req.UnitsPreference != "" {
		profile.UnitsPreference = req.UnitsPreference
	}

	if err := s.profiles.Update(profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return profile, nil
}
