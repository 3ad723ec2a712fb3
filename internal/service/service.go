package service

import (
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thewaterbar/waterbar/internal/config"
	"github.com/thewaterbar/waterbar/internal/provider/openweather"
	"github.com/thewaterbar/waterbar/internal/repository"
	"github.com/thewaterbar/waterbar/internal/service/auth"
	"github.com/thewaterbar/waterbar/internal/service/chat"
	"github.com/thewaterbar/waterbar/internal/service/dashboard"
	"github.com/thewaterbar/waterbar/internal/service/hydration"
	"github.com/thewaterbar/waterbar/internal/service/profile"
	"github.com/thewaterbar/waterbar/internal/service/video"
)

// Services 服务集合
type Services struct {
	Auth      *auth.Service
	Profile   *profile.Service
	Hydration *hydration.Service
	Chat      *chat.Service
	Dashboard *dashboard.Service
	Video     *video.Service

	Weather *openweather.Client

	Config *config.Config
}

// NewServices 创建所有服务
func NewServices(repo *repository.Repositories, cfg *config.Config, redisClient *redis.Client) (*Services, error) {
	// 对话延续状态存 Redis，24 小时过期，与会话窗口对齐
	stateStore := chat.NewRedisCheckpointStore(redisClient, 24*time.Hour)
	stateMgr := chat.NewStateManager(stateStore, chat.DefaultStateConfig())

	profileSvc := profile.NewService(repo.Profile)
	hydrationSvc := hydration.NewService(repo.Session, repo.Hydration, repo.Profile, repo.Conversation, stateMgr)
	chatSvc := chat.NewService(cfg, stateMgr, hydrationSvc, profileSvc, repo.Conversation)
	dashboardSvc := dashboard.NewService(chatSvc, hydrationSvc)

	weatherTimeout := time.Duration(cfg.Weather.Timeout) * time.Second
	if weatherTimeout <= 0 {
		weatherTimeout = 10 * time.Second
	}
	weatherClient := &openweather.Client{
		APIKey:     cfg.Weather.APIKey,
		BaseURL:    cfg.Weather.BaseURL,
		HTTPClient: &http.Client{Timeout: weatherTimeout},
	}

	return &Services{
		Auth:      auth.NewService(repo),
		Profile:   profileSvc,
		Hydration: hydrationSvc,
		Chat:      chatSvc,
		Dashboard: dashboardSvc,
		Video:     video.NewService(repo.Video),
		Weather:   weatherClient,
		Config:    cfg,
	}, nil
}
