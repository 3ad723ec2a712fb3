package handler

import (
	"github.com/thewaterbar/waterbar/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Auth      *AuthHandler
	Profile   *ProfileHandler
	Hydration *HydrationHandler
	Chat      *ChatHandler
	Dashboard *DashboardHandler
	Weather   *WeatherHandler
	Video     *VideoHandler
	Admin     *AdminHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(svc),
		Profile:   NewProfileHandler(svc),
		Hydration: NewHydrationHandler(svc),
		Chat:      NewChatHandler(svc),
		Dashboard: NewDashboardHandler(svc),
		Weather:   NewWeatherHandler(svc),
		Video:     NewVideoHandler(svc),
		Admin:     NewAdminHandler(svc),
	}
}
