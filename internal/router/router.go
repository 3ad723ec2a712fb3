package router

import (
	"github.com/gin-gonic/gin"

	"github.com/thewaterbar/waterbar/internal/handler"
	"github.com/thewaterbar/waterbar/internal/middleware"
	"github.com/thewaterbar/waterbar/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, svc *service.Services) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		handler.MethodNotAllowed(c, "Method not allowed")
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 认证
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
			auth.GET("/validate", h.Auth.ValidateToken)

			authed := auth.Group("", middleware.RequireAuth(svc))
			{
				authed.GET("/me", h.Auth.Me)
				authed.POST("/logout", h.Auth.Logout)
				authed.POST("/change-password", h.Auth.ChangePassword)
			}
		}

		// 天气与逆地理代理，无需登录
		weather := v1.Group("/weather")
		{
			weather.GET("/current", h.Weather.CurrentWeather)
			weather.GET("/geocode", h.Weather.ReverseGeocode)
		}

		// 视频目录，无需登录
		videos := v1.Group("/videos")
		{
			videos.GET("", h.Video.List)
			videos.GET("/:id", h.Video.Get)
		}

		// 业务接口需要登录
		authed := v1.Group("", middleware.RequireAuth(svc))
		{
			// 用户档案
			profile := authed.Group("/profile")
			{
				profile.GET("", h.Profile.Get)
				profile.PUT("", h.Profile.Update)
				profile.GET("/needs", h.Profile.Needs)
			}

			// 补水会话
			sessions := authed.Group("/sessions")
			{
				sessions.POST("", h.Hydration.StartSession)
				sessions.POST("/:id/end", h.Hydration.EndSession)
				sessions.GET("/:id/status", h.Hydration.Status)
				sessions.GET("/:id/recommendations", h.Hydration.Recommendations)
			}

			// 摄入记录
			events := authed.Group("/events")
			{
				events.POST("", h.Hydration.LogEvent)
				events.DELETE("/:id", h.Hydration.DeleteEvent)
			}

			// AI 教练对话
			chat := authed.Group("/chat")
			{
				chat.POST("", h.Chat.Chat)
				chat.POST("/stream", h.Chat.Stream)
			}

			// 仪表盘
			authed.POST("/dashboard", h.Dashboard.Generate)

			// 管理端
			admin := authed.Group("/admin", middleware.RequireAdmin())
			{
				admin.POST("/migrate-users", h.Admin.MigrateUsers)
			}
		}
	}

	return r
}
