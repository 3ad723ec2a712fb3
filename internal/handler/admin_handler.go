package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/thewaterbar/waterbar/internal/service"
)

// AdminHandler 管理端处理器
type AdminHandler struct {
	svc *service.Services
}

// NewAdminHandler 创建管理端处理器
func NewAdminHandler(svc *service.Services) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// MigrateUsers 把历史报名表用户迁入认证体系
func (h *AdminHandler) MigrateUsers(c *gin.Context) {
	results, err := h.svc.Auth.MigrateLegacyUsers(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, gin.H{
		"migrated": len(results),
		"results":  results,
	})
}
