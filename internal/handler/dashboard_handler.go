package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/thewaterbar/waterbar/internal/middleware"
	"github.com/thewaterbar/waterbar/internal/service"
	"github.com/thewaterbar/waterbar/internal/service/dashboard"
)

// DashboardHandler 仪表盘处理器
type DashboardHandler struct {
	svc *service.Services
}

// NewDashboardHandler 创建仪表盘处理器
func NewDashboardHandler(svc *service.Services) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Generate 生成结构化仪表盘
func (h *DashboardHandler) Generate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Authentication required")
		return
	}

	var req dashboard.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	resp, err := h.svc.Dashboard.Generate(c.Request.Context(), userID, &req)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, resp)
}
