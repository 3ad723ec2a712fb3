package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/thewaterbar/waterbar/internal/middleware"
	"github.com/thewaterbar/waterbar/internal/service"
	"github.com/thewaterbar/waterbar/internal/service/profile"
)

// ProfileHandler 用户档案处理器
type ProfileHandler struct {
	svc *service.Services
}

// NewProfileHandler 创建档案处理器
func NewProfileHandler(svc *service.Services) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// Get 获取当前用户档案
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Authentication required")
		return
	}

	p, err := h.svc.Profile.Get(c.Request.Context(), userID)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, p)
}

// Update 更新当前用户档案
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Authentication required")
		return
	}

	var req profile.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	p, err := h.svc.Profile.Update(c.Request.Context(), userID, &req)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, gin.H{
		"profile": p,
		"needs":   profile.CalculateNeeds(p),
	})
}

// Needs 返回档案与每日补水目标
func (h *ProfileHandler) Needs(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Authentication required")
		return
	}

	p, needs, err := h.svc.Profile.Needs(c.Request.Context(), userID)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, gin.H{
		"profile": p,
		"needs":   needs,
	})
}
