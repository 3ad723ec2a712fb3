package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/thewaterbar/waterbar/internal/middleware"
	"github.com/thewaterbar/waterbar/internal/service"
	"github.com/thewaterbar/waterbar/internal/service/hydration"
)

// HydrationHandler 补水会话与记录处理器
type HydrationHandler struct {
	svc *service.Services
}

// NewHydrationHandler 创建补水处理器
func NewHydrationHandler(svc *service.Services) *HydrationHandler {
	return &HydrationHandler{svc: svc}
}

// StartSession 开始或续接会话
func (h *HydrationHandler) StartSession(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Authentication required")
		return
	}

	var req hydration.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	result, err := h.svc.Hydration.ResolveSession(c.Request.Context(), userID, &req)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, result)
}

// EndSession 结束会话
func (h *HydrationHandler) EndSession(c *gin.Context) {
	if _, ok := middleware.GetUserID(c); !ok {
		Unauthorized(c, "Authentication required")
		return
	}

	sessionID := c.Param("id")
	if sessionID == "" {
		BadRequest(c, "Missing session ID")
		return
	}

	if err := h.svc.Hydration.EndSession(c.Request.Context(), sessionID); err != nil {
		Error(c, err)
		return
	}

	Success(c, gin.H{"message": "Session ended"})
}

// Status 获取会话补水状态
func (h *HydrationHandler) Status(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Authentication required")
		return
	}

	sessionID := c.Param("id")
	if sessionID == "" {
		BadRequest(c, "Missing session ID")
		return
	}

	status, err := h.svc.Hydration.Status(c.Request.Context(), userID, sessionID)
	if err != nil {
		NotFound(c, err.Error())
		return
	}

	Success(c, status)
}

// LogEvent 记录一次摄入
func (h *HydrationHandler) LogEvent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Authentication required")
		return
	}

	var req hydration.LogEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	result, err := h.svc.Hydration.LogEvent(c.Request.Context(), userID, &req)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, result)
}

// DeleteEvent 删除一条记录
func (h *HydrationHandler) DeleteEvent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Authentication required")
		return
	}

	eventID := c.Param("id")
	if eventID == "" {
		BadRequest(c, "Missing event ID")
		return
	}

	if err := h.svc.Hydration.DeleteEvent(c.Request.Context(), userID, eventID); err != nil {
		NotFound(c, err.Error())
		return
	}

	NoContent(c)
}

// Recommendations 获取饮水建议
func (h *HydrationHandler) Recommendations(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Authentication required")
		return
	}

	sessionID := c.Param("id")
	if sessionID == "" {
		BadRequest(c, "Missing session ID")
		return
	}

	result, err := h.svc.Hydration.Recommendations(c.Request.Context(), userID, sessionID)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, result)
}
