package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/thewaterbar/waterbar/internal/service"
)

// VideoHandler 视频目录处理器
type VideoHandler struct {
	svc *service.Services
}

// NewVideoHandler 创建视频处理器
func NewVideoHandler(svc *service.Services) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// List 列出视频，支持 category 过滤
func (h *VideoHandler) List(c *gin.Context) {
	videos, err := h.svc.Video.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, videos)
}

// Get 获取单个视频
func (h *VideoHandler) Get(c *gin.Context) {
	video, err := h.svc.Video.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		NotFound(c, "Video not found")
		return
	}

	Success(c, video)
}
