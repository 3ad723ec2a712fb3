package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/thewaterbar/waterbar/internal/middleware"
	"github.com/thewaterbar/waterbar/internal/service"
	"github.com/thewaterbar/waterbar/internal/service/chat"
)

// ChatHandler AI 教练对话处理器
type ChatHandler struct {
	svc *service.Services
}

// NewChatHandler 创建对话处理器
func NewChatHandler(svc *service.Services) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// Chat 同步对话
func (h *ChatHandler) Chat(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Authentication required")
		return
	}

	var req chat.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	resp, err := h.svc.Chat.Chat(c.Request.Context(), userID, &req)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, resp)
}

// Stream 流式对话
func (h *ChatHandler) Stream(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Authentication required")
		return
	}

	var req chat.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	eventCh, err := h.svc.Chat.Stream(c.Request.Context(), userID, &req)
	if err != nil {
		Error(c, err)
		return
	}

	// 设置 SSE 响应头
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("Transfer-Encoding", "chunked")

	// end 是唯一的终止事件，生产者随后关闭通道
	for event := range eventCh {
		select {
		case <-c.Request.Context().Done():
			return
		default:
			c.SSEvent("", event)
			c.Writer.Flush()
		}

		if event.Type == "end" {
			return
		}
	}
}
