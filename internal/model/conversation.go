package model

import "time"

// Conversation 对话续接状态
// 保存补全 API 的 continuation token，使多轮对话可以恢复上下文
// 每次补全调用后 upsert，会话重置时删除
type Conversation struct {
	UserID         string    `gorm:"primaryKey;size:36" json:"user_id"`
	SessionID      string    `gorm:"primaryKey;size:36" json:"session_id"`
	LastResponseID string    `gorm:"size:255" json:"last_response_id"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Conversation) TableName() string {
	return "conversations"
}
