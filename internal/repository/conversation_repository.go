package repository

import (
	"github.com/thewaterbar/waterbar/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConversationRepository 对话续接状态数据访问
type ConversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository 创建对话仓库
func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// Upsert 写入或更新续接状态
func (r *ConversationRepository) Upsert(conv *model.Conversation) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_response_id", "updated_at"}),
	}).Create(conv).Error
}

// Get 获取续接状态
func (r *ConversationRepository) Get(userID, sessionID string) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.db.Where("user_id = ? AND session_id = ?", userID, sessionID).First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// DeleteByUserID 删除用户的全部续接状态，会话重置时调用
func (r *ConversationRepository) DeleteByUserID(userID string) error {
	return r.db.Delete(&model.Conversation{}, "user_id = ?", userID).Error
}
