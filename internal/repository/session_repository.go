package repository

import (
	"time"

	"github.com/thewaterbar/waterbar/internal/model"
	"gorm.io/gorm"
)

// SessionRepository 会话数据访问
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository 创建会话仓库
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// GetByID 获取会话
func (r *SessionRepository) GetByID(id string) (*model.Session, error) {
	var session model.Session
	err := r.db.Where("id = ?", id).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetActiveByUserID 获取用户当前的活跃会话
// 活跃 = end_at 为空且 start_at 在 24 小时窗口内
func (r *SessionRepository) GetActiveByUserID(userID string, now time.Time) (*model.Session, error) {
	var session model.Session
	windowStart := now.Add(-model.SessionWindow)
	err := r.db.Where("user_id = ? AND end_at IS NULL AND start_at >= ?", userID, windowStart).
		Order("start_at DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Update 更新会话
func (r *SessionRepository) Update(session *model.Session) error {
	return r.db.Save(session).Error
}

// Close 关闭会话
func (r *SessionRepository) Close(id string, endAt time.Time) error {
	return r.db.Model(&model.Session{}).Where("id = ?", id).Update("end_at", endAt).Error
}

// CreateExclusive 在单个事务内关闭用户所有未结束的会话并创建新会话
// 保证同一用户至多存在一条 end_at 为空的记录
func (r *SessionRepository) CreateExclusive(session *model.Session) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Session{}).
			Where("user_id = ? AND end_at IS NULL", session.UserID).
			Update("end_at", session.StartAt).Error; err != nil {
			return err
		}
		return tx.Create(session).Error
	})
}
