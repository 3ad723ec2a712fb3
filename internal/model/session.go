package model

import "time"

// SessionWindow 一个跟踪会话的有效时长
const SessionWindow = 24 * time.Hour

// Session 24小时补水跟踪会话
// 每个用户同一时刻至多一条 end_at 为空的记录
type Session struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	UserID      string     `gorm:"index;size:36;not null" json:"user_id"`
	StartAt     time.Time  `gorm:"index;not null" json:"start_at"`
	EndAt       *time.Time `gorm:"index" json:"end_at"`
	Temperature *float64   `json:"temperature"`
	Humidity    *float64   `json:"humidity"`
	Location    string     `gorm:"size:255" json:"location"`
	WeightKG    float64    `json:"weight_kg"` // 会话开始时的体重快照
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Session) TableName() string {
	return "sessions"
}

// IsActive 会话是否仍在 24 小时窗口内
func (s *Session) IsActive(now time.Time) bool {
	return s.EndAt == nil && now.Sub(s.StartAt) < SessionWindow
}

// ExpiresAt 会话到期时间
func (s *Session) ExpiresAt() time.Time {
	return s.StartAt.Add(SessionWindow)
}
