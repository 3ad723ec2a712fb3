// Package repository 定义数据访问接口
// 接口抽象使依赖注入和单元测试成为可能
package repository

import (
	"time"

	"github.com/thewaterbar/waterbar/internal/model"
)

// ========== ProfileStore 接口 ==========

// ProfileStore 档案数据访问接口
// 接口定义使 Service 层可以轻松 mock 进行单元测试
type ProfileStore interface {
	Create(profile *model.Profile) error
	GetByID(id string) (*model.Profile, error)
	Update(profile *model.Profile) error
	GetOrCreate(id string) (*model.Profile, error)
}

var _ ProfileStore = (*ProfileRepository)(nil)

// ========== SessionStore 接口 ==========

// SessionStore 会话数据访问接口
type SessionStore interface {
	GetByID(id string) (*model.Session, error)
	GetActiveByUserID(userID string, now time.Time) (*model.Session, error)
	Update(session *model.Session) error
	Close(id string, endAt time.Time) error
	CreateExclusive(session *model.Session) error
}

var _ SessionStore = (*SessionRepository)(nil)

// ========== HydrationStore 接口 ==========

// HydrationStore 补水记录数据访问接口
type HydrationStore interface {
	CreateEvent(event *model.HydrationEvent) error
	GetEventByID(id string) (*model.HydrationEvent, error)
	ListEventsBySession(sessionID string) ([]*model.HydrationEvent, error)
	DeleteEvent(id string) error
	ListLibraryByCategory(category string) ([]*model.InputLibraryItem, error)
	CreateLibraryItem(item *model.InputLibraryItem) error
}

var _ HydrationStore = (*HydrationRepository)(nil)

// ========== ConversationStore 接口 ==========

// ConversationStore 对话续接状态数据访问接口
type ConversationStore interface {
	Upsert(conv *model.Conversation) error
	Get(userID, sessionID string) (*model.Conversation, error)
	DeleteByUserID(userID string) error
}

var _ ConversationStore = (*ConversationRepository)(nil)
