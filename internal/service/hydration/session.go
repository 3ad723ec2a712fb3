package hydration

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thewaterbar/waterbar/internal/model"
	"github.com/thewaterbar/waterbar/internal/repository"
)

// 会话解析结果类型
const (
	SessionTypeNew      = "new"
	SessionTypeContinue = "continue"
)

// ContinuationCache 对话续接缓存，会话重置时需要清空
type ContinuationCache interface {
	Clear(ctx context.Context, userID string) error
}

// Service 补水服务：会话生命周期、时间线聚合、记录写入与建议
type Service struct {
	sessions repository.SessionStore
	events   repository.HydrationStore
	profiles repository.ProfileStore
	convos   repository.ConversationStore
	cache    ContinuationCache
}

// NewService 创建补水服务
func NewService(
	sessions repository.SessionStore,
	events repository.HydrationStore,
	profiles repository.ProfileStore,
	convos repository.ConversationStore,
	cache ContinuationCache,
) *Service {
	return &Service{
		sessions: sessions,
		events:   events,
		profiles: profiles,
		convos:   convos,
		cache:    cache,
	}
}

// StartSessionRequest 解析会话请求
type StartSessionRequest struct {
	Location    string   `json:"location"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	Reset       bool     `json:"reset_session"`
}

// StartSessionResult 解析会话结果
type StartSessionResult struct {
	Session     *model.Session `json:"session"`
	SessionType string         `json:"session_type"` // new, continue
}

// ResolveSession 查找或创建用户的活跃会话
// 24 小时内的活跃会话被复用；过期或显式重置时关闭旧会话并创建新会话
func (s *Service) ResolveSession(ctx context.Context, userID string, req *StartSessionRequest) (*StartSessionResult, error) {
	if req == nil {
		req = &StartSessionRequest{}
	}

	// 确保档案存在，无档案时以默认值创建
	profile, err := s.profiles.GetOrCreate(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	now := time.Now()

	if req.Reset {
		// 显式重置：无论会话多新都关闭，并清空续接状态
		if err := s.convos.DeleteByUserID(userID); err != nil {
			log.Printf("Warning: failed to clear conversations for user %s: %v", userID, err)
		}
		if s.cache != nil {
			if err := s.cache.Clear(ctx, userID); err != nil {
				log.Printf("Warning: failed to clear continuation cache for user %s: %v", userID, err)
			}
		}
		session, err := s.createSession(userID, profile, req, now)
		if err != nil {
			return nil, err
		}
		return &StartSessionResult{Session: session, SessionType: SessionTypeNew}, nil
	}

	// 复用 24 小时窗口内的活跃会话
	// 只有"查无记录"才视为没有活跃会话，其他存储错误直接上抛
	existing, err := s.sessions.GetActiveByUserID(userID, now)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up active session: %w", err)
	}
	if existing != nil {
		if patched := patchEnvironment(existing, req); patched {
			if err := s.sessions.Update(existing); err != nil {
				log.Printf("Warning: failed to update session environment: %v", err)
			}
		}
		return &StartSessionResult{Session: existing, SessionType: SessionTypeContinue}, nil
	}

	// 无活跃会话：创建新会话，同一事务内关闭所有未结束的旧会话
	session, err := s.createSession(userID, profile, req, now)
	if err != nil {
		return nil, err
	}
	return &StartSessionResult{Session: session, SessionType: SessionTypeNew}, nil
}

// createSession 创建新会话并关闭用户所有未结束的旧会话
func (s *Service) createSession(userID string, profile *model.Profile, req *StartSessionRequest, now time.Time) (*model.Session, error) {
	session := &model.Session{
		ID:          uuid.New().String(),
		UserID:      userID,
		StartAt:     now,
		Temperature: req.Temperature,
		Humidity:    req.Humidity,
		Location:    req.Location,
		WeightKG:    profile.WeightKG,
	}

	if err := s.sessions.CreateExclusive(session); err != nil {
		return nil, fmt.Errorf("failed to create or retrieve session: %w", err)
	}

	return session, nil
}

// EndSession 关闭会话
func (s *Service) EndSession(ctx context.Context, sessionID string) error {
	if err := s.sessions.Close(sessionID, time.Now()); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

// patchEnvironment 将请求中的位置和天气数据写入会话，返回是否有改动
func patchEnvironment(session *model.Session, req *StartSessionRequest) bool {
	patched := false
	if req.Location != "" && req.Location != session.Location {
		session.Location = req.Location
		patched = true
	}
	if req.Temperature != nil {
		session.Temperature = req.Temperature
		patched = true
	}
	if req.Humidity != nil {
		session.Humidity = req.Humidity
		patched = true
	}
	return patched
}
