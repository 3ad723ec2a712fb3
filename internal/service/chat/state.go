// Package chat 提供 AI 教练对话服务
// 直接使用 eino compose.CheckPointStore 持久化对话延续状态，避免冗余封装
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"
)

// ContinuationState 对话延续状态
// 以用户为粒度保存，会话重置时整体清除
type ContinuationState struct {
	UserID         string            `json:"user_id"`
	SessionID      string            `json:"session_id"`
	LastResponseID string            `json:"last_response_id,omitempty"`
	Messages       []*schema.Message `json:"messages"`
	LastActive     time.Time         `json:"last_active"`
}

// StateConfig 状态管理配置
type StateConfig struct {
	MaxHistoryMessages int           // 最大保留历史消息数
	TTL                time.Duration // 状态 TTL
}

// DefaultStateConfig 默认配置
func DefaultStateConfig() *StateConfig {
	return &StateConfig{
		MaxHistoryMessages: 50,
		TTL:                24 * time.Hour,
	}
}

// StateManager 对话状态管理器
type StateManager struct {
	store  compose.CheckPointStore
	config *StateConfig
	mu     sync.RWMutex
}

// NewStateManager 创建状态管理器
func NewStateManager(store compose.CheckPointStore, config *StateConfig) *StateManager {
	if config == nil {
		config = DefaultStateConfig()
	}

	return &StateManager{
		store:  store,
		config: config,
	}
}

// Load 加载用户的延续状态，不存在时返回空状态
func (m *StateManager) Load(ctx context.Context, userID string) (*ContinuationState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, found, err := m.store.Get(ctx, m.stateKey(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to load continuation state: %w", err)
	}

	if !found {
		return &ContinuationState{
			UserID:     userID,
			Messages:   []*schema.Message{},
			LastActive: time.Now(),
		}, nil
	}

	var state ContinuationState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal continuation state: %w", err)
	}

	return &state, nil
}

// Save 保存延续状态
func (m *StateManager) Save(ctx context.Context, state *ContinuationState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	state.LastActive = time.Now()

	if m.config.MaxHistoryMessages > 0 && len(state.Messages) > m.config.MaxHistoryMessages {
		state.Messages = state.Messages[len(state.Messages)-m.config.MaxHistoryMessages:]
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal continuation state: %w", err)
	}

	if err := m.store.Set(ctx, m.stateKey(state.UserID), data); err != nil {
		return fmt.Errorf("failed to save continuation state: %w", err)
	}

	return nil
}

// AppendExchange 追加一轮问答，responseID 标识本轮，供客户端续接
func (m *StateManager) AppendExchange(ctx context.Context, userID, sessionID, query, answer, responseID string) error {
	state, err := m.Load(ctx, userID)
	if err != nil {
		return err
	}

	// 会话变更时丢弃旧历史
	if state.SessionID != "" && state.SessionID != sessionID {
		state.Messages = []*schema.Message{}
	}
	state.SessionID = sessionID
	state.LastResponseID = responseID

	state.Messages = append(state.Messages,
		&schema.Message{Role: schema.User, Content: query},
		&schema.Message{Role: schema.Assistant, Content: answer},
	)

	return m.Save(ctx, state)
}

// Clear 清除用户的延续状态
// 实现 hydration.ContinuationCache
func (m *StateManager) Clear(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.store.Set(ctx, m.stateKey(userID), nil)
}

// stateKey 生成状态存储 key
func (m *StateManager) stateKey(userID string) string {
	return fmt.Sprintf("waterbar:continuation:%s", userID)
}

// RedisCheckpointStore Redis CheckpointStore 实现
type RedisCheckpointStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCheckpointStore 创建 Redis CheckpointStore
func NewRedisCheckpointStore(client *redis.Client, ttl time.Duration) compose.CheckPointStore {
	return &RedisCheckpointStore{
		client: client,
		ttl:    ttl,
	}
}

// Get 实现 CheckpointStore.Get
func (s *RedisCheckpointStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}

	if val == "" {
		return nil, false, nil
	}

	return []byte(val), true, nil
}

// Set 实现 CheckpointStore.Set
func (s *RedisCheckpointStore) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		return s.client.Del(ctx, key).Err()
	}
	return s.client.Set(ctx, key, value, s.ttl).Err()
}
