package hydration

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/thewaterbar/waterbar/internal/model"
)

// ========== mock 存储 ==========

type mockSessionStore struct {
	sessions  map[string]*model.Session
	lookupErr error // 非空时 GetActiveByUserID 返回该错误，模拟存储故障
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]*model.Session)}
}

func (m *mockSessionStore) GetByID(id string) (*model.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	return s, nil
}

func (m *mockSessionStore) GetActiveByUserID(userID string, now time.Time) (*model.Session, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	var candidates []*model.Session
	for _, s := range m.sessions {
		if s.UserID == userID && s.EndAt == nil && !s.StartAt.Before(now.Add(-model.SessionWindow)) {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].StartAt.After(candidates[j].StartAt)
	})
	return candidates[0], nil
}

func (m *mockSessionStore) Update(session *model.Session) error {
	if _, ok := m.sessions[session.ID]; !ok {
		return fmt.Errorf("session not found: %s", session.ID)
	}
	m.sessions[session.ID] = session
	return nil
}

func (m *mockSessionStore) Close(id string, endAt time.Time) error {
	s, ok := m.sessions[id]
	if !ok {
		return fmt.Errorf("session not found: %s", id)
	}
	s.EndAt = &endAt
	return nil
}

func (m *mockSessionStore) CreateExclusive(session *model.Session) error {
	now := session.StartAt
	for _, s := range m.sessions {
		if s.UserID == session.UserID && s.EndAt == nil {
			s.EndAt = &now
		}
	}
	m.sessions[session.ID] = session
	return nil
}

func (m *mockSessionStore) openCount(userID string) int {
	count := 0
	for _, s := range m.sessions {
		if s.UserID == userID && s.EndAt == nil {
			count++
		}
	}
	return count
}

type mockHydrationStore struct {
	events  map[string]*model.HydrationEvent
	library map[string]*model.InputLibraryItem
	order   []string
}

func newMockHydrationStore() *mockHydrationStore {
	return &mockHydrationStore{
		events:  make(map[string]*model.HydrationEvent),
		library: make(map[string]*model.InputLibraryItem),
	}
}

func (m *mockHydrationStore) CreateEvent(event *model.HydrationEvent) error {
	m.events[event.ID] = event
	m.order = append(m.order, event.ID)
	return nil
}

func (m *mockHydrationStore) GetEventByID(id string) (*model.HydrationEvent, error) {
	ev, ok := m.events[id]
	if !ok {
		return nil, fmt.Errorf("event not found: %s", id)
	}
	return ev, nil
}

func (m *mockHydrationStore) ListEventsBySession(sessionID string) ([]*model.HydrationEvent, error) {
	var out []*model.HydrationEvent
	for _, id := range m.order {
		ev, ok := m.events[id]
		if ok && ev.SessionID == sessionID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *mockHydrationStore) DeleteEvent(id string) error {
	if _, ok := m.events[id]; !ok {
		return fmt.Errorf("event not found: %s", id)
	}
	delete(m.events, id)
	return nil
}

func (m *mockHydrationStore) ListLibraryByCategory(category string) ([]*model.InputLibraryItem, error) {
	var out []*model.InputLibraryItem
	for _, item := range m.library {
		if item.Category == category {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockHydrationStore) CreateLibraryItem(item *model.InputLibraryItem) error {
	m.library[item.ID] = item
	return nil
}

type mockProfileStore struct {
	profiles map[string]*model.Profile
}

func newMockProfileStore() *mockProfileStore {
	return &mockProfileStore{profiles: make(map[string]*model.Profile)}
}

func (m *mockProfileStore) Create(profile *model.Profile) error {
	m.profiles[profile.ID] = profile
	return nil
}

func (m *mockProfileStore) GetByID(id string) (*model.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, fmt.Errorf("profile not found: %s", id)
	}
	return p, nil
}

func (m *mockProfileStore) Update(profile *model.Profile) error {
	m.profiles[profile.ID] = profile
	return nil
}

func (m *mockProfileStore) GetOrCreate(id string) (*model.Profile, error) {
	if p, ok := m.profiles[id]; ok {
		return p, nil
	}
	p := &model.Profile{
		ID:            id,
		WeightKG:      model.DefaultWeightKG,
		ActivityLevel: model.DefaultActivityLevel,
	}
	m.profiles[id] = p
	return p, nil
}

type mockConversationStore struct {
	conversations map[string]*model.Conversation
}

func newMockConversationStore() *mockConversationStore {
	return &mockConversationStore{conversations: make(map[string]*model.Conversation)}
}

func (m *mockConversationStore) Upsert(conv *model.Conversation) error {
	m.conversations[conv.UserID+"/"+conv.SessionID] = conv
	return nil
}

func (m *mockConversationStore) Get(userID, sessionID string) (*model.Conversation, error) {
	c, ok := m.conversations[userID+"/"+sessionID]
	if !ok {
		return nil, fmt.Errorf("conversation not found")
	}
	return c, nil
}

func (m *mockConversationStore) DeleteByUserID(userID string) error {
	for key, c := range m.conversations {
		if c.UserID == userID {
			delete(m.conversations, key)
		}
	}
	return nil
}

type mockContinuationCache struct {
	cleared []string
}

func (m *mockContinuationCache) Clear(ctx context.Context, userID string) error {
	m.cleared = append(m.cleared, userID)
	return nil
}

// newTestService 组装带 mock 存储的补水服务
func newTestService() (*Service, *mockSessionStore, *mockHydrationStore, *mockProfileStore, *mockConversationStore, *mockContinuationCache) {
	sessions := newMockSessionStore()
	events := newMockHydrationStore()
	profiles := newMockProfileStore()
	convos := newMockConversationStore()
	cache := &mockContinuationCache{}

	svc := NewService(sessions, events, profiles, convos, cache)
	return svc, sessions, events, profiles, convos, cache
}
