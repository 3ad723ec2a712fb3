package profile

import (
	"context"
	"fmt"
	"testing"

	"github.com/thewaterbar/waterbar/internal/model"
)

// mockProfileStore 内存档案存储
type mockProfileStore struct {
	profiles map[string]*model.Profile
	updates  int
}

func newMockProfileStore() *mockProfileStore {
	return &mockProfileStore{profiles: make(map[string]*model.Profile)}
}

func (m *mockProfileStore) Create(p *model.Profile) error {
	m.profiles[p.ID] = p
	return nil
}

func (m *mockProfileStore) GetByID(id string) (*model.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, fmt.Errorf("profile not found: %s", id)
	}
	return p, nil
}

func (m *mockProfileStore) Update(p *model.Profile) error {
	m.profiles[p.ID] = p
	m.updates++
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

// ========== Get 测试 ==========

func TestGetCreatesDefaultProfile(t *testing.T) {
	svc := NewService(newMockProfileStore())

	p, err := svc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if p.WeightKG != model.DefaultWeightKG {
		t.Errorf("WeightKG = %.1f, want %.1f", p.WeightKG, model.DefaultWeightKG)
	}
	if p.ActivityLevel != model.DefaultActivityLevel {
		t.Errorf("ActivityLevel = %q, want %q", p.ActivityLevel, model.DefaultActivityLevel)
	}
}

// ========== Update 测试 ==========

func TestUpdatePartialFields(t *testing.T) {
	store := newMockProfileStore()
	store.profiles["user-1"] = &model.Profile{
		ID:            "user-1",
		WeightKG:      80,
		HeightCM:      180,
		ActivityLevel: model.ActivityActive,
		Location:      "Dubai",
	}
	svc := NewService(store)

	// 只更新体重，其余字段零值不改动
	p, err := svc.Update(context.Background(), "user-1", &UpdateRequest{WeightKG: 75})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if p.WeightKG != 75 {
		t.Errorf("WeightKG = %.1f, want 75", p.WeightKG)
	}
	if p.HeightCM != 180 {
		t.Errorf("HeightCM = %.1f, want unchanged 180", p.HeightCM)
	}
	if p.ActivityLevel != model.ActivityActive {
		t.Errorf("ActivityLevel = %q, want unchanged", p.ActivityLevel)
	}
	if p.Location != "Dubai" {
		t.Errorf("Location = %q, want unchanged", p.Location)
	}
	if store.updates != 1 {
		t.Errorf("store updates = %d, want 1", store.updates)
	}
}

func TestUpdateChangesNeeds(t *testing.T) {
	svc := NewService(newMockProfileStore())
	ctx := context.Background()

	_, before, err := svc.Needs(ctx, "user-1")
	if err != nil {
		t.Fatalf("Needs() error = %v", err)
	}

	if _, err := svc.Update(ctx, "user-1", &UpdateRequest{
		WeightKG:      90,
		ActivityLevel: model.ActivityVeryActive,
	}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	_, after, err := svc.Needs(ctx, "user-1")
	if err != nil {
		t.Fatalf("Needs() error = %v", err)
	}

	if after.DailyGoalML <= before.DailyGoalML {
		t.Errorf("DailyGoalML did not increase: before %d, after %d", before.DailyGoalML, after.DailyGoalML)
	}
	// 90*30*1.4 = 3780 取整到 50
	if after.DailyGoalML != 3800 {
		t.Errorf("DailyGoalML = %d, want 3800", after.DailyGoalML)
	}
}
