package hydration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/thewaterbar/waterbar/internal/model"
)

// ========== ResolveSession 测试 ==========

func TestResolveSessionCreatesNew(t *testing.T) {
	svc, sessions, _, _, _, _ := newTestService()
	ctx := context.Background()

	result, err := svc.ResolveSession(ctx, "user-1", &StartSessionRequest{Location: "Dubai"})
	if err != nil {
		t.Fatalf("ResolveSession() error = %v", err)
	}

	if result.SessionType != SessionTypeNew {
		t.Errorf("SessionType = %q, want %q", result.SessionType, SessionTypeNew)
	}
	if result.Session.UserID != "user-1" {
		t.Errorf("Session.UserID = %q, want %q", result.Session.UserID, "user-1")
	}
	if result.Session.Location != "Dubai" {
		t.Errorf("Session.Location = %q, want %q", result.Session.Location, "Dubai")
	}
	// 会话快照默认体重
	if result.Session.WeightKG != model.DefaultWeightKG {
		t.Errorf("Session.WeightKG = %.1f, want %.1f", result.Session.WeightKG, model.DefaultWeightKG)
	}
	if sessions.openCount("user-1") != 1 {
		t.Errorf("open sessions = %d, want 1", sessions.openCount("user-1"))
	}
}

func TestResolveSessionSurfacesStoreError(t *testing.T) {
	svc, sessions, _, _, _, _ := newTestService()
	ctx := context.Background()

	// 存储故障不能被当成"无活跃会话"而悄悄新建
	sessions.lookupErr = errors.New("connection refused")

	if _, err := svc.ResolveSession(ctx, "user-1", &StartSessionRequest{}); err == nil {
		t.Fatal("expected error when session lookup fails")
	}
	if sessions.openCount("user-1") != 0 {
		t.Errorf("open sessions = %d, want 0 (no session created on store error)", sessions.openCount("user-1"))
	}
}

func TestResolveSessionReusesActiveWithinWindow(t *testing.T) {
	svc, sessions, _, _, _, _ := newTestService()
	ctx := context.Background()

	// 23 小时 59 分钟前开始的会话仍在窗口内
	existing := &model.Session{
		ID:      "sess-1",
		UserID:  "user-1",
		StartAt: time.Now().Add(-23*time.Hour - 59*time.Minute),
	}
	sessions.sessions[existing.ID] = existing

	result, err := svc.ResolveSession(ctx, "user-1", &StartSessionRequest{})
	if err != nil {
		t.Fatalf("ResolveSession() error = %v", err)
	}

	if result.SessionType != SessionTypeContinue {
		t.Errorf("SessionType = %q, want %q", result.SessionType, SessionTypeContinue)
	}
	if result.Session.ID != "sess-1" {
		t.Errorf("Session.ID = %q, want %q", result.Session.ID, "sess-1")
	}
}

func TestResolveSessionExpiredWindowStartsNew(t *testing.T) {
	svc, sessions, _, _, _, _ := newTestService()
	ctx := context.Background()

	// 超过 24 小时的会话不再复用
	stale := &model.Session{
		ID:      "sess-old",
		UserID:  "user-1",
		StartAt: time.Now().Add(-24*time.Hour - time.Minute),
	}
	sessions.sessions[stale.ID] = stale

	result, err := svc.ResolveSession(ctx, "user-1", &StartSessionRequest{})
	if err != nil {
		t.Fatalf("ResolveSession() error = %v", err)
	}

	if result.SessionType != SessionTypeNew {
		t.Errorf("SessionType = %q, want %q", result.SessionType, SessionTypeNew)
	}
	if result.Session.ID == "sess-old" {
		t.Error("expired session was reused")
	}
	// 旧会话被关闭，单活跃会话不变式保持
	if sessions.openCount("user-1") != 1 {
		t.Errorf("open sessions = %d, want 1", sessions.openCount("user-1"))
	}
	if sessions.sessions["sess-old"].EndAt == nil {
		t.Error("stale session was not closed")
	}
}

func TestResolveSessionResetClosesAndClears(t *testing.T) {
	svc, sessions, _, _, convos, cache := newTestService()
	ctx := context.Background()

	// 很新的会话，正常情况下会被复用
	fresh := &model.Session{
		ID:      "sess-fresh",
		UserID:  "user-1",
		StartAt: time.Now().Add(-time.Hour),
	}
	sessions.sessions[fresh.ID] = fresh
	_ = convos.Upsert(&model.Conversation{UserID: "user-1", SessionID: "sess-fresh", LastResponseID: "resp-1"})

	result, err := svc.ResolveSession(ctx, "user-1", &StartSessionRequest{Reset: true})
	if err != nil {
		t.Fatalf("ResolveSession() error = %v", err)
	}

	if result.SessionType != SessionTypeNew {
		t.Errorf("SessionType = %q, want %q", result.SessionType, SessionTypeNew)
	}
	if result.Session.ID == "sess-fresh" {
		t.Error("reset reused the existing session")
	}
	if sessions.sessions["sess-fresh"].EndAt == nil {
		t.Error("reset did not close the previous session")
	}
	if _, err := convos.Get("user-1", "sess-fresh"); err == nil {
		t.Error("reset did not delete conversations")
	}
	if len(cache.cleared) != 1 || cache.cleared[0] != "user-1" {
		t.Errorf("continuation cache cleared for %v, want [user-1]", cache.cleared)
	}
}

func TestResolveSessionPatchesEnvironment(t *testing.T) {
	svc, sessions, _, _, _, _ := newTestService()
	ctx := context.Background()

	existing := &model.Session{
		ID:      "sess-1",
		UserID:  "user-1",
		StartAt: time.Now().Add(-time.Hour),
	}
	sessions.sessions[existing.ID] = existing

	temp := 35.0
	hum := 80.0
	result, err := svc.ResolveSession(ctx, "user-1", &StartSessionRequest{
		Location:    "Dubai",
		Temperature: &temp,
		Humidity:    &hum,
	})
	if err != nil {
		t.Fatalf("ResolveSession() error = %v", err)
	}

	if result.Session.Location != "Dubai" {
		t.Errorf("Location = %q, want %q", result.Session.Location, "Dubai")
	}
	if result.Session.Temperature == nil || *result.Session.Temperature != 35.0 {
		t.Error("Temperature was not patched onto the reused session")
	}
	if result.Session.Humidity == nil || *result.Session.Humidity != 80.0 {
		t.Error("Humidity was not patched onto the reused session")
	}
}

// ========== EndSession 测试 ==========

func TestEndSession(t *testing.T) {
	svc, sessions, _, _, _, _ := newTestService()
	ctx := context.Background()

	sessions.sessions["sess-1"] = &model.Session{
		ID:      "sess-1",
		UserID:  "user-1",
		StartAt: time.Now(),
	}

	if err := svc.EndSession(ctx, "sess-1"); err != nil {
		t.Fatalf("EndSession() error = %v", err)
	}
	if sessions.sessions["sess-1"].EndAt == nil {
		t.Error("session was not closed")
	}

	if err := svc.EndSession(ctx, "no-such-session"); err == nil {
		t.Error("EndSession() with unknown ID should fail")
	}
}

// ========== Session 模型测试 ==========

func TestSessionIsActive(t *testing.T) {
	now := time.Now()
	ended := now.Add(-time.Hour)

	tests := []struct {
		name    string
		session model.Session
		want    bool
	}{
		{
			name:    "fresh open session",
			session: model.Session{StartAt: now.Add(-time.Hour)},
			want:    true,
		},
		{
			name:    "closed session",
			session: model.Session{StartAt: now.Add(-time.Hour), EndAt: &ended},
			want:    false,
		},
		{
			name:    "window expired",
			session: model.Session{StartAt: now.Add(-25 * time.Hour)},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.IsActive(now); got != tt.want {
				t.Errorf("IsActive() = %v, want %v", got, tt.want)
			}
		})
	}
}
