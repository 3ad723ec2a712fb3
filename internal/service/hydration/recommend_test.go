package hydration

import (
	"context"
	"testing"
	"time"

	"github.com/thewaterbar/waterbar/internal/model"
)

// ========== buildRecommendations 测试 ==========

func floatPtr(v float64) *float64 { return &v }

func TestBuildRecommendationsUrgency(t *testing.T) {
	session := &model.Session{ID: "sess-1"}

	tests := []struct {
		name        string
		status      *Status
		wantUrgency string
		wantAmount  float64
	}{
		{
			name: "far behind goal is high urgency",
			status: &Status{
				DailyGoalML:   2000,
				TotalIntakeML: 200, // 剩余 1800 > 30%
			},
			wantUrgency: UrgencyHigh,
			wantAmount:  250,
		},
		{
			name: "close to goal is medium urgency",
			status: &Status{
				DailyGoalML:   2000,
				TotalIntakeML: 1850, // 剩余 150 < 30%
			},
			wantUrgency: UrgencyMedium,
			wantAmount:  150, // min(250, remaining)
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := buildRecommendations(tt.status, session)
			if len(recs) == 0 {
				t.Fatal("no recommendations")
			}
			water := recs[0]
			if water.Type != "drink_water" {
				t.Errorf("Type = %q, want drink_water", water.Type)
			}
			if water.Urgency != tt.wantUrgency {
				t.Errorf("Urgency = %q, want %q", water.Urgency, tt.wantUrgency)
			}
			if water.AmountML != tt.wantAmount {
				t.Errorf("AmountML = %.0f, want %.0f", water.AmountML, tt.wantAmount)
			}
		})
	}
}

func TestBuildRecommendationsGoalReached(t *testing.T) {
	status := &Status{
		DailyGoalML:         2000,
		TotalIntakeML:       2100,
		ElectrolyteIntakeML: 600,
	}

	recs := buildRecommendations(status, &model.Session{})
	for _, rec := range recs {
		if rec.Type == "drink_water" && rec.ID == "rec_water_1" {
			t.Error("water recommendation issued after goal was reached")
		}
	}
}

func TestBuildRecommendationsElectrolyteThreshold(t *testing.T) {
	status := &Status{
		DailyGoalML:         2000,
		TotalIntakeML:       2100,
		ElectrolyteIntakeML: 400, // 低于 500 阈值
	}

	recs := buildRecommendations(status, &model.Session{})

	found := false
	for _, rec := range recs {
		if rec.ID == "rec_electrolyte_1" {
			found = true
			if rec.AmountML != 300 {
				t.Errorf("electrolyte AmountML = %.0f, want 300", rec.AmountML)
			}
		}
	}
	if !found {
		t.Error("no electrolyte recommendation despite low intake")
	}
}

func TestBuildRecommendationsHeatVariant(t *testing.T) {
	status := &Status{DailyGoalML: 2000, TotalIntakeML: 500, ElectrolyteIntakeML: 600}
	session := &model.Session{Temperature: floatPtr(35), Humidity: floatPtr(40)}

	recs := buildRecommendations(status, session)
	if len(recs) == 0 {
		t.Fatal("no recommendations")
	}
	if recs[0].Title != "Stay hydrated in this heat" {
		t.Errorf("Title = %q, want heat variant", recs[0].Title)
	}
}

// ========== matchScenario 测试 ==========

func TestMatchScenario(t *testing.T) {
	tests := []struct {
		name    string
		session *model.Session
		want    string
	}{
		{
			name:    "no environment data",
			session: &model.Session{},
			want:    "",
		},
		{
			name:    "hot and humid",
			session: &model.Session{Temperature: floatPtr(32), Humidity: floatPtr(75)},
			want:    "High intensity",
		},
		{
			name:    "warm and moderate humidity",
			session: &model.Session{Temperature: floatPtr(25), Humidity: floatPtr(60)},
			want:    "Moderate",
		},
		{
			name:    "cool day",
			session: &model.Session{Temperature: floatPtr(15), Humidity: floatPtr(30)},
			want:    "Low intensity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchScenario(tt.session); got != tt.want {
				t.Errorf("matchScenario() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ========== Recommendations 测试 ==========

func TestRecommendationsIncludesVenues(t *testing.T) {
	svc, sessions, _, _, _, _ := newTestService()
	ctx := context.Background()

	sessions.sessions["sess-1"] = &model.Session{
		ID:      "sess-1",
		UserID:  "user-1",
		StartAt: time.Now().Add(-time.Hour),
	}

	result, err := svc.Recommendations(ctx, "user-1", "sess-1")
	if err != nil {
		t.Fatalf("Recommendations() error = %v", err)
	}

	if len(result.NearbyVenues) != 3 {
		t.Errorf("NearbyVenues = %d, want 3", len(result.NearbyVenues))
	}
	if result.NearbyVenues[0].Name != "The Water Bar" {
		t.Errorf("first venue = %q, want The Water Bar", result.NearbyVenues[0].Name)
	}
	if result.Status == nil {
		t.Error("Status missing from result")
	}
}
