// Package dashboard 提供仪表盘解析单元测试
package dashboard

import (
	"testing"
)

// ========== parseDashboard 测试 ==========

func TestParseDashboardValidJSON(t *testing.T) {
	raw := `{"hydrationPercentage": 28, "timeRemaining": "22h 0m",
"recommendedIntake": 250,
"todaySummary": {"waterIntake": 250, "electrolyteIntake": 330, "proteinIntake": 20, "dailyGoal": 2100},
"recentEvents": [{"time": "10:30 AM", "message": "Drank 250ml of water"}],
"aiMessage": "Keep sipping!"}`

	data, ok := parseDashboard(raw)
	if !ok {
		t.Fatal("parseDashboard() failed on valid JSON")
	}
	if data.HydrationPercentage != 28 {
		t.Errorf("HydrationPercentage = %d, want 28", data.HydrationPercentage)
	}
	if data.TodaySummary == nil || data.TodaySummary.ElectrolyteIntakeML != 330 {
		t.Errorf("TodaySummary = %+v", data.TodaySummary)
	}
	if len(data.RecentEvents) != 1 || data.RecentEvents[0].Message != "Drank 250ml of water" {
		t.Errorf("RecentEvents = %+v", data.RecentEvents)
	}
	if data.AIMessage != "Keep sipping!" {
		t.Errorf("AIMessage = %q", data.AIMessage)
	}
}

func TestParseDashboardMarkdownFences(t *testing.T) {
	raw := "```json\n{\"hydrationPercentage\": 50, \"aiMessage\": \"Halfway there\"}\n```"

	data, ok := parseDashboard(raw)
	if !ok {
		t.Fatal("parseDashboard() failed on fenced JSON")
	}
	if data.HydrationPercentage != 50 {
		t.Errorf("HydrationPercentage = %d, want 50", data.HydrationPercentage)
	}
}

func TestParseDashboardRepairsBrokenJSON(t *testing.T) {
	// 末尾逗号与未闭合的大括号，jsonrepair 可修复
	raw := `{"hydrationPercentage": 75, "aiMessage": "Almost done",`

	data, ok := parseDashboard(raw)
	if !ok {
		t.Fatal("parseDashboard() failed to repair broken JSON")
	}
	if data.HydrationPercentage != 75 {
		t.Errorf("HydrationPercentage = %d, want 75", data.HydrationPercentage)
	}
}

func TestParseDashboardPlainTextFails(t *testing.T) {
	if _, ok := parseDashboard("I couldn't generate the dashboard, sorry!"); ok {
		t.Fatal("parseDashboard() should fail on prose")
	}
}
