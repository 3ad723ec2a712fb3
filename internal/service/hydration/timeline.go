package hydration

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/thewaterbar/waterbar/internal/model"
	"github.com/thewaterbar/waterbar/internal/service/profile"
)

// maxRecentEvents 状态中携带的最近记录条数
const maxRecentEvents = 5

// RecentEvent 最近记录，展示用
type RecentEvent struct {
	Time    string `json:"time"`    // 例如 "10:30 AM"
	Message string `json:"message"` // 例如 "Drank 250ml of water"
}

// Status 会话的补水状态快照
type Status struct {
	WaterIntakeML       float64       `json:"waterIntake"`
	ElectrolyteIntakeML float64       `json:"electrolyteIntake"`
	ProteinIntakeG      float64       `json:"proteinIntake"`
	TotalIntakeML       float64       `json:"totalIntake"`
	DailyGoalML         int           `json:"dailyGoal"`
	PercentComplete     int           `json:"percentComplete"`
	TimeRemaining       string        `json:"timeRemaining"` // 例如 "12h 30m"
	RecentEvents        []RecentEvent `json:"recentEvents"`
}

// Aggregate 聚合一个会话的全部记录
// water/drink 类型的 amount_ml 计入饮水量，electrolyte 计入电解质量，
// protein 的 amount_g 计入蛋白质量；总量 = 饮水 + 电解质（毫升）
func Aggregate(events []*model.HydrationEvent, needs profile.HydrationNeeds, sessionStart time.Time, now time.Time) Status {
	st := Status{
		DailyGoalML:  needs.DailyGoalML,
		RecentEvents: []RecentEvent{},
	}

	for _, ev := range events {
		switch ev.Type {
		case model.EventTypeWater, model.EventTypeDrink:
			st.WaterIntakeML += ev.AmountML
		case model.EventTypeElectrolyte:
			st.ElectrolyteIntakeML += ev.AmountML
		case model.EventTypeProtein:
			st.ProteinIntakeG += ev.AmountG
		}
	}

	st.TotalIntakeML = st.WaterIntakeML + st.ElectrolyteIntakeML

	if needs.DailyGoalML > 0 {
		pct := int(math.Round(st.TotalIntakeML / float64(needs.DailyGoalML) * 100))
		if pct > 100 {
			pct = 100
		}
		st.PercentComplete = pct
	}

	st.TimeRemaining = formatTimeRemaining(sessionStart, now)

	start := len(events) - maxRecentEvents
	if start < 0 {
		start = 0
	}
	for _, ev := range events[start:] {
		st.RecentEvents = append(st.RecentEvents, RecentEvent{
			Time:    ev.LoggedAt.Format("3:04 PM"),
			Message: eventMessage(ev),
		})
	}

	return st
}

// Status 获取会话当前状态
func (s *Service) Status(ctx context.Context, userID, sessionID string) (*Status, error) {
	session, err := s.sessions.GetByID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	// 无档案时按默认体重 70kg 计算目标
	p, err := s.profiles.GetOrCreate(userID)
	if err != nil {
		p = nil
	}
	needs := profile.CalculateNeeds(p)

	events, err := s.events.ListEventsBySession(session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	st := Aggregate(events, needs, session.StartAt, time.Now())
	return &st, nil
}

// formatTimeRemaining 距会话 24 小时窗口结束的剩余时间，格式 "12h 30m"
func formatTimeRemaining(sessionStart, now time.Time) string {
	remaining := sessionStart.Add(model.SessionWindow).Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	hours := int(remaining.Hours())
	minutes := int(remaining.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// eventMessage 记录的展示文本
func eventMessage(ev *model.HydrationEvent) string {
	switch ev.Type {
	case model.EventTypeProtein:
		return fmt.Sprintf("Added %.0fg of protein", ev.AmountG)
	case model.EventTypeFood:
		return fmt.Sprintf("Added %.0fg of food", ev.AmountG)
	case model.EventTypeExercise:
		return "Logged exercise"
	default:
		return fmt.Sprintf("Drank %.0fml of %s", ev.AmountML, ev.Type)
	}
}
