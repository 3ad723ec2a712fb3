package hydration

import (
	"context"
	"fmt"
	"math"

	"github.com/thewaterbar/waterbar/internal/model"
)

// 建议紧急程度
const (
	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
	UrgencyLow    = "low"
)

// electrolyteThresholdML 低于该电解质摄入量时追加补充建议
const electrolyteThresholdML = 500

// Recommendation 补水建议
type Recommendation struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"` // drink_water, activity
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Urgency     string  `json:"urgency"`
	AmountML    float64 `json:"amount_ml,omitempty"`
}

// Venue 附近补水场所（静态数据，非实时地理查询）
type Venue struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Rating   float64 `json:"rating"`
	Distance string  `json:"distance"`
	Address  string  `json:"address,omitempty"`
	Hours    string  `json:"hours,omitempty"`
}

// RecommendationsResult 建议列表及其依据
type RecommendationsResult struct {
	Recommendations []Recommendation `json:"recommendations"`
	Status          *Status          `json:"hydrationStatus"`
	NearbyVenues    []Venue          `json:"nearbyVenues"`
}

// Recommendations 基于当前状态生成建议
func (s *Service) Recommendations(ctx context.Context, userID, sessionID string) (*RecommendationsResult, error) {
	status, err := s.Status(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.GetByID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	return &RecommendationsResult{
		Recommendations: buildRecommendations(status, session),
		Status:          status,
		NearbyVenues:    nearbyVenues(),
	}, nil
}

// buildRecommendations 按状态与环境推导建议列表
func buildRecommendations(status *Status, session *model.Session) []Recommendation {
	recs := []Recommendation{}

	remaining := float64(status.DailyGoalML) - status.TotalIntakeML
	if remaining > 0 {
		urgency := UrgencyMedium
		if remaining > float64(status.DailyGoalML)*0.3 {
			urgency = UrgencyHigh
		}

		title := "Drink some water"
		desc := fmt.Sprintf("You're %d%% hydrated. Have some water to stay on track.", status.PercentComplete)
		if temp := session.Temperature; temp != nil && *temp > 30 {
			title = "Stay hydrated in this heat"
			desc = "It's hot out there! Drink water regularly to maintain hydration."
		} else if hum := session.Humidity; hum != nil && *hum > 70 {
			title = "Hydrate for high humidity"
			desc = "High humidity affects your body's cooling. Stay hydrated!"
		}

		recs = append(recs, Recommendation{
			ID:          "rec_water_1",
			Type:        "drink_water",
			Title:       title,
			Description: desc,
			Urgency:     urgency,
			AmountML:    math.Min(250, remaining),
		})
	}

	if status.ElectrolyteIntakeML < electrolyteThresholdML {
		recs = append(recs, Recommendation{
			ID:          "rec_electrolyte_1",
			Type:        "drink_water",
			Title:       "Replenish electrolytes",
			Description: "Your electrolyte levels are low. Consider a sports drink or electrolyte supplement.",
			Urgency:     UrgencyMedium,
			AmountML:    300,
		})
	}

	if scenario := matchScenario(session); scenario != "" {
		recs = append(recs, Recommendation{
			ID:          "rec_scenario_1",
			Type:        "activity",
			Title:       scenario + " hydration plan",
			Description: "Follow your personalized hydration plan for optimal performance.",
			Urgency:     UrgencyMedium,
		})
	}

	return recs
}

// matchScenario 按温湿度区间选择场景
func matchScenario(session *model.Session) string {
	if session.Temperature == nil || session.Humidity == nil {
		return ""
	}
	temp, hum := *session.Temperature, *session.Humidity
	switch {
	case temp > 30 && hum > 70:
		return "High intensity"
	case temp > 20 && hum > 50:
		return "Moderate"
	default:
		return "Low intensity"
	}
}

// nearbyVenues 静态场所列表
func nearbyVenues() []Venue {
	return []Venue{
		{
			ID:       "venue_1",
			Name:     "The Water Bar",
			Type:     "Hydration Station",
			Rating:   4.8,
			Distance: "500m",
			Address:  "123 Hydration Ave.",
			Hours:    "9AM - 9PM",
		},
		{
			ID:       "venue_2",
			Name:     "Hydration Hub",
			Type:     "Wellness Café",
			Rating:   4.5,
			Distance: "800m",
		},
		{
			ID:       "venue_3",
			Name:     "Perrier Lounge",
			Type:     "Premium Hydration",
			Rating:   4.3,
			Distance: "1.2km",
		},
	}
}
