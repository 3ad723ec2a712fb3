package profile

import (
	"math"

	"github.com/thewaterbar/waterbar/internal/model"
)

// HydrationNeeds 每日补水目标，由档案推导，不落库，每次请求重新计算
type HydrationNeeds struct {
	DailyGoalML        int `json:"dailyGoal"`
	ElectrolytesGoalMG int `json:"electrolytesGoal"`
	ProteinGoalG       int `json:"proteinGoal"`
}

// activityMultiplier 活动水平对应的需水量系数
func activityMultiplier(level string) float64 {
	switch level {
	case model.ActivitySedentary:
		return 1.0
	case model.ActivityLight:
		return 1.1
	case model.ActivityModerate:
		return 1.2
	case model.ActivityActive:
		return 1.3
	case model.ActivityVeryActive:
		return 1.4
	default:
		return 1.2
	}
}

// CalculateNeeds 根据档案计算每日补水目标
// 基准 30ml/kg，按活动水平加成，取整到 50ml
// 电解质约 1000mg/2000ml，蛋白质按 1.5g/kg
func CalculateNeeds(p *model.Profile) HydrationNeeds {
	weight := model.DefaultWeightKG
	activity := ""
	if p != nil {
		if p.WeightKG > 0 {
			weight = p.WeightKG
		}
		activity = p.ActivityLevel
	}

	base := weight * 30
	adjusted := base * activityMultiplier(activity)
	dailyGoal := int(math.Round(adjusted/50)) * 50

	return HydrationNeeds{
		DailyGoalML:        dailyGoal,
		ElectrolytesGoalMG: int(math.Round(float64(dailyGoal) / 2000 * 1000)),
		ProteinGoalG:       int(math.Round(weight * 1.5)),
	}
}
