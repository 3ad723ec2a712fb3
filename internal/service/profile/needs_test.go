// Package profile 提供档案与补水目标单元测试
package profile

import (
	"testing"

	"github.com/thewaterbar/waterbar/internal/model"
)

// ========== CalculateNeeds 测试 ==========

func TestCalculateNeeds(t *testing.T) {
	tests := []struct {
		name                 string
		profile              *model.Profile
		wantDailyGoal        int
		wantElectrolytesGoal int
		wantProteinGoal      int
	}{
		{
			name: "sedentary 70kg",
			profile: &model.Profile{
				WeightKG:      70,
				ActivityLevel: model.ActivitySedentary,
			},
			wantDailyGoal:        2100,
			wantElectrolytesGoal: 1050,
			wantProteinGoal:      105,
		},
		{
			name: "light 70kg",
			profile: &model.Profile{
				WeightKG:      70,
				ActivityLevel: model.ActivityLight,
			},
			wantDailyGoal:        2300, // 2310 取整到 50
			wantElectrolytesGoal: 1150,
			wantProteinGoal:      105,
		},
		{
			name: "moderate 70kg",
			profile: &model.Profile{
				WeightKG:      70,
				ActivityLevel: model.ActivityModerate,
			},
			wantDailyGoal:        2500, // 2520 取整到 50
			wantElectrolytesGoal: 1250,
			wantProteinGoal:      105,
		},
		{
			name: "active 70kg",
			profile: &model.Profile{
				WeightKG:      70,
				ActivityLevel: model.ActivityActive,
			},
			wantDailyGoal:        2750, // 2730 取整到 50
			wantElectrolytesGoal: 1375,
			wantProteinGoal:      105,
		},
		{
			name: "very active 70kg",
			profile: &model.Profile{
				WeightKG:      70,
				ActivityLevel: model.ActivityVeryActive,
			},
			wantDailyGoal:        2950, // 2940 取整到 50
			wantElectrolytesGoal: 1475,
			wantProteinGoal:      105,
		},
		{
			name: "unknown activity falls back to moderate multiplier",
			profile: &model.Profile{
				WeightKG:      70,
				ActivityLevel: "astronaut",
			},
			wantDailyGoal:        2500,
			wantElectrolytesGoal: 1250,
			wantProteinGoal:      105,
		},
		{
			name:                 "nil profile uses defaults",
			profile:              nil,
			wantDailyGoal:        2500, // 默认 70kg, moderate 系数
			wantElectrolytesGoal: 1250,
			wantProteinGoal:      105,
		},
		{
			name: "zero weight uses default weight",
			profile: &model.Profile{
				WeightKG:      0,
				ActivityLevel: model.ActivitySedentary,
			},
			wantDailyGoal:        2100,
			wantElectrolytesGoal: 1050,
			wantProteinGoal:      105,
		},
		{
			name: "heavier guest",
			profile: &model.Profile{
				WeightKG:      90,
				ActivityLevel: model.ActivityActive,
			},
			wantDailyGoal:        3500, // 90*30*1.3 = 3510 取整到 50
			wantElectrolytesGoal: 1750,
			wantProteinGoal:      135,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			needs := CalculateNeeds(tt.profile)
			if needs.DailyGoalML != tt.wantDailyGoal {
				t.Errorf("DailyGoalML = %d, want %d", needs.DailyGoalML, tt.wantDailyGoal)
			}
			if needs.ElectrolytesGoalMG != tt.wantElectrolytesGoal {
				t.Errorf("ElectrolytesGoalMG = %d, want %d", needs.ElectrolytesGoalMG, tt.wantElectrolytesGoal)
			}
			if needs.ProteinGoalG != tt.wantProteinGoal {
				t.Errorf("ProteinGoalG = %d, want %d", needs.ProteinGoalG, tt.wantProteinGoal)
			}
		})
	}
}

func TestCalculateNeedsGoalIsMultipleOf50(t *testing.T) {
	weights := []float64{45, 52.5, 61, 70, 83.3, 99, 120}
	levels := []string{
		model.ActivitySedentary,
		model.ActivityLight,
		model.ActivityModerate,
		model.ActivityActive,
		model.ActivityVeryActive,
	}

	for _, w := range weights {
		for _, level := range levels {
			needs := CalculateNeeds(&model.Profile{WeightKG: w, ActivityLevel: level})
			if needs.DailyGoalML%50 != 0 {
				t.Errorf("DailyGoalML = %d for %.1fkg %s, want multiple of 50", needs.DailyGoalML, w, level)
			}
			if needs.DailyGoalML <= 0 {
				t.Errorf("DailyGoalML = %d for %.1fkg %s, want > 0", needs.DailyGoalML, w, level)
			}
		}
	}
}

func TestCalculateNeedsIdempotent(t *testing.T) {
	p := &model.Profile{WeightKG: 70, ActivityLevel: model.ActivityModerate}

	first := CalculateNeeds(p)
	second := CalculateNeeds(p)

	if first != second {
		t.Errorf("CalculateNeeds not deterministic: %+v vs %+v", first, second)
	}
}
