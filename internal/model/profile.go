package model

import "time"

// 活动水平取值
const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
)

// 默认值：无档案或档案缺字段时使用
const (
	DefaultWeightKG      = 70.0
	DefaultActivityLevel = ActivityModerate
)

// Profile 用户健康档案，ID 与用户 ID 相同
// 首次访问时以默认值创建，只更新不删除
type Profile struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	WeightKG        float64   `gorm:"default:70" json:"weight_kg"`
	HeightCM        float64   `json:"height_cm"`
	ActivityLevel   string    `gorm:"size:20;default:moderate" json:"activity_level"`
	BodyType        string    `gorm:"size:50" json:"body_type"`
	Age             int       `json:"age"`
	Gender          string    `gorm:"size:20" json:"gender"`
	Location        string    `gorm:"size:255" json:"location"`
	UnitsPreference string    `gorm:"size:10;default:metric" json:"units_preference"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Profile) TableName() string {
	return "profiles"
}
