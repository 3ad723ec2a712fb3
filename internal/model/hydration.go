package model

import "time"

// 记录类型取值
const (
	EventTypeWater       = "water"
	EventTypeDrink       = "drink"
	EventTypeElectrolyte = "electrolyte"
	EventTypeProtein     = "protein"
	EventTypeOther       = "other"
	EventTypeExercise    = "exercise"
	EventTypeFood        = "food"
)

// HydrationEvent 补水时间线记录，追加写入，属于且仅属于一个会话
// 液体量记录在 amount_ml，蛋白质等固体按克记录在 amount_g
type HydrationEvent struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"index;size:36;not null" json:"user_id"`
	SessionID string    `gorm:"index;size:36;not null" json:"session_id"`
	Type      string    `gorm:"size:20;index;not null" json:"type"`
	AmountML  float64   `json:"amount_ml"`
	AmountG   float64   `json:"amount_g"`
	InputID   string    `gorm:"size:36" json:"input_id"` // 匹配到的 input_library 条目
	Notes     string    `gorm:"type:text" json:"notes"`
	LoggedAt  time.Time `gorm:"index;not null" json:"logged_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (HydrationEvent) TableName() string {
	return "hydration_events"
}

// InputLibraryItem 输入库条目，按类别和容量匹配用户记录
type InputLibraryItem struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Category      string    `gorm:"size:20;index;not null" json:"category"`
	WaterML       float64   `json:"water_ml"`
	ElectrolyteMG float64   `json:"electrolyte_mg"`
	ProteinG      float64   `json:"protein_g"`
	Calories      float64   `json:"calories"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (InputLibraryItem) TableName() string {
	return "input_library"
}

// HydrationPlan 历史报名表，仅用于管理端用户迁移
type HydrationPlan struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	Email    string   `gorm:"index;size:255" json:"email"`
	WeightKG *float64 `json:"weight_kg"`
}

// TableName 指定表名
func (HydrationPlan) TableName() string {
	return "hydration_plan"
}
