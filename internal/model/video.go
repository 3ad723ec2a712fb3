package model

import "time"

// Video 视频库条目
type Video struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	URL             string    `gorm:"size:500;not null" json:"url"`
	Thumbnail       string    `gorm:"size:500" json:"thumbnail"`
	Category        string    `gorm:"size:100;index" json:"category"`
	DurationSeconds int       `json:"duration_seconds"`
	Sort            int       `gorm:"default:0" json:"sort"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (Video) TableName() string {
	return "videos"
}
