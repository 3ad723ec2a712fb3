package repository

import (
	"github.com/thewaterbar/waterbar/internal/model"
	"gorm.io/gorm"
)

// HydrationRepository 补水记录数据访问
type HydrationRepository struct {
	db *gorm.DB
}

// NewHydrationRepository 创建补水仓库
func NewHydrationRepository(db *gorm.DB) *HydrationRepository {
	return &HydrationRepository{db: db}
}

// CreateEvent 创建记录
func (r *HydrationRepository) CreateEvent(event *model.HydrationEvent) error {
	return r.db.Create(event).Error
}

// GetEventByID 获取单条记录
func (r *HydrationRepository) GetEventByID(id string) (*model.HydrationEvent, error) {
	var event model.HydrationEvent
	err := r.db.Where("id = ?", id).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ListEventsBySession 获取会话的全部记录，按时间升序
func (r *HydrationRepository) ListEventsBySession(sessionID string) ([]*model.HydrationEvent, error) {
	var events []*model.HydrationEvent
	err := r.db.Where("session_id = ?", sessionID).Order("logged_at ASC").Find(&events).Error
	return events, err
}

// DeleteEvent 删除记录（用户显式操作）
func (r *HydrationRepository) DeleteEvent(id string) error {
	return r.db.Delete(&model.HydrationEvent{}, "id = ?", id).Error
}

// ListLibraryByCategory 按类别获取输入库条目
func (r *HydrationRepository) ListLibraryByCategory(category string) ([]*model.InputLibraryItem, error) {
	var items []*model.InputLibraryItem
	err := r.db.Where("category = ?", category).Find(&items).Error
	return items, err
}

// CreateLibraryItem 创建输入库条目
func (r *HydrationRepository) CreateLibraryItem(item *model.InputLibraryItem) error {
	return r.db.Create(item).Error
}
