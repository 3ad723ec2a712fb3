package hydration

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/thewaterbar/waterbar/internal/model"
)

// LogEventRequest 记录摄入请求
type LogEventRequest struct {
	SessionID string  `json:"session_id" binding:"required"`
	Type      string  `json:"type" binding:"required"`
	AmountML  float64 `json:"amount_ml"`
	AmountG   float64 `json:"amount_g"`
	Notes     string  `json:"notes"`
}

// LogEventResult 记录摄入结果，附带更新后的状态
type LogEventResult struct {
	Event   *model.HydrationEvent `json:"event"`
	Message string                `json:"message"`
	Status  *Status               `json:"hydrationStatus"`
}

// LogEvent 记录一次摄入
// 先在输入库中按类别做最近容量匹配（无匹配则新建条目），再追加时间线记录，
// 最后重新聚合并返回最新状态
func (s *Service) LogEvent(ctx context.Context, userID string, req *LogEventRequest) (*LogEventResult, error) {
	session, err := s.sessions.GetByID(req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	if session.UserID != userID {
		return nil, fmt.Errorf("session does not belong to user")
	}

	inputID, err := s.resolveLibraryItem(req)
	if err != nil {
		// 库匹配失败不阻断记录写入
		inputID = ""
	}

	event := &model.HydrationEvent{
		ID:        uuid.New().String(),
		UserID:    userID,
		SessionID: session.ID,
		Type:      req.Type,
		AmountML:  req.AmountML,
		AmountG:   req.AmountG,
		InputID:   inputID,
		Notes:     req.Notes,
		LoggedAt:  time.Now(),
	}

	if err := s.events.CreateEvent(event); err != nil {
		return nil, fmt.Errorf("failed to log event: %w", err)
	}

	status, err := s.Status(ctx, userID, session.ID)
	if err != nil {
		return nil, err
	}

	return &LogEventResult{
		Event:   event,
		Message: eventMessage(event),
		Status:  status,
	}, nil
}

// DeleteEvent 删除一条记录（用户显式操作）
func (s *Service) DeleteEvent(ctx context.Context, userID, eventID string) error {
	event, err := s.events.GetEventByID(eventID)
	if err != nil {
		return fmt.Errorf("event not found: %w", err)
	}
	if event.UserID != userID {
		return fmt.Errorf("event does not belong to user")
	}
	if err := s.events.DeleteEvent(eventID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// resolveLibraryItem 在输入库中按类别做最近容量匹配
// 无匹配时新建一个条目并返回其 ID
func (s *Service) resolveLibraryItem(req *LogEventRequest) (string, error) {
	items, err := s.events.ListLibraryByCategory(req.Type)
	if err != nil {
		return "", err
	}

	if len(items) > 0 {
		closest := items[0]
		for _, item := range items[1:] {
			if math.Abs(item.WaterML-req.AmountML) < math.Abs(closest.WaterML-req.AmountML) {
				closest = item
			}
		}
		return closest.ID, nil
	}

	item := newLibraryItem(req)
	if err := s.events.CreateLibraryItem(item); err != nil {
		return "", err
	}
	return item.ID, nil
}

// newLibraryItem 依据记录类型构造新的输入库条目
func newLibraryItem(req *LogEventRequest) *model.InputLibraryItem {
	item := &model.InputLibraryItem{
		ID:       uuid.New().String(),
		Name:     fmt.Sprintf("%s (%.0fml)", req.Type, req.AmountML),
		Category: req.Type,
	}

	switch req.Type {
	case model.EventTypeWater:
		item.WaterML = req.AmountML
	case model.EventTypeElectrolyte:
		item.WaterML = math.Round(req.AmountML * 0.8)
		item.ElectrolyteMG = 500
	case model.EventTypeProtein:
		item.Name = fmt.Sprintf("%s (%.0fg)", req.Type, req.AmountG)
		item.ProteinG = 20
	default:
		item.WaterML = math.Round(req.AmountML * 0.8)
	}

	return item
}
