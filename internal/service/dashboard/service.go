// Package dashboard 生成结构化仪表盘数据
// 由 AI 教练产出 JSON，解析失败时先修复再回退为纯文本
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/thewaterbar/waterbar/internal/service/chat"
	"github.com/thewaterbar/waterbar/internal/service/hydration"
)

// Service 仪表盘服务
type Service struct {
	chatSvc *chat.Service
	hydSvc  *hydration.Service
}

// NewService 创建仪表盘服务
func NewService(chatSvc *chat.Service, hydSvc *hydration.Service) *Service {
	return &Service{
		chatSvc: chatSvc,
		hydSvc:  hydSvc,
	}
}

// Request 仪表盘请求
type Request struct {
	Location    string   `json:"location"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
}

// Summary 当日摄入汇总
type Summary struct {
	WaterIntakeML       int `json:"waterIntake"`
	ElectrolyteIntakeML int `json:"electrolyteIntake"`
	ProteinIntakeG      int `json:"proteinIntake"`
	DailyGoalML         int `json:"dailyGoal"`
}

// Data 结构化仪表盘数据
type Data struct {
	HydrationPercentage int                     `json:"hydrationPercentage"`
	TimeRemaining       string                  `json:"timeRemaining"`
	RecommendedIntakeML int                     `json:"recommendedIntake"`
	TodaySummary        *Summary                `json:"todaySummary,omitempty"`
	RecentEvents        []hydration.RecentEvent `json:"recentEvents,omitempty"`
	AIMessage           string                  `json:"aiMessage"`
}

// Response 仪表盘响应
// 模型输出无法解析时 Dashboard 为空，RawText 携带原文并置 ParseError
type Response struct {
	Dashboard  *Data  `json:"dashboard,omitempty"`
	RawText    string `json:"raw_text,omitempty"`
	ParseError bool   `json:"parse_error,omitempty"`
	SessionID  string `json:"session_id"`
}

const dashboardPrompt = `Generate my hydration dashboard. Respond with ONLY a JSON object,
no markdown fences and no prose, using exactly these keys:
{"hydrationPercentage": <int 0-100>, "timeRemaining": "<Hh Mm>",
"recommendedIntake": <int ml>, "todaySummary": {"waterIntake": <int ml>,
"electrolyteIntake": <int ml>, "proteinIntake": <int g>, "dailyGoal": <int ml>},
"recentEvents": [{"time": "<h:mm AM>", "message": "<text>"}], "aiMessage": "<one sentence>"}
Use get_hydration_status and get_recommendations for the numbers.`

// Generate 生成仪表盘
func (s *Service) Generate(ctx context.Context, userID string, req *Request) (*Response, error) {
	if req == nil {
		req = &Request{}
	}

	answer, sessionID, err := s.chatSvc.RunForAnswer(ctx, userID, &chat.ChatRequest{
		Message:     dashboardPrompt,
		ViewType:    chat.ViewTypeLogs,
		Location:    req.Location,
		Temperature: req.Temperature,
		Humidity:    req.Humidity,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate dashboard: %w", err)
	}

	data, ok := parseDashboard(answer)
	if !ok {
		return &Response{
			RawText:    answer,
			ParseError: true,
			SessionID:  sessionID,
		}, nil
	}

	// 用时间线聚合兜底缺失字段，模型只负责文案
	s.fillFromTimeline(ctx, userID, sessionID, data)

	return &Response{
		Dashboard: data,
		SessionID: sessionID,
	}, nil
}

// parseDashboard 解析模型输出，失败时先尝试 jsonrepair
func parseDashboard(raw string) (*Data, bool) {
	text := stripFences(raw)

	var data Data
	if err := json.Unmarshal([]byte(text), &data); err == nil {
		return &data, true
	}

	repaired, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return nil, false
	}

	if err := json.Unmarshal([]byte(repaired), &data); err != nil {
		return nil, false
	}

	return &data, true
}

// stripFences 去掉模型偶尔加上的 markdown 代码块
func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}
	return text
}

// fillFromTimeline 用服务端聚合覆盖数字字段，避免模型幻写
func (s *Service) fillFromTimeline(ctx context.Context, userID, sessionID string, data *Data) {
	status, err := s.hydSvc.Status(ctx, userID, sessionID)
	if err != nil {
		return
	}

	data.HydrationPercentage = status.PercentComplete
	data.TimeRemaining = status.TimeRemaining
	data.TodaySummary = &Summary{
		WaterIntakeML:       int(status.WaterIntakeML),
		ElectrolyteIntakeML: int(status.ElectrolyteIntakeML),
		ProteinIntakeG:      int(status.ProteinIntakeG),
		DailyGoalML:         status.DailyGoalML,
	}
	data.RecentEvents = status.RecentEvents
}
