package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"

	"github.com/thewaterbar/waterbar/internal/service/hydration"
	"github.com/thewaterbar/waterbar/internal/service/profile"
)

// 调用方身份通过 context 注入，模型给出的参数仅作兜底
type ctxKey string

const (
	ctxKeyUserID    ctxKey = "waterbar_user_id"
	ctxKeySessionID ctxKey = "waterbar_session_id"
)

// WithCaller 把当前用户与会话写入 context，工具执行时读取
func WithCaller(ctx context.Context, userID, sessionID string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyUserID, userID)
	return context.WithValue(ctx, ctxKeySessionID, sessionID)
}

func callerUserID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyUserID).(string); ok {
		return v
	}
	return ""
}

func callerSessionID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeySessionID).(string); ok {
		return v
	}
	return ""
}

// StartSessionInput start_session 输入参数
type StartSessionInput struct {
	Location     string   `json:"location,omitempty" jsonschema_description:"用户所在位置"`
	Temperature  *float64 `json:"temperature,omitempty" jsonschema_description:"当前气温（摄氏度）"`
	Humidity     *float64 `json:"humidity,omitempty" jsonschema_description:"当前湿度（百分比）"`
	ResetSession bool     `json:"reset_session,omitempty" jsonschema_description:"是否强制重置会话"`
}

// StatusInput get_hydration_status 输入参数
type StatusInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema_description:"会话 ID，缺省使用当前会话"`
}

// LogIntakeInput log_water_intake 输入参数
type LogIntakeInput struct {
	SessionID string  `json:"session_id,omitempty" jsonschema_description:"会话 ID，缺省使用当前会话"`
	Type      string  `json:"type" jsonschema_description:"摄入类型: water, drink, electrolyte, protein, other"`
	AmountML  float64 `json:"amount_ml,omitempty" jsonschema_description:"液体量（毫升）"`
	AmountG   float64 `json:"amount_g,omitempty" jsonschema_description:"蛋白质量（克），仅 protein 类型使用"`
	Notes     string  `json:"notes,omitempty" jsonschema_description:"备注"`
}

// RecommendationsInput get_recommendations 输入参数
type RecommendationsInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema_description:"会话 ID，缺省使用当前会话"`
}

// ProfileInput get_user_profile 输入参数
type ProfileInput struct{}

// UpdateProfileInput update_user_profile 输入参数
type UpdateProfileInput struct {
	WeightKG      float64 `json:"weight_kg,omitempty" jsonschema_description:"体重（千克）"`
	HeightCM      float64 `json:"height_cm,omitempty" jsonschema_description:"身高（厘米）"`
	ActivityLevel string  `json:"activity_level,omitempty" jsonschema_description:"活动水平: sedentary, light, moderate, active, very_active"`
	Age           int     `json:"age,omitempty" jsonschema_description:"年龄"`
	Gender        string  `json:"gender,omitempty" jsonschema_description:"性别"`
	Location      string  `json:"location,omitempty" jsonschema_description:"位置"`
}

// newTools 初始化补水工具集
// 模型通过这些工具读写会话、时间线与档案；身份信息来自 context 而非模型参数
func newTools(hydSvc *hydration.Service, profileSvc *profile.Service) []tool.BaseTool {
	tools := []tool.BaseTool{}

	appendTool := func(t tool.InvokableTool, err error, name string) {
		if err != nil {
			log.Printf("Warning: failed to create %s tool: %v", name, err)
			return
		}
		tools = append(tools, t)
	}

	startSession, err := utils.InferTool(
		"start_session",
		"开始或续接一个 24 小时补水会话。已有活跃会话时复用，reset_session 为 true 时强制新建。",
		func(ctx context.Context, input *StartSessionInput) (string, error) {
			userID := callerUserID(ctx)
			if userID == "" {
				return "", fmt.Errorf("missing user identity")
			}

			result, err := hydSvc.ResolveSession(ctx, userID, &hydration.StartSessionRequest{
				Location:    input.Location,
				Temperature: input.Temperature,
				Humidity:    input.Humidity,
				Reset:       input.ResetSession,
			})
			if err != nil {
				return "", err
			}
			return marshalToolResult(result)
		},
	)
	appendTool(startSession, err, "start_session")

	status, err := utils.InferTool(
		"get_hydration_status",
		"获取当前会话的补水进度：已摄入水量、电解质、蛋白质、完成百分比与剩余时间。",
		func(ctx context.Context, input *StatusInput) (string, error) {
			userID := callerUserID(ctx)
			sessionID := input.SessionID
			if sessionID == "" {
				sessionID = callerSessionID(ctx)
			}
			if userID == "" || sessionID == "" {
				return "", fmt.Errorf("missing user or session identity")
			}

			result, err := hydSvc.Status(ctx, userID, sessionID)
			if err != nil {
				return "", err
			}
			return marshalToolResult(result)
		},
	)
	appendTool(status, err, "get_hydration_status")

	logIntake, err := utils.InferTool(
		"log_water_intake",
		"记录一次摄入（水、饮品、电解质或蛋白质），返回更新后的补水状态。",
		func(ctx context.Context, input *LogIntakeInput) (string, error) {
			userID := callerUserID(ctx)
			sessionID := input.SessionID
			if sessionID == "" {
				sessionID = callerSessionID(ctx)
			}
			if userID == "" || sessionID == "" {
				return "", fmt.Errorf("missing user or session identity")
			}

			result, err := hydSvc.LogEvent(ctx, userID, &hydration.LogEventRequest{
				SessionID: sessionID,
				Type:      input.Type,
				AmountML:  input.AmountML,
				AmountG:   input.AmountG,
				Notes:     input.Notes,
			})
			if err != nil {
				return "", err
			}
			return marshalToolResult(result)
		},
	)
	appendTool(logIntake, err, "log_water_intake")

	recommendations, err := utils.InferTool(
		"get_recommendations",
		"根据当前进度与环境生成下一步饮水建议和附近补水场所。",
		func(ctx context.Context, input *RecommendationsInput) (string, error) {
			userID := callerUserID(ctx)
			sessionID := input.SessionID
			if sessionID == "" {
				sessionID = callerSessionID(ctx)
			}
			if userID == "" || sessionID == "" {
				return "", fmt.Errorf("missing user or session identity")
			}

			result, err := hydSvc.Recommendations(ctx, userID, sessionID)
			if err != nil {
				return "", err
			}
			return marshalToolResult(result)
		},
	)
	appendTool(recommendations, err, "get_recommendations")

	getProfile, err := utils.InferTool(
		"get_user_profile",
		"读取用户档案（体重、活动水平等）以及由此计算的每日补水目标。",
		func(ctx context.Context, input *ProfileInput) (string, error) {
			userID := callerUserID(ctx)
			if userID == "" {
				return "", fmt.Errorf("missing user identity")
			}

			p, needs, err := profileSvc.Needs(ctx, userID)
			if err != nil {
				return "", err
			}
			return marshalToolResult(map[string]any{
				"profile": p,
				"needs":   needs,
			})
		},
	)
	appendTool(getProfile, err, "get_user_profile")

	updateProfile, err := utils.InferTool(
		"update_user_profile",
		"更新用户档案，仅修改提供的字段，返回更新后的档案与新目标。",
		func(ctx context.Context, input *UpdateProfileInput) (string, error) {
			userID := callerUserID(ctx)
			if userID == "" {
				return "", fmt.Errorf("missing user identity")
			}

			p, err := profileSvc.Update(ctx, userID, &profile.UpdateRequest{
				WeightKG:      input.WeightKG,
				HeightCM:      input.HeightCM,
				ActivityLevel: input.ActivityLevel,
				Age:           input.Age,
				Gender:        input.Gender,
				Location:      input.Location,
			})
			if err != nil {
				return "", err
			}
			return marshalToolResult(map[string]any{
				"profile": p,
				"needs":   profile.CalculateNeeds(p),
			})
		},
	)
	appendTool(updateProfile, err, "update_user_profile")

	return tools
}

// marshalToolResult 工具结果统一序列化为 JSON
func marshalToolResult(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal tool result: %w", err)
	}
	return string(data), nil
}
