package chat

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/thewaterbar/waterbar/internal/config"
	waterbarmodel "github.com/thewaterbar/waterbar/internal/model"
	"github.com/thewaterbar/waterbar/internal/repository"
	"github.com/thewaterbar/waterbar/internal/service/hydration"
	"github.com/thewaterbar/waterbar/internal/service/profile"
)

// 客户端视图类型，决定教练的指令口径
const (
	ViewTypeLogs            = "logs"
	ViewTypeRecommendations = "recommendations"
	ViewTypeActions         = "actions"
)

// Service AI 教练对话服务
// 把补水工具挂到 eino ChatModelAgent 上，模型通过工具调用读写会话状态
type Service struct {
	cfg        *config.Config
	state      *StateManager
	hydSvc     *hydration.Service
	profileSvc *profile.Service
	convos     repository.ConversationStore
	tools      []tool.BaseTool
}

// NewService 创建对话服务
func NewService(
	cfg *config.Config,
	state *StateManager,
	hydSvc *hydration.Service,
	profileSvc *profile.Service,
	convos repository.ConversationStore,
) *Service {
	return &Service{
		cfg:        cfg,
		state:      state,
		hydSvc:     hydSvc,
		profileSvc: profileSvc,
		convos:     convos,
		tools:      newTools(hydSvc, profileSvc),
	}
}

// ChatRequest 对话请求
type ChatRequest struct {
	Message      string   `json:"message" binding:"required"`
	ViewType     string   `json:"view_type"`
	Location     string   `json:"location"`
	Temperature  *float64 `json:"temperature"`
	Humidity     *float64 `json:"humidity"`
	ResetSession bool     `json:"reset_session"`
}

// ChatResponse 对话响应
type ChatResponse struct {
	Answer      string `json:"answer"`
	SessionID   string `json:"session_id"`
	SessionType string `json:"session_type"`
	ResponseID  string `json:"response_id"`
}

// StreamEvent 流式事件
type StreamEvent struct {
	Type     string `json:"type"` // start, message, tool_call, error, end
	Data     string `json:"data"`
	ToolName string `json:"tool_name,omitempty"`
}

// newToolCallingChatModel 创建支持工具调用的 ChatModel
func (s *Service) newToolCallingChatModel(ctx context.Context) (model.ToolCallingChatModel, error) {
	aiCfg := s.cfg.AI

	var apiKey, baseURL, modelName string

	switch aiCfg.Provider {
	case "openai":
		apiKey = aiCfg.OpenAI.APIKey
		baseURL = aiCfg.OpenAI.BaseURL
		modelName = aiCfg.OpenAI.Model
	case "deepseek":
		apiKey = aiCfg.DeepSeek.APIKey
		baseURL = aiCfg.DeepSeek.BaseURL
		modelName = aiCfg.DeepSeek.Model
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", aiCfg.Provider)
	}

	if apiKey == "" {
		return nil, fmt.Errorf("api_key is required for provider: %s", aiCfg.Provider)
	}

	if modelName == "" {
		modelName = "gpt-4o-mini"
	}

	temperature := float32(0.7)

	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      apiKey,
		BaseURL:     baseURL,
		Model:       modelName,
		Temperature: &temperature,
	})
}

// createAgent 创建 eino Agent
func (s *Service) createAgent(ctx context.Context, instruction string) (*adk.ChatModelAgent, error) {
	chatModel, err := s.newToolCallingChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	maxIterations := s.cfg.AI.ToolRounds
	if maxIterations <= 0 {
		maxIterations = 5
	}

	agentCfg := &adk.ChatModelAgentConfig{
		Name:          "water_bar_coach",
		Description:   "Hydration coach for The Water Bar",
		Instruction:   instruction,
		Model:         chatModel,
		MaxIterations: maxIterations,
	}

	if len(s.tools) > 0 {
		agentCfg.ToolsConfig = adk.ToolsConfig{
			ToolsNodeConfig: compose.ToolsNodeConfig{
				Tools: s.tools,
			},
		}
	}

	return adk.NewChatModelAgent(ctx, agentCfg)
}

// buildInstruction 按视图类型组装教练指令
func buildInstruction(viewType string, session *waterbarmodel.Session, sessionType string) string {
	base := `You are the hydration coach at The Water Bar. You help guests track fluid,
electrolyte and protein intake over a 24-hour session and keep them on pace to hit
their daily goal.

Rules:
- Always work against the guest's current session. Use get_hydration_status before
  making claims about progress.
- When the guest reports drinking or eating something, log it with log_water_intake
  before replying.
- Use update_user_profile when the guest shares weight, height or activity changes.
- Keep answers short, friendly and concrete. Use millilitres and grams.`

	var viewHint string
	switch viewType {
	case ViewTypeRecommendations:
		viewHint = `
The guest is on the recommendations view. Lead with what to drink next: call
get_recommendations and turn the result into one or two actionable suggestions.`
	case ViewTypeActions:
		viewHint = `
The guest is on the quick actions view. Expect short commands like "log 250ml water".
Log the intake, then confirm with the updated totals in one sentence.`
	default:
		viewHint = `
The guest is on the logs view. Summarise recent intake and remaining goal when asked,
and log any intake they mention.`
	}

	sessionInfo := ""
	if session != nil {
		sessionInfo = fmt.Sprintf(`

Current session: %s (%s), started %s.`,
			session.ID, sessionType, session.StartAt.Format(time.RFC3339))
	}

	return base + viewHint + sessionInfo
}

const historyExpiredHint = `

The guest has talked to you earlier in this session but those messages are no
longer available. Do not pretend to remember them; rely on the tools for
current state.`

// turnInstruction 组装本轮指令
// 历史已过期但对话游标还在时提示教练上下文缺失
func (s *Service) turnInstruction(userID string, req *ChatRequest, resolved *hydration.StartSessionResult, history []*schema.Message) string {
	instruction := buildInstruction(req.ViewType, resolved.Session, resolved.SessionType)

	if len(history) == 0 {
		if conv, err := s.convos.Get(userID, resolved.Session.ID); err == nil && conv != nil && conv.LastResponseID != "" {
			instruction += historyExpiredHint
		}
	}

	return instruction
}

// resolveSession 解析对话所依附的补水会话
func (s *Service) resolveSession(ctx context.Context, userID string, req *ChatRequest) (*hydration.StartSessionResult, error) {
	return s.hydSvc.ResolveSession(ctx, userID, &hydration.StartSessionRequest{
		Location:    req.Location,
		Temperature: req.Temperature,
		Humidity:    req.Humidity,
		Reset:       req.ResetSession,
	})
}

// Chat 同步对话
func (s *Service) Chat(ctx context.Context, userID string, req *ChatRequest) (*ChatResponse, error) {
	resolved, err := s.resolveSession(ctx, userID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	ctx = WithCaller(ctx, userID, resolved.Session.ID)

	history := s.loadHistory(ctx, userID, resolved.Session.ID)

	einoAgent, err := s.createAgent(ctx, s.turnInstruction(userID, req, resolved, history))
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	messages := buildMessages(history, req.Message)

	iter := einoAgent.Run(ctx, &adk.AgentInput{
		Messages:        messages,
		EnableStreaming: false,
	})

	var result string
	for {
		event, ok := iter.Next()
		if !ok {
			break
		}

		if event.Err != nil {
			if event.Err == io.EOF {
				break
			}
			return nil, fmt.Errorf("agent event error: %w", event.Err)
		}

		if event.Output != nil && event.Output.MessageOutput != nil {
			msg, err := event.Output.MessageOutput.GetMessage()
			if err != nil {
				continue
			}
			if msg.Role == schema.Assistant {
				result = msg.Content
			}
		}
	}

	responseID := s.saveExchange(ctx, userID, resolved.Session.ID, req.Message, result)

	return &ChatResponse{
		Answer:      result,
		SessionID:   resolved.Session.ID,
		SessionType: resolved.SessionType,
		ResponseID:  responseID,
	}, nil
}

// Stream 流式对话
func (s *Service) Stream(ctx context.Context, userID string, req *ChatRequest) (<-chan StreamEvent, error) {
	resolved, err := s.resolveSession(ctx, userID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	ctx = WithCaller(ctx, userID, resolved.Session.ID)

	history := s.loadHistory(ctx, userID, resolved.Session.ID)

	einoAgent, err := s.createAgent(ctx, s.turnInstruction(userID, req, resolved, history))
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	messages := buildMessages(history, req.Message)

	iter := einoAgent.Run(ctx, &adk.AgentInput{
		Messages:        messages,
		EnableStreaming: true,
	})

	outCh := make(chan StreamEvent, 10)

	go func() {
		defer close(outCh)

		var fullAnswer string
	loop:
		for {
			event, ok := iter.Next()
			if !ok {
				break
			}

			if event.Err != nil {
				if event.Err == io.EOF {
					break
				}
				if !emit(ctx, outCh, StreamEvent{Type: "error", Data: event.Err.Error()}) {
					break
				}
				continue
			}

			if event.Output != nil && event.Output.MessageOutput != nil {
				msgVar := event.Output.MessageOutput

				if msgVar.IsStreaming && msgVar.MessageStream != nil {
					if !emit(ctx, outCh, StreamEvent{Type: "start"}) {
						break loop
					}

					for {
						chunk, err := msgVar.MessageStream.Recv()
						if err == io.EOF {
							break
						}
						if err != nil {
							if !emit(ctx, outCh, StreamEvent{Type: "error", Data: err.Error()}) {
								break loop
							}
							break
						}

						if !emit(ctx, outCh, StreamEvent{Type: "message", Data: chunk.Content}) {
							break loop
						}

						fullAnswer += chunk.Content
					}
				} else if msgVar.Message != nil {
					if msgVar.Role == schema.Assistant {
						if !emit(ctx, outCh, StreamEvent{Type: "message", Data: msgVar.Message.Content}) {
							break loop
						}
						fullAnswer = msgVar.Message.Content
					} else if msgVar.Role == schema.Tool {
						if !emit(ctx, outCh, StreamEvent{
							Type:     "tool_call",
							ToolName: msgVar.ToolName,
							Data:     msgVar.Message.Content,
						}) {
							break loop
						}
					}
				}
			}

			if event.Action != nil && event.Action.Exit {
				break
			}
		}

		// 客户端可能已断开，落库不依赖请求上下文
		responseID := s.saveExchange(context.WithoutCancel(ctx), userID, resolved.Session.ID, req.Message, fullAnswer)
		emit(ctx, outCh, StreamEvent{Type: "end", Data: responseID})
	}()

	return outCh, nil
}

// emit 向事件通道写入，客户端断开时放弃写入
func emit(ctx context.Context, ch chan<- StreamEvent, ev StreamEvent) bool {
	select {
	case ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// RunForAnswer 运行一轮对话并只返回文本，供仪表盘复用
func (s *Service) RunForAnswer(ctx context.Context, userID string, req *ChatRequest) (string, string, error) {
	resp, err := s.Chat(ctx, userID, req)
	if err != nil {
		return "", "", err
	}
	return resp.Answer, resp.SessionID, nil
}

// loadHistory 从延续状态加载历史消息
func (s *Service) loadHistory(ctx context.Context, userID, sessionID string) []*schema.Message {
	state, err := s.state.Load(ctx, userID)
	if err != nil {
		return nil
	}

	// 仅续用同一会话的历史
	if state.SessionID != "" && state.SessionID != sessionID {
		return nil
	}

	return state.Messages
}

// saveExchange 保存本轮问答并登记对话游标
// 返回标识本轮的 response id，同一个值写入延续状态、对话表并回给客户端
func (s *Service) saveExchange(ctx context.Context, userID, sessionID, query, answer string) string {
	responseID := uuid.New().String()

	if err := s.state.AppendExchange(ctx, userID, sessionID, query, answer, responseID); err != nil {
		return ""
	}

	_ = s.convos.Upsert(&waterbarmodel.Conversation{
		UserID:         userID,
		SessionID:      sessionID,
		LastResponseID: responseID,
	})

	return responseID
}

// buildMessages 构建消息列表
func buildMessages(history []*schema.Message, query string) []adk.Message {
	result := make([]adk.Message, 0, len(history)+1)
	for _, msg := range history {
		result = append(result, &schema.Message{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	result = append(result, &schema.Message{
		Role:    schema.User,
		Content: query,
	})
	return result
}
