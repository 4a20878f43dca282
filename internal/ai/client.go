package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL 是 OpenRouter 的聊天补全端点
	DefaultBaseURL = "https://openrouter.ai/api/v1/chat/completions"
	// DefaultModel 是默认使用的模型
	DefaultModel = "mistralai/mistral-small-3.2-24b-instruct:free"
	// DefaultTimeout 是单次请求的超时时间，超时即放弃，不做重试
	DefaultTimeout = 30 * time.Second

	maxTokens        = 100
	temperature      = 0.75
	topP             = 1.0
	frequencyPenalty = 0.0

	// 错误摘要最多保留 50 个字符
	maxErrDetailLen = 50
)

// DefaultMode 是未识别回复风格时的兜底风格
const DefaultMode = "funny"

// Modes 是允许的回复风格枚举
var Modes = []string{"funny", "helpful", "poetic", "sarcastic", "wise", "chaotic"}

// 不同回复风格对应的提示词模板
var modePrompts = map[string]string{
	"funny":     "You are a witty and humorous AI friend. Reply to this confession with light humor and supportive wit. Keep it friendly and funny:",
	"helpful":   "You are a supportive counselor. Reply to this confession with genuine, practical advice and empathy. Be constructive and encouraging:",
	"poetic":    "You are a creative poet. Reply to this confession using beautiful, metaphorical language and artistic expression:",
	"sarcastic": "You are a playfully sarcastic friend. Reply with gentle, good-natured sarcasm while still being supportive. Don't be mean:",
	"wise":      "You are a wise mentor. Reply to this confession with deep insight, wisdom, and thoughtful perspective:",
	"chaotic":   "You are an unhinged but caring friend. Reply in the most chaotic, random way possible while still being supportive and positive:",
}

// IsValidMode 判断回复风格是否为合法枚举值
func IsValidMode(mode string) bool {
	_, ok := modePrompts[mode]
	return ok
}

// ResultKind 标记回复生成的结果类别，调用方按类别分支而不是匹配文案子串
type ResultKind int

const (
	KindSuccess ResultKind = iota
	KindNotConfigured
	KindTransportError
	KindServerError
)

// Result 是回复生成的带标签结果，GenerateReply 永远不向调用方返回错误
type Result struct {
	Kind   ResultKind
	Text   string // Kind 为 KindSuccess 时的回复内容
	Status int    // Kind 为 KindServerError 时的 HTTP 状态码
	Detail string // Kind 为 KindTransportError 时的错误摘要
}

// Display 把结果渲染成可以直接展示给用户的文案
func (r Result) Display() string {
	switch r.Kind {
	case KindSuccess:
		return r.Text
	case KindNotConfigured:
		return "🤖 AI is taking a coffee break... (API key not configured)"
	case KindServerError:
		return fmt.Sprintf("🤖 AI is having technical difficulties... (Error %d)", r.Status)
	default:
		return fmt.Sprintf("🤖 AI is temporarily offline... (%s)", r.Detail)
	}
}

// Generator 定义回复生成接口，方便在测试中替换实现
type Generator interface {
	GenerateReply(ctx context.Context, text, mode string) Result
}

// Client 是 OpenRouter 聊天补全服务的客户端
type Client struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// NewClient 创建客户端，apiKey 允许为空（结果降级为 KindNotConfigured）
func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		APIKey:  apiKey,
		Model:   DefaultModel,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

var _ Generator = (*Client)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	MaxTokens        int           `json:"max_tokens"`
	Temperature      float64       `json:"temperature"`
	TopP             float64       `json:"top_p"`
	FrequencyPenalty float64       `json:"frequency_penalty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateReply 针对树洞内容生成一条指定风格的回复
// 只发一次请求，所有失败路径都映射成带标签的降级结果
func (c *Client) GenerateReply(ctx context.Context, text, mode string) Result {
	// 没有密钥时不发起任何网络调用
	if c.APIKey == "" {
		return Result{Kind: KindNotConfigured}
	}

	prompt, ok := modePrompts[mode]
	if !ok {
		prompt = modePrompts[DefaultMode]
	}

	reqBody := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "user", Content: fmt.Sprintf("%s\n\nConfession: '%s'\n\nReply in 1 sentence:", prompt, text)},
		},
		MaxTokens:        maxTokens,
		Temperature:      temperature,
		TopP:             topP,
		FrequencyPenalty: frequencyPenalty,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return transportResult(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return transportResult(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		zap.L().Warn("AI 请求失败", zap.Error(err))
		return transportResult(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		zap.L().Warn("AI 服务返回非成功状态", zap.Int("status", resp.StatusCode))
		return Result{Kind: KindServerError, Status: resp.StatusCode}
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return transportResult(err)
	}
	if len(out.Choices) == 0 {
		return transportResult(fmt.Errorf("response contained no choices"))
	}

	return Result{Kind: KindSuccess, Text: strings.TrimSpace(out.Choices[0].Message.Content)}
}

func transportResult(err error) Result {
	detail := err.Error()
	if len(detail) > maxErrDetailLen {
		detail = detail[:maxErrDetailLen]
	}
	return Result{Kind: KindTransportError, Detail: detail}
}
