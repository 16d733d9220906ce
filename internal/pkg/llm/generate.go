package llm

import (
	"Tianji/internal/api/config"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
)

const (
	// MaxAttempts 上游偶发空响应或截断，重试两次足够，更多只会放大压力
	MaxAttempts = 2
	// backoffUnit 线性退避单位，第 n 次失败后等 n 秒
	backoffUnit = time.Second

	defaultAttemptTimeout = 10 * time.Second
)

// ErrRateLimited 上游限流，继续重试只会雪上加霜，调用方应立即返回"稍后再试"
var ErrRateLimited = errors.New("上游模型限流")

var errEmptyResponse = errors.New("模型返回为空")

// Client 带重试的生成客户端
type Client struct {
	model          llms.Model
	modelName      string
	attemptTimeout time.Duration
}

func NewClient() *Client {
	cfg := config.Cfg.LLM
	timeout := time.Duration(cfg.AttemptTimeout) * time.Second
	if timeout <= 0 {
		timeout = defaultAttemptTimeout
	}
	return &Client{
		model:          llmClient,
		modelName:      cfg.Model,
		attemptTimeout: timeout,
	}
}

// Generate 请求模型并解析结构化结果
// 空响应和解析失败都算一次可重试失败；限流直接打断，不消耗剩余预算
func (c *Client) Generate(ctx context.Context, systemPrompt string, userPrompt string, opts ParseOptions) (*FortuneResponse, error) {
	var lastErr error

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt-1) * backoffUnit):
			}
		}

		raw, err := c.fetchOnce(ctx, systemPrompt, userPrompt)
		if err != nil {
			if isRateLimited(err) {
				log.WarnContext(ctx, "AI大模型限流", "err", err)
				return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
			}
			log.WarnContext(ctx, "AI大模型请求失败", "attempt", attempt, "err", err)
			lastErr = err
			continue
		}

		if strings.TrimSpace(raw) == "" {
			log.WarnContext(ctx, "AI大模型返回空响应", "attempt", attempt)
			lastErr = errEmptyResponse
			continue
		}

		parsed, err := ParseFortune(raw, opts)
		if err != nil {
			log.WarnContext(ctx, "AI大模型返回数据解析失败", "attempt", attempt, "err", err)
			lastErr = err
			continue
		}

		return parsed, nil
	}

	return nil, fmt.Errorf("生成重试耗尽: %w", lastErr)
}

// fetchOnce 单次请求，带并发准入和单次超时
func (c *Client) fetchOnce(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	if err := TextSem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer TextSem.Release(1)

	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userPrompt),
			},
		},
	}

	resp, err := c.model.GenerateContent(attemptCtx, messages,
		llms.WithModel(c.modelName),
		llms.WithTemperature(0.7),
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Content, nil
}

// isRateLimited 识别上游限流的错误特征
func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "resource_exhausted")
}
