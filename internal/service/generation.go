package service

import (
	"Tianji/internal/api/config"
	"Tianji/internal/model"
	"Tianji/internal/pkg/consts"
	"Tianji/internal/pkg/llm"
	"Tianji/internal/pkg/mongo"
	"Tianji/internal/pkg/redis"
	"Tianji/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
)

const defaultMaxContentLen = 300

// ContentGenerator 带重试的生成客户端抽象
type ContentGenerator interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string, opts llm.ParseOptions) (*llm.FortuneResponse, error)
}

// ensureRequest 一次"按日保证生成"的全部输入
// buildUserPrompt 只在存储未命中时才会被调用，命中快路径不碰画像
type ensureRequest struct {
	SubjectKey      string
	Day             string
	Kind            int8
	CacheKeyPrefix  string
	SystemPrompt    string
	buildUserPrompt func(ctx context.Context) (string, error)
}

// generationCore 读穿透、生成、竞争安全写入的公共骨架
// 不变式：无论多少调用方并发进来，同一 (subjectKey, day) 只会落一行，
// 且所有调用方拿到的都是那一行
type generationCore struct {
	contentRepo repository.DailyContentRepo
	generator   ContentGenerator
	auditRepo   mongo.GenerationLogRepo
}

func (s *generationCore) ensure(ctx context.Context, req *ensureRequest) (*model.DailyContent, error) {
	if cached := s.cacheGet(ctx, req); cached != nil {
		return cached, nil
	}

	existing, err := s.contentRepo.GetByDay(ctx, req.SubjectKey, req.Day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if existing != nil {
		s.cachePut(ctx, req, existing)
		return existing, nil
	}

	userPrompt, err := req.buildUserPrompt(ctx)
	if err != nil {
		return nil, err
	}

	parsed, err := s.generator.Generate(ctx, req.SystemPrompt, userPrompt, llm.ParseOptions{
		MinScore:      consts.ScoreMin,
		MaxScore:      consts.ScoreMax,
		MaxContentLen: maxContentLen(),
	})
	if err != nil {
		s.saveAudit(ctx, req, userPrompt, nil, err)
		if errors.Is(err, llm.ErrRateLimited) {
			return nil, fmt.Errorf("%w: %v", ErrServiceBusy, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	s.saveAudit(ctx, req, userPrompt, parsed, nil)

	content := &model.DailyContent{
		SubjectKey: req.SubjectKey,
		Day:        req.Day,
		Kind:       req.Kind,
		Score:      parsed.Score,
		Content:    parsed.Content,
	}

	err = s.contentRepo.Create(ctx, content)
	if err == nil {
		s.cachePut(ctx, req, content)
		return content, nil
	}

	if errors.Is(err, repository.ErrContentExists) {
		// 并发写入者赢得竞争，回读胜者并丢弃本次生成结果
		winner, rerr := s.contentRepo.GetByDay(ctx, req.SubjectKey, req.Day)
		if rerr != nil {
			return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, rerr)
		}
		if winner == nil {
			// 冲突却回读不到行：这是存储状态异常，不是正常竞争
			return nil, fmt.Errorf("%w: 唯一键冲突后回读不到当日内容 %s/%s", ErrGenerationFailed, req.SubjectKey, req.Day)
		}
		s.cachePut(ctx, req, winner)
		return winner, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
}

// cacheGet 当日缓存命中直接返回，Redis 未初始化时跳过
func (s *generationCore) cacheGet(ctx context.Context, req *ensureRequest) *model.DailyContent {
	if redis.GetRdbClient() == nil || req.CacheKeyPrefix == "" {
		return nil
	}

	raw, err := redis.GetValue(ctx, cacheKey(req))
	if err != nil || raw == "" {
		return nil
	}

	var content model.DailyContent
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		return nil
	}
	return &content
}

// cachePut 缓存到当日结束，失败只记日志
func (s *generationCore) cachePut(ctx context.Context, req *ensureRequest, content *model.DailyContent) {
	if redis.GetRdbClient() == nil || req.CacheKeyPrefix == "" {
		return
	}

	raw, err := json.Marshal(content)
	if err != nil {
		return
	}

	ttl := untilEndOfDay()
	if err := redis.SetWithExpiration(ctx, cacheKey(req), string(raw), ttl); err != nil {
		log.WarnContext(ctx, "当日内容写缓存失败", "key", cacheKey(req), "err", err)
	}
}

func cacheKey(req *ensureRequest) string {
	return req.CacheKeyPrefix + req.Day + ":" + req.SubjectKey
}

func untilEndOfDay() time.Duration {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24 * time.Hour)
	ttl := time.Until(midnight)
	if ttl < time.Minute {
		ttl = time.Minute
	}
	return ttl
}

// saveAudit 生成审计只进不改，写失败不影响主流程
func (s *generationCore) saveAudit(ctx context.Context, req *ensureRequest, userPrompt string, parsed *llm.FortuneResponse, genErr error) {
	if s.auditRepo == nil {
		return
	}

	entry := &mongo.GenerationLog{
		SubjectKey: req.SubjectKey,
		Day:        req.Day,
		Kind:       req.Kind,
		UserPrompt: userPrompt,
	}

	switch {
	case genErr == nil:
		entry.Outcome = mongo.GenerationOutcomeOK
		entry.RawResponse = parsed.Raw
		entry.Score = parsed.Score
	case errors.Is(genErr, llm.ErrRateLimited):
		entry.Outcome = mongo.GenerationOutcomeRateLimit
		entry.ErrMessage = genErr.Error()
	default:
		entry.Outcome = mongo.GenerationOutcomeFailed
		entry.ErrMessage = genErr.Error()
	}

	if err := s.auditRepo.SaveLog(ctx, entry); err != nil {
		log.WarnContext(ctx, "生成审计日志写入失败", "subject", req.SubjectKey, "err", err)
	}
}

func maxContentLen() int {
	if config.Cfg != nil && config.Cfg.LLM.MaxContentLen > 0 {
		return config.Cfg.LLM.MaxContentLen
	}
	return defaultMaxContentLen
}
