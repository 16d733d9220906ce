package service

import (
	"Tianji/internal/model"
	"Tianji/internal/pkg/consts"
	"Tianji/internal/pkg/llm"
	"Tianji/internal/pkg/mongo"
	"Tianji/internal/repository"
	"context"

	"github.com/goccy/go-json"
)

type FortuneService interface {
	// EnsureDaily 保证 (用户, 日期) 的运势存在并返回，幂等
	EnsureDaily(ctx context.Context, userID uint64, day string) (*model.DailyContent, error)
}

type FortuneServiceImpl struct {
	generationCore
	userRepo repository.UserRepo
}

func NewFortuneService(
	userRepo repository.UserRepo,
	contentRepo repository.DailyContentRepo,
	generator ContentGenerator,
	auditRepo mongo.GenerationLogRepo,
) FortuneService {
	return &FortuneServiceImpl{
		generationCore: generationCore{
			contentRepo: contentRepo,
			generator:   generator,
			auditRepo:   auditRepo,
		},
		userRepo: userRepo,
	}
}

// fortunePromptPayload 个人运势的用户输入，字段顺序即序列化顺序，保证同日同人 prompt 稳定
type fortunePromptPayload struct {
	Day     string          `json:"day"`
	Weekday string          `json:"weekday"`
	Profile *SubjectProfile `json:"profile"`
}

func (s *FortuneServiceImpl) EnsureDaily(ctx context.Context, userID uint64, day string) (*model.DailyContent, error) {
	return s.ensure(ctx, &ensureRequest{
		SubjectKey:     UserSubjectKey(userID),
		Day:            day,
		Kind:           consts.SubjectKindUser,
		CacheKeyPrefix: consts.FortuneDailyKey,
		SystemPrompt:   llm.FortunePrompt(),
		buildUserPrompt: func(ctx context.Context) (string, error) {
			return s.buildPrompt(ctx, userID, day)
		},
	})
}

func (s *FortuneServiceImpl) buildPrompt(ctx context.Context, userID uint64, day string) (string, error) {
	user, err := s.userRepo.GetUserWithDetail(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	payload := &fortunePromptPayload{
		Day:     day,
		Weekday: ChineseWeekday(day),
		Profile: ProfileFromUser(user),
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
