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

type MatchService interface {
	// EnsureCoupleDaily 从发起方解析情侣关系后保证当日配对内容
	EnsureCoupleDaily(ctx context.Context, userID uint64, day string) (*model.DailyContent, error)
	// EnsureCouplePairDaily 直接按配对保证，batch 路径用
	EnsureCouplePairDaily(ctx context.Context, a, b uint64, day string) (*model.DailyContent, error)
	// EnsureGroupPairDaily 群内两人配对
	EnsureGroupPairDaily(ctx context.Context, groupID, a, b uint64, day string) (*model.DailyContent, error)
}

type MatchServiceImpl struct {
	generationCore
	userRepo         repository.UserRepo
	relationshipRepo repository.RelationshipRepo
	groupRepo        repository.GroupRepo
}

func NewMatchService(
	userRepo repository.UserRepo,
	relationshipRepo repository.RelationshipRepo,
	groupRepo repository.GroupRepo,
	contentRepo repository.DailyContentRepo,
	generator ContentGenerator,
	auditRepo mongo.GenerationLogRepo,
) MatchService {
	return &MatchServiceImpl{
		generationCore: generationCore{
			contentRepo: contentRepo,
			generator:   generator,
			auditRepo:   auditRepo,
		},
		userRepo:         userRepo,
		relationshipRepo: relationshipRepo,
		groupRepo:        groupRepo,
	}
}

// matchPromptPayload 配对输入，双方按小 ID 在前排列，保证同一配对 prompt 稳定
type matchPromptPayload struct {
	Day      string          `json:"day"`
	Weekday  string          `json:"weekday"`
	Relation string          `json:"relation"`
	Left     *SubjectProfile `json:"left"`
	Right    *SubjectProfile `json:"right"`
}

func (s *MatchServiceImpl) EnsureCoupleDaily(ctx context.Context, userID uint64, day string) (*model.DailyContent, error) {
	rel, err := s.relationshipRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rel == nil {
		return nil, ErrRelationshipNotFound
	}
	return s.EnsureCouplePairDaily(ctx, rel.UserLowID, rel.UserHighID, day)
}

func (s *MatchServiceImpl) EnsureCouplePairDaily(ctx context.Context, a, b uint64, day string) (*model.DailyContent, error) {
	if a == b {
		return nil, ErrSelfPair
	}

	return s.ensure(ctx, &ensureRequest{
		SubjectKey:     CoupleSubjectKey(a, b),
		Day:            day,
		Kind:           consts.SubjectKindCouple,
		CacheKeyPrefix: consts.MatchDailyKey,
		SystemPrompt:   llm.MatchPrompt(),
		buildUserPrompt: func(ctx context.Context) (string, error) {
			return s.buildPairPrompt(ctx, a, b, day, "情侣")
		},
	})
}

func (s *MatchServiceImpl) EnsureGroupPairDaily(ctx context.Context, groupID, a, b uint64, day string) (*model.DailyContent, error) {
	if a == b {
		return nil, ErrSelfPair
	}

	for _, uid := range []uint64{a, b} {
		isMember, err := s.groupRepo.IsMember(ctx, groupID, uid)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, ErrNotGroupMember
		}
	}

	return s.ensure(ctx, &ensureRequest{
		SubjectKey:     GroupPairSubjectKey(groupID, a, b),
		Day:            day,
		Kind:           consts.SubjectKindGroupPair,
		CacheKeyPrefix: consts.MatchDailyKey,
		SystemPrompt:   llm.MatchPrompt(),
		buildUserPrompt: func(ctx context.Context) (string, error) {
			return s.buildPairPrompt(ctx, a, b, day, "圈内成员")
		},
	})
}

func (s *MatchServiceImpl) buildPairPrompt(ctx context.Context, a, b uint64, day string, relation string) (string, error) {
	lo, hi := sortPair(a, b)

	left, err := s.userRepo.GetUserWithDetail(ctx, lo)
	if err != nil {
		return "", err
	}
	right, err := s.userRepo.GetUserWithDetail(ctx, hi)
	if err != nil {
		return "", err
	}
	if left == nil || right == nil {
		return "", ErrUserNotFound
	}

	payload := &matchPromptPayload{
		Day:      day,
		Weekday:  ChineseWeekday(day),
		Relation: relation,
		Left:     ProfileFromUser(left),
		Right:    ProfileFromUser(right),
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
