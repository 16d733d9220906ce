package service

import (
	"Tianji/internal/model"
	"Tianji/internal/pkg/llm"
	"Tianji/internal/pkg/mongo"
	"Tianji/internal/repository"
	"context"
	"sync"
	"time"
)

// fakeContentRepo 内存版内容存储，靠互斥锁模拟存储层唯一约束
type fakeContentRepo struct {
	mu     sync.Mutex
	rows   map[string]*model.DailyContent
	nextID uint64

	createErr       error
	alwaysDuplicate bool
	missFirstN      int
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{rows: make(map[string]*model.DailyContent)}
}

func contentKey(subjectKey, day string) string {
	return subjectKey + "|" + day
}

func (s *fakeContentRepo) GetByDay(ctx context.Context, subjectKey string, day string) (*model.DailyContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.missFirstN > 0 {
		s.missFirstN--
		return nil, nil
	}

	row, ok := s.rows[contentKey(subjectKey, day)]
	if !ok {
		return nil, nil
	}
	return row, nil
}

func (s *fakeContentRepo) Create(ctx context.Context, content *model.DailyContent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return s.createErr
	}
	if s.alwaysDuplicate {
		return repository.ErrContentExists
	}

	key := contentKey(content.SubjectKey, content.Day)
	if _, ok := s.rows[key]; ok {
		return repository.ErrContentExists
	}

	s.nextID++
	content.ID = s.nextID
	content.CreatedAt = time.Now()
	s.rows[key] = content
	return nil
}

func (s *fakeContentRepo) rowCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// fakeGenerator 可编程生成器，记录调用次数
type fakeGenerator struct {
	mu    sync.Mutex
	calls int
	res   *llm.FortuneResponse
	err   error
}

func (s *fakeGenerator) Generate(ctx context.Context, systemPrompt string, userPrompt string, opts llm.ParseOptions) (*llm.FortuneResponse, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	if s.res != nil {
		return s.res, nil
	}
	return &llm.FortuneResponse{Score: 77, Content: "万事顺遂", Raw: `{"score":77,"content":"万事顺遂"}`}, nil
}

func (s *fakeGenerator) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// fakeUserRepo 内存用户画像
type fakeUserRepo struct {
	users map[uint64]*model.User
}

func newFakeUserRepo(ids ...uint64) *fakeUserRepo {
	users := make(map[uint64]*model.User, len(ids))
	for _, id := range ids {
		gender := uint8(1)
		birthday := "1998-06-15"
		mbti := "INFP"
		users[id] = &model.User{
			ID: id,
			UserDetail: model.UserDetail{
				UserID:   id,
				Nickname: "用户",
				Gender:   &gender,
				Birthday: &birthday,
				Calendar: 1,
				MBTI:     &mbti,
			},
		}
	}
	return &fakeUserRepo{users: users}
}

func (s *fakeUserRepo) GetUserWithDetail(ctx context.Context, userID uint64) (*model.User, error) {
	return s.users[userID], nil
}

func (s *fakeUserRepo) ListActiveUserIDs(ctx context.Context, lastID uint64, limit int) ([]uint64, error) {
	var ids []uint64
	for id := range s.users {
		if id > lastID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// fakeRelationshipRepo 单条情侣关系
type fakeRelationshipRepo struct {
	rel *model.Relationship
}

func (s *fakeRelationshipRepo) GetByUser(ctx context.Context, userID uint64) (*model.Relationship, error) {
	if s.rel == nil {
		return nil, nil
	}
	if s.rel.UserLowID == userID || s.rel.UserHighID == userID {
		return s.rel, nil
	}
	return nil, nil
}

func (s *fakeRelationshipRepo) ListActive(ctx context.Context, lastID uint64, limit int) ([]*model.Relationship, error) {
	if s.rel == nil || s.rel.ID <= lastID {
		return nil, nil
	}
	return []*model.Relationship{s.rel}, nil
}

// fakeGroupRepo 单群成员表
type fakeGroupRepo struct {
	groupID uint64
	members []uint64
}

func (s *fakeGroupRepo) ListGroupIDs(ctx context.Context, lastID uint64, limit int) ([]uint64, error) {
	if s.groupID > lastID {
		return []uint64{s.groupID}, nil
	}
	return nil, nil
}

func (s *fakeGroupRepo) ListMemberIDs(ctx context.Context, groupID uint64) ([]uint64, error) {
	if groupID != s.groupID {
		return nil, nil
	}
	return s.members, nil
}

func (s *fakeGroupRepo) IsMember(ctx context.Context, groupID uint64, userID uint64) (bool, error) {
	if groupID != s.groupID {
		return false, nil
	}
	for _, m := range s.members {
		if m == userID {
			return true, nil
		}
	}
	return false, nil
}

// fakeAuditRepo 记录审计条目
type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*mongo.GenerationLog
}

func (s *fakeAuditRepo) SaveLog(ctx context.Context, entry *mongo.GenerationLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *fakeAuditRepo) GetRecent(ctx context.Context, subjectKey string, limit int) ([]*mongo.GenerationLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries, nil
}
