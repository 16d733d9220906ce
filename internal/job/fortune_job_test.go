package job

import (
	"Tianji/internal/model"
	"Tianji/internal/service"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubUserRepo struct {
	ids []uint64
}

func (s *stubUserRepo) GetUserWithDetail(ctx context.Context, userID uint64) (*model.User, error) {
	return &model.User{ID: userID}, nil
}

func (s *stubUserRepo) ListActiveUserIDs(ctx context.Context, lastID uint64, limit int) ([]uint64, error) {
	var page []uint64
	for _, id := range s.ids {
		if id > lastID {
			page = append(page, id)
		}
		if len(page) == limit {
			break
		}
	}
	return page, nil
}

type stubFortuneService struct {
	calls   []uint64
	failFor map[uint64]error
}

func (s *stubFortuneService) EnsureDaily(ctx context.Context, userID uint64, day string) (*model.DailyContent, error) {
	s.calls = append(s.calls, userID)
	if err, ok := s.failFor[userID]; ok {
		return nil, err
	}
	return &model.DailyContent{ID: userID, SubjectKey: service.UserSubjectKey(userID), Day: day}, nil
}

// 单个用户失败不影响其他人，统计口径：尝试 3、成功 2、失败 1
func TestFortuneBatch_FailureIsolated(t *testing.T) {
	svc := &stubFortuneService{failFor: map[uint64]error{
		2: errors.New("模型超时"),
	}}
	j := NewFortuneBatchJob(&stubUserRepo{ids: []uint64{1, 2, 3}}, svc, nil)

	report, notified := j.runFortune(context.Background(), "2026-08-31")

	assert.Equal(t, 3, report.Attempted)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, []uint64{1, 3}, notified)
}

func TestFortuneBatch_CursorPagination(t *testing.T) {
	ids := make([]uint64, 0, batchPageSize+50)
	for i := 1; i <= batchPageSize+50; i++ {
		ids = append(ids, uint64(i))
	}
	svc := &stubFortuneService{}
	j := NewFortuneBatchJob(&stubUserRepo{ids: ids}, svc, nil)

	report, _ := j.runFortune(context.Background(), "2026-08-31")

	assert.Equal(t, len(ids), report.Attempted)
	assert.Equal(t, len(ids), report.Succeeded)
	assert.Equal(t, len(ids), len(svc.calls))
}

func TestFortuneBatch_RateLimitedCountedAsFailed(t *testing.T) {
	svc := &stubFortuneService{failFor: map[uint64]error{
		1: service.ErrServiceBusy,
	}}
	j := NewFortuneBatchJob(&stubUserRepo{ids: []uint64{1}}, svc, nil)

	report, notified := j.runFortune(context.Background(), "2026-08-31")

	assert.Equal(t, 1, report.Failed)
	assert.Empty(t, notified)
}
