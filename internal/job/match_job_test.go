package job

import (
	"Tianji/internal/model"
	"Tianji/internal/service"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubRelationshipRepo struct {
	rels []*model.Relationship
}

func (s *stubRelationshipRepo) GetByUser(ctx context.Context, userID uint64) (*model.Relationship, error) {
	return nil, nil
}

func (s *stubRelationshipRepo) ListActive(ctx context.Context, lastID uint64, limit int) ([]*model.Relationship, error) {
	var page []*model.Relationship
	for _, rel := range s.rels {
		if rel.ID > lastID {
			page = append(page, rel)
		}
		if len(page) == limit {
			break
		}
	}
	return page, nil
}

type stubGroupRepo struct {
	members map[uint64][]uint64
	order   []uint64
}

func (s *stubGroupRepo) ListGroupIDs(ctx context.Context, lastID uint64, limit int) ([]uint64, error) {
	var page []uint64
	for _, gid := range s.order {
		if gid > lastID {
			page = append(page, gid)
		}
		if len(page) == limit {
			break
		}
	}
	return page, nil
}

func (s *stubGroupRepo) ListMemberIDs(ctx context.Context, groupID uint64) ([]uint64, error) {
	return s.members[groupID], nil
}

func (s *stubGroupRepo) IsMember(ctx context.Context, groupID uint64, userID uint64) (bool, error) {
	for _, m := range s.members[groupID] {
		if m == userID {
			return true, nil
		}
	}
	return false, nil
}

type stubMatchService struct {
	couplePairs []string
	groupPairs  []string
	failPair    string
}

func (s *stubMatchService) EnsureCoupleDaily(ctx context.Context, userID uint64, day string) (*model.DailyContent, error) {
	return nil, errors.New("batch 不走这条路径")
}

func (s *stubMatchService) EnsureCouplePairDaily(ctx context.Context, a, b uint64, day string) (*model.DailyContent, error) {
	key := service.CoupleSubjectKey(a, b)
	s.couplePairs = append(s.couplePairs, key)
	if key == s.failPair {
		return nil, errors.New("生成失败")
	}
	return &model.DailyContent{SubjectKey: key, Day: day}, nil
}

func (s *stubMatchService) EnsureGroupPairDaily(ctx context.Context, groupID, a, b uint64, day string) (*model.DailyContent, error) {
	key := service.GroupPairSubjectKey(groupID, a, b)
	s.groupPairs = append(s.groupPairs, key)
	if key == s.failPair {
		return nil, errors.New("生成失败")
	}
	return &model.DailyContent{SubjectKey: key, Day: day}, nil
}

func TestMatchBatch_CouplesEnumerated(t *testing.T) {
	svc := &stubMatchService{failPair: "couple:3:4"}
	j := NewMatchBatchJob(&stubRelationshipRepo{rels: []*model.Relationship{
		{ID: 1, UserLowID: 1, UserHighID: 2},
		{ID: 2, UserLowID: 3, UserHighID: 4},
		{ID: 3, UserLowID: 5, UserHighID: 6},
	}}, &stubGroupRepo{}, svc)

	report := j.runCouples(context.Background(), "2026-08-31")

	assert.Equal(t, 3, report.Attempted)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, []string{"couple:1:2", "couple:3:4", "couple:5:6"}, svc.couplePairs)
}

// n 个成员产生 n*(n-1)/2 个组合，每个组合恰好一次
func TestMatchBatch_GroupPairCombinations(t *testing.T) {
	svc := &stubMatchService{}
	j := NewMatchBatchJob(&stubRelationshipRepo{}, &stubGroupRepo{
		order:   []uint64{10},
		members: map[uint64][]uint64{10: {1, 2, 3, 4}},
	}, svc)

	report := j.runGroupPairs(context.Background(), "2026-08-31")

	assert.Equal(t, 6, report.Attempted)
	assert.Equal(t, 6, report.Succeeded)

	seen := make(map[string]int)
	for _, key := range svc.groupPairs {
		seen[key]++
	}
	assert.Len(t, seen, 6)
	for i := 1; i <= 4; i++ {
		for k := i + 1; k <= 4; k++ {
			assert.Equal(t, 1, seen[fmt.Sprintf("group:10:%d:%d", i, k)])
		}
	}
}

func TestMatchBatch_MultipleGroups(t *testing.T) {
	svc := &stubMatchService{}
	j := NewMatchBatchJob(&stubRelationshipRepo{}, &stubGroupRepo{
		order: []uint64{10, 20},
		members: map[uint64][]uint64{
			10: {1, 2},
			20: {3, 4, 5},
		},
	}, svc)

	report := j.runGroupPairs(context.Background(), "2026-08-31")

	assert.Equal(t, 1+3, report.Attempted)
	assert.Equal(t, 1+3, report.Succeeded)
}
