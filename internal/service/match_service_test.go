package service

import (
	"Tianji/internal/model"
	"Tianji/internal/pkg/consts"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatchService(contentRepo *fakeContentRepo, gen ContentGenerator) MatchService {
	return NewMatchService(
		newFakeUserRepo(1, 2, 3),
		&fakeRelationshipRepo{rel: &model.Relationship{ID: 1, UserLowID: 1, UserHighID: 2, Status: consts.RelationshipStatusActive}},
		&fakeGroupRepo{groupID: 10, members: []uint64{1, 2, 3}},
		contentRepo,
		gen,
		nil,
	)
}

func TestSubjectKey_PairCanonicalOrder(t *testing.T) {
	assert.Equal(t, "couple:1:2", CoupleSubjectKey(1, 2))
	assert.Equal(t, "couple:1:2", CoupleSubjectKey(2, 1))
	assert.Equal(t, "group:10:2:3", GroupPairSubjectKey(10, 3, 2))
}

// (A,B) 和 (B,A) 必须解析到同一行，只生成一次
func TestEnsureCouplePairDaily_OrderIndependent(t *testing.T) {
	contentRepo := newFakeContentRepo()
	gen := &fakeGenerator{}
	svc := newTestMatchService(contentRepo, gen)
	ctx := context.Background()

	first, err := svc.EnsureCouplePairDaily(ctx, 1, 2, "2026-08-31")
	require.NoError(t, err)
	second, err := svc.EnsureCouplePairDaily(ctx, 2, 1, "2026-08-31")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, gen.callCount())
	assert.Equal(t, 1, contentRepo.rowCount())
}

func TestEnsureCouplePairDaily_SelfPairRejected(t *testing.T) {
	svc := newTestMatchService(newFakeContentRepo(), &fakeGenerator{})

	_, err := svc.EnsureCouplePairDaily(context.Background(), 1, 1, "2026-08-31")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSelfPair)
}

func TestEnsureCoupleDaily_ResolvesRelationship(t *testing.T) {
	contentRepo := newFakeContentRepo()
	gen := &fakeGenerator{}
	svc := newTestMatchService(contentRepo, gen)
	ctx := context.Background()

	// 双方各自发起，落到同一行
	fromLow, err := svc.EnsureCoupleDaily(ctx, 1, "2026-08-31")
	require.NoError(t, err)
	fromHigh, err := svc.EnsureCoupleDaily(ctx, 2, "2026-08-31")
	require.NoError(t, err)

	assert.Equal(t, fromLow.ID, fromHigh.ID)
	assert.Equal(t, 1, gen.callCount())
	assert.Equal(t, consts.SubjectKindCouple, fromLow.Kind)
}

func TestEnsureCoupleDaily_NoRelationship(t *testing.T) {
	svc := NewMatchService(
		newFakeUserRepo(1),
		&fakeRelationshipRepo{},
		&fakeGroupRepo{},
		newFakeContentRepo(),
		&fakeGenerator{},
		nil,
	)

	_, err := svc.EnsureCoupleDaily(context.Background(), 1, "2026-08-31")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRelationshipNotFound)
}

func TestEnsureGroupPairDaily_OrderIndependent(t *testing.T) {
	contentRepo := newFakeContentRepo()
	gen := &fakeGenerator{}
	svc := newTestMatchService(contentRepo, gen)
	ctx := context.Background()

	first, err := svc.EnsureGroupPairDaily(ctx, 10, 2, 3, "2026-08-31")
	require.NoError(t, err)
	second, err := svc.EnsureGroupPairDaily(ctx, 10, 3, 2, "2026-08-31")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, gen.callCount())
	assert.Equal(t, consts.SubjectKindGroupPair, first.Kind)
}

func TestEnsureGroupPairDaily_NonMemberRejected(t *testing.T) {
	gen := &fakeGenerator{}
	svc := newTestMatchService(newFakeContentRepo(), gen)

	_, err := svc.EnsureGroupPairDaily(context.Background(), 10, 1, 99, "2026-08-31")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotGroupMember)
	assert.Equal(t, 0, gen.callCount())
}

// 同一群不同配对互不干扰，各自一行
func TestEnsureGroupPairDaily_DistinctPairs(t *testing.T) {
	contentRepo := newFakeContentRepo()
	gen := &fakeGenerator{}
	svc := newTestMatchService(contentRepo, gen)
	ctx := context.Background()

	_, err := svc.EnsureGroupPairDaily(ctx, 10, 1, 2, "2026-08-31")
	require.NoError(t, err)
	_, err = svc.EnsureGroupPairDaily(ctx, 10, 1, 3, "2026-08-31")
	require.NoError(t, err)
	_, err = svc.EnsureGroupPairDaily(ctx, 10, 2, 3, "2026-08-31")
	require.NoError(t, err)

	assert.Equal(t, 3, gen.callCount())
	assert.Equal(t, 3, contentRepo.rowCount())
}
