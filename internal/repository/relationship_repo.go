package repository

import (
	"Tianji/internal/model"
	"Tianji/internal/pkg/consts"
	"context"
	"errors"

	"gorm.io/gorm"
)

type RelationshipRepo interface {
	GetByUser(ctx context.Context, userID uint64) (*model.Relationship, error)
	// ListActive 分页枚举生效中的情侣关系，batch 跑全量用
	ListActive(ctx context.Context, lastID uint64, limit int) ([]*model.Relationship, error)
}

type relationshipRepoImpl struct {
	db *gorm.DB
}

func NewRelationshipRepo(db *gorm.DB) RelationshipRepo {
	return &relationshipRepoImpl{db: db}
}

// GetByUser 查某个用户生效中的情侣关系，未绑定返回 (nil, nil)
func (s *relationshipRepoImpl) GetByUser(ctx context.Context, userID uint64) (*model.Relationship, error) {
	var rel model.Relationship
	err := s.db.WithContext(ctx).
		Where("(user_low_id = ? OR user_high_id = ?) AND status = ?", userID, userID, consts.RelationshipStatusActive).
		First(&rel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rel, nil
}

func (s *relationshipRepoImpl) ListActive(ctx context.Context, lastID uint64, limit int) ([]*model.Relationship, error) {
	var rels []*model.Relationship
	err := s.db.WithContext(ctx).
		Where("id > ? AND status = ?", lastID, consts.RelationshipStatusActive).
		Order("id ASC").
		Limit(limit).
		Find(&rels).Error
	return rels, err
}
