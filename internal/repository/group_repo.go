package repository

import (
	"Tianji/internal/model"
	"context"

	"gorm.io/gorm"
)

type GroupRepo interface {
	ListGroupIDs(ctx context.Context, lastID uint64, limit int) ([]uint64, error)
	ListMemberIDs(ctx context.Context, groupID uint64) ([]uint64, error)
	IsMember(ctx context.Context, groupID uint64, userID uint64) (bool, error)
}

type groupRepoImpl struct {
	db *gorm.DB
}

func NewGroupRepo(db *gorm.DB) GroupRepo {
	return &groupRepoImpl{db: db}
}

func (s *groupRepoImpl) ListGroupIDs(ctx context.Context, lastID uint64, limit int) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.Group{}).
		Where("id > ? AND is_delete = 0", lastID).
		Order("id ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	return ids, err
}

// ListMemberIDs 按加入顺序返回群成员，配对枚举依赖稳定顺序
func (s *groupRepoImpl) ListMemberIDs(ctx context.Context, groupID uint64) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.GroupMember{}).
		Where("group_id = ?", groupID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (s *groupRepoImpl) IsMember(ctx context.Context, groupID uint64, userID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}
