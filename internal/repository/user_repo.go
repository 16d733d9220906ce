package repository

import (
	"Tianji/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type UserRepo interface {
	GetUserWithDetail(ctx context.Context, userID uint64) (*model.User, error)
	// ListActiveUserIDs 分页枚举未注销用户，batch 跑全量用
	ListActiveUserIDs(ctx context.Context, lastID uint64, limit int) ([]uint64, error)
}

type userRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &userRepoImpl{db: db}
}

// GetUserWithDetail 连画像一起取出，服务层不做懒加载
func (s *userRepoImpl) GetUserWithDetail(ctx context.Context, userID uint64) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).
		Preload("UserDetail").
		Where("id = ? AND is_delete = 0", userID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ListActiveUserIDs 游标分页，按 ID 升序
func (s *userRepoImpl) ListActiveUserIDs(ctx context.Context, lastID uint64, limit int) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("id > ? AND is_delete = 0 AND is_ban = 0", lastID).
		Order("id ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	return ids, err
}
