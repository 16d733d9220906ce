package repository

import (
	"Tianji/internal/model"
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ErrContentExists 同一 (subject_key, day) 已有内容，插入方竞争失败
// 调用方据此与普通存储错误区分：前者重读即可，后者必须上抛
var ErrContentExists = errors.New("daily content already exists")

type DailyContentRepo interface {
	GetByDay(ctx context.Context, subjectKey string, day string) (*model.DailyContent, error)
	Create(ctx context.Context, content *model.DailyContent) error
}

type dailyContentRepoImpl struct {
	db *gorm.DB
}

func NewDailyContentRepo(db *gorm.DB) DailyContentRepo {
	return &dailyContentRepoImpl{db: db}
}

// GetByDay 按主体和日期查询，未命中返回 (nil, nil)
func (s *dailyContentRepoImpl) GetByDay(ctx context.Context, subjectKey string, day string) (*model.DailyContent, error) {
	var content model.DailyContent
	err := s.db.WithContext(ctx).
		Where("subject_key = ? AND day = ?", subjectKey, day).
		First(&content).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &content, nil
}

// Create 插入当日内容，唯一键冲突翻译为 ErrContentExists
func (s *dailyContentRepoImpl) Create(ctx context.Context, content *model.DailyContent) error {
	err := s.db.WithContext(ctx).Create(content).Error
	if err == nil {
		return nil
	}
	if isDuplicateKey(err) {
		return ErrContentExists
	}
	return err
}

// isDuplicateKey 这里假定冲突一定来自同键并发写入者，
// 若换存储引擎后同一错误类还可能由别的约束触发，这个假定需要重新审视
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}
