package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type GenerationLogRepo interface {
	SaveLog(ctx context.Context, entry *GenerationLog) error
	GetRecent(ctx context.Context, subjectKey string, limit int) ([]*GenerationLog, error)
}

type generationLogRepoImpl struct {
	col *mongo.Collection
}

func NewGenerationLogRepo(db *mongo.Database) GenerationLogRepo {
	return &generationLogRepoImpl{
		col: db.Collection("generation_logs"),
	}
}

// SaveLog 直接存储
func (s *generationLogRepoImpl) SaveLog(ctx context.Context, entry *GenerationLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	_, err := s.col.InsertOne(ctx, entry)
	return err
}

// GetRecent 按时间倒序拉取某主体最近的生成记录
func (s *generationLogRepoImpl) GetRecent(ctx context.Context, subjectKey string, limit int) ([]*GenerationLog, error) {
	if limit <= 0 {
		limit = 20
	}

	filter := bson.M{"subject_key": subjectKey}

	findOptions := options.Find().
		SetSort(bson.D{
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: -1},
		}).
		SetLimit(int64(limit))

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	logs := make([]*GenerationLog, 0)
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}

	return logs, nil
}
