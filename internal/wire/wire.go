package wire

import (
	"Tianji/internal/api"
	"Tianji/internal/api/config"
	"Tianji/internal/api/handler"
	"Tianji/internal/job"
	"Tianji/internal/pkg/cron"
	"Tianji/internal/pkg/kafka"
	"Tianji/internal/pkg/llm"
	"Tianji/internal/pkg/mongo"
	"Tianji/internal/pkg/push"
	"Tianji/internal/repository"
	"Tianji/internal/service"

	"github.com/gin-gonic/gin"
	mongodb "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	CronMgr      *cron.Manager
	KafkaManager *kafka.ConsumerManager
}

func BuildApplication(db *gorm.DB, mongoConn *mongodb.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	relationshipRepo := repository.NewRelationshipRepo(db)
	groupRepo := repository.NewGroupRepo(db)
	contentRepo := repository.NewDailyContentRepo(db)
	auditRepo := mongo.NewGenerationLogRepo(mongoConn)

	generator := llm.NewClient()

	fortuneService := service.NewFortuneService(userRepo, contentRepo, generator, auditRepo)
	matchService := service.NewMatchService(userRepo, relationshipRepo, groupRepo, contentRepo, generator, auditRepo)

	handlers := &api.HandlersGroup{
		FortuneHandler: handler.NewFortuneHandler(fortuneService),
		MatchHandler:   handler.NewMatchHandler(matchService),
	}

	router := api.SetupRouter(handlers)

	pushClient := push.NewClient()
	fortuneBatchJob := job.NewFortuneBatchJob(userRepo, fortuneService, pushClient)
	matchBatchJob := job.NewMatchBatchJob(relationshipRepo, groupRepo, matchService)
	cronMgr := cron.NewCronManager(fortuneBatchJob, matchBatchJob)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, fortuneService, matchService)
	if err != nil {
		return nil, err
	}

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		CronMgr:      cronMgr,
		KafkaManager: kafkaMgr,
	}, nil
}
