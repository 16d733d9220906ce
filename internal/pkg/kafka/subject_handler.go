package kafka

import (
	"Tianji/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

const (
	taskKindFortune   = "fortune"
	taskKindCouple    = "couple"
	taskKindGroupPair = "group_pair"
)

// SubjectTask 主体创建/补生成任务
// 用户注册、情侣绑定、圈子组建之后上游发一条，当天内容提前备好
type SubjectTask struct {
	Kind    string `json:"kind"`
	UserID  uint64 `json:"user_id,omitempty"`
	UserA   uint64 `json:"user_a,omitempty"`
	UserB   uint64 `json:"user_b,omitempty"`
	GroupID uint64 `json:"group_id,omitempty"`
}

type SubjectHandler struct {
	fortuneSvc service.FortuneService
	matchSvc   service.MatchService
}

func NewSubjectHandler(fortuneSvc service.FortuneService, matchSvc service.MatchService) *SubjectHandler {
	return &SubjectHandler{
		fortuneSvc: fortuneSvc,
		matchSvc:   matchSvc,
	}
}

func (s *SubjectHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("subject task consumer setup")
	return nil
}

func (s *SubjectHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("subject task consumer cleanup")
	return nil
}

func (s *SubjectHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-subject consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("process batch error", "err", err)
		return err
	}
	log.Info("topic-subject consume claim end")
	return nil
}

func (s *SubjectHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var task SubjectTask
	if err := json.Unmarshal(msg.Value, &task); err != nil {
		log.ErrorContext(ctx, "任务消息格式非法，丢弃", "offset", msg.Offset, "err", err)
		return nil
	}

	day := service.Today()

	switch task.Kind {
	case taskKindFortune:
		_, err := s.fortuneSvc.EnsureDaily(ctx, task.UserID, day)
		return err
	case taskKindCouple:
		_, err := s.matchSvc.EnsureCouplePairDaily(ctx, task.UserA, task.UserB, day)
		return err
	case taskKindGroupPair:
		_, err := s.matchSvc.EnsureGroupPairDaily(ctx, task.GroupID, task.UserA, task.UserB, day)
		return err
	default:
		log.WarnContext(ctx, "未知任务类型，丢弃", "kind", task.Kind)
		return nil
	}
}
