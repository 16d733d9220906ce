package job

import (
	"Tianji/internal/pkg/consts"
	"Tianji/internal/pkg/logger"
	"Tianji/internal/pkg/push"
	"Tianji/internal/pkg/redis"
	"Tianji/internal/repository"
	"Tianji/internal/service"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const batchPageSize = 200

// batchLockTTL 锁活到当天结束之前不会自动释放，
// 跑完也不主动解锁：同一天不允许第二个实例重跑
const batchLockTTL = 20 * time.Hour

// batchReport 一轮批量生成的结果统计
type batchReport struct {
	Attempted int
	Succeeded int
	Failed    int
}

type FortuneBatchJob struct {
	userRepo   repository.UserRepo
	fortuneSvc service.FortuneService
	pushClient *push.Client
}

func NewFortuneBatchJob(userRepo repository.UserRepo, fortuneSvc service.FortuneService, pushClient *push.Client) *FortuneBatchJob {
	return &FortuneBatchJob{
		userRepo:   userRepo,
		fortuneSvc: fortuneSvc,
		pushClient: pushClient,
	}
}

func (s *FortuneBatchJob) Run() {
	traceID := "job-fortune-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	day := service.Today()
	if !acquireBatchLock(ctx, consts.FortuneBatchLock+day, traceID) {
		log.InfoContext(ctx, "当日运势批量任务已被其它实例执行，跳过", "day", day)
		return
	}

	log.InfoContext(ctx, "运势批量任务开始", "day", day)
	report, notified := s.runFortune(ctx, day)
	log.InfoContext(ctx, "运势批量任务结束",
		"day", day,
		"attempted", report.Attempted,
		"succeeded", report.Succeeded,
		"failed", report.Failed)

	if s.pushClient != nil {
		s.pushClient.SendBatch(ctx, notified, "今日运势", "你的今日运势已生成，点击查看")
	}
}

// runFortune 游标分页跑全量用户，单个失败不影响其他人
func (s *FortuneBatchJob) runFortune(ctx context.Context, day string) (batchReport, []uint64) {
	var report batchReport
	var notified []uint64

	lastID := uint64(0)
	for {
		ids, err := s.userRepo.ListActiveUserIDs(ctx, lastID, batchPageSize)
		if err != nil {
			log.ErrorContext(ctx, "分页拉取用户失败", "last_id", lastID, "err", err)
			break
		}
		if len(ids) == 0 {
			break
		}

		for _, uid := range ids {
			report.Attempted++
			if _, err := s.fortuneSvc.EnsureDaily(ctx, uid, day); err != nil {
				report.Failed++
				if errors.Is(err, service.ErrServiceBusy) {
					log.WarnContext(ctx, "生成被限流，留给下一轮", "uid", uid)
				} else {
					log.ErrorContext(ctx, "用户运势生成失败", "uid", uid, "err", err)
				}
				continue
			}
			report.Succeeded++
			notified = append(notified, uid)
		}

		lastID = ids[len(ids)-1]
	}

	return report, notified
}

// acquireBatchLock 同一天只允许一个实例跑批，Redis 未初始化时直接放行
func acquireBatchLock(ctx context.Context, key string, holder string) bool {
	if redis.GetRdbClient() == nil {
		return true
	}

	ok, err := redis.TryLock(ctx, key, holder, batchLockTTL, 1)
	if err != nil {
		log.ErrorContext(ctx, "抢占批量任务锁失败", "key", key, "err", err)
		return false
	}
	return ok
}
