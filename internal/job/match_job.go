package job

import (
	"Tianji/internal/pkg/consts"
	"Tianji/internal/pkg/logger"
	"Tianji/internal/repository"
	"Tianji/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

type MatchBatchJob struct {
	relationshipRepo repository.RelationshipRepo
	groupRepo        repository.GroupRepo
	matchSvc         service.MatchService
}

func NewMatchBatchJob(relationshipRepo repository.RelationshipRepo, groupRepo repository.GroupRepo, matchSvc service.MatchService) *MatchBatchJob {
	return &MatchBatchJob{
		relationshipRepo: relationshipRepo,
		groupRepo:        groupRepo,
		matchSvc:         matchSvc,
	}
}

func (s *MatchBatchJob) Run() {
	traceID := "job-match-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	day := service.Today()
	if !acquireBatchLock(ctx, consts.MatchBatchLock+day, traceID) {
		log.InfoContext(ctx, "当日配对批量任务已被其它实例执行，跳过", "day", day)
		return
	}

	log.InfoContext(ctx, "配对批量任务开始", "day", day)
	coupleReport := s.runCouples(ctx, day)
	groupReport := s.runGroupPairs(ctx, day)
	log.InfoContext(ctx, "配对批量任务结束",
		"day", day,
		"couple_attempted", coupleReport.Attempted,
		"couple_succeeded", coupleReport.Succeeded,
		"couple_failed", coupleReport.Failed,
		"group_attempted", groupReport.Attempted,
		"group_succeeded", groupReport.Succeeded,
		"group_failed", groupReport.Failed)
}

func (s *MatchBatchJob) runCouples(ctx context.Context, day string) batchReport {
	var report batchReport

	lastID := uint64(0)
	for {
		rels, err := s.relationshipRepo.ListActive(ctx, lastID, batchPageSize)
		if err != nil {
			log.ErrorContext(ctx, "分页拉取情侣关系失败", "last_id", lastID, "err", err)
			break
		}
		if len(rels) == 0 {
			break
		}

		for _, rel := range rels {
			report.Attempted++
			if _, err := s.matchSvc.EnsureCouplePairDaily(ctx, rel.UserLowID, rel.UserHighID, day); err != nil {
				report.Failed++
				log.ErrorContext(ctx, "情侣配对生成失败", "low", rel.UserLowID, "high", rel.UserHighID, "err", err)
				continue
			}
			report.Succeeded++
		}

		lastID = rels[len(rels)-1].ID
	}

	return report
}

// runGroupPairs 逐群枚举成员两两组合，成员顺序由存储层保证稳定
func (s *MatchBatchJob) runGroupPairs(ctx context.Context, day string) batchReport {
	var report batchReport

	lastID := uint64(0)
	for {
		groupIDs, err := s.groupRepo.ListGroupIDs(ctx, lastID, batchPageSize)
		if err != nil {
			log.ErrorContext(ctx, "分页拉取圈子失败", "last_id", lastID, "err", err)
			break
		}
		if len(groupIDs) == 0 {
			break
		}

		for _, gid := range groupIDs {
			members, err := s.groupRepo.ListMemberIDs(ctx, gid)
			if err != nil {
				log.ErrorContext(ctx, "拉取圈子成员失败", "gid", gid, "err", err)
				continue
			}

			for i := 0; i < len(members); i++ {
				for j := i + 1; j < len(members); j++ {
					report.Attempted++
					if _, err := s.matchSvc.EnsureGroupPairDaily(ctx, gid, members[i], members[j], day); err != nil {
						report.Failed++
						log.ErrorContext(ctx, "圈内配对生成失败", "gid", gid, "a", members[i], "b", members[j], "err", err)
						continue
					}
					report.Succeeded++
				}
			}
		}

		lastID = groupIDs[len(groupIDs)-1]
	}

	return report
}
