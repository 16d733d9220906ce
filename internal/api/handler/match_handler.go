package handler

import (
	"Tianji/internal/api/dto"
	"Tianji/internal/pkg/response"
	"Tianji/internal/service"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchSvc service.MatchService
}

func NewMatchHandler(matchSvc service.MatchService) *MatchHandler {
	return &MatchHandler{
		matchSvc: matchSvc,
	}
}

// GetCoupleToday 获取今日情侣配对，从发起方解析另一半
func (s *MatchHandler) GetCoupleToday(c *gin.Context) {
	userID := c.GetUint64("user_id")

	content, err := s.matchSvc.EnsureCoupleDaily(c.Request.Context(), userID, service.Today())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toDailyContentDTO(content))
}

// GetGroupPairToday 获取今日群内配对，发起方必须和对方同群
func (s *MatchHandler) GetGroupPairToday(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.GroupPairQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	content, err := s.matchSvc.EnsureGroupPairDaily(c.Request.Context(), query.GroupID, userID, query.PeerID, service.Today())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toDailyContentDTO(content))
}
