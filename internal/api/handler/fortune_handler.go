package handler

import (
	"Tianji/internal/api/dto"
	"Tianji/internal/model"
	"Tianji/internal/pkg/response"
	"Tianji/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

type FortuneHandler struct {
	fortuneSvc service.FortuneService
}

func NewFortuneHandler(fortuneSvc service.FortuneService) *FortuneHandler {
	return &FortuneHandler{
		fortuneSvc: fortuneSvc,
	}
}

// GetToday 获取今日运势，没有就当场生成
func (s *FortuneHandler) GetToday(c *gin.Context) {
	userID := c.GetUint64("user_id")

	content, err := s.fortuneSvc.EnsureDaily(c.Request.Context(), userID, service.Today())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toDailyContentDTO(content))
}

func toDailyContentDTO(content *model.DailyContent) *dto.DailyContentDTO {
	var out dto.DailyContentDTO
	_ = copier.Copy(&out, content)
	return &out
}
