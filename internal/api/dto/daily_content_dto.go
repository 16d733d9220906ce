package dto

import "time"

// DailyContentDTO 当日生成内容的出参
type DailyContentDTO struct {
	Day       string    `json:"day"`
	Score     int       `json:"score"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// GroupPairQuery 群内配对入参，peer 是对方，发起方从 Token 里取
type GroupPairQuery struct {
	GroupID uint64 `form:"group_id" binding:"required"`
	PeerID  uint64 `form:"peer_id" binding:"required"`
}
