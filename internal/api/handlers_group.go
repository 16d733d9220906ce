package api

import "Tianji/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	FortuneHandler *handler.FortuneHandler
	MatchHandler   *handler.MatchHandler
}
