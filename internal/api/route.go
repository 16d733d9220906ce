package api

import (
	"Tianji/internal/api/config"
	"Tianji/internal/api/middleware"
	"Tianji/internal/pkg/limiter"
	"Tianji/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	fw := limiter.NewFixedWindow()
	rateCfg := config.Cfg.RateLimit

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		fortuneGroup := apiGroup.Group("/fortune")
		{
			fortuneGroup.Use(middleware.AuthMiddleware())
			fortuneGroup.Use(middleware.RateLimitMiddleware(fw, "fortune", rateCfg.FortunePerMin))
			{
				fortuneGroup.GET("/today", group.FortuneHandler.GetToday)
			}
		}

		matchGroup := apiGroup.Group("/match")
		{
			matchGroup.Use(middleware.AuthMiddleware())
			matchGroup.Use(middleware.RateLimitMiddleware(fw, "match", rateCfg.UserPerMin))
			{
				matchGroup.GET("/couple/today", group.MatchHandler.GetCoupleToday)
				matchGroup.GET("/group/today", group.MatchHandler.GetGroupPairToday)
			}
		}
	}

	return r
}
