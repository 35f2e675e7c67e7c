package router

import (
	"github.com/cropchain/sync-service/internal/handler"
	"github.com/cropchain/sync-service/internal/ledger"
	"github.com/cropchain/sync-service/internal/sync"
	"github.com/gin-gonic/gin"
)

func Setup(reader ledger.Reader, syncer *sync.Syncer, verifier *sync.Verifier) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "cropchain-sync-service",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 链上投资记录查询
		investmentHandler := handler.NewInvestmentHandler(reader)
		v1.GET("/investments/:id", investmentHandler.GetInvestment)

		// 批量同步与读回校验
		syncHandler := handler.NewSyncHandler(syncer, verifier)
		v1.POST("/sync", syncHandler.RunSync)
		v1.POST("/verify", syncHandler.RunVerify)
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
