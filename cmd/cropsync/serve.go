package main

import (
	"github.com/cropchain/sync-service/internal/logger"
	"github.com/cropchain/sync-service/internal/router"
	"github.com/cropchain/sync-service/internal/task"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the periodic ledger sync job",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			// 设置Gin模式
			if a.cfg.Server.Mode == "release" {
				gin.SetMode(gin.ReleaseMode)
			}

			// 初始化路由
			r := router.Setup(a.reader, a.syncer, a.verifier)

			// 启动定时任务
			manager := task.Start(a.syncer, a.cfg)
			defer manager.Stop()

			// 启动服务器
			logger.Info("Server starting on port %s", a.cfg.Server.Port)
			return r.Run(":" + a.cfg.Server.Port)
		},
	}
}
