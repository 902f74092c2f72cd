// @title MindCare 后端 API
// @version 1.0
// @description 学校心理健康监测平台的后端服务器。
// @termsOfService http://swagger.io/terms/

// @contact.name API支持
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"
	"mindcare_backend/internal/app"
	"mindcare_backend/internal/config"
	"mindcare_backend/pkg/logger"

	"go.uber.org/zap"
)

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	runJob := flag.String("run-job", "", "立即执行一次批处理任务后退出: sunday-snapshot | monday-reset")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 设置运行时标志
	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly
	cfg.RunJob = *runJob

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 迁移完成后直接退出
	if *migrateOnly {
		logger.Log.Info("数据库迁移完成，退出程序")
		return
	}

	if *runJob != "" {
		report, err := application.RunJob(*runJob)
		if err != nil {
			logger.Log.Fatal("Job failed", zap.String("job", *runJob), zap.Error(err))
		}
		logger.Log.Info("Job finished",
			zap.String("job", report.Job),
			zap.Int("total", report.Total),
			zap.Int("succeeded", report.Succeeded),
			zap.Int("failed", report.Failed),
		)
		if report.Failed > 0 {
			logger.Log.Warn("Job finished with failures", zap.Error(report.Err()))
		}
		return
	}

	application.Run()
}
