package app

import (
	"context"
	"log"
	"mindcare_backend/internal/config"
	"mindcare_backend/internal/controller"
	"mindcare_backend/internal/repository"
	"mindcare_backend/internal/service"
	"mindcare_backend/internal/util"
	"mindcare_backend/pkg/configwatcher"
	"mindcare_backend/pkg/database"
	"mindcare_backend/pkg/logger"
	"mindcare_backend/pkg/monitoring"
	"mindcare_backend/pkg/security"
	"mindcare_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const configDir = "configs"

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	scheduler       *service.Scheduler
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
	stopWatcher     chan struct{}
}

type repositories struct {
	user       *repository.UserRepository
	student    *repository.StudentRepository
	mood       *repository.MoodRepository
	survey     *repository.SurveyRepository
	goal       *repository.GoalRepository
	assessment *repository.AssessmentRepository
	quiz       *repository.QuizRepository
}

type services struct {
	auth       *service.AuthService
	mood       *service.MoodService
	survey     *service.SurveyService
	goal       *service.GoalService
	assessment *service.AssessmentService
	quiz       *service.QuizService
	batch      *service.BatchService
}

type controllers struct {
	auth       *controller.AuthController
	mood       *controller.MoodController
	survey     *controller.SurveyController
	goal       *controller.GoalController
	assessment *controller.AssessmentController
	quiz       *controller.QuizController
	admin      *controller.AdminController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		student:    repository.NewStudentRepository(db),
		mood:       repository.NewMoodRepository(db),
		survey:     repository.NewSurveyRepository(db),
		goal:       repository.NewGoalRepository(db),
		assessment: repository.NewAssessmentRepository(db),
		quiz:       repository.NewQuizRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	clock := util.SystemClock{}
	loc := cfg.Schedule.Location()
	skew := cfg.Wellness.ClockSkewTolerance()

	s := &services{}
	s.auth = service.NewAuthService(repos.user, repos.student, cfg, clock)
	s.mood = service.NewMoodService(repos.mood, repos.student, clock, loc, skew)
	s.survey = service.NewSurveyService(repos.survey, clock, loc, skew)
	s.goal = service.NewGoalService(repos.goal, repos.student, clock, loc)
	s.assessment = service.NewAssessmentService(repos.assessment)
	s.quiz = service.NewQuizService(repos.quiz, clock, loc, cfg.Wellness.DailyQuizCount)
	s.batch = service.NewBatchService(repos.student, s.goal, clock, cfg.Schedule.Concurrency)
	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		mood:       controller.NewMoodController(s.mood),
		survey:     controller.NewSurveyController(s.survey),
		goal:       controller.NewGoalController(s.goal),
		assessment: controller.NewAssessmentController(s.assessment),
		quiz:       controller.NewQuizController(s.quiz),
		admin:      controller.NewAdminController(s.batch, s.mood),
		health:     controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window()))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startScheduler 启动周日快照/周一重置定时任务
func (a *App) startScheduler() {
	if !a.Config.Schedule.Enabled {
		logger.Log.Info("Scheduler disabled by config")
		return
	}

	// Redis 不可用时传 nil 接口，单实例部署不加锁
	var locker service.JobLocker
	if a.Redis != nil {
		hostname, _ := os.Hostname()
		locker = database.NewRedisLocker(a.Redis, hostname+"-"+uuid.NewString())
	}

	a.scheduler = service.NewScheduler(a.services.batch, locker, a.Config.Schedule)
	if err := a.scheduler.Start(); err != nil {
		logger.Log.Fatal("Failed to start scheduler", zap.Error(err))
	}
}

// startConfigWatcher 配置文件变更时回调已注册的处理函数
func (a *App) startConfigWatcher() {
	a.stopWatcher = make(chan struct{})
	path := filepath.Join(configDir, "config.yaml")

	go func() {
		err := configwatcher.WatchConfig(path, a.stopWatcher, func(newCfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(newCfg)
			}
		})
		if err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")
	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.ForceMigrate || cfg.Server.Mode == "debug" {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	// 仅迁移或单次执行任务时不启动 HTTP 服务和调度器
	if cfg.MigrateOnly || cfg.RunJob != "" {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 生产环境多副本依赖 Redis 锁，开发环境允许缺省
		if cfg.Server.Mode == "release" {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
		logger.Log.Warn("Redis unavailable, job locking disabled", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg)
	controllers := app.initControllers(app.services)

	// 监控初始化
	monitoring.Init()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("mindcare-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.registerRoutes(router, controllers, repos, cfg)

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.ApplyMode(newCfg.Server.Mode)
		logger.Log.Info("Log level updated", zap.String("mode", newCfg.Server.Mode))
	})
	app.startConfigWatcher()
	app.startScheduler()

	return app
}

// RunJob 命令行手动执行一次批处理任务
func (a *App) RunJob(name string) (*service.JobReport, error) {
	if a.services == nil {
		a.services = a.initServices(a.initRepositories(a.DB), a.Config)
	}
	return a.services.batch.RunJob(context.Background(), name)
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	if a.stopWatcher != nil {
		close(a.stopWatcher)
	}

	// 等待正在执行的定时任务结束
	if a.scheduler != nil {
		<-a.scheduler.Stop().Done()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
