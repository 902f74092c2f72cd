package service

import (
	"context"
	"mindcare_backend/internal/config"
	"mindcare_backend/pkg/logger"
	"mindcare_backend/pkg/monitoring"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const jobTimeout = 20 * time.Minute

// JobLocker 多副本部署时保证同一时间槽只有一个实例执行任务
type JobLocker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// cronLogger 把 cron 的日志接到 zap
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}

// Scheduler 按学校时区触发周日快照和周一重置
type Scheduler struct {
	cron    *cron.Cron
	batch   *BatchService
	locker  JobLocker
	lockTTL time.Duration
	loc     *time.Location
	cfg     config.ScheduleConfig
}

func NewScheduler(batch *BatchService, locker JobLocker, cfg config.ScheduleConfig) *Scheduler {
	loc := cfg.Location()
	clog := cronLogger{log: logger.Log.Sugar().Named("cron")}

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(clog),
			cron.WithChain(cron.Recover(clog), cron.SkipIfStillRunning(clog)),
		),
		batch:   batch,
		locker:  locker,
		lockTTL: time.Duration(cfg.LockTTLMinutes) * time.Minute,
		loc:     loc,
		cfg:     cfg,
	}
}

// Start 注册任务并启动 cron
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.SundaySnapshotCron, func() {
		s.Trigger(JobSundaySnapshot, time.Now())
	}); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.cfg.MondayResetCron, func() {
		s.Trigger(JobMondayReset, time.Now())
	}); err != nil {
		return err
	}

	s.cron.Start()
	logger.Log.Info("Scheduler started",
		zap.String("timezone", s.loc.String()),
		zap.String(JobSundaySnapshot, s.cfg.SundaySnapshotCron),
		zap.String(JobMondayReset, s.cfg.MondayResetCron),
	)
	return nil
}

// Stop 停止调度并等待正在执行的任务结束
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Trigger 执行一次任务，同一时间槽加锁失败时跳过。失败不自动重试，等待下一次调度
func (s *Scheduler) Trigger(job string, firedAt time.Time) *JobReport {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if s.locker != nil {
		key := "job:" + job + ":" + firedAt.In(s.loc).Format("2006-01-02T15:04")
		ok, err := s.locker.TryLock(ctx, key, s.lockTTL)
		if err != nil {
			logger.Log.Error("Failed to acquire job lock", zap.String("job", job), zap.Error(err))
			return nil
		}
		if !ok {
			logger.Log.Info("Job already running on another instance", zap.String("job", job), zap.String("key", key))
			return nil
		}
	}

	start := time.Now()
	report, err := s.batch.RunJob(ctx, job)
	monitoring.JobDuration.WithLabelValues(job).Observe(time.Since(start).Seconds())
	if err != nil {
		logger.Log.Error("Scheduled job aborted", zap.String("job", job), zap.Error(err))
		return nil
	}
	if report.Failed > 0 {
		logger.Log.Warn("Scheduled job finished with failures",
			zap.String("job", job),
			zap.Int("failed", report.Failed),
			zap.Error(report.Err()),
		)
	}
	return report
}
