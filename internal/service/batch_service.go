package service

import (
	"context"
	"fmt"
	"mindcare_backend/internal/util"
	"mindcare_backend/pkg/logger"
	"mindcare_backend/pkg/monitoring"
	"mindcare_backend/pkg/tracing"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	JobSundaySnapshot = "sunday-snapshot"
	JobMondayReset    = "monday-reset"
)

// StudentLister 提供需要批处理的学生集合
type StudentLister interface {
	ListIDs(ctx context.Context) ([]uint, error)
}

type StudentResult struct {
	StudentID uint   `json:"studentId"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`

	err error
}

// JobReport 一次批处理的汇总结果
type JobReport struct {
	Job        string          `json:"job"`
	StartedAt  time.Time       `json:"startedAt"`
	FinishedAt time.Time       `json:"finishedAt"`
	Total      int             `json:"total"`
	Succeeded  int             `json:"succeeded"`
	Failed     int             `json:"failed"`
	Results    []StudentResult `json:"results"`
}

// Err 合并所有失败学生的错误，全部成功时为 nil
func (r *JobReport) Err() error {
	var err error
	for _, res := range r.Results {
		if res.err != nil {
			err = multierr.Append(err, fmt.Errorf("student %d: %w", res.StudentID, res.err))
		}
	}
	return err
}

// BatchService 周日汇总快照与周一完成状态重置
type BatchService struct {
	students    StudentLister
	goals       *GoalService
	clock       util.Clock
	concurrency int
}

func NewBatchService(students StudentLister, goals *GoalService, clock util.Clock, concurrency int) *BatchService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchService{
		students:    students,
		goals:       goals,
		clock:       clock,
		concurrency: concurrency,
	}
}

// RunSundaySnapshot 为每个学生重新计算本周（即将结束的一周）汇总
func (s *BatchService) RunSundaySnapshot(ctx context.Context) (*JobReport, error) {
	return s.run(ctx, JobSundaySnapshot, func(ctx context.Context, studentID uint) error {
		_, err := s.goals.RecomputeWeeklySummary(ctx, studentID)
		return err
	})
}

// RunMondayReset 将每个学生新一周的目标置为未完成，历史周不受影响
func (s *BatchService) RunMondayReset(ctx context.Context) (*JobReport, error) {
	return s.run(ctx, JobMondayReset, func(ctx context.Context, studentID uint) error {
		_, err := s.goals.ResetCurrentWeek(ctx, studentID)
		return err
	})
}

// RunJob 按名称手动触发任务
func (s *BatchService) RunJob(ctx context.Context, job string) (*JobReport, error) {
	switch job {
	case JobSundaySnapshot:
		return s.RunSundaySnapshot(ctx)
	case JobMondayReset:
		return s.RunMondayReset(ctx)
	}
	return nil, fmt.Errorf("%w: unknown job %q", util.ErrInvalidArgument, job)
}

// run 以有限并发对每个学生执行 op，单个学生失败只记录不中断
func (s *BatchService) run(ctx context.Context, job string, op func(context.Context, uint) error) (*JobReport, error) {
	ctx, span := tracing.StartJobSpan(ctx, job)
	report := &JobReport{Job: job, StartedAt: s.clock.Now()}

	ids, err := s.students.ListIDs(ctx)
	if err != nil {
		err = fmt.Errorf("list students for %s: %w", job, err)
		tracing.EndJobSpan(span, 0, 0, err)
		return nil, err
	}

	report.Total = len(ids)
	report.Results = make([]StudentResult, len(ids))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			err := ctx.Err()
			if err == nil {
				err = safeRun(ctx, id, op)
			}
			report.Results[i] = StudentResult{StudentID: id, OK: err == nil, err: err}
			if err != nil {
				report.Results[i].Error = err.Error()
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, res := range report.Results {
		if res.OK {
			report.Succeeded++
			continue
		}
		report.Failed++
		logger.Log.Error("Batch job failed for student",
			zap.String("job", job),
			zap.Uint("student_id", res.StudentID),
			zap.Error(res.err),
		)
	}
	report.FinishedAt = s.clock.Now()
	tracing.EndJobSpan(span, report.Total, report.Failed, report.Err())

	monitoring.JobStudents.WithLabelValues(job, "success").Add(float64(report.Succeeded))
	monitoring.JobStudents.WithLabelValues(job, "failure").Add(float64(report.Failed))

	logger.Log.Info("Batch job finished",
		zap.String("job", job),
		zap.Int("total", report.Total),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
		zap.Duration("elapsed", report.FinishedAt.Sub(report.StartedAt)),
	)
	return report, nil
}

func safeRun(ctx context.Context, studentID uint, op func(context.Context, uint) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return op(ctx, studentID)
}
