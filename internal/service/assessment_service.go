package service

import (
	"context"
	"fmt"
	"mindcare_backend/internal/model"
	"mindcare_backend/internal/repository"
	"mindcare_backend/internal/util"

	"gorm.io/datatypes"
)

// AssessmentService 入学初评，每个学生只能提交一次
type AssessmentService struct {
	repo *repository.AssessmentRepository
}

func NewAssessmentService(repo *repository.AssessmentRepository) *AssessmentService {
	return &AssessmentService{repo: repo}
}

type SubmitAssessmentRequest struct {
	Answers map[string]int `json:"answers" validate:"required"`
}

// AssessmentResult 初评记录以及未作答的题目
type AssessmentResult struct {
	*model.InitialAssessment
	Missing []string `json:"missing,omitempty"`
}

func applyScore(a *model.InitialAssessment, score AssessmentScore) {
	a.DepressionScore = score.DepressionScore
	a.AnxietyScore = score.AnxietyScore
	a.StressScore = score.StressScore
	a.TotalScore = score.TotalScore
	a.IsComplete = score.IsComplete
	a.DepressionSeverity = score.DepressionSeverity
	a.AnxietySeverity = score.AnxietySeverity
	a.StressSeverity = score.StressSeverity
}

func (s *AssessmentService) Submit(ctx context.Context, studentID uint, req SubmitAssessmentRequest) (*AssessmentResult, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	score, err := ScoreInitialAssessment(req.Answers)
	if err != nil {
		return nil, err
	}

	assessment := &model.InitialAssessment{
		StudentID: studentID,
		Answers:   datatypes.NewJSONType(req.Answers),
	}
	applyScore(assessment, score)

	if err := s.repo.CreateOnce(ctx, assessment); err != nil {
		return nil, err
	}
	return &AssessmentResult{InitialAssessment: assessment, Missing: score.Missing}, nil
}

func (s *AssessmentService) Get(ctx context.Context, studentID uint) (*model.InitialAssessment, error) {
	assessment, err := s.repo.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, util.TranslateDBError(err)
	}
	return assessment, nil
}

// Rescore 用已保存的作答重新计分并覆盖
func (s *AssessmentService) Rescore(ctx context.Context, studentID uint) (*AssessmentResult, error) {
	assessment, err := s.Get(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("rescore student %d: %w", studentID, err)
	}

	score, err := ScoreInitialAssessment(assessment.Answers.Data())
	if err != nil {
		return nil, err
	}
	applyScore(assessment, score)

	if err := s.repo.UpdateScores(ctx, assessment); err != nil {
		return nil, err
	}
	return &AssessmentResult{InitialAssessment: assessment, Missing: score.Missing}, nil
}
