package service

import (
	"context"
	"errors"
	"fmt"
	"mindcare_backend/internal/model"
	"mindcare_backend/internal/repository"
	"mindcare_backend/internal/util"
	"mindcare_backend/pkg/monitoring"
	"strconv"
	"time"

	"gorm.io/datatypes"
)

type SurveyService struct {
	repo          *repository.SurveyRepository
	clock         util.Clock
	loc           *time.Location
	skewTolerance time.Duration
}

func NewSurveyService(repo *repository.SurveyRepository, clock util.Clock, loc *time.Location, skewTolerance time.Duration) *SurveyService {
	return &SurveyService{
		repo:          repo,
		clock:         clock,
		loc:           loc,
		skewTolerance: skewTolerance,
	}
}

type SurveyQuestionInput struct {
	Text    string `json:"text" validate:"required,max=1000"`
	Reverse bool   `json:"reverse"`
}

type CreateSurveyRequest struct {
	Title       string                `json:"title" validate:"required,max=255"`
	Description string                `json:"description" validate:"max=2000"`
	Questions   []SurveyQuestionInput `json:"questions" validate:"required,min=1,max=50,dive"`
}

// SubmitSurveyRequest Answers 的键为题目 ID，值为原始 1..5 作答
type SubmitSurveyRequest struct {
	Answers    map[string]int `json:"answers" validate:"required"`
	ClientTime *time.Time     `json:"clientTime"`
}

func (s *SurveyService) CreateSurvey(ctx context.Context, req CreateSurveyRequest) (*model.Survey, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	survey := &model.Survey{
		Title:       req.Title,
		Description: req.Description,
		Active:      true,
	}
	for i, q := range req.Questions {
		survey.Questions = append(survey.Questions, model.SurveyQuestion{
			Order:   i + 1,
			Text:    q.Text,
			Reverse: q.Reverse,
		})
	}

	if err := s.repo.Create(ctx, survey); err != nil {
		return nil, err
	}
	return survey, nil
}

func (s *SurveyService) ListActive(ctx context.Context) ([]model.Survey, error) {
	return s.repo.ListActive(ctx)
}

func (s *SurveyService) Get(ctx context.Context, id uint) (*model.Survey, error) {
	survey, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, util.TranslateDBError(err)
	}
	return survey, nil
}

// NormalizeAnswers 按题目顺序校验并归一化作答，反向题在此处一次性转换
func NormalizeAnswers(questions []model.SurveyQuestion, raw map[string]int) (map[string]int, []int, error) {
	byID := make(map[string]model.SurveyQuestion, len(questions))
	for _, q := range questions {
		byID[strconv.FormatUint(uint64(q.ID), 10)] = q
	}
	for key := range raw {
		if _, ok := byID[key]; !ok {
			return nil, nil, fmt.Errorf("%w: unknown question %q", util.ErrInvalidArgument, key)
		}
	}

	normalized := make(map[string]int, len(questions))
	values := make([]int, 0, len(questions))
	for _, q := range questions {
		key := strconv.FormatUint(uint64(q.ID), 10)
		r, ok := raw[key]
		if !ok {
			return nil, nil, fmt.Errorf("%w: missing answer for question %s", util.ErrInvalidArgument, key)
		}
		v, err := NormalizeLikert(r, q.Reverse)
		if err != nil {
			return nil, nil, fmt.Errorf("question %s: %w", key, err)
		}
		normalized[key] = v
		values = append(values, v)
	}
	return normalized, values, nil
}

// SubmitResponse 提交每日问卷，同一问卷每天一次
func (s *SurveyService) SubmitResponse(ctx context.Context, studentID, surveyID uint, req SubmitSurveyRequest) (*model.SurveyResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	survey, err := s.repo.FindByID(ctx, surveyID)
	if err != nil {
		return nil, util.TranslateDBError(err)
	}
	if !survey.Active {
		return nil, fmt.Errorf("%w: survey %d is not active", util.ErrNotFound, surveyID)
	}

	normalized, values, err := NormalizeAnswers(survey.Questions, req.Answers)
	if err != nil {
		return nil, err
	}
	score := ScoreDailySurvey(values)

	ref := util.ReferenceTime(s.clock.Now(), req.ClientTime, s.skewTolerance)
	resp := &model.SurveyResponse{
		StudentID:  studentID,
		SurveyID:   surveyID,
		DayKey:     util.DayKey(ref, s.loc),
		Answers:    datatypes.NewJSONType(normalized),
		Score:      score.TotalScore,
		MaxScore:   score.MaxScore,
		Percentage: score.Percentage,
		Zone:       score.Zone,
	}
	resp.CreatedAt = ref.UTC()

	if err := s.repo.CreateResponseDaily(ctx, resp, util.TodayWindow(ref, s.loc)); err != nil {
		if errors.Is(err, util.ErrAlreadyExists) {
			monitoring.SubmissionRejected.WithLabelValues("survey", "already_exists").Inc()
		}
		return nil, err
	}
	return resp, nil
}

// TodayResponses 今日已提交的问卷
func (s *SurveyService) TodayResponses(ctx context.Context, studentID uint) ([]model.SurveyResponse, error) {
	return s.repo.ListResponsesInWindow(ctx, studentID, util.TodayWindow(s.clock.Now(), s.loc))
}
