package repository

import (
	"context"
	"mindcare_backend/internal/model"
	"mindcare_backend/internal/util"

	"gorm.io/gorm"
)

type SurveyRepository struct {
	DB *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) *SurveyRepository {
	return &SurveyRepository{DB: db}
}

func (r *SurveyRepository) Create(ctx context.Context, survey *model.Survey) error {
	return r.DB.WithContext(ctx).Create(survey).Error
}

// FindByID 查询问卷及题目，题目按顺序排列
func (r *SurveyRepository) FindByID(ctx context.Context, id uint) (*model.Survey, error) {
	var survey model.Survey
	err := r.DB.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order, id")
		}).
		First(&survey, id).Error
	return &survey, err
}

func (r *SurveyRepository) ListActive(ctx context.Context) ([]model.Survey, error) {
	var surveys []model.Survey
	err := r.DB.WithContext(ctx).
		Where("active = ?", true).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order, id")
		}).
		Order("id").
		Find(&surveys).Error
	return surveys, err
}

// CreateResponseDaily 同一学生同一问卷每天只能提交一次
func (r *SurveyRepository) CreateResponseDaily(ctx context.Context, resp *model.SurveyResponse, window util.Window) error {
	return CreateOnceInWindow(ctx, r.DB, "survey response", &model.SurveyResponse{}, resp, window,
		"student_id = ? AND survey_id = ?", resp.StudentID, resp.SurveyID)
}

func (r *SurveyRepository) ListResponsesInWindow(ctx context.Context, studentID uint, window util.Window) ([]model.SurveyResponse, error) {
	w := window.UTC()
	var responses []model.SurveyResponse
	err := r.DB.WithContext(ctx).
		Where("student_id = ? AND created_at BETWEEN ? AND ?", studentID, w.Start, w.End).
		Order("created_at").
		Find(&responses).Error
	return responses, err
}
