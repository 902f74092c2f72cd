package repository

import (
	"context"
	"errors"
	"fmt"
	"mindcare_backend/internal/model"
	"mindcare_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

// CreateOnce 学生档案不存在返回 ErrNotFound，已有初评返回 ErrAlreadyExists
func (r *AssessmentRepository) CreateOnce(ctx context.Context, assessment *model.InitialAssessment) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var student model.Student
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").First(&student, assessment.StudentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: student %d", util.ErrNotFound, assessment.StudentID)
			}
			return err
		}

		var count int64
		if err := tx.Model(&model.InitialAssessment{}).
			Where("student_id = ?", assessment.StudentID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: initial assessment for student %d", util.ErrAlreadyExists, assessment.StudentID)
		}

		return tx.Create(assessment).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: initial assessment for student %d", util.ErrAlreadyExists, assessment.StudentID)
	}
	return err
}

func (r *AssessmentRepository) FindByStudentID(ctx context.Context, studentID uint) (*model.InitialAssessment, error) {
	var assessment model.InitialAssessment
	err := r.DB.WithContext(ctx).Where("student_id = ?", studentID).First(&assessment).Error
	return &assessment, err
}

// UpdateScores 覆盖已有初评的分数字段
func (r *AssessmentRepository) UpdateScores(ctx context.Context, assessment *model.InitialAssessment) error {
	return r.DB.WithContext(ctx).Model(assessment).
		Select("depression_score", "anxiety_score", "stress_score", "total_score", "is_complete",
			"depression_severity", "anxiety_severity", "stress_severity").
		Updates(assessment).Error
}
