package repository

import (
	"context"
	"mindcare_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// Create 创建用户，学生角色同时创建学生档案
func (r *UserRepository) Create(ctx context.Context, user *model.User, sectionID *uint) (*model.Student, error) {
	var student *model.Student
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if user.Role != model.RoleStudent {
			return nil
		}
		student = &model.Student{UserID: user.ID, SectionID: sectionID}
		return tx.Create(student).Error
	})
	return student, err
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login", at).Error
}

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) FindByID(ctx context.Context, id uint) (*model.Student, error) {
	var student model.Student
	err := r.DB.WithContext(ctx).First(&student, id).Error
	return &student, err
}

func (r *StudentRepository) FindByUserID(ctx context.Context, userID uint) (*model.Student, error) {
	var student model.Student
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&student).Error
	return &student, err
}

func (r *StudentRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Student{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ListIDs 返回所有学生 ID，供定时任务遍历
func (r *StudentRepository) ListIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).Model(&model.Student{}).Order("id").Pluck("id", &ids).Error
	return ids, err
}
