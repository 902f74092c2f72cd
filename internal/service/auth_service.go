package service

import (
	"context"
	"errors"
	"mindcare_backend/internal/config"
	"mindcare_backend/internal/model"
	"mindcare_backend/internal/repository"
	"mindcare_backend/internal/util"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo    *repository.UserRepository
	StudentRepo *repository.StudentRepository
	Cfg         *config.Config
	clock       util.Clock
}

func NewAuthService(userRepo *repository.UserRepository, studentRepo *repository.StudentRepository, cfg *config.Config, clock util.Clock) *AuthService {
	return &AuthService{
		UserRepo:    userRepo,
		StudentRepo: studentRepo,
		Cfg:         cfg,
		clock:       clock,
	}
}

type RegisterRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=100"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	SectionID *uint  `json:"sectionId"`
}

type LoginResult struct {
	Token     string      `json:"token"`
	User      *model.User `json:"user"`
	StudentID *uint       `json:"studentId,omitempty"`
}

// Register 公开注册只创建学生账号，其余角色由管理员分配
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, *model.Student, error) {
	if err := validateStruct(req); err != nil {
		return nil, nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := s.UserRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		Name:      req.Name,
		Email:     email,
		Password:  string(hashedPassword),
		Role:      model.RoleStudent,
		LastLogin: s.clock.Now().UTC(),
	}
	student, err := s.UserRepo.Create(ctx, user, req.SectionID)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, nil, util.ErrEmailRegistered
	}
	if err != nil {
		return nil, nil, err
	}
	return user, student, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.UserRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Disabled {
		return nil, util.ErrPermissionDenied
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	result := &LoginResult{Token: token, User: user}
	if user.Role == model.RoleStudent {
		student, err := s.StudentRepo.FindByUserID(ctx, user.ID)
		if err != nil {
			return nil, util.TranslateDBError(err)
		}
		result.StudentID = &student.ID
	}

	_ = s.UserRepo.UpdateLastLogin(ctx, user.ID, s.clock.Now().UTC())
	return result, nil
}
