package util

import (
	"errors"

	"gorm.io/gorm"
)

// 业务错误分类，服务层用 fmt.Errorf("%w: ...") 附带诊断信息
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrAlreadyExists      = errors.New("already exists")
	ErrLimitExceeded      = errors.New("limit exceeded")
	ErrNotFound           = errors.New("not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRegistered    = errors.New("email already registered")
)

// TranslateDBError 将 gorm 错误归类为业务错误
func TranslateDBError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrAlreadyExists
	}
	return err
}
