package service

import (
	"fmt"
	"mindcare_backend/internal/util"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct 校验请求结构体，失败时归类为 ErrInvalidArgument
func validateStruct(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", util.ErrInvalidArgument, err.Error())
	}
	return nil
}
