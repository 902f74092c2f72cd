package util

import (
	"fmt"
	"strconv"
)

// ParseID 解析路径参数中的正整数 ID
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid id %q", ErrInvalidArgument, s)
	}
	return uint(id), nil
}
