// Package testutil 为各包测试提供 SQLite 数据库与基础数据
package testutil

import (
	"context"
	"fmt"
	"mindcare_backend/internal/model"
	"mindcare_backend/pkg/database"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SchoolTZ 测试固定使用 UTC+8，不依赖系统 tzdata
var SchoolTZ = time.FixedZone("UTC+8", 8*60*60)

var seq uint64

// NewDB 在临时目录创建迁移好的 SQLite 库。单连接使事务串行执行
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mindcare.db")
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000&_foreign_keys=1"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// CreateUser 创建指定角色的用户，学生角色同时创建学生档案
func CreateUser(t *testing.T, db *gorm.DB, role model.UserRole) (*model.User, *model.Student) {
	t.Helper()

	n := atomic.AddUint64(&seq, 1)
	user := &model.User{
		Name:     fmt.Sprintf("user-%d", n),
		Email:    fmt.Sprintf("user-%d@school.test", n),
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(user).Error)

	if role != model.RoleStudent {
		return user, nil
	}
	student := &model.Student{UserID: user.ID}
	require.NoError(t, db.Create(student).Error)
	return user, student
}

// CreateStudent 创建学生并返回学生档案 ID
func CreateStudent(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	_, student := CreateUser(t, db, model.RoleStudent)
	return student.ID
}

// At 返回学校时区下的时间
func At(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, SchoolTZ)
}
