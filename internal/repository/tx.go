package repository

import (
	"context"
	"errors"
	"mindcare_backend/pkg/logger"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InnoDB 死锁错误码
const mysqlErrDeadlock = 1213

const maxTxAttempts = 2

func isDeadlock(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlErrDeadlock
}

// transactionWithRetry 两个并发的 SELECT ... FOR UPDATE 落在同一个空 gap 上时，
// InnoDB 会让其中一个事务以死锁回滚，重跑一次后它能看到对方已提交的记录
func transactionWithRetry(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = db.WithContext(ctx).Transaction(fn)
		if !isDeadlock(err) {
			return err
		}
		logger.Log.Warn("Transaction deadlocked",
			zap.Int("attempt", attempt),
			zap.Error(err))
	}
	return err
}
