package repository

import (
	"context"
	"errors"
	"fmt"
	"mindcare_backend/internal/util"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type existingRecord struct {
	ID        string
	CreatedAt time.Time
}

// CreateOnceInWindow 在同一事务内检查窗口内是否已有同类记录，没有才插入。
// proto 是记录类型的零值（如 &model.MoodEntry{}），where/args 限定记录归属。
// 检查使用 SELECT ... FOR UPDATE，同时依赖表上的唯一索引兜底
func CreateOnceInWindow(ctx context.Context, db *gorm.DB, kind string, proto, record interface{}, window util.Window, where string, args ...interface{}) error {
	w := window.UTC()

	err := transactionWithRetry(ctx, db, func(tx *gorm.DB) error {
		var existing existingRecord
		err := tx.Model(proto).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "created_at").
			Where(where, args...).
			Where("created_at BETWEEN ? AND ?", w.Start, w.End).
			Take(&existing).Error
		if err == nil {
			return fmt.Errorf("%w: %s already submitted today (id=%s at %s)",
				util.ErrAlreadyExists, kind, existing.ID, existing.CreatedAt.Format(time.RFC3339))
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(record).Error
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s already submitted today", util.ErrAlreadyExists, kind)
	}
	return err
}
