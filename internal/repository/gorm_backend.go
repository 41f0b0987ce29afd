package repository

import (
	"context"
	"fmt"
	"time"

	"go_4_vocab_review/internal/middleware"
	"go_4_vocab_review/internal/model"

	"gorm.io/gorm"
)

const saveBatchSize = 100

// GormBackend は learned_items テーブルに項目を保存します (SQLite / PostgreSQL)。
// DB接続の所有者は呼び出し元 (main) で、Close では閉じません。
type GormBackend struct {
	db *gorm.DB
}

// NewGormBackend はテーブルを AutoMigrate してから Backend を返します。
// 新しいカラムは追加のみで、既存行では NULL になります。
func NewGormBackend(ctx context.Context, db *gorm.DB) (*GormBackend, error) {
	if err := db.WithContext(ctx).AutoMigrate(&itemRecord{}); err != nil {
		return nil, fmt.Errorf("NewGormBackend: migrate learned_items: %w", err)
	}
	return &GormBackend{db: db}, nil
}

func (b *GormBackend) Load(ctx context.Context) ([]model.LearnedItem, error) {
	logger := middleware.GetLogger(ctx)
	var records []itemRecord
	result := b.db.WithContext(ctx).Order("learned_at ASC").Find(&records)
	if result.Error != nil {
		logger.Error("Error loading learned items from DB", "error", result.Error)
		return nil, fmt.Errorf("GormBackend.Load: %w", result.Error)
	}
	return recordsToItems(ctx, records, time.Now().UTC()), nil
}

// Save はトランザクション内で全行を入れ替えます。
func (b *GormBackend) Save(ctx context.Context, items []model.LearnedItem) error {
	logger := middleware.GetLogger(ctx)
	records := itemsToRecords(items)

	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&itemRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(&records, saveBatchSize).Error
	})
	if err != nil {
		logger.Error("Error saving learned items to DB", "error", err, "count", len(records))
		return fmt.Errorf("GormBackend.Save: %w", err)
	}
	return nil
}

func (b *GormBackend) Close() error {
	return nil
}
