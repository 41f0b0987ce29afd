package repository

import (
	"context"
	"sync"
	"time"

	"go_4_vocab_review/internal/middleware"
	"go_4_vocab_review/internal/model"
)

// Backend は ItemStore の永続化先です。Save は常に全件のスナップショットを受け取ります。
type Backend interface {
	// Load は保存済みの全項目を返します。未保存なら空。
	Load(ctx context.Context) ([]model.LearnedItem, error)
	// Save は保存内容を items で置き換えます。
	Save(ctx context.Context, items []model.LearnedItem) error
	Close() error
}

// MemoryBackend はプロセス内にだけ保持する Backend (database.driver=memory とテスト用)
type MemoryBackend struct {
	mu      sync.Mutex
	records []itemRecord
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) Load(ctx context.Context) ([]model.LearnedItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return recordsToItems(ctx, b.records, time.Now().UTC()), nil
}

func (b *MemoryBackend) Save(ctx context.Context, items []model.LearnedItem) error {
	records := itemsToRecords(items)
	b.mu.Lock()
	b.records = records
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Close() error {
	return nil
}

func itemsToRecords(items []model.LearnedItem) []itemRecord {
	records := make([]itemRecord, 0, len(items))
	for _, item := range items {
		records = append(records, newItemRecord(item))
	}
	return records
}

// recordsToItems は読めないレコード (種類不明、内容が空) を警告付きで読み飛ばします。
func recordsToItems(ctx context.Context, records []itemRecord, loadedAt time.Time) []model.LearnedItem {
	logger := middleware.GetLogger(ctx)
	items := make([]model.LearnedItem, 0, len(records))
	for _, r := range records {
		item, err := r.toItem(loadedAt, logger)
		if err != nil {
			logger.Warn("Skipping unreadable persisted item", "error", err)
			continue
		}
		items = append(items, item)
	}
	return items
}
