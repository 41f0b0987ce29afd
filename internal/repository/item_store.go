//go:generate mockery --name ItemRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"cmp"
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"
	"time"

	"go_4_vocab_review/internal/interval"
	"go_4_vocab_review/internal/middleware"
	"go_4_vocab_review/internal/model"
)

// DefaultCapacity はストアが保持する項目数の既定上限
const DefaultCapacity = 60

// ItemRepository は学習項目の保持と永続化を行います。
type ItemRepository interface {
	Upsert(ctx context.Context, content string, kind model.ItemKind, meaning, example string) (model.LearnedItem, bool, error)
	Get(key model.ItemKey) (model.LearnedItem, bool)
	List(pred func(model.LearnedItem) bool) iter.Seq[model.LearnedItem]
	Update(ctx context.Context, key model.ItemKey, fn func(model.LearnedItem) model.LearnedItem) (model.LearnedItem, error)
	SetActive(ctx context.Context, key model.ItemKey, active bool) (model.LearnedItem, error)
	ResetAll(ctx context.Context)
	Save(ctx context.Context) error
	Load(ctx context.Context) error
	Len() int
	Capacity() int
}

var _ ItemRepository = (*ItemStore)(nil)

// ItemStore は学習項目の唯一の保持者です。
// 更新はすべて1つのミューテックスで直列化し、読み出しはコピーを返します。
type ItemStore struct {
	mu       sync.RWMutex
	items    map[model.ItemKey]*model.LearnedItem
	capacity int
	backend  Backend
	now      func() time.Time

	// Save 同士の順序を保つ
	saveMu sync.Mutex
	// 直前の Load が失敗していれば true。その間 Save は永続化先を上書きしない。
	loadFailed bool
}

type StoreOption func(*ItemStore)

// WithClock は現在時刻の取得方法を差し替えます (テスト用)。
func WithClock(now func() time.Time) StoreOption {
	return func(s *ItemStore) {
		s.now = now
	}
}

// NewItemStore は空のストアを作ります。capacity が0以下なら DefaultCapacity。
// backend が nil の場合は MemoryBackend を使います。
func NewItemStore(backend Backend, capacity int, opts ...StoreOption) *ItemStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if backend == nil {
		backend = NewMemoryBackend()
	}
	s := &ItemStore{
		items:    make(map[model.ItemKey]*model.LearnedItem),
		capacity: capacity,
		backend:  backend,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ItemStore) Capacity() int {
	return s.capacity
}

func (s *ItemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Upsert は (content, kind) で項目を探し、なければ作成します。
// 既存の場合は例文だけを追加し、それ以外は変更しません。作成した場合 created=true。
func (s *ItemStore) Upsert(ctx context.Context, content string, kind model.ItemKind, meaning, example string) (item model.LearnedItem, created bool, err error) {
	logger := middleware.GetLogger(ctx)

	content = strings.TrimSpace(content)
	if content == "" {
		return model.LearnedItem{}, false, fmt.Errorf("%w: content is empty", model.ErrInvalidInput)
	}
	if !kind.IsValid() {
		return model.LearnedItem{}, false, fmt.Errorf("%w: unknown item kind %q", model.ErrInvalidInput, kind)
	}
	key := model.NewItemKey(content, kind)

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.items[key]; ok {
		if existing.AddContext(example) {
			logger.Debug("Context example merged into existing item", "key", key.String())
		}
		return existing.Clone(), false, nil
	}

	now := s.now()
	newItem := &model.LearnedItem{
		Content:        content,
		Kind:           kind,
		Meaning:        strings.TrimSpace(meaning),
		LearnedAt:      now,
		LastReviewedAt: now,
		NextReviewAt:   interval.Baseline(now),
		ReviewCount:    0,
		Mastery:        model.MasteryNew,
		Difficulty:     model.DefaultDifficulty,
		Active:         true,
	}
	newItem.AddContext(example)
	s.items[key] = newItem

	if evicted := s.evictLocked(key); len(evicted) > 0 {
		logger.Info("Evicted items over capacity", "capacity", s.capacity, "evicted", keyStrings(evicted))
	}
	s.assertCapacityLocked()

	logger.Debug("Learned item created", "key", key.String(), "next_review_at", newItem.NextReviewAt)
	return newItem.Clone(), true, nil
}

// Get はキーに一致する項目のコピーを返します。
func (s *ItemStore) Get(key model.ItemKey) (model.LearnedItem, bool) {
	key = model.NewItemKey(key.Content, key.Kind)
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[key]
	if !ok {
		return model.LearnedItem{}, false
	}
	return item.Clone(), true
}

// List は pred を満たす項目を返すシーケンスです。range するたびにその時点の
// スナップショットを取るので、何度でも繰り返せます。pred が nil なら全件。
// 順序は LearnedAt 昇順、同時刻はキー順。
func (s *ItemStore) List(pred func(model.LearnedItem) bool) iter.Seq[model.LearnedItem] {
	return func(yield func(model.LearnedItem) bool) {
		for _, item := range s.snapshot(pred) {
			if !yield(item) {
				return
			}
		}
	}
}

// Snapshot は pred を満たす項目のコピーをスライスで返します。
func (s *ItemStore) Snapshot(pred func(model.LearnedItem) bool) []model.LearnedItem {
	return s.snapshot(pred)
}

func (s *ItemStore) snapshot(pred func(model.LearnedItem) bool) []model.LearnedItem {
	s.mu.RLock()
	out := make([]model.LearnedItem, 0, len(s.items))
	for _, item := range s.items {
		if pred == nil || pred(*item) {
			out = append(out, item.Clone())
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b model.LearnedItem) int {
		return cmp.Or(
			a.LearnedAt.Compare(b.LearnedAt),
			cmp.Compare(a.Key().String(), b.Key().String()),
		)
	})
	return out
}

// Update は key の項目に fn を適用して置き換えます (読み出しから書き込みまで排他)。
// 項目がなければ ErrItemNotFound で、ストアは変更しません。fn はキーを変えてはいけません。
func (s *ItemStore) Update(ctx context.Context, key model.ItemKey, fn func(model.LearnedItem) model.LearnedItem) (model.LearnedItem, error) {
	key = model.NewItemKey(key.Content, key.Kind)

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[key]
	if !ok {
		return model.LearnedItem{}, fmt.Errorf("%w: %s", model.ErrItemNotFound, key)
	}
	updated := fn(current.Clone())
	if updated.Key() != key {
		return model.LearnedItem{}, fmt.Errorf("%w: update must not change item key %s", model.ErrInvalidInput, key)
	}
	s.items[key] = &updated

	middleware.GetLogger(ctx).Debug("Learned item updated",
		"key", key.String(),
		"review_count", updated.ReviewCount,
		"mastery", updated.Mastery.String(),
		"difficulty", updated.Difficulty,
	)
	return updated.Clone(), nil
}

// SetActive は項目の有効フラグを切り替えます。無効な項目は復習対象になりません。
func (s *ItemStore) SetActive(ctx context.Context, key model.ItemKey, active bool) (model.LearnedItem, error) {
	return s.Update(ctx, key, func(item model.LearnedItem) model.LearnedItem {
		item.Active = active
		return item
	})
}

// ResetAll は全項目を削除します (管理用)。永続化先には次の Save で反映されます。
// 読み込み失敗後の Save 拒否もここで解除されます。
func (s *ItemStore) ResetAll(ctx context.Context) {
	s.mu.Lock()
	n := len(s.items)
	s.items = make(map[model.ItemKey]*model.LearnedItem)
	s.loadFailed = false
	s.mu.Unlock()

	middleware.GetLogger(ctx).Warn("All learned items were reset", "removed", n)
}

// Save は現在の全項目を Backend に書き出します。
// 直前の Load が失敗している場合は書き出さずに ErrStoreNotLoaded を返します。
func (s *ItemStore) Save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.RLock()
	loadFailed := s.loadFailed
	s.mu.RUnlock()
	if loadFailed {
		middleware.GetLogger(ctx).Warn("Skipping save, persisted items failed to load and would be overwritten")
		return &model.PersistenceError{Op: "save", Err: model.ErrStoreNotLoaded}
	}

	items := s.snapshot(nil)
	if err := s.backend.Save(ctx, items); err != nil {
		middleware.GetLogger(ctx).Error("Failed to save learned items", "error", err)
		return &model.PersistenceError{Op: "save", Err: err}
	}
	middleware.GetLogger(ctx).Info("Learned items saved", "count", len(items))
	return nil
}

// Load は Backend から全項目を読み込み、現在の内容を置き換えます。
// 読み込みに失敗した場合は空のストアに戻して PersistenceError を返します (ストアは使用可能なまま)。
// このとき永続化先の内容は残したいので、次に Load が成功するか ResetAll するまで Save は拒否されます。
func (s *ItemStore) Load(ctx context.Context) error {
	logger := middleware.GetLogger(ctx)

	loaded, err := s.backend.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[model.ItemKey]*model.LearnedItem, len(loaded))
	s.loadFailed = err != nil
	if err != nil {
		logger.Error("Failed to load learned items, starting with an empty store", "error", err)
		return &model.PersistenceError{Op: "load", Err: err}
	}

	for i := range loaded {
		item := loaded[i]
		key := item.Key()
		if existing, ok := s.items[key]; ok {
			// 同じキーが重複して保存されていた場合は先のものに例文だけ合流させる
			for _, example := range item.ContextExamples {
				existing.AddContext(example)
			}
			logger.Warn("Duplicate learned item in persisted data merged", "key", key.String())
			continue
		}
		s.items[key] = &item
	}

	if evicted := s.evictLocked(model.ItemKey{}); len(evicted) > 0 {
		logger.Warn("Persisted items exceeded capacity and were evicted", "capacity", s.capacity, "evicted", keyStrings(evicted))
	}
	s.assertCapacityLocked()

	logger.Info("Learned items loaded", "count", len(s.items))
	return nil
}

// Close は Backend を閉じます。
func (s *ItemStore) Close() error {
	return s.backend.Close()
}

// evictLocked は上限を超えた分を削除します。習熟度の高い順 (Expert から)、
// 同じ習熟度なら LastReviewedAt の古い順に選び、protect は対象外。
func (s *ItemStore) evictLocked(protect model.ItemKey) []model.ItemKey {
	over := len(s.items) - s.capacity
	if over <= 0 {
		return nil
	}

	candidates := make([]*model.LearnedItem, 0, len(s.items))
	for key, item := range s.items {
		if key == protect {
			continue
		}
		candidates = append(candidates, item)
	}
	slices.SortFunc(candidates, func(a, b *model.LearnedItem) int {
		return cmp.Or(
			cmp.Compare(b.Mastery, a.Mastery),
			a.LastReviewedAt.Compare(b.LastReviewedAt),
			a.LearnedAt.Compare(b.LearnedAt),
			cmp.Compare(a.Key().String(), b.Key().String()),
		)
	})

	evicted := make([]model.ItemKey, 0, over)
	for _, item := range candidates[:min(over, len(candidates))] {
		key := item.Key()
		delete(s.items, key)
		evicted = append(evicted, key)
	}
	return evicted
}

func (s *ItemStore) assertCapacityLocked() {
	if len(s.items) > s.capacity {
		panic(fmt.Errorf("%w: %d items, capacity %d", model.ErrCapacityInvariant, len(s.items), s.capacity))
	}
}

func keyStrings(keys []model.ItemKey) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}
