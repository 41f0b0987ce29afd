// internal/repository/item_store_test.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"go_4_vocab_review/internal/interval"
	"go_4_vocab_review/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func newTestStore(t *testing.T, capacity int) *ItemStore {
	t.Helper()
	return NewItemStore(NewMemoryBackend(), capacity, WithClock(fixedClock(t0)))
}

// expertItem は容量テスト用に Expert の項目を作ります。
func expertItem(i int, lastReviewed time.Time) model.LearnedItem {
	return model.LearnedItem{
		Content:        fmt.Sprintf("word%02d", i),
		Kind:           model.KindWord,
		LearnedAt:      t0.Add(-30 * 24 * time.Hour),
		LastReviewedAt: lastReviewed,
		NextReviewAt:   lastReviewed.Add(720 * time.Hour),
		ReviewCount:    10,
		Mastery:        model.MasteryExpert,
		Difficulty:     0,
		Active:         true,
	}
}

func TestItemStore_Upsert(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		content     string
		kind        model.ItemKind
		wantErr     error
		wantCreated bool
	}{
		{name: "正常系: 新しい単語を作成", content: "serendipity", kind: model.KindWord, wantCreated: true},
		{name: "正常系: 前後の空白は取り除く", content: "  ephemeral ", kind: model.KindWord, wantCreated: true},
		{name: "正常系: トピック", content: "Travel", kind: model.KindTopic, wantCreated: true},
		{name: "異常系: 空の content", content: "   ", kind: model.KindWord, wantErr: model.ErrInvalidInput},
		{name: "異常系: 不明な種類", content: "run", kind: model.ItemKind("verb"), wantErr: model.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t, 0)

			item, created, err := store.Upsert(ctx, tt.content, tt.kind, "meaning", "an example")

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, store.Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCreated, created)
			assert.Equal(t, model.MasteryNew, item.Mastery)
			assert.Equal(t, 0, item.ReviewCount)
			assert.Equal(t, model.DefaultDifficulty, item.Difficulty)
			assert.True(t, item.Active)
			assert.Equal(t, t0, item.LearnedAt)
			assert.Equal(t, t0, item.LastReviewedAt)
			assert.Equal(t, t0.Add(time.Hour), item.NextReviewAt)
			assert.Equal(t, []string{"an example"}, item.ContextExamples)
			assert.Equal(t, 1, store.Len())
		})
	}
}

func TestItemStore_Upsert_DuplicateMergesContextOnly(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 0)

	first, created, err := store.Upsert(ctx, "Run", model.KindWord, "走る", "I run every day.")
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := store.Upsert(ctx, "  run ", model.KindWord, "別の意味", "She runs a company.")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "Run", second.Content)
	assert.Equal(t, "走る", second.Meaning)
	assert.Equal(t, first.NextReviewAt, second.NextReviewAt)
	assert.Equal(t, []string{"I run every day.", "She runs a company."}, second.ContextExamples)

	// 同じ内容でも種類が違えば別の項目
	_, created, err = store.Upsert(ctx, "run", model.KindPhrase, "", "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 2, store.Len())
}

func TestItemStore_Upsert_ContextIsCappedFIFO(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 0)

	for i := 1; i <= 7; i++ {
		_, _, err := store.Upsert(ctx, "apple", model.KindWord, "", fmt.Sprintf("example %d", i))
		require.NoError(t, err)
	}
	// 重複と空文字は追加されない
	_, _, err := store.Upsert(ctx, "apple", model.KindWord, "", "example 7")
	require.NoError(t, err)
	_, _, err = store.Upsert(ctx, "apple", model.KindWord, "", "")
	require.NoError(t, err)

	item, ok := store.Get(model.NewItemKey("APPLE", model.KindWord))
	require.True(t, ok)
	assert.Equal(t, []string{"example 3", "example 4", "example 5", "example 6", "example 7"}, item.ContextExamples)
}

func TestItemStore_Capacity_EvictsOldestExpert(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()

	items := make([]model.LearnedItem, 0, 60)
	for i := range 60 {
		// word00 が最も古い LastReviewedAt
		items = append(items, expertItem(i, t0.Add(-time.Duration(60-i)*time.Hour)))
	}
	require.NoError(t, backend.Save(ctx, items))

	store := NewItemStore(backend, DefaultCapacity, WithClock(fixedClock(t0)))
	require.NoError(t, store.Load(ctx))
	require.Equal(t, 60, store.Len())

	_, created, err := store.Upsert(ctx, "newcomer", model.KindWord, "", "")
	require.NoError(t, err)
	require.True(t, created)

	assert.Equal(t, 60, store.Len())
	_, ok := store.Get(model.NewItemKey("word00", model.KindWord))
	assert.False(t, ok, "the Expert item with the oldest last review should be evicted")
	_, ok = store.Get(model.NewItemKey("word01", model.KindWord))
	assert.True(t, ok)
	_, ok = store.Get(model.NewItemKey("newcomer", model.KindWord))
	assert.True(t, ok)
}

func TestItemStore_Capacity_EvictsOldestExpertReachedThroughReviews(t *testing.T) {
	ctx := context.Background()
	clock := t0
	store := NewItemStore(NewMemoryBackend(), DefaultCapacity, WithClock(func() time.Time { return clock }))

	keys := make([]model.ItemKey, 0, DefaultCapacity)
	for i := range DefaultCapacity {
		item, _, err := store.Upsert(ctx, fmt.Sprintf("word%02d", i), model.KindWord, "", "")
		require.NoError(t, err)
		keys = append(keys, item.Key())
		clock = clock.Add(time.Minute)
	}

	review := func(key model.ItemKey) {
		t.Helper()
		clock = clock.Add(time.Minute)
		_, err := store.Update(ctx, key, func(item model.LearnedItem) model.LearnedItem {
			return interval.ApplyOutcome(item, true, clock)
		})
		require.NoError(t, err)
	}

	// 5回正解で Mastered、6回目で Expert になる
	for range 5 {
		for _, key := range keys {
			review(key)
		}
	}
	// word03 は6回目を受けないので最も古いが Mastered のまま
	// 6回目は word17 から始めるので Expert の中では word17 が最も古い
	sixth := append(slices.Clone(keys[17:]), keys[:17]...)
	for _, key := range sixth {
		if key == keys[3] {
			continue
		}
		review(key)
	}

	for _, key := range keys {
		item, ok := store.Get(key)
		require.True(t, ok)
		if key == keys[3] {
			require.Equal(t, model.MasteryMastered, item.Mastery)
		} else {
			require.Equal(t, model.MasteryExpert, item.Mastery, key.String())
		}
	}

	_, created, err := store.Upsert(ctx, "newcomer", model.KindWord, "", "")
	require.NoError(t, err)
	require.True(t, created)

	assert.Equal(t, DefaultCapacity, store.Len())
	_, ok := store.Get(keys[17])
	assert.False(t, ok, "the Expert item with the oldest last review should be evicted")
	_, ok = store.Get(keys[3])
	assert.True(t, ok, "lower mastery is kept even when reviewed longer ago")
	_, ok = store.Get(keys[18])
	assert.True(t, ok)
	newcomer, ok := store.Get(model.NewItemKey("newcomer", model.KindWord))
	require.True(t, ok)
	assert.Equal(t, model.MasteryNew, newcomer.Mastery)
}

func TestItemStore_Capacity_PrefersHigherMastery(t *testing.T) {
	ctx := context.Background()
	clock := t0
	store := NewItemStore(NewMemoryBackend(), 3, WithClock(func() time.Time { return clock }))

	for _, c := range []string{"alpha", "beta", "gamma"} {
		_, _, err := store.Upsert(ctx, c, model.KindWord, "", "")
		require.NoError(t, err)
		clock = clock.Add(time.Minute)
	}
	// gamma は最も新しいが習熟度が高いので先に追い出される
	_, err := store.Update(ctx, model.NewItemKey("gamma", model.KindWord), func(item model.LearnedItem) model.LearnedItem {
		item.Mastery = model.MasteryFamiliar
		return item
	})
	require.NoError(t, err)

	_, _, err = store.Upsert(ctx, "delta", model.KindWord, "", "")
	require.NoError(t, err)

	assert.Equal(t, 3, store.Len())
	_, ok := store.Get(model.NewItemKey("gamma", model.KindWord))
	assert.False(t, ok)

	// 同じ習熟度なら LastReviewedAt が古いもの
	_, _, err = store.Upsert(ctx, "epsilon", model.KindWord, "", "")
	require.NoError(t, err)
	_, ok = store.Get(model.NewItemKey("alpha", model.KindWord))
	assert.False(t, ok)
	assert.Equal(t, 3, store.Len())
}

func TestItemStore_List(t *testing.T) {
	ctx := context.Background()
	clock := t0
	store := NewItemStore(NewMemoryBackend(), 0, WithClock(func() time.Time { return clock }))

	for _, u := range []struct {
		content string
		kind    model.ItemKind
	}{
		{"one", model.KindWord},
		{"food", model.KindTopic},
		{"two", model.KindWord},
	} {
		_, _, err := store.Upsert(ctx, u.content, u.kind, "", "")
		require.NoError(t, err)
		clock = clock.Add(time.Minute)
	}

	words := store.List(func(item model.LearnedItem) bool { return item.Kind == model.KindWord })

	var got []string
	for item := range words {
		got = append(got, item.Content)
	}
	assert.Equal(t, []string{"one", "two"}, got)

	// シーケンスは再利用でき、その時点の内容を反映する
	_, _, err := store.Upsert(ctx, "three", model.KindWord, "", "")
	require.NoError(t, err)
	got = got[:0]
	for item := range words {
		got = append(got, item.Content)
	}
	assert.Equal(t, []string{"one", "two", "three"}, got)

	// 途中で抜けても問題ない
	count := 0
	for range store.List(nil) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestItemStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 0)

	item, _, err := store.Upsert(ctx, "copy", model.KindWord, "", "original")
	require.NoError(t, err)
	item.ContextExamples[0] = "mutated"
	item.Mastery = model.MasteryExpert

	stored, ok := store.Get(item.Key())
	require.True(t, ok)
	assert.Equal(t, []string{"original"}, stored.ContextExamples)
	assert.Equal(t, model.MasteryNew, stored.Mastery)
}

func TestItemStore_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 関数の結果で置き換える", func(t *testing.T) {
		store := newTestStore(t, 0)
		_, _, err := store.Upsert(ctx, "update", model.KindWord, "", "")
		require.NoError(t, err)

		updated, err := store.Update(ctx, model.NewItemKey("UPDATE", model.KindWord), func(item model.LearnedItem) model.LearnedItem {
			item.ReviewCount = 4
			return item
		})
		require.NoError(t, err)
		assert.Equal(t, 4, updated.ReviewCount)

		stored, _ := store.Get(updated.Key())
		assert.Equal(t, 4, stored.ReviewCount)
	})

	t.Run("異常系: 存在しないキー", func(t *testing.T) {
		store := newTestStore(t, 0)
		_, _, err := store.Upsert(ctx, "present", model.KindWord, "", "")
		require.NoError(t, err)

		called := false
		_, err = store.Update(ctx, model.NewItemKey("absent", model.KindWord), func(item model.LearnedItem) model.LearnedItem {
			called = true
			return item
		})
		assert.ErrorIs(t, err, model.ErrItemNotFound)
		assert.False(t, called)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("異常系: キーの変更は拒否", func(t *testing.T) {
		store := newTestStore(t, 0)
		_, _, err := store.Upsert(ctx, "stay", model.KindWord, "", "")
		require.NoError(t, err)

		_, err = store.Update(ctx, model.NewItemKey("stay", model.KindWord), func(item model.LearnedItem) model.LearnedItem {
			item.Content = "moved"
			return item
		})
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		_, ok := store.Get(model.NewItemKey("stay", model.KindWord))
		assert.True(t, ok)
	})
}

func TestItemStore_SetActiveAndResetAll(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 0)
	_, _, err := store.Upsert(ctx, "pause", model.KindWord, "", "")
	require.NoError(t, err)

	item, err := store.SetActive(ctx, model.NewItemKey("pause", model.KindWord), false)
	require.NoError(t, err)
	assert.False(t, item.Active)
	assert.False(t, item.IsDue(t0.Add(48*time.Hour)))

	_, err = store.SetActive(ctx, model.NewItemKey("missing", model.KindWord), true)
	assert.ErrorIs(t, err, model.ErrItemNotFound)

	store.ResetAll(ctx)
	assert.Equal(t, 0, store.Len())
}

func TestItemStore_SaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := NewFileBackend(filepath.Join(t.TempDir(), "items.json"))
	store := NewItemStore(backend, 0, WithClock(fixedClock(t0)))

	_, _, err := store.Upsert(ctx, "Persist", model.KindWord, "保存", "ctx one")
	require.NoError(t, err)
	_, _, err = store.Upsert(ctx, "Hobbies", model.KindTopic, "", "")
	require.NoError(t, err)
	_, err = store.Update(ctx, model.NewItemKey("persist", model.KindWord), func(item model.LearnedItem) model.LearnedItem {
		item.ReviewCount = 3
		item.Mastery = model.MasteryFamiliar
		item.Difficulty = 0.25
		item.Active = false
		return item
	})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx))

	want := store.Snapshot(nil)

	reloaded := NewItemStore(backend, 0)
	require.NoError(t, reloaded.Load(ctx))
	got := reloaded.Snapshot(nil)

	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Key(), got[i].Key())
		assert.Equal(t, want[i].Content, got[i].Content)
		assert.Equal(t, want[i].Meaning, got[i].Meaning)
		assert.Equal(t, want[i].ContextExamples, got[i].ContextExamples)
		assert.True(t, want[i].LearnedAt.Equal(got[i].LearnedAt))
		assert.True(t, want[i].LastReviewedAt.Equal(got[i].LastReviewedAt))
		assert.True(t, want[i].NextReviewAt.Equal(got[i].NextReviewAt))
		assert.Equal(t, want[i].ReviewCount, got[i].ReviewCount)
		assert.Equal(t, want[i].Mastery, got[i].Mastery)
		assert.Equal(t, want[i].Difficulty, got[i].Difficulty)
		assert.Equal(t, want[i].Active, got[i].Active)
	}
}

func TestItemStore_Load_CorruptDataFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"content": "broken",`), 0o600))

	store := NewItemStore(NewFileBackend(path), 0, WithClock(fixedClock(t0)))
	_, _, err := store.Upsert(ctx, "before", model.KindWord, "", "")
	require.NoError(t, err)

	err = store.Load(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrPersistence)
	var perr *model.PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "load", perr.Op)
	assert.Equal(t, 0, store.Len())

	// 失敗後も使える
	_, created, err := store.Upsert(ctx, "after", model.KindWord, "", "")
	require.NoError(t, err)
	assert.True(t, created)
}

func TestItemStore_Save_RefusedAfterFailedLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "items.json")
	corrupt := []byte(`[{"content": "apple", "kind": "word"}, {"content": "banana",`)
	require.NoError(t, os.WriteFile(path, corrupt, 0o600))

	store := NewItemStore(NewFileBackend(path), 0, WithClock(fixedClock(t0)))
	require.Error(t, store.Load(ctx))

	_, _, err := store.Upsert(ctx, "cherry", model.KindWord, "", "")
	require.NoError(t, err)

	err = store.Save(ctx)
	assert.ErrorIs(t, err, model.ErrPersistence)
	assert.ErrorIs(t, err, model.ErrStoreNotLoaded)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, corrupt, raw, "読み込めなかったファイルは上書きしない")

	// 直して読み直せば保存できる
	require.NoError(t, os.WriteFile(path, []byte(`[{"content": "apple", "kind": "word"}]`), 0o600))
	require.NoError(t, store.Load(ctx))
	require.NoError(t, store.Save(ctx))
}

func TestItemStore_Save_AllowedAfterResetFollowingFailedLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o600))

	store := NewItemStore(NewFileBackend(path), 0, WithClock(fixedClock(t0)))
	require.Error(t, store.Load(ctx))
	require.ErrorIs(t, store.Save(ctx), model.ErrStoreNotLoaded)

	store.ResetAll(ctx)
	_, _, err := store.Upsert(ctx, "fresh", model.KindWord, "", "")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx))

	reloaded := NewItemStore(NewFileBackend(path), 0)
	require.NoError(t, reloaded.Load(ctx))
	_, ok := reloaded.Get(model.NewItemKey("fresh", model.KindWord))
	assert.True(t, ok)
}

func TestItemStore_Load_KeepsItemsBesideUnknownMastery(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "items.json")
	raw := `[{"content": "apple", "kind": "word", "mastery": "mastered"},
{"content": "banana", "kind": "word", "mastery": "legendary"}]`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	store := NewItemStore(NewFileBackend(path), 0, WithClock(fixedClock(t0)))
	require.NoError(t, store.Load(ctx))
	assert.Equal(t, 2, store.Len())

	banana, ok := store.Get(model.NewItemKey("banana", model.KindWord))
	require.True(t, ok)
	assert.Equal(t, model.MasteryNew, banana.Mastery)
	require.NoError(t, store.Save(ctx))
}

func TestItemStore_Load_MergesDuplicatesAndTrims(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	a := expertItem(1, t0.Add(-2*time.Hour))
	a.ContextExamples = []string{"first"}
	dup := a
	dup.Content = "WORD01"
	dup.ContextExamples = []string{"second"}
	b := expertItem(2, t0.Add(-3*time.Hour))
	c := expertItem(3, t0.Add(-time.Hour))
	require.NoError(t, backend.Save(ctx, []model.LearnedItem{a, dup, b, c}))

	store := NewItemStore(backend, 2)
	require.NoError(t, store.Load(ctx))

	assert.Equal(t, 2, store.Len())
	merged, ok := store.Get(a.Key())
	require.True(t, ok)
	assert.Equal(t, []string{"first", "second"}, merged.ContextExamples)
	_, ok = store.Get(b.Key())
	assert.False(t, ok)
}

type failingBackend struct {
	MemoryBackend
}

func (*failingBackend) Save(context.Context, []model.LearnedItem) error {
	return errors.New("disk full")
}

func TestItemStore_Save_Failure(t *testing.T) {
	ctx := context.Background()
	store := NewItemStore(&failingBackend{}, 0)
	_, _, err := store.Upsert(ctx, "keep", model.KindWord, "", "")
	require.NoError(t, err)

	err = store.Save(ctx)
	assert.ErrorIs(t, err, model.ErrPersistence)
	assert.Equal(t, 1, store.Len())
}

func TestItemStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewItemStore(NewMemoryBackend(), 250)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 25 {
				_, _, err := store.Upsert(ctx, fmt.Sprintf("g%d-%d", g, i), model.KindWord, "", "")
				assert.NoError(t, err)
				_, _, err = store.Upsert(ctx, "shared", model.KindWord, "", fmt.Sprintf("ctx %d-%d", g, i))
				assert.NoError(t, err)
				for range store.List(nil) {
				}
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 50 {
			_ = store.Save(ctx)
		}
	}()
	wg.Wait()

	assert.Equal(t, 201, store.Len())
	shared, ok := store.Get(model.NewItemKey("shared", model.KindWord))
	require.True(t, ok)
	assert.Len(t, shared.ContextExamples, model.MaxContextExamples)
}
