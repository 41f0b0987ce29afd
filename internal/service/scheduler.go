package service

import (
	"cmp"
	"context"
	"iter"
	"slices"
	"time"

	"go_4_vocab_review/internal/interval"
	"go_4_vocab_review/internal/middleware"
	"go_4_vocab_review/internal/model"
	"go_4_vocab_review/internal/repository"
)

// Scheduler は復習対象の抽出と結果の反映を行います。
type Scheduler interface {
	// DueItems は asOf 時点で復習対象の項目を返します。
	// 順序は NextReviewAt 昇順、同時刻なら難易度の高い順。
	DueItems(asOf time.Time) iter.Seq[model.LearnedItem]
	CountDue(asOf time.Time) int
	// RecordOutcome は1回の復習結果を反映します。項目がなければ ErrItemNotFound で、新規作成はしません。
	RecordOutcome(ctx context.Context, key model.ItemKey, wasCorrect bool) (model.LearnedItem, error)
}

type scheduler struct {
	items repository.ItemRepository
	now   func() time.Time
}

func NewScheduler(items repository.ItemRepository, now func() time.Time) Scheduler {
	if now == nil {
		now = time.Now
	}
	return &scheduler{items: items, now: now}
}

func (s *scheduler) DueItems(asOf time.Time) iter.Seq[model.LearnedItem] {
	return func(yield func(model.LearnedItem) bool) {
		due := slices.Collect(s.items.List(func(item model.LearnedItem) bool {
			return item.IsDue(asOf)
		}))
		slices.SortFunc(due, compareDue)
		for _, item := range due {
			if !yield(item) {
				return
			}
		}
	}
}

func (s *scheduler) CountDue(asOf time.Time) int {
	n := 0
	for item := range s.items.List(nil) {
		if item.IsDue(asOf) {
			n++
		}
	}
	return n
}

func (s *scheduler) RecordOutcome(ctx context.Context, key model.ItemKey, wasCorrect bool) (model.LearnedItem, error) {
	logger := middleware.GetLogger(ctx).With("key", key.String())
	now := s.now()

	updated, err := s.items.Update(ctx, key, func(item model.LearnedItem) model.LearnedItem {
		return interval.ApplyOutcome(item, wasCorrect, now)
	})
	if err != nil {
		logger.Warn("Failed to record review outcome", "error", err)
		return model.LearnedItem{}, err
	}

	logger.Info("Review outcome recorded",
		"was_correct", wasCorrect,
		"review_count", updated.ReviewCount,
		"mastery", updated.Mastery.String(),
		"next_review_at", updated.NextReviewAt,
	)
	return updated, nil
}

// compareDue は復習順の全順序です。
func compareDue(a, b model.LearnedItem) int {
	return cmp.Or(
		a.NextReviewAt.Compare(b.NextReviewAt),
		cmp.Compare(b.Difficulty, a.Difficulty),
		a.LearnedAt.Compare(b.LearnedAt),
		cmp.Compare(a.Key().String(), b.Key().String()),
	)
}
