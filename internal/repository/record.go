package repository

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"go_4_vocab_review/internal/interval"
	"go_4_vocab_review/internal/model"

	"gorm.io/datatypes"
)

// itemRecord は永続化用の1項目。後から追加されたカラム/フィールドは古いデータでは
// NULL (または欠落) になるため、ポインタで受けて読み込み時に既定値で補う。
type itemRecord struct {
	Kind            string                      `gorm:"primaryKey;size:16" json:"kind"`
	ContentKey      string                      `gorm:"primaryKey;size:255" json:"-"`
	Content         string                      `gorm:"not null" json:"content"`
	Meaning         string                      `json:"meaning,omitempty"`
	ContextExamples datatypes.JSONSlice[string] `gorm:"not null;default:'[]'" json:"context_examples,omitempty"`
	LearnedAt       time.Time                   `gorm:"not null" json:"learned_at"`
	LastReviewedAt  *time.Time                  `json:"last_reviewed_at,omitempty"`
	NextReviewAt    *time.Time                  `gorm:"index" json:"next_review_at,omitempty"`
	ReviewCount     *int                        `json:"review_count,omitempty"`
	Mastery         *string                     `gorm:"size:16" json:"mastery,omitempty"`
	Difficulty      *float64                    `json:"difficulty,omitempty"`
	Active          *bool                       `json:"active,omitempty"`
}

func (itemRecord) TableName() string {
	return "learned_items"
}

func newItemRecord(item model.LearnedItem) itemRecord {
	lastReviewedAt := item.LastReviewedAt
	nextReviewAt := item.NextReviewAt
	reviewCount := item.ReviewCount
	mastery := item.Mastery.String()
	difficulty := item.Difficulty
	active := item.Active

	return itemRecord{
		Kind:            string(item.Kind),
		ContentKey:      model.NormalizeContent(item.Content),
		Content:         item.Content,
		Meaning:         item.Meaning,
		ContextExamples: datatypes.NewJSONSlice(append([]string{}, item.ContextExamples...)),
		LearnedAt:       item.LearnedAt,
		LastReviewedAt:  &lastReviewedAt,
		NextReviewAt:    &nextReviewAt,
		ReviewCount:     &reviewCount,
		Mastery:         &mastery,
		Difficulty:      &difficulty,
		Active:          &active,
	}
}

// toItem は欠落フィールドを既定値で補って LearnedItem に戻します。
// 種類や内容が壊れている場合はエラー。不明な習熟度は New として読み、logger に警告を出す。
func (r itemRecord) toItem(loadedAt time.Time, logger *slog.Logger) (model.LearnedItem, error) {
	kind, err := model.ParseItemKind(r.Kind)
	if err != nil {
		return model.LearnedItem{}, fmt.Errorf("record %q: %w", r.Content, err)
	}
	content := strings.TrimSpace(r.Content)
	if content == "" {
		return model.LearnedItem{}, fmt.Errorf("record of kind %q has empty content", r.Kind)
	}

	item := model.LearnedItem{
		Content:     content,
		Kind:        kind,
		Meaning:     r.Meaning,
		LearnedAt:   r.LearnedAt,
		Mastery:     model.MasteryNew,
		Difficulty:  model.DefaultDifficulty,
		Active:      true,
		ReviewCount: 0,
	}
	for _, example := range r.ContextExamples {
		item.AddContext(example)
	}

	if item.LearnedAt.IsZero() {
		if r.LastReviewedAt != nil && !r.LastReviewedAt.IsZero() {
			item.LearnedAt = *r.LastReviewedAt
		} else {
			item.LearnedAt = loadedAt
		}
	}
	item.LastReviewedAt = item.LearnedAt
	if r.LastReviewedAt != nil && !r.LastReviewedAt.IsZero() {
		item.LastReviewedAt = *r.LastReviewedAt
	}
	if r.ReviewCount != nil && *r.ReviewCount > 0 {
		item.ReviewCount = *r.ReviewCount
	}
	if r.Mastery != nil && *r.Mastery != "" {
		if m, err := model.ParseMasteryLevel(*r.Mastery); err == nil {
			item.Mastery = m
		} else {
			logger.Warn("Unknown mastery in persisted item, treating as new",
				"kind", r.Kind, "content", content, "mastery", *r.Mastery)
		}
	}
	if r.Difficulty != nil && !math.IsNaN(*r.Difficulty) {
		item.Difficulty = math.Min(1, math.Max(0, *r.Difficulty))
	}
	if r.Active != nil {
		item.Active = *r.Active
	}

	switch {
	case r.NextReviewAt == nil || r.NextReviewAt.IsZero():
		item.NextReviewAt = item.LastReviewedAt.Add(interval.NextInterval(item.ReviewCount, item.Mastery, item.Difficulty))
	case r.NextReviewAt.Before(item.LastReviewedAt):
		item.NextReviewAt = item.LastReviewedAt
	default:
		item.NextReviewAt = *r.NextReviewAt
	}
	return item, nil
}
