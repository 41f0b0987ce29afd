// internal/model/review.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ReportContentRequest は「学習者がこの内容に触れた」通知のDTO
type ReportContentRequest struct {
	Content string `json:"content" validate:"required,max=200"`
	Kind    string `json:"kind" validate:"required,oneof=word topic phrase grammar"`
	Meaning string `json:"meaning,omitempty" validate:"max=500"`
	Context string `json:"context,omitempty" validate:"max=1000"`
}

// ReviewItemResponse は復習バッチの1項目 (表示層向け)
type ReviewItemResponse struct {
	Content         string    `json:"content"`
	Kind            ItemKind  `json:"kind"`
	Meaning         string    `json:"meaning,omitempty"`
	ContextExamples []string  `json:"context_examples"`
	Mastery         string    `json:"mastery"`
	ReviewCount     int       `json:"review_count"`
	NextReviewAt    time.Time `json:"next_review_at"`
}

// NewReviewItemResponse は LearnedItem から表示用DTOを作ります。
func NewReviewItemResponse(item LearnedItem) *ReviewItemResponse {
	examples := item.ContextExamples
	if examples == nil {
		examples = []string{}
	}
	return &ReviewItemResponse{
		Content:         item.Content,
		Kind:            item.Kind,
		Meaning:         item.Meaning,
		ContextExamples: examples,
		Mastery:         item.Mastery.String(),
		ReviewCount:     item.ReviewCount,
		NextReviewAt:    item.NextReviewAt,
	}
}

// SubmitOutcomeRequest は復習結果送信リクエストのDTO
type SubmitOutcomeRequest struct {
	Content    string `json:"content" validate:"required"`
	Kind       string `json:"kind" validate:"required,oneof=word topic phrase grammar"`
	WasCorrect *bool  `json:"was_correct" validate:"required"`
}

// CompleteItemRequest はセッション内の1項目の結果
type CompleteItemRequest struct {
	WasCorrect *bool `json:"was_correct" validate:"required"`
}

// StartSessionRequest はセッション開始リクエスト。省略時は設定値を使う。
type StartSessionRequest struct {
	Target     *int `json:"target,omitempty" validate:"omitempty,min=0,max=100"`
	TopicSlots *int `json:"topic_slots,omitempty" validate:"omitempty,min=0,max=20"`
}

// SetActiveRequest は項目の有効/無効切り替え
type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// SessionResponse は進行中セッションの状態
type SessionResponse struct {
	SessionID uuid.UUID             `json:"session_id"`
	StartedAt time.Time             `json:"started_at"`
	Items     []*ReviewItemResponse `json:"items"`
	Pending   []*ReviewItemResponse `json:"pending"`
	Completed int                   `json:"completed"`
}

// SessionSummary はセッション終了時の集計
type SessionSummary struct {
	SessionID uuid.UUID `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
	Total     int       `json:"total"`
	Completed int       `json:"completed"`
	Correct   int       `json:"correct"`
	Skipped   []ItemKey `json:"skipped"`
}

// StatsResponse は学習状況の集計
type StatsResponse struct {
	Total     int            `json:"total"`
	Active    int            `json:"active"`
	Due       int            `json:"due"`
	Capacity  int            `json:"capacity"`
	ByMastery map[string]int `json:"by_mastery"`
	ByKind    map[string]int `json:"by_kind"`
}

// ReportContentResponse は ReportContent の結果。Created は新規作成された場合 true。
type ReportContentResponse struct {
	Item    *ReviewItemResponse `json:"item"`
	Created bool                `json:"created"`
}

// DueItemsResponse はセッションを開始せずに見る復習対象の一覧
type DueItemsResponse struct {
	Items []*ReviewItemResponse `json:"items"`
	Total int                   `json:"total"`
}

// ItemFilter は項目一覧の絞り込み条件。nil / 空は条件なし。
type ItemFilter struct {
	Kind   ItemKind
	Active *bool
}

// Match は item が条件を満たすかどうか
func (f ItemFilter) Match(item LearnedItem) bool {
	if f.Kind != "" && item.Kind != f.Kind {
		return false
	}
	if f.Active != nil && item.Active != *f.Active {
		return false
	}
	return true
}
