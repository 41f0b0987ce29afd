package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go_4_vocab_review/internal/middleware"
	"go_4_vocab_review/internal/model"

	"github.com/google/uuid"
)

// SessionState はセッションの状態 (Idle → InProgress → Idle)
type SessionState int

const (
	SessionIdle SessionState = iota
	SessionInProgress
)

func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "idle"
	case SessionInProgress:
		return "in_progress"
	}
	return fmt.Sprintf("SessionState(%d)", int(s))
}

// SessionSnapshot は進行中セッションのコピー
type SessionSnapshot struct {
	ID        uuid.UUID
	StartedAt time.Time
	Items     []model.LearnedItem
	Pending   []model.LearnedItem
	Completed int
}

type batchEntry struct {
	item     model.LearnedItem
	resolved bool
	// recorded は結果が Scheduler に反映された場合 true (途中で削除された項目は false)
	recorded bool
}

type reviewSession struct {
	id        uuid.UUID
	startedAt time.Time
	batch     []*batchEntry
	byKey     map[model.ItemKey]*batchEntry
	correct   int
}

// SessionOrchestrator は1度に1つの復習セッションを管理します。
type SessionOrchestrator struct {
	mu        sync.Mutex
	scheduler Scheduler
	now       func() time.Time
	current   *reviewSession
}

func NewSessionOrchestrator(scheduler Scheduler, now func() time.Time) *SessionOrchestrator {
	if now == nil {
		now = time.Now
	}
	return &SessionOrchestrator{scheduler: scheduler, now: now}
}

func (o *SessionOrchestrator) State() SessionState {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current == nil {
		return SessionIdle
	}
	return SessionInProgress
}

// StartSession は asOf 時点の復習対象から、語彙系 (word/phrase/grammar) を最大 target 件、
// トピックを最大 topicSlots 件選んでセッションを開始します。
// 対象がなければ空のバッチを返し、Idle のままです。
func (o *SessionOrchestrator) StartSession(ctx context.Context, asOf time.Time, target, topicSlots int) ([]model.LearnedItem, error) {
	logger := middleware.GetLogger(ctx)

	if target < 0 || topicSlots < 0 {
		return nil, fmt.Errorf("%w: session sizes must not be negative (target=%d, topic_slots=%d)", model.ErrInvalidInput, target, topicSlots)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.current != nil {
		return nil, model.ErrSessionInProgress
	}

	var batch []model.LearnedItem
	lexical, topics := 0, 0
	for item := range o.scheduler.DueItems(asOf) {
		if lexical >= target && topics >= topicSlots {
			break
		}
		switch {
		case item.Kind == model.KindTopic && topics < topicSlots:
			topics++
		case item.Kind.IsLexical() && lexical < target:
			lexical++
		default:
			continue
		}
		batch = append(batch, item)
	}

	if len(batch) == 0 {
		due := o.scheduler.CountDue(asOf)
		switch {
		case target == 0 && topicSlots == 0:
			logger.Info("Session slots are all zero, review session not started", "as_of", asOf, "due", due)
		case due > 0:
			logger.Info("Due items do not fit the session slots, review session not started",
				"as_of", asOf, "due", due, "target", target, "topic_slots", topicSlots)
		default:
			logger.Info("No items due, review session not started", "as_of", asOf)
		}
		return []model.LearnedItem{}, nil
	}

	session := &reviewSession{
		id:        uuid.New(),
		startedAt: o.now(),
		batch:     make([]*batchEntry, 0, len(batch)),
		byKey:     make(map[model.ItemKey]*batchEntry, len(batch)),
	}
	for _, item := range batch {
		entry := &batchEntry{item: item}
		session.batch = append(session.batch, entry)
		session.byKey[item.Key()] = entry
	}
	o.current = session

	logger.Info("Review session started",
		"session_id", session.id,
		"lexical", lexical,
		"topics", topics,
	)
	return cloneItems(batch), nil
}

// CompleteItem はバッチ内の未完了の項目に結果を記録します。
// セッションがなければ ErrNotInSession、バッチに未完了で含まれていなければ ErrNotInBatch。
// 項目がストアから消えていた場合はバッチから外して ErrItemNotFound を返します。
func (o *SessionOrchestrator) CompleteItem(ctx context.Context, key model.ItemKey, wasCorrect bool) (model.LearnedItem, error) {
	key = model.NewItemKey(key.Content, key.Kind)

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.current == nil {
		return model.LearnedItem{}, model.ErrNotInSession
	}
	entry, ok := o.current.byKey[key]
	if !ok || entry.resolved {
		return model.LearnedItem{}, fmt.Errorf("%w: %s", model.ErrNotInBatch, key)
	}

	updated, err := o.scheduler.RecordOutcome(ctx, key, wasCorrect)
	if err != nil {
		if errors.Is(err, model.ErrItemNotFound) {
			entry.resolved = true
			middleware.GetLogger(ctx).Warn("Session item no longer exists, dropped from batch",
				"session_id", o.current.id, "key", key.String())
		}
		return model.LearnedItem{}, err
	}

	entry.resolved = true
	entry.recorded = true
	if wasCorrect {
		o.current.correct++
	}
	return updated, nil
}

// EndSession はセッションを終了して Idle に戻ります。未完了の項目はそのまま (次回も復習対象)。
func (o *SessionOrchestrator) EndSession(ctx context.Context) (model.SessionSummary, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.current == nil {
		return model.SessionSummary{}, model.ErrNotInSession
	}
	session := o.current
	o.current = nil

	summary := model.SessionSummary{
		SessionID: session.id,
		StartedAt: session.startedAt,
		EndedAt:   o.now(),
		Total:     len(session.batch),
		Correct:   session.correct,
		Skipped:   []model.ItemKey{},
	}
	for _, entry := range session.batch {
		switch {
		case entry.recorded:
			summary.Completed++
		case !entry.resolved:
			summary.Skipped = append(summary.Skipped, entry.item.Key())
		}
	}

	middleware.GetLogger(ctx).Info("Review session ended",
		"session_id", summary.SessionID,
		"total", summary.Total,
		"completed", summary.Completed,
		"correct", summary.Correct,
		"skipped", len(summary.Skipped),
	)
	return summary, nil
}

// Current は進行中のセッションのコピーを返します。Idle なら false。
func (o *SessionOrchestrator) Current() (SessionSnapshot, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.current == nil {
		return SessionSnapshot{}, false
	}
	snap := SessionSnapshot{
		ID:        o.current.id,
		StartedAt: o.current.startedAt,
		Items:     make([]model.LearnedItem, 0, len(o.current.batch)),
		Pending:   make([]model.LearnedItem, 0, len(o.current.batch)),
	}
	for _, entry := range o.current.batch {
		snap.Items = append(snap.Items, entry.item.Clone())
		if entry.resolved {
			snap.Completed++
		} else {
			snap.Pending = append(snap.Pending, entry.item.Clone())
		}
	}
	return snap, true
}

func cloneItems(items []model.LearnedItem) []model.LearnedItem {
	out := make([]model.LearnedItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
