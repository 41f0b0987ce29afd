// internal/service/session_test.go
package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"testing"
	"time"

	"go_4_vocab_review/internal/middleware"
	"go_4_vocab_review/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrchestrator(f *fixture) *SessionOrchestrator {
	return NewSessionOrchestrator(f.scheduler, f.clock.Now)
}

// addDue は asOf までに復習対象になる項目を順番に作ります (先に作ったものほど先に来る)。
func addDue(t *testing.T, f *fixture, kind model.ItemKind, names ...string) {
	t.Helper()
	for _, name := range names {
		f.add(t, name, kind, nil)
		f.clock.Advance(time.Minute)
	}
}

func TestSessionOrchestrator_StartSession(t *testing.T) {
	tests := []struct {
		name       string
		words      int
		topics     int
		target     int
		topicSlots int
		wantLen    int
		wantTopics int
		wantState  SessionState
		wantErr    error
	}{
		{name: "正常系: 既定の構成 5+1", words: 7, topics: 2, target: 5, topicSlots: 1, wantLen: 6, wantTopics: 1, wantState: SessionInProgress},
		{name: "正常系: 対象が少ない", words: 2, topics: 0, target: 5, topicSlots: 1, wantLen: 2, wantTopics: 0, wantState: SessionInProgress},
		{name: "正常系: トピックのみ", words: 3, topics: 2, target: 0, topicSlots: 2, wantLen: 2, wantTopics: 2, wantState: SessionInProgress},
		{name: "境界: 対象なしなら Idle のまま", words: 0, topics: 0, target: 5, topicSlots: 1, wantLen: 0, wantState: SessionIdle},
		{name: "境界: 枠が0なら Idle のまま", words: 3, topics: 1, target: 0, topicSlots: 0, wantLen: 0, wantState: SessionIdle},
		{name: "異常系: 負の件数", words: 1, target: -1, topicSlots: 1, wantErr: model.ErrInvalidInput, wantState: SessionIdle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			for i := range tt.words {
				addDue(t, f, model.KindWord, fmt.Sprintf("word%d", i))
			}
			for i := range tt.topics {
				addDue(t, f, model.KindTopic, fmt.Sprintf("topic%d", i))
			}
			o := newOrchestrator(f)
			asOf := f.clock.Now().Add(2 * time.Hour)

			batch, err := o.StartSession(f.ctx, asOf, tt.target, tt.topicSlots)

			assert.Equal(t, tt.wantState, o.State())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, batch)
			assert.Len(t, batch, tt.wantLen)
			topics := 0
			for _, item := range batch {
				if item.Kind == model.KindTopic {
					topics++
				}
			}
			assert.Equal(t, tt.wantTopics, topics)
		})
	}
}

func TestSessionOrchestrator_EmptyBatchLogReason(t *testing.T) {
	tests := []struct {
		name       string
		words      int
		topics     int
		target     int
		topicSlots int
		wantMsg    string
		wantDue    float64
	}{
		{name: "境界: 枠が0", words: 3, topics: 1, target: 0, topicSlots: 0, wantMsg: "Session slots are all zero, review session not started", wantDue: 4},
		{name: "境界: 対象はあるが枠に合わない", words: 0, topics: 2, target: 5, topicSlots: 0, wantMsg: "Due items do not fit the session slots, review session not started", wantDue: 2},
		{name: "境界: 対象なし", words: 0, topics: 0, target: 5, topicSlots: 1, wantMsg: "No items due, review session not started"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			for i := range tt.words {
				addDue(t, f, model.KindWord, fmt.Sprintf("word%d", i))
			}
			for i := range tt.topics {
				addDue(t, f, model.KindTopic, fmt.Sprintf("topic%d", i))
			}
			var buf bytes.Buffer
			ctx := middleware.WithLogger(f.ctx, slog.New(slog.NewJSONHandler(&buf, nil)))
			o := newOrchestrator(f)

			batch, err := o.StartSession(ctx, f.clock.Now().Add(2*time.Hour), tt.target, tt.topicSlots)
			require.NoError(t, err)
			assert.Empty(t, batch)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantMsg, entry["msg"])
			if tt.wantDue > 0 {
				assert.Equal(t, tt.wantDue, entry["due"])
			}
		})
	}
}

func TestSessionOrchestrator_BatchFollowsDueOrder(t *testing.T) {
	f := newFixture(t)
	addDue(t, f, model.KindWord, "w1", "w2")
	addDue(t, f, model.KindTopic, "t1")
	addDue(t, f, model.KindPhrase, "p1")
	addDue(t, f, model.KindWord, "w3")
	o := newOrchestrator(f)
	asOf := f.clock.Now().Add(2 * time.Hour)

	batch, err := o.StartSession(f.ctx, asOf, 3, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"w1", "w2", "t1", "p1"}, contents(batch))

	snap, ok := o.Current()
	require.True(t, ok)
	assert.NotEqual(t, uuid.Nil, snap.ID)
	assert.Equal(t, contents(batch), contents(snap.Pending))
	assert.Equal(t, 0, snap.Completed)
}

func TestSessionOrchestrator_StartWhileInProgress(t *testing.T) {
	f := newFixture(t)
	addDue(t, f, model.KindWord, "a", "b")
	o := newOrchestrator(f)
	asOf := f.clock.Now().Add(2 * time.Hour)

	_, err := o.StartSession(f.ctx, asOf, 1, 0)
	require.NoError(t, err)
	before, _ := o.Current()

	_, err = o.StartSession(f.ctx, asOf, 5, 1)
	assert.ErrorIs(t, err, model.ErrSessionInProgress)

	after, ok := o.Current()
	require.True(t, ok)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, contents(before.Items), contents(after.Items))
}

func TestSessionOrchestrator_IdleOperations(t *testing.T) {
	f := newFixture(t)
	addDue(t, f, model.KindWord, "idle")
	o := newOrchestrator(f)

	_, err := o.CompleteItem(f.ctx, model.NewItemKey("idle", model.KindWord), true)
	assert.ErrorIs(t, err, model.ErrNotInSession)

	_, err = o.EndSession(f.ctx)
	assert.ErrorIs(t, err, model.ErrNotInSession)

	_, ok := o.Current()
	assert.False(t, ok)
	assert.Equal(t, SessionIdle, o.State())

	// Idle での失敗は項目を変更しない
	item, _ := f.store.Get(model.NewItemKey("idle", model.KindWord))
	assert.Equal(t, 0, item.ReviewCount)
}

func TestSessionOrchestrator_CompleteAndEnd(t *testing.T) {
	f := newFixture(t)
	addDue(t, f, model.KindWord, "alpha", "beta", "gamma", "outside")
	o := newOrchestrator(f)
	asOf := f.clock.Now().Add(2 * time.Hour)
	f.clock.Advance(3 * time.Hour)

	batch, err := o.StartSession(f.ctx, asOf, 3, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "beta", "gamma"}, contents(batch))

	// 正常系: 未完了の項目を完了 (キーの大文字小文字は問わない)
	updated, err := o.CompleteItem(f.ctx, model.NewItemKey("ALPHA", model.KindWord), true)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.ReviewCount)

	_, err = o.CompleteItem(f.ctx, model.NewItemKey("beta", model.KindWord), false)
	require.NoError(t, err)

	// 異常系: 完了済み / バッチ外
	_, err = o.CompleteItem(f.ctx, model.NewItemKey("alpha", model.KindWord), true)
	assert.ErrorIs(t, err, model.ErrNotInBatch)
	_, err = o.CompleteItem(f.ctx, model.NewItemKey("outside", model.KindWord), true)
	assert.ErrorIs(t, err, model.ErrNotInBatch)

	snap, ok := o.Current()
	require.True(t, ok)
	assert.Equal(t, 2, snap.Completed)
	assert.Equal(t, []string{"gamma"}, contents(snap.Pending))

	summary, err := o.EndSession(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, summary.SessionID)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Completed)
	assert.Equal(t, 1, summary.Correct)
	assert.Equal(t, []model.ItemKey{model.NewItemKey("gamma", model.KindWord)}, summary.Skipped)
	assert.Equal(t, SessionIdle, o.State())

	// 未完了の項目はそのまま、次回も対象
	gamma, _ := f.store.Get(model.NewItemKey("gamma", model.KindWord))
	assert.Equal(t, 0, gamma.ReviewCount)
	due := contents(slices.Collect(f.scheduler.DueItems(f.clock.Now())))
	assert.Contains(t, due, "gamma")
	assert.NotContains(t, due, "alpha")
}

func TestSessionOrchestrator_ItemRemovedDuringSession(t *testing.T) {
	f := newFixture(t)
	addDue(t, f, model.KindWord, "vanish", "stay")
	o := newOrchestrator(f)

	_, err := o.StartSession(f.ctx, f.clock.Now().Add(2*time.Hour), 5, 0)
	require.NoError(t, err)

	f.store.ResetAll(f.ctx)

	_, err = o.CompleteItem(f.ctx, model.NewItemKey("vanish", model.KindWord), true)
	assert.ErrorIs(t, err, model.ErrItemNotFound)

	snap, ok := o.Current()
	require.True(t, ok)
	assert.Equal(t, []string{"stay"}, contents(snap.Pending))

	summary, err := o.EndSession(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Completed)
	assert.Equal(t, []model.ItemKey{model.NewItemKey("stay", model.KindWord)}, summary.Skipped)
}

func TestSessionState_String(t *testing.T) {
	assert.Equal(t, "idle", SessionIdle.String())
	assert.Equal(t, "in_progress", SessionInProgress.String())
	assert.Equal(t, "SessionState(7)", SessionState(7).String())
}
