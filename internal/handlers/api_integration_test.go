// api_integration_test.go
package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go_4_vocab_review/internal/model"
	"go_4_vocab_review/internal/repository"
	"go_4_vocab_review/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 実際の Store / Scheduler / SessionOrchestrator をメモリ上の Backend で組み立てて API を通しで叩く
func TestReviewAPI_Integration(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()

	// 期限切れの項目を Backend に置いてから読み込む
	past := time.Now().UTC().Add(-48 * time.Hour)
	backend := repository.NewMemoryBackend()
	require.NoError(t, backend.Save(ctx, []model.LearnedItem{
		{Content: "apple", Kind: model.KindWord, LearnedAt: past, NextReviewAt: past, Mastery: model.MasteryNew, Difficulty: 0.5, Active: true, ContextExamples: []string{"an apple a day"}},
		{Content: "travel", Kind: model.KindTopic, LearnedAt: past.Add(time.Minute), NextReviewAt: past.Add(time.Minute), Mastery: model.MasteryNew, Difficulty: 0.5, Active: true},
	}))

	store := repository.NewItemStore(backend, cfg.Store.Capacity)
	require.NoError(t, store.Load(ctx))
	scheduler := service.NewScheduler(store, time.Now)
	sessions := service.NewSessionOrchestrator(scheduler, time.Now)
	svc := service.NewCompanionService(store, scheduler, sessions, cfg)
	server := newTestServer(t, svc, nil)

	// 新しく触れた単語はまだ復習対象ではない
	body := sendRequest(t, server,
		httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/items", Body: model.ReportContentRequest{Content: "Serendipity", Kind: "word", Context: "pure serendipity"}},
		httpResponseExpectations{ExpectedCode: http.StatusCreated},
	)
	created := decodeBody[model.ReportContentResponse](t, body)
	assert.True(t, created.Created)
	assert.Equal(t, "new", created.Item.Mastery)

	// 2回目は既存扱い
	sendRequest(t, server,
		httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/items", Body: model.ReportContentRequest{Content: "serendipity", Kind: "word", Context: "again"}},
		httpResponseExpectations{ExpectedCode: http.StatusOK},
	)

	body = sendRequest(t, server,
		httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/reviews/request"},
		httpResponseExpectations{ExpectedCode: http.StatusOK},
	)
	batch := decodeBody[[]*model.ReviewItemResponse](t, body)
	require.Len(t, batch, 2)
	assert.Equal(t, "apple", batch[0].Content)
	assert.Equal(t, "travel", batch[1].Content)

	// セッション中に新しいセッションは開始できない
	sendRequest(t, server,
		httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/sessions"},
		httpResponseExpectations{ExpectedCode: http.StatusConflict, ExpectedErrorCode: "SESSION_IN_PROGRESS"},
	)

	body = sendRequest(t, server,
		httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/reviews/outcome", Body: model.SubmitOutcomeRequest{Content: "APPLE", Kind: "word", WasCorrect: boolPtr(true)}},
		httpResponseExpectations{ExpectedCode: http.StatusOK},
	)
	apple := decodeBody[model.ReviewItemResponse](t, body)
	assert.Equal(t, 1, apple.ReviewCount)
	assert.True(t, apple.NextReviewAt.After(time.Now()))

	body = sendRequest(t, server,
		httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/sessions/current"},
		httpResponseExpectations{ExpectedCode: http.StatusOK},
	)
	current := decodeBody[model.SessionResponse](t, body)
	assert.Len(t, current.Items, 2)
	require.Len(t, current.Pending, 1)
	assert.Equal(t, "travel", current.Pending[0].Content)
	assert.Equal(t, 1, current.Completed)

	sendRequest(t, server,
		httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/sessions/current/items/topic/travel", Body: model.CompleteItemRequest{WasCorrect: boolPtr(false)}},
		httpResponseExpectations{ExpectedCode: http.StatusOK},
	)

	// 同じ項目をもう一度完了させることはできない
	sendRequest(t, server,
		httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/sessions/current/items/topic/travel", Body: model.CompleteItemRequest{WasCorrect: boolPtr(true)}},
		httpResponseExpectations{ExpectedCode: http.StatusConflict, ExpectedErrorCode: "NOT_IN_BATCH"},
	)

	body = sendRequest(t, server,
		httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/sessions/current/end"},
		httpResponseExpectations{ExpectedCode: http.StatusOK},
	)
	summary := decodeBody[model.SessionSummary](t, body)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Completed)
	assert.Equal(t, 1, summary.Correct)
	assert.Empty(t, summary.Skipped)

	sendRequest(t, server,
		httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/sessions/current"},
		httpResponseExpectations{ExpectedCode: http.StatusConflict, ExpectedErrorCode: "NO_SESSION"},
	)

	body = sendRequest(t, server,
		httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/stats"},
		httpResponseExpectations{ExpectedCode: http.StatusOK},
	)
	stats := decodeBody[model.StatsResponse](t, body)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 0, stats.Due)

	sendRequest(t, server,
		httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/admin/save"},
		httpResponseExpectations{ExpectedCode: http.StatusNoContent},
	)
	saved, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, saved, 3)

	sendRequest(t, server,
		httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/admin/reset"},
		httpResponseExpectations{ExpectedCode: http.StatusNoContent},
	)
	saved, err = backend.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, saved)

	// 何もなければ 204
	sendRequest(t, server,
		httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/sessions"},
		httpResponseExpectations{ExpectedCode: http.StatusNoContent},
	)
}
