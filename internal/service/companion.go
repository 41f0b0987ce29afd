//go:generate mockery --name CompanionService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"time"

	"go_4_vocab_review/internal/config"
	"go_4_vocab_review/internal/middleware"
	"go_4_vocab_review/internal/model"
	"go_4_vocab_review/internal/repository"
)

// CompanionService は外部 (会話アシスタント、UI) から使う入口です。
type CompanionService interface {
	// ReportContent は学習者が触れた内容を記録します。既存なら例文だけ追加されます。
	ReportContent(ctx context.Context, req *model.ReportContentRequest) (*model.ReportContentResponse, error)
	// RequestReview は既定の構成でセッションを開始し、そのバッチを返します。
	// すでにセッション中なら、その未完了の項目を返します。
	RequestReview(ctx context.Context, now time.Time) ([]*model.ReviewItemResponse, error)
	// SubmitOutcome は復習結果を反映します。セッションの未完了の項目ならセッション経由で記録し、
	// バッチがすべて片付いたらセッションを終了します。
	SubmitOutcome(ctx context.Context, content string, kind model.ItemKind, wasCorrect bool) (*model.ReviewItemResponse, error)
	// MarkReviewed はセッションの未完了の項目をすべて正解扱いにして終了します。
	MarkReviewed(ctx context.Context) (*model.SessionSummary, error)

	StartSession(ctx context.Context, now time.Time, req *model.StartSessionRequest) (*model.SessionResponse, error)
	CurrentSession(ctx context.Context) (*model.SessionResponse, error)
	CompleteSessionItem(ctx context.Context, content string, kind model.ItemKind, wasCorrect bool) (*model.ReviewItemResponse, error)
	EndSession(ctx context.Context) (*model.SessionSummary, error)

	DueItems(ctx context.Context, now time.Time, limit int) (*model.DueItemsResponse, error)
	ListItems(ctx context.Context, filter model.ItemFilter) ([]model.LearnedItem, error)
	GetItem(ctx context.Context, content string, kind model.ItemKind) (*model.LearnedItem, error)
	SetActive(ctx context.Context, content string, kind model.ItemKind, active bool) (*model.LearnedItem, error)
	Stats(ctx context.Context, now time.Time) (*model.StatsResponse, error)

	Save(ctx context.Context) error
	Reset(ctx context.Context) error
}

type companionService struct {
	items     repository.ItemRepository
	scheduler Scheduler
	sessions  *SessionOrchestrator
	cfg       *config.Config
}

func NewCompanionService(items repository.ItemRepository, scheduler Scheduler, sessions *SessionOrchestrator, cfg *config.Config) CompanionService {
	return &companionService{
		items:     items,
		scheduler: scheduler,
		sessions:  sessions,
		cfg:       cfg,
	}
}

func (s *companionService) ReportContent(ctx context.Context, req *model.ReportContentRequest) (*model.ReportContentResponse, error) {
	logger := middleware.GetLogger(ctx).With("content", req.Content, "kind", req.Kind)

	kind, err := model.ParseItemKind(req.Kind)
	if err != nil {
		return nil, model.NewAppError("VALIDATION_ERROR", "種類が正しくありません。", "kind", err)
	}

	item, created, err := s.items.Upsert(ctx, req.Content, kind, req.Meaning, req.Context)
	if err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			return nil, model.NewAppError("VALIDATION_ERROR", "内容が正しくありません。", "content", err)
		}
		logger.Error("Failed to upsert learned item", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習項目の記録に失敗しました。", "", err)
	}

	if created {
		logger.Info("New learned item recorded", "next_review_at", item.NextReviewAt)
	}
	return &model.ReportContentResponse{
		Item:    model.NewReviewItemResponse(item),
		Created: created,
	}, nil
}

func (s *companionService) RequestReview(ctx context.Context, now time.Time) ([]*model.ReviewItemResponse, error) {
	logger := middleware.GetLogger(ctx)

	batch, err := s.sessions.StartSession(ctx, now, s.cfg.Review.LexicalSlots, s.cfg.Review.TopicSlots)
	if errors.Is(err, model.ErrSessionInProgress) {
		snap, ok := s.sessions.Current()
		if !ok {
			// 直前に終了した
			return s.RequestReview(ctx, now)
		}
		logger.Debug("Review session already in progress, returning pending items", "session_id", snap.ID)
		return toReviewResponses(snap.Pending), nil
	}
	if err != nil {
		logger.Error("Failed to start review session", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習セッションの開始に失敗しました。", "", err)
	}
	return toReviewResponses(batch), nil
}

func (s *companionService) SubmitOutcome(ctx context.Context, content string, kind model.ItemKind, wasCorrect bool) (*model.ReviewItemResponse, error) {
	logger := middleware.GetLogger(ctx)
	key := model.NewItemKey(content, kind)

	updated, err := s.sessions.CompleteItem(ctx, key, wasCorrect)
	switch {
	case err == nil:
		s.endSessionIfResolved(ctx)
	case errors.Is(err, model.ErrNotInSession), errors.Is(err, model.ErrNotInBatch):
		// セッション外の項目は Scheduler に直接
		updated, err = s.scheduler.RecordOutcome(ctx, key, wasCorrect)
		if err != nil {
			return nil, outcomeError(err)
		}
	default:
		if errors.Is(err, model.ErrItemNotFound) {
			s.endSessionIfResolved(ctx)
		}
		return nil, outcomeError(err)
	}

	logger.Info("Review outcome submitted", "key", key.String(), "was_correct", wasCorrect)
	return model.NewReviewItemResponse(updated), nil
}

func (s *companionService) MarkReviewed(ctx context.Context) (*model.SessionSummary, error) {
	logger := middleware.GetLogger(ctx)

	snap, ok := s.sessions.Current()
	if !ok {
		return nil, model.NewAppError("NO_SESSION", "進行中の復習セッションがありません。", "", model.ErrNotInSession)
	}
	for _, item := range snap.Pending {
		// 正誤が分からない場合は正解として扱う
		if _, err := s.sessions.CompleteItem(ctx, item.Key(), true); err != nil {
			logger.Warn("Failed to mark session item as reviewed", "key", item.Key().String(), "error", err)
		}
	}
	return s.EndSession(ctx)
}

func (s *companionService) StartSession(ctx context.Context, now time.Time, req *model.StartSessionRequest) (*model.SessionResponse, error) {
	target, topicSlots := s.cfg.Review.LexicalSlots, s.cfg.Review.TopicSlots
	if req != nil && req.Target != nil {
		target = *req.Target
	}
	if req != nil && req.TopicSlots != nil {
		topicSlots = *req.TopicSlots
	}

	if _, err := s.sessions.StartSession(ctx, now, target, topicSlots); err != nil {
		switch {
		case errors.Is(err, model.ErrSessionInProgress):
			return nil, model.NewAppError("SESSION_IN_PROGRESS", "復習セッションはすでに進行中です。", "", err)
		case errors.Is(err, model.ErrInvalidInput):
			return nil, model.NewAppError("VALIDATION_ERROR", "セッションの件数が正しくありません。", "target", err)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習セッションの開始に失敗しました。", "", err)
	}

	snap, ok := s.sessions.Current()
	if !ok {
		// 復習対象がない
		return nil, nil
	}
	return toSessionResponse(snap), nil
}

func (s *companionService) CurrentSession(ctx context.Context) (*model.SessionResponse, error) {
	snap, ok := s.sessions.Current()
	if !ok {
		return nil, model.NewAppError("NO_SESSION", "進行中の復習セッションがありません。", "", model.ErrNotInSession)
	}
	return toSessionResponse(snap), nil
}

func (s *companionService) CompleteSessionItem(ctx context.Context, content string, kind model.ItemKind, wasCorrect bool) (*model.ReviewItemResponse, error) {
	updated, err := s.sessions.CompleteItem(ctx, model.NewItemKey(content, kind), wasCorrect)
	if err != nil {
		return nil, outcomeError(err)
	}
	return model.NewReviewItemResponse(updated), nil
}

func (s *companionService) EndSession(ctx context.Context) (*model.SessionSummary, error) {
	summary, err := s.sessions.EndSession(ctx)
	if err != nil {
		return nil, model.NewAppError("NO_SESSION", "進行中の復習セッションがありません。", "", err)
	}
	return &summary, nil
}

func (s *companionService) DueItems(ctx context.Context, now time.Time, limit int) (*model.DueItemsResponse, error) {
	resp := &model.DueItemsResponse{Items: []*model.ReviewItemResponse{}}
	for item := range s.scheduler.DueItems(now) {
		resp.Total++
		if limit <= 0 || len(resp.Items) < limit {
			resp.Items = append(resp.Items, model.NewReviewItemResponse(item))
		}
	}
	middleware.GetLogger(ctx).Debug("Due items listed", "total", resp.Total, "returned", len(resp.Items))
	return resp, nil
}

func (s *companionService) ListItems(ctx context.Context, filter model.ItemFilter) ([]model.LearnedItem, error) {
	items := make([]model.LearnedItem, 0, s.items.Len())
	for item := range s.items.List(filter.Match) {
		items = append(items, item)
	}
	return items, nil
}

func (s *companionService) GetItem(ctx context.Context, content string, kind model.ItemKind) (*model.LearnedItem, error) {
	item, ok := s.items.Get(model.NewItemKey(content, kind))
	if !ok {
		return nil, model.NewAppError("ITEM_NOT_FOUND", "学習項目が見つかりません。", "content", model.ErrItemNotFound)
	}
	return &item, nil
}

func (s *companionService) SetActive(ctx context.Context, content string, kind model.ItemKind, active bool) (*model.LearnedItem, error) {
	item, err := s.items.SetActive(ctx, model.NewItemKey(content, kind), active)
	if err != nil {
		if errors.Is(err, model.ErrItemNotFound) {
			return nil, model.NewAppError("ITEM_NOT_FOUND", "学習項目が見つかりません。", "content", err)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習項目の更新に失敗しました。", "", err)
	}
	middleware.GetLogger(ctx).Info("Learned item active flag changed", "key", item.Key().String(), "active", active)
	return &item, nil
}

func (s *companionService) Stats(ctx context.Context, now time.Time) (*model.StatsResponse, error) {
	stats := &model.StatsResponse{
		Capacity:  s.items.Capacity(),
		ByMastery: make(map[string]int, len(model.MasteryLevels())),
		ByKind:    make(map[string]int),
	}
	for _, level := range model.MasteryLevels() {
		stats.ByMastery[level.String()] = 0
	}
	for item := range s.items.List(nil) {
		stats.Total++
		if item.Active {
			stats.Active++
		}
		if item.IsDue(now) {
			stats.Due++
		}
		stats.ByMastery[item.Mastery.String()]++
		stats.ByKind[string(item.Kind)]++
	}
	return stats, nil
}

func (s *companionService) Save(ctx context.Context) error {
	if err := s.items.Save(ctx); err != nil {
		return model.NewAppError("PERSISTENCE_ERROR", "学習項目の保存に失敗しました。", "", err)
	}
	return nil
}

// Reset は進行中のセッションを破棄し、全項目を削除して保存します。
func (s *companionService) Reset(ctx context.Context) error {
	if _, err := s.sessions.EndSession(ctx); err == nil {
		middleware.GetLogger(ctx).Info("Review session discarded by reset")
	}
	s.items.ResetAll(ctx)
	return s.Save(ctx)
}

func (s *companionService) endSessionIfResolved(ctx context.Context) {
	snap, ok := s.sessions.Current()
	if !ok || len(snap.Pending) > 0 {
		return
	}
	if _, err := s.sessions.EndSession(ctx); err != nil && !errors.Is(err, model.ErrNotInSession) {
		middleware.GetLogger(ctx).Warn("Failed to end resolved review session", "error", err)
	}
}

func outcomeError(err error) error {
	switch {
	case errors.Is(err, model.ErrItemNotFound):
		return model.NewAppError("ITEM_NOT_FOUND", "学習項目が見つかりません。", "content", err)
	case errors.Is(err, model.ErrNotInSession):
		return model.NewAppError("NO_SESSION", "進行中の復習セッションがありません。", "", err)
	case errors.Is(err, model.ErrNotInBatch):
		return model.NewAppError("NOT_IN_BATCH", "この項目は現在のセッションの未完了の項目ではありません。", "content", err)
	}
	return model.NewAppError("INTERNAL_SERVER_ERROR", "復習結果の記録に失敗しました。", "", err)
}

func toReviewResponses(items []model.LearnedItem) []*model.ReviewItemResponse {
	out := make([]*model.ReviewItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, model.NewReviewItemResponse(item))
	}
	return out
}

func toSessionResponse(snap SessionSnapshot) *model.SessionResponse {
	return &model.SessionResponse{
		SessionID: snap.ID,
		StartedAt: snap.StartedAt,
		Items:     toReviewResponses(snap.Items),
		Pending:   toReviewResponses(snap.Pending),
		Completed: snap.Completed,
	}
}
