// internal/handlers/review_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"go_4_vocab_review/internal/model"
	"go_4_vocab_review/internal/service"
	"go_4_vocab_review/internal/webutil"
)

const defaultDueLimit = 50

type ReviewHandler struct {
	service service.CompanionService
	now     func() time.Time
}

func NewReviewHandler(s service.CompanionService, now func() time.Time) *ReviewHandler {
	return &ReviewHandler{service: s, now: now}
}

// RequestReview は復習バッチを返します (必要ならセッションを開始)。
func (h *ReviewHandler) RequestReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.service.RequestReview(ctx, h.now())
	if err != nil {
		webutil.HandleError(ctx, w, err)
		return
	}
	if items == nil {
		items = []*model.ReviewItemResponse{}
	}
	webutil.RespondWithJSON(ctx, w, http.StatusOK, items)
}

func (h *ReviewHandler) SubmitOutcome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.SubmitOutcomeRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(ctx, w, err)
		return
	}
	kind, err := model.ParseItemKind(req.Kind)
	if err != nil {
		webutil.HandleError(ctx, w, model.NewAppError("VALIDATION_ERROR", "種類が正しくありません。", "kind", err))
		return
	}

	item, err := h.service.SubmitOutcome(ctx, req.Content, kind, *req.WasCorrect)
	if err != nil {
		webutil.HandleError(ctx, w, err)
		return
	}
	webutil.RespondWithJSON(ctx, w, http.StatusOK, item)
}

// DueItems はセッションを開始せずに復習対象を返します。?limit= (既定 50)。
func (h *ReviewHandler) DueItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultDueLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			webutil.HandleError(ctx, w, model.NewAppError("VALIDATION_ERROR", "limit は0以上の整数で指定してください。", "limit", model.ErrInvalidInput))
			return
		}
		limit = n
	}

	resp, err := h.service.DueItems(ctx, h.now(), limit)
	if err != nil {
		webutil.HandleError(ctx, w, err)
		return
	}
	webutil.RespondWithJSON(ctx, w, http.StatusOK, resp)
}
