package handlers

import (
	"net/http"
	"time"

	"go_4_vocab_review/internal/model"
	"go_4_vocab_review/internal/service"
	"go_4_vocab_review/internal/webutil"
)

type SessionHandler struct {
	service service.CompanionService
	now     func() time.Time
}

func NewSessionHandler(s service.CompanionService, now func() time.Time) *SessionHandler {
	return &SessionHandler{service: s, now: now}
}

// StartSession はセッションを開始します。復習対象がなければ 204。
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.StartSessionRequest
	if r.ContentLength != 0 {
		if err := webutil.DecodeJSONBody(r, &req); err != nil {
			webutil.HandleError(ctx, w, err)
			return
		}
	}

	resp, err := h.service.StartSession(ctx, h.now(), &req)
	if err != nil {
		webutil.HandleError(ctx, w, err)
		return
	}
	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	webutil.RespondWithJSON(ctx, w, http.StatusCreated, resp)
}

func (h *SessionHandler) CurrentSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := h.service.CurrentSession(ctx)
	if err != nil {
		webutil.HandleError(ctx, w, err)
		return
	}
	webutil.RespondWithJSON(ctx, w, http.StatusOK, resp)
}

func (h *SessionHandler) CompleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	content, kind, err := itemKeyParams(r)
	if err != nil {
		webutil.HandleError(ctx, w, err)
		return
	}
	var req model.CompleteItemRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(ctx, w, err)
		return
	}

	item, err := h.service.CompleteSessionItem(ctx, content, kind, *req.WasCorrect)
	if err != nil {
		webutil.HandleError(ctx, w, err)
		return
	}
	webutil.RespondWithJSON(ctx, w, http.StatusOK, item)
}

func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := h.service.EndSession(ctx)
	if err != nil {
		webutil.HandleError(ctx, w, err)
		return
	}
	webutil.RespondWithJSON(ctx, w, http.StatusOK, summary)
}

// MarkReviewed は未完了の項目を正解扱いにしてセッションを終了します。
func (h *SessionHandler) MarkReviewed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := h.service.MarkReviewed(ctx)
	if err != nil {
		webutil.HandleError(ctx, w, err)
		return
	}
	webutil.RespondWithJSON(ctx, w, http.StatusOK, summary)
}
