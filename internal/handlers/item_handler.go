// internal/handlers/item_handler.go
package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go_4_vocab_review/internal/middleware"
	"go_4_vocab_review/internal/model"
	"go_4_vocab_review/internal/service"
	"go_4_vocab_review/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type ItemHandler struct {
	service service.CompanionService
	now     func() time.Time
}

func NewItemHandler(s service.CompanionService, now func() time.Time) *ItemHandler {
	return &ItemHandler{service: s, now: now}
}

// ReportContent は学習者が触れた内容を記録します。新規なら 201、既存なら 200。
func (h *ItemHandler) ReportContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ReportContentRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(ctx, w, err)
		return
	}

	resp, err := h.service.ReportContent(ctx, &req)
	if err != nil {
		webutil.HandleError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	webutil.RespondWithJSON(ctx, w, status, resp)
}

// ListItems は項目の一覧を返します。?kind= と ?active= で絞り込めます。
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var filter model.ItemFilter
	if k := r.URL.Query().Get("kind"); k != "" {
		kind, err := model.ParseItemKind(k)
		if err != nil {
			webutil.HandleError(ctx, w, model.NewAppError("VALIDATION_ERROR", "種類が正しくありません。", "kind", err))
			return
		}
		filter.Kind = kind
	}
	if a := r.URL.Query().Get("active"); a != "" {
		active, err := strconv.ParseBool(a)
		if err != nil {
			webutil.HandleError(ctx, w, model.NewAppError("VALIDATION_ERROR", "active は true か false で指定してください。", "active", model.ErrInvalidInput))
			return
		}
		filter.Active = &active
	}

	items, err := h.service.ListItems(ctx, filter)
	if err != nil {
		webutil.HandleError(ctx, w, err)
		return
	}
	if items == nil {
		items = []model.LearnedItem{}
	}
	webutil.RespondWithJSON(ctx, w, http.StatusOK, items)
}

func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	content, kind, err := itemKeyParams(r)
	if err != nil {
		webutil.HandleError(ctx, w, err)
		return
	}

	item, err := h.service.GetItem(ctx, content, kind)
	if err != nil {
		webutil.HandleError(ctx, w, err)
		return
	}
	webutil.RespondWithJSON(ctx, w, http.StatusOK, item)
}

// SetActive は項目を復習対象に含めるかどうかを切り替えます。
func (h *ItemHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	content, kind, err := itemKeyParams(r)
	if err != nil {
		webutil.HandleError(ctx, w, err)
		return
	}
	var req model.SetActiveRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(ctx, w, err)
		return
	}

	item, err := h.service.SetActive(ctx, content, kind, *req.Active)
	if err != nil {
		webutil.HandleError(ctx, w, err)
		return
	}
	webutil.RespondWithJSON(ctx, w, http.StatusOK, item)
}

func (h *ItemHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.service.Stats(ctx, h.now())
	if err != nil {
		webutil.HandleError(ctx, w, err)
		return
	}
	webutil.RespondWithJSON(ctx, w, http.StatusOK, stats)
}

// itemKeyParams はパスの {kind} と {content} を取り出します。content は URL エンコードされていてもよい。
// chi は RawPath があるとき (%2F などを含むとき) だけエンコードされたままの値を返すので、
// そのときに限り1回デコードする。
func itemKeyParams(r *http.Request) (string, model.ItemKind, error) {
	kind, err := model.ParseItemKind(chi.URLParam(r, "kind"))
	if err != nil {
		return "", "", model.NewAppError("VALIDATION_ERROR", "種類が正しくありません。", "kind", err)
	}
	content := chi.URLParam(r, "content")
	if r.URL.RawPath != "" {
		content, err = url.PathUnescape(content)
	}
	if err != nil || strings.TrimSpace(content) == "" {
		middleware.GetLogger(r.Context()).Warn("Invalid content path parameter", "raw", chi.URLParam(r, "content"))
		return "", "", model.NewAppError("VALIDATION_ERROR", "内容が正しくありません。", "content", model.ErrInvalidInput)
	}
	return content, kind, nil
}
