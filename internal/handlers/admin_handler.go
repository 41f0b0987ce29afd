package handlers

import (
	"net/http"

	"go_4_vocab_review/internal/service"
	"go_4_vocab_review/internal/webutil"
)

// AdminHandler は保存と全削除の管理用エンドポイントです。
type AdminHandler struct {
	service service.CompanionService
}

func NewAdminHandler(s service.CompanionService) *AdminHandler {
	return &AdminHandler{service: s}
}

func (h *AdminHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.Save(ctx); err != nil {
		webutil.HandleError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.Reset(ctx); err != nil {
		webutil.HandleError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
