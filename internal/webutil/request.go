package webutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go_4_vocab_review/internal/middleware"
	"go_4_vocab_review/internal/model"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

// DecodeJSONBody はリクエストボディをデコードし、validate タグで検証します。
// 失敗した場合は ErrInvalidInput を包んだ AppError を返します。
func DecodeJSONBody(r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return model.NewAppError("INVALID_REQUEST", "リクエストボディが空です。", "", model.ErrInvalidInput)
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		middleware.GetLogger(r.Context()).Warn("Error decoding JSON body", "error", err)
		return model.NewAppError("INVALID_REQUEST", "リクエストの形式が正しくありません。", "", fmt.Errorf("%w: %v", model.ErrInvalidInput, err))
	}
	return ValidateStruct(r.Context(), dst)
}

// ValidateStruct は構造体の validate タグを検証します。
func ValidateStruct(ctx context.Context, v any) error {
	err := Validator.StructCtx(ctx, v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return NewValidationErrorResponse(verrs)
	}
	return model.NewAppError("INVALID_REQUEST", "リクエストの形式が正しくありません。", "", fmt.Errorf("%w: %v", model.ErrInvalidInput, err))
}
