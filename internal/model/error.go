// internal/model/error.go
package model

import (
	"errors"
	"fmt"
)

// アプリケーション固有のエラー
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInternalServer    = errors.New("internal server error")
	ErrItemNotFound      = errors.New("learned item not found")
	ErrPersistence       = errors.New("persistence failure")
	ErrNotInSession      = errors.New("no review session in progress")
	ErrSessionInProgress = errors.New("review session already in progress")
	ErrNotInBatch        = errors.New("item is not pending in the current session")
	// ErrStoreNotLoaded は読み込みに失敗したストアで Save しようとしたときのエラー。
	ErrStoreNotLoaded = errors.New("persisted items were not loaded; refusing to overwrite them")
	// ErrCapacityInvariant は到達しないはずのエラー。発生した場合は panic で通知する。
	ErrCapacityInvariant = errors.New("store capacity invariant violated")
)

// PersistenceError は Save / Load の失敗を表します。errors.Is(err, ErrPersistence) で判定できます。
type PersistenceError struct {
	Op  string // "load" or "save"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPersistence, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

// ErrorDetail はAPIエラーレスポンスの中身
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError はクライアント向けの情報と元のエラーをまとめます。
type AppError struct {
	Detail ErrorDetail
	Err    error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		Err:    err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Detail.Code, e.Detail.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Detail.Code, e.Detail.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
