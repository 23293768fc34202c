// Package model は、セレクタ入力の値オブジェクトとエラー型を提供します。
package model

import "errors"

// センチネルエラー - 設定不備の分類に使用
var (
	ErrNoDefaultBucket = errors.New("palette has no default bucket")
	ErrEmptyPalette    = errors.New("palette is empty")
	ErrEmptyDays       = errors.New("day sequence is empty")
)

// ConfigurationError は不正な構成（デフォルトバケットなしのパレット、空の日付列など）を表す型
type ConfigurationError struct {
	Reason error
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason.Error()
}

// Unwrap は原因となったセンチネルエラーを返します。
func (e *ConfigurationError) Unwrap() error {
	return e.Reason
}

// NewConfigurationError はConfigurationErrorを生成するヘルパー関数
func NewConfigurationError(reason error) error {
	return &ConfigurationError{Reason: reason}
}

// ValidationError はバリデーションエラーを表す型
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError はValidationErrorを生成するヘルパー関数
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
