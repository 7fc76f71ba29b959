// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: registration, attendance, validation, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeDuplicatePhone   = "DUPLICATE_PHONE"
	ErrCodeUserNotFound     = "USER_NOT_FOUND"
	ErrCodeIdentityNotFound = "IDENTITY_NOT_FOUND"
	ErrCodeNotAMember       = "NOT_A_MEMBER"
	ErrCodeEventNotFound    = "EVENT_NOT_FOUND"
	ErrCodeInvalidReference = "INVALID_REFERENCE"
	ErrCodeInvalidDuration  = "INVALID_DURATION"
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
)

// NewDuplicatePhoneError は電話番号の重複登録エラーを生成する。
func NewDuplicatePhoneError(phone string) *APIError {
	return &APIError{
		Code:     ErrCodeDuplicatePhone,
		Message:  fmt.Sprintf("この電話番号は既に登録されています: %s", phone),
		Category: "registration",
		Action:   "登録済みの名前と電話番号でそのままログインしてください。",
	}
}

// NewUserNotFoundError はログイン照合でユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "registration",
		Action:   "名前と電話番号を確認するか、先に登録を行ってください。",
	}
}

// NewIdentityNotFoundError はサインイン時に申告された身元が未登録の場合のエラーを生成する。
func NewIdentityNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeIdentityNotFound,
		Message:  "該当するユーザーが見つかりません。",
		Category: "attendance",
		Action:   "先にユーザー登録を行ってください。",
	}
}

// NewNotAMemberError は申告ユーザーがイベントメンバーでない場合のエラーを生成する。
func NewNotAMemberError() *APIError {
	return &APIError{
		Code:     ErrCodeNotAMember,
		Message:  "このユーザーはイベントのメンバーではありません。",
		Category: "attendance",
		Action:   "先にメンバーとして追加してもらってください。",
	}
}

// NewEventNotFoundError はイベント未検出エラーを生成する。
func NewEventNotFoundError(eventID string) *APIError {
	return &APIError{
		Code:     ErrCodeEventNotFound,
		Message:  fmt.Sprintf("指定されたイベントが見つかりません: %s", eventID),
		Category: "validation",
		Action:   "イベントIDを確認してください。",
	}
}

// NewInvalidReferenceError は存在しないユーザー・イベントへの参照エラーを生成する。
// メンバー追加時に外部キー制約違反が発生した場合に使用する。
func NewInvalidReferenceError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidReference,
		Message:  "指定されたユーザーまたはイベントが存在しません。",
		Category: "validation",
		Action:   "ユーザーIDとイベントIDを確認してください。",
	}
}

// NewInvalidDurationError は負の参加時間が申告された場合のエラーを生成する。
func NewInvalidDurationError(duration int) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidDuration,
		Message:  fmt.Sprintf("無効な参加時間です: %d", duration),
		Category: "validation",
		Action:   "参加時間には0以上の値を指定してください。",
	}
}

// NewInvalidRequestError はリクエストボディの解析・検証失敗エラーを生成する。
func NewInvalidRequestError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  fmt.Sprintf("無効なリクエストです: %s", reason),
		Category: "validation",
		Action:   "リクエスト内容を確認してください。",
	}
}
