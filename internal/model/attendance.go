package model

import "time"

// SignIn はイベントへのサインイン記録を表す。
// 追記専用で、同一ユーザー・同一イベントの重複サインインも全件保持する。
type SignIn struct {
	ID         string
	EventID    string
	UserID     string
	SignInTime time.Time
}

// SignInDuration は参加時間の記録を表す。
// Durationは呼び出し側が申告した値をそのまま保持し、単位の解釈は行わない。
// サインイン記録とは独立した追記専用のエントリ。
type SignInDuration struct {
	ID       string
	EventID  string
	UserID   string
	Duration int
	EndTime  time.Time
}
