package model

import "time"

// Event はボランティア活動（イベント）を表す。
// 活動名に一意制約はない。
type Event struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Membership はユーザーが指定イベントにサインインできる権利を表す。
// 行が存在することが出席操作の前提条件となる。
type Membership struct {
	ID      string
	EventID string
	UserID  string
	AddedAt time.Time
}

// Member はイベントメンバー一覧用に、メンバーシップとユーザー情報を結合した行。
type Member struct {
	UserID  string
	Name    string
	Phone   string
	AddedAt time.Time
}
