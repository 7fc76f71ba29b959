// Package model はドメインモデルを定義する。
package model

import "time"

// User はボランティア登録ユーザーを表す。
// 電話番号はシステム全体で一意であり、表示名との組み合わせが
// 本人確認（非認証のディレクトリ照合）に使用される。
type User struct {
	ID        string
	Name      string
	Phone     string
	CreatedAt time.Time
}
