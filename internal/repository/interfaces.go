// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hbsfdx221ly/volunteerd/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// Create はユーザーを作成する。
	// 電話番号が登録済みの場合はDUPLICATE_PHONEのAPIErrorを返し、状態を変更しない。
	Create(ctx context.Context, user *model.User) error

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByNameAndPhone は名前と電話番号の完全一致でユーザーを検索する。
	// 見つからない場合はnilを返す。
	FindByNameAndPhone(ctx context.Context, name, phone string) (*model.User, error)
}

// EventRepository はイベントデータの永続化インターフェース。
type EventRepository interface {
	// FindByID は指定IDのイベントを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Event, error)

	// CreateWithCreator はイベントと作成者のメンバーシップを同一トランザクションで作成する。
	CreateWithCreator(ctx context.Context, event *model.Event, membership *model.Membership) error
}

// MembershipRepository はイベントメンバーデータの永続化インターフェース。
type MembershipRepository interface {
	// Create はメンバーシップを無条件に作成する。重複チェックは行わない。
	// 存在しないユーザー・イベントを参照した場合はINVALID_REFERENCEのAPIErrorを返す。
	Create(ctx context.Context, membership *model.Membership) error

	// FindByEventAndUser はイベントIDとユーザーIDでメンバーシップを検索する。
	// 見つからない場合はnilを返す。
	FindByEventAndUser(ctx context.Context, eventID, userID string) (*model.Membership, error)

	// ListMembersByEvent はイベントのメンバー一覧をユーザー情報とJOINして返す。
	// added_at昇順で返す（表示順のみで意味的な順序ではない）。
	ListMembersByEvent(ctx context.Context, eventID string) ([]model.Member, error)
}

// AttendanceRepository はサインイン・参加時間記録の永続化インターフェース。
// どちらの記録も追記専用で、更新・削除は行わない。
type AttendanceRepository interface {
	// CreateSignIn はサインイン記録を追記する。
	CreateSignIn(ctx context.Context, signIn *model.SignIn) error

	// ListSignInsByEvent はイベントのサインイン記録をsignin_time昇順で返す。
	ListSignInsByEvent(ctx context.Context, eventID string) ([]*model.SignIn, error)

	// CreateDuration は参加時間記録を追記する。
	CreateDuration(ctx context.Context, duration *model.SignInDuration) error

	// ListDurationsByEvent はイベントの参加時間記録をend_time昇順で返す。
	ListDurationsByEvent(ctx context.Context, eventID string) ([]*model.SignInDuration, error)
}
