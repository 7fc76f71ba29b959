package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/hbsfdx221ly/volunteerd/internal/model"
)

// PostgresMembershipRepo はPostgreSQLを使用したイベントメンバーリポジトリ。
type PostgresMembershipRepo struct {
	db *sql.DB
}

// NewPostgresMembershipRepo はPostgresMembershipRepoを生成する。
func NewPostgresMembershipRepo(db *sql.DB) *PostgresMembershipRepo {
	return &PostgresMembershipRepo{db: db}
}

// Create はメンバーシップを無条件に作成する。
// 同一(event, user)の重複チェックは行わない。
// 外部キー制約違反はINVALID_REFERENCEのAPIErrorに変換して返す。
func (r *PostgresMembershipRepo) Create(ctx context.Context, membership *model.Membership) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_members (id, event_id, user_id, added_at)
		 VALUES ($1, $2, $3, $4)`,
		membership.ID, membership.EventID, membership.UserID, membership.AddedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return model.NewInvalidReferenceError()
		}
		return fmt.Errorf("メンバーシップの作成に失敗しました: %w", err)
	}

	return nil
}

// FindByEventAndUser はイベントIDとユーザーIDでメンバーシップを検索する。見つからない場合はnilを返す。
func (r *PostgresMembershipRepo) FindByEventAndUser(ctx context.Context, eventID, userID string) (*model.Membership, error) {
	m := &model.Membership{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, event_id, user_id, added_at
		 FROM event_members WHERE event_id = $1 AND user_id = $2
		 LIMIT 1`,
		eventID, userID,
	).Scan(&m.ID, &m.EventID, &m.UserID, &m.AddedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("メンバーシップの検索に失敗しました: %w", err)
	}

	return m, nil
}

// ListMembersByEvent はイベントのメンバー一覧をユーザー情報とJOINして返す。
func (r *PostgresMembershipRepo) ListMembersByEvent(ctx context.Context, eventID string) ([]model.Member, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.name, u.phone, em.added_at
		 FROM event_members em
		 JOIN users u ON em.user_id = u.id
		 WHERE em.event_id = $1
		 ORDER BY em.added_at ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("メンバー一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.UserID, &m.Name, &m.Phone, &m.AddedAt); err != nil {
			return nil, fmt.Errorf("メンバー行の読み取りに失敗しました: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("メンバー一覧の走査に失敗しました: %w", err)
	}
	return members, nil
}

// compile-time interface check
var _ MembershipRepository = (*PostgresMembershipRepo)(nil)
