package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/hbsfdx221ly/volunteerd/internal/model"
)

// PostgresEventRepo はPostgreSQLを使用したイベントリポジトリ。
type PostgresEventRepo struct {
	db *sql.DB
}

// NewPostgresEventRepo はPostgresEventRepoを生成する。
func NewPostgresEventRepo(db *sql.DB) *PostgresEventRepo {
	return &PostgresEventRepo{db: db}
}

// FindByID は指定IDのイベントを取得する。見つからない場合はnilを返す。
func (r *PostgresEventRepo) FindByID(ctx context.Context, id string) (*model.Event, error) {
	event := &model.Event{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM events WHERE id = $1`,
		id,
	).Scan(&event.ID, &event.Name, &event.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("イベントの取得に失敗しました: %w", err)
	}

	return event, nil
}

// CreateWithCreator はイベントと作成者のメンバーシップを同一トランザクションで作成する。
// どちらかの挿入が失敗した場合は両方とも取り消され、メンバーのいないイベントは残らない。
func (r *PostgresEventRepo) CreateWithCreator(ctx context.Context, event *model.Event, membership *model.Membership) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// イベントを作成
	_, err = tx.ExecContext(ctx,
		`INSERT INTO events (id, name, created_at)
		 VALUES ($1, $2, $3)`,
		event.ID, event.Name, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	// 作成者を最初のメンバーとして登録
	_, err = tx.ExecContext(ctx,
		`INSERT INTO event_members (id, event_id, user_id, added_at)
		 VALUES ($1, $2, $3, $4)`,
		membership.ID, membership.EventID, membership.UserID, membership.AddedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return model.NewInvalidReferenceError()
		}
		return fmt.Errorf("failed to insert creator membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// compile-time interface check
var _ EventRepository = (*PostgresEventRepo)(nil)
