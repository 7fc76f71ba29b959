package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/hbsfdx221ly/volunteerd/internal/model"
)

// uniqueViolation はPostgreSQLの一意制約違反のSQLSTATEコード。
const uniqueViolation = pq.ErrorCode("23505")

// foreignKeyViolation はPostgreSQLの外部キー制約違反のSQLSTATEコード。
const foreignKeyViolation = pq.ErrorCode("23503")

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

// Create はユーザーを作成する。
// users.phoneの一意制約違反はDUPLICATE_PHONEのAPIErrorに変換して返す。
// 制約違反時は部分的な状態変更は発生しない。
func (r *PostgresUserRepo) Create(ctx context.Context, user *model.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, phone, created_at)
		 VALUES ($1, $2, $3, $4)`,
		user.ID, user.Name, user.Phone, user.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return model.NewDuplicatePhoneError(user.Phone)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, phone, created_at FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Name, &user.Phone, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}

	return user, nil
}

// FindByNameAndPhone は名前と電話番号の完全一致でユーザーを検索する。
// 電話番号単独ではなく両方の一致を要求する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByNameAndPhone(ctx context.Context, name, phone string) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, phone, created_at FROM users WHERE name = $1 AND phone = $2`,
		name, phone,
	).Scan(&user.ID, &user.Name, &user.Phone, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by name and phone: %w", err)
	}

	return user, nil
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
