package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hbsfdx221ly/volunteerd/internal/model"
)

// PostgresAttendanceRepo はPostgreSQLを使用した出席記録リポジトリ。
// サインイン記録と参加時間記録はどちらも追記専用で扱う。
type PostgresAttendanceRepo struct {
	db *sql.DB
}

// NewPostgresAttendanceRepo はPostgresAttendanceRepoを生成する。
func NewPostgresAttendanceRepo(db *sql.DB) *PostgresAttendanceRepo {
	return &PostgresAttendanceRepo{db: db}
}

// CreateSignIn はサインイン記録を追記する。
// 同一ユーザー・同一イベントの重複は排除せず、呼び出しごとに新しい行を作成する。
func (r *PostgresAttendanceRepo) CreateSignIn(ctx context.Context, signIn *model.SignIn) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO signins (id, event_id, user_id, signin_time)
		 VALUES ($1, $2, $3, $4)`,
		signIn.ID, signIn.EventID, signIn.UserID, signIn.SignInTime,
	)
	if err != nil {
		return fmt.Errorf("サインイン記録の作成に失敗しました: %w", err)
	}
	return nil
}

// ListSignInsByEvent はイベントのサインイン記録をsignin_time昇順で返す。
func (r *PostgresAttendanceRepo) ListSignInsByEvent(ctx context.Context, eventID string) ([]*model.SignIn, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, event_id, user_id, signin_time
		 FROM signins WHERE event_id = $1 ORDER BY signin_time ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("サインイン記録の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var signIns []*model.SignIn
	for rows.Next() {
		s := &model.SignIn{}
		if err := rows.Scan(&s.ID, &s.EventID, &s.UserID, &s.SignInTime); err != nil {
			return nil, fmt.Errorf("サインイン行の読み取りに失敗しました: %w", err)
		}
		signIns = append(signIns, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("サインイン記録の走査に失敗しました: %w", err)
	}
	return signIns, nil
}

// CreateDuration は参加時間記録を追記する。
// durationの値は検証せずそのまま保存する（符号・範囲の検証はサービス層で行う）。
func (r *PostgresAttendanceRepo) CreateDuration(ctx context.Context, duration *model.SignInDuration) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO signin_durations (id, event_id, user_id, duration, end_time)
		 VALUES ($1, $2, $3, $4, $5)`,
		duration.ID, duration.EventID, duration.UserID, duration.Duration, duration.EndTime,
	)
	if err != nil {
		return fmt.Errorf("参加時間記録の作成に失敗しました: %w", err)
	}
	return nil
}

// ListDurationsByEvent はイベントの参加時間記録をend_time昇順で返す。
func (r *PostgresAttendanceRepo) ListDurationsByEvent(ctx context.Context, eventID string) ([]*model.SignInDuration, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, event_id, user_id, duration, end_time
		 FROM signin_durations WHERE event_id = $1 ORDER BY end_time ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("参加時間記録の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var durations []*model.SignInDuration
	for rows.Next() {
		d := &model.SignInDuration{}
		if err := rows.Scan(&d.ID, &d.EventID, &d.UserID, &d.Duration, &d.EndTime); err != nil {
			return nil, fmt.Errorf("参加時間行の読み取りに失敗しました: %w", err)
		}
		durations = append(durations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("参加時間記録の走査に失敗しました: %w", err)
	}
	return durations, nil
}

// compile-time interface check
var _ AttendanceRepository = (*PostgresAttendanceRepo)(nil)
