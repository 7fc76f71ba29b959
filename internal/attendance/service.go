// Package attendance はサインインと参加時間記録のドメインロジックを提供する。
//
// どちらの操作も同じ2段階の検証を行う:
//  1. 申告された名前と電話番号でユーザーを照合する（未登録ならIDENTITY_NOT_FOUND）
//  2. 対象イベントのメンバーシップを確認する（非メンバーならNOT_A_MEMBER）
//
// 検証順序は固定で、最初の失敗が優先される。検証通過後の書き込みは追記のみで、
// 重複排除は行わない（同一ユーザーの再サインインも新しい行になる）。
package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hbsfdx221ly/volunteerd/internal/model"
	"github.com/hbsfdx221ly/volunteerd/internal/repository"
)

// Sanitizer は自由テキストのサニタイズインターフェース。
// テスタビリティのためsecurity.NameSanitizerServiceを抽象化する。
type Sanitizer interface {
	Sanitize(input string) string
}

// MetricsCollector は出席記録に関するメトリクス収集のインターフェース。
// metrics.Collectorの部分集合として定義する。
type MetricsCollector interface {
	RecordSignInSuccess()
	RecordSignInRejected(reason string)
	RecordDurationRecorded()
}

// Service はサインインと参加時間記録のサービス層。
type Service struct {
	userRepo       repository.UserRepository
	membershipRepo repository.MembershipRepository
	attendanceRepo repository.AttendanceRepository
	sanitizer      Sanitizer
	metrics        MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
// metricsはnilでもよく、その場合メトリクスは記録されない。
func NewService(
	userRepo repository.UserRepository,
	membershipRepo repository.MembershipRepository,
	attendanceRepo repository.AttendanceRepository,
	sanitizer Sanitizer,
	metrics MetricsCollector,
) *Service {
	return &Service{
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		attendanceRepo: attendanceRepo,
		sanitizer:      sanitizer,
		metrics:        metrics,
	}
}

// SignIn は申告された身元を検証し、サインイン記録を追記する。
// 検証は身元照合→メンバーシップ確認の順で行い、最初の失敗で打ち切る。
// 検証失敗時はサインイン行を作成しない。
func (s *Service) SignIn(ctx context.Context, eventID, claimedName, claimedPhone string) (*model.SignIn, error) {
	user, err := s.verify(ctx, eventID, claimedName, claimedPhone)
	if err != nil {
		return nil, err
	}

	signIn := &model.SignIn{
		ID:         uuid.NewString(),
		EventID:    eventID,
		UserID:     user.ID,
		SignInTime: time.Now(),
	}
	if err := s.attendanceRepo.CreateSignIn(ctx, signIn); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordSignInSuccess()
	}
	slog.Info("sign-in recorded",
		slog.String("event_id", eventID),
		slog.String("user_id", user.ID),
	)

	return signIn, nil
}

// RecordDuration は申告された身元を検証し、参加時間記録を追記する。
// 負のdurationはINVALID_DURATIONとして拒否する。0以上の値は検証せず
// そのまま保存し、単位の解釈は呼び出し側に委ねる。
func (s *Service) RecordDuration(ctx context.Context, eventID, claimedName, claimedPhone string, duration int) (*model.SignInDuration, error) {
	if duration < 0 {
		return nil, model.NewInvalidDurationError(duration)
	}

	user, err := s.verify(ctx, eventID, claimedName, claimedPhone)
	if err != nil {
		return nil, err
	}

	record := &model.SignInDuration{
		ID:       uuid.NewString(),
		EventID:  eventID,
		UserID:   user.ID,
		Duration: duration,
		EndTime:  time.Now(),
	}
	if err := s.attendanceRepo.CreateDuration(ctx, record); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordDurationRecorded()
	}
	slog.Info("sign-in duration recorded",
		slog.String("event_id", eventID),
		slog.String("user_id", user.ID),
		slog.Int("duration", duration),
	)

	return record, nil
}

// ListSignIns はイベントのサインイン記録一覧を返す。
func (s *Service) ListSignIns(ctx context.Context, eventID string) ([]*model.SignIn, error) {
	signIns, err := s.attendanceRepo.ListSignInsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("サインイン記録の取得に失敗しました: %w", err)
	}
	return signIns, nil
}

// ListDurations はイベントの参加時間記録一覧を返す。
func (s *Service) ListDurations(ctx context.Context, eventID string) ([]*model.SignInDuration, error) {
	durations, err := s.attendanceRepo.ListDurationsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("参加時間記録の取得に失敗しました: %w", err)
	}
	return durations, nil
}

// verify は出席操作共通の2段階検証を行い、照合されたユーザーを返す。
// 申告された名前・電話番号は登録時と同じサニタイズを通してから比較する。
// 検証と後続の挿入はトランザクションで直列化していない。
// メンバーシップ行はこのシステムでは削除されないため、
// 確認通過後に資格が失われることはない。
func (s *Service) verify(ctx context.Context, eventID, claimedName, claimedPhone string) (*model.User, error) {
	claimedName = s.sanitizer.Sanitize(claimedName)
	claimedPhone = s.sanitizer.Sanitize(claimedPhone)

	// 1. 身元照合
	user, err := s.userRepo.FindByNameAndPhone(ctx, claimedName, claimedPhone)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの照合に失敗しました: %w", err)
	}
	if user == nil {
		if s.metrics != nil {
			s.metrics.RecordSignInRejected("identity_not_found")
		}
		return nil, model.NewIdentityNotFoundError()
	}

	// 2. メンバーシップ確認
	membership, err := s.membershipRepo.FindByEventAndUser(ctx, eventID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("メンバーシップの確認に失敗しました: %w", err)
	}
	if membership == nil {
		if s.metrics != nil {
			s.metrics.RecordSignInRejected("not_a_member")
		}
		return nil, model.NewNotAMemberError()
	}

	return user, nil
}
