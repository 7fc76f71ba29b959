// Package account はユーザー登録と本人照合のドメインロジックを提供する。
package account

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

// MetricsCollector は登録に関するメトリクス収集のインターフェース。
// metrics.Collectorの部分集合として定義する。
type MetricsCollector interface {
	RecordRegistration()
}

// Service はユーザー登録と本人照合のサービス層。
type Service struct {
	userRepo  repository.UserRepository
	sanitizer Sanitizer
	metrics   MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
// metricsはnilでもよく、その場合メトリクスは記録されない。
func NewService(userRepo repository.UserRepository, sanitizer Sanitizer, metrics MetricsCollector) *Service {
	return &Service{
		userRepo:  userRepo,
		sanitizer: sanitizer,
		metrics:   metrics,
	}
}

// Register は新規ユーザーを登録する。
// 表示名は保存前にサニタイズされる。
// 電話番号が登録済みの場合はDUPLICATE_PHONEのAPIErrorを返し、状態を変更しない。
func (s *Service) Register(ctx context.Context, name, phone string) (*model.User, error) {
	name = s.sanitizer.Sanitize(name)
	phone = s.sanitizer.Sanitize(phone)

	if name == "" {
		return nil, model.NewInvalidRequestError("名前が空です")
	}
	if phone == "" {
		return nil, model.NewInvalidRequestError("電話番号が空です")
	}

	user := &model.User{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     phone,
		CreatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordRegistration()
	}
	slog.Info("user registered",
		slog.String("user_id", user.ID),
	)

	return user, nil
}

// Lookup は名前と電話番号の完全一致でユーザーを照合する。
// パスワード等の資格情報確認は行わない非認証のディレクトリ照合であり、
// 照合成功をセキュリティ上の保証として扱ってはならない。
// 入力は保存時と同じサニタイズを通してから比較する。
// 見つからない場合はUSER_NOT_FOUNDのAPIErrorを返す。
func (s *Service) Lookup(ctx context.Context, name, phone string) (*model.User, error) {
	name = s.sanitizer.Sanitize(name)
	phone = s.sanitizer.Sanitize(phone)

	user, err := s.userRepo.FindByNameAndPhone(ctx, name, phone)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの照合に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	return user, nil
}
