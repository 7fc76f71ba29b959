// Package event はイベント作成とメンバー管理のドメインロジックを提供する。
package event

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
type Sanitizer interface {
	Sanitize(input string) string
}

// Service はイベント作成とメンバー管理のサービス層。
// イベント作成時の作成者自動登録と、メンバーの追加・一覧取得を提供する。
type Service struct {
	eventRepo      repository.EventRepository
	membershipRepo repository.MembershipRepository
	sanitizer      Sanitizer
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	eventRepo repository.EventRepository,
	membershipRepo repository.MembershipRepository,
	sanitizer Sanitizer,
) *Service {
	return &Service{
		eventRepo:      eventRepo,
		membershipRepo: membershipRepo,
		sanitizer:      sanitizer,
	}
}

// CreateEvent はイベントを作成し、作成者を最初のメンバーとして自動登録する。
// イベント行とメンバーシップ行は同一トランザクションで書き込まれる。
func (s *Service) CreateEvent(ctx context.Context, creatorID, eventName string) (*model.Event, error) {
	eventName = s.sanitizer.Sanitize(eventName)
	if eventName == "" {
		return nil, model.NewInvalidRequestError("イベント名が空です")
	}

	now := time.Now()
	event := &model.Event{
		ID:        uuid.NewString(),
		Name:      eventName,
		CreatedAt: now,
	}
	membership := &model.Membership{
		ID:      uuid.NewString(),
		EventID: event.ID,
		UserID:  creatorID,
		AddedAt: now,
	}

	if err := s.eventRepo.CreateWithCreator(ctx, event, membership); err != nil {
		return nil, err
	}

	slog.Info("event created",
		slog.String("event_id", event.ID),
		slog.String("creator_id", creatorID),
	)

	return event, nil
}

// GetEvent はイベント情報を取得する。
// 見つからない場合はEVENT_NOT_FOUNDのAPIErrorを返す。
func (s *Service) GetEvent(ctx context.Context, eventID string) (*model.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("イベントの取得に失敗しました: %w", err)
	}
	if event == nil {
		return nil, model.NewEventNotFoundError(eventID)
	}
	return event, nil
}

// AddMember はユーザーをイベントメンバーとして追加する。
// ユーザー・イベントの存在チェックと重複チェックは行わない（呼び出し側の責務）。
// 存在しないIDへの参照は外部キー制約で拒否され、INVALID_REFERENCEとして返る。
func (s *Service) AddMember(ctx context.Context, eventID, userID string) (*model.Membership, error) {
	membership := &model.Membership{
		ID:      uuid.NewString(),
		EventID: eventID,
		UserID:  userID,
		AddedAt: time.Now(),
	}

	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		return nil, err
	}

	return membership, nil
}

// ListMembers はイベントのメンバー一覧をユーザー情報付きで返す。
// 順序は表示用で意味的な保証はない。
func (s *Service) ListMembers(ctx context.Context, eventID string) ([]model.Member, error) {
	members, err := s.membershipRepo.ListMembersByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("メンバー一覧の取得に失敗しました: %w", err)
	}
	return members, nil
}
