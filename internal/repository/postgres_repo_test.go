package repository

import (
	"testing"
	"time"

	"github.com/lib/pq"

	"github.com/hbsfdx221ly/volunteerd/internal/model"
)

// PostgresUserRepoはUserRepositoryインターフェースを満たすことを検証
func TestPostgresUserRepo_ImplementsInterface(t *testing.T) {
	var _ UserRepository = (*PostgresUserRepo)(nil)
}

// PostgresEventRepoはEventRepositoryインターフェースを満たすことを検証
func TestPostgresEventRepo_ImplementsInterface(t *testing.T) {
	var _ EventRepository = (*PostgresEventRepo)(nil)
}

// PostgresMembershipRepoはMembershipRepositoryインターフェースを満たすことを検証
func TestPostgresMembershipRepo_ImplementsInterface(t *testing.T) {
	var _ MembershipRepository = (*PostgresMembershipRepo)(nil)
}

// PostgresAttendanceRepoはAttendanceRepositoryインターフェースを満たすことを検証
func TestPostgresAttendanceRepo_ImplementsInterface(t *testing.T) {
	var _ AttendanceRepository = (*PostgresAttendanceRepo)(nil)
}

// NewPostgresUserRepoが正しく初期化されることを検証
func TestNewPostgresUserRepo_Initializes(t *testing.T) {
	repo := NewPostgresUserRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// NewPostgresEventRepoが正しく初期化されることを検証
func TestNewPostgresEventRepo_Initializes(t *testing.T) {
	repo := NewPostgresEventRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// NewPostgresMembershipRepoが正しく初期化されることを検証
func TestNewPostgresMembershipRepo_Initializes(t *testing.T) {
	repo := NewPostgresMembershipRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// NewPostgresAttendanceRepoが正しく初期化されることを検証
func TestNewPostgresAttendanceRepo_Initializes(t *testing.T) {
	repo := NewPostgresAttendanceRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// SQLSTATEコードの定義がPostgreSQLの仕様と一致することを検証
func TestPostgresErrorCodes(t *testing.T) {
	if uniqueViolation != pq.ErrorCode("23505") {
		t.Errorf("uniqueViolation = %q, want %q", uniqueViolation, "23505")
	}
	if foreignKeyViolation != pq.ErrorCode("23503") {
		t.Errorf("foreignKeyViolation = %q, want %q", foreignKeyViolation, "23503")
	}
}

// ユニットテスト: CreateWithCreatorに渡すイベントとメンバーシップの整合性
// （DB接続なしでロジックのみ検証）
func TestCreateWithCreator_EventMembershipConsistency_Concept(t *testing.T) {
	now := time.Now()
	event := &model.Event{
		ID:        "event-id-1",
		Name:      "公園清掃",
		CreatedAt: now,
	}
	membership := &model.Membership{
		ID:      "membership-id-1",
		EventID: "event-id-1",
		UserID:  "user-id-1",
		AddedAt: now,
	}

	// メンバーシップのEventIDがイベントのIDと一致すること
	if membership.EventID != event.ID {
		t.Errorf("membership.EventID = %q, want %q", membership.EventID, event.ID)
	}
	// 作成時刻が共有されること
	if !membership.AddedAt.Equal(event.CreatedAt) {
		t.Errorf("membership.AddedAt = %v, want %v", membership.AddedAt, event.CreatedAt)
	}
}
