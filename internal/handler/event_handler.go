package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hbsfdx221ly/volunteerd/internal/model"
)

// EventServiceInterface はイベントハンドラーが必要とするサービスインターフェース。
type EventServiceInterface interface {
	// CreateEvent はイベントを作成し、作成者を最初のメンバーとして自動登録する。
	CreateEvent(ctx context.Context, creatorID, eventName string) (*model.Event, error)
	// GetEvent はイベント情報を取得する。見つからない場合はEVENT_NOT_FOUNDを返す。
	GetEvent(ctx context.Context, eventID string) (*model.Event, error)
	// AddMember はユーザーをイベントメンバーとして無条件に追加する。
	AddMember(ctx context.Context, eventID, userID string) (*model.Membership, error)
	// ListMembers はイベントのメンバー一覧をユーザー情報付きで返す。
	ListMembers(ctx context.Context, eventID string) ([]model.Member, error)
}

// EventHandler はイベント・メンバー管理のHTTPハンドラー。
type EventHandler struct {
	service EventServiceInterface
}

// NewEventHandler はEventHandlerを生成する。
func NewEventHandler(service EventServiceInterface) *EventHandler {
	return &EventHandler{
		service: service,
	}
}

// createEventRequest はイベント作成リクエストのボディ。
type createEventRequest struct {
	CreatorID string `json:"creator_id"`
	Name      string `json:"name"`
}

// addMemberRequest はメンバー追加リクエストのボディ。
type addMemberRequest struct {
	UserID string `json:"user_id"`
}

// eventResponse はイベント情報のAPIレスポンス。
type eventResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// membershipResponse はメンバーシップのAPIレスポンス。
type membershipResponse struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
	AddedAt string `json:"added_at"`
}

// memberResponse はメンバー一覧の1行分のAPIレスポンス。
type memberResponse struct {
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	AddedAt string `json:"added_at"`
}

// CreateEvent はイベント作成を処理する。
// POST /api/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	if req.CreatorID == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("creator_idが空です"))
		return
	}

	event, err := h.service.CreateEvent(r.Context(), req.CreatorID, req.Name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toEventResponse(event))
}

// GetEvent はイベント詳細を取得する。
// GET /api/events/:id
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	event, err := h.service.GetEvent(r.Context(), eventID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toEventResponse(event))
}

// AddMember はメンバー追加を処理する。
// POST /api/events/:id/members
func (h *EventHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	if req.UserID == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("user_idが空です"))
		return
	}

	membership, err := h.service.AddMember(r.Context(), eventID, req.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(membershipResponse{
		ID:      membership.ID,
		EventID: membership.EventID,
		UserID:  membership.UserID,
		AddedAt: model.FormatTime(membership.AddedAt),
	})
}

// ListMembers はメンバー一覧を取得する。
// GET /api/events/:id/members
func (h *EventHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	members, err := h.service.ListMembers(r.Context(), eventID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]memberResponse, len(members))
	for i, m := range members {
		results[i] = memberResponse{
			UserID:  m.UserID,
			Name:    m.Name,
			Phone:   m.Phone,
			AddedAt: model.FormatTime(m.AddedAt),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]memberResponse{"members": results})
}

// toEventResponse はmodel.EventからAPIレスポンスに変換する。
func toEventResponse(event *model.Event) eventResponse {
	return eventResponse{
		ID:        event.ID,
		Name:      event.Name,
		CreatedAt: model.FormatTime(event.CreatedAt),
	}
}
