package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hbsfdx221ly/volunteerd/internal/model"
)

// AttendanceServiceInterface は出席ハンドラーが必要とするサービスインターフェース。
type AttendanceServiceInterface interface {
	// SignIn は申告された身元を検証し、サインイン記録を追記する。
	SignIn(ctx context.Context, eventID, claimedName, claimedPhone string) (*model.SignIn, error)
	// RecordDuration は申告された身元を検証し、参加時間記録を追記する。
	RecordDuration(ctx context.Context, eventID, claimedName, claimedPhone string, duration int) (*model.SignInDuration, error)
	// ListSignIns はイベントのサインイン記録一覧を返す。
	ListSignIns(ctx context.Context, eventID string) ([]*model.SignIn, error)
	// ListDurations はイベントの参加時間記録一覧を返す。
	ListDurations(ctx context.Context, eventID string) ([]*model.SignInDuration, error)
}

// AttendanceHandler はサインイン・参加時間記録のHTTPハンドラー。
type AttendanceHandler struct {
	service AttendanceServiceInterface
}

// NewAttendanceHandler はAttendanceHandlerを生成する。
func NewAttendanceHandler(service AttendanceServiceInterface) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
	}
}

// signInRequest はサインインリクエストのボディ。
type signInRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// endSignInRequest は参加時間記録リクエストのボディ。
type endSignInRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Duration int    `json:"duration"`
}

// signInResponse はサインイン記録のAPIレスポンス。
type signInResponse struct {
	ID         string `json:"id"`
	EventID    string `json:"event_id"`
	UserID     string `json:"user_id"`
	SignInTime string `json:"signin_time"`
}

// durationResponse は参加時間記録のAPIレスポンス。
type durationResponse struct {
	ID       string `json:"id"`
	EventID  string `json:"event_id"`
	UserID   string `json:"user_id"`
	Duration int    `json:"duration"`
	EndTime  string `json:"end_time"`
}

// apiErrorResponse は統一エラーフォーマットのレスポンス。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// SignIn はサインイン記録を処理する。
// POST /api/events/:id/signin
func (h *AttendanceHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	signIn, err := h.service.SignIn(r.Context(), eventID, req.Name, req.Phone)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(struct {
		Message string         `json:"message"`
		SignIn  signInResponse `json:"signin"`
	}{
		Message: "サインインしました。",
		SignIn:  toSignInResponse(signIn),
	})
}

// EndSignIn は参加時間の記録を処理する。
// 検証失敗は400、成功は200を返す。
// POST /api/events/:id/signin/end
func (h *AttendanceHandler) EndSignIn(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	var req endSignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	record, err := h.service.RecordDuration(r.Context(), eventID, req.Name, req.Phone, req.Duration)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Message  string           `json:"message"`
		Duration durationResponse `json:"duration"`
	}{
		Message:  "参加時間を記録しました。",
		Duration: toDurationResponse(record),
	})
}

// ListSignIns はイベントのサインイン記録一覧を取得する。
// GET /api/events/:id/signins
func (h *AttendanceHandler) ListSignIns(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	signIns, err := h.service.ListSignIns(r.Context(), eventID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]signInResponse, len(signIns))
	for i, s := range signIns {
		results[i] = toSignInResponse(s)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]signInResponse{"signins": results})
}

// ListDurations はイベントの参加時間記録一覧を取得する。
// GET /api/events/:id/durations
func (h *AttendanceHandler) ListDurations(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	durations, err := h.service.ListDurations(r.Context(), eventID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]durationResponse, len(durations))
	for i, d := range durations {
		results[i] = toDurationResponse(d)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]durationResponse{"durations": results})
}

// --- ヘルパー関数 ---

// toSignInResponse はmodel.SignInからAPIレスポンスに変換する。
func toSignInResponse(s *model.SignIn) signInResponse {
	return signInResponse{
		ID:         s.ID,
		EventID:    s.EventID,
		UserID:     s.UserID,
		SignInTime: model.FormatTime(s.SignInTime),
	}
}

// toDurationResponse はmodel.SignInDurationからAPIレスポンスに変換する。
func toDurationResponse(d *model.SignInDuration) durationResponse {
	return durationResponse{
		ID:       d.ID,
		EventID:  d.EventID,
		UserID:   d.UserID,
		Duration: d.Duration,
		EndTime:  model.FormatTime(d.EndTime),
	}
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		writeAPIErrorResponse(w, statusCode, apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	})
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeDuplicatePhone:
		return http.StatusConflict
	case model.ErrCodeUserNotFound, model.ErrCodeEventNotFound:
		return http.StatusNotFound
	case model.ErrCodeIdentityNotFound, model.ErrCodeNotAMember:
		return http.StatusBadRequest
	case model.ErrCodeInvalidReference, model.ErrCodeInvalidDuration, model.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
