package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hbsfdx221ly/volunteerd/internal/model"
)

// --- モック定義 ---

// mockAccountService はAccountServiceInterfaceのモック実装。
type mockAccountService struct {
	registerFn func(ctx context.Context, name, phone string) (*model.User, error)
	lookupFn   func(ctx context.Context, name, phone string) (*model.User, error)
}

func (m *mockAccountService) Register(ctx context.Context, name, phone string) (*model.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, name, phone)
	}
	return nil, nil
}

func (m *mockAccountService) Lookup(ctx context.Context, name, phone string) (*model.User, error) {
	if m.lookupFn != nil {
		return m.lookupFn(ctx, name, phone)
	}
	return nil, nil
}

// --- POST /api/users テスト ---

func TestAccountHandler_Register_Success(t *testing.T) {
	svc := &mockAccountService{
		registerFn: func(ctx context.Context, name, phone string) (*model.User, error) {
			return &model.User{
				ID:        "user-123",
				Name:      name,
				Phone:     phone,
				CreatedAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local),
			}, nil
		},
	}

	h := NewAccountHandler(svc)

	body := `{"name":"田中太郎","phone":"090-1234-5678"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Register(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var got map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got["id"] != "user-123" {
		t.Errorf("id = %q, want %q", got["id"], "user-123")
	}
	if got["name"] != "田中太郎" {
		t.Errorf("name = %q, want %q", got["name"], "田中太郎")
	}
	if got["created_at"] != "2024-03-15 10:00:00" {
		t.Errorf("created_at = %q, want %q", got["created_at"], "2024-03-15 10:00:00")
	}
}

func TestAccountHandler_Register_DuplicatePhone_ReturnsConflict(t *testing.T) {
	svc := &mockAccountService{
		registerFn: func(ctx context.Context, name, phone string) (*model.User, error) {
			return nil, model.NewDuplicatePhoneError(phone)
		},
	}

	h := NewAccountHandler(svc)

	body := `{"name":"田中太郎","phone":"090-1234-5678"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Register(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusConflict)
	}

	var got apiErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if got.Code != model.ErrCodeDuplicatePhone {
		t.Errorf("code = %q, want %q", got.Code, model.ErrCodeDuplicatePhone)
	}
	if got.Category != "registration" {
		t.Errorf("category = %q, want %q", got.Category, "registration")
	}
	if got.Action == "" {
		t.Error("action should not be empty")
	}
}

func TestAccountHandler_Register_InvalidJSON_ReturnsBadRequest(t *testing.T) {
	h := NewAccountHandler(&mockAccountService{})

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader("{invalid"))
	w := httptest.NewRecorder()

	h.Register(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestAccountHandler_Register_InternalError(t *testing.T) {
	svc := &mockAccountService{
		registerFn: func(ctx context.Context, name, phone string) (*model.User, error) {
			return nil, errors.New("connection refused")
		},
	}

	h := NewAccountHandler(svc)

	body := `{"name":"田中太郎","phone":"090-1234-5678"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Register(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusInternalServerError)
	}
}

// --- POST /api/login テスト ---

func TestAccountHandler_Login_Success(t *testing.T) {
	svc := &mockAccountService{
		lookupFn: func(ctx context.Context, name, phone string) (*model.User, error) {
			if name != "田中太郎" || phone != "090-1234-5678" {
				t.Errorf("lookup args = (%q, %q), want exact request values", name, phone)
			}
			return &model.User{ID: "user-123", Name: name, Phone: phone}, nil
		},
	}

	h := NewAccountHandler(svc)

	body := `{"name":"田中太郎","phone":"090-1234-5678"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Login(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var got map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got["id"] != "user-123" {
		t.Errorf("id = %q, want %q", got["id"], "user-123")
	}
}

func TestAccountHandler_Login_NotFound(t *testing.T) {
	svc := &mockAccountService{
		lookupFn: func(ctx context.Context, name, phone string) (*model.User, error) {
			return nil, model.NewUserNotFoundError()
		},
	}

	h := NewAccountHandler(svc)

	body := `{"name":"田中太郎","phone":"000-0000-0000"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Login(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}

	var got apiErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if got.Code != model.ErrCodeUserNotFound {
		t.Errorf("code = %q, want %q", got.Code, model.ErrCodeUserNotFound)
	}
}
