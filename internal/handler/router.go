package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hbsfdx221ly/volunteerd/internal/metrics"
	"github.com/hbsfdx221ly/volunteerd/internal/middleware"
)

// HealthChecker はデータベース疎通確認のインターフェース。
// *sql.DBがそのまま満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	HealthChecker     HealthChecker
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	StatusRecorder    middleware.HTTPStatusRecorder
	MetricsGatherer   prometheus.Gatherer

	// サービス
	AccountService    AccountServiceInterface
	EventService      EventServiceInterface
	AttendanceService AttendanceServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → SecurityHeaders → Recovery → Logging → RateLimit(General)
//
// サインイン系エンドポイントには専用レート制限を追加する。
// /health と /metrics はレート制限の外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.StatusRecorder))

	accountHandler := NewAccountHandler(deps.AccountService)
	eventHandler := NewEventHandler(deps.EventService)
	attendanceHandler := NewAttendanceHandler(deps.AttendanceService)

	// --- 運用系エンドポイント（レート制限の外） ---

	r.Get("/health", newHealthHandler(deps.HealthChecker))

	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	// --- APIエンドポイント ---
	// ミドルウェアスタック: RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// ユーザー登録・照合
		r.Post("/api/users", accountHandler.Register)
		r.Post("/api/login", accountHandler.Login)

		// イベント・メンバー管理
		r.Route("/api/events", func(r chi.Router) {
			r.Post("/", eventHandler.CreateEvent)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", eventHandler.GetEvent)

				r.Post("/members", eventHandler.AddMember)
				r.Get("/members", eventHandler.ListMembers)

				// 出席記録（書き込みはサインイン専用レート制限を追加）
				r.With(deps.RateLimiter.SignInMiddleware()).Post("/signin", attendanceHandler.SignIn)
				r.With(deps.RateLimiter.SignInMiddleware()).Post("/signin/end", attendanceHandler.EndSignIn)

				r.Get("/signins", attendanceHandler.ListSignIns)
				r.Get("/durations", attendanceHandler.ListDurations)
			})
		})
	})

	return r
}

// newHealthHandler はデータベース疎通を確認するヘルスチェックハンドラーを返す。
// 疎通できない場合は503を返す。
func newHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.PingContext(r.Context()); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				http.Error(w, "unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}
}
