// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	registrations     prometheus.Counter
	signInSuccess     prometheus.Counter
	signInRejected    *prometheus.CounterVec
	durationsRecorded prometheus.Counter
	httpStatus        *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "volunteerd_registrations_total",
			Help: "ユーザー登録成功の合計数",
		}),
		signInSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "volunteerd_signin_success_total",
			Help: "サインイン成功の合計数",
		}),
		signInRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "volunteerd_signin_rejected_total",
			Help: "検証失敗により拒否されたサインインの合計数",
		}, []string{"reason"}),
		durationsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "volunteerd_durations_recorded_total",
			Help: "記録された参加時間エントリの合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "volunteerd_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.registrations,
		c.signInSuccess,
		c.signInRejected,
		c.durationsRecorded,
		c.httpStatus,
	)

	return c
}

// RecordRegistration はユーザー登録成功を記録する。
func (c *Collector) RecordRegistration() {
	c.registrations.Inc()
}

// RecordSignInSuccess はサインイン成功を記録する。
func (c *Collector) RecordSignInSuccess() {
	c.signInSuccess.Inc()
}

// RecordSignInRejected は検証失敗によるサインイン拒否を理由別に記録する。
func (c *Collector) RecordSignInRejected(reason string) {
	c.signInRejected.WithLabelValues(reason).Inc()
}

// RecordDurationRecorded は参加時間エントリの記録を記録する。
func (c *Collector) RecordDurationRecorded() {
	c.durationsRecorded.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
