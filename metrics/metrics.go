package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 检查结果标签值。error 指 checker 内部意外失败（panic 被兜住），
// 正常的"未登录"记为 unauthenticated。
const (
	OutcomeAuthenticated   = "authenticated"
	OutcomeUnauthenticated = "unauthenticated"
	OutcomeError           = "error"
)

var (
	AuthChecks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agentauthd_auth_checks_total",
		Help: "Total number of provider auth status checks by outcome",
	}, []string{"provider", "outcome"})
	AuthCheckDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agentauthd_auth_check_duration_seconds",
		Help:    "Duration of provider auth status checks",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider"})
)

func init() {
	prometheus.MustRegister(AuthChecks)
	prometheus.MustRegister(AuthCheckDuration)
}

// ObserveCheck 记录一次完成的检查。
func ObserveCheck(provider, outcome string, elapsed time.Duration) {
	AuthChecks.WithLabelValues(provider, outcome).Inc()
	AuthCheckDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// Handler 返回 /metrics 使用的 promhttp handler。
func Handler() http.Handler {
	return promhttp.Handler()
}
