package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	resp "github.com/CultivBureau/RwafiWorkHole-sub004/internal/transport/http/response"
)

const metricsNS = "roleadmin"

var (
	reqCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNS,
		Name:      "http_requests_total",
		Help:      "管理端 HTTP 请求数，按路由模板、方法和信封 code 分组",
	}, []string{"route", "method", "code"})

	reqSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNS,
		Name:      "http_request_duration_seconds",
		Help:      "管理端 HTTP 耗时",
		// 成员页要扇出到 HR 后端，尾部延迟比普通接口长
		Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method"})

	reqInflight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNS,
		Name:      "http_requests_inflight",
		Help:      "正在处理的请求数",
	})
)

func init() { prometheus.MustRegister(reqCount, reqSeconds, reqInflight) }

// Metrics 信封里 HTTP 状态恒为 200，因此另外按 HTTP 状态之外的 code 统计
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqInflight.Inc()
		defer reqInflight.Dec()

		began := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		code := strconv.Itoa(c.Writer.Status())
		if v, ok := c.Get(resp.CtxCode); ok {
			code = strconv.Itoa(v.(int))
		}
		reqCount.WithLabelValues(route, c.Request.Method, code).Inc()
		reqSeconds.WithLabelValues(route, c.Request.Method).Observe(time.Since(began).Seconds())
	}
}
