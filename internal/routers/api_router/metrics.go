package api_router

import (
	"expvar"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 同步通道指标
var (
	// MetricWSConnections 当前 WebSocket 连接数
	MetricWSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "journal_sync",
		Name:      "ws_connections",
		Help:      "Current number of websocket connections.",
	})

	// MetricSyncPushes 同步推送次数
	MetricSyncPushes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "journal_sync",
		Name:      "sync_pushes_total",
		Help:      "Total number of entry snapshots pushed to clients.",
	})

	// MetricEntryMutations 条目变更次数（按类型）
	MetricEntryMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "journal_sync",
		Name:      "entry_mutations_total",
		Help:      "Total number of entry mutations by action.",
	}, []string{"action"})
)

// Expvar 导出系统运行时指标
func Expvar(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	first := true
	report := func(key string, value interface{}) {
		if !first {
			fmt.Fprintf(c.Writer, ",\n")
		}
		first = false
		if str, ok := value.(string); ok {
			fmt.Fprintf(c.Writer, "%q: %q", key, str)
		} else {
			fmt.Fprintf(c.Writer, "%q: %v", key, value)
		}
	}

	fmt.Fprintf(c.Writer, "{\n")
	expvar.Do(func(kv expvar.KeyValue) {
		report(kv.Key, kv.Value)
	})
	fmt.Fprintf(c.Writer, "\n}\n")
}
