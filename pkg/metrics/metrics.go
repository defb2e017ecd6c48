package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Итог проверки одного правила (значение лейбла result).
const (
	ResultPass  = "pass"
	ResultFail  = "fail"
	ResultError = "error"
)

var (
	RuleEvaluations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rule_evaluations_total",
			Help: "Number of rule evaluations by rule and outcome",
		},
		[]string{"rule", "result"}, // pass|fail|error
	)
	RuleChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rule_checks_total",
			Help: "Number of rule check requests by outcome",
		},
		[]string{"outcome"}, // passed|failed|invalid|not_found|error
	)
	RuleCheckDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rule_check_duration_seconds",
			Help:    "Duration of a rule check request including order lookup",
			Buckets: prometheus.DefBuckets,
		},
	)
)

var (
	OrdersIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_ingested_total",
			Help: "Orders stored from Kafka messages",
		},
		[]string{"topic"},
	)
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_cache_operations_total",
			Help: "Order cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "order_cache_size",
			Help: "Number of orders currently in cache",
		},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует метрики в дефолтном реестре; повторные вызовы ничего не делают.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RuleEvaluations, RuleChecks, RuleCheckDuration,
			OrdersIngested, KafkaMessagesConsumed, KafkaMessagesFailed,
			CacheOps, CacheSize,
		)
	})
}

// ObserveRule — учитывает результат одного правила.
func ObserveRule(rule string, passed bool, err error) {
	result := ResultFail
	switch {
	case err != nil:
		result = ResultError
	case passed:
		result = ResultPass
	}
	RuleEvaluations.WithLabelValues(rule, result).Inc()
}

// ObserveCheck — учитывает исход запроса проверки и его длительность.
func ObserveCheck(outcome string, started time.Time) {
	RuleChecks.WithLabelValues(outcome).Inc()
	RuleCheckDuration.Observe(time.Since(started).Seconds())
}
