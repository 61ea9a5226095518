package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type WeigherMetrics struct {
	ComputationsTotal metrics.Counter
	ErrorsTotal       metrics.Counter
}

func PromWeigherMetrics() *WeigherMetrics {
	return &WeigherMetrics{
		ComputationsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: WeigherSubsystem,
			Name:      "computations_total",
			Help:      "Total number of weight computations.",
		}, []string{}),
		ErrorsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: WeigherSubsystem,
			Name:      "errors_total",
			Help:      "Total number of failed weight computations.",
		}, []string{}),
	}
}

func NopWeigherMetrics() *WeigherMetrics {
	return &WeigherMetrics{
		ComputationsTotal: discard.NewCounter(),
		ErrorsTotal:       discard.NewCounter(),
	}
}
