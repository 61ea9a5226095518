package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type RegistryMetrics struct {
	Quorums metrics.Gauge

	CreatedTotal            metrics.Counter
	StrategiesAddedTotal    metrics.Counter
	StrategiesRemovedTotal  metrics.Counter
	MultipliersUpdatedTotal metrics.Counter
	ErrorsTotal             metrics.Counter
}

func (r *RegistryMetrics) SetQuorums(count uint64) {
	r.Quorums.Set(float64(count))
}

func PromRegistryMetrics() *RegistryMetrics {
	return &RegistryMetrics{
		Quorums: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: RegistrySubsystem,
			Name:      "quorums",
			Help:      "Number of created quorums.",
		}, []string{}),
		CreatedTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: RegistrySubsystem,
			Name:      "created_total",
			Help:      "Total number of created quorums.",
		}, []string{}),
		StrategiesAddedTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: RegistrySubsystem,
			Name:      "strategies_added_total",
			Help:      "Total number of added strategy entries.",
		}, []string{}),
		StrategiesRemovedTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: RegistrySubsystem,
			Name:      "strategies_removed_total",
			Help:      "Total number of removed strategy entries.",
		}, []string{}),
		MultipliersUpdatedTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: RegistrySubsystem,
			Name:      "multipliers_updated_total",
			Help:      "Total number of updated multipliers.",
		}, []string{}),
		ErrorsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: RegistrySubsystem,
			Name:      "errors_total",
			Help:      "Total number of failed registry operations.",
		}, []string{}),
	}
}

func NopRegistryMetrics() *RegistryMetrics {
	return &RegistryMetrics{
		Quorums: discard.NewGauge(),

		CreatedTotal:            discard.NewCounter(),
		StrategiesAddedTotal:    discard.NewCounter(),
		StrategiesRemovedTotal:  discard.NewCounter(),
		MultipliersUpdatedTotal: discard.NewCounter(),
		ErrorsTotal:             discard.NewCounter(),
	}
}
