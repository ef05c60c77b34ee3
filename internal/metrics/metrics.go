package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Generations     *prometheus.CounterVec
	Failures        *prometheus.CounterVec
	RetryAttempts   prometheus.Counter
	CreditsDebited  prometheus.Counter
	ProviderLatency *prometheus.HistogramVec
}

var (
	once   sync.Once
	global *Metrics
)

func Global() *Metrics {
	once.Do(func() {
		global = &Metrics{
			Generations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "brandforge",
				Name:      "generations_total",
				Help:      "Total completed generations by asset type",
			}, []string{"asset_type"}),
			Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "brandforge",
				Name:      "generation_failures_total",
				Help:      "Total generations that exhausted all attempts",
			}, []string{"asset_type"}),
			RetryAttempts: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "brandforge",
				Name:      "provider_retries_total",
				Help:      "Total retried provider calls",
			}),
			CreditsDebited: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "brandforge",
				Name:      "credits_debited_total",
				Help:      "Total credits debited from user ledgers",
			}),
			ProviderLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "brandforge",
				Name:      "provider_latency_seconds",
				Help:      "Provider call latency",
				Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
			}, []string{"provider"}),
		}
		prometheus.MustRegister(global.Generations, global.Failures, global.RetryAttempts, global.CreditsDebited, global.ProviderLatency)
	})
	return global
}
