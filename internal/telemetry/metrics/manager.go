package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterAPICalls       *prometheus.CounterVec
	CounterAPIErrors      *prometheus.CounterVec
	CounterBadgeRefreshes prometheus.Counter
	CounterPollTicks      prometheus.Counter
	CounterNewWorkouts    prometheus.Counter

	// gauges
	GaugeActiveAgents prometheus.Gauge

	// histograms
	HistogramAPICallDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("neonpanda", "client", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("neonpanda", "client", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterAPICalls := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "api_calls",
		Help:      "The total number of backend API calls",
	}, []string{"resource", "operation"})
	counterAPIErrors := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "api_errors",
		Help:      "The total number of failed backend API calls",
	}, []string{"resource", "operation"})
	counterBadgeRefreshes := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "badge_refreshes",
		Help:      "The total number of navigation badge count refreshes",
	})
	counterPollTicks := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "poll_ticks",
		Help:      "The total number of workout poller ticks",
	})
	counterNewWorkouts := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "new_workouts_detected",
		Help:      "The total number of new workouts detected by the poller",
	})

	gaugeActiveAgents := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "active_agents",
		Help:      "Current number of live (not destroyed) entity agents",
	})

	histogramAPICallDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "api_call_duration",
		Help:      "Backend API call duration in seconds",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"resource"})

	return &Manager{
		CounterAPICalls:          counterAPICalls,
		CounterAPIErrors:         counterAPIErrors,
		CounterBadgeRefreshes:    counterBadgeRefreshes,
		CounterPollTicks:         counterPollTicks,
		CounterNewWorkouts:       counterNewWorkouts,
		GaugeActiveAgents:        gaugeActiveAgents,
		HistogramAPICallDuration: histogramAPICallDuration,
	}
}
