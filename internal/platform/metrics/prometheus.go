package metrics

import (
	"net/http"
	"strings"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsManager holds the service's Prometheus collectors.
type MetricsManager struct {
	Registry          *prometheus.Registry
	ListingsCreated   prometheus.Counter
	ListingsDeleted   prometheus.Counter
	AICalls           *prometheus.CounterVec   // by provider and outcome
	APIErrors         *prometheus.CounterVec   // by route and error kind
	APIRequestLatency *prometheus.HistogramVec // by route
}

// NewMetricsManager registers collectors on a private registry.
func NewMetricsManager(serviceName string) *MetricsManager {
	namespace := strings.ReplaceAll(serviceName, "-", "_")
	registry := prometheus.NewRegistry()

	listingsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_created_total",
		Help:      "Total number of listings created.",
	})
	listingsDeleted := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_deleted_total",
		Help:      "Total number of listings deleted.",
	})
	aiCalls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ai_calls_total",
		Help:      "External AI calls by provider and outcome.",
	}, []string{"provider", "outcome"})
	apiErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_errors_total",
		Help:      "Total number of API errors by route and kind.",
	}, []string{"route", "kind"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_latency_seconds",
		Help:      "Latency of API requests by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	registry.MustRegister(
		listingsCreated,
		listingsDeleted,
		aiCalls,
		apiErrors,
		latency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &MetricsManager{
		Registry:          registry,
		ListingsCreated:   listingsCreated,
		ListingsDeleted:   listingsDeleted,
		AICalls:           aiCalls,
		APIErrors:         apiErrors,
		APIRequestLatency: latency,
	}
}

// ObserveAICall counts one external AI call. Nil-safe.
func (m *MetricsManager) ObserveAICall(provider string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.AICalls.WithLabelValues(provider, outcome).Inc()
}

// StartMetricsServer serves /metrics for registry on port. Blocks.
func StartMetricsServer(port string, appLogger *logger.Logger, registry *prometheus.Registry) error {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	appLogger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}
	return server.ListenAndServe()
}
