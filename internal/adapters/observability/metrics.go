package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "synxis_pms", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "synxis_pms", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	OutboundRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "synxis_pms", Name: "outbound_requests_total", Help: "Requests to the SynXis API."},
		[]string{"endpoint", "method", "status"},
	)
	OutboundLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "synxis_pms", Name: "outbound_request_duration_seconds",
			Help:    "SynXis API request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)
	TokenExchanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "synxis_pms", Name: "token_exchanges_total", Help: "OAuth2 token exchanges."},
		[]string{"outcome"}, // outcome: ok|rejected|error
	)
	ToolCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "synxis_pms", Name: "tool_calls_total", Help: "MCP tool invocations."},
		[]string{"tool", "outcome"}, // outcome: ok|not_found|error
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "synxis_pms", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
)

// Serve starts the standalone metrics listener when addr is non-empty.
func Serve(addr string) {
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(InitRegistry()))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, OutboundRequests, OutboundLatency, TokenExchanges, ToolCalls, CacheEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveOutbound(endpoint, method string, status int, dur time.Duration) {
	OutboundRequests.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	OutboundLatency.WithLabelValues(endpoint, method).Observe(dur.Seconds())
}

func ObserveTokenExchange(outcome string) { // outcome: ok|rejected|error
	TokenExchanges.WithLabelValues(outcome).Inc()
}

func ObserveToolCall(tool, outcome string) { // outcome: ok|not_found|error
	ToolCalls.WithLabelValues(tool, outcome).Inc()
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}
