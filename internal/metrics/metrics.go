// Package metrics exposes Prometheus collectors for parse throughput and the
// HTTP surface. Each Metrics owns its registry so tests and embedded servers
// never collide on global registration.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "scriptparse"

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	parseDuration  *prometheus.HistogramVec
	linesParsed    *prometheus.CounterVec
	blocksEmitted  *prometheus.CounterVec
	languageBlocks *prometheus.CounterVec
	contractErrors *prometheus.CounterVec
	archiveErrors  prometheus.Counter
}

// New builds a Metrics with its own registry, including Go runtime and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		parseDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "parse_duration_seconds",
				Help:      "Duration of script parses",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"source"},
		),
		linesParsed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lines_parsed_total",
				Help:      "Input lines submitted for parsing, blank lines included",
			},
			[]string{"source"},
		),
		blocksEmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "blocks_emitted_total",
				Help:      "Blocks produced by parses",
			},
			[]string{"source"},
		),
		languageBlocks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "language_blocks_total",
				Help:      "Blocks carrying text in each language",
			},
			[]string{"language"},
		),
		contractErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "contract_errors_total",
				Help:      "Inputs rejected before parsing",
			},
			[]string{"source"},
		),
		archiveErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "archive_errors_total",
			Help:      "Parse runs that could not be archived",
		}),
	}
}

// Parse describes one completed parse for ObserveParse.
type Parse struct {
	Source   string
	Lines    int
	Blocks   int
	Duration time.Duration
	// BlockLanguages holds each block's languages; one count per block and language.
	BlockLanguages [][]string
}

// ObserveParse records a completed parse.
func (m *Metrics) ObserveParse(p Parse) {
	if m == nil {
		return
	}
	m.parseDuration.WithLabelValues(p.Source).Observe(p.Duration.Seconds())
	m.linesParsed.WithLabelValues(p.Source).Add(float64(p.Lines))
	m.blocksEmitted.WithLabelValues(p.Source).Add(float64(p.Blocks))
	for _, languages := range p.BlockLanguages {
		for _, lang := range languages {
			m.languageBlocks.WithLabelValues(lang).Inc()
		}
	}
}

// ObserveRequest counts an HTTP response.
func (m *Metrics) ObserveRequest(route string, code int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// ContractError counts an input rejected before parsing.
func (m *Metrics) ContractError(source string) {
	if m == nil {
		return
	}
	m.contractErrors.WithLabelValues(source).Inc()
}

// ArchiveFailure counts a parse run that was served but not archived.
func (m *Metrics) ArchiveFailure() {
	if m == nil {
		return
	}
	m.archiveErrors.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for additional collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}
