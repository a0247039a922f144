// Package lexmetrics counts lexing activity in Prometheus form. It keeps its
// own registry so a batch run can dump exactly its metrics to a node
// exporter textfile.
package lexmetrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aledsdavies/frontc/runtime/lexcache"
	"github.com/aledsdavies/frontc/runtime/lexer"
)

const (
	namespace = "frontc"
	subsystem = "lexer"
)

// Collector accumulates per-file lexing metrics.
type Collector struct {
	registry *prometheus.Registry

	files  *prometheus.CounterVec
	tokens *prometheus.CounterVec
	bytes  prometheus.Counter
	lines  prometheus.Counter
}

// New creates a collector. When cache is non-nil its hit, miss and size
// counters are exported too.
func New(cache *lexcache.Cache) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "files_total",
			Help:      "Source files lexed, by result.",
		}, []string{"result"}),
		tokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tokens_total",
			Help:      "Tokens produced, by kind. EOF is not counted.",
		}, []string{"kind"}),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "source_bytes_total",
			Help:      "Source bytes lexed.",
		}),
		lines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "source_lines_total",
			Help:      "Source lines lexed.",
		}),
	}
	c.registry.MustRegister(c.files, c.tokens, c.bytes, c.lines)

	if cache != nil {
		c.registry.MustRegister(
			prometheus.NewCounterFunc(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "lexcache",
				Name:      "hits_total",
				Help:      "Lexing cache hits.",
			}, func() float64 { return float64(cache.Stats().Hits) }),
			prometheus.NewCounterFunc(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "lexcache",
				Name:      "misses_total",
				Help:      "Lexing cache misses.",
			}, func() float64 { return float64(cache.Stats().Misses) }),
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "lexcache",
				Name:      "entries",
				Help:      "Results currently cached.",
			}, func() float64 { return float64(cache.Len()) }),
		)
	}
	return c
}

// Observe records one lexed file.
func (c *Collector) Observe(src []byte, result *lexer.Result) {
	if result.Err != nil {
		c.files.WithLabelValues("error").Inc()
	} else {
		c.files.WithLabelValues("ok").Inc()
	}
	c.bytes.Add(float64(len(src)))
	c.lines.Add(float64(len(result.LineOffsets)))

	for _, tok := range result.Tokens {
		if tok.ID == lexer.EOF {
			continue
		}
		c.tokens.WithLabelValues(tok.ID.String()).Inc()
	}
}

// Gatherer exposes the collector's registry.
func (c *Collector) Gatherer() prometheus.Gatherer { return c.registry }

// WriteTextfile atomically writes every metric to path in the text
// exposition format.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
