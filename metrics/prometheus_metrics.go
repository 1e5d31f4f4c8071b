package metrics

import (
	"log"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements the Metrics interface using Prometheus as
// the backend. It stores mappings for the metric types the application
// records (Counter, Gauge) and their labeled vector counterparts.
type PrometheusMetrics struct {
	counters    map[string]prometheus.Counter
	counterVecs map[string]*prometheus.CounterVec
	gauges      map[string]prometheus.Gauge
	gaugeVecs   map[string]*prometheus.GaugeVec
}

// NewPrometheusMetrics creates and initializes a new PrometheusMetrics.
func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{
		counters:    make(map[string]prometheus.Counter),
		counterVecs: make(map[string]*prometheus.CounterVec),
		gauges:      make(map[string]prometheus.Gauge),
		gaugeVecs:   make(map[string]*prometheus.GaugeVec),
	}
}

// Register creates and registers a new metric in the Prometheus registry.
// Supported metric types are 'Counter' and 'Gauge'.
func (p *PrometheusMetrics) Register(name, metricType, help string) {
	switch metricType {
	case "Counter":
		counter := prometheus.NewCounter(prometheus.CounterOpts{
			Name: name,
			Help: help,
		})
		prometheus.MustRegister(counter)
		p.counters[name] = counter
	case "Gauge":
		gauge := prometheus.NewGauge(prometheus.GaugeOpts{
			Name: name,
			Help: help,
		})
		prometheus.MustRegister(gauge)
		p.gauges[name] = gauge
	default:
		log.Printf("Unsupported metric type: %s", metricType)
	}
}

// Record records a value for a previously registered metric. Counters are
// incremented by the value; gauges are set to it.
func (p *PrometheusMetrics) Record(name string, value float64) {
	if counter, ok := p.counters[name]; ok {
		counter.Add(value)
		return
	}
	if gauge, ok := p.gauges[name]; ok {
		gauge.Set(value)
		return
	}
	log.Printf("Metric not registered: %s", name)
}

// RegisterWithLabels creates and registers a new labeled metric.
func (p *PrometheusMetrics) RegisterWithLabels(name, metricType, help string, labels []string) {
	switch metricType {
	case "Counter":
		vec := prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: name,
			Help: help,
		}, labels)
		prometheus.MustRegister(vec)
		p.counterVecs[name] = vec
	case "Gauge":
		vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: name,
			Help: help,
		}, labels)
		prometheus.MustRegister(vec)
		p.gaugeVecs[name] = vec
	default:
		log.Printf("Unsupported metric type: %s", metricType)
	}
}

// RecordWithLabels records a value for a previously registered labeled
// metric, supplying the label values positionally.
func (p *PrometheusMetrics) RecordWithLabels(name string, value float64, labelValues ...string) {
	if vec, ok := p.counterVecs[name]; ok {
		vec.WithLabelValues(labelValues...).Add(value)
		return
	}
	if vec, ok := p.gaugeVecs[name]; ok {
		vec.WithLabelValues(labelValues...).Set(value)
		return
	}
	log.Printf("Labeled metric not registered: %s", name)
}
