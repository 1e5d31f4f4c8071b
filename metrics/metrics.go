// Package metrics provides an abstract interface for recording metrics
// within the application. The Metrics interface keeps the rest of the code
// independent of the backend; a Prometheus implementation is provided.
//
// Usage:
//
//	m := metrics.NewPrometheusMetrics()
//	m.Register("reports_generated_total", "Counter", "Total reports generated")
//	m.Record("reports_generated_total", 1)
//	m.RegisterWithLabels("report_failures_total", "Counter", "Report failures by stage", []string{"stage"})
//	m.RecordWithLabels("report_failures_total", 1, "source")
package metrics

type Metrics interface {
	Register(name, metricType, help string)
	Record(name string, value float64)
	RegisterWithLabels(name, metricType, help string, labels []string)
	RecordWithLabels(name string, value float64, labelValues ...string)
}
