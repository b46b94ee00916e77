package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reportingStructureSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "employee_directory",
		Subsystem: "reporting",
		Name:      "structure_reports",
		Help:      "Number of direct and indirect reports per computed reporting structure.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
	})

	compensationLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "employee_directory",
		Subsystem: "compensation",
		Name:      "lookups_total",
		Help:      "Total number of effective compensation lookups broken down by result.",
	}, []string{"result"})
)

func recordCompensationLookup(found bool) {
	result := "not_found"
	if found {
		result = "found"
	}
	compensationLookups.WithLabelValues(result).Inc()
}
