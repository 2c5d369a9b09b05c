package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Loans
	LoansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_loans_total",
			Help: "Total successful loan operations",
		},
		[]string{"action"}, // created|returned
	)
	LoansRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_loans_rejected_total",
			Help: "Loan operations rejected by a business rule",
		},
		[]string{"reason"}, // error code
	)
	ActiveLoans = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "library_active_loans",
			Help: "Loans currently out",
		},
	)

	// Reports
	ReportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_reports_total",
			Help: "Reports generated",
		},
		[]string{"report"},
	)
	ReportRowsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_report_rows_skipped_total",
			Help: "Report rows dropped because a referenced user or book no longer exists",
		},
		[]string{"report"},
	)

	initOnce sync.Once
)

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(LoansTotal)
		prometheus.MustRegister(LoansRejected)
		prometheus.MustRegister(ActiveLoans)
		prometheus.MustRegister(ReportsTotal)
		prometheus.MustRegister(ReportRowsSkipped)
	})
}
