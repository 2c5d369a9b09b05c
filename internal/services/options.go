package services

import (
	"log/slog"
	"time"
)

const (
	defaultLoanDays    = 7
	defaultReportLimit = 10
)

type Clock func() time.Time

// settings are shared by every service constructor in this package.
type settings struct {
	now         Clock
	log         *slog.Logger
	loanDays    int
	reportLimit int
}

// Option configures a service.
type Option func(*settings)

func WithClock(c Clock) Option {
	return func(s *settings) {
		if c != nil {
			s.now = c
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

// WithDefaultLoanDays sets the loan period used when CreateLoan is called with zero days.
func WithDefaultLoanDays(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.loanDays = n
		}
	}
}

// WithReportLimit sets the ranking length used when a report is asked for a non-positive limit.
func WithReportLimit(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.reportLimit = n
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		now:         time.Now,
		log:         slog.Default(),
		loanDays:    defaultLoanDays,
		reportLimit: defaultReportLimit,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
