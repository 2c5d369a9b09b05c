package models

import (
	"math"
	"time"
)

type LoanStatus string

const (
	LoanActive   LoanStatus = "active"
	LoanReturned LoanStatus = "returned"
	// LoanOverdue is never assigned by the coordinator; reports derive lateness from DaysRemaining.
	LoanOverdue LoanStatus = "overdue"
)

var loanStatuses = labelSet[LoanStatus]{
	{LoanActive, "Active"},
	{LoanReturned, "Returned"},
	{LoanOverdue, "Overdue"},
}

func ParseLoanStatus(s string) (LoanStatus, error) { return loanStatuses.parse("status", s) }

func (s LoanStatus) Label() string                { return loanStatuses.label(s) }
func (s LoanStatus) Valid() bool                  { return loanStatuses.valid(s) }
func (s LoanStatus) MarshalJSON() ([]byte, error) { return marshalLabel(s.Label()) }

type Loan struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	BookID     string     `json:"book_id"`
	LoanedAt   time.Time  `json:"loaned_at"`
	DueAt      time.Time  `json:"due_at"`
	ReturnedAt *time.Time `json:"returned_at"`
	Status     LoanStatus `json:"status"`
}

func (l Loan) IsActive() bool { return l.Status == LoanActive }

const day = 24 * time.Hour

// DaysRemaining is the whole number of days until DueAt, rounded toward negative infinity.
// A loan due in 30 minutes has 0 days left; one due 30 minutes ago has -1.
func (l Loan) DaysRemaining(now time.Time) int {
	d := l.DueAt.Sub(now)
	if d == math.MaxInt64 || d == math.MinInt64 {
		// Sub saturates past ~292 years; fall back to whole seconds.
		return int(math.Floor(float64(l.DueAt.Unix()-now.Unix()) / 86400))
	}
	days := int(d / day)
	if d%day < 0 {
		days--
	}
	return days
}
