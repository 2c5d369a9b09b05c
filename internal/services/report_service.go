package services

import (
	"cmp"
	"slices"

	"github.com/baharkarakas/library-backend/internal/errs"
	"github.com/baharkarakas/library-backend/internal/metrics"
	"github.com/baharkarakas/library-backend/internal/models"
)

type UserSource interface {
	GetUser(id string) (models.User, error)
	ListUsers() ([]models.User, error)
}

type BookSource interface {
	GetBook(isbn string) (models.Book, error)
	ListBooks() ([]models.Book, error)
}

type LoanSource interface {
	List() ([]models.Loan, error)
	ListActive() ([]models.Loan, error)
}

// ReportService only reads. Rows that point at a user or book deleted after the loan was
// made are left out of the report instead of failing it; any other error is returned.
type ReportService struct {
	users UserSource
	books BookSource
	loans LoanSource
	settings
}

func NewReportService(u UserSource, b BookSource, l LoanSource, opts ...Option) *ReportService {
	return &ReportService{users: u, books: b, loans: l, settings: newSettings(opts)}
}

const (
	reportMostBorrowed = "most_borrowed_books"
	reportMostActive   = "most_active_users"
	reportActiveLoans  = "active_loans"
	reportCollection   = "collection_summary"
	reportUsers        = "user_summary"
)

type tally struct {
	key   string
	count int
}

// rank counts loans per key in first-seen order, then sorts stably by count, highest first,
// so ties keep the order in which keys first appeared.
func rank(loans []models.Loan, key func(models.Loan) string) []tally {
	idx := make(map[string]int)
	var out []tally
	for _, l := range loans {
		k := key(l)
		if i, ok := idx[k]; ok {
			out[i].count++
			continue
		}
		idx[k] = len(out)
		out = append(out, tally{key: k, count: 1})
	}
	slices.SortStableFunc(out, func(a, b tally) int { return cmp.Compare(b.count, a.count) })
	return out
}

func (s *ReportService) limitOrDefault(limit int) int {
	if limit <= 0 {
		return s.reportLimit
	}
	return limit
}

func (s *ReportService) skip(report string, err error, args ...any) error {
	if !errs.IsNotFound(err) {
		return err
	}
	metrics.ReportRowsSkipped.WithLabelValues(report).Inc()
	s.log.Debug("report row skipped", append([]any{"report", report, "err", err}, args...)...)
	return nil
}

// MostBorrowedBooks ranks books by loans ever made, returned ones included. A limit of zero or
// less means the configured default (10 unless WithReportLimit says otherwise), not an empty ranking.
func (s *ReportService) MostBorrowedBooks(limit int) ([]models.BookRanking, error) {
	loans, err := s.loans.List()
	if err != nil {
		return nil, err
	}
	ranked := rank(loans, func(l models.Loan) string { return l.BookID })
	if n := s.limitOrDefault(limit); len(ranked) > n {
		ranked = ranked[:n]
	}

	out := make([]models.BookRanking, 0, len(ranked))
	for _, t := range ranked {
		b, err := s.books.GetBook(t.key)
		if err != nil {
			if err := s.skip(reportMostBorrowed, err, "isbn", t.key); err != nil {
				return nil, err
			}
			continue
		}
		out = append(out, models.BookRanking{ISBN: t.key, Title: b.Title, Author: b.Author, LoanCount: t.count})
	}
	metrics.ReportsTotal.WithLabelValues(reportMostBorrowed).Inc()
	return out, nil
}

// MostActiveUsers ranks users like MostBorrowedBooks ranks books; the same limit rule applies.
func (s *ReportService) MostActiveUsers(limit int) ([]models.UserRanking, error) {
	loans, err := s.loans.List()
	if err != nil {
		return nil, err
	}
	ranked := rank(loans, func(l models.Loan) string { return l.UserID })
	if n := s.limitOrDefault(limit); len(ranked) > n {
		ranked = ranked[:n]
	}

	out := make([]models.UserRanking, 0, len(ranked))
	for _, t := range ranked {
		u, err := s.users.GetUser(t.key)
		if err != nil {
			if err := s.skip(reportMostActive, err, "user_id", t.key); err != nil {
				return nil, err
			}
			continue
		}
		out = append(out, models.UserRanking{UserID: t.key, Name: u.Name, Type: u.Type, LoanCount: t.count})
	}
	metrics.ReportsTotal.WithLabelValues(reportMostActive).Inc()
	return out, nil
}

func (s *ReportService) ActiveLoansReport() ([]models.ActiveLoanRow, error) {
	loans, err := s.loans.ListActive()
	if err != nil {
		return nil, err
	}
	now := s.now()

	out := make([]models.ActiveLoanRow, 0, len(loans))
	for _, l := range loans {
		u, err := s.users.GetUser(l.UserID)
		if err != nil {
			if err := s.skip(reportActiveLoans, err, "loan_id", l.ID); err != nil {
				return nil, err
			}
			continue
		}
		b, err := s.books.GetBook(l.BookID)
		if err != nil {
			if err := s.skip(reportActiveLoans, err, "loan_id", l.ID); err != nil {
				return nil, err
			}
			continue
		}
		days := l.DaysRemaining(now)
		out = append(out, models.ActiveLoanRow{
			LoanID:        l.ID,
			UserName:      u.Name,
			BookTitle:     b.Title,
			LoanedAt:      l.LoanedAt,
			DueAt:         l.DueAt,
			DaysRemaining: days,
			Overdue:       days < 0,
		})
	}
	metrics.ReportsTotal.WithLabelValues(reportActiveLoans).Inc()
	return out, nil
}

func (s *ReportService) CollectionSummary() (models.CollectionSummary, error) {
	books, err := s.books.ListBooks()
	if err != nil {
		return models.CollectionSummary{}, err
	}
	sum := models.CollectionSummary{TotalTitles: len(books), GeneratedAt: s.now()}
	for _, b := range books {
		sum.TotalCopiesAvailable += b.Stock
		if b.Stock == 0 {
			sum.UnavailableTitles++
		}
	}
	metrics.ReportsTotal.WithLabelValues(reportCollection).Inc()
	return sum, nil
}

func (s *ReportService) UserSummary() (models.UserSummary, error) {
	users, err := s.users.ListUsers()
	if err != nil {
		return models.UserSummary{}, err
	}
	sum := models.UserSummary{TotalUsers: len(users), GeneratedAt: s.now()}
	for _, u := range users {
		switch u.Status {
		case models.UserActive:
			sum.ActiveUsers++
		case models.UserBlocked:
			sum.BlockedUsers++
		}
	}
	metrics.ReportsTotal.WithLabelValues(reportUsers).Inc()
	return sum, nil
}
