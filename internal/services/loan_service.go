package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/baharkarakas/library-backend/internal/codec"
	"github.com/baharkarakas/library-backend/internal/errs"
	"github.com/baharkarakas/library-backend/internal/metrics"
	"github.com/baharkarakas/library-backend/internal/models"
	repo "github.com/baharkarakas/library-backend/internal/repository"
	"github.com/baharkarakas/library-backend/internal/validate"
)

// UserDirectory is what the loan service needs from the user registry.
type UserDirectory interface {
	GetUser(id string) (models.User, error)
	IncrementActiveLoans(id string) error
	DecrementActiveLoans(id string) error
}

// BookInventory is what the loan service needs from the catalog.
type BookInventory interface {
	GetBook(isbn string) (models.Book, error)
	IsAvailable(isbn string) (bool, error)
	DecrementStock(isbn string) (int, error)
	IncrementStock(isbn string) (int, error)
}

const loanIDFormat = "EMP-%05d"

// LoanService owns the loan records and keeps user counters and book stock in step with them.
// It holds the registries without owning them.
type LoanService struct {
	loans repo.Loans
	audit repo.AuditLogs
	users UserDirectory
	books BookInventory

	// mu covers the whole check-then-mutate sequence, including seq.
	mu  sync.Mutex
	seq int
	settings
}

func NewLoanService(l repo.Loans, a repo.AuditLogs, u UserDirectory, b BookInventory, opts ...Option) *LoanService {
	return &LoanService{loans: l, audit: a, users: u, books: b, settings: newSettings(opts)}
}

// ----------------- Helpers -----------------

// record writes an audit entry whose details are the loan as rendered outside the process, plus extra.
func (s *LoanService) record(loan models.Loan, action string, extra map[string]any) {
	details, err := codec.ToRecord(loan)
	if err != nil {
		s.log.Warn("audit details", "loan_id", loan.ID, "err", err)
		details = map[string]any{}
	}
	for k, v := range extra {
		details[k] = v
	}
	if err := s.audit.Create(models.AuditLog{
		EntityType: "loan",
		EntityID:   loan.ID,
		Action:     action,
		Details:    details,
		CreatedAt:  s.now(),
	}); err != nil {
		s.log.Error("audit write failed", "loan_id", loan.ID, "action", action, "err", err)
	}
}

// undone logs a compensation step that could not be applied; state is left inconsistent.
func (s *LoanService) undone(loanID, step string, err error) {
	if err != nil {
		s.log.Error("compensation failed", "loan_id", loanID, "step", step, "err", err)
	}
}

func (s *LoanService) reject(op string, err error) error {
	code := "internal"
	var e *errs.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	metrics.LoansRejected.WithLabelValues(code).Inc()
	s.log.Debug("loan rejected", "op", op, "reason", code, "err", err)
	return err
}

func (s *LoanService) hasActiveLoan(userID, bookID string) (bool, error) {
	loans, err := s.loans.List()
	if err != nil {
		return false, err
	}
	for _, l := range loans {
		if l.UserID == userID && l.BookID == bookID && l.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

// ----------------- CREATE -----------------

// CreateLoan lends bookID to userID for loanDays days; zero means the configured default
// rather than a loan due at once.
// Every precondition is checked before anything is written. If a registry refuses a write
// afterwards, the steps already applied are undone and the id is handed back.
func (s *LoanService) CreateLoan(userID, bookID string, loanDays int) (models.Loan, error) {
	if loanDays < 0 {
		return models.Loan{}, s.reject("create", errs.Wrap(errs.ErrValidation,
			validate.Errs{{Field: "loan_days", Msg: "must be >= 0"}}))
	}
	if loanDays == 0 {
		loanDays = s.loanDays
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.users.GetUser(userID)
	if err != nil {
		return models.Loan{}, s.reject("create", err)
	}
	if user.Status == models.UserBlocked {
		return models.Loan{}, s.reject("create", errs.New(errs.ErrUserBlocked, "user %q is blocked, loan denied", userID))
	}
	if _, err := s.books.GetBook(bookID); err != nil {
		return models.Loan{}, s.reject("create", err)
	}
	ok, err := s.books.IsAvailable(bookID)
	if err != nil {
		return models.Loan{}, s.reject("create", err)
	}
	if !ok {
		return models.Loan{}, s.reject("create", errs.New(errs.ErrBookUnavailable, "book %q unavailable, stock is zero", bookID))
	}
	dup, err := s.hasActiveLoan(userID, bookID)
	if err != nil {
		return models.Loan{}, s.reject("create", err)
	}
	if dup {
		return models.Loan{}, s.reject("create", errs.New(errs.ErrLoanAlreadyExists, "book %q already lent to user %q", bookID, userID))
	}

	s.seq++
	now := s.now()
	loan := models.Loan{
		ID:       fmt.Sprintf(loanIDFormat, s.seq),
		UserID:   userID,
		BookID:   bookID,
		LoanedAt: now,
		DueAt:    now.AddDate(0, 0, loanDays),
		Status:   models.LoanActive,
	}
	if _, err := s.loans.Create(loan); err != nil {
		s.seq--
		return models.Loan{}, s.reject("create", err)
	}

	// 1) stock
	if _, err := s.books.DecrementStock(bookID); err != nil {
		s.undone(loan.ID, "delete loan", s.loans.Delete(loan.ID))
		s.seq--
		return models.Loan{}, s.reject("create", err)
	}

	// 2) user counter
	if err := s.users.IncrementActiveLoans(userID); err != nil {
		// rollback
		_, undoErr := s.books.IncrementStock(bookID)
		s.undone(loan.ID, "restock", undoErr)
		s.undone(loan.ID, "delete loan", s.loans.Delete(loan.ID))
		s.seq--
		return models.Loan{}, s.reject("create", err)
	}

	s.record(loan, "created", map[string]any{"loan_days": loanDays})
	metrics.LoansTotal.WithLabelValues("created").Inc()
	metrics.ActiveLoans.Inc()
	s.log.Info("loan created", "loan_id", loan.ID, "user_id", userID, "book_id", bookID, "due_at", loan.DueAt)
	return loan, nil
}

// ----------------- RETURN -----------------

// ReturnLoan closes an active loan. A user or book removed while the loan was out does not
// keep the loan open: the loan is still closed and returned, together with a NotFound error
// naming the side that could not be updated.
func (s *LoanService) ReturnLoan(loanID string) (models.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loan, err := s.loans.GetByID(loanID)
	if err != nil {
		return models.Loan{}, s.reject("return", err)
	}
	if !loan.IsActive() {
		return models.Loan{}, s.reject("return", errs.New(errs.ErrLoanNotActive, "loan %q is not active", loanID))
	}

	prev := loan
	now := s.now()
	loan.ReturnedAt = &now
	loan.Status = models.LoanReturned
	if err := s.loans.Update(loan); err != nil {
		return models.Loan{}, s.reject("return", err)
	}

	var missing []error

	// 1) stock
	restocked := true
	if _, err := s.books.IncrementStock(loan.BookID); err != nil {
		if !errs.IsNotFound(err) {
			s.undone(loanID, "reopen loan", s.loans.Update(prev))
			return models.Loan{}, s.reject("return", err)
		}
		restocked = false
		missing = append(missing, errs.New(errs.ErrBookNotFound, "loan %q closed, book %q no longer in catalog", loanID, loan.BookID))
		s.log.Warn("returned book no longer in catalog", "loan_id", loanID, "book_id", loan.BookID)
	}

	// 2) user counter
	if err := s.users.DecrementActiveLoans(loan.UserID); err != nil {
		if !errs.IsNotFound(err) {
			// rollback
			if restocked {
				_, undoErr := s.books.DecrementStock(loan.BookID)
				s.undone(loanID, "unstock", undoErr)
			}
			s.undone(loanID, "reopen loan", s.loans.Update(prev))
			return models.Loan{}, s.reject("return", err)
		}
		missing = append(missing, errs.New(errs.ErrUserNotFound, "loan %q closed, user %q no longer registered", loanID, loan.UserID))
		s.log.Warn("returning user no longer registered", "loan_id", loanID, "user_id", loan.UserID)
	}

	s.record(loan, "returned", map[string]any{"restocked": restocked})
	metrics.LoansTotal.WithLabelValues("returned").Inc()
	metrics.ActiveLoans.Dec()
	s.log.Info("loan returned", "loan_id", loan.ID, "user_id", loan.UserID, "book_id", loan.BookID)
	return loan, errors.Join(missing...)
}

// ----------------- Queries -----------------

func (s *LoanService) Get(id string) (models.Loan, error) { return s.loans.GetByID(id) }

func (s *LoanService) List() ([]models.Loan, error) { return s.loans.List() }

func (s *LoanService) ListActive() ([]models.Loan, error) {
	return s.filter(func(l models.Loan) bool { return l.IsActive() })
}

func (s *LoanService) ListByUser(userID string) ([]models.Loan, error) {
	return s.filter(func(l models.Loan) bool { return l.UserID == userID })
}

func (s *LoanService) ListByBook(bookID string) ([]models.Loan, error) {
	return s.filter(func(l models.Loan) bool { return l.BookID == bookID })
}

func (s *LoanService) filter(keep func(models.Loan) bool) ([]models.Loan, error) {
	loans, err := s.loans.List()
	if err != nil {
		return nil, err
	}
	var out []models.Loan
	for _, l := range loans {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out, nil
}

// AuditTrail returns the audit entries in the order they were written.
func (s *LoanService) AuditTrail() ([]models.AuditLog, error) { return s.audit.List() }
