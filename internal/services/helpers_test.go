package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/library-backend/internal/logger"
	"github.com/baharkarakas/library-backend/internal/models"
	"github.com/baharkarakas/library-backend/internal/repository/memory"
	"github.com/baharkarakas/library-backend/internal/services"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	repos   memory.Repositories
	clock   *fakeClock
	users   *services.UserService
	books   *services.CatalogService
	loans   *services.LoanService
	reports *services.ReportService

	// stock right after each book was added
	initialStock map[string]int
}

func newFixture(t *testing.T, extra ...services.Option) *fixture {
	t.Helper()

	clock := &fakeClock{t: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}
	opts := append([]services.Option{
		services.WithClock(clock.Now),
		services.WithLogger(logger.Discard()),
	}, extra...)

	repos := memory.NewRepositories()
	users := services.NewUserService(repos.Users, opts...)
	books := services.NewCatalogService(repos.Books, opts...)
	loans := services.NewLoanService(repos.Loans, repos.AuditLogs, users, books, opts...)

	return &fixture{
		repos:        repos,
		clock:        clock,
		users:        users,
		books:        books,
		loans:        loans,
		reports:      services.NewReportService(users, books, loans, opts...),
		initialStock: make(map[string]int),
	}
}

func (f *fixture) givenUser(t *testing.T, id string) models.User {
	t.Helper()

	u, err := f.users.Register(services.UserInput{ID: id, Name: "Reader " + id, Type: "student"})
	require.NoError(t, err, "seed user %s", id)

	return u
}

func (f *fixture) givenBook(t *testing.T, isbn string, stock int) models.Book {
	t.Helper()

	b, err := f.books.Add(services.BookInput{ISBN: isbn, Title: "Title " + isbn, Author: "Author " + isbn, Stock: stock})
	require.NoError(t, err, "seed book %s", isbn)
	f.initialStock[isbn] = stock

	return b
}

func (f *fixture) givenLoan(t *testing.T, userID, bookID string) models.Loan {
	t.Helper()

	l, err := f.loans.CreateLoan(userID, bookID, 7)
	require.NoError(t, err, "seed loan %s/%s", userID, bookID)

	return l
}

func (f *fixture) stock(t *testing.T, isbn string) int {
	t.Helper()

	b, err := f.books.GetBook(isbn)
	require.NoError(t, err)

	return b.Stock
}

func (f *fixture) activeLoans(t *testing.T, userID string) int {
	t.Helper()

	u, err := f.users.GetUser(userID)
	require.NoError(t, err)

	return u.ActiveLoans
}

// assertInvariants checks the counter mirror and stock conservation for every user and book.
func (f *fixture) assertInvariants(t *testing.T) {
	t.Helper()

	active, err := f.loans.ListActive()
	require.NoError(t, err)

	perUser := map[string]int{}
	perBook := map[string]int{}
	for _, l := range active {
		perUser[l.UserID]++
		perBook[l.BookID]++
	}

	users, err := f.users.ListUsers()
	require.NoError(t, err)
	for _, u := range users {
		assert.Equal(t, perUser[u.ID], u.ActiveLoans, "active-loan counter of %s", u.ID)
	}

	books, err := f.books.ListBooks()
	require.NoError(t, err)
	for _, b := range books {
		assert.GreaterOrEqual(t, b.Stock, 0, "stock of %s", b.ISBN)
		assert.Equal(t, f.initialStock[b.ISBN], b.Stock+perBook[b.ISBN], "stock conservation of %s", b.ISBN)
	}
}

func loanIDs(loans []models.Loan) []string {
	out := make([]string, 0, len(loans))
	for _, l := range loans {
		out = append(out, l.ID)
	}
	return out
}
