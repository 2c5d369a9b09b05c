package main

import (
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/baharkarakas/library-backend/internal/codec"
	"github.com/baharkarakas/library-backend/internal/config"
	"github.com/baharkarakas/library-backend/internal/logger"
	"github.com/baharkarakas/library-backend/internal/metrics"
	"github.com/baharkarakas/library-backend/internal/models"
	"github.com/baharkarakas/library-backend/internal/repository/memory"
	"github.com/baharkarakas/library-backend/internal/services"
	"github.com/baharkarakas/library-backend/internal/worker"
)

type reportSet struct {
	MostBorrowedBooks []models.BookRanking     `json:"most_borrowed_books"`
	MostActiveUsers   []models.UserRanking     `json:"most_active_users"`
	ActiveLoans       []models.ActiveLoanRow   `json:"active_loans"`
	Collection        models.CollectionSummary `json:"collection_summary"`
	Users             models.UserSummary       `json:"user_summary"`
}

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env, os.Stderr)
	slog.SetDefault(log)
	metrics.Init()

	opts := []services.Option{
		services.WithLogger(log),
		services.WithDefaultLoanDays(cfg.LoanDays),
		services.WithReportLimit(cfg.ReportLimit),
	}
	repos := memory.NewRepositories()
	userSvc := services.NewUserService(repos.Users, opts...)
	catalogSvc := services.NewCatalogService(repos.Books, opts...)
	loanSvc := services.NewLoanService(repos.Loans, repos.AuditLogs, userSvc, catalogSvc, opts...)
	reportSvc := services.NewReportService(userSvc, catalogSvc, loanSvc, opts...)

	if err := seed(userSvc, catalogSvc, loanSvc, log); err != nil {
		log.Error("seed", "err", err)
		os.Exit(1)
	}

	var out reportSet
	errList := worker.Run(4,
		func() (err error) {
			out.MostBorrowedBooks, err = reportSvc.MostBorrowedBooks(0)
			return
		},
		func() (err error) {
			out.MostActiveUsers, err = reportSvc.MostActiveUsers(0)
			return
		},
		func() (err error) {
			out.ActiveLoans, err = reportSvc.ActiveLoansReport()
			return
		},
		func() (err error) {
			out.Collection, err = reportSvc.CollectionSummary()
			return
		},
		func() (err error) {
			out.Users, err = reportSvc.UserSummary()
			return
		},
	)
	for _, err := range errList {
		if err != nil {
			log.Error("report", "err", err)
			os.Exit(1)
		}
	}

	if err := codec.Encode(os.Stdout, out); err != nil {
		log.Error("encode reports", "err", err)
		os.Exit(1)
	}
	logMetrics(log)
}

func seed(users *services.UserService, books *services.CatalogService, loans *services.LoanService, log *slog.Logger) error {
	for _, in := range []services.UserInput{
		{ID: "2026001", Name: "Ana Lima", Type: "student", Email: "ana.lima@uni.edu"},
		{ID: "2026002", Name: "Bruno Costa", Type: "faculty"},
		{ID: "2026003", Name: "Carla Dias", Type: "staff", Phone: "+55 11 5555-0103"},
	} {
		if _, err := users.Register(in); err != nil {
			return err
		}
	}
	for _, in := range []services.BookInput{
		{ISBN: "978-85-359-0277-1", Title: "Dom Casmurro", Author: "Machado de Assis", Stock: 2},
		{ISBN: "978-85-08-13316-9", Title: "Vidas Secas", Author: "Graciliano Ramos", Stock: 1},
		{ISBN: "978-85-01-04120-7", Title: "O Cortiço", Author: "Aluísio Azevedo", Stock: 3},
	} {
		if _, err := books.Add(in); err != nil {
			return err
		}
	}

	for _, p := range [][2]string{
		{"2026001", "978-85-359-0277-1"},
		{"2026002", "978-85-359-0277-1"},
		{"2026002", "978-85-08-13316-9"},
		{"2026003", "978-85-01-04120-7"},
	} {
		if _, err := loans.CreateLoan(p[0], p[1], 0); err != nil {
			return err
		}
	}
	if _, err := loans.ReturnLoan("EMP-00004"); err != nil {
		return err
	}

	if _, err := users.Block("2026003"); err != nil {
		return err
	}
	if _, err := loans.CreateLoan("2026003", "978-85-01-04120-7", 0); err != nil {
		log.Info("loan refused", "user_id", "2026003", "err", err)
	}
	return nil
}

func logMetrics(log *slog.Logger) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		log.Warn("gather metrics", "err", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			attrs := []any{"name", mf.GetName()}
			for _, lp := range m.GetLabel() {
				attrs = append(attrs, lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				attrs = append(attrs, "value", m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				attrs = append(attrs, "value", m.GetGauge().GetValue())
			default:
				continue
			}
			log.Info("metric", attrs...)
		}
	}
}
