package memory

import (
	repo "github.com/baharkarakas/library-backend/internal/repository"
)

type Repositories struct {
	Users     repo.Users
	Books     repo.Books
	Loans     repo.Loans
	AuditLogs repo.AuditLogs
}

func NewRepositories() Repositories {
	return Repositories{
		Users:     NewUsers(),
		Books:     NewBooks(),
		Loans:     NewLoans(),
		AuditLogs: NewAuditLogs(),
	}
}
