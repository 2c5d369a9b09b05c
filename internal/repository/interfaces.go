package repository

import (
	"github.com/baharkarakas/library-backend/internal/models"
)

// Lists return records in insertion order.

type Users interface {
	Create(u models.User) (models.User, error)
	GetByID(id string) (models.User, error)
	List() ([]models.User, error)
	Update(u models.User) error
	Delete(id string) error
}

type Books interface {
	Create(b models.Book) (models.Book, error)
	GetByISBN(isbn string) (models.Book, error)
	List() ([]models.Book, error)
	Update(b models.Book) error
	Delete(isbn string) error
}

type Loans interface {
	Create(l models.Loan) (models.Loan, error)
	GetByID(id string) (models.Loan, error)
	List() ([]models.Loan, error)
	Update(l models.Loan) error
	// Delete exists only so a half-applied loan can be compensated; loans are never removed otherwise.
	Delete(id string) error
}

type AuditLogs interface {
	Create(l models.AuditLog) error
	List() ([]models.AuditLog, error)
}
