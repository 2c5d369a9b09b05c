package memory

import (
	"github.com/baharkarakas/library-backend/internal/errs"
	"github.com/baharkarakas/library-backend/internal/models"
	"github.com/baharkarakas/library-backend/internal/repository"
)

type loansRepo struct{ store *ordered[models.Loan] }

func NewLoans() repository.Loans {
	return &loansRepo{store: newOrdered[models.Loan]()}
}

func (r *loansRepo) Create(l models.Loan) (models.Loan, error) {
	if !r.store.insert(l.ID, l) {
		// ids come from the coordinator's sequence, a clash means the sequence was rewound wrongly
		return models.Loan{}, errs.New(errs.ErrLoanIDTaken, "loan id %q already used", l.ID)
	}
	return l, nil
}

func (r *loansRepo) GetByID(id string) (models.Loan, error) {
	l, ok := r.store.get(id)
	if !ok {
		return models.Loan{}, errs.New(errs.ErrLoanNotFound, "loan %q not found", id)
	}
	return l, nil
}

func (r *loansRepo) List() ([]models.Loan, error) { return r.store.all(), nil }

func (r *loansRepo) Update(l models.Loan) error {
	if !r.store.replace(l.ID, l) {
		return errs.New(errs.ErrLoanNotFound, "loan %q not found", l.ID)
	}
	return nil
}

func (r *loansRepo) Delete(id string) error {
	if !r.store.remove(id) {
		return errs.New(errs.ErrLoanNotFound, "loan %q not found", id)
	}
	return nil
}
