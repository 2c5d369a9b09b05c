package memory

import (
	"github.com/baharkarakas/library-backend/internal/errs"
	"github.com/baharkarakas/library-backend/internal/models"
	"github.com/baharkarakas/library-backend/internal/repository"
)

type booksRepo struct{ store *ordered[models.Book] }

func NewBooks() repository.Books {
	return &booksRepo{store: newOrdered[models.Book]()}
}

func (r *booksRepo) Create(b models.Book) (models.Book, error) {
	if !r.store.insert(b.ISBN, b) {
		return models.Book{}, errs.New(errs.ErrBookAlreadyExists, "book %q already exists", b.ISBN)
	}
	return b, nil
}

func (r *booksRepo) GetByISBN(isbn string) (models.Book, error) {
	b, ok := r.store.get(isbn)
	if !ok {
		return models.Book{}, errs.New(errs.ErrBookNotFound, "book %q not found", isbn)
	}
	return b, nil
}

func (r *booksRepo) List() ([]models.Book, error) { return r.store.all(), nil }

func (r *booksRepo) Update(b models.Book) error {
	if !r.store.replace(b.ISBN, b) {
		return errs.New(errs.ErrBookNotFound, "book %q not found", b.ISBN)
	}
	return nil
}

func (r *booksRepo) Delete(isbn string) error {
	if !r.store.remove(isbn) {
		return errs.New(errs.ErrBookNotFound, "book %q not found", isbn)
	}
	return nil
}
