package services

import (
	"strings"
	"sync"

	"github.com/baharkarakas/library-backend/internal/errs"
	"github.com/baharkarakas/library-backend/internal/models"
	repo "github.com/baharkarakas/library-backend/internal/repository"
)

type BookInput struct {
	ISBN      string
	Title     string
	Author    string
	Stock     int
	Publisher string
	Year      *int
}

// BookUpdate carries the fields to change; nil means keep. Stock is not editable here,
// it moves only through loans and returns.
type BookUpdate struct {
	Title     *string
	Author    *string
	Publisher *string
	Year      *int
}

type CatalogService struct {
	r  repo.Books
	mu sync.Mutex
	settings
}

func NewCatalogService(r repo.Books, opts ...Option) *CatalogService {
	return &CatalogService{r: r, settings: newSettings(opts)}
}

func (s *CatalogService) Add(in BookInput) (models.Book, error) {
	now := s.now()
	b := models.Book{
		ISBN:      in.ISBN,
		Title:     in.Title,
		Author:    in.Author,
		Stock:     in.Stock,
		Status:    models.BookAvailable,
		Publisher: in.Publisher,
		Year:      in.Year,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := b.Validate(); err != nil {
		return models.Book{}, err
	}
	b, err := s.r.Create(b)
	if err != nil {
		return models.Book{}, err
	}
	s.log.Info("book added", "isbn", b.ISBN, "stock", b.Stock)
	return b, nil
}

func (s *CatalogService) GetBook(isbn string) (models.Book, error) { return s.r.GetByISBN(isbn) }

func (s *CatalogService) ListBooks() ([]models.Book, error) { return s.r.List() }

// ListByAuthor matches the author name case-insensitively.
func (s *CatalogService) ListByAuthor(author string) ([]models.Book, error) {
	books, err := s.r.List()
	if err != nil {
		return nil, err
	}
	var out []models.Book
	for _, b := range books {
		if strings.EqualFold(b.Author, author) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *CatalogService) Update(isbn string, upd BookUpdate) (models.Book, error) {
	return s.modify(isbn, func(b *models.Book) error {
		if upd.Title != nil {
			b.Title = *upd.Title
		}
		if upd.Author != nil {
			b.Author = *upd.Author
		}
		if upd.Publisher != nil {
			b.Publisher = *upd.Publisher
		}
		if upd.Year != nil {
			y := *upd.Year
			b.Year = &y
		}
		return b.Validate()
	})
}

// Delete does not look at loans; reports skip rows for books removed while lent.
func (s *CatalogService) Delete(isbn string) error {
	if err := s.r.Delete(isbn); err != nil {
		return err
	}
	s.log.Info("book deleted", "isbn", isbn)
	return nil
}

func (s *CatalogService) UpdateStatus(isbn, status string) (models.Book, error) {
	st, err := models.ParseBookStatus(status)
	if err != nil {
		return models.Book{}, err
	}
	return s.modify(isbn, func(b *models.Book) error {
		b.Status = st
		return nil
	})
}

func (s *CatalogService) IsAvailable(isbn string) (bool, error) {
	b, err := s.r.GetByISBN(isbn)
	if err != nil {
		return false, err
	}
	return b.Available(), nil
}

func (s *CatalogService) DecrementStock(isbn string) (int, error) {
	b, err := s.modify(isbn, func(b *models.Book) error {
		if b.Stock <= 0 {
			return errs.New(errs.ErrBookUnavailable, "book %q has no copies left", isbn)
		}
		b.Stock--
		return nil
	})
	return b.Stock, err
}

func (s *CatalogService) IncrementStock(isbn string) (int, error) {
	b, err := s.modify(isbn, func(b *models.Book) error {
		b.Stock++
		return nil
	})
	return b.Stock, err
}

func (s *CatalogService) modify(isbn string, fn func(b *models.Book) error) (models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.r.GetByISBN(isbn)
	if err != nil {
		return models.Book{}, err
	}
	if err := fn(&b); err != nil {
		return models.Book{}, err
	}
	b.UpdatedAt = s.now()
	if err := s.r.Update(b); err != nil {
		return models.Book{}, err
	}
	return b, nil
}
