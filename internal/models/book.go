package models

import (
	"strings"
	"time"

	"github.com/baharkarakas/library-backend/internal/errs"
	"github.com/baharkarakas/library-backend/internal/validate"
)

type BookStatus string

const (
	BookAvailable BookStatus = "available"
	BookLoaned    BookStatus = "loaned"
	BookReserved  BookStatus = "reserved"
)

var bookStatuses = labelSet[BookStatus]{
	{BookAvailable, "Available"},
	{BookLoaned, "Loaned"},
	{BookReserved, "Reserved"},
}

func ParseBookStatus(s string) (BookStatus, error) { return bookStatuses.parse("status", s) }

func (s BookStatus) Label() string                { return bookStatuses.label(s) }
func (s BookStatus) Valid() bool                  { return bookStatuses.valid(s) }
func (s BookStatus) MarshalJSON() ([]byte, error) { return marshalLabel(s.Label()) }

// Book is a catalog title keyed by ISBN. Stock counts the copies on the shelf.
type Book struct {
	ISBN      string     `json:"isbn"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	Stock     int        `json:"stock"`
	Status    BookStatus `json:"status"`
	Publisher string     `json:"publisher,omitempty"`
	Year      *int       `json:"year,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (b *Book) Available() bool { return b.Stock > 0 }

func (b *Book) Validate() error {
	b.ISBN = strings.TrimSpace(b.ISBN)
	if b.Status == "" {
		b.Status = BookAvailable
	}
	fields := validate.Collect(
		validate.Required("isbn", b.ISBN),
		validate.Required("title", b.Title),
		validate.Required("author", b.Author),
		validate.MinInt("stock", int64(b.Stock), 0),
	)
	if b.Year != nil {
		if f := validate.MinInt("year", int64(*b.Year), 0); f != nil {
			fields = append(fields, *f)
		}
	}
	if !b.Status.Valid() {
		fields = append(fields, validate.ErrField{Field: "status", Msg: "must be one of available, loaned, reserved"})
	}
	if len(fields) > 0 {
		return errs.Wrap(errs.ErrValidation, fields)
	}
	return nil
}
