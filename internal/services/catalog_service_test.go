package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/library-backend/internal/errs"
	"github.com/baharkarakas/library-backend/internal/models"
	"github.com/baharkarakas/library-backend/internal/services"
)

func Test_CatalogService_Add(t *testing.T) {
	f := newFixture(t)
	year := 1881

	b, err := f.books.Add(services.BookInput{
		ISBN: "978-85-359-0277-1", Title: "Memórias Póstumas de Brás Cubas", Author: "Machado de Assis",
		Stock: 2, Publisher: "Garnier", Year: &year,
	})

	require.NoError(t, err)
	assert.Equal(t, models.BookAvailable, b.Status)
	assert.Equal(t, 2, b.Stock)
	require.NotNil(t, b.Year)
	assert.Equal(t, 1881, *b.Year)
}

func Test_CatalogService_Add_Rejects(t *testing.T) {
	f := newFixture(t)
	f.givenBook(t, "B1", 1)

	_, dup := f.books.Add(services.BookInput{ISBN: "B1", Title: "T", Author: "A"})
	_, neg := f.books.Add(services.BookInput{ISBN: "B2", Title: "T", Author: "A", Stock: -3})
	_, noTitle := f.books.Add(services.BookInput{ISBN: "B3", Author: "A"})

	assert.ErrorIs(t, dup, errs.ErrBookAlreadyExists)
	assert.ErrorIs(t, neg, errs.ErrValidation)
	assert.ErrorIs(t, noTitle, errs.ErrValidation)
}

func Test_CatalogService_Stock(t *testing.T) {
	f := newFixture(t)
	f.givenBook(t, "B1", 1)

	left, err := f.books.DecrementStock("B1")
	require.NoError(t, err)
	available, err := f.books.IsAvailable("B1")
	require.NoError(t, err)
	_, errEmpty := f.books.DecrementStock("B1")
	back, err := f.books.IncrementStock("B1")
	require.NoError(t, err)

	assert.Equal(t, 0, left)
	assert.False(t, available)
	assert.ErrorIs(t, errEmpty, errs.ErrBookUnavailable)
	assert.Equal(t, 1, back)
	_, err = f.books.IsAvailable("B404")
	assert.ErrorIs(t, err, errs.ErrBookNotFound)
}

func Test_CatalogService_UpdateAndStatus(t *testing.T) {
	f := newFixture(t)
	f.givenBook(t, "B1", 1)
	title := "New Title"

	b, err := f.books.Update("B1", services.BookUpdate{Title: &title})
	require.NoError(t, err)
	reserved, err := f.books.UpdateStatus("B1", "Reserved")
	require.NoError(t, err)
	_, err = f.books.UpdateStatus("B1", "burned")

	assert.Equal(t, title, b.Title)
	assert.Equal(t, models.BookReserved, reserved.Status)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func Test_CatalogService_ListByAuthor(t *testing.T) {
	f := newFixture(t)
	for _, in := range []services.BookInput{
		{ISBN: "B1", Title: "Dom Casmurro", Author: "Machado de Assis", Stock: 1},
		{ISBN: "B2", Title: "Iracema", Author: "José de Alencar", Stock: 1},
		{ISBN: "B3", Title: "Quincas Borba", Author: "MACHADO DE ASSIS", Stock: 1},
	} {
		_, err := f.books.Add(in)
		require.NoError(t, err)
	}

	books, err := f.books.ListByAuthor("machado de assis")

	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "B1", books[0].ISBN)
	assert.Equal(t, "B3", books[1].ISBN)
}

func Test_CatalogService_Delete(t *testing.T) {
	f := newFixture(t)
	f.givenBook(t, "B1", 1)

	require.NoError(t, f.books.Delete("B1"))

	assert.ErrorIs(t, f.books.Delete("B1"), errs.ErrBookNotFound)
}
