package models_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/library-backend/internal/errs"
	"github.com/baharkarakas/library-backend/internal/models"
	"github.com/baharkarakas/library-backend/internal/validate"
)

func Test_ParseUserType_AcceptsValueOrLabel(t *testing.T) {
	for _, in := range []string{"student", "STUDENT", " Student "} {
		got, err := models.ParseUserType(in)
		require.NoError(t, err, in)
		assert.Equal(t, models.UserStudent, got)
	}

	_, err := models.ParseUserType("janitor")
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func Test_ParseStatuses_RejectUnknownLabels(t *testing.T) {
	_, err := models.ParseUserStatus("suspended")
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = models.ParseBookStatus("lost")
	assert.ErrorIs(t, err, errs.ErrValidation)

	got, err := models.ParseLoanStatus("Returned")
	require.NoError(t, err)
	assert.Equal(t, models.LoanReturned, got)
}

func Test_User_Validate(t *testing.T) {
	u := models.User{ID: " U1 ", Name: "Ana Lima", Type: models.UserStudent}
	require.NoError(t, u.Validate())
	assert.Equal(t, "U1", u.ID)
	assert.Equal(t, models.UserActive, u.Status, "status defaults to active")

	bad := models.User{ID: "", Name: "Al", Type: "janitor", Email: "no-at-sign"}
	err := bad.Validate()
	require.Error(t, err)

	var fields validate.Errs
	require.True(t, errors.As(err, &fields))
	assert.Equal(t, []string{"id", "name", "email", "type"}, fieldNames(fields))
}

func Test_User_Validate_NameUpperBound(t *testing.T) {
	u := models.User{ID: "U1", Name: strings.Repeat("a", 101), Type: models.UserStaff}

	assert.ErrorIs(t, u.Validate(), errs.ErrValidation)

	u.Name = strings.Repeat("a", 100)
	assert.NoError(t, u.Validate())
}

func Test_Book_Validate(t *testing.T) {
	b := models.Book{ISBN: "978-0", Title: "Dom Casmurro", Author: "Machado de Assis", Stock: 0}
	require.NoError(t, b.Validate())
	assert.Equal(t, models.BookAvailable, b.Status)
	assert.False(t, b.Available())

	neg := models.Book{ISBN: "978-1", Title: "T", Author: "A", Stock: -1}
	assert.ErrorIs(t, neg.Validate(), errs.ErrValidation)
}

func Test_Loan_DaysRemaining_FloorsTowardNegativeInfinity(t *testing.T) {
	now := time.Unix(0, 0).UTC()
	cases := []struct {
		due  time.Duration
		want int
	}{
		{7 * 24 * time.Hour, 7},
		{30 * time.Minute, 0},
		{-30 * time.Minute, -1},
		{-24 * time.Hour, -1},
		{-25 * time.Hour, -2},
	}
	for _, c := range cases {
		l := models.Loan{DueAt: now.Add(c.due)}
		assert.Equal(t, c.want, l.DaysRemaining(now), c.due.String())
	}
}

func Test_Loan_DaysRemaining_BeyondDurationRange(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	l := models.Loan{DueAt: now.AddDate(0, 0, 200000)}

	assert.Equal(t, 200000, l.DaysRemaining(now))
	assert.Equal(t, -200001, models.Loan{DueAt: now.AddDate(0, 0, -200000).Add(-time.Hour)}.DaysRemaining(now))
}

func fieldNames(fields validate.Errs) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Field)
	}
	return out
}
