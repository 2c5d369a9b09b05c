package models

import (
	"strings"
	"time"

	"github.com/baharkarakas/library-backend/internal/errs"
	"github.com/baharkarakas/library-backend/internal/validate"
)

type UserType string

const (
	UserStudent UserType = "student"
	UserStaff   UserType = "staff"
	UserFaculty UserType = "faculty"
)

var userTypes = labelSet[UserType]{
	{UserStudent, "Student"},
	{UserStaff, "Staff"},
	{UserFaculty, "Faculty"},
}

func ParseUserType(s string) (UserType, error) { return userTypes.parse("type", s) }

func (t UserType) Label() string                { return userTypes.label(t) }
func (t UserType) Valid() bool                  { return userTypes.valid(t) }
func (t UserType) MarshalJSON() ([]byte, error) { return marshalLabel(t.Label()) }

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserBlocked  UserStatus = "blocked"
	UserInactive UserStatus = "inactive"
)

var userStatuses = labelSet[UserStatus]{
	{UserActive, "Active"},
	{UserBlocked, "Blocked"},
	{UserInactive, "Inactive"},
}

func ParseUserStatus(s string) (UserStatus, error) { return userStatuses.parse("status", s) }

func (s UserStatus) Label() string                { return userStatuses.label(s) }
func (s UserStatus) Valid() bool                  { return userStatuses.valid(s) }
func (s UserStatus) MarshalJSON() ([]byte, error) { return marshalLabel(s.Label()) }

const (
	userNameMin = 3
	userNameMax = 100
)

// User is a library member keyed by registration number.
type User struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        UserType   `json:"type"`
	Status      UserStatus `json:"status"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	ActiveLoans int        `json:"active_loans"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (u *User) Validate() error {
	u.ID = strings.TrimSpace(u.ID)
	u.Name = strings.TrimSpace(u.Name)
	if u.Status == "" {
		u.Status = UserActive
	}
	fields := validate.Collect(
		validate.Required("id", u.ID),
		validate.Length("name", u.Name, userNameMin, userNameMax),
		validate.Email("email", u.Email),
		validate.MinInt("active_loans", int64(u.ActiveLoans), 0),
	)
	if !u.Type.Valid() {
		fields = append(fields, validate.ErrField{Field: "type", Msg: "must be one of student, staff, faculty"})
	}
	if !u.Status.Valid() {
		fields = append(fields, validate.ErrField{Field: "status", Msg: "must be one of active, blocked, inactive"})
	}
	if len(fields) > 0 {
		return errs.Wrap(errs.ErrValidation, fields)
	}
	return nil
}
