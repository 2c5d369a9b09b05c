package services

import (
	"sync"

	"github.com/baharkarakas/library-backend/internal/errs"
	"github.com/baharkarakas/library-backend/internal/models"
	repo "github.com/baharkarakas/library-backend/internal/repository"
)

type UserInput struct {
	ID    string
	Name  string
	Type  string
	Email string
	Phone string
}

// UserUpdate carries the fields to change; nil means keep.
type UserUpdate struct {
	Name  *string
	Type  *string
	Email *string
	Phone *string
}

type UserService struct {
	r  repo.Users
	mu sync.Mutex // read-modify-write on a single user
	settings
}

func NewUserService(r repo.Users, opts ...Option) *UserService {
	return &UserService{r: r, settings: newSettings(opts)}
}

func (s *UserService) Register(in UserInput) (models.User, error) {
	typ, err := models.ParseUserType(in.Type)
	if err != nil {
		return models.User{}, err
	}
	now := s.now()
	u := models.User{
		ID:        in.ID,
		Name:      in.Name,
		Type:      typ,
		Status:    models.UserActive,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	u, err = s.r.Create(u)
	if err != nil {
		return models.User{}, err
	}
	s.log.Info("user registered", "user_id", u.ID, "type", u.Type)
	return u, nil
}

func (s *UserService) GetUser(id string) (models.User, error) { return s.r.GetByID(id) }

func (s *UserService) ListUsers() ([]models.User, error) { return s.r.List() }

func (s *UserService) Update(id string, upd UserUpdate) (models.User, error) {
	return s.modify(id, func(u *models.User) error {
		if upd.Name != nil {
			u.Name = *upd.Name
		}
		if upd.Type != nil {
			typ, err := models.ParseUserType(*upd.Type)
			if err != nil {
				return err
			}
			u.Type = typ
		}
		if upd.Email != nil {
			u.Email = *upd.Email
		}
		if upd.Phone != nil {
			u.Phone = *upd.Phone
		}
		return u.Validate()
	})
}

// Delete refuses while the user still has books out.
func (s *UserService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.r.GetByID(id)
	if err != nil {
		return err
	}
	if u.ActiveLoans > 0 {
		return errs.New(errs.ErrUserHasActiveLoans, "user %q has %d active loan(s)", id, u.ActiveLoans)
	}
	if err := s.r.Delete(id); err != nil {
		return err
	}
	s.log.Info("user deleted", "user_id", id)
	return nil
}

func (s *UserService) SetStatus(id, status string) (models.User, error) {
	st, err := models.ParseUserStatus(status)
	if err != nil {
		return models.User{}, err
	}
	u, err := s.modify(id, func(u *models.User) error {
		u.Status = st
		return nil
	})
	if err == nil {
		s.log.Info("user status changed", "user_id", id, "status", st)
	}
	return u, err
}

func (s *UserService) Block(id string) (models.User, error) {
	return s.SetStatus(id, string(models.UserBlocked))
}

func (s *UserService) Unblock(id string) (models.User, error) {
	return s.SetStatus(id, string(models.UserActive))
}

func (s *UserService) IncrementActiveLoans(id string) error {
	_, err := s.modify(id, func(u *models.User) error {
		u.ActiveLoans++
		return nil
	})
	return err
}

// DecrementActiveLoans floors at zero; decrementing an idle user is a no-op.
func (s *UserService) DecrementActiveLoans(id string) error {
	_, err := s.modify(id, func(u *models.User) error {
		if u.ActiveLoans > 0 {
			u.ActiveLoans--
		}
		return nil
	})
	return err
}

func (s *UserService) modify(id string, fn func(u *models.User) error) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.r.GetByID(id)
	if err != nil {
		return models.User{}, err
	}
	if err := fn(&u); err != nil {
		return models.User{}, err
	}
	u.UpdatedAt = s.now()
	if err := s.r.Update(u); err != nil {
		return models.User{}, err
	}
	return u, nil
}
