package memory

import (
	"github.com/baharkarakas/library-backend/internal/errs"
	"github.com/baharkarakas/library-backend/internal/models"
	"github.com/baharkarakas/library-backend/internal/repository"
)

type usersRepo struct{ store *ordered[models.User] }

func NewUsers() repository.Users {
	return &usersRepo{store: newOrdered[models.User]()}
}

func (r *usersRepo) Create(u models.User) (models.User, error) {
	if !r.store.insert(u.ID, u) {
		return models.User{}, errs.New(errs.ErrUserAlreadyExists, "user %q already exists", u.ID)
	}
	return u, nil
}

func (r *usersRepo) GetByID(id string) (models.User, error) {
	u, ok := r.store.get(id)
	if !ok {
		return models.User{}, errs.New(errs.ErrUserNotFound, "user %q not found", id)
	}
	return u, nil
}

func (r *usersRepo) List() ([]models.User, error) { return r.store.all(), nil }

func (r *usersRepo) Update(u models.User) error {
	if !r.store.replace(u.ID, u) {
		return errs.New(errs.ErrUserNotFound, "user %q not found", u.ID)
	}
	return nil
}

func (r *usersRepo) Delete(id string) error {
	if !r.store.remove(id) {
		return errs.New(errs.ErrUserNotFound, "user %q not found", id)
	}
	return nil
}
