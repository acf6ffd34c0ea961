package memory

import (
	"strings"
	"time"

	"hospital-management-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	base
	users []*entity.User
}

func NewUserRepository(users ...*entity.User) *UserRepository {
	return &UserRepository{users: users}
}

var userColumns = map[string]func(*entity.User) string{
	"role":   func(u *entity.User) string { return string(u.Role) },
	"status": func(u *entity.User) string { return string(u.Status) },
}

func (r *UserRepository) Create(_ *gorm.DB, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return uniqueViolation("users", "email")
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.Status == "" {
		user.Status = entity.UserStatusActive
	}
	r.users = append(r.users, user)
	return nil
}

func (r *UserRepository) FindByEmail(_ *gorm.DB, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindAll(_ *gorm.DB) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *UserRepository) FindByRole(_ *gorm.DB, role entity.Role) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []entity.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	sortFold(out, func(u entity.User) string { return u.LastName })
	return out, nil
}

func (r *UserRepository) Update(_ *gorm.DB, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for i, u := range r.users {
		if u.ID == user.ID {
			r.users[i] = user
			return nil
		}
	}
	return nil
}

func (r *UserRepository) Delete(_ *gorm.DB, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *UserRepository) Count(_ *gorm.DB) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return int64(len(r.users)), nil
}

func (r *UserRepository) CountGroupedBy(_ *gorm.DB, column string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return groupBy(r.users, column, userColumns)
}

func (r *UserRepository) CountDoctorsByDepartment(_ *gorm.DB, departmentID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	var total int64
	for _, u := range r.users {
		if u.Role == entity.RoleDoctor && u.DepartmentID != nil && *u.DepartmentID == departmentID {
			total++
		}
	}
	return total, nil
}

func (r *UserRepository) CountCreatedSince(_ *gorm.DB, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	var total int64
	for _, u := range r.users {
		if !u.CreatedAt.Before(since) {
			total++
		}
	}
	return total, nil
}
