package memory

import (
	"strings"

	"hospital-management-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DepartmentRepository struct {
	base
	departments []*entity.Department
}

func NewDepartmentRepository(departments ...*entity.Department) *DepartmentRepository {
	return &DepartmentRepository{departments: departments}
}

var departmentColumns = map[string]func(*entity.Department) string{
	"status": func(d *entity.Department) string { return string(d.Status) },
}

func (r *DepartmentRepository) Create(_ *gorm.DB, department *entity.Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, d := range r.departments {
		if strings.EqualFold(d.Name, department.Name) {
			return uniqueViolation("departments", "name")
		}
	}
	if department.ID == uuid.Nil {
		department.ID = uuid.New()
	}
	if department.Status == "" {
		department.Status = entity.DepartmentStatusActive
	}
	r.departments = append(r.departments, department)
	return nil
}

func (r *DepartmentRepository) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, d := range r.departments {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (r *DepartmentRepository) FindAll(_ *gorm.DB) ([]entity.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]entity.Department, 0, len(r.departments))
	for _, d := range r.departments {
		out = append(out, *d)
	}
	sortFold(out, func(d entity.Department) string { return d.Name })
	return out, nil
}

func (r *DepartmentRepository) Update(_ *gorm.DB, department *entity.Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for i, d := range r.departments {
		if d.ID == department.ID {
			r.departments[i] = department
		}
	}
	return nil
}

func (r *DepartmentRepository) Delete(_ *gorm.DB, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	for i, d := range r.departments {
		if d.ID == id {
			r.departments = append(r.departments[:i], r.departments[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *DepartmentRepository) Count(_ *gorm.DB) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return int64(len(r.departments)), nil
}

func (r *DepartmentRepository) CountGroupedBy(_ *gorm.DB, column string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return groupBy(r.departments, column, departmentColumns)
}
