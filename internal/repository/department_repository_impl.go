package repository

import (
	"errors"

	"hospital-management-system/internal/domain/entity"
	domainRepo "hospital-management-system/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type departmentRepository struct{}

func NewDepartmentRepository() domainRepo.DepartmentRepository {
	return &departmentRepository{}
}

func (r *departmentRepository) Create(db *gorm.DB, department *entity.Department) error {
	return db.Omit("HeadOfDepartment").Create(department).Error
}

func (r *departmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Department, error) {
	var department entity.Department
	err := db.Preload("HeadOfDepartment").Where("id = ?", id).First(&department).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) FindAll(db *gorm.DB) ([]entity.Department, error) {
	var departments []entity.Department
	err := db.Preload("HeadOfDepartment").Order("name ASC").Find(&departments).Error
	if err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *departmentRepository) Update(db *gorm.DB, department *entity.Department) error {
	return db.Omit("HeadOfDepartment").Save(department).Error
}

func (r *departmentRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Department{})
	return result.RowsAffected, result.Error
}

func (r *departmentRepository) Count(db *gorm.DB) (int64, error) {
	return count(db, &entity.Department{})
}

func (r *departmentRepository) CountGroupedBy(db *gorm.DB, column string) (map[string]int64, error) {
	return countGroupedBy(db, &entity.Department{}, column)
}
