package repository

import (
	"errors"

	"hospital-management-system/internal/domain/entity"
	domainRepo "hospital-management-system/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type roomRepository struct{}

func NewRoomRepository() domainRepo.RoomRepository {
	return &roomRepository{}
}

func (r *roomRepository) Create(db *gorm.DB, room *entity.Room) error {
	return db.Omit("Department", "CurrentPatient").Create(room).Error
}

func (r *roomRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Room, error) {
	var room entity.Room
	err := db.Preload("Department").Preload("CurrentPatient").Where("id = ?", id).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) FindAll(db *gorm.DB) ([]entity.Room, error) {
	var rooms []entity.Room
	err := db.Preload("Department").Preload("CurrentPatient").Order("room_number ASC").Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) Update(db *gorm.DB, room *entity.Room) error {
	return db.Omit("Department", "CurrentPatient").Save(room).Error
}

func (r *roomRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Room{})
	return result.RowsAffected, result.Error
}

func (r *roomRepository) Count(db *gorm.DB) (int64, error) {
	return count(db, &entity.Room{})
}

func (r *roomRepository) CountGroupedBy(db *gorm.DB, column string) (map[string]int64, error) {
	return countGroupedBy(db, &entity.Room{}, column)
}

func (r *roomRepository) CountByDepartmentID(db *gorm.DB, departmentID uuid.UUID) (int64, error) {
	var total int64
	err := db.Model(&entity.Room{}).Where("department_id = ?", departmentID).Count(&total).Error
	return total, err
}
