package memory

import (
	"hospital-management-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoomRepository struct {
	base
	rooms []*entity.Room
}

func NewRoomRepository(rooms ...*entity.Room) *RoomRepository {
	return &RoomRepository{rooms: rooms}
}

var roomColumns = map[string]func(*entity.Room) string{
	"status":    func(r *entity.Room) string { return string(r.Status) },
	"room_type": func(r *entity.Room) string { return string(r.RoomType) },
}

func (r *RoomRepository) Create(_ *gorm.DB, room *entity.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, existing := range r.rooms {
		if existing.RoomNumber == room.RoomNumber {
			return uniqueViolation("rooms", "room_number")
		}
	}
	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}
	if room.Status == "" {
		room.Status = entity.RoomStatusAvailable
	}
	r.rooms = append(r.rooms, room)
	return nil
}

func (r *RoomRepository) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, room := range r.rooms {
		if room.ID == id {
			return room, nil
		}
	}
	return nil, nil
}

func (r *RoomRepository) FindAll(_ *gorm.DB) ([]entity.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]entity.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, *room)
	}
	return out, nil
}

func (r *RoomRepository) Update(_ *gorm.DB, room *entity.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for i, existing := range r.rooms {
		if existing.ID == room.ID {
			r.rooms[i] = room
		}
	}
	return nil
}

func (r *RoomRepository) Delete(_ *gorm.DB, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	for i, room := range r.rooms {
		if room.ID == id {
			r.rooms = append(r.rooms[:i], r.rooms[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *RoomRepository) Count(_ *gorm.DB) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return int64(len(r.rooms)), nil
}

func (r *RoomRepository) CountGroupedBy(_ *gorm.DB, column string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return groupBy(r.rooms, column, roomColumns)
}

func (r *RoomRepository) CountByDepartmentID(_ *gorm.DB, departmentID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	var total int64
	for _, room := range r.rooms {
		if room.DepartmentID != nil && *room.DepartmentID == departmentID {
			total++
		}
	}
	return total, nil
}
