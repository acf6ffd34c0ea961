package entity

import (
	"time"

	"github.com/google/uuid"
)

type Department struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name               string           `gorm:"type:varchar(150);uniqueIndex;not null" json:"name"`
	Description        string           `gorm:"type:text" json:"description,omitempty"`
	Location           string           `gorm:"type:varchar(255)" json:"location,omitempty"`
	PhoneNumber        string           `gorm:"type:varchar(30)" json:"phone_number,omitempty"`
	Email              string           `gorm:"type:varchar(255)" json:"email,omitempty"`
	HeadOfDepartmentID *uuid.UUID       `gorm:"type:uuid" json:"head_of_department_id,omitempty"`
	Status             DepartmentStatus `gorm:"type:varchar(30);not null;default:ACTIVE;index" json:"status"`
	Capacity           int              `gorm:"not null;default:0" json:"capacity"`
	Specialization     string           `gorm:"type:varchar(150)" json:"specialization,omitempty"`
	CreatedAt          time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	HeadOfDepartment *User `gorm:"foreignKey:HeadOfDepartmentID" json:"head_of_department,omitempty"`
}

func (Department) TableName() string {
	return "departments"
}
