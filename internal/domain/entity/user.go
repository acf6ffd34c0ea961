package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a staff account: either an administrator or a doctor.
type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FirstName      string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName       string     `gorm:"type:varchar(100);not null" json:"last_name"`
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password       string     `gorm:"type:text;not null" json:"-"`
	Role           Role       `gorm:"type:varchar(20);not null;index" json:"role"`
	DepartmentID   *uuid.UUID `gorm:"type:uuid;index" json:"department_id,omitempty"`
	PhoneNumber    string     `gorm:"type:varchar(30)" json:"phone_number,omitempty"`
	Specialization string     `gorm:"type:varchar(150)" json:"specialization,omitempty"`
	LicenseNumber  string     `gorm:"type:varchar(100)" json:"license_number,omitempty"`
	Status         UserStatus `gorm:"type:varchar(30);not null;default:ACTIVE;index" json:"status"`
	CreatedAt      time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`

	// Relationships
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
