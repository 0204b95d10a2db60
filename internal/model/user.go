package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles a user account can hold.
const (
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// User represents a doctor or patient account. Doctor-only fields stay
// empty for patients.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null;index"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:20;not null;index"`
	Phone        string    `json:"phone,omitempty" gorm:"size:50"`

	Specialty     string `json:"specialty,omitempty" gorm:"size:255;index"`
	Experience    int    `json:"experience,omitempty"`
	Bio           string `json:"bio,omitempty" gorm:"type:text"`
	Location      string `json:"location,omitempty" gorm:"size:255"`
	Education     string `json:"education,omitempty" gorm:"size:255"`
	LicenseNumber string `json:"licenseNumber,omitempty" gorm:"size:100"`

	ProfilePhoto *string `json:"profilePhoto" gorm:"size:512"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsDoctor reports whether the user holds the doctor role.
func (u *User) IsDoctor() bool {
	return u.Role == RoleDoctor
}
