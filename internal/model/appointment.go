package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment statuses. The enum is the only constraint: any status may
// be set from any other by the owning doctor.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the four appointment statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment is a scheduling request between exactly one patient and
// one doctor. Time is a free-text slot label ("10:30 AM"), so ordering
// within a date is lexical.
type Appointment struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	PatientID uuid.UUID `json:"patientId" gorm:"type:char(36);not null;index"`
	DoctorID  uuid.UUID `json:"doctorId" gorm:"type:char(36);not null;index"`
	Date      time.Time `json:"date" gorm:"not null;index"`
	Time      string    `json:"time" gorm:"size:50;not null"`
	Reason    string    `json:"reason" gorm:"size:500;not null"`
	Status    string    `json:"status" gorm:"size:20;not null;default:'pending';index"`
	Notes     string    `json:"notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Patient *User `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	Doctor  *User `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// IsParticipant reports whether userID is the patient or doctor party.
func (a *Appointment) IsParticipant(userID uuid.UUID) bool {
	return a.PatientID == userID || a.DoctorID == userID
}
