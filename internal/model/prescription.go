package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Medicine is one line item of a prescription. It has no identity of
// its own and is replaced wholesale when the prescription is updated.
type Medicine struct {
	ID             uint      `json:"-" gorm:"primaryKey"`
	PrescriptionID uuid.UUID `json:"-" gorm:"type:char(36);not null;index"`
	Name           string    `json:"name" gorm:"size:255;not null"`
	Dosage         string    `json:"dosage" gorm:"size:255;not null"`
	Duration       string    `json:"duration" gorm:"size:255;not null"`
}

// Prescription is a clinical record tied 1:1 to a completed
// appointment. Doctor and patient references are denormalized from the
// appointment at creation time.
type Prescription struct {
	ID            uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	AppointmentID uuid.UUID `json:"appointmentId" gorm:"type:char(36);not null;uniqueIndex"`
	DoctorID      uuid.UUID `json:"doctorId" gorm:"type:char(36);not null;index"`
	PatientID     uuid.UUID `json:"patientId" gorm:"type:char(36);not null;index"`
	Symptoms      string    `json:"symptoms" gorm:"type:text;not null"`
	Diagnosis     string    `json:"diagnosis" gorm:"type:text;not null"`
	Notes         string    `json:"notes" gorm:"type:text"`

	Medicines []Medicine `json:"medicines" gorm:"foreignKey:PrescriptionID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Appointment *Appointment `json:"appointment,omitempty" gorm:"foreignKey:AppointmentID"`
	Doctor      *User        `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	Patient     *User        `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Prescription) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
