package models

import (
	"time"

	"github.com/google/uuid"
)

type Application struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`

	// One application per applicant per job; the unique index is what makes a
	// concurrent double-apply lose instead of inserting twice.
	JobID       uuid.UUID `gorm:"not null;uniqueIndex:idx_job_applicant" json:"job_id"`
	ApplicantID uuid.UUID `gorm:"not null;uniqueIndex:idx_job_applicant" json:"applicant_id"`

	Status string `gorm:"size:20;not null;default:'pending'" json:"status"`

	Job       Job  `gorm:"foreignkey:JobID" json:"job,omitempty"`
	Applicant User `gorm:"foreignkey:ApplicantID" json:"applicant,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
