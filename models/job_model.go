package models

import (
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	Requirements    string    `gorm:"type:text" json:"requirements"`
	Salary          float64   `gorm:"type:numeric(12,2);not null" json:"salary"`
	Location        string    `gorm:"size:255;not null" json:"location"`
	JobType         string    `gorm:"size:50;not null" json:"job_type"`
	ExperienceLevel int       `gorm:"not null" json:"experience_level"`
	Position        int       `gorm:"not null" json:"position"`

	// Fee charged before an application is admitted; zero means free to apply.
	ApplicationFee float64 `gorm:"type:numeric(10,2);not null;default:0" json:"application_fee"`

	CompanyID   uuid.UUID `gorm:"not null" json:"company_id"`
	CreatedByID uuid.UUID `gorm:"not null" json:"created_by"`

	Company      Company       `gorm:"foreignkey:CompanyID" json:"company,omitempty"`
	Applications []Application `gorm:"foreignkey:JobID" json:"applications,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
