package models

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:255;not null;unique" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	Website     *string   `gorm:"size:255" json:"website"`
	Location    *string   `gorm:"size:255" json:"location"`
	LogoURL     *string   `gorm:"size:255" json:"logo_url"`
	CreatedByID uuid.UUID `gorm:"not null" json:"created_by"`

	CreatedBy User `gorm:"foreignkey:CreatedByID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
