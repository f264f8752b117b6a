package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName    string    `gorm:"size:255;not null" json:"full_name"`
	Email       string    `gorm:"size:255;not null;unique" json:"email"`
	PhoneNumber string    `gorm:"size:20" json:"phone_number"`
	Password    string    `gorm:"not null" json:"-"`
	Role        string    `gorm:"size:20;not null;default:'student'" json:"role"`

	IsVerified                 bool       `gorm:"default:false" json:"is_verified"`
	VerificationToken          *string    `gorm:"size:255;unique" json:"-"`
	VerificationTokenExpiresAt *time.Time `json:"-"`

	ProfilePhotoURL *string `gorm:"size:255" json:"profile_photo_url"`
	ResumeURL       *string `gorm:"size:255" json:"resume_url"`
	Bio             *string `gorm:"type:text" json:"bio"`
	Skills          *string `gorm:"type:text" json:"skills"`

	ResetPasswordToken          *string    `gorm:"size:255;unique" json:"-"`
	ResetPasswordTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
