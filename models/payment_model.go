package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentPending = "PENDING"
	PaymentSuccess = "SUCCESS"
	PaymentFailed  = "FAILED"
)

// Payment is one application-fee attempt for a (job, applicant) pair. Records
// start as PENDING and are moved exactly once to SUCCESS or FAILED; they are
// never deleted, so the table doubles as the audit trail of payment attempts.
type Payment struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID       uuid.UUID `gorm:"not null;index:idx_payment_job_applicant" json:"job_id"`
	ApplicantID uuid.UUID `gorm:"not null;index:idx_payment_job_applicant" json:"applicant_id"`

	Amount   float64 `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency string  `gorm:"size:3;not null" json:"currency"`
	Status   string  `gorm:"size:20;not null;default:'PENDING'" json:"status"`

	ProviderOrderID   *string `gorm:"size:255;unique" json:"provider_order_id"`
	ProviderPaymentID *string `gorm:"size:255;unique" json:"provider_payment_id"`
	ReceiptURL        *string `gorm:"size:255" json:"receipt_url"`

	Job       Job  `gorm:"foreignkey:JobID" json:"-"`
	Applicant User `gorm:"foreignkey:ApplicantID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
