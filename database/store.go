package database

import (
	"context"

	"github.com/anjiri1684/job_portal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is the gorm-backed persistence used by the payment and application
// services. Lookups return gorm.ErrRecordNotFound when nothing matches.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := s.db.WithContext(ctx).First(&job, "id = ?", jobID).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *Store) FindUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) CreatePayment(ctx context.Context, payment *models.Payment) error {
	return s.db.WithContext(ctx).Create(payment).Error
}

func (s *Store) GetPayment(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.WithContext(ctx).First(&payment, "id = ?", paymentID).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *Store) FindSuccessfulPayment(ctx context.Context, jobID, applicantID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.WithContext(ctx).
		Where("job_id = ? AND applicant_id = ? AND status = ?", jobID, applicantID, models.PaymentSuccess).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *Store) FindPaymentByOrder(ctx context.Context, providerOrderID string, jobID, applicantID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.WithContext(ctx).
		Where("provider_order_id = ? AND job_id = ? AND applicant_id = ?", providerOrderID, jobID, applicantID).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// FinalizePayment moves a PENDING record to a terminal status with one
// conditional UPDATE. The status guard in the WHERE clause is what keeps two
// concurrent verifies from both winning: only the statement that still sees
// PENDING changes a row.
func (s *Store) FinalizePayment(ctx context.Context, paymentID uuid.UUID, status string, providerPaymentID *string) (bool, error) {
	updates := map[string]interface{}{"status": status}
	if providerPaymentID != nil {
		updates["provider_payment_id"] = *providerPaymentID
	}

	result := s.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ? AND status = ?", paymentID, models.PaymentPending).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *Store) HasSuccessfulPayment(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("job_id = ? AND applicant_id = ? AND status = ?", jobID, applicantID, models.PaymentSuccess).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) HasApplication(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) CreateApplication(ctx context.Context, application *models.Application) error {
	return s.db.WithContext(ctx).Create(application).Error
}
