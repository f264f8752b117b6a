package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/anjiri1684/job_portal/models"
	"github.com/anjiri1684/job_portal/payments"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Razorpay rejects receipts longer than 40 characters.
const maxReceiptLength = 40

// PaymentStore is the slice of persistence the payment workflow needs.
// FinalizePayment must be a single conditional update: the transition applies
// only if the record is still PENDING, and the bool reports whether this call
// was the one that moved it.
type PaymentStore interface {
	FindJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error)
	FindUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPayment(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error)
	FindSuccessfulPayment(ctx context.Context, jobID, applicantID uuid.UUID) (*models.Payment, error)
	FindPaymentByOrder(ctx context.Context, providerOrderID string, jobID, applicantID uuid.UUID) (*models.Payment, error)
	FinalizePayment(ctx context.Context, paymentID uuid.UUID, status string, providerPaymentID *string) (bool, error)
}

// Notifier sends a transactional email without blocking the caller.
type Notifier interface {
	Send(toName, toEmail, subject, htmlContent string)
}

// ReceiptGenerator renders and stores a receipt for a successful payment.
type ReceiptGenerator interface {
	GenerateReceipt(paymentID uuid.UUID)
}

type PaymentService struct {
	store    PaymentStore
	provider payments.OrderProvider
	secret   string
	currency string
	notify   Notifier         // optional
	receipts ReceiptGenerator // optional
}

func NewPaymentService(store PaymentStore, provider payments.OrderProvider, secret, currency string, notify Notifier, receipts ReceiptGenerator) *PaymentService {
	return &PaymentService{
		store:    store,
		provider: provider,
		secret:   secret,
		currency: currency,
		notify:   notify,
		receipts: receipts,
	}
}

// CreateOrder asks the provider for a charge request covering the job's
// application fee and records it as a PENDING payment. Nothing is persisted
// when the provider call fails, so the client can simply retry.
func (s *PaymentService) CreateOrder(ctx context.Context, jobID, applicantID uuid.UUID) (*payments.ProviderOrder, *models.Payment, error) {
	job, err := s.store.FindJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrJobNotFound
		}
		return nil, nil, err
	}

	if job.ApplicationFee <= 0 {
		return nil, nil, ErrNoFeeRequired
	}

	_, err = s.store.FindSuccessfulPayment(ctx, jobID, applicantID)
	if err == nil {
		return nil, nil, ErrAlreadyPaid
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	amount := int64(math.Round(job.ApplicationFee * 100))

	receipt := fmt.Sprintf("job_%s_%d", jobID, time.Now().Unix())
	if len(receipt) > maxReceiptLength {
		receipt = receipt[:maxReceiptLength]
	}

	order, err := s.provider.CreateOrder(ctx, amount, s.currency, receipt)
	if err != nil {
		return nil, nil, &ErrProvider{Err: err}
	}

	payment := &models.Payment{
		JobID:           jobID,
		ApplicantID:     applicantID,
		Amount:          job.ApplicationFee,
		Currency:        s.currency,
		Status:          models.PaymentPending,
		ProviderOrderID: &order.ID,
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		return nil, nil, err
	}

	return order, payment, nil
}

// VerifyPayment checks the provider's signature over the completed payment and
// moves the matching PENDING record to exactly one terminal state. Replaying a
// verification the ledger already accepted is a no-op success; a record that
// went to FAILED stays there no matter what signature arrives later.
func (s *PaymentService) VerifyPayment(ctx context.Context, orderID, paymentID, signature string, jobID, applicantID uuid.UUID) error {
	record, err := s.store.FindPaymentByOrder(ctx, orderID, jobID, applicantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		return err
	}

	if !payments.VerifySignature(orderID, paymentID, signature, s.secret) {
		if _, err := s.store.FinalizePayment(ctx, record.ID, models.PaymentFailed, nil); err != nil {
			return err
		}
		return ErrVerificationFailed
	}

	moved, err := s.store.FinalizePayment(ctx, record.ID, models.PaymentSuccess, &paymentID)
	if err != nil {
		return err
	}
	if !moved {
		current, err := s.store.GetPayment(ctx, record.ID)
		if err != nil {
			return err
		}
		if current.Status == models.PaymentSuccess {
			return nil
		}
		return ErrVerificationFailed
	}

	s.afterSuccess(ctx, record, jobID, applicantID)
	return nil
}

// HasSuccessfulPayment reports whether the fee for (job, applicant) was ever
// paid. A SUCCESS record satisfies the fee permanently.
func (s *PaymentService) HasSuccessfulPayment(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	_, err := s.store.FindSuccessfulPayment(ctx, jobID, applicantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *PaymentService) afterSuccess(ctx context.Context, record *models.Payment, jobID, applicantID uuid.UUID) {
	if s.notify != nil {
		job, jobErr := s.store.FindJob(ctx, jobID)
		applicant, userErr := s.store.FindUser(ctx, applicantID)
		if jobErr != nil || userErr != nil {
			log.Printf("🔥 Failed to load payment confirmation details for payment %s: job=%v user=%v", record.ID, jobErr, userErr)
		} else {
			s.notify.Send(applicant.FullName, applicant.Email, "Application Fee Received",
				fmt.Sprintf("<h1>Payment Confirmed</h1><p>Your application fee of %.2f %s for <strong>%s</strong> was received. You can now submit your application.</p>", record.Amount, record.Currency, job.Title))
		}
	}

	if s.receipts != nil {
		go s.receipts.GenerateReceipt(record.ID)
	}
}
