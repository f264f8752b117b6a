package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/anjiri1684/job_portal/models"
	"github.com/anjiri1684/job_portal/payments"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

const testSecret = "test_secret_key"

// --- Mocks for Dependencies ---

type MockPaymentStore struct{ mock.Mock }

func (m *MockPaymentStore) FindJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}
func (m *MockPaymentStore) FindUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockPaymentStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentStore) GetPayment(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}
func (m *MockPaymentStore) FindSuccessfulPayment(ctx context.Context, jobID, applicantID uuid.UUID) (*models.Payment, error) {
	args := m.Called(ctx, jobID, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}
func (m *MockPaymentStore) FindPaymentByOrder(ctx context.Context, providerOrderID string, jobID, applicantID uuid.UUID) (*models.Payment, error) {
	args := m.Called(ctx, providerOrderID, jobID, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}
func (m *MockPaymentStore) FinalizePayment(ctx context.Context, paymentID uuid.UUID, status string, providerPaymentID *string) (bool, error) {
	args := m.Called(ctx, paymentID, status, providerPaymentID)
	return args.Bool(0), args.Error(1)
}

type MockOrderProvider struct{ mock.Mock }

func (m *MockOrderProvider) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*payments.ProviderOrder, error) {
	args := m.Called(ctx, amount, currency, receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.ProviderOrder), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Send(toName, toEmail, subject, htmlContent string) {
	m.Called(toName, toEmail, subject, htmlContent)
}

// --- CreateOrder ---

func TestCreateOrder(t *testing.T) {
	mockStore := new(MockPaymentStore)
	mockProvider := new(MockOrderProvider)
	service := NewPaymentService(mockStore, mockProvider, testSecret, "INR", nil, nil)
	ctx := context.Background()

	jobID := uuid.New()
	applicantID := uuid.New()
	job := &models.Job{ID: jobID, Title: "Backend Engineer", ApplicationFee: 500}

	mockStore.On("FindJob", ctx, jobID).Return(job, nil)
	mockStore.On("FindSuccessfulPayment", ctx, jobID, applicantID).Return(nil, gorm.ErrRecordNotFound)
	mockProvider.On("CreateOrder", ctx, int64(50000), "INR", mock.MatchedBy(func(receipt string) bool {
		return strings.HasPrefix(receipt, "job_") && len(receipt) <= 40
	})).Return(&payments.ProviderOrder{ID: "order_1", Amount: 50000, Currency: "INR"}, nil)
	mockStore.On("CreatePayment", ctx, mock.MatchedBy(func(p *models.Payment) bool {
		return p.JobID == jobID &&
			p.ApplicantID == applicantID &&
			p.Amount == 500 &&
			p.Status == models.PaymentPending &&
			p.ProviderOrderID != nil && *p.ProviderOrderID == "order_1"
	})).Return(nil)

	order, payment, err := service.CreateOrder(ctx, jobID, applicantID)

	assert.NoError(t, err)
	assert.Equal(t, "order_1", order.ID)
	assert.Equal(t, int64(50000), order.Amount)
	assert.Equal(t, models.PaymentPending, payment.Status)
	mockStore.AssertExpectations(t)
	mockProvider.AssertExpectations(t)
}

func TestCreateOrderJobNotFound(t *testing.T) {
	mockStore := new(MockPaymentStore)
	mockProvider := new(MockOrderProvider)
	service := NewPaymentService(mockStore, mockProvider, testSecret, "INR", nil, nil)
	ctx := context.Background()

	jobID := uuid.New()
	mockStore.On("FindJob", ctx, jobID).Return(nil, gorm.ErrRecordNotFound)

	_, _, err := service.CreateOrder(ctx, jobID, uuid.New())

	assert.ErrorIs(t, err, ErrJobNotFound)
	mockProvider.AssertNotCalled(t, "CreateOrder")
}

func TestCreateOrderFreeJob(t *testing.T) {
	mockStore := new(MockPaymentStore)
	mockProvider := new(MockOrderProvider)
	service := NewPaymentService(mockStore, mockProvider, testSecret, "INR", nil, nil)
	ctx := context.Background()

	jobID := uuid.New()
	mockStore.On("FindJob", ctx, jobID).Return(&models.Job{ID: jobID, ApplicationFee: 0}, nil)

	_, _, err := service.CreateOrder(ctx, jobID, uuid.New())

	assert.ErrorIs(t, err, ErrNoFeeRequired)
	mockProvider.AssertNotCalled(t, "CreateOrder")
}

func TestCreateOrderAlreadyPaid(t *testing.T) {
	mockStore := new(MockPaymentStore)
	mockProvider := new(MockOrderProvider)
	service := NewPaymentService(mockStore, mockProvider, testSecret, "INR", nil, nil)
	ctx := context.Background()

	jobID := uuid.New()
	applicantID := uuid.New()
	mockStore.On("FindJob", ctx, jobID).Return(&models.Job{ID: jobID, ApplicationFee: 500}, nil)
	mockStore.On("FindSuccessfulPayment", ctx, jobID, applicantID).
		Return(&models.Payment{Status: models.PaymentSuccess}, nil)

	_, _, err := service.CreateOrder(ctx, jobID, applicantID)

	assert.ErrorIs(t, err, ErrAlreadyPaid)
	mockProvider.AssertNotCalled(t, "CreateOrder")
	mockStore.AssertNotCalled(t, "CreatePayment")
}

func TestCreateOrderProviderFailure(t *testing.T) {
	mockStore := new(MockPaymentStore)
	mockProvider := new(MockOrderProvider)
	service := NewPaymentService(mockStore, mockProvider, testSecret, "INR", nil, nil)
	ctx := context.Background()

	jobID := uuid.New()
	applicantID := uuid.New()
	mockStore.On("FindJob", ctx, jobID).Return(&models.Job{ID: jobID, ApplicationFee: 500}, nil)
	mockStore.On("FindSuccessfulPayment", ctx, jobID, applicantID).Return(nil, gorm.ErrRecordNotFound)
	mockProvider.On("CreateOrder", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	_, _, err := service.CreateOrder(ctx, jobID, applicantID)

	var providerErr *ErrProvider
	assert.ErrorAs(t, err, &providerErr)
	mockStore.AssertNotCalled(t, "CreatePayment")
}

func TestCreateOrderRetryBeforeSuccessMakesIndependentRecords(t *testing.T) {
	mockStore := new(MockPaymentStore)
	mockProvider := new(MockOrderProvider)
	service := NewPaymentService(mockStore, mockProvider, testSecret, "INR", nil, nil)
	ctx := context.Background()

	jobID := uuid.New()
	applicantID := uuid.New()
	mockStore.On("FindJob", ctx, jobID).Return(&models.Job{ID: jobID, ApplicationFee: 500}, nil).Twice()
	mockStore.On("FindSuccessfulPayment", ctx, jobID, applicantID).Return(nil, gorm.ErrRecordNotFound).Twice()
	mockProvider.On("CreateOrder", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(&payments.ProviderOrder{ID: "order_1"}, nil).Once()
	mockProvider.On("CreateOrder", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(&payments.ProviderOrder{ID: "order_2"}, nil).Once()
	mockStore.On("CreatePayment", ctx, mock.Anything).Return(nil).Twice()

	_, first, err := service.CreateOrder(ctx, jobID, applicantID)
	assert.NoError(t, err)
	_, second, err := service.CreateOrder(ctx, jobID, applicantID)
	assert.NoError(t, err)

	assert.Equal(t, models.PaymentPending, first.Status)
	assert.Equal(t, models.PaymentPending, second.Status)
	assert.NotEqual(t, *first.ProviderOrderID, *second.ProviderOrderID)
	mockStore.AssertExpectations(t)
}

// --- VerifyPayment ---

func TestVerifyPayment(t *testing.T) {
	mockStore := new(MockPaymentStore)
	mockNotifier := new(MockNotifier)
	service := NewPaymentService(mockStore, new(MockOrderProvider), testSecret, "INR", mockNotifier, nil)
	ctx := context.Background()

	jobID := uuid.New()
	applicantID := uuid.New()
	record := &models.Payment{ID: uuid.New(), JobID: jobID, ApplicantID: applicantID, Amount: 500, Currency: "INR", Status: models.PaymentPending}
	signature := payments.SignOrder("order_1", "pay_1", testSecret)

	mockStore.On("FindPaymentByOrder", ctx, "order_1", jobID, applicantID).Return(record, nil)
	mockStore.On("FinalizePayment", ctx, record.ID, models.PaymentSuccess, mock.MatchedBy(func(pid *string) bool {
		return pid != nil && *pid == "pay_1"
	})).Return(true, nil)
	mockStore.On("FindJob", ctx, jobID).Return(&models.Job{ID: jobID, Title: "Backend Engineer"}, nil)
	mockStore.On("FindUser", ctx, applicantID).Return(&models.User{ID: applicantID, FullName: "Asha", Email: "asha@example.com"}, nil)
	mockNotifier.On("Send", "Asha", "asha@example.com", mock.Anything, mock.Anything).Return()

	err := service.VerifyPayment(ctx, "order_1", "pay_1", signature, jobID, applicantID)

	assert.NoError(t, err)
	mockStore.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

func TestVerifyPaymentTamperedSignature(t *testing.T) {
	mockStore := new(MockPaymentStore)
	service := NewPaymentService(mockStore, new(MockOrderProvider), testSecret, "INR", nil, nil)
	ctx := context.Background()

	jobID := uuid.New()
	applicantID := uuid.New()
	record := &models.Payment{ID: uuid.New(), JobID: jobID, ApplicantID: applicantID, Status: models.PaymentPending}

	// Signature over a different payment id than the one being claimed.
	signature := payments.SignOrder("order_1", "pay_other", testSecret)

	mockStore.On("FindPaymentByOrder", ctx, "order_1", jobID, applicantID).Return(record, nil)
	mockStore.On("FinalizePayment", ctx, record.ID, models.PaymentFailed, (*string)(nil)).Return(true, nil)

	err := service.VerifyPayment(ctx, "order_1", "pay_1", signature, jobID, applicantID)

	assert.ErrorIs(t, err, ErrVerificationFailed)
	mockStore.AssertExpectations(t)
}

func TestVerifyPaymentRecordNotFound(t *testing.T) {
	mockStore := new(MockPaymentStore)
	service := NewPaymentService(mockStore, new(MockOrderProvider), testSecret, "INR", nil, nil)
	ctx := context.Background()

	jobID := uuid.New()
	applicantID := uuid.New()
	mockStore.On("FindPaymentByOrder", ctx, "order_1", jobID, applicantID).Return(nil, gorm.ErrRecordNotFound)

	err := service.VerifyPayment(ctx, "order_1", "pay_1", "whatever", jobID, applicantID)

	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestVerifyPaymentReplayIsIdempotent(t *testing.T) {
	mockStore := new(MockPaymentStore)
	mockNotifier := new(MockNotifier)
	service := NewPaymentService(mockStore, new(MockOrderProvider), testSecret, "INR", mockNotifier, nil)
	ctx := context.Background()

	jobID := uuid.New()
	applicantID := uuid.New()
	record := &models.Payment{ID: uuid.New(), JobID: jobID, ApplicantID: applicantID, Status: models.PaymentSuccess}
	signature := payments.SignOrder("order_1", "pay_1", testSecret)

	mockStore.On("FindPaymentByOrder", ctx, "order_1", jobID, applicantID).Return(record, nil)
	mockStore.On("FinalizePayment", ctx, record.ID, models.PaymentSuccess, mock.Anything).Return(false, nil)
	mockStore.On("GetPayment", ctx, record.ID).Return(record, nil)

	err := service.VerifyPayment(ctx, "order_1", "pay_1", signature, jobID, applicantID)

	assert.NoError(t, err)
	// The replay must not re-run success side effects.
	mockNotifier.AssertNotCalled(t, "Send")
}

func TestVerifyPaymentFailedRecordStaysFailed(t *testing.T) {
	mockStore := new(MockPaymentStore)
	service := NewPaymentService(mockStore, new(MockOrderProvider), testSecret, "INR", nil, nil)
	ctx := context.Background()

	jobID := uuid.New()
	applicantID := uuid.New()
	record := &models.Payment{ID: uuid.New(), JobID: jobID, ApplicantID: applicantID, Status: models.PaymentFailed}
	signature := payments.SignOrder("order_1", "pay_1", testSecret)

	mockStore.On("FindPaymentByOrder", ctx, "order_1", jobID, applicantID).Return(record, nil)
	mockStore.On("FinalizePayment", ctx, record.ID, models.PaymentSuccess, mock.Anything).Return(false, nil)
	mockStore.On("GetPayment", ctx, record.ID).Return(record, nil)

	err := service.VerifyPayment(ctx, "order_1", "pay_1", signature, jobID, applicantID)

	assert.ErrorIs(t, err, ErrVerificationFailed)
}

// --- Concurrency: exactly one effective transition ---

// memPaymentStore is a minimal in-memory PaymentStore with the same
// conditional-update semantics as the real one.
type memPaymentStore struct {
	mu          sync.Mutex
	payments    map[uuid.UUID]*models.Payment
	transitions int
}

func newMemPaymentStore() *memPaymentStore {
	return &memPaymentStore{payments: make(map[uuid.UUID]*models.Payment)}
}

func (s *memPaymentStore) FindJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *memPaymentStore) FindUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *memPaymentStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[payment.ID] = payment
	return nil
}
func (s *memPaymentStore) GetPayment(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.payments[paymentID]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (s *memPaymentStore) FindSuccessfulPayment(ctx context.Context, jobID, applicantID uuid.UUID) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.JobID == jobID && p.ApplicantID == applicantID && p.Status == models.PaymentSuccess {
			copied := *p
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (s *memPaymentStore) FindPaymentByOrder(ctx context.Context, providerOrderID string, jobID, applicantID uuid.UUID) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.ProviderOrderID != nil && *p.ProviderOrderID == providerOrderID && p.JobID == jobID && p.ApplicantID == applicantID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (s *memPaymentStore) FinalizePayment(ctx context.Context, paymentID uuid.UUID, status string, providerPaymentID *string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[paymentID]
	if !ok || p.Status != models.PaymentPending {
		return false, nil
	}
	p.Status = status
	if providerPaymentID != nil {
		p.ProviderPaymentID = providerPaymentID
	}
	s.transitions++
	return true, nil
}

func TestVerifyPaymentConcurrentCallsTransitionOnce(t *testing.T) {
	store := newMemPaymentStore()
	service := NewPaymentService(store, new(MockOrderProvider), testSecret, "INR", nil, nil)
	ctx := context.Background()

	jobID := uuid.New()
	applicantID := uuid.New()
	orderID := "order_1"
	record := &models.Payment{
		ID:              uuid.New(),
		JobID:           jobID,
		ApplicantID:     applicantID,
		Status:          models.PaymentPending,
		ProviderOrderID: &orderID,
	}
	assert.NoError(t, store.CreatePayment(ctx, record))

	signature := payments.SignOrder(orderID, "pay_1", testSecret)

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = service.VerifyPayment(ctx, orderID, "pay_1", signature, jobID, applicantID)
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		assert.NoError(t, errs[i])
	}
	assert.Equal(t, 1, store.transitions)

	final, err := store.GetPayment(ctx, record.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentSuccess, final.Status)
	assert.Equal(t, "pay_1", *final.ProviderPaymentID)

	// A tampered verification after success must not damage the record.
	bad := payments.SignOrder(orderID, "pay_other", testSecret)
	err = service.VerifyPayment(ctx, orderID, "pay_1", bad, jobID, applicantID)
	assert.ErrorIs(t, err, ErrVerificationFailed)

	final, _ = store.GetPayment(ctx, record.ID)
	assert.Equal(t, models.PaymentSuccess, final.Status)
}

func TestHasSuccessfulPayment(t *testing.T) {
	mockStore := new(MockPaymentStore)
	service := NewPaymentService(mockStore, new(MockOrderProvider), testSecret, "INR", nil, nil)
	ctx := context.Background()

	jobID := uuid.New()
	applicantID := uuid.New()

	mockStore.On("FindSuccessfulPayment", ctx, jobID, applicantID).
		Return(&models.Payment{Status: models.PaymentSuccess}, nil).Once()
	paid, err := service.HasSuccessfulPayment(ctx, jobID, applicantID)
	assert.NoError(t, err)
	assert.True(t, paid)

	mockStore.On("FindSuccessfulPayment", ctx, jobID, applicantID).
		Return(nil, gorm.ErrRecordNotFound).Once()
	paid, err = service.HasSuccessfulPayment(ctx, jobID, applicantID)
	assert.NoError(t, err)
	assert.False(t, paid)
}
