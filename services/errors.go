package services

import "errors"

var (
	ErrJobNotFound        = errors.New("job not found")
	ErrPaymentNotFound    = errors.New("payment record not found")
	ErrNoFeeRequired      = errors.New("job has no application fee")
	ErrAlreadyPaid        = errors.New("payment already completed")
	ErrVerificationFailed = errors.New("payment verification failed")
	ErrPaymentRequired    = errors.New("application fee payment required")
	ErrAlreadyApplied     = errors.New("already applied for this job")
)

// ErrProvider wraps a failure talking to the payment gateway so handlers can
// surface it as an upstream error instead of a generic 500.
type ErrProvider struct {
	Err error
}

func (e *ErrProvider) Error() string {
	return "payment provider error: " + e.Err.Error()
}

func (e *ErrProvider) Unwrap() error {
	return e.Err
}
