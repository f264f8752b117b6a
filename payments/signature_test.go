package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	secret := "test_secret_key"

	sig := SignOrder("order_123", "pay_456", secret)
	assert.True(t, VerifySignature("order_123", "pay_456", sig, secret))
}

func TestVerifySignatureTamperedPaymentID(t *testing.T) {
	secret := "test_secret_key"

	sig := SignOrder("order_123", "pay_456", secret)
	assert.False(t, VerifySignature("order_123", "pay_999", sig, secret))
}

func TestVerifySignatureWrongSecret(t *testing.T) {
	sig := SignOrder("order_123", "pay_456", "someone_elses_secret")
	assert.False(t, VerifySignature("order_123", "pay_456", sig, "test_secret_key"))
}

func TestVerifySignatureGarbage(t *testing.T) {
	assert.False(t, VerifySignature("order_123", "pay_456", "", "test_secret_key"))
	assert.False(t, VerifySignature("order_123", "pay_456", "deadbeef", "test_secret_key"))
}
