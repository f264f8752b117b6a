package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// SignOrder computes the hex HMAC-SHA256 the provider sends back with a
// completed payment: the mac is taken over "<orderID>|<paymentID>" using the
// key secret shared with the provider.
func SignOrder(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether signature matches the locally computed mac.
// The comparison is constant-time; a client must not be able to probe the
// expected signature byte by byte.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	expected := SignOrder(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
