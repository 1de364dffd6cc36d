// Package signature verifies payment provider callback signatures.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

var ErrEmptyInput = errors.New("signature input must not be empty")

// Sign returns lowercase hex HMAC-SHA256(secret, orderRef + "|" + paymentRef).
func Sign(orderRef, paymentRef, secret string) (string, error) {
	if orderRef == "" || paymentRef == "" || secret == "" {
		return "", ErrEmptyInput
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderRef + "|" + paymentRef))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

func Verify(orderRef, paymentRef, provided, secret string) bool {
	if provided == "" {
		return false
	}
	expected, err := Sign(orderRef, paymentRef, secret)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(provided))
}

// HMACVerifier binds Verify to a secret held only in process memory.
type HMACVerifier struct {
	secret string
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: secret}
}

func (v *HMACVerifier) Verify(orderRef, paymentRef, provided string) bool {
	return Verify(orderRef, paymentRef, provided, v.secret)
}

// Mask keeps the first four characters for log correlation.
func Mask(sig string) string {
	if len(sig) <= 4 {
		return strings.Repeat("*", len(sig))
	}
	return sig[:4] + strings.Repeat("*", 8)
}
