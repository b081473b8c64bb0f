package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyWebhookSignature(t *testing.T) {
	body := []byte(`{"event":"payment.success","order_number":"ORD-1"}`)
	sig := SignWebhookBody("shared-secret", body)

	assert.True(t, VerifyWebhookSignature("shared-secret", body, sig))
	assert.False(t, VerifyWebhookSignature("other-secret", body, sig))
	assert.False(t, VerifyWebhookSignature("shared-secret", []byte(`tampered`), sig))
	assert.False(t, VerifyWebhookSignature("shared-secret", body, "deadbeef"))
}
