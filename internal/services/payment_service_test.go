// internal/services/payment_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGatewayAmount(t *testing.T) {
	assert.Equal(t, int64(29900), gatewayAmount(299))
	assert.Equal(t, int64(34900), gatewayAmount(349))
	assert.Equal(t, int64(218555), gatewayAmount(2185.55))
	assert.Equal(t, int64(9950), gatewayAmount(99.5))
	assert.Equal(t, int64(0), gatewayAmount(0))
}
