package voucher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Apply_ValidCode(t *testing.T) {
	svc := NewService()

	result, err := svc.Apply(context.Background(), "DISKON10", 2000000)

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 200000, result.Discount)
	assert.Empty(t, result.Message)
}

func TestService_Apply_CaseAndWhitespaceInsensitive(t *testing.T) {
	svc := NewService()

	result, err := svc.Apply(context.Background(), "  diskon10 ", 1000)

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 100, result.Discount)
}

func TestService_Apply_EmptyCode(t *testing.T) {
	svc := NewService()

	result, err := svc.Apply(context.Background(), "", 1000)

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, 0, result.Discount)
	assert.Equal(t, "Masukkan kode voucher terlebih dahulu", result.Message)
}

func TestService_Apply_UnknownCode(t *testing.T) {
	svc := NewService()

	result, err := svc.Apply(context.Background(), "GRATIS99", 1000)

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, 0, result.Discount)
	assert.Equal(t, "Voucher tidak valid atau sudah kadaluarsa", result.Message)
}

func TestService_Apply_ZeroBaseTotal(t *testing.T) {
	svc := NewService()

	result, err := svc.Apply(context.Background(), "DISKON10", 0)

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 0, result.Discount)
}
