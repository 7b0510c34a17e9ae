package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Instruction(t *testing.T) {
	svc := NewService()

	inst, err := svc.Instruction(context.Background(), 1500000)

	require.NoError(t, err)
	assert.Equal(t, "Bank Central Asia (BCA)", inst.Bank)
	assert.Equal(t, "1234567890", inst.AccountNumber)
	assert.Equal(t, "PT Digital Kreasi", inst.AccountName)
	assert.Equal(t, 1500000, inst.Amount)
	assert.Regexp(t, `^INV/\d{4}/\d{2}/\d{6}$`, inst.Reference)
	assert.True(t, inst.ExpiresAt.After(time.Now()))
}

func TestService_Instruction_InvalidAmount(t *testing.T) {
	svc := NewService()

	_, err := svc.Instruction(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Instruction(context.Background(), -100)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestService_Confirm_IssuedReference(t *testing.T) {
	ctx := context.Background()
	svc := NewService()
	inst, err := svc.Instruction(ctx, 1000)
	require.NoError(t, err)

	ok, err := svc.Confirm(ctx, inst.Reference)

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestService_Confirm_SingleUse(t *testing.T) {
	ctx := context.Background()
	svc := NewService()
	inst, err := svc.Instruction(ctx, 1000)
	require.NoError(t, err)

	ok, err := svc.Confirm(ctx, inst.Reference)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.Confirm(ctx, inst.Reference)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_Confirm_UnknownReference(t *testing.T) {
	svc := NewService()

	ok, err := svc.Confirm(context.Background(), "INV/2026/01/000000")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_Confirm_ExpiredReference(t *testing.T) {
	ctx := context.Background()
	svc := NewService()

	issued := time.Now()
	svc.now = func() time.Time { return issued }
	inst, err := svc.Instruction(ctx, 1000)
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(instructionTTL + time.Minute) }

	ok, err := svc.Confirm(ctx, inst.Reference)
	require.NoError(t, err)
	assert.False(t, ok)
}
