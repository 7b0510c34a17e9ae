package payment

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var (
	ErrInvalidAmount = errors.New("amount must be positive")
)

// Demo bank transfer destination.
const (
	bankName      = "Bank Central Asia (BCA)"
	accountNumber = "1234567890"
	accountName   = "PT Digital Kreasi"

	instructionTTL = 24 * time.Hour
)

// Instruction tells the buyer where and how much to transfer.
type Instruction struct {
	Bank          string    `json:"bank"`
	AccountNumber string    `json:"account_number"`
	AccountName   string    `json:"account_name"`
	Amount        int       `json:"amount"`
	Reference     string    `json:"reference"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// Confirmer is the payment collaborator contract.
type Confirmer interface {
	Instruction(ctx context.Context, amount int) (*Instruction, error)
	Confirm(ctx context.Context, reference string) (bool, error)
}

// Service simulates a bank transfer gateway: it issues instructions with a
// unique invoice reference and confirms any reference it has issued.
type Service struct {
	mu      sync.Mutex
	pending map[string]Instruction
	now     func() time.Time
}

func NewService() *Service {
	return &Service{
		pending: make(map[string]Instruction),
		now:     time.Now,
	}
}

// Instruction issues transfer details for the given amount.
func (s *Service) Instruction(ctx context.Context, amount int) (*Instruction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	now := s.now()
	inst := Instruction{
		Bank:          bankName,
		AccountNumber: accountNumber,
		AccountName:   accountName,
		Amount:        amount,
		Reference:     newReference(now),
		ExpiresAt:     now.Add(instructionTTL),
	}

	s.mu.Lock()
	s.pending[inst.Reference] = inst
	s.mu.Unlock()

	return &inst, nil
}

// Confirm reports whether the referenced transfer went through. Unknown or
// expired references are not confirmed; errors are reserved for gateway
// failures, which the simulation never produces.
func (s *Service) Confirm(ctx context.Context, reference string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, ok := s.pending[reference]
	if !ok {
		return false, nil
	}
	if s.now().After(inst.ExpiresAt) {
		delete(s.pending, reference)
		return false, nil
	}

	delete(s.pending, reference)
	return true, nil
}

// newReference builds an invoice reference like INV/2023/05/123456.
func newReference(now time.Time) string {
	return fmt.Sprintf("INV/%d/%02d/%06d", now.Year(), int(now.Month()), 100000+rand.Intn(900000))
}
