package voucher

import (
	"context"
	"strings"
)

// Result is the outcome of applying a voucher code to a base total.
type Result struct {
	Valid    bool   `json:"valid"`
	Discount int    `json:"discount"`
	Message  string `json:"message,omitempty"`
}

// Validator is the voucher collaborator contract.
type Validator interface {
	Apply(ctx context.Context, code string, baseTotal int) (Result, error)
}

// Service validates voucher codes against a fixed in-memory rule set.
// Invalid codes are a Result with a user-facing message, never an error.
type Service struct {
	percentOff map[string]int
}

func NewService() *Service {
	return &Service{
		percentOff: map[string]int{
			"DISKON10": 10,
		},
	}
}

func (s *Service) Apply(ctx context.Context, code string, baseTotal int) (Result, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return Result{Message: "Masukkan kode voucher terlebih dahulu"}, nil
	}

	percent, ok := s.percentOff[code]
	if !ok {
		return Result{Message: "Voucher tidak valid atau sudah kadaluarsa"}, nil
	}

	return Result{
		Valid:    true,
		Discount: baseTotal * percent / 100,
	}, nil
}
