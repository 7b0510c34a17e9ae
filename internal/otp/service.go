package otp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/example/storefront/internal/event"
)

var (
	ErrContactRequired = errors.New("contact number is required")
)

const (
	codeLength = 4
	codeTTL    = 5 * time.Minute
)

// Verifier is the one-time code exchange contract. The mock implementation
// below and a future real WhatsApp gateway share it; callers only ever see
// request/response, never the timer tricks behind the mock.
type Verifier interface {
	Send(ctx context.Context, contact string) error
	Verify(ctx context.Context, contact, code string) (bool, error)
}

type challenge struct {
	code      string
	expiresAt time.Time
}

// Service issues 4-digit one-time codes and checks them against the most
// recent challenge per contact. Delivery happens through the event
// publisher; no real message leaves the process.
type Service struct {
	mu        sync.Mutex
	pending   map[string]challenge
	publisher event.Publisher
	now       func() time.Time
}

func NewService(publisher event.Publisher) *Service {
	return &Service{
		pending:   make(map[string]challenge),
		publisher: publisher,
		now:       time.Now,
	}
}

// Send issues a fresh code for the contact, replacing any earlier one.
func (s *Service) Send(ctx context.Context, contact string) error {
	if contact == "" {
		return ErrContactRequired
	}

	code := fmt.Sprintf("%04d", rand.Intn(10000))
	now := s.now()

	s.mu.Lock()
	s.pending[contact] = challenge{code: code, expiresAt: now.Add(codeTTL)}
	s.mu.Unlock()

	if s.publisher != nil {
		env, err := event.Wrap(event.TypeOTPRequested, event.OTPRequested{
			Contact:     contact,
			Code:        code,
			RequestedAt: now,
		})
		if err != nil {
			return err
		}
		if err := s.publisher.Publish(ctx, contact, env); err != nil {
			return err
		}
	} else {
		// Without a publisher there is no delivery channel at all, so
		// surface the code in the log for manual testing.
		log.Printf("[OTP] code for %s: %s", contact, code)
	}

	return nil
}

// Verify checks a submitted code. Wrong, expired or never-issued codes are
// a false result, not an error; errors are reserved for delivery failures.
func (s *Service) Verify(ctx context.Context, contact, code string) (bool, error) {
	if contact == "" {
		return false, ErrContactRequired
	}
	if len(code) != codeLength {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.pending[contact]
	if !ok {
		return false, nil
	}
	if s.now().After(ch.expiresAt) {
		delete(s.pending, contact)
		return false, nil
	}
	if ch.code != code {
		return false, nil
	}

	delete(s.pending, contact)
	return true, nil
}
