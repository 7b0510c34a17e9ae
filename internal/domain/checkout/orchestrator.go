package checkout

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/event"
	"github.com/example/storefront/internal/otp"
	"github.com/example/storefront/internal/payment"
	"github.com/example/storefront/internal/voucher"
)

var (
	ErrNoSelection       = errors.New("no items selected for checkout")
	ErrSessionNotFound   = errors.New("checkout session not found")
	ErrContactIncomplete = errors.New("name, whatsapp and email are required")
	ErrNotVerified       = errors.New("whatsapp number is not verified")
	ErrNoInstruction     = errors.New("no payment instruction issued")
	ErrUnknownMethod     = errors.New("unknown payment method")
	ErrNotConfirmed      = errors.New("payment was not confirmed")
)

// Step is the position in the linear checkout sequence.
type Step int

const (
	StepContact Step = iota + 1
	StepVerification
	StepPayment
)

// PaymentMethods are the options offered on the payment step. Only bank
// transfer has an instruction flow behind it; the rest share it for now.
var PaymentMethods = []string{"Bank Transfer", "Virtual Account", "E-Wallet", "Credit Card"}

// Contact is the buyer information collected on the first step.
type Contact struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp"`
}

// Session is one user's progress through checkout. The selected cart subset
// and its total are always re-read from the cart store, never cached here.
type Session struct {
	ID          string               `json:"id"`
	UserID      string               `json:"user_id"`
	Step        Step                 `json:"step"`
	Contact     Contact              `json:"contact"`
	Verified    bool                 `json:"verified"`
	Voucher     string               `json:"voucher,omitempty"`
	Discount    int                  `json:"discount"`
	Method      string               `json:"method,omitempty"`
	Instruction *payment.Instruction `json:"instruction,omitempty"`
	StartedAt   time.Time            `json:"started_at"`
}

// Orchestrator drives the checkout sequence: contact info, WhatsApp
// verification, then payment. It reads cart projections only; the single
// cart mutation it ever performs is RemoveSelected after a confirmed
// payment.
type Orchestrator struct {
	mu       sync.Mutex
	sessions map[string]*Session // userID -> session

	carts     *cart.Manager
	otp       otp.Verifier
	vouchers  voucher.Validator
	payments  payment.Confirmer
	orders    *order.History
	publisher event.Publisher
}

func NewOrchestrator(
	carts *cart.Manager,
	otpSvc otp.Verifier,
	vouchers voucher.Validator,
	payments payment.Confirmer,
	orders *order.History,
	publisher event.Publisher,
) *Orchestrator {
	return &Orchestrator{
		sessions:  make(map[string]*Session),
		carts:     carts,
		otp:       otpSvc,
		vouchers:  vouchers,
		payments:  payments,
		orders:    orders,
		publisher: publisher,
	}
}

// Start opens a checkout session for the user's currently selected items.
// An existing session is replaced.
func (o *Orchestrator) Start(ctx context.Context, userID string) (*Session, error) {
	store := o.carts.Store(ctx, userID)
	if len(store.SelectedItems()) == 0 {
		return nil, ErrNoSelection
	}

	session := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Step:      StepContact,
		StartedAt: time.Now(),
	}

	o.mu.Lock()
	o.sessions[userID] = session
	o.mu.Unlock()

	return snapshot(session), nil
}

// Session returns the user's current checkout session.
func (o *Orchestrator) Session(userID string) (*Session, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	session, ok := o.sessions[userID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return snapshot(session), nil
}

// SubmitContact records the buyer's contact fields and advances to the
// verification step. All three fields are required.
func (o *Orchestrator) SubmitContact(ctx context.Context, userID string, contact Contact) error {
	if contact.Name == "" || contact.Email == "" || contact.WhatsApp == "" {
		return ErrContactIncomplete
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	session, ok := o.sessions[userID]
	if !ok {
		return ErrSessionNotFound
	}

	session.Contact = contact
	if session.Step < StepVerification {
		session.Step = StepVerification
	}
	return nil
}

// SendCode requests a one-time code for the session's WhatsApp number.
func (o *Orchestrator) SendCode(ctx context.Context, userID string) error {
	o.mu.Lock()
	session, ok := o.sessions[userID]
	if !ok {
		o.mu.Unlock()
		return ErrSessionNotFound
	}
	contact := session.Contact.WhatsApp
	o.mu.Unlock()

	if contact == "" {
		return ErrContactIncomplete
	}
	return o.otp.Send(ctx, contact)
}

// VerifyCode checks a submitted one-time code. A correct code marks the
// session verified and advances to the payment step.
func (o *Orchestrator) VerifyCode(ctx context.Context, userID, code string) (bool, error) {
	o.mu.Lock()
	session, ok := o.sessions[userID]
	if !ok {
		o.mu.Unlock()
		return false, ErrSessionNotFound
	}
	contact := session.Contact.WhatsApp
	o.mu.Unlock()

	verified, err := o.otp.Verify(ctx, contact, code)
	if err != nil || !verified {
		return false, err
	}

	o.mu.Lock()
	if session, ok := o.sessions[userID]; ok {
		session.Verified = true
		if session.Step < StepPayment {
			session.Step = StepPayment
		}
	}
	o.mu.Unlock()
	return true, nil
}

// ApplyVoucher validates a voucher code against the selected subset total
// and stores the discount on the session when valid.
func (o *Orchestrator) ApplyVoucher(ctx context.Context, userID, code string) (voucher.Result, error) {
	o.mu.Lock()
	_, ok := o.sessions[userID]
	o.mu.Unlock()
	if !ok {
		return voucher.Result{}, ErrSessionNotFound
	}

	baseTotal := o.carts.Store(ctx, userID).SelectedTotal()
	result, err := o.vouchers.Apply(ctx, code, baseTotal)
	if err != nil {
		return voucher.Result{}, err
	}

	if result.Valid {
		o.mu.Lock()
		if session, ok := o.sessions[userID]; ok {
			session.Voucher = code
			session.Discount = result.Discount
		}
		o.mu.Unlock()
	}
	return result, nil
}

// ChooseMethod picks a payment method and issues a transfer instruction for
// the discounted selected total. Requires a verified session.
func (o *Orchestrator) ChooseMethod(ctx context.Context, userID, method string) (*payment.Instruction, error) {
	if !validMethod(method) {
		return nil, ErrUnknownMethod
	}

	o.mu.Lock()
	session, ok := o.sessions[userID]
	if !ok {
		o.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if !session.Verified {
		o.mu.Unlock()
		return nil, ErrNotVerified
	}
	discount := session.Discount
	o.mu.Unlock()

	amount := o.carts.Store(ctx, userID).SelectedTotal() - discount
	instruction, err := o.payments.Instruction(ctx, amount)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	if session, ok := o.sessions[userID]; ok {
		session.Method = method
		session.Instruction = instruction
	}
	o.mu.Unlock()
	return instruction, nil
}

// ConfirmPayment asks the payment collaborator to confirm the issued
// instruction. On success it records the order, removes exactly the
// purchased subset from the cart (never the whole cart) and closes the
// session.
func (o *Orchestrator) ConfirmPayment(ctx context.Context, userID string) (*order.Order, error) {
	o.mu.Lock()
	session, ok := o.sessions[userID]
	if !ok {
		o.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if session.Instruction == nil {
		o.mu.Unlock()
		return nil, ErrNoInstruction
	}
	instruction := *session.Instruction
	o.mu.Unlock()

	confirmed, err := o.payments.Confirm(ctx, instruction.Reference)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		return nil, ErrNotConfirmed
	}

	store := o.carts.Store(ctx, userID)
	selected := store.SelectedItems()

	items := make([]order.Item, 0, len(selected))
	for _, it := range selected {
		items = append(items, order.Item{
			ID:    it.ID,
			Name:  it.Name,
			Price: it.Price,
			Qty:   it.Qty,
		})
	}

	o.mu.Lock()
	recorded := o.orders.Record(order.Order{
		UserID:    userID,
		Items:     items,
		Total:     instruction.Amount,
		Discount:  session.Discount,
		Method:    session.Method,
		Reference: instruction.Reference,
	})
	contact := session.Contact.WhatsApp
	delete(o.sessions, userID)
	o.mu.Unlock()

	// Drop only the purchased subset; unselected items stay for later.
	store.RemoveSelected(ctx)

	o.publishConfirmed(ctx, recorded, contact, instruction)

	return &recorded, nil
}

func (o *Orchestrator) publishConfirmed(ctx context.Context, recorded order.Order, contact string, instruction payment.Instruction) {
	if o.publisher == nil {
		return
	}
	env, err := event.Wrap(event.TypePaymentConfirmed, event.PaymentConfirmed{
		OrderID:     recorded.ID,
		UserID:      recorded.UserID,
		Contact:     contact,
		Amount:      instruction.Amount,
		Reference:   instruction.Reference,
		ConfirmedAt: time.Now(),
	})
	if err != nil {
		log.Printf("[Checkout] failed to build PaymentConfirmed event: %v", err)
		return
	}
	if err := o.publisher.Publish(ctx, recorded.UserID, env); err != nil {
		log.Printf("[Checkout] failed to publish PaymentConfirmed event: %v", err)
	}
}

func validMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

func snapshot(s *Session) *Session {
	copied := *s
	if s.Instruction != nil {
		inst := *s.Instruction
		copied.Instruction = &inst
	}
	return &copied
}
