package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Method string

const (
	MethodCreditCard      Method = "credit_card"
	MethodInstantTransfer Method = "instant_transfer"
)

func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodCreditCard, MethodInstantTransfer:
		return Method(s), nil
	default:
		return "", fmt.Errorf("unknown payment method %q", s)
	}
}

type Result string

const (
	ResultSucceeded Result = "succeeded"
	ResultFailed    Result = "failed"
	ResultCancelled Result = "cancelled"
)

// Instant transfer is a static reference code with a fixed validity
// window; it is only communicated to the buyer, never enforced here.
const (
	TransferReference = "LC-0004-7311"
	TransferValidity  = 30 * time.Minute
)

// CardInput carries the card form fields. Opaque strings, validated only
// for minimum length and presence, never persisted.
type CardInput struct {
	Number     string `json:"number" validate:"required,min=16"`
	HolderName string `json:"holder_name" validate:"required"`
	Expiry     string `json:"expiry" validate:"required,min=5"`
	CVC        string `json:"cvc" validate:"required,min=3"`
}

var validate = validator.New()

var cardMessages = map[string]string{
	"Number":     "card number must be at least 16 digits",
	"HolderName": "holder name is required",
	"Expiry":     "expiry must be in MM/YY format",
	"CVC":        "security code must be at least 3 digits",
}

// ValidationError reports bad card input, field by field. The form stays
// open and nothing else changes.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid card input: %d field(s)", len(e.Fields))
}

// ErrProcessing is returned when a buyer submits while a payment of
// theirs is still settling.
var ErrProcessing = errors.New("payment already processing")

// CheckoutFinisher discards the buyer's checkout state, in-memory
// selection and persisted session both, once settlement succeeds.
type CheckoutFinisher interface {
	Complete(ctx context.Context, userID string) error
}

// Orchestrator drives payment-method submission and simulated settlement.
// It never mutates the selection or its summary while a checkout is in
// flight; it only finishes the checkout as a whole on success.
type Orchestrator struct {
	delay    time.Duration
	checkout CheckoutFinisher
	log      *zap.Logger

	mu         sync.Mutex
	processing map[string]bool
}

func NewOrchestrator(delay time.Duration, checkout CheckoutFinisher, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		delay:      delay,
		checkout:   checkout,
		processing: make(map[string]bool),
		log:        log,
	}
}

// Submit validates the instrument, settles after the configured delay and
// resolves the result. Credit cards are validated locally; a violation
// returns ValidationError before any delay and with no side effects.
// Instant transfers skip client-side validation entirely.
//
// Cancelling ctx before settlement discards the in-flight payment: the
// result is ResultCancelled, onComplete is not invoked and the checkout
// state is left untouched. On success onComplete is invoked exactly once
// and the checkout is finished, discarding selection and session.
func (o *Orchestrator) Submit(ctx context.Context, userID string, method Method, card *CardInput, onComplete func(Result)) (Result, error) {
	if method == MethodCreditCard {
		if err := validateCard(card); err != nil {
			return ResultFailed, err
		}
	}

	if err := o.acquire(userID); err != nil {
		return ResultFailed, err
	}
	defer o.release(userID)

	timer := time.NewTimer(o.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		o.log.Info("payment cancelled before settlement", zap.String("user", userID))
		return ResultCancelled, nil
	case <-timer.C:
	}

	// Simulated settlement always approves. A real gateway client would
	// map declines, network errors and timeouts onto ResultFailed here.
	if err := o.checkout.Complete(ctx, userID); err != nil {
		o.log.Warn("could not discard checkout state after settlement", zap.String("user", userID), zap.Error(err))
	}

	if onComplete != nil {
		onComplete(ResultSucceeded)
	}
	return ResultSucceeded, nil
}

func validateCard(card *CardInput) error {
	if card == nil {
		card = &CardInput{}
	}

	err := validate.Struct(card)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := cardMessages[fe.Field()]
		if !ok {
			msg = "invalid value"
		}
		fields[fe.Field()] = msg
	}
	return &ValidationError{Fields: fields}
}

func (o *Orchestrator) acquire(userID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.processing[userID] {
		return ErrProcessing
	}
	o.processing[userID] = true
	return nil
}

func (o *Orchestrator) release(userID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.processing, userID)
}
