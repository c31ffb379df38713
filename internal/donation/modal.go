// Package donation implements the donation modal: a details → processing →
// success flow that is shown and hidden by the page root.
package donation

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"animalrescue/internal/domain"
	"animalrescue/internal/payment"
)

const (
	DefaultProcessingDelay = 1500 * time.Millisecond
	DefaultResetDelay      = 300 * time.Millisecond

	genericFailure = "We couldn't process your donation. Please try again."
)

// Config tunes a Modal. Zero values fall back to the defaults.
type Config struct {
	ProcessingDelay time.Duration
	ResetDelay      time.Duration
	Currency        string
	Clock           Clock
}

// Snapshot is a copy of the modal state for rendering.
type Snapshot struct {
	Visible     bool              `json:"visible"`
	Step        domain.Step       `json:"step"`
	Amount      int               `json:"amount"`
	Trigger     domain.Trigger    `json:"trigger,omitempty"`
	Sponsor     string            `json:"sponsor,omitempty"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
	Receipt     *payment.Receipt  `json:"receipt,omitempty"`
	Failure     string            `json:"failure,omitempty"`
}

// Modal is one donation session lifecycle, reused across open/close cycles.
// All methods are safe for concurrent use.
type Modal struct {
	mu      sync.Mutex
	cfg     Config
	clock   Clock
	gateway payment.Gateway
	logger  zerolog.Logger

	visible     bool
	step        domain.Step
	amount      int
	trigger     domain.Trigger
	sponsor     string
	fieldErrors map[string]string
	receipt     *payment.Receipt
	failure     string

	// epoch changes on every open and close; timer callbacks carrying an
	// older epoch are ignored.
	epoch        uint64
	pending      Timer
	cancelCharge context.CancelFunc
	resetTimer   Timer
}

// NewModal returns a closed modal that charges through gateway.
func NewModal(cfg Config, gateway payment.Gateway, logger zerolog.Logger) *Modal {
	if cfg.ProcessingDelay <= 0 {
		cfg.ProcessingDelay = DefaultProcessingDelay
	}
	if cfg.ResetDelay <= 0 {
		cfg.ResetDelay = DefaultResetDelay
	}
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	clock := cfg.Clock
	if clock == nil {
		clock = WallClock
	}
	return &Modal{
		cfg:     cfg,
		clock:   clock,
		gateway: gateway,
		logger:  logger,
		step:    domain.StepDetails,
		amount:  domain.DefaultAmount,
	}
}

// Open shows the modal in the details step with the default amount. Opening
// an already visible modal leaves its state untouched.
func (m *Modal) Open(trigger domain.Trigger, sponsor string) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.visible {
		return m.snapshotLocked()
	}
	if m.resetTimer != nil {
		m.resetTimer.Stop()
		m.resetTimer = nil
	}
	m.resetLocked()
	m.epoch++
	m.visible = true
	m.trigger = trigger
	m.sponsor = sponsor
	m.logger.Debug().Str("trigger", string(trigger)).Str("sponsor", sponsor).Msg("donation modal opened")
	return m.snapshotLocked()
}

// SelectAmount changes the donation amount. Only allowed in the details step.
func (m *Modal) SelectAmount(amount int) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.visible {
		return m.snapshotLocked(), domain.ErrNotVisible
	}
	if m.step != domain.StepDetails {
		return m.snapshotLocked(), domain.ErrAmountLocked
	}
	if !domain.IsPresetAmount(amount) {
		return m.snapshotLocked(), fmt.Errorf("select amount %d: %w", amount, domain.ErrInvalidAmount)
	}
	m.amount = amount
	delete(m.fieldErrors, "amount")
	return m.snapshotLocked(), nil
}

// Submit validates form and, when it passes, moves to processing and starts
// the fixed delay after which the gateway is charged. A zero form amount uses
// the currently selected amount.
func (m *Modal) Submit(form Form) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.visible {
		return m.snapshotLocked(), domain.ErrNotVisible
	}
	if m.step != domain.StepDetails {
		return m.snapshotLocked(), fmt.Errorf("submit from %s: %w", m.step, domain.ErrInvalidTransition)
	}
	if form.Amount == 0 {
		form.Amount = m.amount
	}
	form, err := form.Validate()
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			m.fieldErrors = verr.Fields
		}
		return m.snapshotLocked(), err
	}

	m.amount = form.Amount
	m.fieldErrors = nil
	m.step = domain.StepProcessing

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelCharge = cancel
	req := payment.ChargeRequest{
		Amount:     form.Amount,
		Currency:   m.cfg.Currency,
		CardNumber: form.CardNumber,
		Expiry:     form.Expiry,
		CVC:        form.CVC,
		Reference:  string(m.trigger),
	}
	epoch := m.epoch
	m.pending = m.clock.AfterFunc(m.cfg.ProcessingDelay, func() {
		m.charge(ctx, epoch, req)
	})
	m.logger.Debug().Int("amount", form.Amount).Msg("donation processing")
	return m.snapshotLocked(), nil
}

func (m *Modal) charge(ctx context.Context, epoch uint64, req payment.ChargeRequest) {
	m.mu.Lock()
	if !m.currentLocked(epoch) {
		m.mu.Unlock()
		return
	}
	m.pending = nil
	m.mu.Unlock()

	receipt, err := m.gateway.Charge(ctx, req)

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.currentLocked(epoch) {
		return
	}
	if m.cancelCharge != nil {
		m.cancelCharge()
		m.cancelCharge = nil
	}
	if err != nil {
		m.step = domain.StepFailed
		m.failure = genericFailure
		var perr *payment.Error
		if errors.As(err, &perr) && perr.Message != "" {
			m.failure = perr.Message
		}
		m.logger.Warn().Err(err).Int("amount", req.Amount).Msg("donation charge failed")
		return
	}
	m.step = domain.StepSuccess
	m.receipt = &receipt
	m.logger.Info().Str("receipt", receipt.ID).Int("amount", receipt.Amount).Msg("donation succeeded")
}

func (m *Modal) currentLocked(epoch uint64) bool {
	return m.visible && m.epoch == epoch && m.step == domain.StepProcessing
}

// Retry returns a failed session to the details step, keeping the amount.
func (m *Modal) Retry() (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.visible {
		return m.snapshotLocked(), domain.ErrNotVisible
	}
	if m.step != domain.StepFailed {
		return m.snapshotLocked(), fmt.Errorf("retry from %s: %w", m.step, domain.ErrInvalidTransition)
	}
	m.step = domain.StepDetails
	m.failure = ""
	return m.snapshotLocked(), nil
}

// Close hides the modal from any step. A pending charge is cancelled and the
// step returns to details after the reset delay. Closing a closed modal is a
// no-op.
func (m *Modal) Close() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.visible {
		return m.snapshotLocked()
	}
	m.visible = false
	m.epoch++
	m.stopPendingLocked()

	epoch := m.epoch
	m.resetTimer = m.clock.AfterFunc(m.cfg.ResetDelay, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if !m.visible && m.epoch == epoch {
			m.resetLocked()
			m.resetTimer = nil
		}
	})
	m.logger.Debug().Str("step", string(m.step)).Msg("donation modal closed")
	return m.snapshotLocked()
}

// Release closes the modal and drops every scheduled callback. Used when the
// owning visitor is evicted.
func (m *Modal) Release() {
	m.Close()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.resetTimer != nil {
		m.resetTimer.Stop()
		m.resetTimer = nil
	}
	m.resetLocked()
}

// Snapshot returns the current state.
func (m *Modal) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Modal) stopPendingLocked() {
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
	if m.cancelCharge != nil {
		m.cancelCharge()
		m.cancelCharge = nil
	}
}

func (m *Modal) resetLocked() {
	m.step = domain.StepDetails
	m.amount = domain.DefaultAmount
	m.fieldErrors = nil
	m.receipt = nil
	m.failure = ""
}

func (m *Modal) snapshotLocked() Snapshot {
	s := Snapshot{
		Visible: m.visible,
		Step:    m.step,
		Amount:  m.amount,
		Trigger: m.trigger,
		Sponsor: m.sponsor,
		Failure: m.failure,
	}
	if len(m.fieldErrors) > 0 {
		s.FieldErrors = maps.Clone(m.fieldErrors)
	}
	if m.receipt != nil {
		r := *m.receipt
		s.Receipt = &r
	}
	return s
}
