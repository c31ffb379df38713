package donation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"animalrescue/internal/domain"
	"animalrescue/internal/payment"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingGateway struct {
	mu    sync.Mutex
	calls []payment.ChargeRequest
	err   error
}

func (g *recordingGateway) Charge(ctx context.Context, req payment.ChargeRequest) (payment.Receipt, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, req)
	if g.err != nil {
		return payment.Receipt{}, g.err
	}
	return payment.Receipt{ID: fmt.Sprintf("rcpt-%d", len(g.calls)), Amount: req.Amount, Currency: req.Currency}, nil
}

func (g *recordingGateway) count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func validForm(amount int) Form {
	return Form{Amount: amount, CardNumber: "4242 4242 4242 4242", Expiry: "12/30", CVC: "123"}
}

func newTestModal(t *testing.T, gw payment.Gateway) (*Modal, *manualClock) {
	t.Helper()
	clock := newManualClock()
	m := NewModal(Config{Clock: clock}, gw, zerolog.Nop())
	return m, clock
}

func TestModalStartsClosed(t *testing.T) {
	m, _ := newTestModal(t, &recordingGateway{})
	s := m.Snapshot()
	assert.False(t, s.Visible)
	assert.Equal(t, domain.StepDetails, s.Step)
	assert.Equal(t, domain.DefaultAmount, s.Amount)
}

func TestOpenShowsDetailsWithDefaultAmount(t *testing.T) {
	m, _ := newTestModal(t, &recordingGateway{})
	s := m.Open(domain.TriggerHero, "")
	assert.True(t, s.Visible)
	assert.Equal(t, domain.StepDetails, s.Step)
	assert.Equal(t, 50, s.Amount)
	assert.Equal(t, domain.TriggerHero, s.Trigger)
}

func TestSelectAmountPresets(t *testing.T) {
	for _, amount := range domain.PresetAmounts {
		t.Run(fmt.Sprint(amount), func(t *testing.T) {
			m, _ := newTestModal(t, &recordingGateway{})
			m.Open(domain.TriggerNavbar, "")
			s, err := m.SelectAmount(amount)
			require.NoError(t, err)
			assert.Equal(t, amount, s.Amount)
		})
	}
}

func TestSelectAmountRejectsNonPreset(t *testing.T) {
	m, _ := newTestModal(t, &recordingGateway{})
	m.Open(domain.TriggerNavbar, "")
	s, err := m.SelectAmount(42)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Equal(t, 50, s.Amount)
}

func TestSelectAmountWhileClosed(t *testing.T) {
	m, _ := newTestModal(t, &recordingGateway{})
	_, err := m.SelectAmount(10)
	assert.ErrorIs(t, err, domain.ErrNotVisible)
}

func TestSubmitProcessesThenSucceedsAfterExactDelay(t *testing.T) {
	gw := &recordingGateway{}
	m, clock := newTestModal(t, gw)
	m.Open(domain.TriggerCTA, "")

	s, err := m.Submit(validForm(25))
	require.NoError(t, err)
	assert.Equal(t, domain.StepProcessing, s.Step)

	clock.Advance(DefaultProcessingDelay - time.Millisecond)
	assert.Equal(t, domain.StepProcessing, m.Snapshot().Step)
	assert.Zero(t, gw.count())

	clock.Advance(time.Millisecond)
	s = m.Snapshot()
	assert.Equal(t, domain.StepSuccess, s.Step)
	require.NotNil(t, s.Receipt)
	assert.Equal(t, 25, s.Receipt.Amount)
	assert.Equal(t, 1, gw.count())
}

func TestSubmitWithEmptyRequiredFieldStaysInDetails(t *testing.T) {
	for _, field := range []string{"card_number", "expiry", "cvc"} {
		t.Run(field, func(t *testing.T) {
			gw := &recordingGateway{}
			m, clock := newTestModal(t, gw)
			m.Open(domain.TriggerFooter, "")

			form := validForm(50)
			switch field {
			case "card_number":
				form.CardNumber = ""
			case "expiry":
				form.Expiry = ""
			case "cvc":
				form.CVC = ""
			}
			s, err := m.Submit(form)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, domain.StepDetails, s.Step)
			assert.Contains(t, s.FieldErrors, field)

			clock.Advance(10 * time.Second)
			assert.Equal(t, domain.StepDetails, m.Snapshot().Step)
			assert.Zero(t, gw.count())
		})
	}
}

func TestSuccessfulSubmitClearsFieldErrors(t *testing.T) {
	m, _ := newTestModal(t, &recordingGateway{})
	m.Open(domain.TriggerHero, "")
	_, err := m.Submit(Form{})
	require.Error(t, err)

	s, err := m.Submit(validForm(10))
	require.NoError(t, err)
	assert.Empty(t, s.FieldErrors)
}

func TestSubmitUsesSelectedAmountWhenFormOmitsIt(t *testing.T) {
	gw := &recordingGateway{}
	m, clock := newTestModal(t, gw)
	m.Open(domain.TriggerHero, "")
	_, err := m.SelectAmount(100)
	require.NoError(t, err)

	form := validForm(0)
	_, err = m.Submit(form)
	require.NoError(t, err)
	clock.Advance(DefaultProcessingDelay)

	s := m.Snapshot()
	require.NotNil(t, s.Receipt)
	assert.Equal(t, 100, s.Receipt.Amount)
}

func TestAmountLockedOutsideDetails(t *testing.T) {
	m, clock := newTestModal(t, &recordingGateway{})
	m.Open(domain.TriggerHero, "")
	_, err := m.Submit(validForm(25))
	require.NoError(t, err)

	s, err := m.SelectAmount(100)
	assert.ErrorIs(t, err, domain.ErrAmountLocked)
	assert.Equal(t, 25, s.Amount)

	clock.Advance(DefaultProcessingDelay)
	s, err = m.SelectAmount(10)
	assert.ErrorIs(t, err, domain.ErrAmountLocked)
	assert.Equal(t, domain.StepSuccess, s.Step)
	assert.Equal(t, 25, s.Amount)
}

func TestSubmitTwiceIsRejected(t *testing.T) {
	gw := &recordingGateway{}
	m, clock := newTestModal(t, gw)
	m.Open(domain.TriggerHero, "")
	_, err := m.Submit(validForm(25))
	require.NoError(t, err)

	_, err = m.Submit(validForm(25))
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	clock.Advance(DefaultProcessingDelay)
	assert.Equal(t, 1, gw.count())
}

func TestCloseFromEveryStepReopensInDetails(t *testing.T) {
	steps := map[domain.Step]func(m *Modal, c *manualClock){
		domain.StepDetails: func(m *Modal, c *manualClock) {},
		domain.StepProcessing: func(m *Modal, c *manualClock) {
			_, _ = m.Submit(validForm(100))
		},
		domain.StepSuccess: func(m *Modal, c *manualClock) {
			_, _ = m.Submit(validForm(100))
			c.Advance(DefaultProcessingDelay)
		},
	}
	for step, drive := range steps {
		t.Run(string(step), func(t *testing.T) {
			m, clock := newTestModal(t, &recordingGateway{})
			m.Open(domain.TriggerNavbar, "")
			drive(m, clock)
			require.Equal(t, step, m.Snapshot().Step)

			s := m.Close()
			assert.False(t, s.Visible)

			clock.Advance(DefaultResetDelay)
			s = m.Open(domain.TriggerNavbar, "")
			assert.True(t, s.Visible)
			assert.Equal(t, domain.StepDetails, s.Step)
			assert.Equal(t, domain.DefaultAmount, s.Amount)
			assert.Nil(t, s.Receipt)
		})
	}
}

func TestResetIsDeferredAfterClose(t *testing.T) {
	m, clock := newTestModal(t, &recordingGateway{})
	m.Open(domain.TriggerNavbar, "")
	_, err := m.Submit(validForm(100))
	require.NoError(t, err)
	clock.Advance(DefaultProcessingDelay)

	m.Close()
	assert.Equal(t, domain.StepSuccess, m.Snapshot().Step, "success view stays during the close transition")

	clock.Advance(DefaultResetDelay)
	s := m.Snapshot()
	assert.Equal(t, domain.StepDetails, s.Step)
	assert.Equal(t, domain.DefaultAmount, s.Amount)
}

func TestReopenBeforeResetTickStillStartsFresh(t *testing.T) {
	m, clock := newTestModal(t, &recordingGateway{})
	m.Open(domain.TriggerNavbar, "")
	_, _ = m.Submit(validForm(10))
	clock.Advance(DefaultProcessingDelay)
	m.Close()

	s := m.Open(domain.TriggerHero, "")
	assert.Equal(t, domain.StepDetails, s.Step)
	assert.Equal(t, domain.DefaultAmount, s.Amount)

	_, err := m.SelectAmount(25)
	require.NoError(t, err)
	clock.Advance(DefaultResetDelay)
	assert.Equal(t, 25, m.Snapshot().Amount, "stale reset must not touch the new session")
}

func TestOpenWhileVisibleKeepsState(t *testing.T) {
	m, _ := newTestModal(t, &recordingGateway{})
	m.Open(domain.TriggerNavbar, "")
	_, err := m.SelectAmount(10)
	require.NoError(t, err)

	s := m.Open(domain.TriggerSponsor, "Red Panda")
	assert.Equal(t, 10, s.Amount)
	assert.Equal(t, domain.TriggerNavbar, s.Trigger)
}

func TestSponsorScenario(t *testing.T) {
	gw := &recordingGateway{}
	m, clock := newTestModal(t, gw)

	m.Open(domain.TriggerSponsor, "Snow Leopard")
	_, err := m.SelectAmount(100)
	require.NoError(t, err)
	s, err := m.Submit(validForm(100))
	require.NoError(t, err)
	assert.Equal(t, domain.StepProcessing, s.Step)

	clock.Advance(1500 * time.Millisecond)
	s = m.Snapshot()
	assert.Equal(t, domain.StepSuccess, s.Step)
	assert.Equal(t, 100, s.Amount)
	require.NotNil(t, s.Receipt)
	assert.Equal(t, 100, s.Receipt.Amount)
	assert.Equal(t, "Snow Leopard", s.Sponsor)
}

func TestCloseCancelsPendingCharge(t *testing.T) {
	gw := &recordingGateway{}
	m, clock := newTestModal(t, gw)

	m.Open(domain.TriggerHero, "")
	_, err := m.Submit(validForm(50))
	require.NoError(t, err)
	clock.Advance(500 * time.Millisecond)

	m.Close()
	clock.Advance(200 * time.Millisecond)
	s := m.Open(domain.TriggerHero, "")
	assert.Equal(t, domain.StepDetails, s.Step)

	clock.Advance(5 * time.Second)
	s = m.Snapshot()
	assert.True(t, s.Visible)
	assert.Equal(t, domain.StepDetails, s.Step, "late timer must not push the reopened session to success")
	assert.Zero(t, gw.count())
}

func TestStaleTimerFiringIsInert(t *testing.T) {
	// A timer whose Stop lost the race still runs; the epoch check discards it.
	gw := &recordingGateway{}
	m, clock := newTestModal(t, gw)
	m.Open(domain.TriggerHero, "")
	_, err := m.Submit(validForm(50))
	require.NoError(t, err)

	m.mu.Lock()
	stale := m.epoch
	m.mu.Unlock()

	m.Close()
	m.Open(domain.TriggerHero, "")
	m.charge(context.Background(), stale, payment.ChargeRequest{Amount: 50})

	assert.Equal(t, domain.StepDetails, m.Snapshot().Step)
	assert.Zero(t, gw.count())
	assert.Zero(t, clock.pending())
}

func TestGatewayFailureEntersFailedAndRetry(t *testing.T) {
	gw := &recordingGateway{err: &payment.Error{Code: "card_declined", Message: "Your card was declined."}}
	m, clock := newTestModal(t, gw)
	m.Open(domain.TriggerCTA, "")
	_, err := m.SelectAmount(25)
	require.NoError(t, err)
	_, err = m.Submit(validForm(25))
	require.NoError(t, err)

	clock.Advance(DefaultProcessingDelay)
	s := m.Snapshot()
	assert.Equal(t, domain.StepFailed, s.Step)
	assert.Equal(t, "Your card was declined.", s.Failure)
	assert.Nil(t, s.Receipt)

	s, err = m.Retry()
	require.NoError(t, err)
	assert.Equal(t, domain.StepDetails, s.Step)
	assert.Empty(t, s.Failure)
	assert.Equal(t, 25, s.Amount)

	gw.mu.Lock()
	gw.err = nil
	gw.mu.Unlock()
	_, err = m.Submit(validForm(25))
	require.NoError(t, err)
	clock.Advance(DefaultProcessingDelay)
	assert.Equal(t, domain.StepSuccess, m.Snapshot().Step)
}

func TestGenericFailureMessage(t *testing.T) {
	gw := &recordingGateway{err: errors.New("connection reset")}
	m, clock := newTestModal(t, gw)
	m.Open(domain.TriggerCTA, "")
	_, _ = m.Submit(validForm(10))
	clock.Advance(DefaultProcessingDelay)

	s := m.Snapshot()
	assert.Equal(t, domain.StepFailed, s.Step)
	assert.Equal(t, genericFailure, s.Failure)
}

func TestRetryOnlyFromFailed(t *testing.T) {
	m, _ := newTestModal(t, &recordingGateway{})
	_, err := m.Retry()
	assert.ErrorIs(t, err, domain.ErrNotVisible)

	m.Open(domain.TriggerCTA, "")
	_, err = m.Retry()
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestReleaseDropsScheduledCallbacks(t *testing.T) {
	m, clock := newTestModal(t, &recordingGateway{})
	m.Open(domain.TriggerCTA, "")
	_, _ = m.Submit(validForm(10))
	m.Release()

	assert.Zero(t, clock.pending())
	s := m.Snapshot()
	assert.False(t, s.Visible)
	assert.Equal(t, domain.StepDetails, s.Step)
}

// blockingGateway parks inside Charge until its context ends.
type blockingGateway struct {
	entered chan struct{}
}

func (g *blockingGateway) Charge(ctx context.Context, req payment.ChargeRequest) (payment.Receipt, error) {
	close(g.entered)
	<-ctx.Done()
	return payment.Receipt{}, ctx.Err()
}

func TestCloseCancelsInFlightGatewayCall(t *testing.T) {
	gw := &blockingGateway{entered: make(chan struct{})}
	m := NewModal(Config{ProcessingDelay: time.Millisecond, ResetDelay: time.Millisecond}, gw, zerolog.Nop())

	m.Open(domain.TriggerCTA, "")
	_, err := m.Submit(validForm(50))
	require.NoError(t, err)

	select {
	case <-gw.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("gateway was never called")
	}
	m.Close()

	require.Eventually(t, func() bool {
		return m.Snapshot().Step == domain.StepDetails
	}, 2*time.Second, 5*time.Millisecond)
	assert.False(t, m.Snapshot().Visible)
}

func TestWallClockFlow(t *testing.T) {
	m := NewModal(Config{ProcessingDelay: 20 * time.Millisecond, ResetDelay: 5 * time.Millisecond}, payment.NewSimulatedGateway(), zerolog.Nop())
	m.Open(domain.TriggerHero, "")
	_, err := m.Submit(validForm(50))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return m.Snapshot().Step == domain.StepSuccess
	}, 2*time.Second, 5*time.Millisecond)

	m.Close()
	require.Eventually(t, func() bool {
		return m.Snapshot().Step == domain.StepDetails
	}, 2*time.Second, 5*time.Millisecond)
}
