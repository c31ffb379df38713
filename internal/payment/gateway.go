// Package payment defines the capability the donation flow charges through.
package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ChargeRequest carries what a gateway needs to take a donation. Card fields
// are passed through untouched; nothing here tokenizes or validates them.
type ChargeRequest struct {
	Amount     int
	Currency   string
	CardNumber string
	Expiry     string
	CVC        string
	Reference  string
}

// Receipt is returned by a successful charge.
type Receipt struct {
	ID        string    `json:"id"`
	Amount    int       `json:"amount"`
	Currency  string    `json:"currency"`
	Last4     string    `json:"last4,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Error is a declined or failed charge with a message safe to show donors.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("payment %s: %s", e.Code, e.Message)
}

// Gateway charges a donation.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (Receipt, error)
}

// SimulatedGateway accepts every charge. It stands in for a real processor.
type SimulatedGateway struct {
	Now func() time.Time
}

// NewSimulatedGateway returns a gateway that always succeeds.
func NewSimulatedGateway() *SimulatedGateway {
	return &SimulatedGateway{Now: time.Now}
}

// Charge returns a receipt for req unless ctx is already done.
func (g *SimulatedGateway) Charge(ctx context.Context, req ChargeRequest) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}
	now := time.Now
	if g != nil && g.Now != nil {
		now = g.Now
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	return Receipt{
		ID:        uuid.NewString(),
		Amount:    req.Amount,
		Currency:  currency,
		Last4:     last4(req.CardNumber),
		CreatedAt: now().UTC(),
	}, nil
}

func last4(number string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	if len(digits) < 4 {
		return ""
	}
	return digits[len(digits)-4:]
}

var _ Gateway = (*SimulatedGateway)(nil)
