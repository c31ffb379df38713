// Package page holds the per-visitor page root: the one donation modal, the
// mobile menu and the scroll tracker, plus the store that owns every root.
package page

import (
	"strings"

	"github.com/rs/zerolog"

	"animalrescue/internal/domain"
	"animalrescue/internal/donation"
	"animalrescue/internal/payment"
)

// Root is the page controller every call-to-action talks to.
type Root struct {
	Modal  *donation.Modal
	Nav    *NavToggle
	Scroll ScrollTracker
}

// Options configure the roots a Store creates.
type Options struct {
	Donation        donation.Config
	Gateway         payment.Gateway
	ScrollThreshold int
	Logger          zerolog.Logger
}

// NewRoot builds a root with a closed modal and a closed menu.
func NewRoot(opts Options) *Root {
	gw := opts.Gateway
	if gw == nil {
		gw = payment.NewSimulatedGateway()
	}
	return &Root{
		Modal:  donation.NewModal(opts.Donation, gw, opts.Logger),
		Nav:    &NavToggle{},
		Scroll: NewScrollTracker(opts.ScrollThreshold),
	}
}

// OpenDonation opens the modal for trigger. The mobile menu is always closed
// so it never stays open behind the modal. sponsor is only kept for sponsor
// triggers.
func (r *Root) OpenDonation(trigger domain.Trigger, sponsor string) donation.Snapshot {
	r.Nav.Close()
	if trigger != domain.TriggerSponsor {
		sponsor = ""
	}
	return r.Modal.Open(trigger, strings.TrimSpace(sponsor))
}

// CloseDonation hides the modal.
func (r *Root) CloseDonation() donation.Snapshot {
	return r.Modal.Close()
}

// View is everything the page renders for one request.
type View struct {
	Donation donation.Snapshot
	MenuOpen bool
	Scroll   ScrollTracker
}

// View captures the root state.
func (r *Root) View() View {
	return View{
		Donation: r.Modal.Snapshot(),
		MenuOpen: r.Nav.Open(),
		Scroll:   r.Scroll,
	}
}
