package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"animalrescue/internal/domain"
	"animalrescue/internal/donation"
)

func (a *App) DonateOpen(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid form")
		return
	}
	trigger := domain.ParseTrigger(r.PostForm.Get("trigger"))
	snap := a.root(r).OpenDonation(trigger, r.PostForm.Get("sponsor"))
	a.respond(w, r, snap, nil)
}

func (a *App) DonateAmount(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid form")
		return
	}
	modal := a.root(r).Modal
	amount, err := parseAmount(r.PostForm.Get("amount"))
	if err != nil {
		a.respond(w, r, modal.Snapshot(), err)
		return
	}
	snap, err := modal.SelectAmount(amount)
	a.respond(w, r, snap, err)
}

func (a *App) DonateSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid form")
		return
	}
	modal := a.root(r).Modal
	form := donation.Form{
		CardNumber: r.PostForm.Get("card_number"),
		Expiry:     r.PostForm.Get("expiry"),
		CVC:        r.PostForm.Get("cvc"),
	}
	if raw := strings.TrimSpace(r.PostForm.Get("amount")); raw != "" {
		amount, err := parseAmount(raw)
		if err != nil {
			a.respond(w, r, modal.Snapshot(), err)
			return
		}
		form.Amount = amount
	}
	snap, err := modal.Submit(form)
	a.respond(w, r, snap, err)
}

func (a *App) DonateRetry(w http.ResponseWriter, r *http.Request) {
	snap, err := a.root(r).Modal.Retry()
	a.respond(w, r, snap, err)
}

func (a *App) DonateClose(w http.ResponseWriter, r *http.Request) {
	a.respond(w, r, a.root(r).CloseDonation(), nil)
}

func (a *App) DonateState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	a.json(w, http.StatusOK, a.root(r).Modal.Snapshot())
}

func (a *App) NavToggle(w http.ResponseWriter, r *http.Request) {
	open := a.root(r).Nav.Toggle()
	if !wantsJSON(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	a.json(w, http.StatusOK, map[string]bool{"menu_open": open})
}

func parseAmount(raw string) (int, error) {
	amount, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", raw, domain.ErrInvalidAmount)
	}
	return amount, nil
}
