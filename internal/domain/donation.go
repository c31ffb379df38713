package domain

import "slices"

// Step is the sub-view a visible donation modal renders.
type Step string

const (
	StepDetails    Step = "details"
	StepProcessing Step = "processing"
	StepSuccess    Step = "success"
	StepFailed     Step = "failed"
)

// Trigger names the call-to-action that opened the donation modal.
type Trigger string

const (
	TriggerNavbar    Trigger = "navbar"
	TriggerMobileNav Trigger = "mobile-nav"
	TriggerHero      Trigger = "hero"
	TriggerCTA       Trigger = "cta"
	TriggerFooter    Trigger = "footer"
	TriggerSponsor   Trigger = "sponsor"
)

// DefaultAmount is preselected whenever the modal opens.
const DefaultAmount = 50

// PresetAmounts are the quick-select donation values, in display order.
var PresetAmounts = []int{10, 25, 50, 100}

// IsPresetAmount reports whether amount is one of PresetAmounts.
func IsPresetAmount(amount int) bool {
	return slices.Contains(PresetAmounts, amount)
}

// ParseTrigger maps a form value to a known trigger. Unknown values fall back
// to TriggerCTA so a stale page never blocks the flow.
func ParseTrigger(v string) Trigger {
	switch t := Trigger(v); t {
	case TriggerNavbar, TriggerMobileNav, TriggerHero, TriggerCTA, TriggerFooter, TriggerSponsor:
		return t
	}
	return TriggerCTA
}
