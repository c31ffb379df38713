package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrNotVisible        = errors.New("donation modal is closed")
	ErrAmountLocked      = errors.New("amount can only change while entering details")
	ErrInvalidAmount     = errors.New("amount is not a preset value")
	ErrInvalidTransition = errors.New("invalid donation step transition")
	ErrValidation        = errors.New("validation failed")
	ErrPaymentDeclined   = errors.New("payment declined")
)
