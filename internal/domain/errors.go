package domain

import "errors"

var (
	// Registry and navigation.
	ErrUnknownUseCase   = errors.New("unknown use case")
	ErrEmptyUseCase     = errors.New("use case has no steps")
	ErrDuplicateUseCase = errors.New("duplicate use case id")
	ErrUnknownFlow      = errors.New("unknown flow")
	ErrFlowNotTerminal  = errors.New("flow has not reached its final step")
	ErrFlowTerminal     = errors.New("flow is already at its final step")
	ErrUnsupportedStep  = errors.New("unsupported step component")

	// Step input validation.
	ErrInvalidCredentials = errors.New("wrong email or password")
	ErrInvalidOTP         = errors.New("check your OTP and re-enter")
	ErrInvalidSelection   = errors.New("invalid account selection")
	ErrInvalidPayment     = errors.New("invalid payment")

	// Merge.
	ErrBankNotFound           = errors.New("bank not found")
	ErrAccountNotFound        = errors.New("account not found")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrTransactionIDExhausted = errors.New("no unique transaction id after retries")

	// Consent.
	ErrConsentInvalid = errors.New("consent token invalid")
)
