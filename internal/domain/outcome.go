package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OutcomeKind tags the result of a merge attempt.
type OutcomeKind string

const (
	OutcomeNone          OutcomeKind = "none"
	OutcomeCancelled     OutcomeKind = "cancelled"
	OutcomePayment       OutcomeKind = "payment"
	OutcomeAccountAdded  OutcomeKind = "account-added"
	OutcomeAccountsAdded OutcomeKind = "accounts-added"
	OutcomeFailed        OutcomeKind = "failed"
)

// Outcome is the user-facing notification produced after a merge attempt.
// Title and Message feed a one-button acknowledgment dialog.
type Outcome struct {
	Kind          OutcomeKind      `json:"kind"`
	Title         string           `json:"title"`
	Message       string           `json:"message"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Currency      string           `json:"currency,omitempty"`
	TransactionID string           `json:"transactionId,omitempty"`
	AccountID     string           `json:"accountId,omitempty"`
	AccountIDs    []string         `json:"accountIds,omitempty"`
	Error         string           `json:"error,omitempty"`
}

func NoneOutcome() Outcome {
	return Outcome{Kind: OutcomeNone, Title: "Nothing to apply", Message: "The flow finished without any changes."}
}

func CancelledOutcome() Outcome {
	return Outcome{Kind: OutcomeCancelled, Title: "Operation Cancelled", Message: "The operation has been cancelled."}
}

func PaymentOutcome(amount decimal.Decimal, currency, transactionID string) Outcome {
	return Outcome{
		Kind:          OutcomePayment,
		Title:         "Payment Successful",
		Message:       fmt.Sprintf("Your payment of %s %s has been successfully processed.", currency, amount.StringFixed(2)),
		Amount:        &amount,
		Currency:      currency,
		TransactionID: transactionID,
	}
}

func AccountAddedOutcome(accountID string) Outcome {
	return Outcome{
		Kind:      OutcomeAccountAdded,
		Title:     "Account added Successfully",
		Message:   fmt.Sprintf("The new account %s was added successfully.", accountID),
		AccountID: accountID,
	}
}

func AccountsAddedOutcome(accountIDs []string) Outcome {
	return Outcome{
		Kind:       OutcomeAccountsAdded,
		Title:      "Accounts added successfully",
		Message:    fmt.Sprintf("The new accounts %s were added successfully.", strings.Join(accountIDs, ", ")),
		AccountIDs: accountIDs,
	}
}

// FailedOutcome wraps a merge failure so the caller can show it explicitly.
func FailedOutcome(kind ResultKind, err error) Outcome {
	title := "Operation Failed"
	if kind == ResultPayment {
		title = "Payment Failed"
	}
	return Outcome{Kind: OutcomeFailed, Title: title, Message: err.Error(), Error: err.Error()}
}
