package domain

import (
	"github.com/shopspring/decimal"
)

// FlowState is one in-progress traversal of a use case.
type FlowState struct {
	FlowID       string `json:"flowId"`
	CategoryID   string `json:"category"`
	UseCaseID    string `json:"useCase"`
	UseCaseIndex int    `json:"useCaseIndex"`
	StepIndex    int    `json:"stepIndex"`
	Cancelled    bool   `json:"cancelled"`
}

// ResultKind tags the variant held by a PendingResult.
type ResultKind string

const (
	ResultNone             ResultKind = "none"
	ResultSingleAccount    ResultKind = "single-account"
	ResultMultipleAccounts ResultKind = "multiple-accounts"
	ResultPayment          ResultKind = "payment"
)

// Payment is a payment initiated from the dashboard. Account is the composite
// "<bank name>-<account number>" identifier picked on the payment form.
type Payment struct {
	Bank      string          `json:"bank"`
	Account   string          `json:"account"`
	Payee     string          `json:"payee"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Reference string          `json:"reference"`
}

// PermissionGrant lists the accounts a permission was granted on. A slice of
// grants is used as an ordered permission -> accounts map.
type PermissionGrant struct {
	Permission string   `json:"permission"`
	Accounts   []string `json:"accounts"`
}

// PendingResult is what a flow's screens collected before the merge. Only the
// fields of the variant named by Kind are meaningful.
type PendingResult struct {
	Kind        ResultKind        `json:"kind"`
	Bank        string            `json:"bank,omitempty"`
	AccountID   string            `json:"accountId,omitempty"`
	Permissions []PermissionGrant `json:"permissions,omitempty"`
	Recurring   bool              `json:"recurring,omitempty"`
	Payment     *Payment          `json:"payment,omitempty"`
}

// NoResult is the empty pending result every flow starts with.
func NoResult() PendingResult {
	return PendingResult{Kind: ResultNone}
}

// SingleAccountResult records one account selected for linking.
func SingleAccountResult(bank, accountID string) PendingResult {
	return PendingResult{Kind: ResultSingleAccount, Bank: bank, AccountID: accountID}
}

// MultipleAccountsResult records accounts selected per permission.
func MultipleAccountsResult(bank string, permissions []PermissionGrant, recurring bool) PendingResult {
	return PendingResult{Kind: ResultMultipleAccounts, Bank: bank, Permissions: permissions, Recurring: recurring}
}

// PaymentResult records an authorized payment.
func PaymentResult(p Payment) PendingResult {
	return PendingResult{Kind: ResultPayment, Bank: p.Bank, Payment: &p}
}

// IsEmpty reports whether nothing has been collected yet.
func (p PendingResult) IsEmpty() bool {
	return p.Kind == "" || p.Kind == ResultNone
}

// AccountIDs returns the accounts the result touches, de-duplicated in the
// order they were selected.
func (p PendingResult) AccountIDs() []string {
	switch p.Kind {
	case ResultSingleAccount:
		if p.AccountID == "" {
			return nil
		}
		return []string{p.AccountID}
	case ResultMultipleAccounts:
		seen := make(map[string]struct{})
		var ids []string
		for _, g := range p.Permissions {
			for _, id := range g.Accounts {
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
		return ids
	case ResultPayment:
		if p.Payment == nil {
			return nil
		}
		return []string{p.Payment.Account}
	}
	return nil
}
