package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Account is a bank account held by the mock ledger.
type Account struct {
	ID                  string          `json:"id" yaml:"id"`
	Bank                string          `json:"bank" yaml:"bank"`
	Name                string          `json:"name" yaml:"name"`
	Balance             decimal.Decimal `json:"balance" yaml:"balance"`
	Transactions        []Transaction   `json:"transactions" yaml:"transactions"`
	NotPermittedActions []string        `json:"notPermittedActions,omitempty" yaml:"notPermittedActions,omitempty"`
}

// Bank groups accounts and standing orders under one institution.
type Bank struct {
	Name                   string          `json:"name" yaml:"name"`
	Image                  string          `json:"image,omitempty" yaml:"image,omitempty"`
	Currency               string          `json:"currency" yaml:"currency"`
	Color                  string          `json:"color,omitempty" yaml:"color,omitempty"`
	Border                 string          `json:"border,omitempty" yaml:"border,omitempty"`
	StartingAccountNumbers string          `json:"startingAccountNumbers" yaml:"startingAccountNumbers"`
	Route                  string          `json:"route" yaml:"route"`
	ThemeID                int             `json:"bankThemeId,omitempty" yaml:"bankThemeId,omitempty"`
	Accounts               []Account       `json:"accounts" yaml:"accounts"`
	StandingOrders         []StandingOrder `json:"standingOrders" yaml:"standingOrders"`
}

// Payee is a biller a payment can be sent to.
type Payee struct {
	Name          string `json:"name" yaml:"name"`
	Bank          string `json:"bank" yaml:"bank"`
	AccountNumber string `json:"accountNumber" yaml:"accountNumber"`
}

// Ledger is the in-memory mock store of banks, accounts and transactions.
// Bank order is display order.
type Ledger struct {
	Banks []Bank `json:"banks" yaml:"banks"`
}

// Bank returns the bank with the given name.
func (l *Ledger) Bank(name string) (*Bank, bool) {
	for i := range l.Banks {
		if l.Banks[i].Name == name {
			return &l.Banks[i], true
		}
	}
	return nil, false
}

// Account returns the account with the given id.
func (b *Bank) Account(id string) (*Account, bool) {
	for i := range b.Accounts {
		if b.Accounts[i].ID == id {
			return &b.Accounts[i], true
		}
	}
	return nil, false
}

// ActionPayments marks an account that cannot pay bills.
const ActionPayments = "payments"

// Permits reports whether the account allows the action.
func (a *Account) Permits(action string) bool {
	return !slices.Contains(a.NotPermittedActions, action)
}

// HasAccount reports whether an account with the id is already present.
func (b *Bank) HasAccount(id string) bool {
	_, ok := b.Account(id)
	return ok
}

// TransactionIDs collects every transaction id in the ledger.
func (l *Ledger) TransactionIDs() map[string]struct{} {
	ids := make(map[string]struct{})
	for _, b := range l.Banks {
		for _, a := range b.Accounts {
			for _, t := range a.Transactions {
				ids[t.ID] = struct{}{}
			}
		}
	}
	return ids
}

// Clone returns a deep copy so a merge can work without touching the
// published snapshot.
func (l *Ledger) Clone() *Ledger {
	if l == nil {
		return &Ledger{}
	}
	out := &Ledger{Banks: make([]Bank, len(l.Banks))}
	for i, b := range l.Banks {
		nb := b
		nb.Accounts = make([]Account, len(b.Accounts))
		for j, a := range b.Accounts {
			na := a
			na.Transactions = append([]Transaction(nil), a.Transactions...)
			na.NotPermittedActions = append([]string(nil), a.NotPermittedActions...)
			nb.Accounts[j] = na
		}
		nb.StandingOrders = append([]StandingOrder(nil), b.StandingOrders...)
		out.Banks[i] = nb
	}
	return out
}
