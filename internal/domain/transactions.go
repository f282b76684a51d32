package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Direction tells whether money entered or left an account.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// UnmarshalText accepts both the long form and the single-letter codes used by
// the seed documents ("c", "d").
func (d *Direction) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "c", "cr", "credit":
		*d = DirectionCredit
	case "d", "dr", "debit":
		*d = DirectionDebit
	default:
		return fmt.Errorf("unknown transaction direction %q", string(text))
	}
	return nil
}

// Transaction is a single ledger movement. Transactions are created by the
// ledger merge and never mutated afterwards.
type Transaction struct {
	ID        string          `json:"id" yaml:"id"`
	Date      DateField       `json:"date" yaml:"date"`
	Reference string          `json:"reference" yaml:"reference"`
	Bank      string          `json:"bank" yaml:"bank"`
	Account   string          `json:"account" yaml:"account"`
	Amount    decimal.Decimal `json:"amount" yaml:"amount"`
	Currency  string          `json:"currency" yaml:"currency"`
	Direction Direction       `json:"direction" yaml:"direction"`
}

// StandingOrder is a scheduled payment shown on the dashboard.
type StandingOrder struct {
	ID        string          `json:"id" yaml:"id"`
	Reference string          `json:"reference" yaml:"reference"`
	Bank      string          `json:"bank" yaml:"bank"`
	NextDate  DateField       `json:"nextDate" yaml:"nextDate"`
	Status    string          `json:"status" yaml:"status"`
	Amount    decimal.Decimal `json:"amount" yaml:"amount"`
	Currency  string          `json:"currency" yaml:"currency"`
}
