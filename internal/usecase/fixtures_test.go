package usecase_test

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"tpp-demo/internal/domain"
)

var today = time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// memStore is a LedgerStore keeping the snapshot in memory.
type memStore struct {
	mu       sync.Mutex
	ledger   *domain.Ledger
	replaced int
}

func newMemStore(l *domain.Ledger) *memStore {
	return &memStore{ledger: l}
}

func (s *memStore) Get() *domain.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Clone()
}

func (s *memStore) Replace(l *domain.Ledger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger = l.Clone()
	s.replaced++
}

func steps(components ...string) []domain.Step {
	out := make([]domain.Step, 0, len(components))
	for _, c := range components {
		out = append(out, domain.Step{ID: c, Name: c, Component: c})
	}
	return out
}

func testCategories() []domain.Category {
	return []domain.Category{
		{
			ID:    domain.CategoryAccounts,
			Title: "Accounts",
			UseCases: []domain.UseCase{
				{
					ID:    "account-aggregation",
					Title: "Single account",
					Steps: steps(domain.ComponentLogin, domain.ComponentOTP, domain.ComponentSingleAccountSelection,
						domain.ComponentAccountsAuthorization, domain.ComponentRedirection),
				},
				{
					ID:    "multiple-accounts",
					Title: "Multiple accounts",
					Steps: steps(domain.ComponentLoginWithEmail, domain.ComponentMultipleAccountsSelect,
						domain.ComponentMultipleAuthorization, domain.ComponentRedirection),
				},
				{
					ID:    "permissions",
					Title: "Accounts with permissions",
					Steps: steps(domain.ComponentLogin, domain.ComponentPermissionsSelection,
						domain.ComponentAccountsAuthorization, domain.ComponentRedirection),
				},
			},
		},
		{
			ID:    domain.CategoryPayments,
			Title: "Payments",
			UseCases: []domain.UseCase{
				{
					ID:    "single-payment",
					Title: "Single payment",
					Steps: steps(domain.ComponentLogin, domain.ComponentOTP, domain.ComponentPaymentConfirmation, domain.ComponentRedirection),
				},
			},
		},
	}
}

func testLedger() *domain.Ledger {
	return &domain.Ledger{Banks: []domain.Bank{
		{
			Name:                   "Bank A",
			Currency:               "GBP",
			Color:                  "#ff0000",
			Border:                 "#aa0000",
			StartingAccountNumbers: "0001-",
			Route:                  "bank-a",
			Accounts: []domain.Account{
				{
					ID:      "0001-1111",
					Bank:    "Bank A",
					Name:    "current account",
					Balance: decimal.NewFromInt(1000),
					Transactions: []domain.Transaction{
						{
							ID:        "T10000001",
							Date:      domain.LiteralDate("2026-02-01"),
							Reference: "Groceries",
							Bank:      "Bank A",
							Account:   "0001-1111",
							Amount:    decimal.RequireFromString("25.50"),
							Currency:  "GBP",
							Direction: domain.DirectionDebit,
						},
					},
				},
			},
			StandingOrders: []domain.StandingOrder{
				{ID: "SO1", Reference: "Rent", Bank: "Bank A", NextDate: domain.LiteralDate("2026-03-01"), Status: "Active", Amount: decimal.NewFromInt(900), Currency: "GBP"},
			},
		},
		{
			Name:                   "Bank B",
			Currency:               "GBP",
			Color:                  "#0000ff",
			Border:                 "#0000aa",
			StartingAccountNumbers: "0002-",
			Route:                  "bank-b",
			Accounts: []domain.Account{
				{
					ID:      "0002-2222",
					Bank:    "Bank B",
					Name:    "savings",
					Balance: decimal.RequireFromString("250.75"),
					Transactions: []domain.Transaction{
						{
							ID:        "T10000002",
							Date:      domain.LiteralDate("2026-02-08"),
							Reference: "Salary",
							Bank:      "Bank B",
							Account:   "0002-2222",
							Amount:    decimal.NewFromInt(2000),
							Currency:  "GBP",
							Direction: domain.DirectionCredit,
						},
					},
				},
			},
			StandingOrders: []domain.StandingOrder{
				{ID: "SO2", Reference: "Gym", Bank: "Bank B", NextDate: domain.LiteralDate("2026-02-15"), Status: "Active", Amount: decimal.NewFromInt(30), Currency: "GBP"},
			},
		},
	}}
}
