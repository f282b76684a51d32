package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"tpp-demo/internal/domain"
)

// DashboardUseCase builds the read models of the home screen from the current
// ledger snapshot.
type DashboardUseCase struct {
	cfg   *domain.Config
	store LedgerStore
}

// NewDashboardUseCase creates a new instance of the usecase.
func NewDashboardUseCase(cfg *domain.Config, store LedgerStore) *DashboardUseCase {
	return &DashboardUseCase{cfg: cfg, store: store}
}

// Dashboard aggregates balances per bank and lists the latest activity.
func (uc *DashboardUseCase) Dashboard(ctx context.Context, today time.Time) *domain.DashboardReport {
	ledger := uc.store.Get()

	report := &domain.DashboardReport{
		App:            uc.cfg.App,
		User:           uc.cfg.User,
		GeneratedOn:    today.Format(time.DateOnly),
		TotalBalance:   decimal.Zero,
		Banks:          make([]domain.BankSummary, 0, len(ledger.Banks)),
		Transactions:   allTransactions(ledger),
		StandingOrders: allStandingOrders(ledger),
		Payees:         uc.cfg.Payees,
	}

	for _, bank := range ledger.Banks {
		summary := domain.BankSummary{
			Name:     bank.Name,
			Route:    bank.Route,
			Currency: bank.Currency,
			Color:    bank.Color,
			Total:    decimal.Zero,
			Accounts: uniqueAccounts(bank.Accounts),
		}
		for _, a := range summary.Accounts {
			summary.Total = summary.Total.Add(a.Balance)
		}
		report.TotalBalance = report.TotalBalance.Add(summary.Total)
		report.Banks = append(report.Banks, summary)

		report.Chart.Labels = append(report.Chart.Labels, bank.Name)
		report.Chart.Data = append(report.Chart.Data, summary.Total)
		report.Chart.BackgroundColor = append(report.Chart.BackgroundColor, bank.Color)
		report.Chart.BorderColor = append(report.Chart.BorderColor, bank.Border)
	}
	return report
}

// Transactions returns every transaction dated within [start, end], newest
// first. A zero bound leaves that side open.
func (uc *DashboardUseCase) Transactions(ctx context.Context, start, end time.Time) []domain.Transaction {
	return filterTransactionsByDate(allTransactions(uc.store.Get()), start, end)
}

// StandingOrders returns every standing order, soonest first.
func (uc *DashboardUseCase) StandingOrders(ctx context.Context) []domain.StandingOrder {
	return allStandingOrders(uc.store.Get())
}

func (uc *DashboardUseCase) Payees(ctx context.Context) []domain.Payee {
	return uc.cfg.Payees
}

func uniqueAccounts(accounts []domain.Account) []domain.Account {
	seen := make(map[string]bool)
	out := make([]domain.Account, 0, len(accounts))
	for _, a := range accounts {
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		out = append(out, a)
	}
	return out
}

func allTransactions(ledger *domain.Ledger) []domain.Transaction {
	txns := make([]domain.Transaction, 0)
	for _, b := range ledger.Banks {
		for _, a := range uniqueAccounts(b.Accounts) {
			txns = append(txns, a.Transactions...)
		}
	}
	sort.SliceStable(txns, func(i, j int) bool {
		return dateAfter(txns[i].Date, txns[j].Date)
	})
	return txns
}

func allStandingOrders(ledger *domain.Ledger) []domain.StandingOrder {
	orders := make([]domain.StandingOrder, 0)
	for _, b := range ledger.Banks {
		orders = append(orders, b.StandingOrders...)
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return dateBefore(orders[i].NextDate, orders[j].NextDate)
	})
	return orders
}

// dateAfter and dateBefore order parseable dates ahead of unparseable ones.
func dateAfter(a, b domain.DateField) bool {
	return compareDates(a, b, time.Time.After)
}

func dateBefore(a, b domain.DateField) bool {
	return compareDates(a, b, time.Time.Before)
}

func compareDates(a, b domain.DateField, less func(time.Time, time.Time) bool) bool {
	ta, okA := a.Time()
	tb, okB := b.Time()
	switch {
	case okA && okB:
		return less(ta, tb)
	case okA:
		return true
	default:
		return false
	}
}

func filterTransactionsByDate(transactions []domain.Transaction, start, end time.Time) []domain.Transaction {
	filtered := make([]domain.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		txDate, ok := tx.Date.Time()
		if !ok {
			continue
		}
		if !start.IsZero() && txDate.Before(start) {
			continue
		}
		if !end.IsZero() && !txDate.Before(end.Add(24*time.Hour)) {
			continue
		}
		filtered = append(filtered, tx)
	}
	return filtered
}
