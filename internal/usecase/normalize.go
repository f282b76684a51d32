package usecase

import (
	"time"

	"tpp-demo/internal/domain"
)

// PastDate formats today minus days as YYYY-MM-DD.
func PastDate(today time.Time, days int) string {
	return calendarDay(today).AddDate(0, 0, -days).Format(time.DateOnly)
}

// FutureDate formats today plus days as YYYY-MM-DD.
func FutureDate(today time.Time, days int) string {
	return calendarDay(today).AddDate(0, 0, days).Format(time.DateOnly)
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NormalizeLedger returns a copy of the ledger where relative transaction
// dates point into the past and relative standing-order dates into the
// future. Literal dates are kept as they are.
func NormalizeLedger(ledger *domain.Ledger, today time.Time) *domain.Ledger {
	out := ledger.Clone()
	for bi := range out.Banks {
		bank := &out.Banks[bi]
		for ai := range bank.Accounts {
			txns := bank.Accounts[ai].Transactions
			for ti := range txns {
				if txns[ti].Date.IsRelative() {
					txns[ti].Date = domain.LiteralDate(PastDate(today, *txns[ti].Date.Days))
				}
			}
		}
		for si := range bank.StandingOrders {
			so := &bank.StandingOrders[si]
			if so.NextDate.IsRelative() {
				so.NextDate = domain.LiteralDate(FutureDate(today, *so.NextDate.Days))
			}
		}
	}
	return out
}
