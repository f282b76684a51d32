package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tpp-demo/internal/domain"
)

const (
	singleAccountName   = "savings account"
	multipleAccountName = "savings (M)"
)

// DefaultStartingBalance is the balance of an account linked through a flow.
var DefaultStartingBalance = decimal.NewFromInt(500)

// LedgerMerge applies a finished flow's pending result to the ledger.
type LedgerMerge struct {
	mu              sync.Mutex
	store           LedgerStore
	ids             *TransactionIDAllocator
	clock           Clock
	startingBalance decimal.Decimal
	log             *zap.Logger
}

func NewLedgerMerge(store LedgerStore, ids *TransactionIDAllocator, clock Clock, startingBalance decimal.Decimal, log *zap.Logger) *LedgerMerge {
	if clock == nil {
		clock = SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &LedgerMerge{
		store:           store,
		ids:             ids,
		clock:           clock,
		startingBalance: startingBalance,
		log:             log,
	}
}

// Merge applies pending to a copy of the current snapshot and publishes the
// copy only when every change succeeded. On failure the store is untouched
// and the returned ledger is the unchanged snapshot.
func (m *LedgerMerge) Merge(ctx context.Context, state domain.FlowState, pending domain.PendingResult) (domain.Outcome, *domain.Ledger, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.store.Get()

	if state.Cancelled {
		return domain.CancelledOutcome(), current, nil
	}
	if pending.IsEmpty() {
		return domain.NoneOutcome(), current, nil
	}
	if err := ctx.Err(); err != nil {
		return domain.FailedOutcome(pending.Kind, err), current, err
	}

	next := current.Clone()

	var (
		outcome domain.Outcome
		err     error
	)
	switch pending.Kind {
	case domain.ResultPayment:
		outcome, err = m.applyPayment(next, pending.Payment)
	case domain.ResultSingleAccount:
		outcome, err = m.applySingleAccount(next, pending)
	case domain.ResultMultipleAccounts:
		outcome, err = m.applyMultipleAccounts(next, pending)
	default:
		err = fmt.Errorf("result kind %q: %w", pending.Kind, domain.ErrUnsupportedStep)
	}
	if err != nil {
		m.log.Warn("ledger merge rejected",
			zap.String("flow_id", state.FlowID),
			zap.String("kind", string(pending.Kind)),
			zap.Error(err))
		return domain.FailedOutcome(pending.Kind, err), current, err
	}

	m.store.Replace(next)
	m.log.Info("ledger merged",
		zap.String("flow_id", state.FlowID),
		zap.String("outcome", string(outcome.Kind)))
	return outcome, next, nil
}

func (m *LedgerMerge) applyPayment(ledger *domain.Ledger, p *domain.Payment) (domain.Outcome, error) {
	if p == nil {
		return domain.Outcome{}, fmt.Errorf("payment result without payment: %w", domain.ErrInvalidPayment)
	}
	if !p.Amount.IsPositive() {
		return domain.Outcome{}, fmt.Errorf("amount %s must be positive: %w", p.Amount.String(), domain.ErrInvalidPayment)
	}
	bank, ok := ledger.Bank(p.Bank)
	if !ok {
		return domain.Outcome{}, fmt.Errorf("bank %q: %w", p.Bank, domain.ErrBankNotFound)
	}

	number := StripBankPrefix(p.Account)
	account, ok := bank.Account(number)
	if !ok {
		account, ok = bank.Account(p.Account)
	}
	if !ok {
		return domain.Outcome{}, fmt.Errorf("account %q in bank %q: %w", p.Account, p.Bank, domain.ErrAccountNotFound)
	}

	balance := account.Balance.Sub(p.Amount)
	if balance.IsNegative() {
		return domain.Outcome{}, fmt.Errorf("paying %s %s from account %s with balance %s: %w",
			p.Currency, p.Amount.StringFixed(2), account.ID, account.Balance.StringFixed(2), domain.ErrInsufficientFunds)
	}

	id, err := m.ids.Allocate(ledger.TransactionIDs())
	if err != nil {
		if id == "" {
			return domain.Outcome{}, err
		}
		m.log.Warn("transaction id fallback used", zap.String("transaction_id", id), zap.Error(err))
	}

	txn := domain.Transaction{
		ID:        id,
		Date:      domain.LiteralDate(m.clock.Now().Format(time.DateOnly)),
		Reference: p.Reference,
		Bank:      bank.Name,
		Account:   account.ID,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Direction: domain.DirectionDebit,
	}
	account.Transactions = append([]domain.Transaction{txn}, account.Transactions...)
	account.Balance = balance

	return domain.PaymentOutcome(p.Amount, p.Currency, id), nil
}

func (m *LedgerMerge) applySingleAccount(ledger *domain.Ledger, pending domain.PendingResult) (domain.Outcome, error) {
	if pending.AccountID == "" {
		return domain.Outcome{}, fmt.Errorf("no account selected: %w", domain.ErrInvalidSelection)
	}
	bank, ok := ledger.Bank(pending.Bank)
	if !ok {
		return domain.Outcome{}, fmt.Errorf("bank %q: %w", pending.Bank, domain.ErrBankNotFound)
	}
	if !bank.HasAccount(pending.AccountID) {
		bank.Accounts = append(bank.Accounts, m.newAccount(bank.Name, pending.AccountID, singleAccountName))
	}
	return domain.AccountAddedOutcome(pending.AccountID), nil
}

func (m *LedgerMerge) applyMultipleAccounts(ledger *domain.Ledger, pending domain.PendingResult) (domain.Outcome, error) {
	ids := pending.AccountIDs()
	if len(ids) == 0 {
		return domain.Outcome{}, fmt.Errorf("no accounts selected: %w", domain.ErrInvalidSelection)
	}
	bank, ok := ledger.Bank(pending.Bank)
	if !ok {
		return domain.Outcome{}, fmt.Errorf("bank %q: %w", pending.Bank, domain.ErrBankNotFound)
	}
	for _, id := range ids {
		if !bank.HasAccount(id) {
			bank.Accounts = append(bank.Accounts, m.newAccount(bank.Name, id, multipleAccountName))
		}
	}
	return domain.AccountsAddedOutcome(ids), nil
}

func (m *LedgerMerge) newAccount(bank, id, name string) domain.Account {
	return domain.Account{
		ID:           id,
		Bank:         bank,
		Name:         name,
		Balance:      m.startingBalance,
		Transactions: []domain.Transaction{},
	}
}

// StripBankPrefix drops everything up to and including the first '-' of a
// composite "<bank>-<number>" account id.
func StripBankPrefix(account string) string {
	if _, number, found := strings.Cut(account, "-"); found {
		return number
	}
	return account
}

// IsMergeRejection reports whether err is a business rejection rather than
// an infrastructure failure.
func IsMergeRejection(err error) bool {
	return errors.Is(err, domain.ErrInsufficientFunds) ||
		errors.Is(err, domain.ErrBankNotFound) ||
		errors.Is(err, domain.ErrAccountNotFound) ||
		errors.Is(err, domain.ErrInvalidSelection) ||
		errors.Is(err, domain.ErrInvalidPayment)
}
