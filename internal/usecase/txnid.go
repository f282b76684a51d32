package usecase

import (
	"fmt"
	"math/rand/v2"

	"tpp-demo/internal/domain"
)

const (
	txnIDMin    = 10000000
	txnIDSpan   = 90000000
	txnIDModulo = 100000000

	DefaultTransactionIDAttempts = 100
)

// TransactionIDAllocator hands out "T" + 8 digit ids that are unique within
// a ledger.
type TransactionIDAllocator struct {
	attempts int
	intn     func(n int) int
	clock    Clock
}

type AllocatorOption func(*TransactionIDAllocator)

// WithRandomSource replaces the random number generator, mostly for tests.
func WithRandomSource(intn func(n int) int) AllocatorOption {
	return func(a *TransactionIDAllocator) {
		a.intn = intn
	}
}

func NewTransactionIDAllocator(attempts int, clock Clock, opts ...AllocatorOption) *TransactionIDAllocator {
	if attempts <= 0 {
		attempts = DefaultTransactionIDAttempts
	}
	if clock == nil {
		clock = SystemClock{}
	}
	a := &TransactionIDAllocator{attempts: attempts, intn: rand.IntN, clock: clock}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Allocate draws random ids until one is not in existing. When every attempt
// collides it derives an id from the clock instead and returns it together
// with ErrTransactionIDExhausted; the id is still unique and usable.
func (a *TransactionIDAllocator) Allocate(existing map[string]struct{}) (string, error) {
	for i := 0; i < a.attempts; i++ {
		id := formatTxnID(txnIDMin + a.intn(txnIDSpan))
		if _, taken := existing[id]; !taken {
			return id, nil
		}
	}

	n := int(a.clock.Now().UnixMilli() % txnIDModulo)
	for i := 0; i < txnIDModulo; i++ {
		id := formatTxnID((n + i) % txnIDModulo)
		if _, taken := existing[id]; !taken {
			return id, fmt.Errorf("fell back to %s after %d attempts: %w", id, a.attempts, domain.ErrTransactionIDExhausted)
		}
	}
	return "", domain.ErrTransactionIDExhausted
}

func formatTxnID(n int) string {
	return fmt.Sprintf("T%08d", n)
}
