package usecase

import (
	"context"
	"time"

	"tpp-demo/internal/domain"
)

// ConfigRepository loads the seed document. The usecase layer depends on this
// interface, not on a concrete file reader.
//
//go:generate mockgen -destination=mocks/mock_interface.go -source=interface.go
type ConfigRepository interface {
	Load(ctx context.Context) (*domain.Config, error)
}

// LedgerStore holds the current ledger snapshot. Get and Replace hand out and
// take ownership of copies.
type LedgerStore interface {
	Get() *domain.Ledger
	Replace(ledger *domain.Ledger)
}

// ConsentIssuer signs and checks the consent a simulated bank grants at the
// end of a flow.
type ConsentIssuer interface {
	Issue(ctx context.Context, consent domain.Consent) (string, error)
	Verify(ctx context.Context, token, flowID string) (domain.Consent, error)
}

// Recorder receives flow and merge events for metrics.
type Recorder interface {
	FlowStarted(category string)
	StepSubmitted(component string, err error)
	FlowCancelled(category string)
	MergeFinished(kind domain.OutcomeKind, elapsed time.Duration)
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type nopRecorder struct{}

func (nopRecorder) FlowStarted(string)                              {}
func (nopRecorder) StepSubmitted(string, error)                     {}
func (nopRecorder) FlowCancelled(string)                            {}
func (nopRecorder) MergeFinished(domain.OutcomeKind, time.Duration) {}
