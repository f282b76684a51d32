package domain

import "time"

// Consent is what the simulated bank authorized at the end of a flow.
type Consent struct {
	ID        string
	FlowID    string
	UseCase   string
	Bank      string
	Kind      ResultKind
	Accounts  []string
	Recurring bool
	ExpiresAt time.Time
}
