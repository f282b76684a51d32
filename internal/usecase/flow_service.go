package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tpp-demo/internal/domain"
)

// DefaultRedirectDelay is how long the redirection screen is shown before
// the flow's result is applied.
const DefaultRedirectDelay = time.Second

const allPermissions = "All Permissions"

var (
	// Permissions offered on the multiple-accounts selection screen.
	AccountPermissions = []string{"Read Accounts", "Read Balances", "Read Transactions"}

	// PaymentCurrencies are the currencies the payment form accepts.
	PaymentCurrencies = []string{"GBP", "EURO", "USD"}

	minPaymentAmount = decimal.New(1, -2)
)

// StartRequest opens a flow for a bank. UseCase wins over Category when both
// are set; an unknown or empty category falls back to the first one.
type StartRequest struct {
	Category string `json:"category"`
	UseCase  string `json:"useCase"`
	Bank     string `json:"bank"`
}

// PaymentRequest is the dashboard's payment form. UserAccount is the
// composite "<bank>-<account number>" id of the paying account.
type PaymentRequest struct {
	UserAccount string          `json:"userAccount"`
	Payee       string          `json:"payee"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Reference   string          `json:"reference"`
	UseCase     string          `json:"useCase,omitempty"`
}

// StepInput carries whatever the current screen submitted. Each component
// reads only the fields it needs.
type StepInput struct {
	Username    string                   `json:"username,omitempty"`
	Email       string                   `json:"email,omitempty"`
	Password    string                   `json:"password,omitempty"`
	Code        string                   `json:"code,omitempty"`
	AccountID   string                   `json:"accountId,omitempty"`
	Accounts    []string                 `json:"accounts,omitempty"`
	Permissions []domain.PermissionGrant `json:"permissions,omitempty"`
	Recurring   *bool                    `json:"recurring,omitempty"`
}

// UseCaseOption is a use case the flow can switch to.
type UseCaseOption struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Title string `json:"title"`
}

// FlowView is what the outer shell needs to render the current screen.
type FlowView struct {
	State           domain.FlowState     `json:"state"`
	UseCase         domain.UseCase       `json:"useCase"`
	Step            domain.Step          `json:"step"`
	Terminal        bool                 `json:"terminal"`
	Bank            string               `json:"bank"`
	OfferedAccounts []string             `json:"offeredAccounts,omitempty"`
	Permissions     []string             `json:"permissions,omitempty"`
	Pending         domain.PendingResult `json:"pending"`
	Payment         *domain.Payment      `json:"payment,omitempty"`
	ConsentIssued   bool                 `json:"consentIssued"`
	Alternatives    []UseCaseOption      `json:"alternatives"`
}

// Completion is the result of finishing a flow.
type Completion struct {
	Outcome domain.Outcome `json:"outcome"`
	Ledger  *domain.Ledger `json:"ledger"`
}

type flowSession struct {
	state     domain.FlowState
	bank      string
	offered   []string
	collector *Collector
	draft     *domain.Payment
	consent   string
}

// FlowService owns the in-progress flows and runs each step's handler.
type FlowService struct {
	mu       sync.Mutex
	sessions map[string]*flowSession

	registry       *Registry
	seq            *Sequencer
	merge          *LedgerMerge
	store          LedgerStore
	consent        ConsentIssuer
	accountNumbers []string
	redirectDelay  time.Duration
	metrics        Recorder
	log            *zap.Logger
	newID          func() string
}

type FlowOption func(*FlowService)

func WithRedirectDelay(d time.Duration) FlowOption {
	return func(s *FlowService) { s.redirectDelay = d }
}

func WithRecorder(r Recorder) FlowOption {
	return func(s *FlowService) { s.metrics = r }
}

func WithLogger(log *zap.Logger) FlowOption {
	return func(s *FlowService) { s.log = log }
}

// WithIDGenerator replaces the flow and consent id generator.
func WithIDGenerator(f func() string) FlowOption {
	return func(s *FlowService) { s.newID = f }
}

// NewFlowService creates a new instance of the usecase. accountNumbers are
// the suffixes appended to a bank's starting account number to build the
// accounts offered on selection screens.
func NewFlowService(registry *Registry, store LedgerStore, merge *LedgerMerge, consent ConsentIssuer, accountNumbers []string, opts ...FlowOption) *FlowService {
	s := &FlowService{
		sessions:       make(map[string]*flowSession),
		registry:       registry,
		seq:            NewSequencer(registry),
		merge:          merge,
		store:          store,
		consent:        consent,
		accountNumbers: accountNumbers,
		redirectDelay:  DefaultRedirectDelay,
		metrics:        nopRecorder{},
		log:            zap.NewNop(),
		newID:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartFlow opens a new flow for a bank.
func (s *FlowService) StartFlow(ctx context.Context, req StartRequest) (FlowView, error) {
	useCaseID := req.UseCase
	if useCaseID == "" {
		categories := s.registry.Categories()
		if len(categories) == 0 {
			return FlowView{}, fmt.Errorf("no categories configured: %w", domain.ErrUnknownUseCase)
		}
		category, ok := s.registry.Category(req.Category)
		if !ok {
			category = categories[0]
		}
		useCaseID = category.UseCases[0].ID
	}

	bank, ok := s.store.Get().Bank(req.Bank)
	if !ok {
		return FlowView{}, fmt.Errorf("bank %q: %w", req.Bank, domain.ErrBankNotFound)
	}

	return s.open(useCaseID, bank, nil)
}

// StartPayment validates the payment form and opens a payment flow at the
// paying account's bank.
func (s *FlowService) StartPayment(ctx context.Context, req PaymentRequest) (FlowView, error) {
	payment, err := s.validatePayment(req)
	if err != nil {
		return FlowView{}, err
	}

	useCaseID := req.UseCase
	if useCaseID == "" {
		category, ok := s.registry.Category(domain.CategoryPayments)
		if !ok {
			return FlowView{}, fmt.Errorf("category %q: %w", domain.CategoryPayments, domain.ErrUnknownUseCase)
		}
		useCaseID = category.UseCases[0].ID
	}

	bank, ok := s.store.Get().Bank(payment.Bank)
	if !ok {
		return FlowView{}, fmt.Errorf("bank %q: %w", payment.Bank, domain.ErrBankNotFound)
	}
	return s.open(useCaseID, bank, &payment)
}

func (s *FlowService) validatePayment(req PaymentRequest) (domain.Payment, error) {
	bankName, number, found := strings.Cut(req.UserAccount, "-")
	if !found || bankName == "" || number == "" {
		return domain.Payment{}, fmt.Errorf("account %q is not <bank>-<number>: %w", req.UserAccount, domain.ErrInvalidPayment)
	}
	if strings.TrimSpace(req.Payee) == "" {
		return domain.Payment{}, fmt.Errorf("payee is required: %w", domain.ErrInvalidPayment)
	}
	if strings.TrimSpace(req.Reference) == "" {
		return domain.Payment{}, fmt.Errorf("reference is required: %w", domain.ErrInvalidPayment)
	}
	if !slices.Contains(PaymentCurrencies, req.Currency) {
		return domain.Payment{}, fmt.Errorf("currency %q is not supported: %w", req.Currency, domain.ErrInvalidPayment)
	}
	if req.Amount.LessThan(minPaymentAmount) {
		return domain.Payment{}, fmt.Errorf("amount must be at least %s: %w", minPaymentAmount.StringFixed(2), domain.ErrInvalidPayment)
	}

	bank, ok := s.store.Get().Bank(bankName)
	if !ok {
		return domain.Payment{}, fmt.Errorf("bank %q: %w", bankName, domain.ErrBankNotFound)
	}
	account, ok := bank.Account(number)
	if !ok {
		account, ok = bank.Account(req.UserAccount)
	}
	if !ok {
		return domain.Payment{}, fmt.Errorf("account %q: %w", req.UserAccount, domain.ErrAccountNotFound)
	}
	if !account.Permits(domain.ActionPayments) {
		return domain.Payment{}, fmt.Errorf("account %q cannot make payments: %w", req.UserAccount, domain.ErrInvalidPayment)
	}

	return domain.Payment{
		Bank:      bankName,
		Account:   req.UserAccount,
		Payee:     req.Payee,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Reference: req.Reference,
	}, nil
}

func (s *FlowService) open(useCaseID string, bank *domain.Bank, draft *domain.Payment) (FlowView, error) {
	state, err := s.seq.Start(useCaseID)
	if err != nil {
		return FlowView{}, err
	}
	state.FlowID = s.newID()

	sess := &flowSession{
		state:     state,
		bank:      bank.Name,
		offered:   offeredAccounts(bank, s.accountNumbers),
		collector: NewCollector(),
		draft:     draft,
	}

	s.mu.Lock()
	s.sessions[state.FlowID] = sess
	s.mu.Unlock()

	s.metrics.FlowStarted(state.CategoryID)
	s.log.Info("flow started",
		zap.String("flow_id", state.FlowID),
		zap.String("use_case", state.UseCaseID),
		zap.String("bank", bank.Name))

	return s.view(sess)
}

func offeredAccounts(bank *domain.Bank, suffixes []string) []string {
	accounts := make([]string, 0, len(suffixes))
	for _, suffix := range suffixes {
		accounts = append(accounts, bank.StartingAccountNumbers+suffix)
	}
	return accounts
}

// Get returns the current view of a flow.
func (s *FlowService) Get(ctx context.Context, flowID string) (FlowView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(flowID)
	if err != nil {
		return FlowView{}, err
	}
	return s.view(sess)
}

// Submit runs the current step's handler and moves to the next step.
func (s *FlowService) Submit(ctx context.Context, flowID string, in StepInput) (FlowView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(flowID)
	if err != nil {
		return FlowView{}, err
	}
	step, err := s.seq.Current(sess.state)
	if err != nil {
		return FlowView{}, err
	}

	err = s.handle(sess, step, in)
	s.metrics.StepSubmitted(step.Component, err)
	if err != nil {
		return FlowView{}, fmt.Errorf("step %q: %w", step.ID, err)
	}

	next, err := s.seq.Advance(sess.state)
	if err != nil {
		return FlowView{}, err
	}
	// The flow stays on the current step until the final step's consent exists.
	token, err := s.issueConsent(ctx, sess, next)
	if err != nil {
		return FlowView{}, err
	}
	sess.state = next
	if token != "" {
		sess.consent = token
	}
	return s.view(sess)
}

func (s *FlowService) handle(sess *flowSession, step domain.Step, in StepInput) error {
	switch step.Component {
	case domain.ComponentLogin:
		user := in.Username
		if user == "" {
			user = in.Email
		}
		if strings.TrimSpace(user) == "" || in.Password == "" {
			return domain.ErrInvalidCredentials
		}
	case domain.ComponentLoginWithEmail:
		if strings.TrimSpace(in.Email) == "" || in.Password == "" {
			return domain.ErrInvalidCredentials
		}
	case domain.ComponentOTP:
		if strings.TrimSpace(in.Code) == "" {
			return domain.ErrInvalidOTP
		}
	case domain.ComponentSingleAccountSelection:
		if !slices.Contains(sess.offered, in.AccountID) {
			return fmt.Errorf("account %q is not offered: %w", in.AccountID, domain.ErrInvalidSelection)
		}
		sess.collector.Set(domain.SingleAccountResult(sess.bank, in.AccountID))
	case domain.ComponentMultipleAccountsSelect:
		grants, err := s.checkGrants(sess, in.Permissions)
		if err != nil {
			return err
		}
		sess.collector.Set(domain.MultipleAccountsResult(sess.bank, grants, in.Recurring != nil && *in.Recurring))
	case domain.ComponentPermissionsSelection:
		grants, err := s.checkGrants(sess, []domain.PermissionGrant{{Permission: allPermissions, Accounts: in.Accounts}})
		if err != nil {
			return err
		}
		sess.collector.Set(domain.MultipleAccountsResult(sess.bank, grants, in.Recurring != nil && *in.Recurring))
	case domain.ComponentAccountsAuthorization, domain.ComponentMultipleAuthorization:
		result := sess.collector.Result()
		if result.IsEmpty() {
			return fmt.Errorf("nothing to authorize: %w", domain.ErrInvalidSelection)
		}
		if result.Kind == domain.ResultMultipleAccounts && in.Recurring != nil {
			result.Recurring = *in.Recurring
			sess.collector.Set(result)
		}
	case domain.ComponentPaymentConfirmation:
		if sess.draft == nil {
			return fmt.Errorf("no payment to confirm: %w", domain.ErrInvalidPayment)
		}
		sess.collector.Set(domain.PaymentResult(*sess.draft))
	case domain.ComponentRedirection:
		return domain.ErrFlowTerminal
	default:
		return fmt.Errorf("component %q: %w", step.Component, domain.ErrUnsupportedStep)
	}
	return nil
}

// checkGrants drops empty grants and rejects accounts that were not offered.
func (s *FlowService) checkGrants(sess *flowSession, grants []domain.PermissionGrant) ([]domain.PermissionGrant, error) {
	kept := make([]domain.PermissionGrant, 0, len(grants))
	for _, g := range grants {
		if len(g.Accounts) == 0 {
			continue
		}
		for _, id := range g.Accounts {
			if !slices.Contains(sess.offered, id) {
				return nil, fmt.Errorf("account %q is not offered: %w", id, domain.ErrInvalidSelection)
			}
		}
		kept = append(kept, domain.PermissionGrant{Permission: g.Permission, Accounts: slices.Clone(g.Accounts)})
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("select at least one account: %w", domain.ErrInvalidSelection)
	}
	return kept, nil
}

// issueConsent signs a consent once state reaches the final step with a
// result to apply. It returns an empty token when none is due.
func (s *FlowService) issueConsent(ctx context.Context, sess *flowSession, state domain.FlowState) (string, error) {
	if sess.consent != "" || state.Cancelled || !s.seq.IsTerminal(state) {
		return "", nil
	}
	result := sess.collector.Result()
	if result.IsEmpty() {
		return "", nil
	}
	token, err := s.consent.Issue(ctx, domain.Consent{
		ID:        s.newID(),
		FlowID:    state.FlowID,
		UseCase:   state.UseCaseID,
		Bank:      sess.bank,
		Kind:      result.Kind,
		Accounts:  result.AccountIDs(),
		Recurring: result.Recurring,
	})
	if err != nil {
		s.log.Warn("consent not issued", zap.String("flow_id", state.FlowID), zap.Error(err))
		return "", fmt.Errorf("could not issue consent: %w", err)
	}
	return token, nil
}

// Cancel abandons the flow. It jumps to the redirection step; Complete then
// reports the cancellation without touching the ledger.
func (s *FlowService) Cancel(ctx context.Context, flowID string) (FlowView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(flowID)
	if err != nil {
		return FlowView{}, err
	}
	next, err := s.seq.Cancel(sess.state)
	if err != nil {
		return FlowView{}, err
	}
	sess.state = next
	sess.consent = ""
	s.metrics.FlowCancelled(next.CategoryID)
	s.log.Info("flow cancelled", zap.String("flow_id", flowID))
	return s.view(sess)
}

// Select switches the flow to another use case of its category. Whatever
// was collected so far is discarded.
func (s *FlowService) Select(ctx context.Context, flowID string, useCaseIndex int) (FlowView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(flowID)
	if err != nil {
		return FlowView{}, err
	}
	next, err := s.seq.Select(sess.state, useCaseIndex)
	if err != nil {
		return FlowView{}, err
	}
	sess.state = next
	sess.collector.Reset()
	sess.consent = ""
	return s.view(sess)
}

// Complete finishes a flow that reached its last step. It waits out the
// redirect delay, checks the consent and applies the result to the ledger.
// The flow is gone afterwards, whether the merge succeeded or not. If ctx
// ends during the delay nothing is applied and the flow stays open.
func (s *FlowService) Complete(ctx context.Context, flowID string) (Completion, error) {
	s.mu.Lock()
	sess, err := s.session(flowID)
	if err != nil {
		s.mu.Unlock()
		return Completion{}, err
	}
	if !s.seq.IsTerminal(sess.state) {
		s.mu.Unlock()
		return Completion{}, fmt.Errorf("flow %q: %w", flowID, domain.ErrFlowNotTerminal)
	}
	delete(s.sessions, flowID)
	s.mu.Unlock()

	if err := s.waitRedirect(ctx); err != nil {
		s.mu.Lock()
		s.sessions[flowID] = sess
		s.mu.Unlock()
		return Completion{}, err
	}

	pending := sess.collector.Result()
	if !sess.state.Cancelled && !pending.IsEmpty() {
		if _, err := s.consent.Verify(ctx, sess.consent, flowID); err != nil {
			if !errors.Is(err, domain.ErrConsentInvalid) {
				err = fmt.Errorf("%w: %v", domain.ErrConsentInvalid, err)
			}
			s.log.Warn("consent rejected", zap.String("flow_id", flowID), zap.Error(err))
			return Completion{Outcome: domain.FailedOutcome(pending.Kind, err), Ledger: s.store.Get()}, err
		}
	}

	started := time.Now()
	outcome, ledger, err := s.merge.Merge(ctx, sess.state, pending)
	s.metrics.MergeFinished(outcome.Kind, time.Since(started))
	if err != nil {
		if !IsMergeRejection(err) {
			s.log.Error("ledger merge failed", zap.String("flow_id", flowID), zap.Error(err))
		}
		return Completion{Outcome: outcome, Ledger: ledger}, err
	}
	return Completion{Outcome: outcome, Ledger: ledger}, nil
}

func (s *FlowService) waitRedirect(ctx context.Context) error {
	if s.redirectDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.redirectDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// session must be called with s.mu held.
func (s *FlowService) session(flowID string) (*flowSession, error) {
	sess, ok := s.sessions[flowID]
	if !ok {
		return nil, fmt.Errorf("flow %q: %w", flowID, domain.ErrUnknownFlow)
	}
	return sess, nil
}

func (s *FlowService) view(sess *flowSession) (FlowView, error) {
	uc, category, _, err := s.registry.Lookup(sess.state.UseCaseID)
	if err != nil {
		return FlowView{}, err
	}
	step, err := s.seq.Current(sess.state)
	if err != nil {
		return FlowView{}, err
	}

	v := FlowView{
		State:         sess.state,
		UseCase:       uc,
		Step:          step,
		Terminal:      s.seq.IsTerminal(sess.state),
		Bank:          sess.bank,
		Pending:       sess.collector.Result(),
		Payment:       sess.draft,
		ConsentIssued: sess.consent != "",
		Alternatives:  make([]UseCaseOption, 0, len(category.UseCases)),
	}
	for i, alt := range category.UseCases {
		v.Alternatives = append(v.Alternatives, UseCaseOption{Index: i, ID: alt.ID, Title: alt.Title})
	}

	switch step.Component {
	case domain.ComponentSingleAccountSelection:
		v.OfferedAccounts = sess.offered
	case domain.ComponentMultipleAccountsSelect:
		v.OfferedAccounts = sess.offered
		v.Permissions = AccountPermissions
	case domain.ComponentPermissionsSelection:
		v.OfferedAccounts = sess.offered
		v.Permissions = []string{allPermissions}
	}
	return v, nil
}
