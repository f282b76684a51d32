package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tpp-demo/internal/domain"
	"tpp-demo/internal/usecase"
	mock_usecase "tpp-demo/internal/usecase/mocks"
)

type flowFixture struct {
	svc     *usecase.FlowService
	store   *memStore
	consent *mock_usecase.MockConsentIssuer
	metrics *mock_usecase.MockRecorder
}

func newFlowFixture(t *testing.T, ctrl *gomock.Controller, opts ...usecase.FlowOption) flowFixture {
	t.Helper()
	registry, err := usecase.NewRegistry(testCategories())
	require.NoError(t, err)

	store := newMemStore(testLedger())
	consent := mock_usecase.NewMockConsentIssuer(ctrl)
	metrics := mock_usecase.NewMockRecorder(ctrl)
	metrics.EXPECT().FlowStarted(gomock.Any()).AnyTimes()
	metrics.EXPECT().StepSubmitted(gomock.Any(), gomock.Any()).AnyTimes()
	metrics.EXPECT().FlowCancelled(gomock.Any()).AnyTimes()
	metrics.EXPECT().MergeFinished(gomock.Any(), gomock.Any()).AnyTimes()

	n := 0
	nextID := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}

	opts = append([]usecase.FlowOption{
		usecase.WithRedirectDelay(0),
		usecase.WithRecorder(metrics),
		usecase.WithLogger(zap.NewNop()),
		usecase.WithIDGenerator(nextID),
	}, opts...)
	svc := usecase.NewFlowService(registry, store, newMerge(store), consent, []string{"2345", "6789"}, opts...)
	return flowFixture{svc: svc, store: store, consent: consent, metrics: metrics}
}

func ptr[T any](v T) *T { return &v }

func TestFlowService_AccountAggregation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFlowFixture(t, ctrl)
	ctx := context.Background()

	view, err := f.svc.StartFlow(ctx, usecase.StartRequest{UseCase: "account-aggregation", Bank: "Bank A"})
	require.NoError(t, err)
	flowID := view.State.FlowID
	assert.Equal(t, "id-1", flowID)
	assert.Equal(t, domain.ComponentLogin, view.Step.Component)
	assert.Len(t, view.Alternatives, 3)

	view, err = f.svc.Submit(ctx, flowID, usecase.StepInput{Username: "john@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, domain.ComponentOTP, view.Step.Component)

	view, err = f.svc.Submit(ctx, flowID, usecase.StepInput{Code: "123456"})
	require.NoError(t, err)
	assert.Equal(t, domain.ComponentSingleAccountSelection, view.Step.Component)
	assert.Equal(t, []string{"0001-2345", "0001-6789"}, view.OfferedAccounts)

	view, err = f.svc.Submit(ctx, flowID, usecase.StepInput{AccountID: "0001-2345"})
	require.NoError(t, err)
	assert.Equal(t, domain.SingleAccountResult("Bank A", "0001-2345"), view.Pending)

	f.consent.EXPECT().Issue(gomock.Any(), domain.Consent{
		ID:       "id-2",
		FlowID:   flowID,
		UseCase:  "account-aggregation",
		Bank:     "Bank A",
		Kind:     domain.ResultSingleAccount,
		Accounts: []string{"0001-2345"},
	}).Return("signed", nil)

	view, err = f.svc.Submit(ctx, flowID, usecase.StepInput{})
	require.NoError(t, err)
	assert.True(t, view.Terminal)
	assert.True(t, view.ConsentIssued)
	assert.Equal(t, domain.ComponentRedirection, view.Step.Component)

	f.consent.EXPECT().Verify(gomock.Any(), "signed", flowID).Return(domain.Consent{FlowID: flowID}, nil)

	done, err := f.svc.Complete(ctx, flowID)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAccountAdded, done.Outcome.Kind)
	assert.Equal(t, "Account added Successfully", done.Outcome.Title)
	assert.Equal(t, "The new account 0001-2345 was added successfully.", done.Outcome.Message)

	bank, _ := f.store.Get().Bank("Bank A")
	acct, ok := bank.Account("0001-2345")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(500).Equal(acct.Balance))

	_, err = f.svc.Get(ctx, flowID)
	assert.ErrorIs(t, err, domain.ErrUnknownFlow)
}

func TestFlowService_CancelMidFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFlowFixture(t, ctrl)
	ctx := context.Background()

	view, err := f.svc.StartFlow(ctx, usecase.StartRequest{Category: domain.CategoryAccounts, Bank: "Bank A"})
	require.NoError(t, err)
	assert.Equal(t, "account-aggregation", view.State.UseCaseID)
	flowID := view.State.FlowID

	_, err = f.svc.Submit(ctx, flowID, usecase.StepInput{Username: "john", Password: "x"})
	require.NoError(t, err)

	view, err = f.svc.Cancel(ctx, flowID)
	require.NoError(t, err)
	assert.True(t, view.State.Cancelled)
	assert.True(t, view.Terminal)

	_, err = f.svc.Submit(ctx, flowID, usecase.StepInput{})
	assert.ErrorIs(t, err, domain.ErrFlowTerminal)

	done, err := f.svc.Complete(ctx, flowID)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCancelled, done.Outcome.Kind)
	assert.Equal(t, "Operation Cancelled", done.Outcome.Title)
	assert.Equal(t, testLedger(), done.Ledger)
	assert.Zero(t, f.store.replaced)
}

func TestFlowService_SelectDiscardsPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFlowFixture(t, ctrl)
	ctx := context.Background()

	view, err := f.svc.StartFlow(ctx, usecase.StartRequest{UseCase: "account-aggregation", Bank: "Bank A"})
	require.NoError(t, err)
	flowID := view.State.FlowID
	for _, in := range []usecase.StepInput{
		{Username: "john", Password: "x"},
		{Code: "1"},
		{AccountID: "0001-6789"},
	} {
		_, err = f.svc.Submit(ctx, flowID, in)
		require.NoError(t, err)
	}

	view, err = f.svc.Select(ctx, flowID, 1)
	require.NoError(t, err)
	assert.Equal(t, "multiple-accounts", view.State.UseCaseID)
	assert.Equal(t, 0, view.State.StepIndex)
	assert.True(t, view.Pending.IsEmpty())

	_, err = f.svc.Select(ctx, flowID, 7)
	assert.ErrorIs(t, err, domain.ErrUnknownUseCase)
}

func TestFlowService_MultipleAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFlowFixture(t, ctrl)
	ctx := context.Background()

	view, err := f.svc.StartFlow(ctx, usecase.StartRequest{UseCase: "multiple-accounts", Bank: "Bank B"})
	require.NoError(t, err)
	flowID := view.State.FlowID

	_, err = f.svc.Submit(ctx, flowID, usecase.StepInput{Email: "john@example.com", Password: "x"})
	require.NoError(t, err)

	view, err = f.svc.Get(ctx, flowID)
	require.NoError(t, err)
	assert.Equal(t, usecase.AccountPermissions, view.Permissions)

	grants := []domain.PermissionGrant{
		{Permission: "Read Accounts", Accounts: []string{"0002-2345", "0002-6789"}},
		{Permission: "Read Balances", Accounts: []string{"0002-6789"}},
		{Permission: "Read Transactions"},
	}
	view, err = f.svc.Submit(ctx, flowID, usecase.StepInput{Permissions: grants})
	require.NoError(t, err)
	assert.Len(t, view.Pending.Permissions, 2)
	assert.False(t, view.Pending.Recurring)

	f.consent.EXPECT().Issue(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c domain.Consent) (string, error) {
			assert.Equal(t, []string{"0002-2345", "0002-6789"}, c.Accounts)
			assert.True(t, c.Recurring)
			return "signed", nil
		})
	_, err = f.svc.Submit(ctx, flowID, usecase.StepInput{Recurring: ptr(true)})
	require.NoError(t, err)

	f.consent.EXPECT().Verify(gomock.Any(), "signed", flowID).Return(domain.Consent{}, nil)
	done, err := f.svc.Complete(ctx, flowID)
	require.NoError(t, err)
	assert.Equal(t, "The new accounts 0002-2345, 0002-6789 were added successfully.", done.Outcome.Message)
}

func TestFlowService_SubmitValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name    string
		useCase string
		prior   []usecase.StepInput
		input   usecase.StepInput
		wantErr error
	}{
		{name: "login needs a password", useCase: "account-aggregation", input: usecase.StepInput{Username: "john"}, wantErr: domain.ErrInvalidCredentials},
		{name: "login needs a user", useCase: "account-aggregation", input: usecase.StepInput{Username: "  ", Password: "x"}, wantErr: domain.ErrInvalidCredentials},
		{name: "email login needs an email", useCase: "multiple-accounts", input: usecase.StepInput{Username: "john", Password: "x"}, wantErr: domain.ErrInvalidCredentials},
		{
			name:    "otp needs a code",
			useCase: "account-aggregation",
			prior:   []usecase.StepInput{{Username: "john", Password: "x"}},
			wantErr: domain.ErrInvalidOTP,
		},
		{
			name:    "selection must be an offered account",
			useCase: "account-aggregation",
			prior:   []usecase.StepInput{{Username: "john", Password: "x"}, {Code: "1"}},
			input:   usecase.StepInput{AccountID: "0002-2345"},
			wantErr: domain.ErrInvalidSelection,
		},
		{
			name:    "permissions selection needs an account",
			useCase: "permissions",
			prior:   []usecase.StepInput{{Username: "john", Password: "x"}},
			input:   usecase.StepInput{Accounts: []string{}},
			wantErr: domain.ErrInvalidSelection,
		},
		{
			name:    "payment confirmation without a draft",
			useCase: "single-payment",
			prior:   []usecase.StepInput{{Username: "john", Password: "x"}, {Code: "1"}},
			wantErr: domain.ErrInvalidPayment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFlowFixture(t, ctrl)
			ctx := context.Background()

			view, err := f.svc.StartFlow(ctx, usecase.StartRequest{UseCase: tt.useCase, Bank: "Bank A"})
			require.NoError(t, err)
			for _, in := range tt.prior {
				_, err = f.svc.Submit(ctx, view.State.FlowID, in)
				require.NoError(t, err)
			}
			before, err := f.svc.Get(ctx, view.State.FlowID)
			require.NoError(t, err)

			_, err = f.svc.Submit(ctx, view.State.FlowID, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)

			after, err := f.svc.Get(ctx, view.State.FlowID)
			require.NoError(t, err)
			assert.Equal(t, before.State, after.State, "a rejected step does not advance")
		})
	}
}

func TestFlowService_StartErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFlowFixture(t, ctrl)
	ctx := context.Background()

	_, err := f.svc.StartFlow(ctx, usecase.StartRequest{UseCase: "account-aggregation", Bank: "Bank Z"})
	assert.ErrorIs(t, err, domain.ErrBankNotFound)

	_, err = f.svc.StartFlow(ctx, usecase.StartRequest{UseCase: "nope", Bank: "Bank A"})
	assert.ErrorIs(t, err, domain.ErrUnknownUseCase)

	view, err := f.svc.StartFlow(ctx, usecase.StartRequest{Category: "loans", Bank: "Bank A"})
	require.NoError(t, err)
	assert.Equal(t, "account-aggregation", view.State.UseCaseID, "unknown category falls back to the first")

	_, err = f.svc.Submit(ctx, "missing", usecase.StepInput{})
	assert.ErrorIs(t, err, domain.ErrUnknownFlow)
	_, err = f.svc.Cancel(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUnknownFlow)
	_, err = f.svc.Complete(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUnknownFlow)
	_, err = f.svc.Complete(ctx, view.State.FlowID)
	assert.ErrorIs(t, err, domain.ErrFlowNotTerminal)
}

func TestFlowService_StartPaymentValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFlowFixture(t, ctrl)

	valid := usecase.PaymentRequest{
		UserAccount: "Bank A-0001-1111",
		Payee:       "Electricity-12345678",
		Amount:      decimal.RequireFromString("10.00"),
		Currency:    "GBP",
		Reference:   "Bill",
	}

	tests := []struct {
		name    string
		mutate  func(r *usecase.PaymentRequest)
		wantErr error
	}{
		{name: "valid", mutate: func(*usecase.PaymentRequest) {}},
		{name: "account without bank prefix", mutate: func(r *usecase.PaymentRequest) { r.UserAccount = "00011111" }, wantErr: domain.ErrInvalidPayment},
		{name: "missing payee", mutate: func(r *usecase.PaymentRequest) { r.Payee = "" }, wantErr: domain.ErrInvalidPayment},
		{name: "blank reference", mutate: func(r *usecase.PaymentRequest) { r.Reference = "  " }, wantErr: domain.ErrInvalidPayment},
		{name: "unsupported currency", mutate: func(r *usecase.PaymentRequest) { r.Currency = "JPY" }, wantErr: domain.ErrInvalidPayment},
		{name: "amount below a penny", mutate: func(r *usecase.PaymentRequest) { r.Amount = decimal.RequireFromString("0.009") }, wantErr: domain.ErrInvalidPayment},
		{name: "smallest amount", mutate: func(r *usecase.PaymentRequest) { r.Amount = decimal.RequireFromString("0.01") }},
		{name: "unknown bank", mutate: func(r *usecase.PaymentRequest) { r.UserAccount = "Bank Z-0001-1111" }, wantErr: domain.ErrBankNotFound},
		{name: "unknown account", mutate: func(r *usecase.PaymentRequest) { r.UserAccount = "Bank A-0001-0000" }, wantErr: domain.ErrAccountNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			view, err := f.svc.StartPayment(context.Background(), req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.CategoryPayments, view.State.CategoryID)
			assert.Equal(t, "Bank A", view.Bank)
			require.NotNil(t, view.Payment)
			assert.Equal(t, req.UserAccount, view.Payment.Account)
		})
	}
}

func TestFlowService_StartPaymentAccountNotPermitted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFlowFixture(t, ctrl)

	ledger := testLedger()
	ledger.Banks[0].Accounts[0].NotPermittedActions = []string{domain.ActionPayments}
	f.store.Replace(ledger)

	_, err := f.svc.StartPayment(context.Background(), usecase.PaymentRequest{
		UserAccount: "Bank A-0001-1111",
		Payee:       "Electricity-12345678",
		Amount:      decimal.NewFromInt(10),
		Currency:    "GBP",
		Reference:   "Bill",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPayment)
	assert.ErrorContains(t, err, "cannot make payments")
}

func TestFlowService_ConsentIssueFailureKeepsStep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFlowFixture(t, ctrl)
	ctx := context.Background()

	view, err := f.svc.StartFlow(ctx, usecase.StartRequest{UseCase: "account-aggregation", Bank: "Bank A"})
	require.NoError(t, err)
	flowID := view.State.FlowID
	for _, in := range []usecase.StepInput{{Username: "john", Password: "x"}, {Code: "1"}, {AccountID: "0001-2345"}} {
		_, err = f.svc.Submit(ctx, flowID, in)
		require.NoError(t, err)
	}

	f.consent.EXPECT().Issue(gomock.Any(), gomock.Any()).Return("", fmt.Errorf("signer down"))
	_, err = f.svc.Submit(ctx, flowID, usecase.StepInput{})
	assert.ErrorContains(t, err, "signer down")

	view, err = f.svc.Get(ctx, flowID)
	require.NoError(t, err)
	assert.Equal(t, domain.ComponentAccountsAuthorization, view.Step.Component)
	assert.False(t, view.Terminal)
	assert.False(t, view.ConsentIssued)
	assert.Equal(t, domain.SingleAccountResult("Bank A", "0001-2345"), view.Pending)

	f.consent.EXPECT().Issue(gomock.Any(), gomock.Any()).Return("signed", nil)
	view, err = f.svc.Submit(ctx, flowID, usecase.StepInput{})
	require.NoError(t, err)
	assert.True(t, view.Terminal)
	assert.True(t, view.ConsentIssued)

	f.consent.EXPECT().Verify(gomock.Any(), "signed", flowID).Return(domain.Consent{FlowID: flowID}, nil)
	done, err := f.svc.Complete(ctx, flowID)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAccountAdded, done.Outcome.Kind)
}

func runPayment(t *testing.T, f flowFixture, amount string) (string, error) {
	t.Helper()
	ctx := context.Background()

	view, err := f.svc.StartPayment(ctx, usecase.PaymentRequest{
		UserAccount: "Bank A-0001-1111",
		Payee:       "Electricity-12345678",
		Amount:      decimal.RequireFromString(amount),
		Currency:    "GBP",
		Reference:   "Bill",
	})
	require.NoError(t, err)
	flowID := view.State.FlowID

	f.consent.EXPECT().Issue(gomock.Any(), gomock.Any()).Return("signed", nil)
	for _, in := range []usecase.StepInput{{Username: "john", Password: "x"}, {Code: "1"}, {}} {
		_, err = f.svc.Submit(ctx, flowID, in)
		require.NoError(t, err)
	}
	return flowID, nil
}

func TestFlowService_Payment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFlowFixture(t, ctrl)

	flowID, err := runPayment(t, f, "100")
	require.NoError(t, err)
	f.consent.EXPECT().Verify(gomock.Any(), "signed", flowID).Return(domain.Consent{}, nil)

	done, err := f.svc.Complete(context.Background(), flowID)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomePayment, done.Outcome.Kind)
	assert.Equal(t, "Your payment of GBP 100.00 has been successfully processed.", done.Outcome.Message)

	bank, _ := done.Ledger.Bank("Bank A")
	acct, _ := bank.Account("0001-1111")
	assert.True(t, decimal.NewFromInt(900).Equal(acct.Balance))
	assert.Equal(t, done.Outcome.TransactionID, acct.Transactions[0].ID)
}

func TestFlowService_PaymentInsufficientFunds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFlowFixture(t, ctrl)

	flowID, err := runPayment(t, f, "5000")
	require.NoError(t, err)
	f.consent.EXPECT().Verify(gomock.Any(), "signed", flowID).Return(domain.Consent{}, nil)

	done, err := f.svc.Complete(context.Background(), flowID)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, domain.OutcomeFailed, done.Outcome.Kind)
	assert.Equal(t, "Payment Failed", done.Outcome.Title)
	assert.Equal(t, testLedger(), f.store.Get())
	assert.Zero(t, f.store.replaced)

	_, err = f.svc.Get(context.Background(), flowID)
	assert.ErrorIs(t, err, domain.ErrUnknownFlow, "a failed merge still ends the flow")
}

func TestFlowService_ConsentRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFlowFixture(t, ctrl)

	flowID, err := runPayment(t, f, "1")
	require.NoError(t, err)
	f.consent.EXPECT().Verify(gomock.Any(), "signed", flowID).Return(domain.Consent{}, fmt.Errorf("token is expired"))

	done, err := f.svc.Complete(context.Background(), flowID)
	assert.ErrorIs(t, err, domain.ErrConsentInvalid)
	assert.Equal(t, domain.OutcomeFailed, done.Outcome.Kind)
	assert.Zero(t, f.store.replaced)
}

func TestFlowService_CompleteHonoursContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFlowFixture(t, ctrl, usecase.WithRedirectDelay(time.Hour))

	flowID, err := runPayment(t, f, "1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = f.svc.Complete(ctx, flowID)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, f.store.replaced)

	view, err := f.svc.Get(context.Background(), flowID)
	require.NoError(t, err, "an interrupted redirect keeps the flow")
	assert.True(t, view.Terminal)
}
