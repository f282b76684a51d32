package domain

// Step components. Each one names the screen a step maps to and the handler
// that validates its input.
const (
	ComponentLogin                  = "login"
	ComponentLoginWithEmail         = "login-with-email"
	ComponentOTP                    = "otp"
	ComponentSingleAccountSelection = "single-account-selection"
	ComponentMultipleAccountsSelect = "multiple-accounts-selection"
	ComponentPermissionsSelection   = "accounts-selection-with-permissions"
	ComponentAccountsAuthorization  = "accounts-authorization"
	ComponentMultipleAuthorization  = "multiple-accounts-authorization"
	ComponentPaymentConfirmation    = "payment-confirmation"
	ComponentRedirection            = "redirection"
)

// Well-known category ids.
const (
	CategoryAccounts = "accounts"
	CategoryPayments = "payments"
)

// Step is one screen of a use case.
type Step struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Component string `json:"component" yaml:"component"`
}

// UseCase is a named, ordered sequence of authorization steps.
type UseCase struct {
	ID               string `json:"id" yaml:"id"`
	Title            string `json:"title" yaml:"title"`
	UserVerification string `json:"userVerification,omitempty" yaml:"userVerification,omitempty"`
	ConsentDisplay   string `json:"consentDisplay,omitempty" yaml:"consentDisplay,omitempty"`
	Steps            []Step `json:"steps" yaml:"steps"`
}

// Category groups the use cases a user can switch between during one flow,
// e.g. every account-linking variant.
type Category struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	UseCases []UseCase `json:"useCases" yaml:"useCases"`
}
