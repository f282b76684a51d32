package domain

import "github.com/shopspring/decimal"

// BankSummary is a bank's card on the dashboard.
type BankSummary struct {
	Name     string          `json:"name"`
	Route    string          `json:"route"`
	Currency string          `json:"currency"`
	Color    string          `json:"color,omitempty"`
	Total    decimal.Decimal `json:"total"`
	Accounts []Account       `json:"accounts"`
}

// ChartData is the per-bank balance series for the doughnut chart.
type ChartData struct {
	Labels          []string          `json:"labels"`
	Data            []decimal.Decimal `json:"data"`
	BackgroundColor []string          `json:"backgroundColor"`
	BorderColor     []string          `json:"borderColor"`
}

// DashboardReport is the top-level structure for the home screen.
type DashboardReport struct {
	App            AppInfo         `json:"app"`
	User           User            `json:"user"`
	GeneratedOn    string          `json:"generatedOn"`
	TotalBalance   decimal.Decimal `json:"totalBalance"`
	Banks          []BankSummary   `json:"banks"`
	Chart          ChartData       `json:"chart"`
	Transactions   []Transaction   `json:"transactions"`
	StandingOrders []StandingOrder `json:"standingOrders"`
	Payees         []Payee         `json:"payees"`
}
