package domain

// AppInfo identifies the TPP application.
type AppInfo struct {
	Route           string `json:"route" yaml:"route"`
	ApplicationName string `json:"applicationName" yaml:"applicationName"`
}

// User is the signed-in demo user.
type User struct {
	Name       string `json:"name" yaml:"name"`
	Image      string `json:"image,omitempty" yaml:"image,omitempty"`
	Background string `json:"background,omitempty" yaml:"background,omitempty"`
}

// Config is the seed document loaded once at start.
type Config struct {
	App                 AppInfo    `json:"name" yaml:"name"`
	User                User       `json:"user" yaml:"user"`
	Banks               []Bank     `json:"banks" yaml:"banks"`
	Payees              []Payee    `json:"payees" yaml:"payees"`
	Categories          []Category `json:"types" yaml:"types"`
	AccountNumbersToAdd []string   `json:"accountNumbersToAdd" yaml:"accountNumbersToAdd"`
}

// Ledger returns the seed banks as a ledger.
func (c *Config) Ledger() *Ledger {
	return (&Ledger{Banks: c.Banks}).Clone()
}
