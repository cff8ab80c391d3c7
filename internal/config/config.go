// Package config loads and saves the fincalc configuration file.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/rotisserie/eris"

	"github.com/theirongolddev/fincalc/internal/drinks"
	"github.com/theirongolddev/fincalc/internal/finance"
	"github.com/theirongolddev/fincalc/internal/rentbuy"
)

// Config holds all fincalc configuration.
type Config struct {
	Assumptions AssumptionsConfig `toml:"assumptions"`
	Appearance  AppearanceConfig  `toml:"appearance"`
	Log         LogConfig         `toml:"log"`
}

// AssumptionsConfig holds the market and tax assumptions every calculator
// starts from. Rates are annual percentages.
type AssumptionsConfig struct {
	InvestmentReturn float64 `toml:"investment_return"`
	AppreciationRate float64 `toml:"appreciation_rate"`
	RentIncreaseRate float64 `toml:"rent_increase_rate"`
	PropertyTaxRate  float64 `toml:"property_tax_rate"`
	MaintenanceRate  float64 `toml:"maintenance_rate"`
	ClosingCostRate  float64 `toml:"closing_cost_rate"`
	SellingCostRate  float64 `toml:"selling_cost_rate"`
	MarginalTaxRate  float64 `toml:"marginal_tax_rate"`
	FilingStatus     string  `toml:"filing_status"`
	TimeframeYears   int     `toml:"timeframe_years"`
	LoanTermYears    int     `toml:"loan_term_years"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig controls the zap logger. Format is "console" or "json".
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	def := rentbuy.DefaultInput()
	return Config{
		Assumptions: AssumptionsConfig{
			InvestmentReturn: def.InvestmentReturn,
			AppreciationRate: def.AppreciationRate,
			RentIncreaseRate: def.RentIncreaseRate,
			PropertyTaxRate:  def.PropertyTaxRate,
			MaintenanceRate:  def.MaintenanceRate,
			ClosingCostRate:  def.ClosingCostRate,
			SellingCostRate:  def.SellingCostRate,
			MarginalTaxRate:  def.MarginalTaxRate,
			FilingStatus:     string(def.FilingStatus),
			TimeframeYears:   def.TimeframeYears,
			LoanTermYears:    def.LoanTermYears,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fincalc")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fincalc")
}

// Path returns the default path of the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the default config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config file at path. Keys missing from the file keep
// their default values.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // user-chosen config path
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, eris.Wrap(err, "reading config")
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, eris.Wrap(err, "parsing config")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Save writes the config to the default path.
func Save(cfg Config) error {
	return SaveTo(Path(), cfg)
}

// SaveTo writes the config to path, creating its directory.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrap(err, "creating config dir")
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // user-chosen config path
	if err != nil {
		return eris.Wrap(err, "creating config file")
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return eris.Wrap(err, "writing config")
	}
	return nil
}

// Exists returns true if a config file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Validate checks values the calculators cannot recover from.
func (c Config) Validate() error {
	if _, ok := finance.ParseFilingStatus(c.Assumptions.FilingStatus); !ok {
		return eris.Errorf("config: unknown filing status %q", c.Assumptions.FilingStatus)
	}
	if c.Assumptions.TimeframeYears <= 0 || c.Assumptions.LoanTermYears <= 0 {
		return eris.New("config: timeframe_years and loan_term_years must be positive")
	}
	return nil
}

// RentBuyInput returns the default rent-vs-buy scenario with the configured
// assumptions applied.
func (c Config) RentBuyInput() rentbuy.Input {
	a := c.Assumptions
	in := rentbuy.DefaultInput()
	in.InvestmentReturn = a.InvestmentReturn
	in.AppreciationRate = a.AppreciationRate
	in.RentIncreaseRate = a.RentIncreaseRate
	in.PropertyTaxRate = a.PropertyTaxRate
	in.MaintenanceRate = a.MaintenanceRate
	in.ClosingCostRate = a.ClosingCostRate
	in.SellingCostRate = a.SellingCostRate
	in.MarginalTaxRate = a.MarginalTaxRate
	in.TimeframeYears = a.TimeframeYears
	in.LoanTermYears = a.LoanTermYears
	if fs, ok := finance.ParseFilingStatus(a.FilingStatus); ok {
		in.FilingStatus = fs
	}
	return in
}

// DrinksInput returns the default drinking habit with the configured
// investment return and timeframe.
func (c Config) DrinksInput() drinks.Input {
	in := drinks.DefaultInput()
	in.InvestmentReturn = c.Assumptions.InvestmentReturn
	in.Years = c.Assumptions.TimeframeYears
	return in
}
