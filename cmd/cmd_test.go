package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/fincalc/internal/drinks"
	"github.com/theirongolddev/fincalc/internal/finance"
	"github.com/theirongolddev/fincalc/internal/jobrisk"
	"github.com/theirongolddev/fincalc/internal/preview"
	"github.com/theirongolddev/fincalc/internal/rentbuy"
)

// run executes a fresh command tree with an isolated config directory.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRentBuy_JSONPayment(t *testing.T) {
	out, err := run(t, "rentbuy", "--json",
		"--home-price", "400000", "--down-payment", "80000", "--rate", "6", "--loan-years", "30", "--years", "10")
	require.NoError(t, err)

	var res rentbuy.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InDelta(t, 1918.56, res.MonthlyPayment, 0.5)
	assert.Len(t, res.Years, 10)
	assert.Contains(t, []rentbuy.Verdict{rentbuy.VerdictBuy, rentbuy.VerdictRent, rentbuy.VerdictEven}, res.Verdict)
}

func TestRentBuy_TextOutput(t *testing.T) {
	out, err := run(t, "rentbuy")
	require.NoError(t, err)
	assert.Contains(t, out, "RENT VS BUY")
	assert.Contains(t, out, "Mortgage payment")
	assert.Contains(t, out, "By year")
}

func TestRentBuy_DownPaymentTooLarge(t *testing.T) {
	_, err := run(t, "rentbuy", "--home-price", "300000", "--down-payment", "300000")
	assert.ErrorIs(t, err, rentbuy.ErrDownPaymentTooLarge)
}

func TestRentBuy_BadFilingStatus(t *testing.T) {
	_, err := run(t, "rentbuy", "--filing", "widowed")
	assert.Error(t, err)
}

func TestResolveInput_Precedence(t *testing.T) {
	scenarioPath := writeFile(t, "home.yaml", "interest_rate: 5\nmonthly_rent: 3100\n")

	c := &cobra.Command{Use: "rentbuy"}
	flagIn := rentbuy.DefaultInput()
	bindRentBuyFlags(c.Flags(), &flagIn)
	require.NoError(t, c.Flags().Parse([]string{"--rate", "7.25", "--filing", "MFJ"}))

	base := rentbuy.DefaultInput()
	base.HomePrice = 650_000

	in, err := resolveInput(c, base, scenarioPath, bindRentBuyFlags)
	require.NoError(t, err)

	assert.Equal(t, 650_000.0, in.HomePrice, "config default kept")
	assert.Equal(t, 3100.0, in.MonthlyRent, "file overrides default")
	assert.Equal(t, 7.25, in.InterestRate, "flag overrides file")
	assert.Equal(t, finance.MarriedFilingJointly, in.FilingStatus)
	assert.Equal(t, base.DownPayment, in.DownPayment)
}

func TestResolveInput_SliceFlagsReplace(t *testing.T) {
	scenarioPath := writeFile(t, "job.toml", "agency = \"usaid\"\nprograms = [\"dei\"]\n")

	c := &cobra.Command{Use: "jobrisk"}
	var p jobrisk.Profile
	bindProfileFlags(c.Flags(), &p)
	require.NoError(t, c.Flags().Parse([]string{"--program", "climate", "--program", "research_grants", "--essential"}))

	got, err := resolveInput(c, jobrisk.Profile{}, scenarioPath, bindProfileFlags)
	require.NoError(t, err)
	assert.Equal(t, "usaid", got.Agency)
	assert.Equal(t, []string{"climate", "research_grants"}, got.Programs)
	assert.True(t, got.Essential)
}

func TestResolveInput_UnsupportedFile(t *testing.T) {
	c := &cobra.Command{Use: "drinks"}
	in := drinks.DefaultInput()
	bindDrinksFlags(c.Flags(), &in)

	_, err := resolveInput(c, in, writeFile(t, "habit.ini", "x=1"), bindDrinksFlags)
	assert.Error(t, err)
}

func TestPayment_ZeroRate(t *testing.T) {
	out, err := run(t, "payment", "--json", "--amount", "120000", "--rate", "0", "--years", "10")
	require.NoError(t, err)

	var s finance.LoanSummary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.InDelta(t, 1000.0, s.MonthlyPayment, 1e-9)
	assert.InDelta(t, 0.0, s.TotalInterest, 1e-6)
	assert.Len(t, s.Schedule, 10)
}

func TestPayment_InvalidLoan(t *testing.T) {
	_, err := run(t, "payment", "--years", "0")
	assert.ErrorIs(t, err, finance.ErrInvalidLoan)
}

func TestPayment_TextOutput(t *testing.T) {
	out, err := run(t, "payment", "--amount", "320000", "--rate", "6.5", "--years", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "Monthly payment")
	assert.Contains(t, out, "$2,022.62")
	assert.Contains(t, out, "Amortization")
}

func TestDrinks(t *testing.T) {
	out, err := run(t, "drinks", "--json", "--per-week", "10", "--price", "6", "--years", "5", "--return", "0", "--cut", "50")
	require.NoError(t, err)

	var res drinks.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InDelta(t, 60.0, res.WeeklyCost, 1e-9)
	assert.InDelta(t, 3120.0, res.AnnualCost, 1e-9)
	assert.InDelta(t, 15600.0, res.TotalSpent, 1e-9)
	assert.InDelta(t, res.TotalSpent, res.InvestedValue, 1e-6)
	assert.InDelta(t, 1560.0, res.ReducedAnnualSavings, 1e-9)

	text, err := run(t, "drinks", "--cut", "25")
	require.NoError(t, err)
	assert.Contains(t, text, "Cutting back 25%")
}

func TestDrinks_Negative(t *testing.T) {
	_, err := run(t, "drinks", "--per-week", "-1")
	assert.ErrorIs(t, err, drinks.ErrInvalidInput)
}

func TestJobRisk(t *testing.T) {
	out, err := run(t, "jobrisk", "--json", "--agency", "usaid", "--program", "foreign_aid", "--funding", "eliminated")
	require.NoError(t, err)

	var res jobrisk.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 19.0, res.Score)
	assert.Equal(t, jobrisk.BandSevere, res.Band)
	require.Len(t, res.Probabilities, 6)

	text, err := run(t, "jobrisk", "--agency", "va", "--essential")
	require.NoError(t, err)
	assert.Contains(t, text, "FEDERAL JOB RISK")
	assert.Contains(t, text, "1 year")
}

func TestJobRisk_UnknownKey(t *testing.T) {
	_, err := run(t, "jobrisk", "--agency", "nasa")
	assert.ErrorIs(t, err, jobrisk.ErrUnknownFactor)
}

func TestJobRisk_List(t *testing.T) {
	out, err := run(t, "jobrisk", "--list", "--json")
	require.NoError(t, err)

	var keys map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &keys))
	assert.Contains(t, keys["agency"], "usaid")
	assert.Contains(t, keys["tenure"], "20_plus")
}

func TestConfig_UsesConfigFlag(t *testing.T) {
	path := writeFile(t, "config.toml", "[assumptions]\ninvestment_return = 5.5\n\n[appearance]\ntheme = \"tokyo-night\"\n")

	out, err := run(t, "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Status: loaded")
	assert.Contains(t, out, "5.5%")
	assert.Contains(t, out, "tokyo-night")

	out, err = run(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "using defaults")
}

func TestConfig_InvalidFile(t *testing.T) {
	path := writeFile(t, "config.toml", "[assumptions]\nfiling_status = \"widowed\"\n")
	_, err := run(t, "config", "--config", path)
	assert.Error(t, err)
}

func TestConfig_DrivesCalculatorDefaults(t *testing.T) {
	path := writeFile(t, "config.toml", "[assumptions]\ntimeframe_years = 4\n")

	out, err := run(t, "drinks", "--json", "--config", path)
	require.NoError(t, err)

	var res drinks.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Len(t, res.Years, 4)
}

func TestPreview_RejectsMissingDir(t *testing.T) {
	_, err := run(t, "preview", filepath.Join(t.TempDir(), "missing"), "--no-open")
	assert.Error(t, err)

	_, err = run(t, "preview", writeFile(t, "index.html", "hi"), "--no-open")
	assert.Error(t, err)
}

func TestPreview_RejectsZeroAttempts(t *testing.T) {
	_, err := run(t, "preview", t.TempDir(), "--no-open", "--attempts", "0")
	assert.ErrorIs(t, err, preview.ErrInvalidAttempts)
}

func TestRentBuy_ScenarioFileFilingAlias(t *testing.T) {
	path := writeFile(t, "home.yaml", "filing_status: MFJ\nmonthly_rent: 2500\n")

	out, err := run(t, "rentbuy", "--json", "--input", path)
	require.NoError(t, err)

	var res rentbuy.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Len(t, res.Years, 10)

	bad := writeFile(t, "bad.json", `{"filing_status": "widowed"}`)
	_, err = run(t, "rentbuy", "--input", bad)
	assert.ErrorIs(t, err, finance.ErrUnknownFilingStatus)
}
