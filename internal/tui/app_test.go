package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/fincalc/internal/config"
	"github.com/theirongolddev/fincalc/internal/finance"
	"github.com/theirongolddev/fincalc/internal/jobrisk"
	"github.com/theirongolddev/fincalc/internal/rentbuy"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, a App, msgs ...tea.Msg) App {
	t.Helper()
	for _, msg := range msgs {
		m, _ := a.Update(msg)
		var ok bool
		a, ok = m.(App)
		require.True(t, ok)
	}
	return a
}

func newTestApp(t *testing.T) App {
	t.Helper()
	a := NewApp(config.DefaultConfig(), filepath.Join(t.TempDir(), "config.toml"), false)
	return send(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func TestApp_TabNavigation(t *testing.T) {
	a := newTestApp(t)
	assert.Equal(t, 0, a.activeTab)

	a = send(t, a, key("j"))
	assert.Equal(t, 3, a.activeTab)

	a = send(t, a, key("right"))
	assert.Equal(t, 0, a.activeTab)

	a = send(t, a, key("left"), key("left"))
	assert.Equal(t, 2, a.activeTab)

	a = send(t, a, key("p"))
	assert.Equal(t, 1, a.activeTab)
}

func TestApp_EditAndCancel(t *testing.T) {
	a := newTestApp(t)

	a = send(t, a, key("e"))
	require.NotNil(t, a.form)
	assert.NotEmpty(t, a.View())

	a = send(t, a, key("esc"))
	assert.Nil(t, a.form)
	assert.Equal(t, "Edit cancelled", a.statusMsg)
	assert.False(t, a.statusErr)
}

func TestApp_HelpToggle(t *testing.T) {
	a := newTestApp(t)
	a = send(t, a, key("?"))
	assert.True(t, a.showHelp)
	assert.Contains(t, a.View(), "Switch calculator")

	a = send(t, a, key("x"))
	assert.False(t, a.showHelp)
}

func TestApp_ViewRendersEveryTab(t *testing.T) {
	a := newTestApp(t)
	for _, k := range []string{"r", "p", "d", "j"} {
		a = send(t, a, key(k))
		assert.NotEmpty(t, a.View(), "tab %s", k)
	}

	narrow := send(t, a, tea.WindowSizeMsg{Width: 60, Height: 20})
	assert.Contains(t, narrow.View(), "too narrow")
}

func TestApp_FirstRunStartsWizard(t *testing.T) {
	a := NewApp(config.DefaultConfig(), filepath.Join(t.TempDir(), "config.toml"), true)
	require.NotNil(t, a.form)
	assert.True(t, a.needSetup)
}

func TestFinishSetupSavesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	a := NewApp(config.DefaultConfig(), path, true)
	a.setup.cfg.Assumptions.InvestmentReturn = 5
	a.form = a.setup.Form()

	a.finishSetup()
	assert.False(t, a.statusErr, a.statusMsg)
	assert.True(t, config.Exists(path))

	saved, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 5.0, saved.Assumptions.InvestmentReturn)
	assert.Equal(t, 5.0, a.tabs[0].(*rentBuyTab).in.InvestmentReturn)
}

func TestRentBuyTab_SubmitRejectsLargeDownPayment(t *testing.T) {
	tab := newRentBuyTab(rentbuy.DefaultInput())
	before := tab.res

	tab.in.DownPayment = tab.in.HomePrice
	tab.newForm()
	err := tab.submit()
	assert.ErrorIs(t, err, rentbuy.ErrDownPaymentTooLarge)
	assert.Equal(t, before, tab.res)
}

func TestRentBuyTab_RejectedEditKeepsInput(t *testing.T) {
	tab := newRentBuyTab(rentbuy.DefaultInput())
	before := tab.res

	tab.newForm()
	tab.fields[1].text = "400000"             // down payment equal to the price
	tab.fields[len(tab.fields)-1].text = "25" // timeframe
	assert.ErrorIs(t, tab.submit(), rentbuy.ErrDownPaymentTooLarge)

	assert.Equal(t, rentbuy.DefaultInput(), tab.in)
	assert.Equal(t, before, tab.res)
	assert.Contains(t, tab.status(), "over 10 years")
}

func TestPaymentTab_RejectedEditKeepsLoan(t *testing.T) {
	loan := finance.Loan{Principal: 320_000, RatePercent: 6, Years: 30}
	tab := newPaymentTab(loan)
	tab.newForm()
	tab.fields[0].text = "100000"
	tab.fields[2].text = "0"

	assert.ErrorIs(t, tab.submit(), finance.ErrInvalidLoan)
	assert.Equal(t, loan, tab.loan)
	assert.Contains(t, tab.status(), "for 30 years")
}

func TestRentBuyTab_SubmitParsesFormText(t *testing.T) {
	tab := newRentBuyTab(rentbuy.DefaultInput())
	tab.newForm()
	tab.fields[0].text = "$500,000"
	tab.filing = "married_joint"

	require.NoError(t, tab.submit())
	assert.Equal(t, 500_000.0, tab.in.HomePrice)
	assert.Equal(t, "married_joint", string(tab.in.FilingStatus))
	assert.Contains(t, tab.status(), "over 10 years")
}

func TestJobRiskTab_Submit(t *testing.T) {
	tab := newJobRiskTab()
	tab.profile = jobrisk.Profile{Agency: "usaid", Programs: []string{"foreign_aid"}, Funding: "eliminated"}
	require.NoError(t, tab.submit())
	assert.Equal(t, 19.0, tab.res.Score)
	assert.Equal(t, jobrisk.BandSevere, tab.res.Band)

	tab.profile.Agency = "nasa"
	assert.Error(t, tab.submit())
}

func TestPaymentTab_SubmitValidates(t *testing.T) {
	tab := newPaymentTab(finance.Loan{Principal: 320_000, RatePercent: 6, Years: 30})
	tab.newForm()
	tab.fields[2].text = "0"
	assert.Error(t, tab.submit())
}

func TestParseNumber(t *testing.T) {
	v, err := parseNumber("$1,250.50")
	require.NoError(t, err)
	assert.Equal(t, 1250.5, v)

	v, err = parseNumber("6.5%")
	require.NoError(t, err)
	assert.Equal(t, 6.5, v)

	v, err = parseNumber("")
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	_, err = parseNumber("lots")
	assert.Error(t, err)

	assert.Error(t, validateNumber("-1"))
	assert.Error(t, validateWhole("2.5"))
	assert.Error(t, validateWhole("0"))
	assert.NoError(t, validateWhole("30"))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Married joint", humanize("married_joint"))
	assert.Equal(t, "USAID", factorLabel(jobrisk.FactorAgency, "usaid"))
	assert.Equal(t, "Education", factorLabel(jobrisk.FactorAgency, "education"))
	assert.Equal(t, "20+ years", factorLabel(jobrisk.FactorTenure, "20_plus"))
}
