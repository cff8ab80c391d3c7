// Package tui provides the interactive Bubble Tea dashboard for fincalc.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/theirongolddev/fincalc/internal/config"
	"github.com/theirongolddev/fincalc/internal/finance"
	"github.com/theirongolddev/fincalc/internal/tui/components"
	"github.com/theirongolddev/fincalc/internal/tui/theme"
)

// calculator is one dashboard tab. newForm binds a huh form to the tab's
// inputs; submit recalculates from them once the form completes.
type calculator interface {
	newForm() *huh.Form
	submit() error
	status() string
	view(width int) string
}

// App is the root Bubble Tea model.
type App struct {
	cfg     config.Config
	cfgPath string
	tabs    []calculator

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Active form: a calculator's inputs or the setup wizard.
	form      *huh.Form
	setup     *Setup
	needSetup bool

	statusMsg string
	statusErr bool
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	maxFormWidth     = 72
	minContentHeight = 5

	statusHints = "[e]dit  [←/→]tabs  [?]help  [q]uit"
	formHints   = "[enter]next  [shift+tab]back  [esc]cancel"
)

// NewApp creates a new TUI app model. When firstRun is set the setup
// wizard runs before the dashboard and its answers are saved to cfgPath.
func NewApp(cfg config.Config, cfgPath string, firstRun bool) App {
	a := App{
		cfg:       cfg,
		cfgPath:   cfgPath,
		needSetup: firstRun,
	}
	a.tabs = newTabs(cfg)

	if firstRun {
		a.setup = NewSetup(cfg)
		a.form = a.setup.Form()
	}
	return a
}

func newTabs(cfg config.Config) []calculator {
	rb := cfg.RentBuyInput()
	loan := finance.Loan{
		Principal:   rb.LoanAmount(),
		RatePercent: rb.InterestRate,
		Years:       rb.LoanTermYears,
	}
	return []calculator{
		newRentBuyTab(rb),
		newPaymentTab(loan),
		newDrinksTab(cfg.DrinksInput()),
		newJobRiskTab(),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.form != nil {
		cmds = append(cmds, a.form.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.sizeForm(a.form)
		}
		return a, nil

	case tea.MouseMsg:
		if a.form != nil || a.showHelp {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if a.form != nil {
			if key == "esc" {
				a.closeForm("Edit cancelled", false)
				return a, nil
			}
			return a.updateForm(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "e", "enter":
			a.form = a.sizeForm(a.tabs[a.activeTab].newForm())
			return a, a.form.Init()
		case "left", "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(a.tabs)) % len(a.tabs)
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(a.tabs)
		default:
			if len(msg.Runes) == 1 {
				if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil
	}

	// Forward everything else (cursor blinks, etc.) to the active form.
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		if a.needSetup {
			a.finishSetup()
		} else {
			a.submitActive()
		}
		return a, nil
	case huh.StateAborted:
		a.closeForm("Edit cancelled", false)
		return a, nil
	}
	return a, cmd
}

func (a *App) submitActive() {
	tab := a.tabs[a.activeTab]
	if err := tab.submit(); err != nil {
		zap.L().Debug("calculation rejected",
			zap.String("tab", components.Tabs[a.activeTab].Name),
			zap.Error(err),
		)
		a.closeForm(err.Error(), true)
		return
	}
	a.closeForm(tab.status(), false)
}

func (a *App) finishSetup() {
	cfg, err := a.setup.Config()
	if err != nil {
		a.closeForm(err.Error(), true)
		return
	}
	a.cfg = cfg
	a.tabs = newTabs(cfg)
	theme.SetActive(cfg.Appearance.Theme)
	a.needSetup = false

	if err := config.SaveTo(a.cfgPath, cfg); err != nil {
		a.closeForm("Could not save config: "+err.Error(), true)
		return
	}
	a.closeForm("Saved to "+a.cfgPath, false)
}

func (a *App) closeForm(status string, isErr bool) {
	a.form = nil
	a.setup = nil
	a.needSetup = false
	a.statusMsg = status
	a.statusErr = isErr
}

func (a App) sizeForm(f *huh.Form) *huh.Form {
	if a.width == 0 {
		return f
	}
	return f.WithWidth(min(a.width-4, maxFormWidth)).WithHeight(max(a.height-4, minContentHeight))
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  fincalc needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	rows := [][2]string{
		{"r p d j", "Switch calculator"},
		{"←/→ tab", "Previous / next calculator"},
		{"e enter", "Edit the inputs of this calculator"},
		{"esc", "Leave the form without recalculating"},
		{"click", "Select a tab"},
		{"?", "Toggle this help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(keyStyle.Render(fmt.Sprintf("%-9s", r[0])))
		b.WriteString(descStyle.Render(r[1]))
		b.WriteString("\n")
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	hints := statusHints
	if a.form != nil {
		hints = formHints
	}
	statusBar := components.RenderStatusBar(w, hints, a.statusMsg, a.statusErr)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	if a.form != nil {
		content = lipgloss.NewStyle().Padding(1, 2).Render(a.form.View())
	} else {
		content = a.tabs[a.activeTab].view(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

// humanize turns a lookup key into a label: "married_joint" -> "Married joint".
func humanize(key string) string {
	s := strings.ReplaceAll(key, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// keyValues renders label/value rows with values right-aligned to width.
func keyValues(rows [][2]string, width int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	lines := make([]string, len(rows))
	for i, r := range rows {
		gap := max(width-lipgloss.Width(r[0])-lipgloss.Width(r[1]), 1)
		lines[i] = labelStyle.Render(r[0]) + labelStyle.Render(strings.Repeat(" ", gap)) + valueStyle.Render(r[1])
	}
	return strings.Join(lines, "\n")
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
