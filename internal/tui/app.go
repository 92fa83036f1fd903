// Package tui provides the interactive Bubble Tea dashboard: one tab
// per scenario, each showing the weekly forecast table and a summary of
// runway, burn rate, and risk flags.
package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/copperfin/runway/internal/cli"
	"github.com/copperfin/runway/internal/forecast"
	"github.com/copperfin/runway/internal/model"
)

// LoadFunc computes every scenario's forecast. It runs off the UI
// goroutine so a slow database never blocks rendering.
type LoadFunc func() (map[string]*forecast.Result, error)

// dataLoadedMsg is sent when the forecast computation finishes.
type dataLoadedMsg struct {
	results map[string]*forecast.Result
	elapsed time.Duration
}

type loadErrMsg struct {
	err error
}

// App is the root Bubble Tea model.
type App struct {
	load LoadFunc

	// Data
	scenarioIDs []string
	results     map[string]*forecast.Result
	loaded      bool
	loadErr     error
	elapsed     time.Duration

	// UI state
	width     int
	height    int
	activeTab int
	table     table.Model
	spinner   spinner.Model
}

var (
	surfaceStyle   = lipgloss.NewStyle().Foreground(cli.ColorText)
	labelStyle     = lipgloss.NewStyle().Foreground(cli.ColorTextMuted)
	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(cli.ColorTextMuted)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).
			Foreground(cli.ColorAccent).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(cli.ColorAccent)
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cli.ColorBorder).
			Padding(0, 2)
	goodStyle = lipgloss.NewStyle().Foreground(cli.ColorGreen)
	badStyle  = lipgloss.NewStyle().Foreground(cli.ColorRed)
	warnStyle = lipgloss.NewStyle().Foreground(cli.ColorOrange)
)

// NewApp creates the dashboard model.
func NewApp(load LoadFunc) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(cli.ColorAccent)

	return App{
		load:    load,
		spinner: sp,
		table:   newForecastTable(),
	}
}

func newForecastTable() table.Model {
	columns := []table.Column{
		{Title: "Wk", Width: 3},
		{Title: "Dates", Width: 16},
		{Title: "Revenue", Width: 11},
		{Title: "Expenses", Width: 11},
		{Title: "Recurring", Width: 11},
		{Title: "Debt", Width: 11},
		{Title: "Net", Width: 12},
		{Title: "Ending", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(13),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		Foreground(cli.ColorAccent).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(cli.ColorBorder).
		BorderBottom(true)
	styles.Selected = styles.Selected.
		Foreground(cli.ColorText).
		Background(cli.ColorSurface).
		Bold(false)
	t.SetStyles(styles)
	return t
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, loadCmd(a.load))
}

func loadCmd(load LoadFunc) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		results, err := load()
		if err != nil {
			return loadErrMsg{err: err}
		}
		return dataLoadedMsg{results: results, elapsed: time.Since(start)}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if h := msg.Height - 14; h >= 5 && h < 16 {
			a.table.SetHeight(h)
		}
		return a, nil

	case dataLoadedMsg:
		a.results = msg.results
		a.elapsed = msg.elapsed
		a.loaded = true
		a.scenarioIDs = a.scenarioIDs[:0]
		for id := range msg.results {
			a.scenarioIDs = append(a.scenarioIDs, id)
		}
		sort.Strings(a.scenarioIDs)
		a.refreshTable()
		return a, nil

	case loadErrMsg:
		a.loadErr = msg.err
		a.loaded = true
		return a, nil

	case spinner.TickMsg:
		if a.loaded {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return a, tea.Quit
		case "left", "h":
			if a.activeTab > 0 {
				a.activeTab--
				a.refreshTable()
			}
			return a, nil
		case "right", "l", "tab":
			if a.activeTab < len(a.scenarioIDs)-1 {
				a.activeTab++
				a.refreshTable()
			}
			return a, nil
		case "r":
			a.loaded = false
			a.loadErr = nil
			return a, tea.Batch(a.spinner.Tick, loadCmd(a.load))
		}
	}

	var cmd tea.Cmd
	a.table, cmd = a.table.Update(msg)
	return a, cmd
}

func (a *App) current() *forecast.Result {
	if len(a.scenarioIDs) == 0 {
		return nil
	}
	return a.results[a.scenarioIDs[a.activeTab]]
}

func (a *App) refreshTable() {
	result := a.current()
	if result == nil {
		a.table.SetRows(nil)
		return
	}

	rows := make([]table.Row, 0, len(result.Rows))
	for _, week := range result.Rows {
		rows = append(rows, table.Row{
			strconv.Itoa(week.WeekNumber),
			cli.FormatWeekRange(week.WeekStart, week.WeekEnd),
			cli.FormatMoney(week.Revenue),
			cli.FormatMoney(-week.Expenses),
			cli.FormatMoney(week.RecurringTotal),
			cli.FormatMoney(week.DebtTotal),
			cli.FormatMoney(week.NetCashFlow),
			cli.FormatMoney(week.EndingBalance),
		})
	}
	a.table.SetRows(rows)
	a.table.SetCursor(0)
}

// View implements tea.Model.
func (a App) View() string {
	if !a.loaded {
		return fmt.Sprintf("\n  %s building forecast...\n", a.spinner.View())
	}
	if a.loadErr != nil {
		return badStyle.Render(fmt.Sprintf("\n  forecast failed: %v\n\n  press q to quit, r to retry\n", a.loadErr))
	}
	result := a.current()
	if result == nil {
		return labelStyle.Render("\n  no scenarios loaded. press q to quit.\n")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(a.renderSummary(result))
	b.WriteString("\n")
	b.WriteString(a.table.View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("  ←/→ scenario · ↑/↓ weeks · r reload · q quit   (computed in %dms)", a.elapsed.Milliseconds())))
	b.WriteString("\n")
	return b.String()
}

func (a App) renderTabs() string {
	tabs := make([]string, 0, len(a.scenarioIDs))
	for i, id := range a.scenarioIDs {
		if i == a.activeTab {
			tabs = append(tabs, activeTabStyle.Render(id))
		} else {
			tabs = append(tabs, tabStyle.Render(id))
		}
	}
	return "  " + lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (a App) renderSummary(result *forecast.Result) string {
	runway := "beyond horizon"
	runwayStyle := goodStyle
	if result.RunwayWeek != nil {
		runway = fmt.Sprintf("week %d", *result.RunwayWeek)
		runwayStyle = badStyle
	}

	burn := "cash positive"
	if result.BurnRate > 0 {
		burn = cli.FormatMoney(result.BurnRate) + "/wk"
	}

	final := 0.0
	balances := make([]float64, 0, len(result.Rows))
	for _, w := range result.Rows {
		balances = append(balances, w.EndingBalance)
	}
	if len(result.Rows) > 0 {
		final = result.Rows[len(result.Rows)-1].EndingBalance
	}

	cards := []string{
		cardStyle.Render(labelStyle.Render("runway  ") + runwayStyle.Render(runway)),
		cardStyle.Render(labelStyle.Render("burn  ") + surfaceStyle.Render(burn)),
		cardStyle.Render(labelStyle.Render("final  ") + cli.Money(final)),
		cardStyle.Render(labelStyle.Render("trend  ") + surfaceStyle.Render(cli.RenderSparkline(balances))),
	}

	out := "  " + lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	if flags := a.renderFlags(result); flags != "" {
		out += "\n  " + flags
	}
	if len(result.Warnings) > 0 {
		out += "\n  " + warnStyle.Render(fmt.Sprintf("⚠ %d configuration warning(s) — run `runway forecast` for details", len(result.Warnings)))
	}
	return out
}

func (a App) renderFlags(result *forecast.Result) string {
	parts := make([]string, 0, len(result.Flags))
	for _, f := range result.Flags {
		switch f {
		case model.RiskHealthy:
			parts = append(parts, goodStyle.Render("● healthy"))
		case model.RiskShortRunway:
			parts = append(parts, badStyle.Render("● short runway"))
		case model.RiskNegativeFinal:
			parts = append(parts, badStyle.Render("● ends negative"))
		case model.RiskNegativeDip:
			parts = append(parts, warnStyle.Render("● dips negative"))
		default:
			parts = append(parts, warnStyle.Render("● "+string(f)))
		}
	}
	return strings.Join(parts, "  ")
}
