package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrbl-app/mrbl/internal/split"
)

type policiesState int

const (
	policiesStateBrowse policiesState = iota
	policiesStateCreate
)

type PoliciesModel struct {
	CommonModel
	splitService *split.Service

	state    policiesState
	table    table.Model
	policies []*split.Policy
	form     *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formName     string
	formOrigin   string
	formProc     string
	formDriver   string
	formPlatform string
	formMin      string
	formRebal    bool
}

func NewPoliciesModel(splitSvc *split.Service) PoliciesModel {
	columns := []table.Column{
		{Title: "Name", Width: 20},
		{Title: "Ver", Width: 4},
		{Title: "Origin", Width: 8},
		{Title: "Proc", Width: 8},
		{Title: "Driver", Width: 8},
		{Title: "Platform", Width: 8},
		{Title: "Min Fee", Width: 10},
		{Title: "Active", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return PoliciesModel{
		splitService: splitSvc,
		table:        t,
	}
}

func (m PoliciesModel) Title() string { return "Split Policies" }
func (m PoliciesModel) ShortHelp() string {
	if m.state == policiesStateCreate {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | c: create | a: activate | r: refresh"
}

func (m PoliciesModel) Init() tea.Cmd {
	return m.loadPoliciesCmd()
}

func (m PoliciesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPoliciesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.policies = msg.policies
		m.err = nil
		m.refreshTable()
		return m, nil

	case policySavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = "Saved"
		}
		m.state = policiesStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadPoliciesCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case policiesStateBrowse:
		return m.updateBrowse(msg)
	case policiesStateCreate:
		return m.updateCreate(msg)
	}

	return m, nil
}

func (m PoliciesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadPoliciesCmd()
		case "c":
			return m.enterCreateMode()
		case "a":
			return m, m.activateCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func validPct(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if v < 0 || v > 1 {
		return fmt.Errorf("must be between 0 and 1")
	}
	return nil
}

func (m PoliciesModel) enterCreateMode() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formOrigin = "0.20"
	m.formProc = "0.55"
	m.formDriver = "0.10"
	m.formPlatform = "0.15"
	m.formMin = "0"
	m.formRebal = false

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("origin_pct").
				Title("Origin Shop %").
				Value(&m.formOrigin).
				Validate(validPct),

			huh.NewInput().
				Key("processing_pct").
				Title("Processing Shop %").
				Value(&m.formProc).
				Validate(validPct),

			huh.NewInput().
				Key("driver_pct").
				Title("Driver %").
				Value(&m.formDriver).
				Validate(validPct),

			huh.NewInput().
				Key("platform_pct").
				Title("Platform %").
				Value(&m.formPlatform).
				Validate(validPct),

			huh.NewInput().
				Key("min_cents").
				Title("Platform Min (cents)").
				Value(&m.formMin),

			huh.NewConfirm().
				Key("rebalance").
				Title("Rebalance floor raise?").
				Value(&m.formRebal),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = policiesStateCreate
	m.table.Blur()
	return m, m.form.Init()
}

func (m PoliciesModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = policiesStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.createCmd()
}

func (m PoliciesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading policies...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state == policiesStateCreate && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("New Policy\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *PoliciesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.policies))
	for _, p := range m.policies {
		active := ""
		if p.Active {
			active = "yes"
		}
		rows = append(rows, table.Row{
			p.Name,
			strconv.Itoa(p.Version),
			fmt.Sprintf("%.0f%%", p.OriginShopPct*100),
			fmt.Sprintf("%.0f%%", p.ProcessingShopPct*100),
			fmt.Sprintf("%.0f%%", p.DriverPct*100),
			fmt.Sprintf("%.0f%%", p.PlatformPct*100),
			FormatAmount(p.PlatformMinCents),
			active,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadPoliciesMsg struct {
	policies []*split.Policy
	err      error
}

func (m PoliciesModel) loadPoliciesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		policies, err := m.splitService.ListPolicies(ctx)
		return loadPoliciesMsg{policies: policies, err: err}
	}
}

type policySavedMsg struct {
	err error
}

func (m PoliciesModel) createCmd() tea.Cmd {
	origin, _ := strconv.ParseFloat(strings.TrimSpace(m.formOrigin), 64)
	proc, _ := strconv.ParseFloat(strings.TrimSpace(m.formProc), 64)
	driver, _ := strconv.ParseFloat(strings.TrimSpace(m.formDriver), 64)
	platform, _ := strconv.ParseFloat(strings.TrimSpace(m.formPlatform), 64)
	minCents, _ := strconv.ParseInt(strings.TrimSpace(m.formMin), 10, 64)

	params := split.PolicyParams{
		Name:              strings.TrimSpace(m.formName),
		OriginShopPct:     origin,
		ProcessingShopPct: proc,
		DriverPct:         driver,
		PlatformPct:       platform,
		PlatformMinCents:  minCents,
		FloorRebalance:    m.formRebal,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.splitService.CreatePolicy(ctx, params)
		return policySavedMsg{err: err}
	}
}

func (m PoliciesModel) activateCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.policies) {
		return nil
	}

	id := m.policies[idx].ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return policySavedMsg{err: m.splitService.Activate(ctx, id)}
	}
}
