package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mrbl-app/mrbl/internal/scan"
)

type custodyState int

const (
	custodyStateInput custodyState = iota
	custodyStateTrail
)

// CustodyModel shows the append-only scan trail for one order, newest
// first.
type CustodyModel struct {
	CommonModel
	scanService *scan.Service

	state custodyState
	form  *huh.Form
	table table.Model
	scans []*scan.Scan

	orderID   uuid.UUID
	formInput string

	loading bool
	err     error
}

func NewCustodyModel(scanSvc *scan.Service) CustodyModel {
	columns := []table.Column{
		{Title: "Time", Width: 20},
		{Title: "Type", Width: 22},
		{Title: "Geo", Width: 22},
		{Title: "Notes", Width: 40},
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

	m := CustodyModel{
		scanService: scanSvc,
		table:       t,
	}
	m.form = m.newOrderForm()

	return m
}

func (m CustodyModel) Title() string { return "Custody Trail" }
func (m CustodyModel) ShortHelp() string {
	if m.state == custodyStateInput {
		return "Enter order id | Esc: back"
	}
	return "Esc: back | o: other order | r: refresh"
}

func (m CustodyModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *CustodyModel) newOrderForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("order_id").
				Title("Order ID").
				Value(&m.formInput).
				Validate(func(s string) error {
					if _, err := uuid.Parse(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("not a valid order id")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m CustodyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadScansMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.scans = msg.scans
		m.err = nil
		m.refreshTable()
		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case custodyStateInput:
		return m.updateInput(msg)
	case custodyStateTrail:
		return m.updateTrail(msg)
	}

	return m, nil
}

func (m CustodyModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	id, err := uuid.Parse(strings.TrimSpace(m.formInput))
	if err != nil {
		return m, cmd
	}

	m.orderID = id
	m.state = custodyStateTrail
	m.loading = true

	return m, m.loadScansCmd()
}

func (m CustodyModel) updateTrail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadScansCmd()
		case "o":
			m.state = custodyStateInput
			m.formInput = ""
			m.form = m.newOrderForm()
			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m CustodyModel) View() string {
	if m.state == custodyStateInput {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Custody Trail\n\n" + m.form.View())

		return lipgloss.NewStyle().Padding(1).Render(panel)
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading scans...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf("Order %s — %d scans", m.orderID, len(m.scans))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *CustodyModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.scans))
	for _, sc := range m.scans {
		geo := ""
		if sc.Geo != nil {
			geo = fmt.Sprintf("%.5f, %.5f", sc.Geo.Lat, sc.Geo.Lng)
		}
		rows = append(rows, table.Row{
			sc.CreatedAt.Format("2006-01-02 15:04:05"),
			string(sc.Type),
			geo,
			sc.Notes,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadScansMsg struct {
	scans []*scan.Scan
	err   error
}

func (m CustodyModel) loadScansCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		scans, err := m.scanService.ListByOrder(ctx, m.orderID)
		return loadScansMsg{scans: scans, err: err}
	}
}
