package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mrbl-app/mrbl/internal/order"
)

type ordersState int

const (
	ordersStateBrowse ordersState = iota
	ordersStateClaim
)

// stateFilters are the states an operator most often triages, cycled with
// the s key. Index 0 means no filter.
var stateFilters = []*order.State{
	nil,
	new(order.StateCreated),
	new(order.StateConfirmed),
	new(order.StatePickedUp),
	new(order.StateAtProcessingShop),
	new(order.StateOutForDelivery),
}

var stateFilterLabels = []string{
	"All", "Created", "Confirmed", "Picked Up", "Processing", "Out For Delivery",
}

type OrdersModel struct {
	CommonModel
	orderService *order.Service

	state  ordersState
	table  table.Model
	orders []*order.Order
	form   *huh.Form

	stateFilterIdx int
	filter         order.ListFilter

	loading bool
	err     error
	status  string

	// Form bindings
	formDriverID string
}

func NewOrdersModel(orderSvc *order.Service) OrdersModel {
	columns := []table.Column{
		{Title: "Created", Width: 12},
		{Title: "State", Width: 20},
		{Title: "Total", Width: 12},
		{Title: "Pickup", Width: 30},
		{Title: "Delivery", Width: 30},
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

	return OrdersModel{
		orderService: orderSvc,
		table:        t,
		filter:       order.ListFilter{},
	}
}

func (m OrdersModel) Title() string { return "Orders" }
func (m OrdersModel) ShortHelp() string {
	if m.state == ordersStateClaim {
		return "Enter driver id | Esc: cancel"
	}
	return "Esc: back | a: advance | c: claim | s: state filter | u: unassigned | r: refresh"
}

func (m OrdersModel) Init() tea.Cmd {
	return m.loadOrdersCmd()
}

func (m OrdersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadOrdersMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.orders = msg.orders
		m.err = nil
		m.refreshTable()
		return m, nil

	case advanceOrderMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error advancing: %v", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("Order now %s", msg.newState)
		return m, m.loadOrdersCmd()

	case claimOrderMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error claiming: %v", msg.err)
		} else {
			m.status = "Driver assigned"
		}
		m.state = ordersStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadOrdersCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case ordersStateBrowse:
		return m.updateBrowse(msg)
	case ordersStateClaim:
		return m.updateClaim(msg)
	}

	return m, nil
}

func (m OrdersModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadOrdersCmd()
		case "a":
			return m, m.advanceCmd()
		case "c":
			return m.enterClaimMode()
		case "s":
			m.stateFilterIdx = (m.stateFilterIdx + 1) % len(stateFilters)
			m.filter.State = stateFilters[m.stateFilterIdx]
			return m, m.loadOrdersCmd()
		case "u":
			m.filter.Unassigned = !m.filter.Unassigned
			return m, m.loadOrdersCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m OrdersModel) enterClaimMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.orders) {
		return m, nil
	}

	m.formDriverID = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("driver_id").
				Title("Driver ID").
				Value(&m.formDriverID).
				Validate(func(s string) error {
					if _, err := uuid.Parse(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("not a valid driver id")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = ordersStateClaim
	m.table.Blur()
	return m, m.form.Init()
}

func (m OrdersModel) updateClaim(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = ordersStateBrowse
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

	return m, m.claimCmd()
}

func (m OrdersModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading orders...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	unassigned := "off"
	if m.filter.Unassigned {
		unassigned = "on"
	}

	header := fmt.Sprintf(
		"Filter: [s] State: %s | [u] Unassigned: %s",
		activeStyle(stateFilterLabels[m.stateFilterIdx]),
		activeStyle(unassigned),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == ordersStateClaim && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Claim Order\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *OrdersModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.orders))
	for _, o := range m.orders {
		rows = append(rows, table.Row{
			FormatDate(o.CreatedAt),
			string(o.State),
			FormatAmount(o.TotalCents),
			o.PickupAddress,
			o.DeliveryAddress,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadOrdersMsg struct {
	orders []*order.Order
	err    error
}

func (m OrdersModel) loadOrdersCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		orders, err := m.orderService.List(ctx, m.filter)
		return loadOrdersMsg{orders: orders, err: err}
	}
}

type advanceOrderMsg struct {
	newState order.State
	err      error
}

// advanceCmd moves the selected order to its next lifecycle state.
func (m OrdersModel) advanceCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.orders) {
		return nil
	}

	o := m.orders[idx]

	next, ok := order.Next(o.State)
	if !ok {
		return func() tea.Msg {
			return advanceOrderMsg{err: fmt.Errorf("order is %s, nothing to advance to", o.State)}
		}
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.orderService.Transition(ctx, o.ID, next)
		if err != nil {
			return advanceOrderMsg{err: err}
		}

		return advanceOrderMsg{newState: updated.State}
	}
}

type claimOrderMsg struct {
	err error
}

func (m OrdersModel) claimCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.orders) {
		return nil
	}

	orderID := m.orders[idx].ID

	driverID, err := uuid.Parse(strings.TrimSpace(m.formDriverID))
	if err != nil {
		return func() tea.Msg { return claimOrderMsg{err: err} }
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.orderService.ClaimDriver(ctx, orderID, driverID)
		return claimOrderMsg{err: err}
	}
}
