package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mrbl-app/mrbl/internal/invoice"
)

type invoicesState int

const (
	invoicesStateInput invoicesState = iota
	invoicesStateDetail
)

// InvoicesModel looks up or issues the invoice for an order and lets the
// operator settle it.
type InvoicesModel struct {
	CommonModel
	invoiceService *invoice.Service

	state invoicesState
	form  *huh.Form
	inv   *invoice.Invoice

	orderID   uuid.UUID
	formInput string

	loading bool
	err     error
	status  string
}

func NewInvoicesModel(invoiceSvc *invoice.Service) InvoicesModel {
	m := InvoicesModel{invoiceService: invoiceSvc}
	m.form = m.newOrderForm()

	return m
}

func (m InvoicesModel) Title() string { return "Invoices" }
func (m InvoicesModel) ShortHelp() string {
	if m.state == invoicesStateInput {
		return "Enter order id | Esc: back"
	}
	return "Esc: back | i: issue | p: mark paid | x: cancel | o: other order"
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *InvoicesModel) newOrderForm() *huh.Form {
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

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case invoiceLoadedMsg:
		m.loading = false
		m.inv = msg.inv
		m.err = msg.err
		return m, nil

	case invoiceChangedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.status = msg.status
		return m, m.loadCmd()
	}

	switch m.state {
	case invoicesStateInput:
		return m.updateInput(msg)
	case invoicesStateDetail:
		return m.updateDetail(msg)
	}

	return m, nil
}

func (m InvoicesModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
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
	m.state = invoicesStateDetail
	m.loading = true
	m.status = ""

	return m, m.loadCmd()
}

func (m InvoicesModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "o":
		m.state = invoicesStateInput
		m.formInput = ""
		m.inv = nil
		m.err = nil
		m.status = ""
		m.form = m.newOrderForm()
		return m, m.form.Init()
	case "i":
		return m, m.issueCmd()
	case "p":
		return m, m.payCmd()
	case "x":
		return m, m.cancelCmd()
	}

	return m, nil
}

func (m InvoicesModel) View() string {
	if m.state == invoicesStateInput {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Invoices\n\n" + m.form.View())

		return lipgloss.NewStyle().Padding(1).Render(panel)
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoice...")
	}

	var body string

	switch {
	case m.err != nil:
		body = fmt.Sprintf("No invoice for order %s.\n\nPress i to issue one.", m.orderID)
	case m.inv != nil:
		paidAt := "-"
		if m.inv.PaidAt != nil {
			paidAt = FormatDate(*m.inv.PaidAt)
		}

		body = fmt.Sprintf(
			"%s\n\nOrder:    %s\nSubtotal: %s\nVAT:      %s\nTotal:    %s\nStatus:   %s\nPaid at:  %s",
			m.inv.Number,
			m.inv.OrderID,
			FormatAmount(m.inv.SubtotalCents),
			FormatAmount(m.inv.VATCents),
			FormatAmount(m.inv.TotalCents),
			m.inv.Status,
			paidAt,
		)
	}

	panel := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(60).
		Render(body)

	if m.status != "" {
		panel = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + panel
	}

	return lipgloss.NewStyle().Padding(1).Render(panel)
}

// Messages

type invoiceLoadedMsg struct {
	inv *invoice.Invoice
	err error
}

func (m InvoicesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		inv, err := m.invoiceService.GetByOrder(ctx, m.orderID)
		return invoiceLoadedMsg{inv: inv, err: err}
	}
}

type invoiceChangedMsg struct {
	status string
	err    error
}

func (m InvoicesModel) issueCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		inv, err := m.invoiceService.CreateForOrder(ctx, m.orderID)
		if err != nil {
			return invoiceChangedMsg{err: err}
		}

		return invoiceChangedMsg{status: "Issued " + inv.Number}
	}
}

func (m InvoicesModel) payCmd() tea.Cmd {
	if m.inv == nil {
		return nil
	}

	id := m.inv.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.invoiceService.MarkPaid(ctx, id); err != nil {
			return invoiceChangedMsg{err: err}
		}

		return invoiceChangedMsg{status: "Marked paid"}
	}
}

func (m InvoicesModel) cancelCmd() tea.Cmd {
	if m.inv == nil {
		return nil
	}

	id := m.inv.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.invoiceService.Cancel(ctx, id); err != nil {
			return invoiceChangedMsg{err: err}
		}

		return invoiceChangedMsg{status: "Cancelled"}
	}
}
