package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/mrbl-app/mrbl/cmd/ops/internal/view"
	"github.com/mrbl-app/mrbl/internal/config"
	"github.com/mrbl-app/mrbl/internal/database"
	"github.com/mrbl-app/mrbl/internal/invoice"
	invoiceStore "github.com/mrbl-app/mrbl/internal/invoice/store"
	"github.com/mrbl-app/mrbl/internal/order"
	orderStore "github.com/mrbl-app/mrbl/internal/order/store"
	"github.com/mrbl-app/mrbl/internal/scan"
	scanStore "github.com/mrbl-app/mrbl/internal/scan/store"
	"github.com/mrbl-app/mrbl/internal/split"
	splitStore "github.com/mrbl-app/mrbl/internal/split/store"
)

type model struct {
	orderService   *order.Service
	scanService    *scan.Service
	splitService   *split.Service
	invoiceService *invoice.Service

	currentView View

	ordersView   view.OrdersModel
	custodyView  view.CustodyModel
	policiesView view.PoliciesModel
	invoicesView view.InvoicesModel
}

type View int

const (
	ViewMenu     View = 0
	ViewOrders   View = 1
	ViewCustody  View = 2
	ViewPolicies View = 3
	ViewInvoices View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	orderSvc := order.NewService(orderStore.New(db))
	scanSvc := scan.NewService(scanStore.New(db))
	splitSvc := split.NewService(splitStore.New(db))
	invoiceSvc := invoice.NewService(invoiceStore.New(db))

	return model{
		orderService:   orderSvc,
		scanService:    scanSvc,
		splitService:   splitSvc,
		invoiceService: invoiceSvc,
		currentView:    ViewMenu,
		ordersView:     view.NewOrdersModel(orderSvc),
		custodyView:    view.NewCustodyModel(scanSvc),
		policiesView:   view.NewPoliciesModel(splitSvc),
		invoicesView:   view.NewInvoicesModel(invoiceSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewOrders
				m.ordersView = view.NewOrdersModel(m.orderService)

				return m, m.ordersView.Init()
			case "2":
				m.currentView = ViewCustody
				m.custodyView = view.NewCustodyModel(m.scanService)

				return m, m.custodyView.Init()
			case "3":
				m.currentView = ViewPolicies
				m.policiesView = view.NewPoliciesModel(m.splitService)

				return m, m.policiesView.Init()
			case "4":
				m.currentView = ViewInvoices
				m.invoicesView = view.NewInvoicesModel(m.invoiceService)

				return m, m.invoicesView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewOrders:
		var newModel tea.Model
		newModel, cmd = m.ordersView.Update(msg)
		m.ordersView = newModel.(view.OrdersModel)
	case ViewCustody:
		var newModel tea.Model
		newModel, cmd = m.custodyView.Update(msg)
		m.custodyView = newModel.(view.CustodyModel)
	case ViewPolicies:
		var newModel tea.Model
		newModel, cmd = m.policiesView.Update(msg)
		m.policiesView = newModel.(view.PoliciesModel)
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoicesView.Update(msg)
		m.invoicesView = newModel.(view.InvoicesModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Mrbl Ops\n\n" +
				"1. Orders\n" +
				"2. Custody Trail\n" +
				"3. Split Policies\n" +
				"4. Invoices\n\n" +
				"q. Quit",
		)
	case ViewOrders:
		return m.ordersView.View()
	case ViewCustody:
		return m.custodyView.View()
	case ViewPolicies:
		return m.policiesView.View()
	case ViewInvoices:
		return m.invoicesView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
