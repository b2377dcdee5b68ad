// Package tui implements the interactive dashboard: a single bubbletea
// program hosting the login, list, and analytics views. Every view
// switch goes through the route guard, and the one-shot session load
// resolves before any redirect is committed.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/crmvibe/crmdash/internal/api"
	"github.com/crmvibe/crmdash/internal/guard"
	"github.com/crmvibe/crmdash/internal/log"
	"github.com/crmvibe/crmdash/internal/session"
)

// ViewType represents the current view being displayed
type ViewType int

// View type constants
const (
	// ViewLogin is the sign-in view; it is exempt from guarding
	ViewLogin ViewType = iota
	// ViewHome is the landing view after login
	ViewHome
	// ViewCustomers is the customer list with substring search
	ViewCustomers
	// ViewCustomerDetail shows one customer's events and courses
	ViewCustomerDetail
	// ViewEvents is the event list with expandable attendee lists
	ViewEvents
	// ViewCourses is the course list with expandable buyer lists
	ViewCourses
	// ViewAnalytics is the conversion analytics view
	ViewAnalytics
)

// String returns the route name for the view
func (v ViewType) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewHome:
		return "home"
	case ViewCustomers:
		return "customers"
	case ViewCustomerDetail:
		return "customer-detail"
	case ViewEvents:
		return "events"
	case ViewCourses:
		return "courses"
	case ViewAnalytics:
		return "analytics"
	default:
		return "unknown"
	}
}

// Model represents the dashboard state
type Model struct {
	// Collaborators
	sessions *session.Manager
	client   *api.Client
	logger   *log.Logger

	// Routing state
	view ViewType
	// returnTo is the view the user was headed to when they were
	// redirected to login; best-effort, home when unset.
	returnTo       ViewType
	customersEmail string
	sessionLoaded  bool

	// Fetched data
	customers   []api.CustomerSummary
	customer    *api.Customer
	detailEmail string
	events      []api.Event
	courses     []api.Course
	analytics   *api.Analytics

	// View state
	cursor    int
	expanded  map[int]bool
	searching bool
	search    textinput.Model
	loginForm textinput.Model
	fetching  bool
	spinner   spinner.Model
	lastError string
	notice    string

	// UI state
	width    int
	height   int
	quitting bool

	keys   keyMap
	styles Styles
}

// Styles contains lipgloss styles for the dashboard
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Tab      lipgloss.Style
	TabOn    lipgloss.Style
	Header   lipgloss.Style
	Row      lipgloss.Style
	RowOn    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Muted    lipgloss.Style
	Border   lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1),
		TabOn: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")),
		Row: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")),
		RowOn: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
	}
}

// Options configures the dashboard model
type Options struct {
	Sessions *session.Manager
	Client   *api.Client
	Logger   *log.Logger

	// CustomersEmail is the authorization predicate for the customer
	// views; empty means any authenticated session.
	CustomersEmail string
}

// NewModel creates a new dashboard model
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.DefaultLogger()
	}

	search := textinput.New()
	search.Placeholder = "search customers"
	search.CharLimit = 120

	loginForm := textinput.New()
	loginForm.Placeholder = "paste Google ID token"
	loginForm.EchoMode = textinput.EchoPassword
	loginForm.CharLimit = 4096

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		sessions:       opts.Sessions,
		client:         opts.Client,
		logger:         logger,
		view:           ViewHome,
		returnTo:       ViewHome,
		customersEmail: opts.CustomersEmail,
		expanded:       make(map[int]bool),
		search:         search,
		loginForm:      loginForm,
		spinner:        sp,
		keys:           defaultKeyMap(),
		styles:         DefaultStyles(),
	}
}

// routeFor maps a view to its guarded route declaration
func (m Model) routeFor(view ViewType) guard.Route {
	route := guard.Route{Name: view.String()}
	switch view {
	case ViewLogin:
		route.Login = true
	case ViewCustomers, ViewCustomerDetail:
		route.AllowEmail = m.customersEmail
	}
	return route
}

// Init starts the one-shot session load and the spinner
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadSessionCmd())
}

// loadSessionCmd resolves the durable storage read off the update loop.
// Until sessionLoadedMsg arrives the guard reports pending and the
// dashboard renders nothing but the spinner.
func (m Model) loadSessionCmd() tea.Cmd {
	sessions := m.sessions
	return func() tea.Msg {
		sessions.Start()
		return sessionLoadedMsg{}
	}
}

type sessionLoadedMsg struct{}

type fetchErrMsg struct{ err error }

type loginDoneMsg struct{ sess session.Session }

type customersMsg struct{ customers []api.CustomerSummary }

type customerMsg struct{ customer *api.Customer }

type eventsMsg struct{ events []api.Event }

type coursesMsg struct{ courses []api.Course }

type analyticsMsg struct{ analytics *api.Analytics }

// fetchCmd returns the data-loading command for a view, or nil for views
// that need no fetch.
func (m Model) fetchCmd(view ViewType, arg string) tea.Cmd {
	client := m.client
	switch view {
	case ViewCustomers:
		return func() tea.Msg {
			customers, err := client.Customers(context.Background())
			if err != nil {
				return fetchErrMsg{err}
			}
			return customersMsg{customers}
		}
	case ViewCustomerDetail:
		return func() tea.Msg {
			customer, err := client.Customer(context.Background(), arg)
			if err != nil {
				return fetchErrMsg{err}
			}
			return customerMsg{customer}
		}
	case ViewEvents:
		return func() tea.Msg {
			events, err := client.Events(context.Background())
			if err != nil {
				return fetchErrMsg{err}
			}
			return eventsMsg{events}
		}
	case ViewCourses:
		return func() tea.Msg {
			courses, err := client.Courses(context.Background())
			if err != nil {
				return fetchErrMsg{err}
			}
			return coursesMsg{courses}
		}
	case ViewAnalytics:
		return func() tea.Msg {
			analytics, err := client.Analytics(context.Background())
			if err != nil {
				return fetchErrMsg{err}
			}
			return analyticsMsg{analytics}
		}
	default:
		return nil
	}
}

// loginCmd exchanges the pasted external credential for a session
func (m Model) loginCmd(externalToken string) tea.Cmd {
	sessions := m.sessions
	return func() tea.Msg {
		sess, err := sessions.Login(context.Background(), externalToken)
		if err != nil {
			return fetchErrMsg{err}
		}
		return loginDoneMsg{sess}
	}
}
