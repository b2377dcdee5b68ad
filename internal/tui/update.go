package tui

import (
	stderrors "errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/crmvibe/crmdash/internal/api"
	"github.com/crmvibe/crmdash/internal/errors"
	"github.com/crmvibe/crmdash/internal/guard"
)

// Update handles messages and drives all navigation through the guard
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.sessionLoaded || m.fetching {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case sessionLoadedMsg:
		m.sessionLoaded = true
		// returnTo carries any navigation attempted while loading.
		return m.navigate(m.returnTo)

	case fetchErrMsg:
		m.fetching = false
		return m.handleError(msg.err)

	case loginDoneMsg:
		m.fetching = false
		m.lastError = ""
		m.notice = "Signed in as " + msg.sess.User.Name
		m.loginForm.Reset()
		return m.navigate(m.returnTo)

	case customersMsg:
		m.fetching = false
		m.customers = msg.customers
		m.cursor = 0
		return m, nil

	case customerMsg:
		m.fetching = false
		m.customer = msg.customer
		return m, nil

	case eventsMsg:
		m.fetching = false
		m.events = msg.events
		m.cursor = 0
		m.expanded = make(map[int]bool)
		return m, nil

	case coursesMsg:
		m.fetching = false
		m.courses = msg.courses
		m.cursor = 0
		m.expanded = make(map[int]bool)
		return m, nil

	case analyticsMsg:
		m.fetching = false
		m.analytics = msg.analytics
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleError maps an error to either a forced login navigation or an
// inline message. A rejected credential is recovered by the redirect, so
// it is shown as a notice rather than an error.
func (m Model) handleError(err error) (tea.Model, tea.Cmd) {
	var unauthorized *api.UnauthorizedError
	if stderrors.As(err, &unauthorized) && unauthorized.Navigate == api.NavigateLogin {
		m.returnTo = m.view
		m.view = ViewLogin
		m.notice = "Session expired, please sign in again"
		m.lastError = ""
		m.loginForm.Focus()
		return m, textinput.Blink
	}

	m.lastError = errorLine(err)
	m.logger.WithError(err).Warn("dashboard operation failed", "view", m.view.String())
	return m, nil
}

// errorLine extracts a single displayable line from an error
func errorLine(err error) string {
	var dashErr *errors.DashError
	if stderrors.As(err, &dashErr) {
		return dashErr.Message
	}
	return err.Error()
}

// navigate runs the guard for the target view and commits its decision
func (m Model) navigate(target ViewType) (tea.Model, tea.Cmd) {
	sess, _ := m.sessions.Current()
	result := guard.Evaluate(m.sessions.State(), sess, m.routeFor(target))

	switch result.Decision {
	case guard.DecisionPending:
		// The one-shot load has not resolved; remember where the user
		// was headed and render nothing.
		m.returnTo = target
		return m, nil

	case guard.DecisionRedirectLogin:
		m.returnTo = target
		m.view = ViewLogin
		m.loginForm.Focus()
		return m, textinput.Blink

	case guard.DecisionRedirectHome:
		m.view = ViewHome
		m.notice = "Not authorized to view " + target.String()
		return m, nil
	}

	m.view = target
	m.cursor = 0
	m.lastError = ""
	m.searching = false
	m.search.Blur()
	m.fetching = false

	if cmd := m.fetchCmd(target, m.detailEmail); cmd != nil {
		m.fetching = true
		return m, tea.Batch(m.spinner.Tick, cmd)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) && !m.searching && m.view != ViewLogin {
		m.quitting = true
		return m, tea.Quit
	}
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.view == ViewLogin {
		return m.handleLoginKey(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Home):
		return m.navigate(ViewHome)
	case key.Matches(msg, m.keys.Customers):
		return m.navigate(ViewCustomers)
	case key.Matches(msg, m.keys.Events):
		return m.navigate(ViewEvents)
	case key.Matches(msg, m.keys.Courses):
		return m.navigate(ViewCourses)
	case key.Matches(msg, m.keys.Analytics):
		return m.navigate(ViewAnalytics)

	case key.Matches(msg, m.keys.Search):
		if m.view == ViewCustomers {
			m.searching = true
			m.search.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.listLen()-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		return m.handleSelect()

	case key.Matches(msg, m.keys.Back):
		if m.view == ViewCustomerDetail {
			return m.navigate(ViewCustomers)
		}
		return m, nil

	case key.Matches(msg, m.keys.Logout):
		if err := m.sessions.Logout(); err != nil {
			return m.handleError(err)
		}
		m.notice = "Signed out"
		return m.navigate(ViewHome)
	}

	return m, nil
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		token := strings.TrimSpace(m.loginForm.Value())
		if token == "" {
			return m, nil
		}
		m.fetching = true
		m.lastError = ""
		return m, tea.Batch(m.spinner.Tick, m.loginCmd(token))
	}

	var cmd tea.Cmd
	m.loginForm, cmd = m.loginForm.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Reset()
		m.search.Blur()
		m.cursor = 0
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.cursor >= m.listLen() {
		m.cursor = 0
	}
	return m, cmd
}

func (m Model) handleSelect() (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewCustomers:
		filtered := m.filteredCustomers()
		if m.cursor < len(filtered) {
			m.detailEmail = filtered[m.cursor].Email
			return m.navigate(ViewCustomerDetail)
		}
	case ViewEvents, ViewCourses:
		if m.cursor < m.listLen() {
			m.expanded[m.cursor] = !m.expanded[m.cursor]
		}
	}
	return m, nil
}

// listLen returns the length of the navigable list in the current view
func (m Model) listLen() int {
	switch m.view {
	case ViewCustomers:
		return len(m.filteredCustomers())
	case ViewEvents:
		return len(m.events)
	case ViewCourses:
		return len(m.courses)
	default:
		return 0
	}
}

// filteredCustomers applies the substring search to the customer list
func (m Model) filteredCustomers() []api.CustomerSummary {
	query := strings.ToLower(strings.TrimSpace(m.search.Value()))
	if query == "" {
		return m.customers
	}

	filtered := make([]api.CustomerSummary, 0, len(m.customers))
	for _, c := range m.customers {
		if strings.Contains(strings.ToLower(c.Name), query) ||
			strings.Contains(strings.ToLower(c.Email), query) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
