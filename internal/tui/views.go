package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current view
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// The loading gate: nothing renders, and no redirect is committed,
	// until the one-shot session load resolves.
	if !m.sessionLoaded {
		return m.spinner.View() + " loading session…\n"
	}

	if m.view == ViewLogin {
		return m.renderLogin()
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(m.styles.Success.Render(m.notice))
		b.WriteString("\n\n")
	}
	if m.lastError != "" {
		b.WriteString(m.styles.Error.Render("✗ " + m.lastError))
		b.WriteString("\n\n")
	}

	if m.fetching {
		b.WriteString(m.spinner.View() + " loading…\n")
		b.WriteString(m.renderHelpLine())
		return b.String()
	}

	switch m.view {
	case ViewHome:
		b.WriteString(m.renderHome())
	case ViewCustomers:
		b.WriteString(m.renderCustomers())
	case ViewCustomerDetail:
		b.WriteString(m.renderCustomerDetail())
	case ViewEvents:
		b.WriteString(m.renderEvents())
	case ViewCourses:
		b.WriteString(m.renderCourses())
	case ViewAnalytics:
		b.WriteString(m.renderAnalytics())
	}

	b.WriteString(m.renderHelpLine())
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := []struct {
		view  ViewType
		label string
	}{
		{ViewHome, "1 Home"},
		{ViewCustomers, "2 Customers"},
		{ViewEvents, "3 Events"},
		{ViewCourses, "4 Courses"},
		{ViewAnalytics, "5 Analytics"},
	}

	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		style := m.styles.Tab
		if tab.view == m.view || (m.view == ViewCustomerDetail && tab.view == ViewCustomers) {
			style = m.styles.TabOn
		}
		parts = append(parts, style.Render(tab.label))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderLogin() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("CRM Dashboard"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("Sign in with your Google account token"))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(m.styles.Muted.Render(m.notice))
		b.WriteString("\n\n")
	}
	if m.lastError != "" {
		b.WriteString(m.styles.Error.Render("✗ " + m.lastError))
		b.WriteString("\n\n")
	}

	if m.fetching {
		b.WriteString(m.spinner.View() + " signing in…\n")
	} else {
		b.WriteString(m.loginForm.View())
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render("enter submit • ctrl+c quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderHome() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("CRM Dashboard"))
	b.WriteString("\n")

	if sess, ok := m.sessions.Current(); ok {
		b.WriteString(m.styles.Subtitle.Render("Signed in as " + sess.User.Name + " <" + sess.User.Email + ">"))
		b.WriteString("\n\n")
	}

	b.WriteString("Pick a view: customers, events, courses, or analytics.\n")
	return b.String()
}

func (m Model) renderCustomers() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Customers"))
	b.WriteString("\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	filtered := m.filteredCustomers()
	if len(filtered) == 0 {
		b.WriteString(m.styles.Muted.Render("no customers"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.styles.Header.Render(fmt.Sprintf("%-32s %-28s %7s %8s", "Name", "Email", "Events", "Courses")))
	b.WriteString("\n")

	for i, c := range filtered {
		style := m.styles.Row
		prefix := "  "
		if i == m.cursor {
			style = m.styles.RowOn
			prefix = "> "
		}
		line := fmt.Sprintf("%s%-30s %-28s %7d %8d", prefix, truncate(c.Name, 30), truncate(c.Email, 28), c.EventCount, c.CourseCount)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderCustomerDetail() string {
	var b strings.Builder

	if m.customer == nil {
		b.WriteString(m.styles.Muted.Render("no customer selected"))
		b.WriteString("\n")
		return b.String()
	}

	c := m.customer
	b.WriteString(m.styles.Title.Render(c.Name))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render(c.Email))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Header.Render(fmt.Sprintf("Events attended (%d)", c.EventCount)))
	b.WriteString("\n")
	if len(c.Events) == 0 {
		b.WriteString(m.styles.Muted.Render("  none"))
		b.WriteString("\n")
	}
	for _, e := range c.Events {
		b.WriteString(fmt.Sprintf("  • %s (%s)\n", e.EventName, e.Date))
	}
	b.WriteString("\n")

	b.WriteString(m.styles.Header.Render(fmt.Sprintf("Courses purchased (%d)", c.CourseCount)))
	b.WriteString("\n")
	if len(c.Courses) == 0 {
		b.WriteString(m.styles.Muted.Render("  none"))
		b.WriteString("\n")
	}
	for _, course := range c.Courses {
		b.WriteString(fmt.Sprintf("  • %s (%s)\n", course.CourseName, course.Date))
	}

	return b.String()
}

func (m Model) renderEvents() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Events"))
	b.WriteString("\n")

	if len(m.events) == 0 {
		b.WriteString(m.styles.Muted.Render("no events"))
		b.WriteString("\n")
		return b.String()
	}

	for i, e := range m.events {
		style := m.styles.Row
		prefix := "  "
		if i == m.cursor {
			style = m.styles.RowOn
			prefix = "> "
		}

		marker := "+"
		if m.expanded[i] {
			marker = "-"
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s %s (%d attendees)", prefix, marker, e.EventName, e.AttendeeCount)))
		b.WriteString("\n")

		if m.expanded[i] {
			for _, a := range e.Attendees {
				b.WriteString(m.styles.Muted.Render(fmt.Sprintf("      %s <%s> %s", a.Name, a.Email, a.Date)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func (m Model) renderCourses() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Courses"))
	b.WriteString("\n")

	if len(m.courses) == 0 {
		b.WriteString(m.styles.Muted.Render("no courses"))
		b.WriteString("\n")
		return b.String()
	}

	for i, c := range m.courses {
		style := m.styles.Row
		prefix := "  "
		if i == m.cursor {
			style = m.styles.RowOn
			prefix = "> "
		}

		marker := "+"
		if m.expanded[i] {
			marker = "-"
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s %s (%d buyers)", prefix, marker, c.CourseName, c.BuyerCount)))
		b.WriteString("\n")

		if m.expanded[i] {
			for _, buyer := range c.Buyers {
				b.WriteString(m.styles.Muted.Render(fmt.Sprintf("      %s <%s> %s", buyer.Name, buyer.Email, buyer.Date)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func (m Model) renderAnalytics() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Analytics"))
	b.WriteString("\n")

	if m.analytics == nil {
		b.WriteString(m.styles.Muted.Render("no analytics data"))
		b.WriteString("\n")
		return b.String()
	}

	a := m.analytics
	totals := fmt.Sprintf("Customers: %d   Events: %d   Courses: %d",
		a.TotalCustomers, a.TotalEvents, a.TotalCourses)
	b.WriteString(m.styles.Border.Render(totals))
	b.WriteString("\n\n")

	cs := a.ConversionStats
	b.WriteString(m.styles.Header.Render("Conversion"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Event attendees:     %d\n", cs.TotalEventAttendees))
	b.WriteString(fmt.Sprintf("  Course buyers:       %d\n", cs.TotalCourseBuyers))
	b.WriteString(fmt.Sprintf("  Converted customers: %d\n", cs.ConvertedCustomers))
	// Rates arrive as percentages, already rounded by the backend.
	b.WriteString(fmt.Sprintf("  Conversion rate:     %.2f%%\n", cs.ConversionRate))
	b.WriteString("\n")

	b.WriteString(m.styles.Header.Render("Event → course correlations"))
	b.WriteString("\n")
	for _, corr := range a.EventCorrelations {
		b.WriteString(fmt.Sprintf("  %s: %d/%d converted (%.2f%%)\n",
			corr.EventName, corr.ConvertedToCourse, corr.EventAttendees, corr.ConversionRate))
		for _, top := range corr.TopCourses {
			b.WriteString(m.styles.Muted.Render(fmt.Sprintf("      %s ×%d", top.CourseName, top.Count)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) renderHelpLine() string {
	parts := []string{"1-5 views"}
	switch m.view {
	case ViewCustomers:
		parts = append(parts, "/ search", "enter open", "↑/↓ move")
	case ViewCustomerDetail:
		parts = append(parts, "esc back")
	case ViewEvents, ViewCourses:
		parts = append(parts, "enter expand", "↑/↓ move")
	}
	parts = append(parts, "L logout", "q quit")

	return m.styles.Help.Render(strings.Join(parts, " • ")) + "\n"
}

// truncate shortens s to at most max runes. Counting runes, not bytes,
// so multibyte names are never cut mid-sequence.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
