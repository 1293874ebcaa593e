// Package ui holds small bubbletea pieces shared by the interfaces.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// NotificationLifetime is how long a notification stays visible.
const NotificationLifetime = 2 * time.Second

// NotificationMsg shows Text next to the last line of the view.
type NotificationMsg struct {
	Text string
}

// clearNotificationMsg carries the time of the notification it clears,
// so a newer notification is not cleared early.
type clearNotificationMsg struct {
	at time.Time
}

// Notify returns a command that shows text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg{Text: text}
	}
}

// Model keeps the current notification.
type Model struct {
	notification string
	notifiedAt   time.Time
}

// Text returns the visible notification, if any.
func (m *Model) Text() string {
	return m.notification
}

// Update handles notification messages and ignores everything else.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.notification = msg.Text
		m.notifiedAt = time.Now()

		at := m.notifiedAt
		return tea.Tick(NotificationLifetime, func(time.Time) tea.Msg {
			return clearNotificationMsg{at: at}
		})
	case clearNotificationMsg:
		if msg.at.Equal(m.notifiedAt) {
			m.notification = ""
		}
	}

	return nil
}

var notificationStyle = lipgloss.NewStyle().Faint(true)

// View appends the notification to the last line of content.
func (m *Model) View(content string) string {
	if m.notification == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + notificationStyle.Render(m.notification)
	return strings.Join(lines, "\n")
}
