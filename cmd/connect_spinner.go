package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/camiloAVN/WebSockets-Tester/internal/application"
	"github.com/camiloAVN/WebSockets-Tester/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var errClosedBeforeConnect = errors.New("connection closed before it was established")

var (
	connectingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	connectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type connectEventMsg struct {
	event application.Event
}

// connectProgressModel follows one handshake from the connection's own
// events: connecting until a StatusChanged settles it either way.
type connectProgressModel struct {
	spinner spinner.Model
	events  <-chan application.Event

	address string
	status  domain.ConnectionStatus
	err     error
}

func newConnectProgressModel(address string, events <-chan application.Event) connectProgressModel {
	return connectProgressModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(connectingStyle)),
		events:  events,
		address: address,
		status:  domain.StatusConnecting,
	}
}

func (m connectProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m connectProgressModel) next() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return connectEventMsg{event: <-events}
	}
}

func (m connectProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.settled() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case connectEventMsg:
		switch ev := msg.event.(type) {
		case application.ErrorOccurred:
			m.err = ev.Err
		case application.StatusChanged:
			if ev.Address != "" {
				m.address = ev.Address
			}
			m.status = ev.To
			switch ev.To {
			case domain.StatusConnected:
				m.err = nil
				return m, tea.Quit
			case domain.StatusDisconnected:
				if m.err == nil {
					m.err = errClosedBeforeConnect
				}
				return m, tea.Quit
			}
		}
		return m, m.next()
	}

	return m, nil
}

func (m connectProgressModel) settled() bool {
	return m.status != domain.StatusConnecting
}

func (m connectProgressModel) View() string {
	switch m.status {
	case domain.StatusConnected:
		return connectedStyle.Render("Connected to "+m.address) + "\n"
	case domain.StatusDisconnected:
		return failedStyle.Render(describeConnectFailure(m.err)) + "\n"
	default:
		return fmt.Sprintf("%s Connecting to %s...", m.spinner.View(), m.address)
	}
}

func describeConnectFailure(err error) string {
	var connectErr *domain.ConnectError
	if errors.As(err, &connectErr) && connectErr.Err != nil {
		return fmt.Sprintf("Could not connect to %s: %v", connectErr.Address, connectErr.Err)
	}
	return err.Error()
}

// runConnectProgress shows the handshake until events report it connected or
// failed. The returned error is the connection's own failure.
func runConnectProgress(ctx context.Context, output io.Writer, address string, events <-chan application.Event) error {
	p := tea.NewProgram(
		newConnectProgressModel(address, events),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	result, ok := final.(connectProgressModel)
	if !ok {
		return fmt.Errorf("unexpected final progress model type %T", final)
	}
	if result.status != domain.StatusConnected {
		return result.err
	}

	return nil
}
