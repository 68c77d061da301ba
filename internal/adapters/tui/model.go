package tui

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/camiloAVN/WebSockets-Tester/internal/application"
	"github.com/camiloAVN/WebSockets-Tester/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	focusAddress = iota
	focusCompose
	focusCount
)

// chrome is the number of screen rows outside the transcript viewport.
const chrome = 11

type Options struct {
	// Address pre-fills the address field; the most recent history entry
	// is used when empty.
	Address     string
	Suggestions []string
	Now         func() time.Time
}

type Model struct {
	client Client
	now    func() time.Time

	address    textinput.Model
	compose    textinput.Model
	transcript viewport.Model
	spinner    spinner.Model
	focus      int

	status      domain.ConnectionStatus
	server      string
	connectedAt time.Time
	attachment  domain.NetworkAttachment
	known       bool
	entries     []domain.TranscriptEntry

	// set once a live notification has superseded the initial snapshot
	liveStatus     bool
	liveEntries    bool
	liveAttachment bool

	configured  []string
	suggestions []string
	suggestion  int
	prefilled   bool

	err      string
	width    int
	height   int
	quitting bool
}

func New(c Client, opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	address := textinput.New()
	address.Placeholder = "ws://192.168.1.100:8080"
	address.CharLimit = 256
	address.SetValue(opts.Address)
	address.CursorEnd()
	address.Focus()

	compose := textinput.New()
	compose.Placeholder = "Type a message"
	compose.CharLimit = 4096

	return Model{
		client:      c,
		now:         now,
		address:     address,
		compose:     compose,
		transcript:  viewport.New(80, 12),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(statusStyles["connecting"])),
		status:      domain.StatusDisconnected,
		configured:  slices.Clone(opts.Suggestions),
		suggestions: dedupe(opts.Suggestions),
		suggestion:  -1,
		prefilled:   opts.Address != "",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		snapshotCmd(m.client),
		historyCmd(m.client),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case snapshotMsg:
		m.applySnapshot(msg)
		return m, nil

	case transcriptMsg:
		m.liveEntries = true
		m.setEntries(msg.entries)
		return m, nil

	case eventMsg:
		m.applyEvent(msg.event)
		return m, nil

	case networkMsg:
		m.liveAttachment = true
		m.attachment, m.known = msg.attachment, true
		return m, nil

	case historyMsg:
		m.applyHistory(msg.endpoints)
		return m, nil

	case commandErrMsg:
		m.err = describe(msg.err)
		return m, nil

	case sentMsg:
		if m.compose.Value() == msg.text {
			m.compose.Reset()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "tab", "shift+tab":
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil

	case "ctrl+d":
		return m, disconnectCmd(m.client)

	case "ctrl+l":
		return m, clearCmd(m.client)

	case "ctrl+t":
		return m, testConnectivityCmd(m.client)

	case "ctrl+r":
		m.cycleSuggestion()
		return m, nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd

	case "enter":
		m.err = ""
		if m.focus == focusAddress {
			if m.status == domain.StatusConnected {
				return m, disconnectCmd(m.client)
			}
			return m, connectCmd(m.client, m.address.Value())
		}
		if strings.TrimSpace(m.compose.Value()) == "" {
			return m, nil
		}
		return m, sendCmd(m.client, m.compose.Value())
	}

	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == focusAddress {
		m.address, cmd = m.address.Update(msg)
	} else {
		m.compose, cmd = m.compose.Update(msg)
	}
	return m, cmd
}

// applySnapshot fills in whatever no live notification has reported yet.
func (m *Model) applySnapshot(msg snapshotMsg) {
	if !m.liveStatus {
		m.status = msg.status
		m.server = msg.address
		if msg.status == domain.StatusConnected {
			m.connectedAt = m.now()
		}
	}
	if !m.liveAttachment {
		m.attachment, m.known = msg.attachment, msg.known
	}
	if !m.liveEntries {
		m.setEntries(msg.entries)
	}
}

func (m *Model) applyEvent(ev application.Event) {
	changed, ok := ev.(application.StatusChanged)
	if !ok {
		return
	}

	m.liveStatus = true
	m.status = changed.To
	m.server = changed.Address
	switch changed.To {
	case domain.StatusConnected:
		m.connectedAt = m.now()
		m.err = ""
		m.setFocus(focusCompose)
	case domain.StatusDisconnected:
		m.connectedAt = time.Time{}
	}
}

func (m *Model) applyHistory(endpoints []domain.Endpoint) {
	recent := make([]string, 0, len(endpoints))
	for _, e := range endpoints {
		recent = append(recent, e.Address)
	}
	m.suggestions = dedupe(append(recent, m.configured...))
	m.suggestion = -1

	if !m.prefilled && len(recent) > 0 && m.address.Value() == "" {
		m.address.SetValue(recent[0])
		m.address.CursorEnd()
	}
	m.prefilled = true
}

func (m *Model) cycleSuggestion() {
	if len(m.suggestions) == 0 {
		return
	}
	m.suggestion = (m.suggestion + 1) % len(m.suggestions)
	m.address.SetValue(m.suggestions[m.suggestion])
	m.address.CursorEnd()
	m.setFocus(focusAddress)
}

func (m *Model) setFocus(focus int) {
	m.focus = focus
	if focus == focusAddress {
		m.compose.Blur()
		m.address.Focus()
		return
	}
	m.address.Blur()
	m.compose.Focus()
}

func (m *Model) setEntries(entries []domain.TranscriptEntry) {
	m.entries = entries
	m.transcript.SetContent(renderEntries(entries))
	m.transcript.GotoBottom()
}

func (m *Model) resize() {
	width := max(m.width-2, 20)
	height := max(m.height-chrome, 3)
	m.transcript.Width = width
	m.transcript.Height = height
	m.address.Width = max(width-12, 10)
	m.compose.Width = max(width-12, 10)
	m.transcript.SetContent(renderEntries(m.entries))
	m.transcript.GotoBottom()
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAddress):
		return "Invalid address: use ws://host:port or wss://host:port"
	case errors.Is(err, domain.ErrAlreadyConnected):
		return "Already connected: disconnect first"
	case errors.Is(err, domain.ErrNotConnected):
		return "Not connected"
	case errors.Is(err, domain.ErrOutboxFull):
		return "Too many unsent messages, try again"
	default:
		return err.Error()
	}
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
