// Package tui provides the Bubble Tea front end for playing pebbles in a terminal.
package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pebbles/internal/pebbles"
)

// Model is the Bubble Tea model for a pebbles game.
type Model struct {
	ctrl   *pebbles.Controller
	logger *log.Logger
	keys   KeyMap
	help   help.Model
	input  textinput.Model

	state   pebbles.GameState
	message string // outcome of the last action
	err     error  // last rejected action
	fatal   error  // unrecoverable error, ends the program

	width    int
	height   int
	quitting bool
}

// NewModel creates a model around an initialized controller.
func NewModel(ctrl *pebbles.Controller, logger *log.Logger) (Model, error) {
	state, err := ctrl.State()
	if err != nil {
		return Model{}, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Placeholder = fmt.Sprintf("1-%d", state.MaxPebblesPerTurn)
	ti.Prompt = "take > "
	ti.CharLimit = 10
	ti.Width = 12
	ti.Focus()

	m := Model{
		ctrl:   ctrl,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		input:  ti,
		state:  state,
		width:  80,
		height: 24,
	}
	m.message = m.openingMessage()
	return m, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Take):
		text := strings.TrimSpace(m.input.Value())
		m.input.SetValue("")
		if text == "" {
			return m, nil
		}
		n, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			m.err = fmt.Errorf("%q is not a pebble count", text)
			return m, nil
		}
		return m.apply(pebbles.Turn{Amount: uint32(n)})

	case key.Matches(msg, m.keys.GiveUp):
		return m.apply(pebbles.GiveUp{})

	case key.Matches(msg, m.keys.Restart):
		return m.apply(pebbles.Restart{Config: m.state.Config()})

	case key.Matches(msg, m.keys.Difficulty):
		cfg := m.state.Config()
		if cfg.Difficulty == pebbles.Easy {
			cfg.Difficulty = pebbles.Hard
		} else {
			cfg.Difficulty = pebbles.Easy
		}
		return m.apply(pebbles.Restart{Config: cfg})
	}

	// Only digits and editing keys reach the input.
	if msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			if !unicode.IsDigit(r) {
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// apply sends an action to the controller and refreshes the view state.
func (m Model) apply(action pebbles.Action) (tea.Model, tea.Cmd) {
	ev, err := m.ctrl.Handle(action)
	if err != nil {
		if !pebbles.IsRejection(err) {
			m.logger.Error("game failed", "error", err)
			m.fatal = err
			m.quitting = true
			return m, tea.Quit
		}
		m.err = err
		return m, nil
	}
	m.err = nil

	state, err := m.ctrl.State()
	if err != nil {
		m.fatal = err
		m.quitting = true
		return m, tea.Quit
	}
	m.state = state
	m.input.Placeholder = fmt.Sprintf("1-%d", state.MaxPebblesPerTurn)

	switch e := ev.(type) {
	case pebbles.CounterTurn:
		m.message = fmt.Sprintf("Opponent took %d.", e.Amount)
	case pebbles.Won:
		if e.Player == pebbles.User {
			m.message = "You took the last pebble. You win!"
		} else {
			m.message = "The opponent took the last pebble."
		}
	case nil:
		m.message = m.openingMessage()
	}
	return m, nil
}

func (m Model) openingMessage() string {
	if m.state.FirstPlayer == pebbles.Program {
		took := m.state.PebblesCount - m.state.PebblesRemaining
		return fmt.Sprintf("New %s game. Opponent went first and took %d.", m.state.Difficulty, took)
	}
	return fmt.Sprintf("New %s game. You go first.", m.state.Difficulty)
}

// shortID trims a game ID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Err returns the error that ended the program, if any.
func (m Model) Err() error {
	return m.fatal
}

// State returns the last observed game state.
func (m Model) State() pebbles.GameState {
	return m.state
}

// View renders the game screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("P E B B L E S"), m.width))
	b.WriteString("\n\n")

	b.WriteString(RenderPile(m.state.PebblesRemaining, m.state.PebblesCount, m.width, m.height))
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"%d of %d left · take 1-%d per turn · %s · game %s",
		m.state.PebblesRemaining, m.state.PebblesCount, m.state.MaxPebblesPerTurn, m.state.Difficulty,
		shortID(m.ctrl.GameID()),
	)))
	b.WriteString("\n\n")

	switch {
	case m.state.Winner != nil && *m.state.Winner == pebbles.User:
		b.WriteString(winStyle.Render(m.message))
	case m.state.Winner != nil:
		b.WriteString(loseStyle.Render(m.message))
	default:
		b.WriteString(eventStyle.Render(m.message))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
	}
	b.WriteString("\n\n")

	if m.state.IsOver() {
		b.WriteString(infoStyle.Render("Game over. Press r to play again."))
	} else {
		b.WriteString(m.input.View())
	}
	b.WriteString("\n\n")

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(ctrl *pebbles.Controller, logger *log.Logger) error {
	model, err := NewModel(ctrl, logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
