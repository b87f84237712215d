package console

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pebbles/internal/pebbles"
)

const helpText = `commands:
  turn N              take N pebbles (also: take N, or just N)
  giveup              let the opponent move
  restart [easy|hard] [PEBBLES MAX]
  state               show the current game
  quit                leave`

// Session reads commands from in and writes one reply per command to out.
type Session struct {
	ctrl   *pebbles.Controller
	in     io.Reader
	out    io.Writer
	logger *log.Logger
}

// NewSession creates a session around an initialized controller.
func NewSession(ctrl *pebbles.Controller, in io.Reader, out io.Writer, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{ctrl: ctrl, in: in, out: out, logger: logger}
}

// Run processes input until EOF or a quit command. Bad commands and
// rejected actions are reported to out and do not end the session.
func (s *Session) Run() error {
	if err := s.writeState(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		quit, err := s.handleLine(scanner.Text())
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("console: read input: %w", err)
	}
	return nil
}

// handleLine executes one line. A returned error ends the session: output
// failures and errors the game cannot recover from, such as an unavailable
// random source.
func (s *Session) handleLine(line string) (quit bool, err error) {
	state, err := s.ctrl.State()
	if err != nil {
		return false, err
	}

	cmd, err := ParseCommand(line, state.Config())
	if err != nil {
		return false, s.writef("error: %v\n", err)
	}

	switch cmd.Kind {
	case CommandEmpty:
		return false, nil
	case CommandQuit:
		return true, nil
	case CommandHelp:
		return false, s.writef("%s\n", helpText)
	case CommandState:
		return false, s.writeState()
	}

	ev, err := s.ctrl.Handle(cmd.Action)
	if err != nil {
		if !pebbles.IsRejection(err) {
			return false, err
		}
		s.logger.Debug("action rejected", "game", s.ctrl.GameID(), "action", fmt.Sprintf("%T", cmd.Action), "error", err)
		return false, s.writef("error: %v\n", err)
	}

	if _, ok := cmd.Action.(pebbles.Restart); ok {
		if err := s.writef("ok\n"); err != nil {
			return false, err
		}
		return false, s.writeState()
	}
	return false, s.writef("%s\n", FormatEvent(ev))
}

func (s *Session) writeState() error {
	state, err := s.ctrl.State()
	if err != nil {
		return err
	}
	return s.writef("state %s\n", state)
}

func (s *Session) writef(format string, args ...any) error {
	if _, err := fmt.Fprintf(s.out, format, args...); err != nil {
		return fmt.Errorf("console: write output: %w", err)
	}
	return nil
}

// FormatEvent renders an event as a reply line.
func FormatEvent(ev pebbles.Event) string {
	switch e := ev.(type) {
	case pebbles.CounterTurn:
		return e.String()
	case pebbles.Won:
		return e.String()
	case nil:
		return "ok"
	}
	return fmt.Sprintf("%v", ev)
}
