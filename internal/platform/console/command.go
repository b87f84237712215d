// Package console hosts a pebbles game over a line-oriented text stream.
// It is used when stdin is not a terminal, e.g. when a script pipes moves in.
package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/pebbles/internal/pebbles"
)

// CommandKind distinguishes commands that reach the controller from
// session-level ones.
type CommandKind int

const (
	CommandAction CommandKind = iota // Action is set
	CommandState
	CommandHelp
	CommandQuit
	CommandEmpty
)

// Command is one parsed input line.
type Command struct {
	Kind   CommandKind
	Action pebbles.Action
}

// ParseCommand decodes a line. current is the config of the live game and
// fills in whatever a restart command leaves out.
//
// Accepted forms:
//
//	turn N | take N | N
//	giveup | give-up | pass
//	restart [easy|hard] [PEBBLES MAX]
//	state | help | quit | exit
func ParseCommand(line string, current pebbles.Config) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return Command{Kind: CommandEmpty}, nil
	}

	verb, args := fields[0], fields[1:]

	// A bare number is shorthand for a turn.
	if _, err := strconv.ParseUint(verb, 10, 32); err == nil {
		verb, args = "turn", fields
	}

	switch verb {
	case "turn", "take":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("usage: turn N")
		}
		n, err := parseUint32(args[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandAction, Action: pebbles.Turn{Amount: n}}, nil

	case "giveup", "give-up", "pass":
		if len(args) != 0 {
			return Command{}, fmt.Errorf("usage: giveup")
		}
		return Command{Kind: CommandAction, Action: pebbles.GiveUp{}}, nil

	case "restart":
		cfg, err := parseRestart(args, current)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandAction, Action: pebbles.Restart{Config: cfg}}, nil

	case "state":
		return Command{Kind: CommandState}, nil
	case "help", "?":
		return Command{Kind: CommandHelp}, nil
	case "quit", "exit":
		return Command{Kind: CommandQuit}, nil
	}

	return Command{}, fmt.Errorf("unknown command %q", verb)
}

func parseRestart(args []string, cfg pebbles.Config) (pebbles.Config, error) {
	if len(args) > 0 {
		if d, err := pebbles.ParseDifficulty(args[0]); err == nil {
			cfg.Difficulty = d
			args = args[1:]
		}
	}

	switch len(args) {
	case 0:
	case 2:
		count, err := parseUint32(args[0])
		if err != nil {
			return cfg, err
		}
		maxPer, err := parseUint32(args[1])
		if err != nil {
			return cfg, err
		}
		cfg.PebblesCount = count
		cfg.MaxPebblesPerTurn = maxPer
	default:
		return cfg, fmt.Errorf("usage: restart [easy|hard] [PEBBLES MAX]")
	}
	return cfg, nil
}

func parseUint32(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not a pebble count", s)
	}
	return uint32(n), nil
}
