package console

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies a terminal command.
type Kind int

const (
	CmdNone      Kind = iota // blank input
	CmdStart                 // begin stepping
	CmdStop                  // halt stepping
	CmdSpeed                 // set the delay to Command.Speed ms
	CmdToggle                // flip cell Command.X, Command.Y
	CmdStep                  // one generation while stopped
	CmdReset                 // clear and reseed
	CmdHelp                  // print Usage
	CmdQuit                  // end the session
	CmdStartStop             // start if stopped, stop if running
	CmdFaster                // shorten the delay by one speed step
	CmdSlower                // lengthen the delay by one speed step
)

// Command is one parsed line of user input.
type Command struct {
	Kind  Kind
	Speed int
	X, Y  int
}

// Usage lists the accepted commands.
const Usage = `commands:
  start            start stepping
  stop             stop stepping
  speed <ms>       set the delay between generations
  faster, slower   change the delay by one step
  toggle <x> <y>   flip a cell
  step             advance one generation while stopped
  reset            clear the grid and restore the seed patterns
  help             show this text
  quit             exit`

// ParseCommand parses a single input line. Blank lines yield CmdNone.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{Kind: CmdNone}, nil
	}
	name, args := fields[0], fields[1:]
	switch name {
	case "start", "run":
		return simple(CmdStart, name, args)
	case "stop", "pause":
		return simple(CmdStop, name, args)
	case "step", "n":
		return simple(CmdStep, name, args)
	case "reset", "r":
		return simple(CmdReset, name, args)
	case "faster", "+":
		return simple(CmdFaster, name, args)
	case "slower", "-":
		return simple(CmdSlower, name, args)
	case "help", "?":
		return simple(CmdHelp, name, args)
	case "quit", "q", "exit":
		return simple(CmdQuit, name, args)
	case "speed":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("speed: want 1 argument, got %d", len(args))
		}
		ms, err := strconv.Atoi(args[0])
		if err != nil {
			return Command{}, fmt.Errorf("speed: %q is not a number", args[0])
		}
		return Command{Kind: CmdSpeed, Speed: ms}, nil
	case "toggle", "t":
		if len(args) != 2 {
			return Command{}, fmt.Errorf("toggle: want 2 arguments, got %d", len(args))
		}
		x, err := strconv.Atoi(args[0])
		if err != nil {
			return Command{}, fmt.Errorf("toggle: x %q is not a number", args[0])
		}
		y, err := strconv.Atoi(args[1])
		if err != nil {
			return Command{}, fmt.Errorf("toggle: y %q is not a number", args[1])
		}
		return Command{Kind: CmdToggle, X: x, Y: y}, nil
	default:
		return Command{}, fmt.Errorf("unknown command %q", name)
	}
}

func simple(k Kind, name string, args []string) (Command, error) {
	if len(args) != 0 {
		return Command{}, fmt.Errorf("%s takes no arguments", name)
	}
	return Command{Kind: k}, nil
}
