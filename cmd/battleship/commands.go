package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

type commandKind int

const (
	cmdHelp commandKind = iota
	cmdPlace
	cmdAuto
	cmdFire
	cmdView
	cmdNew
	cmdSubmit
	cmdQuit
)

type command struct {
	kind        commandKind
	shipType    core.ShipType
	at          core.Coordinate
	orientation core.Orientation
}

var errEmptyCommand = errors.New("empty command")

const helpText = `commands:
  place <type> <A1> <h|v>   place a ship (battleship, cruiser, destroyer, submarine)
  auto                      place the remaining ships at random
  fire <A1>                 fire at the opponent grid; a bare cell like "B7" also fires
  view                      redraw the boards
  new                       start a new game
  submit                    send the finished game for verification again
  help                      show this help
  quit                      leave`

// parseCommand reads one input line
func parseCommand(line string) (command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return command{}, errEmptyCommand
	}

	switch fields[0] {
	case "help", "?":
		return command{kind: cmdHelp}, nil
	case "auto":
		return command{kind: cmdAuto}, nil
	case "view", "v":
		return command{kind: cmdView}, nil
	case "new", "reset":
		return command{kind: cmdNew}, nil
	case "submit":
		return command{kind: cmdSubmit}, nil
	case "quit", "exit", "q":
		return command{kind: cmdQuit}, nil
	case "place", "p":
		if len(fields) != 4 {
			return command{}, fmt.Errorf("usage: place <type> <A1> <h|v>")
		}
		t, err := core.ParseShipType(fields[1])
		if err != nil {
			return command{}, err
		}
		at, err := core.ParseCoordinate(fields[2])
		if err != nil {
			return command{}, err
		}
		o, err := core.ParseOrientation(fields[3])
		if err != nil {
			return command{}, err
		}
		return command{kind: cmdPlace, shipType: t, at: at, orientation: o}, nil
	case "fire", "f":
		if len(fields) != 2 {
			return command{}, fmt.Errorf("usage: fire <A1>")
		}
		at, err := core.ParseCoordinate(fields[1])
		if err != nil {
			return command{}, err
		}
		return command{kind: cmdFire, at: at}, nil
	}

	if len(fields) == 1 {
		if at, err := core.ParseCoordinate(fields[0]); err == nil {
			return command{kind: cmdFire, at: at}, nil
		}
	}
	return command{}, fmt.Errorf("unknown command %q, type help", fields[0])
}
