package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want command
	}{
		{"help", command{kind: cmdHelp}},
		{"  AUTO ", command{kind: cmdAuto}},
		{"view", command{kind: cmdView}},
		{"new", command{kind: cmdNew}},
		{"q", command{kind: cmdQuit}},
		{"Submit", command{kind: cmdSubmit}},
		{"place cruiser B3 v", command{kind: cmdPlace, shipType: core.Cruiser, at: core.NewCoordinate(2, 1), orientation: core.Vertical}},
		{"p Battleship a1 horizontal", command{kind: cmdPlace, shipType: core.Battleship, at: core.NewCoordinate(0, 0), orientation: core.Horizontal}},
		{"fire J10", command{kind: cmdFire, at: core.NewCoordinate(9, 9)}},
		{"c4", command{kind: cmdFire, at: core.NewCoordinate(3, 2)}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := parseCommand(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommand_Errors(t *testing.T) {
	tests := []struct {
		line    string
		wantErr error
	}{
		{"", errEmptyCommand},
		{"place carrier A1 h", core.ErrUnknownShipType},
		{"place submarine A1 diagonal", core.ErrUnknownOrientation},
		{"place submarine K1 h", core.ErrInvalidCoordinates},
		{"fire A11", core.ErrInvalidCoordinates},
		{"place submarine A1", nil},
		{"launch", nil},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := parseCommand(tt.line)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
