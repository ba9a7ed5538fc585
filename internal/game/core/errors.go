package core

import "errors"

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrOutOfBounds        = errors.New("ship does not fit on the board")
	ErrOverlapOrAdjacent  = errors.New("ship overlaps or touches another ship")
	ErrUnknownShipType    = errors.New("unknown ship type")
	ErrUnknownOrientation = errors.New("unknown orientation")
)
