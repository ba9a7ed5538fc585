package gameserver

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/battleship/internal/game"
	"github.com/mitchelldurbincs/battleship/internal/game/core"
	"github.com/mitchelldurbincs/battleship/internal/verify"
)

// Request fields:
//
//	CreateGame   {username}
//	GetGame      {game_id}
//	PlaceShip    {game_id, ship_type, row, col, orientation}
//	AutoPlace    {game_id}
//	Fire         {game_id, row, col, request_id?}
//	GetResult    {game_id}
//	SubmitResult {game_id}
//	EndGame      {game_id}
//
// Responses carry a "view" document (see viewToMap) except GetResult,
// SubmitResult and EndGame. Rows and columns are 0-based.

// Board cell symbols used in view rows
const (
	cellWater = '.'
	cellShip  = 'S'
	cellHit   = 'X'
	cellMiss  = 'O'
)

func boardRows(b *core.Board) []interface{} {
	rows := make([]interface{}, 0, core.BoardSize)
	for r := 0; r < core.BoardSize; r++ {
		var sb strings.Builder
		for c := 0; c < core.BoardSize; c++ {
			switch b.Cells[r][c].Status {
			case core.CellShip:
				sb.WriteByte(cellShip)
			case core.CellHit:
				sb.WriteByte(cellHit)
			case core.CellMiss:
				sb.WriteByte(cellMiss)
			default:
				sb.WriteByte(cellWater)
			}
		}
		rows = append(rows, sb.String())
	}
	return rows
}

func fleetToList(ships []game.ShipSummary) []interface{} {
	out := make([]interface{}, 0, len(ships))
	for _, s := range ships {
		out = append(out, map[string]interface{}{
			"id":   s.ID,
			"type": s.Type.String(),
			"size": s.Size,
			"hits": s.Hits,
			"sunk": s.Sunk,
		})
	}
	return out
}

func resultToMap(r game.GameResult) map[string]interface{} {
	return map[string]interface{}{
		"ships_sunk":     r.ShipsSunk,
		"total_shots":    r.TotalShots,
		"hit_percentage": r.HitPercentage,
		"winner":         r.Winner,
	}
}

func viewToMap(v game.SessionView) map[string]interface{} {
	remaining := make(map[string]interface{}, len(v.Remaining))
	for t, n := range v.Remaining {
		remaining[t.String()] = n
	}

	return map[string]interface{}{
		"game_id":         v.GameID,
		"username":        v.Username,
		"opponent_name":   v.OpponentName,
		"phase":           v.Phase.String(),
		"turn":            v.Turn.String(),
		"player_board":    boardRows(v.PlayerBoard),
		"opponent_board":  boardRows(v.OpponentBoard),
		"remaining":       remaining,
		"player_fleet":    fleetToList(v.PlayerFleet),
		"opponent_fleet":  fleetToList(v.OpponentFleet),
		"score":           v.Score,
		"elapsed_seconds": int(v.Elapsed.Seconds()),
		"elapsed":         v.ElapsedLabel(),
		"message":         v.Message,
		"game_result":     resultToMap(v.Result),
		"winner":          v.Winner.String(),
	}
}

func shotToMap(r game.FireResult) map[string]interface{} {
	m := map[string]interface{}{
		"side":        r.Side.String(),
		"target":      r.Shot.Target.Label(),
		"row":         r.Shot.Target.Row,
		"col":         r.Shot.Target.Col,
		"outcome":     r.Shot.Outcome.String(),
		"score_delta": r.ScoreDelta,
		"game_over":   r.GameOver,
		"message":     r.Message,
	}
	if r.Shot.Outcome.IsHit() {
		m["ship_type"] = r.Shot.ShipType.String()
	}
	if r.GameOver {
		m["winner"] = r.Winner.String()
		m["time_bonus"] = r.TimeBonus
	}
	return m
}

func receiptToMap(r *verify.Receipt) map[string]interface{} {
	return map[string]interface{}{
		"success":     r.Success,
		"proof_hash":  r.ProofHash,
		"username":    r.Username,
		"game_result": resultToMap(r.GameResult),
		"timestamp":   r.Timestamp,
		"verified":    r.Verified,
	}
}

func toStruct(m map[string]interface{}) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return s, nil
}

func requiredString(req *structpb.Struct, key string) (string, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "%s is required", key)
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok || strings.TrimSpace(s.StringValue) == "" {
		return "", status.Errorf(codes.InvalidArgument, "%s must be a non-empty string", key)
	}
	return strings.TrimSpace(s.StringValue), nil
}

func optionalString(req *structpb.Struct, key string) string {
	return strings.TrimSpace(req.GetFields()[key].GetStringValue())
}

func requiredInt(req *structpb.Struct, key string) (int, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "%s is required", key)
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != math.Trunc(n.NumberValue) {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be an integer", key)
	}
	return int(n.NumberValue), nil
}

func coordinateFrom(req *structpb.Struct) (core.Coordinate, error) {
	row, err := requiredInt(req, "row")
	if err != nil {
		return core.Coordinate{}, err
	}
	col, err := requiredInt(req, "col")
	if err != nil {
		return core.Coordinate{}, err
	}
	c := core.NewCoordinate(row, col)
	if !c.IsValid() {
		return core.Coordinate{}, status.Errorf(codes.InvalidArgument, "row and col must be in 0..%d", core.BoardSize-1)
	}
	return c, nil
}

// toStatus maps manager and engine errors onto gRPC status codes
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var perr *game.PlacementError
	var verr *verify.Error

	switch {
	case errors.Is(err, ErrGameNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, ErrServerAtCapacity):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.As(err, &perr),
		errors.Is(err, core.ErrInvalidCoordinates),
		errors.Is(err, core.ErrUnknownShipType),
		errors.Is(err, core.ErrUnknownOrientation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, game.ErrWrongPhase),
		errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, ErrGameNotOver),
		errors.Is(err, ErrSubmitInProgress),
		errors.Is(err, verify.ErrDisabled):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.As(err, &verr):
		return status.Error(codes.Unavailable, verr.Error())
	default:
		return status.Error(codes.Internal, fmt.Sprintf("internal error: %v", err))
	}
}
