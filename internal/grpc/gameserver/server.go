package gameserver

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

// Server implements BattleshipServiceServer on top of a GameManager
type Server struct {
	gameManager *GameManager
	logger      zerolog.Logger
}

var _ BattleshipServiceServer = (*Server)(nil)

// NewServer creates a new game server
func NewServer(gm *GameManager, logger zerolog.Logger) *Server {
	return &Server{
		gameManager: gm,
		logger:      logger.With().Str("component", "GameServer").Logger(),
	}
}

// GameManager returns the manager backing the server
func (s *Server) GameManager() *GameManager { return s.gameManager }

// CreateGame creates a new game session
func (s *Server) CreateGame(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	username, err := requiredString(req, "username")
	if err != nil {
		return nil, err
	}

	gameID, view, err := s.gameManager.CreateGame(username)
	if err != nil {
		return nil, toStatus(err)
	}

	return toStruct(map[string]interface{}{
		"game_id":    gameID,
		"created_at": time.Now().UTC().Format(time.RFC3339),
		"view":       viewToMap(view),
	})
}

// GetGame returns the current view of a session
func (s *Server) GetGame(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	gameID, err := requiredString(req, "game_id")
	if err != nil {
		return nil, err
	}

	view, err := s.gameManager.GetGame(gameID)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(map[string]interface{}{"view": viewToMap(view)})
}

// PlaceShip places one of the player's ships
func (s *Server) PlaceShip(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	gameID, err := requiredString(req, "game_id")
	if err != nil {
		return nil, err
	}
	typeName, err := requiredString(req, "ship_type")
	if err != nil {
		return nil, err
	}
	shipType, err := core.ParseShipType(typeName)
	if err != nil {
		return nil, toStatus(err)
	}
	orientationName, err := requiredString(req, "orientation")
	if err != nil {
		return nil, err
	}
	orientation, err := core.ParseOrientation(orientationName)
	if err != nil {
		return nil, toStatus(err)
	}
	at, err := coordinateFrom(req)
	if err != nil {
		return nil, err
	}

	view, err := s.gameManager.PlaceShip(gameID, shipType, at, orientation)
	if err != nil {
		s.logger.Debug().Err(err).Str("game_id", gameID).Msg("Placement rejected")
		return nil, toStatus(err)
	}
	return toStruct(map[string]interface{}{"view": viewToMap(view)})
}

// AutoPlace places every remaining player ship at random
func (s *Server) AutoPlace(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	gameID, err := requiredString(req, "game_id")
	if err != nil {
		return nil, err
	}

	view, err := s.gameManager.AutoPlace(gameID)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(map[string]interface{}{"view": viewToMap(view)})
}

// Fire resolves a player shot. An optional request_id makes retries safe.
func (s *Server) Fire(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	gameID, err := requiredString(req, "game_id")
	if err != nil {
		return nil, err
	}
	at, err := coordinateFrom(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.gameManager.FireOnce(gameID, optionalString(req, "request_id"), at, encodeFireOutcome)
	if err != nil {
		return nil, toStatus(err)
	}
	return resp, nil
}

func encodeFireOutcome(out FireOutcome) (*structpb.Struct, error) {
	m := shotToMap(out.Player)
	if out.Opponent != nil {
		m["opponent_shot"] = shotToMap(*out.Opponent)
	}
	m["view"] = viewToMap(out.View)
	return toStruct(m)
}

// GetResult returns the player's shooting summary
func (s *Server) GetResult(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	gameID, err := requiredString(req, "game_id")
	if err != nil {
		return nil, err
	}

	result, err := s.gameManager.GetResult(gameID)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(map[string]interface{}{"game_result": resultToMap(result)})
}

// SubmitResult forwards a finished game's result to the verification service
func (s *Server) SubmitResult(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	gameID, err := requiredString(req, "game_id")
	if err != nil {
		return nil, err
	}

	receipt, err := s.gameManager.SubmitResult(ctx, gameID)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(map[string]interface{}{"receipt": receiptToMap(receipt)})
}

// EndGame discards a session
func (s *Server) EndGame(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	gameID, err := requiredString(req, "game_id")
	if err != nil {
		return nil, err
	}

	if err := s.gameManager.EndGame(gameID); err != nil {
		return nil, toStatus(err)
	}
	return toStruct(map[string]interface{}{"game_id": gameID, "ended": true})
}
