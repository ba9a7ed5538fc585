package gameserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

// Client is a typed wrapper over a BattleshipService connection
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps an established connection
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) call(ctx context.Context, method string, req map[string]interface{}, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateGame starts a session for username
func (c *Client) CreateGame(ctx context.Context, username string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, MethodCreateGame, map[string]interface{}{"username": username}, opts...)
}

// GetGame fetches the session view
func (c *Client) GetGame(ctx context.Context, gameID string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, MethodGetGame, map[string]interface{}{"game_id": gameID}, opts...)
}

// PlaceShip places one ship with its origin at at
func (c *Client) PlaceShip(ctx context.Context, gameID string, t core.ShipType, at core.Coordinate, o core.Orientation, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, MethodPlaceShip, map[string]interface{}{
		"game_id":     gameID,
		"ship_type":   t.String(),
		"row":         at.Row,
		"col":         at.Col,
		"orientation": o.String(),
	}, opts...)
}

// AutoPlace places the remaining ships at random
func (c *Client) AutoPlace(ctx context.Context, gameID string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, MethodAutoPlace, map[string]interface{}{"game_id": gameID}, opts...)
}

// Fire shoots at the opponent board. requestID may be empty.
func (c *Client) Fire(ctx context.Context, gameID string, at core.Coordinate, requestID string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	req := map[string]interface{}{
		"game_id": gameID,
		"row":     at.Row,
		"col":     at.Col,
	}
	if requestID != "" {
		req["request_id"] = requestID
	}
	return c.call(ctx, MethodFire, req, opts...)
}

// GetResult fetches the shooting summary
func (c *Client) GetResult(ctx context.Context, gameID string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, MethodGetResult, map[string]interface{}{"game_id": gameID}, opts...)
}

// SubmitResult sends a finished game's result for verification
func (c *Client) SubmitResult(ctx context.Context, gameID string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, MethodSubmitResult, map[string]interface{}{"game_id": gameID}, opts...)
}

// EndGame discards the session
func (c *Client) EndGame(ctx context.Context, gameID string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, MethodEndGame, map[string]interface{}{"game_id": gameID}, opts...)
}
