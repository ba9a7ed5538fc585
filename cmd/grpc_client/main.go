package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
	"github.com/mitchelldurbincs/battleship/internal/game/states"
	"github.com/mitchelldurbincs/battleship/internal/grpc/gameserver"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "grpc_client",
		Usage: "talk to a battleship gRPC server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: "localhost:50051", Usage: "server address"},
			&cli.DurationFlag{Name: "timeout", Value: 10 * time.Second, Usage: "timeout of each call"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log progress"},
		},
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "start a session",
				ArgsUsage: "<username>",
				Action: unary(1, func(ctx context.Context, c *client, args []string) (*structpb.Struct, error) {
					return c.CreateGame(ctx, args[0])
				}),
			},
			{
				Name:      "get",
				Usage:     "show a session",
				ArgsUsage: "<game-id>",
				Action: unary(1, func(ctx context.Context, c *client, args []string) (*structpb.Struct, error) {
					return c.GetGame(ctx, args[0])
				}),
			},
			{
				Name:      "place",
				Usage:     "place one ship",
				ArgsUsage: "<game-id> <ship-type> <A1> <h|v>",
				Action: unary(4, func(ctx context.Context, c *client, args []string) (*structpb.Struct, error) {
					shipType, err := core.ParseShipType(args[1])
					if err != nil {
						return nil, err
					}
					at, err := core.ParseCoordinate(args[2])
					if err != nil {
						return nil, err
					}
					o, err := core.ParseOrientation(args[3])
					if err != nil {
						return nil, err
					}
					return c.PlaceShip(ctx, args[0], shipType, at, o)
				}),
			},
			{
				Name:      "auto",
				Usage:     "place the remaining ships at random",
				ArgsUsage: "<game-id>",
				Action: unary(1, func(ctx context.Context, c *client, args []string) (*structpb.Struct, error) {
					return c.AutoPlace(ctx, args[0])
				}),
			},
			{
				Name:      "fire",
				Usage:     "fire at the opponent grid",
				ArgsUsage: "<game-id> <A1> [request-id]",
				Action: unary(2, func(ctx context.Context, c *client, args []string) (*structpb.Struct, error) {
					at, err := core.ParseCoordinate(args[1])
					if err != nil {
						return nil, err
					}
					requestID := ""
					if len(args) > 2 {
						requestID = args[2]
					}
					return c.Fire(ctx, args[0], at, requestID)
				}),
			},
			{
				Name:      "result",
				Usage:     "show the shooting summary",
				ArgsUsage: "<game-id>",
				Action: unary(1, func(ctx context.Context, c *client, args []string) (*structpb.Struct, error) {
					return c.GetResult(ctx, args[0])
				}),
			},
			{
				Name:      "submit",
				Usage:     "submit a finished game for verification",
				ArgsUsage: "<game-id>",
				Action: unary(1, func(ctx context.Context, c *client, args []string) (*structpb.Struct, error) {
					return c.SubmitResult(ctx, args[0])
				}),
			},
			{
				Name:      "end",
				Usage:     "discard a session",
				ArgsUsage: "<game-id>",
				Action: unary(1, func(ctx context.Context, c *client, args []string) (*structpb.Struct, error) {
					return c.EndGame(ctx, args[0])
				}),
			},
			{
				Name:      "play",
				Usage:     "create, auto-place and fire in reading order until the game ends",
				ArgsUsage: "<username>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.NArg() < 1 {
						return fmt.Errorf("play needs a username")
					}
					c, closeConn, err := dial(cmd)
					if err != nil {
						return err
					}
					defer closeConn()

					resp, err := play(ctx, c, cmd.Args().First())
					if err != nil {
						return err
					}
					return printJSON(resp)
				},
			},
		},
	}
}

type client struct {
	*gameserver.Client
	timeout time.Duration
}

func dial(cmd *cli.Command) (*client, func(), error) {
	if !cmd.Bool("verbose") {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	addr := cmd.String("addr")
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", addr, err)
	}
	c := &client{Client: gameserver.NewClient(conn), timeout: cmd.Duration("timeout")}
	return c, func() { _ = conn.Close() }, nil
}

// unary wraps a single call that needs at least n arguments
func unary(n int, call func(context.Context, *client, []string) (*structpb.Struct, error)) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		args := cmd.Args().Slice()
		if len(args) < n {
			return fmt.Errorf("%s needs %d argument(s): %s", cmd.Name, n, cmd.ArgsUsage)
		}

		c, closeConn, err := dial(cmd)
		if err != nil {
			return err
		}
		defer closeConn()

		resp, err := c.bounded(ctx, func(ctx context.Context) (*structpb.Struct, error) {
			return call(ctx, c, args)
		})
		if err != nil {
			return err
		}
		return printJSON(resp)
	}
}

// bounded runs one call under its own deadline
func (c *client) bounded(ctx context.Context, call func(context.Context) (*structpb.Struct, error)) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return call(ctx)
}

// play runs a whole game and returns the final result
func play(ctx context.Context, c *client, username string) (*structpb.Struct, error) {
	created, err := c.bounded(ctx, func(ctx context.Context) (*structpb.Struct, error) {
		return c.CreateGame(ctx, username)
	})
	if err != nil {
		return nil, err
	}
	gameID := created.GetFields()["game_id"].GetStringValue()
	log.Info().Str("game_id", gameID).Msg("Created game")

	if _, err := c.bounded(ctx, func(ctx context.Context) (*structpb.Struct, error) {
		return c.AutoPlace(ctx, gameID)
	}); err != nil {
		return nil, err
	}

	result := func(ctx context.Context) (*structpb.Struct, error) { return c.GetResult(ctx, gameID) }

	for r := 0; r < core.BoardSize; r++ {
		for col := 0; col < core.BoardSize; col++ {
			at := core.NewCoordinate(r, col)
			over, err := waitForTurn(ctx, c, gameID)
			if err != nil {
				return nil, err
			}
			if over {
				return c.bounded(ctx, result)
			}

			resp, err := c.bounded(ctx, func(ctx context.Context) (*structpb.Struct, error) {
				return c.Fire(ctx, gameID, at, gameID+"-"+at.Label())
			})
			if err != nil {
				return nil, err
			}
			log.Info().
				Str("target", at.Label()).
				Str("outcome", resp.GetFields()["outcome"].GetStringValue()).
				Msg("Fired")
			if resp.GetFields()["game_over"].GetBoolValue() {
				fmt.Println(strings.TrimSpace(resp.GetFields()["message"].GetStringValue()))
				return c.bounded(ctx, result)
			}
		}
	}
	return c.bounded(ctx, result)
}

// waitForTurn polls until the opponent has answered. It reports whether the
// game ended meanwhile.
func waitForTurn(ctx context.Context, c *client, gameID string) (bool, error) {
	for {
		resp, err := c.bounded(ctx, func(ctx context.Context) (*structpb.Struct, error) {
			return c.GetGame(ctx, gameID)
		})
		if err != nil {
			return false, err
		}
		view := resp.GetFields()["view"].GetStructValue().GetFields()
		if view["phase"].GetStringValue() == states.PhaseGameOver.String() {
			fmt.Println(strings.TrimSpace(view["message"].GetStringValue()))
			return true, nil
		}
		if view["turn"].GetStringValue() == core.SidePlayer.String() {
			return false, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
}

func printJSON(m *structpb.Struct) error {
	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(m)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
