package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
	"github.com/mitchelldurbincs/battleship/internal/game/events"
	"github.com/mitchelldurbincs/battleship/internal/game/fleetgen"
	"github.com/mitchelldurbincs/battleship/internal/game/rules"
	"github.com/mitchelldurbincs/battleship/internal/game/states"
	"github.com/mitchelldurbincs/battleship/internal/game/targeting"
	"github.com/rs/zerolog"
)

// FleetSource produces a complete, legal fleet layout for the opponent
type FleetSource interface {
	GenerateFleet() (*core.Board, *core.Fleet, error)
}

// EngineConfig holds everything a session needs. Nil fields get defaults in NewEngine.
type EngineConfig struct {
	GameID       string
	Username     string
	OpponentName string
	Rng          *rand.Rand
	Logger       zerolog.Logger
	Publisher    events.Publisher
	Clock        func() time.Time

	// Placement limits for generated fleets; Owner is set per side
	Placement fleetgen.Config
	Targeting targeting.Options

	// Overrides for tests and alternative opponents
	OpponentFleet FleetSource
	Targeter      targeting.Targeter
}

// DefaultEngineConfig fills an EngineConfig from the loaded application config
func DefaultEngineConfig(logger zerolog.Logger) EngineConfig {
	return EngineConfig{
		OpponentName: OpponentName(),
		Logger:       logger,
		Placement:    PlacementConfig(""),
		Targeting:    TargetingOptions(),
	}
}

// FireResult is the outcome of one shot, by either side
type FireResult struct {
	Shot       core.ShotResult
	Side       core.Side // who fired
	ScoreDelta int       // score change from the shot itself
	TimeBonus  int       // set on the shot that wins the game for the player
	GameOver   bool
	Winner     core.Side
	Message    string
}

// Engine runs one session: the player's fleet against a generated opponent fleet.
// It is not safe for concurrent use; callers serialize access.
type Engine struct {
	gameID       string
	username     string
	opponentName string
	rng          *rand.Rand
	logger       zerolog.Logger
	publisher    events.Publisher

	stateMachine *states.StateMachine
	gameContext  *states.GameContext
	winCondition *rules.WinConditionChecker

	opponentSource FleetSource
	placer         *fleetgen.Generator
	targeter       targeting.Targeter

	playerBoard   *core.Board
	playerFleet   *core.Fleet
	opponentBoard *core.Board
	opponentFleet *core.Fleet

	remaining map[core.ShipType]int
	placed    map[core.ShipType]int

	turn    core.Side
	score   int
	result  GameResult
	message string
}

// NewEngine creates a session in the Setup phase with the opponent fleet already placed
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Rng == nil {
		cfg.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Publisher == nil {
		cfg.Publisher = events.NopPublisher{}
	}
	if cfg.GameID == "" {
		cfg.GameID = fmt.Sprintf("game_%d", cfg.Clock().UnixNano())
	}
	if cfg.OpponentName == "" {
		cfg.OpponentName = "Ferris"
	}

	logger := cfg.Logger.With().Str("component", "GameEngine").Str("game_id", cfg.GameID).Logger()

	placement := cfg.Placement
	if placement.MaxAttemptsPerShip == 0 {
		placement = fleetgen.DefaultConfig("")
	}
	playerPlacement := placement
	playerPlacement.Owner = PlayerOwner
	opponentPlacement := placement
	opponentPlacement.Owner = OpponentOwner

	if cfg.OpponentFleet == nil {
		cfg.OpponentFleet = fleetgen.NewGenerator(opponentPlacement, cfg.Rng)
	}
	if cfg.Targeter == nil {
		cfg.Targeter = targeting.NewStrategy(cfg.Targeting, cfg.Rng, logger)
	}

	gameContext := states.NewGameContext(cfg.GameID, cfg.Logger.With().Str("component", "StateMachine").Logger(), cfg.Clock)

	e := &Engine{
		gameID:         cfg.GameID,
		username:       cfg.Username,
		opponentName:   cfg.OpponentName,
		rng:            cfg.Rng,
		logger:         logger,
		publisher:      cfg.Publisher,
		stateMachine:   states.NewStateMachine(gameContext, cfg.Publisher),
		gameContext:    gameContext,
		winCondition:   rules.NewWinConditionChecker(logger),
		opponentSource: cfg.OpponentFleet,
		placer:         fleetgen.NewGenerator(playerPlacement, cfg.Rng),
		targeter:       cfg.Targeter,
	}

	if err := e.setupSides(); err != nil {
		return nil, err
	}

	e.publisher.Publish(events.NewGameStartedEvent(e.gameID, e.username, e.opponentName))
	e.logger.Info().
		Str("username", e.username).
		Str("opponent", e.opponentName).
		Msg("Engine created successfully")

	return e, nil
}

// setupSides deals a fresh opponent fleet and clears everything else
func (e *Engine) setupSides() error {
	board, fleet, err := e.opponentSource.GenerateFleet()
	if err != nil {
		return fmt.Errorf("opponent fleet generation failed: %w", err)
	}

	e.opponentBoard = board
	e.opponentFleet = fleet
	e.playerBoard = core.NewBoard()
	e.playerFleet = core.NewFleet()
	e.remaining = core.FleetCounts()
	e.placed = make(map[core.ShipType]int, len(core.AllShipTypes))
	e.targeter.Reset()
	e.turn = core.SidePlayer
	e.score = 0
	e.result = GameResult{}
	e.message = msgPlaceShips
	return nil
}

// Reset starts a new session on the same engine
func (e *Engine) Reset() error {
	if err := e.setupSides(); err != nil {
		return err
	}
	if err := e.stateMachine.Reset("new game"); err != nil {
		return err
	}
	e.publisher.Publish(events.NewGameStartedEvent(e.gameID, e.username, e.opponentName))
	return nil
}

// GameID returns the session id
func (e *Engine) GameID() string { return e.gameID }

// Username returns the name the session was created for
func (e *Engine) Username() string { return e.username }

// Phase returns the current phase
func (e *Engine) Phase() states.GamePhase { return e.stateMachine.CurrentPhase() }

// Turn returns the side expected to fire next
func (e *Engine) Turn() core.Side { return e.turn }

// Score returns the player's score
func (e *Engine) Score() int { return e.score }

// Result returns the player's shooting summary
func (e *Engine) Result() GameResult { return e.result }

// IsGameOver reports whether a fleet has been destroyed
func (e *Engine) IsGameOver() bool { return e.Phase() == states.PhaseGameOver }

// Winner returns the winning side, SideNone while the game runs
func (e *Engine) Winner() core.Side { return e.gameContext.Winner }

// Elapsed returns the play time since the fleet was placed
func (e *Engine) Elapsed() time.Duration { return e.gameContext.GetElapsedTime() }

// History returns the phase transitions of this session
func (e *Engine) History() []states.Transition { return e.stateMachine.GetHistory() }

// PlaceShip places one of the player's ships during Setup.
// Rejections are *PlacementError and leave the board untouched.
func (e *Engine) PlaceShip(t core.ShipType, origin core.Coordinate, o core.Orientation) error {
	if !e.Phase().CanPlaceShips() {
		return fmt.Errorf("place ship in %s: %w", e.Phase(), ErrWrongPhase)
	}

	if err := e.checkPlacement(t, origin, o); err != nil {
		perr := &PlacementError{ShipType: t, Origin: origin, Orientation: o, Reason: err}
		e.message = msgPlacementRejected(perr)
		e.publisher.Publish(events.NewPlacementRejectedEvent(e.gameID, t, origin, o, err.Error()))
		e.logger.Debug().Err(perr).Msg("Placement rejected")
		return perr
	}

	ship := core.NewShip(core.ShipID(PlayerOwner, t, e.placed[t]), t, origin, o)
	e.addPlayerShip(ship, o)
	e.message = msgShipPlaced(t, origin, e.gameContext.ShipsToPlace)

	return e.startIfPlaced()
}

func (e *Engine) checkPlacement(t core.ShipType, origin core.Coordinate, o core.Orientation) error {
	if !t.IsValid() {
		return core.ErrUnknownShipType
	}
	if e.remaining[t] == 0 {
		return ErrAlreadyFullyPlaced
	}
	return core.CheckPlacement(e.playerBoard, origin, t.Size(), o)
}

// AutoPlace places every remaining player ship at random around the ones already placed
func (e *Engine) AutoPlace() error {
	if !e.Phase().CanPlaceShips() {
		return fmt.Errorf("auto place in %s: %w", e.Phase(), ErrWrongPhase)
	}

	ships, err := e.placer.PlaceShips(e.playerBoard, e.remaining, e.placed)
	if err != nil {
		e.message = "No room left for the remaining ships. Reset and try again."
		return err
	}

	for _, ship := range ships {
		// The generator already marked the board
		o := core.Horizontal
		if ship.Size > 1 && ship.Positions[1].Row != ship.Positions[0].Row {
			o = core.Vertical
		}
		e.registerPlayerShip(ship, o)
	}

	return e.startIfPlaced()
}

func (e *Engine) addPlayerShip(ship *core.Ship, o core.Orientation) {
	e.playerBoard.PlaceShip(ship)
	e.registerPlayerShip(ship, o)
}

func (e *Engine) registerPlayerShip(ship *core.Ship, o core.Orientation) {
	e.playerFleet.Add(ship)
	e.remaining[ship.Type]--
	e.placed[ship.Type]++
	e.gameContext.ShipsToPlace--

	e.publisher.Publish(events.NewShipPlacedEvent(e.gameID, ship, o, e.gameContext.ShipsToPlace))
	e.logger.Debug().
		Str("ship_id", ship.ID).
		Str("origin", ship.Positions[0].Label()).
		Str("orientation", o.String()).
		Int("ships_to_place", e.gameContext.ShipsToPlace).
		Msg("Ship placed")
}

func (e *Engine) startIfPlaced() error {
	if e.gameContext.ShipsToPlace > 0 {
		return nil
	}
	if err := e.stateMachine.TransitionTo(states.PhasePlaying, "fleet placed"); err != nil {
		return err
	}
	e.turn = core.SidePlayer
	e.message = msgYourTurn(e.opponentName)
	e.publisher.Publish(events.NewTurnChangedEvent(e.gameID, e.turn))
	return nil
}

// Fire resolves a player shot at the opponent's board.
// Firing at an already targeted cell is not an error; nothing changes and the
// turn stays with the player.
func (e *Engine) Fire(target core.Coordinate) (FireResult, error) {
	if !e.Phase().CanFire() {
		return FireResult{}, fmt.Errorf("fire in %s: %w", e.Phase(), ErrWrongPhase)
	}
	if e.turn != core.SidePlayer {
		return FireResult{}, ErrNotYourTurn
	}

	shot, err := core.ResolveShot(e.opponentBoard, e.opponentFleet, target)
	if err != nil {
		return FireResult{}, err
	}

	res := FireResult{Shot: shot, Side: core.SidePlayer}
	if !shot.Committed() {
		e.message = msgPlayerShot(shot, e.opponentName)
		res.Message = e.message
		return res, nil
	}

	e.result.recordPlayerShot(shot)
	e.publishShot(core.SidePlayer, shot)
	res.ScoreDelta = ShotScore(shot)
	e.addScore(res.ScoreDelta, "player "+shot.Outcome.String())
	e.message = msgPlayerShot(shot, e.opponentName)

	if over, winner := e.winCondition.CheckGameOver(e.playerFleet, e.opponentFleet); over {
		res.TimeBonus = e.finish(winner)
		res.GameOver = true
		res.Winner = winner
	} else {
		e.passTurn(core.SideOpponent)
	}

	res.Message = e.message
	return res, nil
}

// OpponentTurn lets the opponent fire at the player's board
func (e *Engine) OpponentTurn() (FireResult, error) {
	if !e.Phase().CanFire() {
		return FireResult{}, fmt.Errorf("opponent turn in %s: %w", e.Phase(), ErrWrongPhase)
	}
	if e.turn != core.SideOpponent {
		return FireResult{}, ErrNotYourTurn
	}

	target := e.targeter.NextTarget(e.playerBoard)
	shot, err := core.ResolveShot(e.playerBoard, e.playerFleet, target)
	if err != nil {
		return FireResult{}, fmt.Errorf("opponent target: %w", err)
	}

	res := FireResult{Shot: shot, Side: core.SideOpponent}
	if !shot.Committed() {
		// Only a misbehaving Targeter gets here; hand the turn back rather than stall
		e.logger.Warn().Str("target", target.Label()).Msg("Opponent fired at an already targeted cell")
		e.passTurn(core.SidePlayer)
		e.message = msgYourTurn(e.opponentName)
		res.Message = e.message
		return res, nil
	}

	e.targeter.Observe(shot, e.playerBoard)

	e.publishShot(core.SideOpponent, shot)
	res.ScoreDelta = OpponentShotScore(shot)
	e.addScore(res.ScoreDelta, "opponent "+shot.Outcome.String())
	e.message = msgOpponentShot(shot, e.opponentName)

	if over, winner := e.winCondition.CheckGameOver(e.playerFleet, e.opponentFleet); over {
		res.TimeBonus = e.finish(winner)
		res.GameOver = true
		res.Winner = winner
	} else {
		e.passTurn(core.SidePlayer)
	}

	res.Message = e.message
	return res, nil
}

func (e *Engine) publishShot(shooter core.Side, shot core.ShotResult) {
	e.publisher.Publish(events.NewShotFiredEvent(e.gameID, shooter, shot))
	if shot.Outcome == core.OutcomeHitAndSunk {
		e.publisher.Publish(events.NewShipSunkEvent(e.gameID, shooter, shot))
	}
}

func (e *Engine) addScore(delta int, reason string) {
	if delta == 0 {
		return
	}
	e.score += delta
	e.publisher.Publish(events.NewScoreChangedEvent(e.gameID, delta, e.score, reason))
}

func (e *Engine) passTurn(to core.Side) {
	e.turn = to
	e.publisher.Publish(events.NewTurnChangedEvent(e.gameID, to))
}

// finish moves to GameOver and returns the time bonus awarded, if any
func (e *Engine) finish(winner core.Side) int {
	elapsed := e.gameContext.GetElapsedTime()

	e.gameContext.Winner = winner
	if err := e.stateMachine.TransitionTo(states.PhaseGameOver, winner.String()+" won"); err != nil {
		// Playing always reaches GameOver once a winner is known
		panic(fmt.Sprintf("game over transition failed: %v", err))
	}

	e.turn = core.SideNone
	e.result.settle(winner == core.SidePlayer)

	bonus := 0
	if winner == core.SidePlayer {
		bonus = TimeBonus(elapsed)
		e.addScore(bonus, "time bonus")
		e.message = msgPlayerWon(bonus)
	} else {
		e.message = msgOpponentWon(e.opponentName)
	}

	e.publisher.Publish(events.NewGameEndedEvent(e.gameID, winner, elapsed, e.score, e.result.TotalShots, e.result.ShipsSunk))
	return bonus
}

// View returns a snapshot for rendering or transport
func (e *Engine) View() SessionView {
	remaining := make(map[core.ShipType]int, len(e.remaining))
	for t, n := range e.remaining {
		remaining[t] = n
	}

	return SessionView{
		GameID:        e.gameID,
		Username:      e.username,
		OpponentName:  e.opponentName,
		Phase:         e.Phase(),
		Turn:          e.turn,
		PlayerBoard:   e.playerBoard.Clone(),
		OpponentBoard: e.opponentBoard.Masked(),
		Remaining:     remaining,
		PlayerFleet:   summarize(e.playerFleet, false),
		OpponentFleet: summarize(e.opponentFleet, true),
		Score:         e.score,
		Elapsed:       e.gameContext.GetElapsedTime(),
		Message:       e.message,
		Result:        e.result,
		Winner:        e.gameContext.Winner,
	}
}

// Message returns the current status line
func (e *Engine) Message() string { return e.message }
