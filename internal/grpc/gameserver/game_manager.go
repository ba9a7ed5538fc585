package gameserver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/battleship/internal/config"
	"github.com/mitchelldurbincs/battleship/internal/game"
	"github.com/mitchelldurbincs/battleship/internal/game/core"
	"github.com/mitchelldurbincs/battleship/internal/game/events"
	"github.com/mitchelldurbincs/battleship/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/battleship/internal/verify"
)

var (
	ErrGameNotFound     = errors.New("game not found")
	ErrServerAtCapacity = errors.New("server at capacity")
	ErrGameNotOver      = errors.New("game is not over")
	ErrSubmitInProgress = errors.New("result submission already in progress")
)

// ManagerConfig holds the session limits of a GameManager
type ManagerConfig struct {
	MaxGames             int           // zero means unlimited
	TurnDelay            time.Duration // pause before the opponent answers; zero answers inline
	FinishedGameTTL      time.Duration
	AbandonedGameTimeout time.Duration
	CleanupInterval      time.Duration
}

// ManagerConfigFrom reads the manager settings from the application config
func ManagerConfigFrom(c *config.Config) ManagerConfig {
	s := c.Server.GRPCServer
	return ManagerConfig{
		MaxGames:             s.MaxGames,
		TurnDelay:            c.Game.TurnDelay(),
		FinishedGameTTL:      time.Duration(s.FinishedGameTTLSec) * time.Second,
		AbandonedGameTimeout: time.Duration(s.AbandonedGameTimeout) * time.Second,
		CleanupInterval:      time.Duration(s.CleanupIntervalSec) * time.Second,
	}
}

// EngineFactory builds the engine of a new session
type EngineFactory func(gameID, username string, publisher events.Publisher) (*game.Engine, error)

// DefaultEngineFactory builds engines from the application config
func DefaultEngineFactory(logger zerolog.Logger) EngineFactory {
	return func(gameID, username string, publisher events.Publisher) (*game.Engine, error) {
		cfg := game.DefaultEngineConfig(logger)
		cfg.GameID = gameID
		cfg.Username = username
		cfg.Publisher = publisher
		return game.NewEngine(cfg)
	}
}

// Option customizes a GameManager
type Option func(*GameManager)

// WithEngineFactory replaces the engine constructor
func WithEngineFactory(f EngineFactory) Option {
	return func(gm *GameManager) { gm.newEngine = f }
}

// WithVerifier sets the client used by SubmitResult
func WithVerifier(s verify.Submitter) Option {
	return func(gm *GameManager) { gm.verifier = s }
}

// WithClock sets the clock used for activity tracking and cleanup
func WithClock(now func() time.Time) Option {
	return func(gm *GameManager) { gm.now = now }
}

// WithLogger sets the manager logger
func WithLogger(logger zerolog.Logger) Option {
	return func(gm *GameManager) { gm.logger = logger }
}

type gameInstance struct {
	id       string
	username string
	engine   *game.Engine
	eventBus *events.EventBus
	mu       sync.Mutex // single writer for everything below

	// Activity tracking for cleanup
	createdAt    time.Time
	lastActivity time.Time

	opponentTimer *time.Timer
	receipt       *verify.Receipt
	submitting    bool
	idempotency   *IdempotencyManager
}

// FireOutcome is a player shot and, when it was answered inline, the opponent's reply
type FireOutcome struct {
	Player   game.FireResult
	Opponent *game.FireResult
	View     game.SessionView
}

// GameManager owns every live session
type GameManager struct {
	mu        sync.RWMutex
	games     map[string]*gameInstance
	cfg       ManagerConfig
	newEngine EngineFactory
	verifier  verify.Submitter
	logger    zerolog.Logger
	now       func() time.Time

	running  bool
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewGameManager creates a manager. Call Start to run periodic cleanup.
func NewGameManager(cfg ManagerConfig, opts ...Option) *GameManager {
	gm := &GameManager{
		games:  make(map[string]*gameInstance),
		cfg:    cfg,
		logger: zerolog.Nop(),
		now:    time.Now,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(gm)
	}
	gm.logger = gm.logger.With().Str("component", "GameManager").Logger()
	if gm.newEngine == nil {
		gm.newEngine = DefaultEngineFactory(gm.logger)
	}
	return gm
}

// CreateGame starts a session for username in the Setup phase
func (gm *GameManager) CreateGame(username string) (string, game.SessionView, error) {
	gm.mu.RLock()
	currentGames := len(gm.games)
	gm.mu.RUnlock()

	if gm.cfg.MaxGames > 0 && currentGames >= gm.cfg.MaxGames {
		gm.logger.Warn().
			Int("current_games", currentGames).
			Int("max_games", gm.cfg.MaxGames).
			Msg("Rejecting game creation - server at capacity")
		return "", game.SessionView{}, fmt.Errorf("%w: %d/%d games active", ErrServerAtCapacity, currentGames, gm.cfg.MaxGames)
	}

	gameID := uuid.NewString()

	eventBus := events.NewEventBusWithLogger(gm.logger)
	eventBus.Subscribe(subscribers.NewLoggerSubscriber("session-log", gm.logger, zerolog.DebugLevel))

	engine, err := gm.newEngine(gameID, username, eventBus)
	if err != nil {
		return "", game.SessionView{}, fmt.Errorf("create engine: %w", err)
	}

	now := gm.now()
	g := &gameInstance{
		id:           gameID,
		username:     username,
		engine:       engine,
		eventBus:     eventBus,
		createdAt:    now,
		lastActivity: now,
		idempotency:  NewIdempotencyManager(gm.now),
	}

	gm.mu.Lock()
	// Re-check under the write lock; another create may have raced us
	if gm.cfg.MaxGames > 0 && len(gm.games) >= gm.cfg.MaxGames {
		gm.mu.Unlock()
		return "", game.SessionView{}, fmt.Errorf("%w: %d/%d games active", ErrServerAtCapacity, len(gm.games), gm.cfg.MaxGames)
	}
	gm.games[gameID] = g
	active := len(gm.games)
	gm.mu.Unlock()

	gm.logger.Info().
		Str("game_id", gameID).
		Str("username", username).
		Int("active_games", active).
		Msg("Created game session")

	return gameID, engine.View(), nil
}

func (gm *GameManager) getGame(gameID string) (*gameInstance, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	g, ok := gm.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return g, nil
}

// withGame runs fn with the session locked and its activity refreshed
func (gm *GameManager) withGame(gameID string, fn func(g *gameInstance) error) error {
	g, err := gm.getGame(gameID)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastActivity = gm.now()
	return fn(g)
}

// GetGame returns the current view of a session
func (gm *GameManager) GetGame(gameID string) (game.SessionView, error) {
	var view game.SessionView
	err := gm.withGame(gameID, func(g *gameInstance) error {
		view = g.engine.View()
		return nil
	})
	return view, err
}

// PlaceShip places one player ship
func (gm *GameManager) PlaceShip(gameID string, t core.ShipType, at core.Coordinate, o core.Orientation) (game.SessionView, error) {
	var view game.SessionView
	err := gm.withGame(gameID, func(g *gameInstance) error {
		err := g.engine.PlaceShip(t, at, o)
		view = g.engine.View()
		return err
	})
	return view, err
}

// AutoPlace places every remaining player ship at random
func (gm *GameManager) AutoPlace(gameID string) (game.SessionView, error) {
	var view game.SessionView
	err := gm.withGame(gameID, func(g *gameInstance) error {
		err := g.engine.AutoPlace()
		view = g.engine.View()
		return err
	})
	return view, err
}

// Fire resolves a player shot and lets the opponent answer
func (gm *GameManager) Fire(gameID string, at core.Coordinate) (FireOutcome, error) {
	var out FireOutcome
	err := gm.withGame(gameID, func(g *gameInstance) error {
		var err error
		out, err = gm.fireLocked(g, at)
		return err
	})
	return out, err
}

// FireOnce is Fire with a request id: a repeated id returns the encoded
// response of the first call without firing again
func (gm *GameManager) FireOnce(gameID, requestID string, at core.Coordinate, encode func(FireOutcome) (*structpb.Struct, error)) (*structpb.Struct, error) {
	var resp *structpb.Struct
	err := gm.withGame(gameID, func(g *gameInstance) error {
		if cached := g.idempotency.Check(requestID); cached != nil {
			gm.logger.Debug().Str("game_id", g.id).Str("request_id", requestID).Msg("Returning cached fire response")
			resp = cached
			return nil
		}

		out, err := gm.fireLocked(g, at)
		if err != nil {
			return err
		}
		resp, err = encode(out)
		if err != nil {
			return err
		}
		g.idempotency.Store(requestID, resp)
		return nil
	})
	return resp, err
}

func (gm *GameManager) fireLocked(g *gameInstance, at core.Coordinate) (FireOutcome, error) {
	res, err := g.engine.Fire(at)
	if err != nil {
		return FireOutcome{}, err
	}

	out := FireOutcome{Player: res}
	if res.Shot.Committed() && !res.GameOver {
		out.Opponent = gm.scheduleOpponentLocked(g)
	}
	out.View = g.engine.View()
	return out, nil
}

// scheduleOpponentLocked answers inline when there is no turn delay and
// returns the reply; otherwise it arms a timer and returns nil
func (gm *GameManager) scheduleOpponentLocked(g *gameInstance) *game.FireResult {
	if g.engine.Turn() != core.SideOpponent {
		return nil
	}

	if gm.cfg.TurnDelay <= 0 {
		res, err := g.engine.OpponentTurn()
		if err != nil {
			gm.logger.Error().Err(err).Str("game_id", g.id).Msg("Opponent turn failed")
			return nil
		}
		return &res
	}

	if g.opponentTimer != nil {
		g.opponentTimer.Stop()
	}
	g.opponentTimer = time.AfterFunc(gm.cfg.TurnDelay, func() {
		defer func() {
			if r := recover(); r != nil {
				gm.logger.Error().
					Interface("panic", r).
					Str("game_id", g.id).
					Msg("Opponent timer goroutine panicked")
			}
		}()

		g.mu.Lock()
		defer g.mu.Unlock()
		g.opponentTimer = nil
		if g.engine.Turn() != core.SideOpponent {
			return
		}
		if _, err := g.engine.OpponentTurn(); err != nil {
			gm.logger.Error().Err(err).Str("game_id", g.id).Msg("Opponent turn failed")
		}
	})
	return nil
}

// GetResult returns the player's shooting summary so far
func (gm *GameManager) GetResult(gameID string) (game.GameResult, error) {
	var result game.GameResult
	err := gm.withGame(gameID, func(g *gameInstance) error {
		result = g.engine.Result()
		return nil
	})
	return result, err
}

// SubmitResult sends a finished game's result to the verifier.
// A session submits at most once; later calls return the first receipt.
// A call made while another is waiting on the verifier gets ErrSubmitInProgress.
func (gm *GameManager) SubmitResult(ctx context.Context, gameID string) (*verify.Receipt, error) {
	var (
		result   game.GameResult
		username string
		bus      *events.EventBus
		cached   *verify.Receipt
	)
	err := gm.withGame(gameID, func(g *gameInstance) error {
		if !g.engine.IsGameOver() {
			return ErrGameNotOver
		}
		if g.receipt != nil {
			cached = g.receipt
			return nil
		}
		if gm.verifier == nil {
			return verify.ErrDisabled
		}
		if g.submitting {
			return ErrSubmitInProgress
		}
		g.submitting = true
		result = g.engine.Result()
		username = g.username
		bus = g.eventBus
		return nil
	})
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}

	// The session stays unlocked during the network call
	receipt, err := gm.verifier.Submit(ctx, username, result)

	// The session may have been ended meanwhile; the receipt is still returned
	_ = gm.withGame(gameID, func(g *gameInstance) error {
		g.submitting = false
		if err == nil && g.receipt == nil {
			g.receipt = receipt
		}
		return nil
	})

	if err != nil {
		bus.Publish(events.NewResultSubmittedEvent(gameID, username, "", err))
		return nil, err
	}
	bus.Publish(events.NewResultSubmittedEvent(gameID, username, receipt.ProofHash, nil))
	return receipt, nil
}

// EndGame discards a session
func (gm *GameManager) EndGame(gameID string) error {
	gm.mu.Lock()
	g, ok := gm.games[gameID]
	if ok {
		delete(gm.games, gameID)
	}
	gm.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	g.mu.Lock()
	g.stopTimerLocked()
	g.mu.Unlock()

	gm.logger.Info().Str("game_id", gameID).Msg("Game ended by client")
	return nil
}

func (g *gameInstance) stopTimerLocked() {
	if g.opponentTimer != nil {
		g.opponentTimer.Stop()
		g.opponentTimer = nil
	}
}

// ActiveGames returns the number of live sessions
func (gm *GameManager) ActiveGames() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

// PendingOpponentMoves returns how many sessions wait on an opponent timer
func (gm *GameManager) PendingOpponentMoves() int {
	gm.mu.RLock()
	games := make([]*gameInstance, 0, len(gm.games))
	for _, g := range gm.games {
		games = append(games, g)
	}
	gm.mu.RUnlock()

	n := 0
	for _, g := range games {
		g.mu.Lock()
		if g.opponentTimer != nil {
			n++
		}
		g.mu.Unlock()
	}
	return n
}

// Start runs periodic cleanup until Stop is called
func (gm *GameManager) Start() {
	gm.mu.Lock()
	if gm.running {
		gm.mu.Unlock()
		return
	}
	gm.running = true
	gm.mu.Unlock()

	interval := gm.cfg.CleanupInterval
	if interval <= 0 {
		close(gm.done)
		return
	}
	go gm.runCleanup(interval)
}

// Stop ends the cleanup loop and cancels pending opponent moves
func (gm *GameManager) Stop() {
	gm.stopOnce.Do(func() {
		close(gm.stop)

		gm.mu.RLock()
		running := gm.running
		gm.mu.RUnlock()
		if running {
			<-gm.done
		}

		gm.mu.RLock()
		defer gm.mu.RUnlock()
		for _, g := range gm.games {
			g.mu.Lock()
			g.stopTimerLocked()
			g.mu.Unlock()
		}
	})
}

// runCleanup periodically removes finished and abandoned games
func (gm *GameManager) runCleanup(interval time.Duration) {
	defer close(gm.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-gm.stop:
			return
		case <-ticker.C:
			gm.safeCleanup()
		}
	}
}

func (gm *GameManager) safeCleanup() {
	defer func() {
		if r := recover(); r != nil {
			gm.logger.Error().
				Interface("panic", r).
				Msg("Game cleanup panicked")
		}
	}()
	gm.cleanupGames()
}

// cleanupGames removes finished and abandoned games from memory
func (gm *GameManager) cleanupGames() int {
	// Phase 1: collect references without holding the manager lock while taking game locks
	gm.mu.RLock()
	gameRefs := make([]*gameInstance, 0, len(gm.games))
	for _, g := range gm.games {
		gameRefs = append(gameRefs, g)
	}
	gm.mu.RUnlock()

	// Phase 2: check each game independently
	now := gm.now()
	type removal struct {
		id           string
		reason       string
		createdAt    time.Time
		lastActivity time.Time
	}
	var toDelete []removal

	for _, g := range gameRefs {
		g.mu.Lock()

		reason := ""
		idle := now.Sub(g.lastActivity)
		if g.engine.IsGameOver() {
			if gm.cfg.FinishedGameTTL > 0 && idle > gm.cfg.FinishedGameTTL {
				reason = "finished game TTL expired"
			}
		} else if gm.cfg.AbandonedGameTimeout > 0 && idle > gm.cfg.AbandonedGameTimeout {
			reason = "game abandoned (no activity)"
		}

		if reason != "" {
			g.stopTimerLocked()
			toDelete = append(toDelete, removal{g.id, reason, g.createdAt, g.lastActivity})
		}
		g.mu.Unlock()
	}

	if len(toDelete) == 0 {
		return 0
	}

	// Phase 3: remove under the manager lock
	gm.mu.Lock()
	for _, r := range toDelete {
		delete(gm.games, r.id)
	}
	remaining := len(gm.games)
	gm.mu.Unlock()

	for _, r := range toDelete {
		gm.logger.Info().
			Str("game_id", r.id).
			Str("reason", r.reason).
			Time("created_at", r.createdAt).
			Time("last_activity", r.lastActivity).
			Msg("Cleaned up game")
	}
	gm.logger.Debug().Int("removed", len(toDelete)).Int("remaining", remaining).Msg("Cleanup pass complete")

	return len(toDelete)
}
