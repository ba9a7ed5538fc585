package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/battleship/internal/config"
	"github.com/mitchelldurbincs/battleship/internal/game"
	"github.com/mitchelldurbincs/battleship/internal/game/events"
	"github.com/mitchelldurbincs/battleship/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/battleship/internal/verify"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	seed := flag.Int64("seed", 0, "Random seed (0 for a time-based seed)")
	username := flag.String("username", "player", "Name recorded with the result")
	submit := flag.Bool("submit", false, "Submit the result to the verification service when the game ends")
	autoPlace := flag.Bool("auto-place", false, "Place your fleet at random")
	noColor := flag.Bool("no-color", false, "Disable ANSI colors")
	debug := flag.Bool("debug", false, "Log game events to stderr")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Get()

	level := zerolog.WarnLevel
	if *debug || cfg.Development.VerboseLogging {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.Debug().Int64("seed", *seed).Msg("Game seed")

	bus := events.NewEventBusWithLogger(log.Logger)
	bus.Subscribe(subscribers.NewLoggerSubscriber("terminal", log.Logger, zerolog.DebugLevel))

	engineCfg := game.DefaultEngineConfig(log.Logger)
	engineCfg.Username = *username
	engineCfg.Rng = rand.New(rand.NewSource(*seed))
	engineCfg.Publisher = bus

	engine, err := game.NewEngine(engineCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start game")
	}

	var verifier verify.Submitter
	if *submit {
		client, err := verify.NewClientFromConfig(cfg.Verifier, log.Logger)
		switch {
		case errors.Is(err, verify.ErrDisabled):
			fmt.Fprintln(os.Stderr, "verifier.enabled is false; results will not be submitted")
		case err != nil:
			log.Fatal().Err(err).Msg("Failed to create verifier client")
		default:
			verifier = client
		}
	}

	t := &terminal{
		engine:    engine,
		verifier:  verifier,
		turnDelay: cfg.Game.TurnDelay(),
		color:     !*noColor,
		out:       os.Stdout,
	}
	if *autoPlace {
		t.exec(command{kind: cmdAuto})
	}
	t.run(os.Stdin)
}

type terminal struct {
	engine    *game.Engine
	verifier  verify.Submitter
	turnDelay time.Duration
	color     bool
	out       io.Writer

	// receipt is set once the verifier accepts the result. autoTried stops
	// the automatic submission from repeating after a failure; the submit
	// command retries.
	receipt   *verify.Receipt
	autoTried bool
}

func (t *terminal) run(in io.Reader) {
	t.draw()
	fmt.Fprintln(t.out, `type "help" for commands`)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(t.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(t.out)
			return
		}

		cmd, err := parseCommand(scanner.Text())
		if errors.Is(err, errEmptyCommand) {
			continue
		}
		if err != nil {
			fmt.Fprintln(t.out, err)
			continue
		}
		if cmd.kind == cmdQuit {
			return
		}
		t.exec(cmd)
	}
}

func (t *terminal) exec(cmd command) {
	switch cmd.kind {
	case cmdHelp:
		fmt.Fprintln(t.out, helpText)
		return
	case cmdView:
	case cmdNew:
		if err := t.engine.Reset(); err != nil {
			fmt.Fprintln(t.out, err)
			return
		}
		t.receipt = nil
		t.autoTried = false
	case cmdPlace:
		var perr *game.PlacementError
		if err := t.engine.PlaceShip(cmd.shipType, cmd.at, cmd.orientation); err != nil && !errors.As(err, &perr) {
			fmt.Fprintln(t.out, err)
			return
		}
	case cmdAuto:
		if err := t.engine.AutoPlace(); err != nil {
			fmt.Fprintln(t.out, err)
			return
		}
	case cmdFire:
		if err := t.fire(cmd); err != nil {
			fmt.Fprintln(t.out, err)
			return
		}
	case cmdSubmit:
		t.submit()
		return
	}
	t.draw()
	t.maybeSubmit()
}

func (t *terminal) fire(cmd command) error {
	res, err := t.engine.Fire(cmd.at)
	if err != nil {
		return err
	}
	if !res.Shot.Committed() || res.GameOver {
		return nil
	}

	t.draw()
	if t.turnDelay > 0 {
		time.Sleep(t.turnDelay)
	}
	_, err = t.engine.OpponentTurn()
	return err
}

func (t *terminal) draw() {
	fmt.Fprint(t.out, "\033[H\033[2J")
	fmt.Fprintln(t.out, game.RenderView(t.engine.View(), t.color))
}

// maybeSubmit makes one automatic attempt when the game ends
func (t *terminal) maybeSubmit() {
	if t.verifier == nil || t.autoTried || t.receipt != nil || !t.engine.IsGameOver() {
		return
	}
	t.autoTried = true
	t.send()
}

func (t *terminal) submit() {
	switch {
	case t.verifier == nil:
		fmt.Fprintln(t.out, "verification is off; start with -submit and verifier.enabled")
	case !t.engine.IsGameOver():
		fmt.Fprintln(t.out, "finish the game before submitting")
	case t.receipt != nil:
		fmt.Fprintf(t.out, "Already verified  proof: %s\n", t.receipt.ProofHash)
	default:
		t.send()
	}
}

func (t *terminal) send() {
	fmt.Fprintln(t.out, "Submitting result for verification...")
	// The client enforces verifier.timeout_ms
	receipt, err := t.verifier.Submit(context.Background(), t.engine.Username(), t.engine.Result())
	if err != nil {
		fmt.Fprintf(t.out, "Verification failed: %v (type submit to retry)\n", err)
		return
	}
	t.receipt = receipt
	fmt.Fprintf(t.out, "Verified: %t  proof: %s\n", receipt.Verified, receipt.ProofHash)
}
