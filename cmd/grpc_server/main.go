package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/mitchelldurbincs/battleship/internal/config"
	"github.com/mitchelldurbincs/battleship/internal/grpc/gameserver"
	"github.com/mitchelldurbincs/battleship/internal/monitoring"
	"github.com/mitchelldurbincs/battleship/internal/verify"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	port := flag.Int("port", -1, "The server port (-1 to use config default)")
	host := flag.String("host", "", "The server host (empty to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	turnDelay := flag.Int("turn-delay", -1, "Opponent turn delay in milliseconds (-1 to use config default)")
	maxGames := flag.Int("max-games", -1, "Maximum concurrent games (-1 to use config default)")
	enableReflection := flag.Bool("enable-reflection", false, "Enable gRPC reflection for debugging")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}

	// Flags override the config file
	if *port != -1 {
		config.Set("server.grpc_server.port", *port)
	}
	if *host != "" {
		config.Set("server.grpc_server.host", *host)
	}
	if *logLevel != "" {
		config.Set("server.grpc_server.log_level", *logLevel)
	}
	if *turnDelay != -1 {
		config.Set("game.turn_delay_ms", *turnDelay)
	}
	if *maxGames != -1 {
		config.Set("server.grpc_server.max_games", *maxGames)
	}
	if *enableReflection {
		config.Set("server.grpc_server.enable_reflection", true)
	}

	cfg := config.Get()

	// Setup logging
	setupLogging(cfg.Server.GRPCServer.LogLevel, cfg.Server.LogFormat)

	managerCfg := gameserver.ManagerConfigFrom(cfg)
	log.Info().
		Int("port", cfg.Server.GRPCServer.Port).
		Str("host", cfg.Server.GRPCServer.Host).
		Dur("turn_delay", managerCfg.TurnDelay).
		Int("max_games", managerCfg.MaxGames).
		Msg("Starting battleship gRPC server")

	// Create listener
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", cfg.Server.GRPCServer.Host, cfg.Server.GRPCServer.Port))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to listen")
	}

	opts := []gameserver.Option{gameserver.WithLogger(log.Logger)}
	verifier, err := verify.NewClientFromConfig(cfg.Verifier, log.Logger)
	switch {
	case errors.Is(err, verify.ErrDisabled):
		log.Info().Msg("Result verification disabled")
	case err != nil:
		log.Fatal().Err(err).Msg("Failed to create verifier client")
	default:
		log.Info().Str("endpoint", verifier.Endpoint()).Msg("Result verification enabled")
		opts = append(opts, gameserver.WithVerifier(verifier))
	}

	gm := gameserver.NewGameManager(managerCfg, opts...)
	gm.Start()

	monitor := monitoring.NewMonitor(monitoring.DefaultConfig(), log.Logger)
	monitor.Register("active_games", gm.ActiveGames)
	monitor.Register("pending_opponent_moves", gm.PendingOpponentMoves)
	monitor.Start()

	grpcServer := grpc.NewServer(gameserver.ServerOptions(log.Logger)...)

	// Register game service
	gameserver.RegisterBattleshipServiceServer(grpcServer, gameserver.NewServer(gm, log.Logger))

	// Register health service
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(gameserver.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	// Register reflection service for debugging
	if cfg.Server.GRPCServer.EnableReflection {
		reflection.Register(grpcServer)
		log.Info().Msg("gRPC reflection enabled")
	}

	// Session limits are read once at startup; a reload only affects new engines
	if config.ConfigFilePath() != "" {
		config.WatchConfig(func(err error) {
			if err != nil {
				log.Warn().Err(err).Msg("Ignoring invalid config change")
				return
			}
			log.Info().Str("file", config.ConfigFilePath()).Msg("Config reloaded")
		})
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
		healthServer.SetServingStatus(gameserver.ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

		// Give ongoing requests time to complete
		time.Sleep(time.Duration(cfg.Server.GRPCServer.GracefulShutdownDelay) * time.Second)

		log.Info().Msg("Gracefully stopping gRPC server")
		grpcServer.GracefulStop()
		gm.Stop()
		monitor.Stop()
		cancel()
	}()

	log.Info().Str("address", lis.Addr().String()).Msg("gRPC server listening")

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatal().Err(err).Msg("Failed to serve")
		}
	}()

	<-ctx.Done()
	log.Info().Int("active_games", gm.ActiveGames()).Msg("Server shutdown complete")
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" || os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
}
