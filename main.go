// Command snakesladders plays Snakes and Ladders.
//
// It supports four commands:
//  1. "play" – interactive game on the terminal
//  2. "simulate" – automated game with a fixed seed and player list
//  3. "mcp" – MCP stdio server exposing game sessions as tools
//  4. "boards" – list the boards found in the config directory
//
// Defaults come from the environment (and an optional .env file); flags
// override them.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/snakesladders/game/config"
	"github.com/wricardo/mcp-training/snakesladders/game/dice"
	"github.com/wricardo/mcp-training/snakesladders/game/engine"
	"github.com/wricardo/mcp-training/snakesladders/game/service"
	"github.com/wricardo/mcp-training/snakesladders/game/session"
	"github.com/wricardo/mcp-training/snakesladders/transport/console"
	"github.com/wricardo/mcp-training/snakesladders/transport/mcp"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Snakes and Ladders"
)

// cleanupInterval is how often expired MCP sessions are pruned
const cleanupInterval = time.Hour

// main loads settings and runs the selected command.
func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(settings).Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

// newApp builds the command tree with flag defaults taken from settings
func newApp(settings *config.Settings) *cli.Command {
	return &cli.Command{
		Name:    "snakesladders",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config-dir",
				Value: settings.ConfigDir,
				Usage: "directory containing board configurations",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Value: settings.Debug,
				Usage: "enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				log.SetFlags(log.LstdFlags | log.Lshortfile)
			} else {
				log.SetFlags(log.LstdFlags)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "play an interactive game on the terminal",
				Flags:  gameFlags(settings),
				Action: runPlay,
			},
			{
				Name:  "simulate",
				Usage: "play an automated game and print every turn",
				Flags: append(gameFlags(settings),
					&cli.StringSliceFlag{
						Name:    "players",
						Aliases: []string{"p"},
						Value:   []string{"alice", "bob"},
						Usage:   "player names in turn order",
					},
					&cli.IntFlag{
						Name:  "max-turns",
						Value: settings.MaxTurns,
						Usage: "stop the simulation after this many turns",
					},
				),
				Action: runSimulate,
			},
			{
				Name:  "mcp",
				Usage: "serve game sessions as MCP tools over stdio",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "max-turns",
						Value: settings.MaxTurns,
						Usage: "cap for play_to_end",
					},
					&cli.DurationFlag{
						Name:  "session-ttl",
						Value: settings.SessionTTL,
						Usage: "remove sessions idle for longer than this",
					},
				},
				Action: runMCP,
			},
			{
				Name:   "boards",
				Usage:  "list available boards",
				Action: runBoards,
			},
		},
	}
}

// gameFlags are shared by the commands that start a game
func gameFlags(settings *config.Settings) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "board",
			Aliases: []string{"b"},
			Value:   config.DefaultConfigName,
			Usage:   "board to play on (see the boards command)",
		},
		&cli.Int64Flag{
			Name:  "seed",
			Value: settings.Seed,
			Usage: "dice seed, 0 picks a random seed",
		},
		&cli.BoolFlag{
			Name:  "finish-all",
			Usage: "keep playing until every player finishes",
		},
	}
}

// initializeServices wires the session and config managers into a game service.
func initializeServices(configDir string, logger *log.Logger) (service.GameService, *session.Manager, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	sessionManager := session.NewManager()
	gameService := service.NewGameService(sessionManager, configManager, logger)
	return gameService, sessionManager, nil
}

func runPlay(ctx context.Context, cmd *cli.Command) error {
	configManager, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return fmt.Errorf("failed to create config manager: %w", err)
	}
	boardConfig, err := configManager.LoadConfig(cmd.String("board"))
	if err != nil {
		return err
	}
	board, err := engine.NewBoardFromConfig(boardConfig)
	if err != nil {
		return err
	}

	opts := console.Options{
		Board:     board,
		FinishAll: cmd.Bool("finish-all"),
		Logger:    log.Default(),
	}
	if seed := cmd.Int64("seed"); seed != 0 {
		opts.Dice = dice.NewSeeded(seed)
	}

	root := cmd.Root()
	_, err = console.NewShell(root.Reader, root.Writer, opts).Run(ctx)
	return err
}

func runSimulate(ctx context.Context, cmd *cli.Command) error {
	out := cmd.Root().Writer
	gameService, _, err := initializeServices(cmd.String("config-dir"), log.Default())
	if err != nil {
		return err
	}

	info, err := gameService.CreateSession(ctx, service.CreateSessionRequest{
		ConfigName: cmd.String("board"),
		Seed:       cmd.Int64("seed"),
		FinishAll:  cmd.Bool("finish-all"),
	})
	if err != nil {
		return err
	}

	for _, name := range cmd.StringSlice("players") {
		if _, err := gameService.AddPlayer(ctx, info.ID, name); err != nil {
			return fmt.Errorf("adding player %q: %w", name, err)
		}
	}
	if _, err := gameService.StartGame(ctx, info.ID); err != nil {
		return err
	}

	fmt.Fprintf(out, "Board: %s | Seed: %d | Players: %s\n",
		info.ConfigName, info.Seed, strings.Join(cmd.StringSlice("players"), ", "))

	result, err := gameService.PlayToEnd(ctx, info.ID, cmd.Int("max-turns"))
	if err != nil {
		return err
	}
	for i := range result.Turns {
		turn := &result.Turns[i]
		fmt.Fprintf(out, "#%d %s\n", turn.Number, service.FormatMove(turn.Player, service.TurnMove(turn)))
	}

	switch result.StoppedReason {
	case "game_over":
	case "turn_limit":
		return fmt.Errorf("%w: no winner after %d turns", engine.ErrTurnLimit, result.TurnsPlayed)
	default:
		return errors.New(result.Error)
	}

	end, err := gameService.EndGame(ctx, info.ID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, end.Message)
	for i, p := range end.Standings {
		fmt.Fprintf(out, "%d. %s (%d)\n", i+1, p.Name, p.Position)
	}
	return nil
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	logger := log.Default()
	gameService, sessionManager, err := initializeServices(cmd.String("config-dir"), logger)
	if err != nil {
		return err
	}

	if ttl := cmd.Duration("session-ttl"); ttl > 0 {
		go sessionManager.RunCleanup(ctx, ttl, cleanupInterval, logger)
	}

	log.Printf("Starting %s v%s (mode: mcp stdio)", AppName, Version)
	server := mcp.NewServer(gameService, logger, cmd.Int("max-turns"))
	root := cmd.Root()
	return server.ServeStdio(ctx, root.Reader, root.Writer)
}

func runBoards(ctx context.Context, cmd *cli.Command) error {
	out := cmd.Root().Writer
	configManager, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return fmt.Errorf("failed to create config manager: %w", err)
	}

	configs, err := configManager.ListConfigs()
	if err != nil {
		return err
	}
	if len(configs) == 0 {
		fmt.Fprintln(out, "No boards found")
		return nil
	}

	for _, info := range configs {
		fmt.Fprintf(out, "%-12s %-28s snakes=%d ladders=%d\n", info.ConfigID, info.Name, info.Snakes, info.Ladders)
		if info.Description != "" {
			fmt.Fprintf(out, "             %s\n", info.Description)
		}
	}
	return nil
}
