// Command analyze prints quick, human-readable statistics about the boards in
// the project's configs directory. For each board it plays a batch of seeded
// single-player games and summarizes how many turns a game takes and how
// often snakes, ladders and wasted rolls come up.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/wricardo/mcp-training/snakesladders/game/config"
	"github.com/wricardo/mcp-training/snakesladders/game/dice"
	"github.com/wricardo/mcp-training/snakesladders/game/engine"
)

const (
	defaultGames = 1000
	defaultSeed  = 1
	// maxGameTurns bounds a single simulated game
	maxGameTurns = 5000
)

// Analysis summarizes a batch of simulated games on one board
type Analysis struct {
	Board      string
	Games      int
	MinTurns   int
	MaxTurns   int
	AvgTurns   float64
	Snakes     int
	Ladders    int
	Overshoots int
}

func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	if err := analyzeDir(configDir, defaultGames, defaultSeed); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// analyzeDir analyzes every board in configDir and prints a report
func analyzeDir(configDir string, games int, seed int64) error {
	manager, err := config.NewManager(configDir)
	if err != nil {
		return err
	}

	boards, err := manager.ListConfigs()
	if err != nil {
		return err
	}

	for _, info := range boards {
		fmt.Printf("\n=== Analyzing %s ===\n", info.Filename)

		boardConfig, err := manager.LoadConfig(info.ConfigID)
		if err != nil {
			fmt.Printf("Error loading board: %v\n", err)
			continue
		}

		analysis, err := analyzeBoard(boardConfig, games, seed)
		if err != nil {
			fmt.Printf("Error analyzing board: %v\n", err)
			continue
		}
		printAnalysis(analysis, info.Snakes, info.Ladders)
	}
	return nil
}

// analyzeBoard plays games single-player games. Game i rolls a die seeded
// with seed+i, so the same arguments always give the same analysis.
func analyzeBoard(boardConfig *engine.BoardConfig, games int, seed int64) (*Analysis, error) {
	board, err := engine.NewBoardFromConfig(boardConfig)
	if err != nil {
		return nil, err
	}
	if games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", games)
	}

	analysis := &Analysis{Board: board.Name(), Games: games}
	totalTurns := 0
	for i := 0; i < games; i++ {
		history, err := playSolo(board, seed+int64(i))
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", i+1, err)
		}

		turns := len(history)
		totalTurns += turns
		if analysis.MinTurns == 0 || turns < analysis.MinTurns {
			analysis.MinTurns = turns
		}
		if turns > analysis.MaxTurns {
			analysis.MaxTurns = turns
		}

		for _, turn := range history {
			switch turn.Kind {
			case engine.MoveSnake:
				analysis.Snakes++
			case engine.MoveLadder:
				analysis.Ladders++
			case engine.MoveOvershoot:
				analysis.Overshoots++
			}
		}
	}

	analysis.AvgTurns = float64(totalTurns) / float64(games)
	return analysis, nil
}

// playSolo plays one single-player game to the end and returns its turns
func playSolo(board *engine.Board, seed int64) ([]engine.TurnRecord, error) {
	game := engine.NewEngineWithBoard(board, engine.WithMaxTurns(maxGameTurns))
	defer game.Cleanup()

	if err := game.AddPlayer("solo"); err != nil {
		return nil, err
	}
	if err := game.StartGame(dice.NewSeeded(seed)); err != nil {
		return nil, err
	}
	if _, err := game.Run(context.Background()); err != nil {
		return nil, err
	}
	return game.GetTurnHistory(), nil
}

func printAnalysis(a *Analysis, snakes, ladders int) {
	fmt.Printf("Name: %s\n", a.Board)
	fmt.Printf("Snakes: %d, Ladders: %d\n", snakes, ladders)
	fmt.Printf("Games: %d\n", a.Games)
	fmt.Printf("Turns: avg %.1f, min %d, max %d\n", a.AvgTurns, a.MinTurns, a.MaxTurns)
	fmt.Printf("Per game: %.2f snakes, %.2f ladders, %.2f wasted rolls\n",
		float64(a.Snakes)/float64(a.Games),
		float64(a.Ladders)/float64(a.Games),
		float64(a.Overshoots)/float64(a.Games))

	if a.AvgTurns > 100 {
		fmt.Printf("⚠️  WARNING: games on this board run long\n")
	} else {
		fmt.Printf("✅ Average game length looks reasonable\n")
	}
}
