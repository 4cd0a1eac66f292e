// Command validate checks the board configuration JSON files in a directory
// (../configs by default, or the first argument). It checks:
//   - JSON structure and the required name
//   - Jump squares and destinations inside the track, no self jumps
//   - At least one jump
//   - Reachability: square 100 can be reached from the start
//
// Chained jumps (a destination that is itself a trigger) are reported as
// warnings, since a move only ever takes a single jump.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/mcp-training/snakesladders/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
}

// validateConfig loads and validates a single board JSON file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config engine.BoardConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	for _, chain := range engine.FindChains(config.Jumps) {
		next := config.Jumps[chain.To]
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Chain: %d -> %d is a trigger for %d -> %d; only the first jump is taken", chain.From, chain.To, chain.To, next))
	}

	board, err := engine.NewBoardFromConfig(&config)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid board: %v", err))
		return result
	}

	rolls, ok := minimumRolls(board)
	if !ok {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Reachability failure: square %d cannot be reached from the start", engine.BoardLength))
		return result
	}

	result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Snakes: %d", len(board.Snakes())))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Ladders: %d", len(board.Ladders())))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Reachability: square %d in %d rolls at best", engine.BoardLength, rolls))

	return result
}

// minimumRolls runs a breadth-first search over squares, following every die
// value from each square, and returns the fewest rolls that reach the goal
func minimumRolls(board *engine.Board) (int, bool) {
	distance := map[int]int{engine.StartPosition: 0}
	queue := []int{engine.StartPosition}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for die := engine.MinDieValue; die <= engine.MaxDieValue; die++ {
			next := board.Resolve(current, die)
			if _, seen := distance[next]; seen {
				continue
			}
			distance[next] = distance[current] + 1
			if next == engine.BoardLength {
				return distance[next], true
			}
			queue = append(queue, next)
		}
	}

	return 0, false
}

// validateDir validates every *.json file in configDir and prints a report.
// It returns false if any board is invalid.
func validateDir(configDir string) (bool, error) {
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		return false, err
	}
	if len(files) == 0 {
		return false, fmt.Errorf("no board files found in %s", configDir)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
		for _, warning := range result.Warnings {
			fmt.Println("  ⚠️  " + warning)
		}
	}

	return allValid, nil
}

// main validates the boards and exits with non-zero status if any are invalid
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	allValid, err := validateDir(configDir)
	if err != nil {
		fmt.Printf("Error finding board files: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All boards are valid!")
	} else {
		fmt.Println("❌ Some boards have errors")
		os.Exit(1)
	}
}
