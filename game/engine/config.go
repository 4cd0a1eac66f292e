package engine

import (
	"encoding/json"
	"fmt"
)

// ValidateBoardConfig validates a board configuration for correctness
func ValidateBoardConfig(config *BoardConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is required")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if len(config.Jumps) == 0 {
		return fmt.Errorf("config validation: jumps must contain at least one entry")
	}
	return validateJumps(config.Jumps)
}

// validateJumps checks the jump table bounds. The last square can never be a
// trigger, and no jump may point at its own trigger.
func validateJumps(jumps map[int]int) error {
	for from, to := range jumps {
		if from < MinJumpSquare || from > MaxJumpSquare {
			return fmt.Errorf("config validation: jump trigger %d must be between %d and %d", from, MinJumpSquare, MaxJumpSquare)
		}
		if to < MinJumpSquare || to > MaxJumpSquare {
			return fmt.Errorf("config validation: jump from %d has destination %d outside %d..%d", from, to, MinJumpSquare, MaxJumpSquare)
		}
		if from == to {
			return fmt.Errorf("config validation: jump at %d points to itself", from)
		}
	}
	return nil
}

// FindChains returns the jumps whose destination is itself a trigger square.
// The engine resolves a single hop per move, so chained entries never fire
// in sequence.
func FindChains(jumps map[int]int) []Jump {
	var chains []Jump
	for from, to := range jumps {
		if _, ok := jumps[to]; ok {
			chains = append(chains, Jump{From: from, To: to})
		}
	}
	sortJumps(chains)
	return chains
}

// ParseBoardConfig decodes and validates a JSON board configuration
func ParseBoardConfig(data []byte) (*BoardConfig, error) {
	var config BoardConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateBoardConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultBoardConfig returns the classic jump table
func DefaultBoardConfig() *BoardConfig {
	return &BoardConfig{
		Name:        "classic",
		Description: "Classic board with five snakes and five ladders",
		Jumps: map[int]int{
			4:  23, // ladder
			97: 49, // snake
			82: 65, // snake
			43: 21, // snake
			59: 8,  // snake
			91: 37, // snake
			86: 90, // ladder
			41: 62, // ladder
			28: 53, // ladder
			62: 98, // ladder
		},
	}
}
