// Package engine provides the core game logic for Snakes and Ladders.
//
// The engine package implements the game mechanics including:
//   - Board position resolution with a single-hop jump table
//   - Player state (position and completion)
//   - The round-robin turn loop and its lifecycle
//   - Board configuration loading and validation
//
// Core Types:
//
// Board resolves a position and die value into a new position. It is
// immutable after construction and safe to share. GameEngine owns the
// players and drives turns; it implements the Engine interface. Callers only
// ever see PlayerState, TurnRecord and GameState snapshots.
//
// Usage:
//
//	gameEngine := engine.NewEngineWithDefaults()
//	if err := gameEngine.AddPlayer("alice"); err != nil {
//		log.Fatal(err)
//	}
//	if err := gameEngine.StartGame(dice.NewSeeded(42)); err != nil {
//		log.Fatal(err)
//	}
//	winner, err := gameEngine.Run(ctx)
//
// Game Rules:
//
// Each turn the active player rolls one die (1..6). Landing exactly on 100
// wins, a roll that would pass 100 is wasted, landing on a jump trigger moves
// the token to the jump destination, anything else is a plain step. Players
// move in registration order. The game halts as soon as one player finishes,
// even in the middle of a pass; players after the winner in turn order do not
// get their turn in that pass. WithFinishAll relaxes this so the remaining
// players keep playing until everyone finishes.
//
// Concurrency:
//
// Turns are serialized. Fetching the die value is the only step that may
// block, and no state changes while it does; snapshots can be read
// concurrently at any time.
package engine
