package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wricardo/mcp-training/snakesladders/game/dice"
)

// newTestEngine creates an engine on the test board with the given players
func newTestEngine(t *testing.T, players ...string) *GameEngine {
	t.Helper()
	engine, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	for _, name := range players {
		if err := engine.AddPlayer(name); err != nil {
			t.Fatalf("Failed to add player %s: %v", name, err)
		}
	}
	return engine
}

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create new engine: %v", err)
	}

	if engine.GetPhase() != PhaseSetup {
		t.Errorf("Expected phase %s, got %s", PhaseSetup, engine.GetPhase())
	}
	if len(engine.GetPlayers()) != 0 {
		t.Errorf("Expected no players, got %d", len(engine.GetPlayers()))
	}
	if _, ok := engine.GetWinner(); ok {
		t.Error("Expected no winner initially")
	}
	if engine.GetLastTurn() != nil {
		t.Error("Expected no last turn initially")
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	config := createTestConfig()
	config.Name = ""

	if _, err := NewEngine(config); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestNewEngineWithDefaults(t *testing.T) {
	engine := NewEngineWithDefaults()
	if engine.GetBoard().Name() != "classic" {
		t.Errorf("Expected classic board, got %s", engine.GetBoard().Name())
	}

	if NewEngineWithBoard(nil).GetBoard() == nil {
		t.Error("Expected nil board to fall back to the default board")
	}
}

func TestEngine_AddPlayer(t *testing.T) {
	engine := newTestEngine(t, "alice")

	if err := engine.AddPlayer("   "); !errors.Is(err, ErrEmptyPlayerName) {
		t.Errorf("Expected ErrEmptyPlayerName, got %v", err)
	}
	if len(engine.GetPlayers()) != 1 {
		t.Errorf("Expected rejected registration to leave 1 player, got %d", len(engine.GetPlayers()))
	}

	// Duplicate names are allowed; players are identified by turn order
	if err := engine.AddPlayer("alice"); err != nil {
		t.Errorf("Expected duplicate name to be accepted, got %v", err)
	}

	if err := engine.StartGame(dice.NewSequence(1)); err != nil {
		t.Fatalf("Failed to start game: %v", err)
	}
	if err := engine.AddPlayer("late"); !errors.Is(err, ErrGameStarted) {
		t.Errorf("Expected ErrGameStarted after start, got %v", err)
	}
}

func TestEngine_StartGame(t *testing.T) {
	t.Run("no players", func(t *testing.T) {
		engine := newTestEngine(t)
		if err := engine.StartGame(dice.NewSequence()); !errors.Is(err, ErrNoPlayers) {
			t.Errorf("Expected ErrNoPlayers, got %v", err)
		}
		if engine.GetPhase() != PhaseSetup {
			t.Errorf("Expected engine to stay in setup, got %s", engine.GetPhase())
		}

		// Recoverable: add a player and retry
		if err := engine.AddPlayer("alice"); err != nil {
			t.Fatalf("Failed to add player: %v", err)
		}
		if err := engine.StartGame(dice.NewSequence()); err != nil {
			t.Errorf("Expected start to succeed after adding a player, got %v", err)
		}
	})

	t.Run("nil roll source", func(t *testing.T) {
		engine := newTestEngine(t, "alice")
		if err := engine.StartGame(nil); !errors.Is(err, ErrNoRollSource) {
			t.Errorf("Expected ErrNoRollSource, got %v", err)
		}
	})

	t.Run("start twice", func(t *testing.T) {
		engine := newTestEngine(t, "alice")
		if err := engine.StartGame(dice.NewSequence()); err != nil {
			t.Fatalf("Failed to start game: %v", err)
		}
		if err := engine.StartGame(dice.NewSequence()); !errors.Is(err, ErrGameStarted) {
			t.Errorf("Expected ErrGameStarted, got %v", err)
		}
	})

	t.Run("turn before start", func(t *testing.T) {
		engine := newTestEngine(t, "alice")
		if _, err := engine.PlayTurnWithRoll(context.Background(), 3); !errors.Is(err, ErrGameNotRunning) {
			t.Errorf("Expected ErrGameNotRunning, got %v", err)
		}
	})
}

func TestEngine_SinglePlayerScenario(t *testing.T) {
	engine := NewEngineWithDefaults()
	if err := engine.AddPlayer("solo"); err != nil {
		t.Fatalf("Failed to add player: %v", err)
	}

	rolls := dice.NewSequence(4, 6, 6, 6, 6, 6, 6, 6, 6, 4, 1)
	if err := engine.StartGame(rolls); err != nil {
		t.Fatalf("Failed to start game: %v", err)
	}

	ctx := context.Background()
	record, err := engine.PlayTurn(ctx)
	if err != nil {
		t.Fatalf("First turn failed: %v", err)
	}
	if record.Target != 4 || record.To != 23 || record.Kind != MoveLadder {
		t.Errorf("Expected ladder 4->23, got target=%d to=%d kind=%s", record.Target, record.To, record.Kind)
	}

	record, err = engine.PlayTurn(ctx)
	if err != nil {
		t.Fatalf("Second turn failed: %v", err)
	}
	if record.From != 23 || record.To != 29 || record.Kind != MoveStep {
		t.Errorf("Expected step 23->29, got %d->%d (%s)", record.From, record.To, record.Kind)
	}

	winner, err := engine.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if winner != "solo" {
		t.Errorf("Expected winner 'solo', got '%s'", winner)
	}

	expected := []int{23, 29, 35, 62, 68, 74, 80, 90, 96, 100}
	history := engine.GetTurnHistory()
	if len(history) != len(expected) {
		t.Fatalf("Expected %d turns, got %d", len(expected), len(history))
	}
	for i, to := range expected {
		if history[i].To != to {
			t.Errorf("Turn %d: expected position %d, got %d", i+1, to, history[i].To)
		}
	}

	// The last value was never requested
	if rolls.Remaining() != 1 {
		t.Errorf("Expected 1 unused roll after the game ended, got %d", rolls.Remaining())
	}
	if engine.GetPhase() != PhaseEnded {
		t.Errorf("Expected phase %s, got %s", PhaseEnded, engine.GetPhase())
	}
	if _, err := engine.PlayTurn(ctx); !errors.Is(err, ErrGameNotRunning) {
		t.Errorf("Expected ErrGameNotRunning after the game ended, got %v", err)
	}
}

func TestEngine_TurnOrderIsStable(t *testing.T) {
	engine := newTestEngine(t, "A", "B", "C")
	if err := engine.StartGame(dice.NewSequence(2, 2, 2, 3, 3, 3)); err != nil {
		t.Fatalf("Failed to start game: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 6; i++ {
		if _, err := engine.PlayTurn(ctx); err != nil {
			t.Fatalf("Turn %d failed: %v", i+1, err)
		}
	}

	expected := []struct {
		player string
		pass   int
	}{
		{"A", 1}, {"B", 1}, {"C", 1},
		{"A", 2}, {"B", 2}, {"C", 2},
	}
	history := engine.GetTurnHistory()
	for i, want := range expected {
		if history[i].Player != want.player || history[i].Pass != want.pass {
			t.Errorf("Turn %d: expected %s in pass %d, got %s in pass %d",
				i+1, want.player, want.pass, history[i].Player, history[i].Pass)
		}
		if history[i].Number != i+1 {
			t.Errorf("Turn %d: expected number %d, got %d", i+1, i+1, history[i].Number)
		}
	}

	state := engine.GetState()
	if state.CurrentPlayer != "A" {
		t.Errorf("Expected A to be next, got %s", state.CurrentPlayer)
	}
	if state.Pass != 3 {
		t.Errorf("Expected pass 3 to be next, got %d", state.Pass)
	}
}

func TestEngine_HaltsMidPassOnFirstCompletion(t *testing.T) {
	engine := newTestEngine(t, "A", "B", "C")
	// Pass 1: A 0->2, B 0->1->94 (ladder), C 0->2
	// Pass 2: A 2->4, B 94->100 wins, C must not play
	if err := engine.StartGame(dice.NewSequence(2, 1, 2, 2, 6, 5)); err != nil {
		t.Fatalf("Failed to start game: %v", err)
	}

	winner, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if winner != "B" {
		t.Fatalf("Expected B to win, got %s", winner)
	}

	history := engine.GetTurnHistory()
	if len(history) != 5 {
		t.Fatalf("Expected 5 turns, got %d", len(history))
	}
	last := history[len(history)-1]
	if last.Player != "B" || !last.Completed || last.Kind != MoveFinish {
		t.Errorf("Expected final turn to be B finishing, got %+v", last)
	}
	for _, record := range history {
		if record.Player == "C" && record.Pass == 2 {
			t.Error("Expected C to get no turn in the completing pass")
		}
	}

	players := engine.GetPlayers()
	if players[2].Position != 2 {
		t.Errorf("Expected C to stay on 2, got %d", players[2].Position)
	}
	if players[0].Completed || players[2].Completed {
		t.Error("Expected only B to be completed")
	}
	if players[1].Rank != 1 {
		t.Errorf("Expected B to have rank 1, got %d", players[1].Rank)
	}
}

func TestEngine_OvershootWastesRoll(t *testing.T) {
	engine := newTestEngine(t, "A")
	if err := engine.StartGame(dice.NewSequence(1, 6, 6, 1)); err != nil {
		t.Fatalf("Failed to start game: %v", err)
	}

	ctx := context.Background()
	// 0 -> 1 -> 94 (ladder), then 94 + 6 = 100
	engine.PlayTurn(ctx)
	record, err := engine.PlayTurn(ctx)
	if err != nil {
		t.Fatalf("Turn failed: %v", err)
	}
	if record.To != 100 || !record.Completed {
		t.Fatalf("Expected exact landing on 100, got %+v", record)
	}

	engine2 := newTestEngine(t, "A")
	engine2.StartGame(dice.NewSequence(1, 1, 6))
	engine2.PlayTurn(ctx) // 94
	engine2.PlayTurn(ctx) // 95
	record, err = engine2.PlayTurn(ctx)
	if err != nil {
		t.Fatalf("Turn failed: %v", err)
	}
	if record.Kind != MoveOvershoot || record.To != 95 || record.Target != 101 {
		t.Errorf("Expected overshoot from 95, got %+v", record)
	}
	if engine2.GetPhase() != PhaseRunning {
		t.Errorf("Expected game to keep running after overshoot, got %s", engine2.GetPhase())
	}
}

func TestEngine_InvalidDieValue(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit roll", func(t *testing.T) {
		engine := newTestEngine(t, "A", "B")
		engine.StartGame(dice.NewSequence())

		for _, die := range []int{0, 7, -1} {
			if _, err := engine.PlayTurnWithRoll(ctx, die); !errors.Is(err, ErrInvalidDieValue) {
				t.Errorf("Expected ErrInvalidDieValue for %d, got %v", die, err)
			}
		}

		state := engine.GetState()
		if state.TotalTurns != 0 || state.CurrentPlayer != "A" {
			t.Errorf("Expected untouched state, got turns=%d current=%s", state.TotalTurns, state.CurrentPlayer)
		}
		for _, p := range state.Players {
			if p.Position != StartPosition {
				t.Errorf("Expected %s on start, got %d", p.Name, p.Position)
			}
		}
	})

	t.Run("source aborts run", func(t *testing.T) {
		engine := newTestEngine(t, "A")
		engine.StartGame(dice.NewSequence(2, 9, 3))

		_, err := engine.Run(ctx)
		if !errors.Is(err, ErrInvalidDieValue) {
			t.Fatalf("Expected ErrInvalidDieValue, got %v", err)
		}
		if len(engine.GetTurnHistory()) != 1 {
			t.Errorf("Expected only the valid turn to be applied, got %d", len(engine.GetTurnHistory()))
		}
		if engine.GetPlayers()[0].Position != 2 {
			t.Errorf("Expected position 2, got %d", engine.GetPlayers()[0].Position)
		}
	})
}

func TestEngine_RollSourceError(t *testing.T) {
	engine := newTestEngine(t, "A")
	engine.StartGame(dice.NewSequence())

	_, err := engine.PlayTurn(context.Background())
	if !errors.Is(err, dice.ErrSequenceExhausted) {
		t.Errorf("Expected wrapped ErrSequenceExhausted, got %v", err)
	}
	if engine.GetState().TotalTurns != 0 {
		t.Error("Expected no turn to be recorded")
	}
}

func TestEngine_EndGameAndCleanup(t *testing.T) {
	engine := newTestEngine(t, "A", "B")

	if _, err := engine.EndGame(); !errors.Is(err, ErrGameNotEnded) {
		t.Errorf("Expected ErrGameNotEnded during setup, got %v", err)
	}

	engine.StartGame(dice.NewSequence(1, 3, 6))
	winner, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	reported, err := engine.EndGame()
	if err != nil {
		t.Fatalf("EndGame failed: %v", err)
	}
	if reported != winner || reported != "A" {
		t.Errorf("Expected winner A, got run=%s end=%s", winner, reported)
	}

	if engine.GetPhase() != PhaseClosed {
		t.Errorf("Expected phase %s, got %s", PhaseClosed, engine.GetPhase())
	}
	if len(engine.GetPlayers()) != 0 || len(engine.GetTurnHistory()) != 0 {
		t.Error("Expected players and history to be cleared")
	}
	if _, err := engine.EndGame(); !errors.Is(err, ErrEngineClosed) {
		t.Errorf("Expected ErrEngineClosed, got %v", err)
	}
	if err := engine.AddPlayer("C"); !errors.Is(err, ErrEngineClosed) {
		t.Errorf("Expected ErrEngineClosed on AddPlayer, got %v", err)
	}
	if _, err := engine.PlayTurn(context.Background()); !errors.Is(err, ErrEngineClosed) {
		t.Errorf("Expected ErrEngineClosed on PlayTurn, got %v", err)
	}

	// The board survives cleanup and can back a fresh engine
	fresh := NewEngineWithBoard(engine.GetBoard())
	if err := fresh.AddPlayer("D"); err != nil {
		t.Errorf("Expected fresh engine on reused board to accept players, got %v", err)
	}
}

func TestEngine_Observers(t *testing.T) {
	engine := NewEngineWithDefaults()

	var events []Event
	if err := engine.Subscribe(ObserverFunc(func(e Event) {
		events = append(events, e)
	})); err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	engine.AddPlayer("solo")
	engine.StartGame(dice.NewSequence(4))
	engine.PlayTurn(context.Background())

	expected := []EventType{EventPlayerAdded, EventGameStarted, EventTurnStarted, EventPositionChanged}
	if len(events) != len(expected) {
		t.Fatalf("Expected %d events, got %d: %+v", len(expected), len(events), events)
	}
	for i, typ := range expected {
		if events[i].Type != typ {
			t.Errorf("Event %d: expected %s, got %s", i, typ, events[i].Type)
		}
	}

	moved := events[3]
	if moved.Player != "solo" || moved.Move == nil || moved.Move.To != 23 || moved.Move.Kind != MoveLadder {
		t.Errorf("Unexpected position event: %+v", moved)
	}
}

func TestEngine_ObserverReadsStateDuringTurn(t *testing.T) {
	engine := newTestEngine(t, "A")

	var seen []int
	engine.Subscribe(ObserverFunc(func(e Event) {
		if e.Type == EventPositionChanged {
			seen = append(seen, engine.GetPlayers()[0].Position)
			_ = engine.GetState()
		}
	}))
	engine.StartGame(dice.NewSequence(1))

	done := make(chan error, 1)
	go func() {
		_, err := engine.PlayTurn(context.Background())
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("PlayTurn failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("PlayTurn blocked while an observer read engine state")
	}

	if len(seen) != 1 || seen[0] != 94 {
		t.Errorf("Expected the observer to see A on 94, got %v", seen)
	}
}

func TestEngine_CompletionEvents(t *testing.T) {
	engine := newTestEngine(t, "A", "B")

	var types []EventType
	engine.Subscribe(ObserverFunc(func(e Event) {
		types = append(types, e.Type)
	}))

	engine.StartGame(dice.NewSequence(1, 2, 6))
	if _, err := engine.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	n := len(types)
	if n < 3 {
		t.Fatalf("Expected completion events, got %v", types)
	}
	tail := types[n-3:]
	if tail[0] != EventPositionChanged || tail[1] != EventPlayerCompleted || tail[2] != EventGameEnded {
		t.Errorf("Expected position_changed, player_completed, game_ended at the end, got %v", tail)
	}
}
