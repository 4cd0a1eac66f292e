package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	ErrEmptyPlayerName = errors.New("player name cannot be empty")
	ErrNoPlayers       = errors.New("no players registered")
	ErrInvalidDieValue = errors.New("invalid die value")
	ErrNoRollSource    = errors.New("roll source is required")
	ErrGameStarted     = errors.New("game already started")
	ErrGameNotRunning  = errors.New("game is not running")
	ErrGameNotEnded    = errors.New("game has not ended")
	ErrEngineClosed    = errors.New("engine state has been cleaned up")
	ErrTurnInProgress  = errors.New("turn already in progress")
	ErrTurnLimit       = errors.New("turn limit reached")
)

// RollSource supplies die values to the engine. Roll may block, for example
// while waiting on a human; it is the only call during a turn that may.
type RollSource interface {
	Roll(ctx context.Context) (int, error)
}

// RollFunc adapts a function to RollSource
type RollFunc func(ctx context.Context) (int, error)

// Roll calls f
func (f RollFunc) Roll(ctx context.Context) (int, error) {
	return f(ctx)
}

// Observer receives engine notifications for display purposes.
//
// OnEvent runs synchronously on the goroutine that caused the event. During a
// turn that goroutine holds the turn lock, so OnEvent must not call PlayTurn,
// PlayTurnWithRoll or Run on the same engine. Read accessors such as GetState
// are safe.
type Observer interface {
	OnEvent(event Event)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(event Event)

// OnEvent calls f
func (f ObserverFunc) OnEvent(event Event) {
	f(event)
}

// Option configures a GameEngine
type Option func(*GameEngine)

// WithFinishAll keeps the game running until every player has completed.
// Completed players are skipped; the first finisher is still the winner.
func WithFinishAll() Option {
	return func(e *GameEngine) {
		e.finishAll = true
	}
}

// WithMaxTurns bounds Run to n turns. Zero means unlimited.
func WithMaxTurns(n int) Option {
	return func(e *GameEngine) {
		if n > 0 {
			e.maxTurns = n
		}
	}
}

// Engine provides the main interface for game operations
type Engine interface {
	// Registration and lifecycle
	AddPlayer(name string) error
	StartGame(rolls RollSource) error
	EndGame() (string, error)
	Cleanup()

	// Turns
	PlayTurn(ctx context.Context) (*TurnRecord, error)
	PlayTurnWithRoll(ctx context.Context, die int) (*TurnRecord, error)
	Run(ctx context.Context) (string, error)

	// Observation
	Subscribe(observer Observer) error
	GetState() *GameState
	GetPhase() Phase
	GetPlayers() []PlayerState
	GetWinner() (string, bool)
	GetTurnHistory() []TurnRecord
	GetLastTurn() *TurnRecord
	GetBoard() *Board
}

// GameEngine implements the Engine interface.
//
// The default rule halts the game at the first completion, in the middle of
// a pass: players after the winner in turn order do not get their turn in
// that pass. This is intentional and matches the game being modelled.
type GameEngine struct {
	board     *Board
	finishAll bool
	maxTurns  int

	// turnMu serializes whole turns, including the wait for a die value.
	// mu guards the state below and is never held while waiting.
	turnMu sync.Mutex
	mu     sync.RWMutex

	phase       Phase
	players     []*Player
	ranks       []int
	finishOrder []int
	rolls       RollSource
	cursor      int
	pass        int
	turns       int
	history     []TurnRecord
	observers   []Observer
}

// NewEngine creates a new game engine for the provided board configuration
func NewEngine(config *BoardConfig, opts ...Option) (*GameEngine, error) {
	board, err := NewBoardFromConfig(config)
	if err != nil {
		return nil, err
	}
	return NewEngineWithBoard(board, opts...), nil
}

// NewEngineWithBoard creates a new game engine on an existing board
func NewEngineWithBoard(board *Board, opts ...Option) *GameEngine {
	if board == nil {
		board = DefaultBoard()
	}

	e := &GameEngine{
		board: board,
		phase: PhaseSetup,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewEngineWithDefaults creates a new game engine on the classic board
func NewEngineWithDefaults(opts ...Option) *GameEngine {
	return NewEngineWithBoard(DefaultBoard(), opts...)
}

// AddPlayer registers a player. Registration order is turn order.
func (e *GameEngine) AddPlayer(name string) error {
	e.mu.Lock()
	if err := e.checkPhase(PhaseSetup); err != nil {
		e.mu.Unlock()
		if errors.Is(err, ErrGameNotRunning) {
			err = ErrGameStarted
		}
		return err
	}

	player, err := NewPlayer(name)
	if err != nil {
		e.mu.Unlock()
		return err
	}

	e.players = append(e.players, player)
	e.ranks = append(e.ranks, 0)
	observers := e.copyObservers()
	e.mu.Unlock()

	notify(observers, Event{Type: EventPlayerAdded, Player: player.Name(), Timestamp: time.Now()})
	return nil
}

// StartGame moves the engine from setup to running with the given die source
func (e *GameEngine) StartGame(rolls RollSource) error {
	e.mu.Lock()
	if err := e.checkPhase(PhaseSetup); err != nil {
		e.mu.Unlock()
		if errors.Is(err, ErrGameNotRunning) {
			err = ErrGameStarted
		}
		return err
	}
	if rolls == nil {
		e.mu.Unlock()
		return ErrNoRollSource
	}
	if len(e.players) == 0 {
		e.mu.Unlock()
		return ErrNoPlayers
	}

	e.rolls = rolls
	e.phase = PhaseRunning
	e.pass = 1
	e.cursor = 0
	observers := e.copyObservers()
	e.mu.Unlock()

	notify(observers, Event{Type: EventGameStarted, Timestamp: time.Now()})
	return nil
}

// PlayTurn executes one turn for the next eligible player using the die
// source supplied to StartGame
func (e *GameEngine) PlayTurn(ctx context.Context) (*TurnRecord, error) {
	return e.playTurn(ctx, nil)
}

// PlayTurnWithRoll executes one turn for the next eligible player with an
// externally supplied die value
func (e *GameEngine) PlayTurnWithRoll(ctx context.Context, die int) (*TurnRecord, error) {
	return e.playTurn(ctx, RollFunc(func(context.Context) (int, error) {
		return die, nil
	}))
}

func (e *GameEngine) playTurn(ctx context.Context, rolls RollSource) (*TurnRecord, error) {
	e.turnMu.Lock()
	defer e.turnMu.Unlock()

	e.mu.RLock()
	if err := e.checkPhase(PhaseRunning); err != nil {
		e.mu.RUnlock()
		return nil, err
	}
	idx, pass := e.nextPlayer()
	name := e.players[idx].Name()
	turn := e.turns + 1
	if rolls == nil {
		rolls = e.rolls
	}
	observers := e.copyObservers()
	e.mu.RUnlock()

	notify(observers, Event{Type: EventTurnStarted, Player: name, Turn: turn, Timestamp: time.Now()})

	// Suspension point: nothing is mutated until a valid die arrives
	die, err := rolls.Roll(ctx)
	if err != nil {
		return nil, fmt.Errorf("rolling die for %s: %w", name, err)
	}
	if !ValidDieValue(die) {
		return nil, fmt.Errorf("%w: %d is outside %d..%d", ErrInvalidDieValue, die, MinDieValue, MaxDieValue)
	}

	e.mu.Lock()
	// Cleanup may have run while the roll was pending
	if err := e.checkPhase(PhaseRunning); err != nil {
		e.mu.Unlock()
		return nil, err
	}

	player := e.players[idx]
	var move Move
	completed, err := player.Play(func(current int) (int, error) {
		move = e.board.Move(current, die)
		return move.To, nil
	}, BoardLength)
	if err != nil {
		e.mu.Unlock()
		return nil, err
	}

	e.turns++
	record := TurnRecord{
		Number:    e.turns,
		Pass:      pass,
		Player:    name,
		Order:     idx,
		Die:       die,
		From:      move.From,
		Target:    move.Target,
		To:        move.To,
		Kind:      move.Kind,
		Completed: completed,
		Timestamp: time.Now().Unix(),
	}
	e.history = append(e.history, record)

	e.pass = pass
	e.cursor = idx + 1
	if e.cursor >= len(e.players) {
		e.cursor = 0
		e.pass++
	}

	now := time.Now()
	events := []Event{{Type: EventPositionChanged, Player: name, Turn: record.Number, Move: &move, Timestamp: now}}
	if completed && e.ranks[idx] == 0 {
		e.finishOrder = append(e.finishOrder, idx)
		e.ranks[idx] = len(e.finishOrder)
		events = append(events, Event{Type: EventPlayerCompleted, Player: name, Turn: record.Number, Timestamp: now})

		if !e.finishAll || len(e.finishOrder) == len(e.players) {
			e.phase = PhaseEnded
			winner := e.players[e.finishOrder[0]].Name()
			events = append(events, Event{Type: EventGameEnded, Player: winner, Turn: record.Number, Timestamp: now})
		}
	}
	observers = e.copyObservers()
	e.mu.Unlock()

	notify(observers, events...)
	return &record, nil
}

// Run plays turns until the game ends and returns the winner's name. It
// stops at the first error; an invalid die value aborts the loop.
func (e *GameEngine) Run(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		e.mu.RLock()
		phase, turns := e.phase, e.turns
		e.mu.RUnlock()

		if phase == PhaseEnded {
			winner, _ := e.GetWinner()
			return winner, nil
		}
		if e.maxTurns > 0 && turns >= e.maxTurns {
			return "", fmt.Errorf("%w: %d turns played", ErrTurnLimit, turns)
		}

		if _, err := e.PlayTurn(ctx); err != nil {
			return "", err
		}
	}
}

// EndGame reports the winner and clears the engine's per-game state
func (e *GameEngine) EndGame() (string, error) {
	e.mu.RLock()
	if e.phase == PhaseClosed {
		e.mu.RUnlock()
		return "", ErrEngineClosed
	}
	if e.phase != PhaseEnded {
		e.mu.RUnlock()
		return "", ErrGameNotEnded
	}
	winner := e.players[e.finishOrder[0]].Name()
	e.mu.RUnlock()

	e.Cleanup()
	return winner, nil
}

// Cleanup drops players, history, subscriptions and the die source. The
// board is kept; the engine itself cannot be reused afterwards.
func (e *GameEngine) Cleanup() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.players = nil
	e.ranks = nil
	e.finishOrder = nil
	e.history = nil
	e.observers = nil
	e.rolls = nil
	e.cursor = 0
	e.phase = PhaseClosed
}

// Subscribe registers an observer for engine events
func (e *GameEngine) Subscribe(observer Observer) error {
	if observer == nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase == PhaseClosed {
		return ErrEngineClosed
	}
	e.observers = append(e.observers, observer)
	return nil
}

// GetState returns a snapshot of the game
func (e *GameEngine) GetState() *GameState {
	e.mu.RLock()
	defer e.mu.RUnlock()

	state := &GameState{
		Phase:       e.phase,
		BoardName:   e.board.Name(),
		Players:     e.playerStates(),
		Pass:        e.pass,
		TotalTurns:  e.turns,
		FinishOrder: e.finishNames(),
	}

	if e.phase == PhaseRunning {
		if idx, _ := e.nextPlayer(); idx >= 0 {
			state.CurrentPlayer = e.players[idx].Name()
		}
	}
	if len(e.finishOrder) > 0 {
		state.Winner = e.players[e.finishOrder[0]].Name()
	}
	if len(e.history) > 0 {
		last := e.history[len(e.history)-1]
		state.LastTurn = &last
	}

	return state
}

// GetPhase returns the current lifecycle phase
func (e *GameEngine) GetPhase() Phase {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.phase
}

// GetPlayers returns snapshots of all players in turn order
func (e *GameEngine) GetPlayers() []PlayerState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.playerStates()
}

// GetWinner returns the first player to complete, if any
func (e *GameEngine) GetWinner() (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.finishOrder) == 0 {
		return "", false
	}
	return e.players[e.finishOrder[0]].Name(), true
}

// GetTurnHistory returns every applied turn in order
func (e *GameEngine) GetTurnHistory() []TurnRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()

	history := make([]TurnRecord, len(e.history))
	copy(history, e.history)
	return history
}

// GetLastTurn returns the last applied turn, or nil if none
func (e *GameEngine) GetLastTurn() *TurnRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.history) == 0 {
		return nil
	}
	last := e.history[len(e.history)-1]
	return &last
}

// GetBoard returns the engine's board
func (e *GameEngine) GetBoard() *Board {
	return e.board
}

// checkPhase must be called with mu held
func (e *GameEngine) checkPhase(want Phase) error {
	if e.phase == want {
		return nil
	}
	if e.phase == PhaseClosed {
		return ErrEngineClosed
	}
	return ErrGameNotRunning
}

// nextPlayer finds the next player that has not completed, starting at the
// cursor, and the pass that turn belongs to. Must be called with mu held.
func (e *GameEngine) nextPlayer() (int, int) {
	n := len(e.players)
	for i := 0; i < n; i++ {
		idx, pass := e.cursor+i, e.pass
		if idx >= n {
			idx -= n
			pass++
		}
		if !e.players[idx].Completed() {
			return idx, pass
		}
	}
	return -1, e.pass
}

func (e *GameEngine) playerStates() []PlayerState {
	states := make([]PlayerState, len(e.players))
	for i, p := range e.players {
		states[i] = p.snapshot(i, e.ranks[i])
	}
	return states
}

func (e *GameEngine) finishNames() []string {
	if len(e.finishOrder) == 0 {
		return nil
	}
	names := make([]string, len(e.finishOrder))
	for i, idx := range e.finishOrder {
		names[i] = e.players[idx].Name()
	}
	return names
}

func (e *GameEngine) copyObservers() []Observer {
	if len(e.observers) == 0 {
		return nil
	}
	observers := make([]Observer, len(e.observers))
	copy(observers, e.observers)
	return observers
}

func notify(observers []Observer, events ...Event) {
	for _, event := range events {
		for _, o := range observers {
			o.OnEvent(event)
		}
	}
}
