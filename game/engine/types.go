package engine

import "time"

// Phase represents the lifecycle stage of a game
type Phase string

const (
	PhaseSetup   Phase = "setup"
	PhaseRunning Phase = "running"
	PhaseEnded   Phase = "ended"
	PhaseClosed  Phase = "closed"
)

// MoveKind classifies the outcome of a single resolved move
type MoveKind string

const (
	MoveStep      MoveKind = "step"
	MoveLadder    MoveKind = "ladder"
	MoveSnake     MoveKind = "snake"
	MoveOvershoot MoveKind = "overshoot"
	MoveFinish    MoveKind = "finish"
)

const (
	// Board constants
	BoardLength   = 100
	StartPosition = 0
	MinJumpSquare = 1
	MaxJumpSquare = BoardLength - 1

	// Die constants
	MinDieValue = 1
	MaxDieValue = 6
)

// Jump is a single entry of the board's jump table
type Jump struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// IsLadder reports whether the jump moves the token forward
func (j Jump) IsLadder() bool {
	return j.To > j.From
}

// IsSnake reports whether the jump moves the token backward
func (j Jump) IsSnake() bool {
	return j.To < j.From
}

// Move is the full result of resolving a die roll from a position
type Move struct {
	From   int      `json:"from"`
	Die    int      `json:"die"`
	Target int      `json:"target"`
	To     int      `json:"to"`
	Kind   MoveKind `json:"kind"`
}

// BoardConfig represents a board definition loaded from JSON
type BoardConfig struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Jumps       map[int]int `json:"jumps"`
}

// PlayerState is a read-only snapshot of a player
type PlayerState struct {
	Name      string `json:"name"`
	Order     int    `json:"order"`
	Position  int    `json:"position"`
	Completed bool   `json:"completed"`
	Rank      int    `json:"rank,omitempty"`
}

// TurnRecord represents a single applied turn in the game history
type TurnRecord struct {
	Number    int      `json:"number"`
	Pass      int      `json:"pass"`
	Player    string   `json:"player"`
	Order     int      `json:"order"`
	Die       int      `json:"die"`
	From      int      `json:"from"`
	Target    int      `json:"target"`
	To        int      `json:"to"`
	Kind      MoveKind `json:"kind"`
	Completed bool     `json:"completed"`
	Timestamp int64    `json:"timestamp"`
}

// GameState represents a complete snapshot of a game
type GameState struct {
	Phase         Phase         `json:"phase"`
	BoardName     string        `json:"board_name"`
	Players       []PlayerState `json:"players"`
	CurrentPlayer string        `json:"current_player,omitempty"`
	Pass          int           `json:"pass"`
	TotalTurns    int           `json:"total_turns"`
	Winner        string        `json:"winner,omitempty"`
	FinishOrder   []string      `json:"finish_order,omitempty"`
	LastTurn      *TurnRecord   `json:"last_turn,omitempty"`
}

// EventType identifies an engine notification
type EventType string

const (
	EventPlayerAdded     EventType = "player_added"
	EventGameStarted     EventType = "game_started"
	EventTurnStarted     EventType = "turn_started"
	EventPositionChanged EventType = "position_changed"
	EventPlayerCompleted EventType = "player_completed"
	EventGameEnded       EventType = "game_ended"
)

// Event is a notification sent to observers. Events never control the game.
type Event struct {
	Type      EventType `json:"type"`
	Player    string    `json:"player,omitempty"`
	Turn      int       `json:"turn,omitempty"`
	Move      *Move     `json:"move,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
