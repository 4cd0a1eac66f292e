package service

import (
	"time"

	"github.com/wricardo/mcp-training/snakesladders/game/engine"
)

// DefaultMaxTurns bounds PlayToEnd when the caller does not
const DefaultMaxTurns = 10000

// CreateSessionRequest describes a new game session
type CreateSessionRequest struct {
	ConfigName string `json:"config_name"`
	Seed       int64  `json:"seed,omitempty"` // 0 picks a random seed
	FinishAll  bool   `json:"finish_all,omitempty"`
}

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string              `json:"id"`
	ConfigName     string              `json:"config_name"`
	Seed           int64               `json:"seed"`
	FinishAll      bool                `json:"finish_all"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	GameState      *engine.GameState   `json:"game_state"`
	BoardConfig    *engine.BoardConfig `json:"board_config"`
}

// TurnResult contains the result of a single turn
type TurnResult struct {
	Turn      *engine.TurnRecord `json:"turn"`
	GameState *engine.GameState  `json:"game_state"`
	Message   string             `json:"message"`
	Events    []GameEvent        `json:"events,omitempty"`
	GameOver  bool               `json:"game_over"`
}

// PlayResult contains the result of playing several turns in one call
type PlayResult struct {
	TurnsPlayed   int                 `json:"turns_played"`
	Turns         []engine.TurnRecord `json:"turns"`
	Winner        string              `json:"winner,omitempty"`
	GameOver      bool                `json:"game_over"`
	StoppedReason string              `json:"stopped_reason,omitempty"` // game_over|turn_limit|error
	Error         string              `json:"error,omitempty"`
	Limit         int                 `json:"limit"`
	GameState     *engine.GameState   `json:"game_state"`
}

// EndResult contains the final standings of a finished game
type EndResult struct {
	SessionID  string               `json:"session_id"`
	Winner     string               `json:"winner"`
	TotalTurns int                  `json:"total_turns"`
	Standings  []engine.PlayerState `json:"standings"`
	Message    string               `json:"message"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string    `json:"type"` // see engine.EventType
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Player    string    `json:"player,omitempty"`
	Turn      int       `json:"turn,omitempty"`
}

// HistoryOptions configures turn history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated turn history
type HistoryResponse struct {
	Turns       []engine.TurnRecord `json:"turns"`
	TotalTurns  int                 `json:"total_turns"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// ConfigInfo provides information about a board configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Snakes      int    `json:"snakes"`
	Ladders     int    `json:"ladders"`
}
