package service

import (
	"context"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/snakesladders/game/dice"
	"github.com/wricardo/mcp-training/snakesladders/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	AddPlayer(ctx context.Context, sessionID, name string) (*engine.GameState, error)
	StartGame(ctx context.Context, sessionID string) (*engine.GameState, error)
	PlayTurn(ctx context.Context, sessionID string, die int) (*TurnResult, error)
	PlayToEnd(ctx context.Context, sessionID string, maxTurns int) (*PlayResult, error)
	EndGame(ctx context.Context, sessionID string) (*EndResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetTurnHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.BoardConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.BoardConfig) error
}

// SessionOptions configures the game owned by a new session
type SessionOptions struct {
	ConfigID  string
	Seed      int64
	FinishAll bool
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.BoardConfig, opts SessionOptions) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles board configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.BoardConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.BoardConfig
	SaveConfig(name string, config *engine.BoardConfig) error
}

// Session represents an active game session
type Session struct {
	ID        string
	ConfigID  string
	Engine    *engine.GameEngine
	Config    *engine.BoardConfig
	Dice      *dice.Seeded
	Events    *EventLog
	FinishAll bool
	CreatedAt time.Time

	accessMu       sync.Mutex
	lastAccessedAt time.Time
}

// Touch records an access at the given time
func (s *Session) Touch(at time.Time) {
	s.accessMu.Lock()
	s.lastAccessedAt = at
	s.accessMu.Unlock()
}

// LastAccessed returns the time of the most recent access
func (s *Session) LastAccessed() time.Time {
	s.accessMu.Lock()
	defer s.accessMu.Unlock()
	return s.lastAccessedAt
}

// NewSession builds a session with its own engine, seeded die and event
// log. Session managers call it so every implementation wires games alike.
func NewSession(id string, config *engine.BoardConfig, opts SessionOptions) (*Session, error) {
	var engineOpts []engine.Option
	if opts.FinishAll {
		engineOpts = append(engineOpts, engine.WithFinishAll())
	}

	eng, err := engine.NewEngine(config, engineOpts...)
	if err != nil {
		return nil, err
	}

	events := NewEventLog()
	if err := eng.Subscribe(events); err != nil {
		return nil, err
	}

	configID := opts.ConfigID
	if configID == "" {
		configID = config.Name
	}

	now := time.Now()
	return &Session{
		ID:             id,
		ConfigID:       configID,
		Engine:         eng,
		Config:         config,
		Dice:           dice.NewSeeded(opts.Seed),
		Events:         events,
		FinishAll:      opts.FinishAll,
		CreatedAt:      now,
		lastAccessedAt: now,
	}, nil
}
