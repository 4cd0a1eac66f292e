package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/wricardo/mcp-training/snakesladders/game/dice"
	"github.com/wricardo/mcp-training/snakesladders/game/engine"
)

var ErrConfigUnavailable = errors.New("board configuration unavailable")

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	logger   *log.Logger
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance. A nil logger uses the
// standard logger.
func NewGameService(sessions SessionManager, configs ConfigManager, logger *log.Logger) GameService {
	if logger == nil {
		logger = log.Default()
	}
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		logger:   logger,
	}
}

// CreateSession creates a new game session on the requested board
func (s *gameServiceImpl) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.BoardConfig
	configID := req.ConfigName
	if configID != "" {
		var err error
		config, err = s.configs.LoadConfig(configID)
		if err != nil {
			return nil, s.configError(configID, err)
		}
	} else {
		config = s.configs.GetDefault()
		if config == nil {
			return nil, ErrConfigUnavailable
		}
		configID = s.getConfigID(config.Name)
	}

	seed := req.Seed
	if seed == 0 {
		var err error
		if seed, err = dice.NewSeed(); err != nil {
			return nil, fmt.Errorf("failed to seed dice: %w", err)
		}
	}

	sess, err := s.sessions.Create("", config, SessionOptions{
		ConfigID:  configID,
		Seed:      seed,
		FinishAll: req.FinishAll,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Printf("[SESSION] created id=%s board=%s seed=%d finish_all=%t", sess.ID, configID, seed, req.FinishAll)
	return sessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession releases a session's game and removes it
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return fmt.Errorf("session not found: %w", err)
	}
	sess.Engine.Cleanup()

	s.logger.Printf("[SESSION] deleted id=%s", sess.ID)
	return s.sessions.Delete(sessionID)
}

// AddPlayer registers a player in a session that has not started yet
func (s *gameServiceImpl) AddPlayer(ctx context.Context, sessionID, name string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Engine.AddPlayer(name); err != nil {
		return nil, err
	}
	sess.Events.Drain()

	s.logger.Printf("[PLAYER] session=%s name=%q", sess.ID, name)
	return sess.Engine.GetState(), nil
}

// StartGame starts a session's game with its seeded die
func (s *gameServiceImpl) StartGame(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Engine.StartGame(sess.Dice); err != nil {
		return nil, err
	}
	sess.Events.Drain()

	s.logger.Printf("[START] session=%s players=%d seed=%d", sess.ID, len(sess.Engine.GetPlayers()), sess.Dice.Seed())
	return sess.Engine.GetState(), nil
}

// PlayTurn plays one turn. A die of 0 rolls the session's seeded die; any
// other value is used as the roll and must be within 1..6.
func (s *gameServiceImpl) PlayTurn(ctx context.Context, sessionID string, die int) (*TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	record, err := s.playTurn(ctx, sess, die)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.GetState()
	return &TurnResult{
		Turn:      record,
		GameState: state,
		Message:   FormatMove(record.Player, TurnMove(record)),
		Events:    sess.Events.Drain(),
		GameOver:  state.Phase == engine.PhaseEnded,
	}, nil
}

// PlayToEnd plays turns with the seeded die until the game ends, maxTurns
// turns have been played or a turn fails
func (s *gameServiceImpl) PlayToEnd(ctx context.Context, sessionID string, maxTurns int) (*PlayResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	if maxTurns <= 0 || maxTurns > DefaultMaxTurns {
		maxTurns = DefaultMaxTurns
	}

	result := &PlayResult{Limit: maxTurns, Turns: []engine.TurnRecord{}}
	for result.TurnsPlayed < maxTurns {
		if sess.Engine.GetPhase() == engine.PhaseEnded {
			break
		}

		record, err := s.playTurn(ctx, sess, 0)
		if err != nil {
			if result.TurnsPlayed == 0 {
				return nil, err
			}
			result.StoppedReason = "error"
			result.Error = err.Error()
			break
		}
		result.Turns = append(result.Turns, *record)
		result.TurnsPlayed++
	}
	sess.Events.Drain()

	state := sess.Engine.GetState()
	result.GameState = state
	result.Winner = state.Winner
	result.GameOver = state.Phase == engine.PhaseEnded
	switch {
	case result.GameOver:
		result.StoppedReason = "game_over"
	case result.StoppedReason == "":
		result.StoppedReason = "turn_limit"
	}

	s.logger.Printf("[PLAY] session=%s turns=%d stopped=%s winner=%q", sess.ID, result.TurnsPlayed, result.StoppedReason, result.Winner)
	return result, nil
}

// EndGame reports the final standings of a finished game, then releases the
// game and removes the session
func (s *gameServiceImpl) EndGame(ctx context.Context, sessionID string) (*EndResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.GetState()
	winner, err := sess.Engine.EndGame()
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Delete(sess.ID); err != nil {
		s.logger.Printf("[END] failed to remove session %s: %v", sess.ID, err)
	}

	s.logger.Printf("[END] session=%s winner=%q turns=%d", sess.ID, winner, state.TotalTurns)
	return &EndResult{
		SessionID:  sess.ID,
		Winner:     winner,
		TotalTurns: state.TotalTurns,
		Standings:  engine.CalculateStandings(state.Players),
		Message:    fmt.Sprintf("Game completed! %s wins after %d turns", winner, state.TotalTurns),
	}, nil
}

// GetGameState returns the current state of a session's game
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.GetState(), nil
}

// GetTurnHistory returns paginated turn history
func (s *gameServiceImpl) GetTurnHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.GetTurnHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	turns := []engine.TurnRecord{}
	if start < total {
		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				turns = append(turns, history[i])
			}
		} else {
			turns = append(turns, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Turns:       turns,
		TotalTurns:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available board configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific board configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.BoardConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a board configuration
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.BoardConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// playTurn must be called with mu held
func (s *gameServiceImpl) playTurn(ctx context.Context, sess *Session, die int) (*engine.TurnRecord, error) {
	var (
		record *engine.TurnRecord
		err    error
	)
	if die == 0 {
		record, err = sess.Engine.PlayTurn(ctx)
	} else {
		record, err = sess.Engine.PlayTurnWithRoll(ctx, die)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Printf("[TURN] session=%s player=%s die=%d %d->%d kind=%s",
		sess.ID, record.Player, record.Die, record.From, record.To, record.Kind)
	return record, nil
}

// getSession looks up a session and marks it as accessed
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// getConfigID returns the config_id for a board display name
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	return configName
}

// configError adds the available board IDs to a failed board lookup
func (s *gameServiceImpl) configError(configID string, err error) error {
	availableConfigs, listErr := s.configs.ListConfigs()
	if listErr != nil || len(availableConfigs) == 0 {
		return fmt.Errorf("failed to load config %s: %w", configID, err)
	}

	var configIDs []string
	for _, cfg := range availableConfigs {
		if cfg.ConfigID == configID {
			return fmt.Errorf("failed to load config %s: %w", configID, err)
		}
		configIDs = append(configIDs, cfg.ConfigID)
	}
	return fmt.Errorf("config '%s' not found. Available configs: %v: %w", configID, configIDs, err)
}

func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     sess.ConfigID,
		Seed:           sess.Dice.Seed(),
		FinishAll:      sess.FinishAll,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessed(),
		GameState:      sess.Engine.GetState(),
		BoardConfig:    sess.Config,
	}
}
