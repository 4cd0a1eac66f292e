package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wricardo/mcp-training/snakesladders/game/config"
	"github.com/wricardo/mcp-training/snakesladders/game/engine"
	"github.com/wricardo/mcp-training/snakesladders/game/service"
)

// Session management

func (s *Server) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info, err := s.service.CreateSession(ctx, service.CreateSessionRequest{
		ConfigName: request.GetString("config_name", ""),
		Seed:       int64(request.GetFloat("seed", 0)),
		FinishAll:  request.GetBool("finish_all", false),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nBoard: %s\nSeed: %d\n\nNext: add_player, then start_game.",
		info.ID, info.ConfigName, info.Seed)
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := s.service.ListSessions(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(sessions) == 0 {
		return mcp.NewToolResultText("No active sessions"), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", len(sessions))
	for _, info := range sessions {
		result += fmt.Sprintf("• %s | board: %s | phase: %s | players: %d | turns: %d\n",
			info.ID, info.ConfigName, info.GameState.Phase, len(info.GameState.Players), info.GameState.TotalTurns)
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	info, err := s.service.GetSession(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSessionInfo(info)), nil
}

func (s *Server) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.service.DeleteSession(ctx, sessionID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted session: %s", sessionID)), nil
}

// Game operations

func (s *Server) handleAddPlayer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state, err := s.service.AddPlayer(ctx, sessionID, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("New player added: %s\n\n%s", name, formatGameState(state))), nil
}

func (s *Server) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state, err := s.service.StartGame(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Starting the game\n\n" + formatGameState(state)), nil
}

func (s *Server) handleRollDice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.PlayTurn(ctx, sessionID, request.GetInt("die", 0))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatTurnResult(result)), nil
}

func (s *Server) handlePlayToEnd(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	maxTurns := request.GetInt("max_turns", s.maxTurns)
	if maxTurns <= 0 || maxTurns > s.maxTurns {
		maxTurns = s.maxTurns
	}

	result, err := s.service.PlayToEnd(ctx, sessionID, maxTurns)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatPlayResult(result)), nil
}

func (s *Server) handleEndGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.EndGame(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatEndResult(result)), nil
}

// Game state

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state, err := s.service.GetGameState(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatGameState(state)), nil
}

func (s *Server) handleTurnHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	history, err := s.service.GetTurnHistory(ctx, sessionID, service.HistoryOptions{
		Page:  request.GetInt("page", 1),
		Limit: request.GetInt("limit", 20),
		Order: request.GetString("order", "desc"),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatHistory(history)), nil
}

// Boards and help

func (s *Server) handleListBoards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	configs, err := s.service.ListConfigs(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Boards:\n\n"
	for _, info := range configs {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Snakes: %d, Ladders: %d\n\n",
			info.ConfigID, info.Name, info.Description, info.Snakes, info.Ladders)
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleDescribeSquare(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	square, err := request.RequireInt("square")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if square < engine.StartPosition || square > engine.BoardLength {
		return mcp.NewToolResultError(fmt.Sprintf("Square %d is out of range. Squares run from %d to %d",
			square, engine.StartPosition, engine.BoardLength)), nil
	}

	configName := request.GetString("config_name", config.DefaultConfigName)
	boardConfig, err := s.service.LoadConfig(ctx, configName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	board, err := engine.NewBoardFromConfig(boardConfig)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Square %d on %s: %s", square, configName, engine.DescribeSquare(board, square))
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `Snakes and Ladders - Complete Instructions

GAME OBJECTIVE:
Be the first player to land exactly on square 100.

GAME MECHANICS:
• Every player starts off the board on square 0
• Players take turns in the order they were added
• Each turn rolls one six-sided die (1-6) and moves forward that many squares
• Landing on the foot of a ladder climbs to its top
• Landing on the head of a snake slides down to its tail
• Only one jump is taken per turn, even if the destination starts another jump
• A roll that would go past 100 is wasted: the player stays where they are
• The game ends the moment a player reaches 100; players after the winner in that round do not roll

SESSIONS:
• Each session has its own board and its own seeded die
• Reusing a seed with the same players replays the same game
• roll_dice accepts an explicit die value (1-6) for scripted play

TIPS:
• Use describe_square to check whether a square holds a snake or ladder
• Use turn_history to review what happened`
