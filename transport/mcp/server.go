package mcp

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mcp-training/snakesladders/game/service"
)

const (
	serverName    = "Snakes and Ladders"
	serverVersion = "1.0.0"
)

// Server exposes a GameService as MCP tools
type Server struct {
	service   service.GameService
	logger    *log.Logger
	maxTurns  int
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server backed by svc. maxTurns caps play_to_end;
// zero uses service.DefaultMaxTurns.
func NewServer(svc service.GameService, logger *log.Logger, maxTurns int) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if maxTurns <= 0 {
		maxTurns = service.DefaultMaxTurns
	}

	s := &Server{
		service:  svc,
		logger:   logger,
		maxTurns: maxTurns,
	}
	s.initMCPServer()
	return s
}

// GetMCPServer returns the underlying MCP server
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP over the given streams until ctx is done or the
// input is closed
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(s.logger)
	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

func (s *Server) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Snakes and Ladders - MCP Interface

GAME OBJECTIVE:
Be the first player to land exactly on square 100.

FLOW:
1. create_session (optionally pick a board from list_boards and a seed)
2. add_player for every player, in turn order
3. start_game
4. roll_dice once per turn, or play_to_end to finish automatically
5. end_game for the final standings

AVAILABLE TOOLS:
- create_session, list_sessions, get_session, delete_session
- add_player, start_game, roll_dice, play_to_end, end_game
- game_state, turn_history
- list_boards, describe_square, game_instructions`),
	)

	s.registerTools()
}

func (s *Server) registerTools() {
	sessionID := mcp.WithString("session_id",
		mcp.Required(),
		mcp.Description("Session ID"),
	)

	// Session management
	s.mcpServer.AddTool(mcp.NewTool("create_session",
		mcp.WithDescription("Create a new game session on a board"),
		mcp.WithString("config_name", mcp.Description("Board ID from list_boards (optional, defaults to classic)")),
		mcp.WithNumber("seed", mcp.Description("Dice seed for a reproducible game (optional, 0 picks a random seed)")),
		mcp.WithBoolean("finish_all", mcp.Description("Keep playing until every player finishes instead of stopping at the first winner")),
	), s.handleCreateSession)

	s.mcpServer.AddTool(mcp.NewTool("list_sessions",
		mcp.WithDescription("List all active game sessions"),
	), s.handleListSessions)

	s.mcpServer.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Get details of a specific session"),
		sessionID,
	), s.handleGetSession)

	s.mcpServer.AddTool(mcp.NewTool("delete_session",
		mcp.WithDescription("Delete a session and discard its game"),
		sessionID,
	), s.handleDeleteSession)

	// Game operations
	s.mcpServer.AddTool(mcp.NewTool("add_player",
		mcp.WithDescription("Register a player before the game starts. Registration order is turn order."),
		sessionID,
		mcp.WithString("name", mcp.Required(), mcp.Description("Player name (must not be blank)")),
	), s.handleAddPlayer)

	s.mcpServer.AddTool(mcp.NewTool("start_game",
		mcp.WithDescription("Start the game once players are registered"),
		sessionID,
	), s.handleStartGame)

	s.mcpServer.AddTool(mcp.NewTool("roll_dice",
		mcp.WithDescription("Play one turn for the next player"),
		sessionID,
		mcp.WithNumber("die", mcp.Description("Use this die value (1-6) instead of rolling the session's seeded die")),
	), s.handleRollDice)

	s.mcpServer.AddTool(mcp.NewTool("play_to_end",
		mcp.WithDescription("Roll for every player until the game ends or the turn limit is reached"),
		sessionID,
		mcp.WithNumber("max_turns", mcp.Description("Maximum turns to play in this call")),
	), s.handlePlayToEnd)

	s.mcpServer.AddTool(mcp.NewTool("end_game",
		mcp.WithDescription("Report final standings of a finished game and close the session"),
		sessionID,
	), s.handleEndGame)

	// Game state
	s.mcpServer.AddTool(mcp.NewTool("game_state",
		mcp.WithDescription("Get the current game state"),
		sessionID,
	), s.handleGameState)

	s.mcpServer.AddTool(mcp.NewTool("turn_history",
		mcp.WithDescription("Get paginated turn history"),
		sessionID,
		mcp.WithNumber("page", mcp.Description("Page number (default 1)")),
		mcp.WithNumber("limit", mcp.Description("Turns per page (default 20, max 100)")),
		mcp.WithString("order", mcp.Enum("asc", "desc"), mcp.Description("Sort order (default desc)")),
	), s.handleTurnHistory)

	// Boards and help
	s.mcpServer.AddTool(mcp.NewTool("list_boards",
		mcp.WithDescription("List available boards"),
	), s.handleListBoards)

	s.mcpServer.AddTool(mcp.NewTool("describe_square",
		mcp.WithDescription("Describe a square of a board: ladder, snake or plain"),
		mcp.WithString("config_name", mcp.Description("Board ID (defaults to classic)")),
		mcp.WithNumber("square", mcp.Required(), mcp.Description("Square number 0-100")),
	), s.handleDescribeSquare)

	s.mcpServer.AddTool(mcp.NewTool("game_instructions",
		mcp.WithDescription("Get the rules of the game"),
	), s.handleGameInstructions)
}
