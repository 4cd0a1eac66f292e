package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mcp-training/snakesladders/game/config"
	"github.com/wricardo/mcp-training/snakesladders/game/engine"
	"github.com/wricardo/mcp-training/snakesladders/game/service"
	"github.com/wricardo/mcp-training/snakesladders/game/session"
)

type toolHandler = server.ToolHandlerFunc

// newTestServer builds a server over a board directory holding "test"
// ({1: 94, 50: 10}) and "classic"
func newTestServer(t *testing.T) *Server {
	t.Helper()

	dir := t.TempDir()
	writeBoard(t, dir, "test", &engine.BoardConfig{
		Name:        "test",
		Description: "Test board",
		Jumps:       map[int]int{1: 94, 50: 10},
	})
	writeBoard(t, dir, "classic", engine.DefaultBoardConfig())

	configs, err := config.NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}

	logger := log.New(io.Discard, "", 0)
	svc := service.NewGameService(session.NewManager(), configs, logger)
	return NewServer(svc, logger, 50)
}

func writeBoard(t *testing.T, dir, name string, board *engine.BoardConfig) {
	t.Helper()
	data, err := json.Marshal(board)
	if err != nil {
		t.Fatalf("Failed to marshal board: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".json"), data, 0644); err != nil {
		t.Fatalf("Failed to write board: %v", err)
	}
}

func callTool(t *testing.T, handler toolHandler, args map[string]any) (string, bool) {
	t.Helper()
	result, err := handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	})
	if err != nil {
		t.Fatalf("Handler returned protocol error: %v", err)
	}
	if result == nil || len(result.Content) == 0 {
		t.Fatal("Expected tool result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Expected text content, got %T", result.Content[0])
	}
	return text.Text, result.IsError
}

func mustCall(t *testing.T, handler toolHandler, args map[string]any) string {
	t.Helper()
	text, isErr := callTool(t, handler, args)
	if isErr {
		t.Fatalf("Unexpected tool error: %s", text)
	}
	return text
}

// createSession returns the ID of a fresh session on the test board
func createSession(t *testing.T, s *Server, players ...string) string {
	t.Helper()
	sessions, err := s.service.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	known := make(map[string]bool)
	for _, info := range sessions {
		known[info.ID] = true
	}

	mustCall(t, s.handleCreateSession, map[string]any{"config_name": "test", "seed": float64(7)})

	sessions, err = s.service.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	var id string
	for _, info := range sessions {
		if !known[info.ID] {
			id = info.ID
		}
	}
	if id == "" {
		t.Fatal("Created session not listed")
	}

	for _, name := range players {
		mustCall(t, s.handleAddPlayer, map[string]any{"session_id": id, "name": name})
	}
	return id
}

func TestNewServer(t *testing.T) {
	s := newTestServer(t)
	if s.GetMCPServer() == nil {
		t.Fatal("Expected MCP server to be initialized")
	}
	if s.maxTurns != 50 {
		t.Errorf("Expected maxTurns 50, got %d", s.maxTurns)
	}

	defaults := NewServer(s.service, nil, 0)
	if defaults.maxTurns != service.DefaultMaxTurns {
		t.Errorf("Expected default maxTurns %d, got %d", service.DefaultMaxTurns, defaults.maxTurns)
	}
	if defaults.logger == nil {
		t.Error("Expected default logger")
	}
}

func TestHandleCreateSession(t *testing.T) {
	s := newTestServer(t)

	text := mustCall(t, s.handleCreateSession, map[string]any{"config_name": "test", "seed": float64(99)})
	if !strings.Contains(text, "Created session:") || !strings.Contains(text, "Seed: 99") {
		t.Errorf("Unexpected create output: %s", text)
	}

	text, isErr := callTool(t, s.handleCreateSession, map[string]any{"config_name": "missing"})
	if !isErr {
		t.Fatalf("Expected error for unknown board, got %s", text)
	}
	if !strings.Contains(text, "classic") {
		t.Errorf("Expected available boards in error, got %s", text)
	}
}

func TestHandleSessionTools(t *testing.T) {
	s := newTestServer(t)

	text := mustCall(t, s.handleListSessions, nil)
	if text != "No active sessions" {
		t.Errorf("Expected no sessions, got %s", text)
	}

	id := createSession(t, s, "alice")

	text = mustCall(t, s.handleListSessions, nil)
	if !strings.Contains(text, id) || !strings.Contains(text, "Active Sessions (1)") {
		t.Errorf("Expected session %s listed, got %s", id, text)
	}

	text = mustCall(t, s.handleGetSession, map[string]any{"session_id": id})
	if !strings.Contains(text, "Board: test") || !strings.Contains(text, "alice on 0") {
		t.Errorf("Unexpected session output: %s", text)
	}

	mustCall(t, s.handleDeleteSession, map[string]any{"session_id": id})
	if _, isErr := callTool(t, s.handleGetSession, map[string]any{"session_id": id}); !isErr {
		t.Error("Expected error for deleted session")
	}
	if _, isErr := callTool(t, s.handleGetSession, map[string]any{}); !isErr {
		t.Error("Expected error for missing session_id")
	}
}

func TestHandleAddPlayerAndStart(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s)

	if _, isErr := callTool(t, s.handleAddPlayer, map[string]any{"session_id": id, "name": "   "}); !isErr {
		t.Error("Expected error for blank player name")
	}
	if _, isErr := callTool(t, s.handleStartGame, map[string]any{"session_id": id}); !isErr {
		t.Error("Expected error starting without players")
	}

	text := mustCall(t, s.handleAddPlayer, map[string]any{"session_id": id, "name": "alice"})
	if !strings.Contains(text, "New player added: alice") {
		t.Errorf("Unexpected add output: %s", text)
	}

	text = mustCall(t, s.handleStartGame, map[string]any{"session_id": id})
	if !strings.Contains(text, "Phase: running") || !strings.Contains(text, "Next to roll: alice") {
		t.Errorf("Unexpected start output: %s", text)
	}

	if _, isErr := callTool(t, s.handleAddPlayer, map[string]any{"session_id": id, "name": "bob"}); !isErr {
		t.Error("Expected error adding a player after start")
	}
}

func TestHandleRollDice(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s, "alice", "bob")
	mustCall(t, s.handleStartGame, map[string]any{"session_id": id})

	text := mustCall(t, s.handleRollDice, map[string]any{"session_id": id, "die": float64(1)})
	if !strings.Contains(text, "alice rolled 1: ladder at 1, climbed from 0 to 94") {
		t.Errorf("Expected ladder move, got %s", text)
	}
	if !strings.Contains(text, "Next to roll: bob") {
		t.Errorf("Expected bob to be next, got %s", text)
	}

	if _, isErr := callTool(t, s.handleRollDice, map[string]any{"session_id": id, "die": float64(7)}); !isErr {
		t.Error("Expected error for die value 7")
	}

	mustCall(t, s.handleRollDice, map[string]any{"session_id": id, "die": float64(3)})
	text = mustCall(t, s.handleRollDice, map[string]any{"session_id": id, "die": float64(6)})
	if !strings.Contains(text, "Game over") || !strings.Contains(text, "Winner: alice") {
		t.Errorf("Expected alice to win, got %s", text)
	}

	if _, isErr := callTool(t, s.handleRollDice, map[string]any{"session_id": id}); !isErr {
		t.Error("Expected error rolling after the game ended")
	}
}

func TestHandlePlayToEnd(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s, "alice", "bob")
	mustCall(t, s.handleStartGame, map[string]any{"session_id": id})

	text := mustCall(t, s.handlePlayToEnd, map[string]any{"session_id": id, "max_turns": float64(3)})
	if !strings.Contains(text, "(limit 3)") {
		t.Errorf("Expected limit 3, got %s", text)
	}

	// Requests above the server cap are clamped
	for i := 0; i < 100; i++ {
		text = mustCall(t, s.handlePlayToEnd, map[string]any{"session_id": id, "max_turns": float64(1000)})
		if !strings.Contains(text, "(limit 50)") {
			t.Fatalf("Expected limit clamped to 50, got %s", text)
		}
		if strings.Contains(text, "Game completed!") {
			break
		}
	}
	if !strings.Contains(text, "Game completed!") {
		t.Fatalf("Game did not finish: %s", text)
	}

	text = mustCall(t, s.handleEndGame, map[string]any{"session_id": id})
	if !strings.Contains(text, "Standings:") || !strings.Contains(text, "1. ") {
		t.Errorf("Unexpected end output: %s", text)
	}
	if _, isErr := callTool(t, s.handleGameState, map[string]any{"session_id": id}); !isErr {
		t.Error("Expected session to be gone after end_game")
	}
}

func TestHandleEndGameBeforeFinish(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s, "alice")
	mustCall(t, s.handleStartGame, map[string]any{"session_id": id})

	if _, isErr := callTool(t, s.handleEndGame, map[string]any{"session_id": id}); !isErr {
		t.Error("Expected error ending an unfinished game")
	}
}

func TestHandleTurnHistory(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s, "alice", "bob")

	text := mustCall(t, s.handleTurnHistory, map[string]any{"session_id": id})
	if text != "No turns played yet" {
		t.Errorf("Expected empty history, got %s", text)
	}

	mustCall(t, s.handleStartGame, map[string]any{"session_id": id})
	for _, die := range []int{2, 3, 4} {
		mustCall(t, s.handleRollDice, map[string]any{"session_id": id, "die": float64(die)})
	}

	text = mustCall(t, s.handleTurnHistory, map[string]any{
		"session_id": id,
		"limit":      float64(2),
		"order":      "asc",
	})
	if !strings.Contains(text, "page 1 of 2, 3 turns total") {
		t.Errorf("Unexpected pagination header: %s", text)
	}
	if !strings.Contains(text, "#1 alice rolled 2") || !strings.Contains(text, "#2 bob rolled 3") {
		t.Errorf("Expected first two turns, got %s", text)
	}
	if !strings.Contains(text, "Next: page 2") {
		t.Errorf("Expected next page hint, got %s", text)
	}
}

func TestHandleBoards(t *testing.T) {
	s := newTestServer(t)

	text := mustCall(t, s.handleListBoards, nil)
	if !strings.Contains(text, "• classic") || !strings.Contains(text, "• test") {
		t.Errorf("Expected both boards listed, got %s", text)
	}
	if !strings.Contains(text, "Snakes: 1, Ladders: 1") {
		t.Errorf("Expected test board counts, got %s", text)
	}

	tests := []struct {
		name   string
		args   map[string]any
		want   string
		errors bool
	}{
		{"ladder on test board", map[string]any{"config_name": "test", "square": float64(1)}, "ladder to 94", false},
		{"snake on test board", map[string]any{"config_name": "test", "square": float64(50)}, "snake to 10", false},
		{"plain square on classic", map[string]any{"square": float64(5)}, "plain square", false},
		{"start square", map[string]any{"square": float64(0)}, "start", false},
		{"goal square", map[string]any{"square": float64(100)}, "goal", false},
		{"out of range", map[string]any{"square": float64(101)}, "out of range", true},
		{"missing square", map[string]any{}, "", true},
		{"unknown board", map[string]any{"config_name": "missing", "square": float64(5)}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := callTool(t, s.handleDescribeSquare, tt.args)
			if isErr != tt.errors {
				t.Fatalf("Expected error=%v, got %v (%s)", tt.errors, isErr, text)
			}
			if !strings.Contains(text, tt.want) {
				t.Errorf("Expected %q in %q", tt.want, text)
			}
		})
	}
}

func TestHandleGameInstructions(t *testing.T) {
	s := newTestServer(t)

	text := mustCall(t, s.handleGameInstructions, nil)
	for _, want := range []string{"square 100", "ladder", "snake", "wasted"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected instructions to mention %q", want)
		}
	}
}

func TestFormatGameState(t *testing.T) {
	if got := formatGameState(nil); got != "No game state available" {
		t.Errorf("Unexpected nil state output: %s", got)
	}

	state := &engine.GameState{
		Phase:     engine.PhaseEnded,
		BoardName: "classic",
		Players: []engine.PlayerState{
			{Name: "alice", Order: 0, Position: 100, Completed: true, Rank: 1},
			{Name: "bob", Order: 1, Position: 42},
		},
		TotalTurns: 30,
		Winner:     "alice",
	}

	got := formatGameState(state)
	for _, want := range []string{"Phase: ended", "1. alice on 100 (finished #1)", "2. bob on 42", "Winner: alice"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %q in %q", want, got)
		}
	}
	if strings.Contains(got, "Next to roll") {
		t.Error("Ended game should not show a next player")
	}
}
