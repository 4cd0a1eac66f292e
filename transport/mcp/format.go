package mcp

import (
	"fmt"
	"strings"

	"github.com/wricardo/mcp-training/snakesladders/game/engine"
	"github.com/wricardo/mcp-training/snakesladders/game/service"
)

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nBoard: %s\nSeed: %d\nFinish all: %t\nCreated: %s\n\n%s",
		session.ID, session.ConfigName, session.Seed, session.FinishAll,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Board: %s | Phase: %s | Pass: %d | Turns: %d\n",
		state.BoardName, state.Phase, state.Pass, state.TotalTurns))

	if len(state.Players) == 0 {
		result.WriteString("\nNo players yet\n")
	} else {
		result.WriteString("\nPlayers:\n")
		for _, p := range state.Players {
			marker := " "
			if p.Name == state.CurrentPlayer {
				marker = ">"
			}
			status := ""
			if p.Completed {
				status = fmt.Sprintf(" (finished #%d)", p.Rank)
			}
			result.WriteString(fmt.Sprintf("%s %d. %s on %d%s\n", marker, p.Order+1, p.Name, p.Position, status))
		}
	}

	if state.CurrentPlayer != "" && state.Phase == engine.PhaseRunning {
		result.WriteString(fmt.Sprintf("\nNext to roll: %s\n", state.CurrentPlayer))
	}
	if state.Winner != "" {
		result.WriteString(fmt.Sprintf("\nWinner: %s\n", state.Winner))
	}

	return result.String()
}

func formatTurn(turn *engine.TurnRecord) string {
	return fmt.Sprintf("#%d %s", turn.Number, service.FormatMove(turn.Player, service.TurnMove(turn)))
}

func formatTurnResult(result *service.TurnResult) string {
	var b strings.Builder
	if result.Turn != nil {
		b.WriteString(formatTurn(result.Turn) + "\n")
	}

	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s\n", event.Message))
		}
	}

	if result.GameOver {
		b.WriteString("\nGame over\n")
	}

	b.WriteString("\n" + formatGameState(result.GameState))
	return b.String()
}

func formatPlayResult(result *service.PlayResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Played %d turns (limit %d)\n", result.TurnsPlayed, result.Limit))

	// Long games only show the tail
	const tail = 20
	turns := result.Turns
	if len(turns) > tail {
		b.WriteString(fmt.Sprintf("... %d earlier turns omitted\n", len(turns)-tail))
		turns = turns[len(turns)-tail:]
	}
	for i := range turns {
		b.WriteString(formatTurn(&turns[i]) + "\n")
	}

	switch result.StoppedReason {
	case "game_over":
		b.WriteString(fmt.Sprintf("\nGame completed! %s wins\n", result.Winner))
	case "turn_limit":
		b.WriteString("\nStopped at the turn limit; call play_to_end again to continue\n")
	case "error":
		b.WriteString(fmt.Sprintf("\nStopped on error: %s\n", result.Error))
	}

	b.WriteString("\n" + formatGameState(result.GameState))
	return b.String()
}

func formatEndResult(result *service.EndResult) string {
	var b strings.Builder
	b.WriteString(result.Message + "\n")
	if result.Winner != "" {
		b.WriteString(fmt.Sprintf("Winner: %s after %d turns\n", result.Winner, result.TotalTurns))
	}

	b.WriteString("\nStandings:\n")
	for i, p := range result.Standings {
		status := fmt.Sprintf("on %d", p.Position)
		if p.Completed {
			status = "finished"
		}
		b.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, p.Name, status))
	}
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	if history.TotalTurns == 0 {
		return "No turns played yet"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Turn History (page %d of %d, %d turns total):\n\n",
		history.Page, history.TotalPages, history.TotalTurns))
	for i := range history.Turns {
		b.WriteString(formatTurn(&history.Turns[i]) + "\n")
	}

	if history.HasPrevious || history.HasNext {
		b.WriteString("\n")
		if history.HasPrevious {
			b.WriteString(fmt.Sprintf("Previous: page %d  ", history.Page-1))
		}
		if history.HasNext {
			b.WriteString(fmt.Sprintf("Next: page %d", history.Page+1))
		}
		b.WriteString("\n")
	}
	return b.String()
}
