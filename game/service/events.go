package service

import (
	"fmt"
	"sync"

	"github.com/wricardo/mcp-training/snakesladders/game/engine"
)

// maxLoggedEvents caps an EventLog between drains
const maxLoggedEvents = 500

// EventLog collects engine events for later display. It implements
// engine.Observer and is safe for concurrent use.
type EventLog struct {
	mu     sync.Mutex
	events []GameEvent
}

// NewEventLog creates an empty event log
func NewEventLog() *EventLog {
	return &EventLog{}
}

// OnEvent records an engine event
func (l *EventLog) OnEvent(event engine.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.events) >= maxLoggedEvents {
		l.events = l.events[1:]
	}
	l.events = append(l.events, GameEvent{
		Type:      string(event.Type),
		Message:   FormatEvent(event),
		Timestamp: event.Timestamp,
		Player:    event.Player,
		Turn:      event.Turn,
	})
}

// Drain returns the recorded events and empties the log
func (l *EventLog) Drain() []GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()

	events := l.events
	l.events = nil
	return events
}

// FormatEvent renders an engine event as a one-line message
func FormatEvent(event engine.Event) string {
	switch event.Type {
	case engine.EventPlayerAdded:
		return fmt.Sprintf("New player added: %s", event.Player)
	case engine.EventGameStarted:
		return "Starting the game"
	case engine.EventTurnStarted:
		return fmt.Sprintf("%s's turn", event.Player)
	case engine.EventPositionChanged:
		if event.Move == nil {
			return fmt.Sprintf("%s moved", event.Player)
		}
		return FormatMove(event.Player, *event.Move)
	case engine.EventPlayerCompleted:
		return fmt.Sprintf("Hurray! %s has reached the end", event.Player)
	case engine.EventGameEnded:
		return fmt.Sprintf("Game completed! %s wins", event.Player)
	}
	return string(event.Type)
}

// FormatMove describes a resolved move
func FormatMove(player string, m engine.Move) string {
	switch m.Kind {
	case engine.MoveLadder:
		return fmt.Sprintf("%s rolled %d: ladder at %d, climbed from %d to %d", player, m.Die, m.Target, m.From, m.To)
	case engine.MoveSnake:
		return fmt.Sprintf("%s rolled %d: snake at %d, slid from %d to %d", player, m.Die, m.Target, m.From, m.To)
	case engine.MoveOvershoot:
		return fmt.Sprintf("%s rolled %d: needs exactly %d, stays on %d", player, m.Die, engine.BoardLength-m.From, m.From)
	case engine.MoveFinish:
		return fmt.Sprintf("%s rolled %d: moved from %d to %d", player, m.Die, m.From, m.To)
	}
	return fmt.Sprintf("%s rolled %d: position changed from %d to %d", player, m.Die, m.From, m.To)
}

// TurnMove rebuilds the Move carried by a turn record
func TurnMove(record *engine.TurnRecord) engine.Move {
	return engine.Move{
		From:   record.From,
		Die:    record.Die,
		Target: record.Target,
		To:     record.To,
		Kind:   record.Kind,
	}
}
