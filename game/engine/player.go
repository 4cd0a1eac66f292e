package engine

import "strings"

// MoveFunc resolves the position a player reaches from current
type MoveFunc func(current int) (int, error)

// Player holds the state of one token on the board. Players are owned by a
// single engine; callers outside the engine only see PlayerState snapshots.
type Player struct {
	name      string
	position  int
	completed bool
	playing   bool
}

// NewPlayer creates a player at the start position
func NewPlayer(name string) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyPlayerName
	}
	return &Player{name: name, position: StartPosition}, nil
}

// Name returns the player's name
func (p *Player) Name() string {
	return p.name
}

// Position returns the player's current square
func (p *Player) Position() int {
	return p.position
}

// Completed reports whether the player has reached the last square
func (p *Player) Completed() bool {
	return p.completed
}

// ApplyMove sets the player's position to a value produced by Board.Resolve
func (p *Player) ApplyMove(newPosition int) {
	p.position = newPosition
}

// CheckCompletion records and returns whether the player stands on
// endPosition. Once true it stays true.
func (p *Player) CheckCompletion(endPosition int) bool {
	if !p.completed && p.position == endPosition {
		p.completed = true
	}
	return p.completed
}

// Play runs one turn: it asks move for the resolved position, applies it and
// evaluates completion against endPosition. The position is left unchanged
// if move fails.
func (p *Player) Play(move MoveFunc, endPosition int) (bool, error) {
	if p.playing {
		return p.completed, ErrTurnInProgress
	}
	p.playing = true
	defer func() { p.playing = false }()

	newPosition, err := move(p.position)
	if err != nil {
		return p.completed, err
	}

	p.ApplyMove(newPosition)
	return p.CheckCompletion(endPosition), nil
}

// snapshot returns a read-only copy of the player's state
func (p *Player) snapshot(order, rank int) PlayerState {
	return PlayerState{
		Name:      p.name,
		Order:     order,
		Position:  p.position,
		Completed: p.completed,
		Rank:      rank,
	}
}
