package engine

// Board holds the fixed track and its jump table. A Board is immutable once
// constructed and may be shared by any number of games.
type Board struct {
	name  string
	jumps map[int]int
}

// NewBoard creates a board with the given jump table after validating it
func NewBoard(name string, jumps map[int]int) (*Board, error) {
	if err := validateJumps(jumps); err != nil {
		return nil, err
	}

	copied := make(map[int]int, len(jumps))
	for from, to := range jumps {
		copied[from] = to
	}

	return &Board{name: name, jumps: copied}, nil
}

// NewBoardFromConfig creates a board from a validated board configuration
func NewBoardFromConfig(config *BoardConfig) (*Board, error) {
	if err := ValidateBoardConfig(config); err != nil {
		return nil, err
	}
	return NewBoard(config.Name, config.Jumps)
}

// DefaultBoard returns the classic board
func DefaultBoard() *Board {
	board, err := NewBoardFromConfig(DefaultBoardConfig())
	if err != nil {
		panic(err)
	}
	return board
}

// Name returns the board's name
func (b *Board) Name() string {
	return b.name
}

// Length returns the terminal square
func (b *Board) Length() int {
	return BoardLength
}

// Resolve computes the position reached from currentPosition with dieValue
func (b *Board) Resolve(currentPosition, dieValue int) int {
	return b.Move(currentPosition, dieValue).To
}

// Move resolves a roll and classifies the result. Rule precedence:
// exact landing on the last square, then overshoot (no movement), then a
// single jump lookup, then a plain step.
func (b *Board) Move(currentPosition, dieValue int) Move {
	target := currentPosition + dieValue
	move := Move{
		From:   currentPosition,
		Die:    dieValue,
		Target: target,
	}

	switch {
	case target == BoardLength:
		move.To = BoardLength
		move.Kind = MoveFinish
	case target > BoardLength:
		move.To = currentPosition
		move.Kind = MoveOvershoot
	default:
		if dest, ok := b.jumps[target]; ok {
			move.To = dest
			move.Kind = MoveLadder
			if dest < target {
				move.Kind = MoveSnake
			}
		} else {
			move.To = target
			move.Kind = MoveStep
		}
	}

	return move
}

// JumpAt returns the jump triggered at square, if any
func (b *Board) JumpAt(square int) (Jump, bool) {
	to, ok := b.jumps[square]
	if !ok {
		return Jump{}, false
	}
	return Jump{From: square, To: to}, true
}

// Jumps returns the jump table sorted by trigger square
func (b *Board) Jumps() []Jump {
	jumps := make([]Jump, 0, len(b.jumps))
	for from, to := range b.jumps {
		jumps = append(jumps, Jump{From: from, To: to})
	}
	sortJumps(jumps)
	return jumps
}

// Snakes returns the backward jumps sorted by trigger square
func (b *Board) Snakes() []Jump {
	var snakes []Jump
	for _, j := range b.Jumps() {
		if j.IsSnake() {
			snakes = append(snakes, j)
		}
	}
	return snakes
}

// Ladders returns the forward jumps sorted by trigger square
func (b *Board) Ladders() []Jump {
	var ladders []Jump
	for _, j := range b.Jumps() {
		if j.IsLadder() {
			ladders = append(ladders, j)
		}
	}
	return ladders
}
