package engine

import (
	"fmt"
	"sort"
)

// sortJumps orders jumps by trigger square
func sortJumps(jumps []Jump) {
	sort.Slice(jumps, func(i, j int) bool {
		return jumps[i].From < jumps[j].From
	})
}

// ValidDieValue reports whether v can come from a standard die
func ValidDieValue(v int) bool {
	return v >= MinDieValue && v <= MaxDieValue
}

// CountSnakes counts the backward jumps in a jump table
func CountSnakes(jumps map[int]int) int {
	count := 0
	for from, to := range jumps {
		if to < from {
			count++
		}
	}
	return count
}

// CountLadders counts the forward jumps in a jump table
func CountLadders(jumps map[int]int) int {
	count := 0
	for from, to := range jumps {
		if to > from {
			count++
		}
	}
	return count
}

// DescribeSquare returns a short human-readable description of a square
func DescribeSquare(b *Board, square int) string {
	switch {
	case square == StartPosition:
		return "start (off-board)"
	case square == BoardLength:
		return "goal"
	case square < StartPosition || square > BoardLength:
		return "off the track"
	}

	if j, ok := b.JumpAt(square); ok {
		if j.IsLadder() {
			return fmt.Sprintf("ladder to %d", j.To)
		}
		return fmt.Sprintf("snake to %d", j.To)
	}

	for _, j := range b.Jumps() {
		if j.To == square {
			return fmt.Sprintf("plain square (jump destination from %d)", j.From)
		}
	}

	return "plain square"
}

// CalculateStandings orders players by finishing rank first, then by
// position descending, then by turn order
func CalculateStandings(players []PlayerState) []PlayerState {
	standings := make([]PlayerState, len(players))
	copy(standings, players)
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Completed != b.Completed {
			return a.Completed
		}
		if a.Completed {
			return a.Rank < b.Rank
		}
		if a.Position != b.Position {
			return a.Position > b.Position
		}
		return a.Order < b.Order
	})
	return standings
}
