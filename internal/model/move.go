package model

import (
	"sort"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Move is a single origin/destination pair. Promotion is NoPromotion unless a
// pawn arrives on the far rank.
type Move struct {
	Origin      Position  `json:"from"`
	Destination Position  `json:"to"`
	Promotion   PieceType `json:"promotion,omitempty"`
}

func NewMove(origin, destination Position, promotion PieceType) Move {
	return Move{Origin: origin, Destination: destination, Promotion: promotion}
}

// String renders the move in long algebraic form, e.g. "e7e8q".
func (m Move) String() string {
	s := m.Origin.String() + m.Destination.String()
	if m.Promotion != NoPromotion {
		s += string(m.Promotion.letter())
	}
	return s
}

// MoveSet is an unordered collection of moves.
type MoveSet map[Move]struct{}

func NewMoveSet(moves ...Move) MoveSet {
	set := make(MoveSet, len(moves))
	for _, m := range moves {
		set.Add(m)
	}
	return set
}

func (s MoveSet) Add(m Move) { s[m] = struct{}{} }

func (s MoveSet) Contains(m Move) bool {
	_, ok := s[m]
	return ok
}

func (s MoveSet) Len() int { return len(s) }

func (s MoveSet) Union(other MoveSet) {
	for m := range other {
		s[m] = struct{}{}
	}
}

// Equal reports whether both sets hold exactly the same moves.
func (s MoveSet) Equal(other MoveSet) bool {
	if len(s) != len(other) {
		return false
	}
	for m := range s {
		if !other.Contains(m) {
			return false
		}
	}
	return true
}

// Destinations returns the distinct destination squares.
func (s MoveSet) Destinations() map[Position]struct{} {
	out := make(map[Position]struct{}, len(s))
	for m := range s {
		out[m.Destination] = struct{}{}
	}
	return out
}

// Sorted returns the moves in a stable order for output. Nothing in move
// generation depends on this order.
func (s MoveSet) Sorted() []Move {
	moves := maps.Keys(s)
	sort.Slice(moves, func(i, j int) bool {
		a, b := moves[i], moves[j]
		if a.Origin != b.Origin {
			return positionLess(a.Origin, b.Origin)
		}
		if a.Destination != b.Destination {
			return positionLess(a.Destination, b.Destination)
		}
		return promotionRank(a.Promotion) < promotionRank(b.Promotion)
	})
	return moves
}

func positionLess(a, b Position) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Column < b.Column
}

func promotionRank(p PieceType) int {
	if p == NoPromotion {
		return -1
	}
	if i := slices.Index(PromotionTypes, p); i >= 0 {
		return i
	}
	return len(PromotionTypes)
}
