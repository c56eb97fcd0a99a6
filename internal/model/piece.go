package model

import (
	"fmt"
	"strings"
)

type TeamColor string

const (
	White TeamColor = "white"
	Black TeamColor = "black"
)

func (c TeamColor) Opposite() TeamColor {
	if c == White {
		return Black
	}
	return White
}

func (c TeamColor) Valid() bool {
	return c == White || c == Black
}

// ParseTeamColor accepts "white"/"black" in any case, or the FEN side letters.
func ParseTeamColor(s string) (TeamColor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	}
	return "", fmt.Errorf("%w: unknown color %q", ErrInvalidPiece, s)
}

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Rook   PieceType = "rook"
	Pawn   PieceType = "pawn"

	// NoPromotion marks a Move that does not promote.
	NoPromotion PieceType = ""
)

// PromotionTypes lists the pieces a pawn may become on the last rank.
var PromotionTypes = []PieceType{Queen, Bishop, Knight, Rook}

func (p PieceType) Valid() bool {
	switch p {
	case King, Queen, Bishop, Knight, Rook, Pawn:
		return true
	}
	return false
}

// letter is the FEN letter for the type, lower case.
func (p PieceType) letter() byte {
	switch p {
	case King:
		return 'k'
	case Queen:
		return 'q'
	case Rook:
		return 'r'
	case Bishop:
		return 'b'
	case Knight:
		return 'n'
	case Pawn:
		return 'p'
	}
	return 0
}

func ParsePieceType(s string) (PieceType, error) {
	t := PieceType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown piece type %q", ErrInvalidPiece, s)
	}
	return t, nil
}

// Piece carries no position; callers always supply it.
type Piece struct {
	Color TeamColor `json:"color"`
	Type  PieceType `json:"type"`
}

func NewPiece(color TeamColor, pieceType PieceType) *Piece {
	return &Piece{Color: color, Type: pieceType}
}

func (p Piece) String() string {
	return fmt.Sprintf("%s %s", p.Color, p.Type)
}

// movementRule is what a piece type contributes to move generation.
type movementRule struct {
	directions []Direction
	rng        int
	// forward is the pawn push direction, built with noAttack. Unused otherwise.
	forward Direction
	pawn    bool
}

var (
	orthogonal = []Direction{Up, Down, Left, Right}
	diagonal   = []Direction{NE, NW, SE, SW}
	allRays    = []Direction{Up, Down, Left, Right, NE, NW, SE, SW}
	knightJump = []Direction{Knight1, Knight2, Knight3, Knight4, Knight5, Knight6, Knight7, Knight8}
)

func (p Piece) rule(board *Board, myPosition Position) movementRule {
	switch p.Type {
	case King:
		return movementRule{directions: allRays, rng: 1}
	case Queen:
		return movementRule{directions: allRays, rng: 7}
	case Rook:
		return movementRule{directions: orthogonal, rng: 7}
	case Bishop:
		return movementRule{directions: diagonal, rng: 7}
	case Knight:
		return movementRule{directions: knightJump, rng: 1}
	case Pawn:
		return p.pawnRule(board, myPosition)
	}
	return movementRule{}
}

// pawnRule adds a capture diagonal only when an enemy sits on it right now.
func (p Piece) pawnRule(board *Board, myPosition Position) movementRule {
	rule := movementRule{rng: 1, pawn: true, forward: Up}
	left, right := NW, NE
	if p.Color == Black {
		rule.forward = Down
		left, right = SW, SE
	}
	if myPosition.Row == board.RowFlippedByColor(2, p.Color) {
		rule.rng = 2
	}
	for _, dir := range []Direction{left, right} {
		dRow, dColumn := dir.Vector()
		target := board.GetPiece(myPosition.offset(dRow, dColumn))
		if target != nil && target.Color != p.Color {
			rule.directions = append(rule.directions, dir)
		}
	}
	return rule
}

// Moves returns every square the piece can reach from myPosition by movement
// rules alone. It never mutates the board and ignores whose turn it is and
// whether the move exposes the mover's king.
func (p Piece) Moves(board *Board, myPosition Position) MoveSet {
	rule := p.rule(board, myPosition)

	lines := make([]*MovementLine, 0, len(rule.directions)+1)
	if rule.pawn {
		lines = append(lines, NewMovementLine(myPosition, rule.forward, rule.rng, true))
		// captures are always a single step
		for _, dir := range rule.directions {
			lines = append(lines, NewMovementLine(myPosition, dir, 1, false))
		}
	} else {
		for _, dir := range rule.directions {
			lines = append(lines, NewMovementLine(myPosition, dir, rule.rng, false))
		}
	}

	moves := make(MoveSet)
	promotionRow := board.RowFlippedByColor(8, p.Color)
	for _, line := range lines {
		for _, destination := range line.FilterBlockedDestinations(board, p.Color) {
			if rule.pawn && destination.Row == promotionRow {
				for _, promotion := range PromotionTypes {
					moves.Add(Move{Origin: myPosition, Destination: destination, Promotion: promotion})
				}
				continue
			}
			moves.Add(Move{Origin: myPosition, Destination: destination})
		}
	}
	return moves
}

// AllMoves unions the moves of every piece of the given color.
func AllMoves(board *Board, color TeamColor) MoveSet {
	moves := make(MoveSet)
	for _, position := range board.PiecesOf(color) {
		moves.Union(board.GetPiece(position).Moves(board, position))
	}
	return moves
}
