package model

import "fmt"

// Position is a 1-indexed board coordinate. Validity is a Board concern.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func NewPosition(row, column int) Position {
	return Position{Row: row, Column: column}
}

// offset returns the position shifted by the given row and column deltas
func (p Position) offset(dRow, dColumn int) Position {
	return Position{Row: p.Row + dRow, Column: p.Column + dColumn}
}

// String renders the square in algebraic notation ("e4"). Positions off the
// board fall back to the raw coordinates.
func (p Position) String() string {
	if p.Row < 1 || p.Row > BoardSize || p.Column < 1 || p.Column > BoardSize {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Column)
	}
	return fmt.Sprintf("%c%d", 'a'+p.Column-1, p.Row)
}

// ParsePosition parses algebraic square notation such as "e4".
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	file, rank := s[0], s[1]
	if file >= 'A' && file <= 'H' {
		file += 'a' - 'A'
	}
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	return Position{Row: int(rank-'1') + 1, Column: int(file-'a') + 1}, nil
}
