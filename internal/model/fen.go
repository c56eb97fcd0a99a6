package model

import (
	"fmt"
	"strings"
)

// StartPositionFEN is the placement field of the standard starting position.
const StartPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

func pieceFromChar(ch rune) (*Piece, bool) {
	color := White
	if ch >= 'a' && ch <= 'z' {
		color = Black
		ch -= 'a' - 'A'
	}
	switch ch {
	case 'K':
		return NewPiece(color, King), true
	case 'Q':
		return NewPiece(color, Queen), true
	case 'R':
		return NewPiece(color, Rook), true
	case 'B':
		return NewPiece(color, Bishop), true
	case 'N':
		return NewPiece(color, Knight), true
	case 'P':
		return NewPiece(color, Pawn), true
	}
	return nil, false
}

func charFromPiece(p *Piece) byte {
	ch := p.Type.letter()
	if p.Color == White {
		ch -= 'a' - 'A'
	}
	return ch
}

// ParseFEN builds a board from the piece placement field of a FEN string.
// Any fields after the placement are ignored.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidFEN)
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != BoardSize {
		return nil, fmt.Errorf("%w: expected %d ranks, got %d", ErrInvalidFEN, BoardSize, len(ranks))
	}

	board := NewBoard()
	for i, rankStr := range ranks {
		row := BoardSize - i
		column := 1
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				column += int(ch - '0')
				continue
			}
			piece, ok := pieceFromChar(ch)
			if !ok {
				return nil, fmt.Errorf("%w: unrecognized piece %q", ErrInvalidFEN, ch)
			}
			if column > BoardSize {
				return nil, fmt.Errorf("%w: rank %d too long", ErrInvalidFEN, row)
			}
			board.AddPiece(Position{row, column}, piece)
			column++
		}
		if column != BoardSize+1 {
			return nil, fmt.Errorf("%w: rank %d has %d squares", ErrInvalidFEN, row, column-1)
		}
	}
	return board, nil
}

// FEN renders the piece placement field.
func (b *Board) FEN() string {
	var sb strings.Builder
	for row := BoardSize; row >= 1; row-- {
		empty := 0
		for column := 1; column <= BoardSize; column++ {
			piece := b.squares[row-1][column-1]
			if piece == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(charFromPiece(piece))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if row > 1 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}
