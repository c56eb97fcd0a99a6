package model

import "fmt"

const BoardSize = 8

// Board is an 8x8 grid of optional pieces. Row 1 is White's back rank.
// Reads are safe to share; AddPiece and ResetBoard need a single writer.
type Board struct {
	squares [BoardSize][BoardSize]*Piece
}

// BoardState is the JSON view of a board. Board[0] is row 8 so the grid reads
// the way White sees it.
type BoardState struct {
	Board [][]*Piece `json:"board"`
	FEN   string     `json:"fen"`
}

func NewBoard() *Board {
	return &Board{}
}

// NewStandardBoard returns a board in the starting position.
func NewStandardBoard() *Board {
	board := NewBoard()
	board.ResetBoard()
	return board
}

// AddPiece writes piece (nil clears) to position. Callers validate bounds;
// out-of-bounds writes are ignored.
func (b *Board) AddPiece(position Position, piece *Piece) {
	if b.OutOfBounds(position) {
		return
	}
	b.squares[position.Row-1][position.Column-1] = piece
}

// PlacePiece is AddPiece with validation.
func (b *Board) PlacePiece(position Position, piece *Piece) error {
	if b.OutOfBounds(position) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, position)
	}
	if piece != nil && (!piece.Color.Valid() || !piece.Type.Valid()) {
		return fmt.Errorf("%w: %q %q", ErrInvalidPiece, piece.Color, piece.Type)
	}
	b.AddPiece(position, piece)
	return nil
}

// GetPiece returns nil for an empty or out-of-bounds square.
func (b *Board) GetPiece(position Position) *Piece {
	if b.OutOfBounds(position) {
		return nil
	}
	return b.squares[position.Row-1][position.Column-1]
}

func (b *Board) OutOfBounds(position Position) bool {
	return position.Row < 1 || position.Row > BoardSize ||
		position.Column < 1 || position.Column > BoardSize
}

// RowFlippedByColor maps a row relative to color onto the board's rows.
func (b *Board) RowFlippedByColor(row int, color TeamColor) int {
	return RowFlippedByColor(row, color)
}

func RowFlippedByColor(row int, color TeamColor) int {
	if color == White {
		return row
	}
	return BoardSize + 1 - row
}

func (b *Board) Clear() {
	b.squares = [BoardSize][BoardSize]*Piece{}
}

// ResetBoard clears the board and sets up both sides.
func (b *Board) ResetBoard() {
	b.Clear()
	for _, color := range []TeamColor{White, Black} {
		for _, pieceType := range []PieceType{King, Queen, Bishop, Knight, Rook, Pawn} {
			piece := NewPiece(color, pieceType)
			for _, position := range startPositions(color, pieceType) {
				b.AddPiece(position, piece)
			}
		}
	}
}

func startPositions(color TeamColor, pieceType PieceType) []Position {
	backRank := RowFlippedByColor(1, color)
	switch pieceType {
	case King:
		return []Position{{backRank, 5}}
	case Queen:
		return []Position{{backRank, 4}}
	case Bishop:
		return []Position{{backRank, 3}, {backRank, 6}}
	case Knight:
		return []Position{{backRank, 2}, {backRank, 7}}
	case Rook:
		return []Position{{backRank, 1}, {backRank, 8}}
	case Pawn:
		pawnRank := RowFlippedByColor(2, color)
		positions := make([]Position, 0, BoardSize)
		for column := 1; column <= BoardSize; column++ {
			positions = append(positions, Position{pawnRank, column})
		}
		return positions
	}
	return nil
}

// Clone returns a copy that shares no squares with b. Pieces are immutable
// and stay shared.
func (b *Board) Clone() *Board {
	clone := *b
	return &clone
}

// PiecesOf lists the squares holding pieces of color, row by row.
func (b *Board) PiecesOf(color TeamColor) []Position {
	var positions []Position
	for row := 1; row <= BoardSize; row++ {
		for column := 1; column <= BoardSize; column++ {
			if piece := b.squares[row-1][column-1]; piece != nil && piece.Color == color {
				positions = append(positions, Position{row, column})
			}
		}
	}
	return positions
}

func (b *Board) State() BoardState {
	state := BoardState{Board: make([][]*Piece, 0, BoardSize), FEN: b.FEN()}
	for row := BoardSize; row >= 1; row-- {
		rank := make([]*Piece, BoardSize)
		for column := 1; column <= BoardSize; column++ {
			if piece := b.squares[row-1][column-1]; piece != nil {
				p := *piece
				rank[column-1] = &p
			}
		}
		state.Board = append(state.Board, rank)
	}
	return state
}
