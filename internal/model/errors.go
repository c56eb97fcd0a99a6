package model

import "errors"

var (
	ErrInvalidPosition = errors.New("invalid position")
	ErrOutOfBounds     = errors.New("position out of bounds")
	ErrInvalidPiece    = errors.New("invalid piece")
	ErrInvalidFEN      = errors.New("invalid FEN")
)
