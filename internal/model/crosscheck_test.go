package model_test

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"

	"github.com/benbeisheim/movegen-backend/internal/model"
)

type moveKey struct {
	from, to  uint8
	promotion model.PieceType
}

func squareIndex(p model.Position) uint8 {
	return uint8((p.Row-1)*8 + (p.Column - 1))
}

func promotionFromReference(p dragontoothmg.Piece) model.PieceType {
	switch p {
	case dragontoothmg.Queen:
		return model.Queen
	case dragontoothmg.Rook:
		return model.Rook
	case dragontoothmg.Bishop:
		return model.Bishop
	case dragontoothmg.Knight:
		return model.Knight
	}
	return model.NoPromotion
}

// These positions have no checks, pins, castling rights or en passant
// squares, so the reference generator's legal moves equal our movement-rule
// moves for the side to move.
func TestMovesMatchReferenceGenerator(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		color model.TeamColor
	}{
		{"LoneQueen", "4k3/8/8/8/3Q4/8/8/4K3 w - - 0 1", model.White},
		{"Knight", "4k3/8/8/8/3N4/8/8/4K3 w - - 0 1", model.White},
		{"PawnCapture", "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", model.White},
		{"PawnCaptureBlack", "4k3/8/8/3p4/4P3/8/8/4K3 b - - 0 1", model.Black},
		{"Promotion", "4k3/1P6/8/8/8/8/8/4K3 w - - 0 1", model.White},
		{"PromotionCapture", "r3k3/1P6/8/8/8/8/8/4K3 w - - 0 1", model.White},
		{"BlackBishop", "4k3/8/8/2b5/8/8/8/4K3 b - - 0 1", model.Black},
		{"StartWhite", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1", model.White},
		{"StartBlack", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b - - 0 1", model.Black},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			board, err := model.ParseFEN(tt.fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}

			ours := make(map[moveKey]bool)
			for m := range model.AllMoves(board, tt.color) {
				ours[moveKey{squareIndex(m.Origin), squareIndex(m.Destination), m.Promotion}] = true
			}

			ref := dragontoothmg.ParseFen(tt.fen)
			theirs := make(map[moveKey]bool)
			for _, m := range ref.GenerateLegalMoves() {
				theirs[moveKey{m.From(), m.To(), promotionFromReference(m.Promote())}] = true
			}

			if len(ours) != len(theirs) {
				t.Errorf("move count: got %d, reference %d", len(ours), len(theirs))
			}
			for k := range theirs {
				if !ours[k] {
					t.Errorf("missing reference move %+v", k)
				}
			}
			for k := range ours {
				if !theirs[k] {
					t.Errorf("extra move %+v", k)
				}
			}
		})
	}
}
