package service

import (
	"fmt"

	"github.com/benbeisheim/movegen-backend/internal/model"
	"github.com/benbeisheim/movegen-backend/internal/ws"
	"github.com/google/uuid"
)

// BoardService translates request strings into model values and routes them
// to the right session.
type BoardService struct {
	boardManager *BoardManager
}

func NewBoardService(boardManager *BoardManager) *BoardService {
	return &BoardService{
		boardManager: boardManager,
	}
}

func (bs *BoardService) CreateBoard(standard bool) (string, error) {
	boardID := uuid.New().String()

	if err := bs.boardManager.CreateBoard(boardID, standard); err != nil {
		return "", fmt.Errorf("failed to create board: %w", err)
	}

	return boardID, nil
}

func (bs *BoardService) DeleteBoard(boardID string) error {
	return bs.boardManager.DeleteBoard(boardID)
}

func (bs *BoardService) GetBoardState(boardID string) (model.BoardState, error) {
	session, err := bs.boardManager.GetSession(boardID)
	if err != nil {
		return model.BoardState{}, err
	}
	return session.State(), nil
}

func (bs *BoardService) ResetBoard(boardID string) error {
	session, err := bs.boardManager.GetSession(boardID)
	if err != nil {
		return err
	}
	session.Reset()
	return nil
}

func (bs *BoardService) LoadFEN(boardID string, fen string) error {
	session, err := bs.boardManager.GetSession(boardID)
	if err != nil {
		return err
	}
	return session.LoadFEN(fen)
}

func (bs *BoardService) AddPiece(boardID string, square string, color string, pieceType string) error {
	session, err := bs.boardManager.GetSession(boardID)
	if err != nil {
		return err
	}
	pos, err := model.ParsePosition(square)
	if err != nil {
		return err
	}
	piece, err := parsePiece(color, pieceType)
	if err != nil {
		return err
	}
	return session.AddPiece(pos, piece)
}

func (bs *BoardService) RemovePiece(boardID string, square string) error {
	session, err := bs.boardManager.GetSession(boardID)
	if err != nil {
		return err
	}
	pos, err := model.ParsePosition(square)
	if err != nil {
		return err
	}
	return session.RemovePiece(pos)
}

func (bs *BoardService) GetPiece(boardID string, square string) (*model.Piece, error) {
	session, err := bs.boardManager.GetSession(boardID)
	if err != nil {
		return nil, err
	}
	pos, err := model.ParsePosition(square)
	if err != nil {
		return nil, err
	}
	return session.Piece(pos)
}

func (bs *BoardService) PieceMoves(boardID string, square string) ([]model.Move, error) {
	session, err := bs.boardManager.GetSession(boardID)
	if err != nil {
		return nil, err
	}
	pos, err := model.ParsePosition(square)
	if err != nil {
		return nil, err
	}
	return session.PieceMoves(pos)
}

func (bs *BoardService) SideMoves(boardID string, color string) ([]model.Move, error) {
	session, err := bs.boardManager.GetSession(boardID)
	if err != nil {
		return nil, err
	}
	c, err := model.ParseTeamColor(color)
	if err != nil {
		return nil, err
	}
	return session.SideMoves(c), nil
}

func (bs *BoardService) RegisterConnection(boardID string, clientID string, conn Conn) error {
	session, err := bs.boardManager.GetSession(boardID)
	if err != nil {
		return err
	}
	return session.RegisterConnection(clientID, conn)
}

func (bs *BoardService) UnregisterConnection(boardID string, clientID string) {
	session, err := bs.boardManager.GetSession(boardID)
	if err != nil {
		return
	}
	session.UnregisterConnection(clientID)
}

func (bs *BoardService) Send(boardID string, clientID string, msg ws.Message) error {
	session, err := bs.boardManager.GetSession(boardID)
	if err != nil {
		return err
	}
	return session.Send(clientID, msg)
}

func parsePiece(color string, pieceType string) (*model.Piece, error) {
	c, err := model.ParseTeamColor(color)
	if err != nil {
		return nil, err
	}
	t, err := model.ParsePieceType(pieceType)
	if err != nil {
		return nil, err
	}
	return model.NewPiece(c, t), nil
}
