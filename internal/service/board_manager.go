// service/board_manager.go
package service

import (
	"fmt"
	"sync"

	"github.com/benbeisheim/movegen-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

type BoardManager struct {
	boards map[string]*BoardSession
	mu     sync.RWMutex
}

func NewBoardManager() *BoardManager {
	return &BoardManager{
		boards: make(map[string]*BoardSession),
	}
}

// CreateBoard registers an empty board, or one in the starting position when
// standard is set.
func (bm *BoardManager) CreateBoard(boardID string, standard bool) error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if _, exists := bm.boards[boardID]; exists {
		return fmt.Errorf("%w: %s", ErrBoardExists, boardID)
	}

	board := model.NewBoard()
	if standard {
		board.ResetBoard()
	}
	bm.boards[boardID] = NewBoardSession(boardID, board)
	log.Infof("created board %s (standard=%t)", boardID, standard)
	return nil
}

func (bm *BoardManager) GetSession(boardID string) (*BoardSession, error) {
	bm.mu.RLock()
	defer bm.mu.RUnlock()

	session, exists := bm.boards[boardID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrBoardNotFound, boardID)
	}
	return session, nil
}

// DeleteBoard removes the board and closes its observers.
func (bm *BoardManager) DeleteBoard(boardID string) error {
	bm.mu.Lock()
	session, exists := bm.boards[boardID]
	if !exists {
		bm.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrBoardNotFound, boardID)
	}
	delete(bm.boards, boardID)
	bm.mu.Unlock()

	session.closeConnections()
	log.Infof("deleted board %s", boardID)
	return nil
}

func (bm *BoardManager) Count() int {
	bm.mu.RLock()
	defer bm.mu.RUnlock()
	return len(bm.boards)
}
