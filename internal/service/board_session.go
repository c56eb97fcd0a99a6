package service

import (
	"fmt"
	"sync"

	"github.com/benbeisheim/movegen-backend/internal/model"
	"github.com/benbeisheim/movegen-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

// Conn is the part of a websocket connection a session writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// observer serializes writes to one connection; the read loop and
// broadcasts both write to it.
type observer struct {
	mu   sync.Mutex
	conn Conn
}

func (o *observer) send(msg ws.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.conn.WriteJSON(msg)
}

// The connections watching a specific board
type sessionConnections struct {
	connections map[string]*observer // clientID -> connection
	mu          sync.RWMutex
}

// BoardSession owns one board. Mutations take the write lock; move
// generation runs under the read lock, so any number of readers can share
// the board between writes.
type BoardSession struct {
	ID          string
	mu          sync.RWMutex
	board       *model.Board
	connections *sessionConnections
}

func NewBoardSession(id string, board *model.Board) *BoardSession {
	if board == nil {
		board = model.NewBoard()
	}
	return &BoardSession{
		ID:    id,
		board: board,
		connections: &sessionConnections{
			connections: make(map[string]*observer),
		},
	}
}

func (s *BoardSession) State() model.BoardState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.State()
}

// Snapshot returns a copy of the board that later writes will not touch.
func (s *BoardSession) Snapshot() *model.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.Clone()
}

func (s *BoardSession) Piece(pos model.Position) (*model.Piece, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.board.OutOfBounds(pos) {
		return nil, fmt.Errorf("%w: %v", model.ErrOutOfBounds, pos)
	}
	return s.board.GetPiece(pos), nil
}

// PieceMoves lists the moves of whatever stands on pos. An empty square has
// no moves.
func (s *BoardSession) PieceMoves(pos model.Position) ([]model.Move, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.board.OutOfBounds(pos) {
		return nil, fmt.Errorf("%w: %v", model.ErrOutOfBounds, pos)
	}
	piece := s.board.GetPiece(pos)
	if piece == nil {
		return []model.Move{}, nil
	}
	return piece.Moves(s.board, pos).Sorted(), nil
}

func (s *BoardSession) SideMoves(color model.TeamColor) []model.Move {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.AllMoves(s.board, color).Sorted()
}

func (s *BoardSession) AddPiece(pos model.Position, piece *model.Piece) error {
	s.mu.Lock()
	err := s.board.PlacePiece(pos, piece)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.broadcastState()
	return nil
}

func (s *BoardSession) RemovePiece(pos model.Position) error {
	return s.AddPiece(pos, nil)
}

func (s *BoardSession) Reset() {
	s.mu.Lock()
	s.board.ResetBoard()
	s.mu.Unlock()
	s.broadcastState()
}

func (s *BoardSession) LoadFEN(fen string) error {
	board, err := model.ParseFEN(fen)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.board = board
	s.mu.Unlock()
	s.broadcastState()
	return nil
}

func (s *BoardSession) RegisterConnection(clientID string, conn Conn) error {
	s.connections.mu.Lock()
	if _, exists := s.connections.connections[clientID]; exists {
		s.connections.mu.Unlock()
		return ErrConnectionExists
	}
	o := &observer{conn: conn}
	s.connections.connections[clientID] = o
	s.connections.mu.Unlock()
	log.Debugf("registered connection for client %s on board %s", clientID, s.ID)

	// Send initial state
	msg, err := ws.NewMessage(ws.MessageTypeBoardState, s.State())
	if err != nil {
		return err
	}
	if err := o.send(msg); err != nil {
		s.UnregisterConnection(clientID)
		return err
	}
	return nil
}

func (s *BoardSession) UnregisterConnection(clientID string) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	if _, exists := s.connections.connections[clientID]; exists {
		delete(s.connections.connections, clientID)
		log.Debugf("unregistered connection for client %s on board %s", clientID, s.ID)
	}
}

// Send writes a message to one registered client.
func (s *BoardSession) Send(clientID string, msg ws.Message) error {
	s.connections.mu.RLock()
	o, ok := s.connections.connections[clientID]
	s.connections.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no connection for client %s", clientID)
	}
	return o.send(msg)
}

func (s *BoardSession) ConnectionCount() int {
	s.connections.mu.RLock()
	defer s.connections.mu.RUnlock()
	return len(s.connections.connections)
}

// closeConnections drops and closes every observer.
func (s *BoardSession) closeConnections() {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	for clientID, o := range s.connections.connections {
		if err := o.conn.Close(); err != nil {
			log.Debugf("close connection for client %s: %v", clientID, err)
		}
		delete(s.connections.connections, clientID)
	}
}

// broadcastState pushes the current board to every observer. Observers whose
// write fails are dropped.
func (s *BoardSession) broadcastState() {
	msg, err := ws.NewMessage(ws.MessageTypeBoardState, s.State())
	if err != nil {
		log.Errorf("marshal state for board %s: %v", s.ID, err)
		return
	}

	// Make a copy of the connections so writes happen without the map lock
	s.connections.mu.RLock()
	active := make(map[string]*observer, len(s.connections.connections))
	for clientID, o := range s.connections.connections {
		active[clientID] = o
	}
	s.connections.mu.RUnlock()

	for clientID, o := range active {
		if err := o.send(msg); err != nil {
			log.Warnf("failed to send state to client %s on board %s: %v", clientID, s.ID, err)
			s.UnregisterConnection(clientID)
		}
	}
}
