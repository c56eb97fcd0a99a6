package service

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/benbeisheim/movegen-backend/internal/model"
	"github.com/benbeisheim/movegen-backend/internal/ws"
)

type fakeConn struct {
	mu       sync.Mutex
	messages []ws.Message
	fail     bool
	closed   bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.messages = append(c.messages, v.(ws.Message))
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) last(t *testing.T) ws.Message {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == 0 {
		t.Fatalf("no messages received")
	}
	return c.messages[len(c.messages)-1]
}

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func pos(t *testing.T, s string) model.Position {
	t.Helper()
	p, err := model.ParsePosition(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return p
}

func TestSessionPieceMoves(t *testing.T) {
	session := NewBoardSession("b1", model.NewStandardBoard())

	moves, err := session.PieceMoves(pos(t, "g1"))
	if err != nil {
		t.Fatalf("PieceMoves: %v", err)
	}
	if len(moves) != 2 || moves[0].String() != "g1f3" || moves[1].String() != "g1h3" {
		t.Fatalf("unexpected knight moves %v", moves)
	}

	moves, err = session.PieceMoves(pos(t, "e4"))
	if err != nil {
		t.Fatalf("PieceMoves on empty square: %v", err)
	}
	if len(moves) != 0 {
		t.Fatalf("expected no moves from empty square, got %v", moves)
	}

	if _, err := session.PieceMoves(model.Position{Row: 0, Column: 4}); !errors.Is(err, model.ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}

	if got := len(session.SideMoves(model.Black)); got != 20 {
		t.Fatalf("expected 20 black moves, got %d", got)
	}
}

func TestSessionMutationsBroadcast(t *testing.T) {
	session := NewBoardSession("b1", nil)
	conn := &fakeConn{}
	if err := session.RegisterConnection("alice", conn); err != nil {
		t.Fatalf("register: %v", err)
	}
	if got := conn.last(t).Type; got != ws.MessageTypeBoardState {
		t.Fatalf("expected initial boardState, got %s", got)
	}

	if err := session.AddPiece(pos(t, "d4"), model.NewPiece(model.White, model.Queen)); err != nil {
		t.Fatalf("AddPiece: %v", err)
	}
	var state model.BoardState
	if err := json.Unmarshal(conn.last(t).Payload, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.FEN != "8/8/8/8/3Q4/8/8/8" {
		t.Fatalf("unexpected broadcast FEN %q", state.FEN)
	}

	session.Reset()
	if err := json.Unmarshal(conn.last(t).Payload, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.FEN != model.StartPositionFEN {
		t.Fatalf("expected start position after reset, got %q", state.FEN)
	}

	if err := session.RemovePiece(pos(t, "e2")); err != nil {
		t.Fatalf("RemovePiece: %v", err)
	}
	if p, _ := session.Piece(pos(t, "e2")); p != nil {
		t.Fatalf("expected e2 empty, got %v", *p)
	}
	if got := conn.count(); got != 4 {
		t.Fatalf("expected 4 messages, got %d", got)
	}
}

func TestSessionRejectsInvalidWrites(t *testing.T) {
	session := NewBoardSession("b1", nil)
	conn := &fakeConn{}
	if err := session.RegisterConnection("alice", conn); err != nil {
		t.Fatalf("register: %v", err)
	}

	err := session.AddPiece(model.Position{Row: 9, Column: 9}, model.NewPiece(model.White, model.Pawn))
	if !errors.Is(err, model.ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if err := session.LoadFEN("not a fen"); !errors.Is(err, model.ErrInvalidFEN) {
		t.Fatalf("expected ErrInvalidFEN, got %v", err)
	}
	if got := conn.count(); got != 1 {
		t.Fatalf("failed writes must not broadcast, got %d messages", got)
	}
}

func TestSessionConnections(t *testing.T) {
	session := NewBoardSession("b1", nil)
	good := &fakeConn{}
	if err := session.RegisterConnection("alice", good); err != nil {
		t.Fatalf("register alice: %v", err)
	}
	if err := session.RegisterConnection("alice", &fakeConn{}); !errors.Is(err, ErrConnectionExists) {
		t.Fatalf("expected ErrConnectionExists, got %v", err)
	}

	bad := &fakeConn{}
	if err := session.RegisterConnection("bob", bad); err != nil {
		t.Fatalf("register bob: %v", err)
	}
	bad.mu.Lock()
	bad.fail = true
	bad.mu.Unlock()

	session.Reset()
	if got := session.ConnectionCount(); got != 1 {
		t.Fatalf("expected failed observer to be dropped, %d remain", got)
	}

	if err := session.Send("alice", ws.ErrorMessage("boom")); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got := good.last(t).Type; got != ws.MessageTypeError {
		t.Fatalf("expected error message, got %s", got)
	}
	if err := session.Send("bob", ws.ErrorMessage("boom")); err == nil {
		t.Fatalf("expected error sending to dropped client")
	}

	session.closeConnections()
	if !good.closed || session.ConnectionCount() != 0 {
		t.Fatalf("expected connections closed")
	}
}

func TestSessionConcurrentReaders(t *testing.T) {
	session := NewBoardSession("b1", model.NewStandardBoard())
	knight := pos(t, "b1")
	target := pos(t, "a3")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := session.PieceMoves(knight); err != nil {
					t.Errorf("PieceMoves: %v", err)
					return
				}
				_ = session.SideMoves(model.White)
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 50; j++ {
			if err := session.AddPiece(target, model.NewPiece(model.Black, model.Pawn)); err != nil {
				t.Errorf("AddPiece: %v", err)
				return
			}
			if err := session.RemovePiece(target); err != nil {
				t.Errorf("RemovePiece: %v", err)
				return
			}
		}
	}()
	wg.Wait()

	snapshot := session.Snapshot()
	if snapshot.FEN() != model.StartPositionFEN {
		t.Fatalf("expected start position after writer finished, got %q", snapshot.FEN())
	}
}
