package model

import "testing"

func TestMovementLinePositions(t *testing.T) {
	line := NewMovementLine(Position{1, 1}, Up, 7, false)
	if line.Origin() != (Position{1, 1}) || line.Direction() != Up || line.NoAttack() {
		t.Fatalf("unexpected line fields: %v %s %v", line.Origin(), line.Direction(), line.NoAttack())
	}
	got := line.Positions()
	if len(got) != 7 {
		t.Fatalf("expected 7 positions, got %d", len(got))
	}
	for i, pos := range got {
		if want := (Position{Row: 2 + i, Column: 1}); pos != want {
			t.Fatalf("position %d: got %v, want %v", i, pos, want)
		}
	}
}

func TestMovementLineNotBoundsCheckedAtConstruction(t *testing.T) {
	line := NewMovementLine(Position{8, 8}, NE, 3, false)
	want := []Position{{9, 9}, {10, 10}, {11, 11}}
	got := line.Positions()
	if len(got) != len(want) {
		t.Fatalf("expected %d positions, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %v, want %v", i, got[i], want[i])
		}
	}

	if dests := line.FilterBlockedDestinations(NewBoard(), White); len(dests) != 0 {
		t.Fatalf("expected no reachable squares, got %v", dests)
	}
}

func TestDirectionVectors(t *testing.T) {
	tests := []struct {
		dir        Direction
		dRow, dCol int
	}{
		{Up, 1, 0},
		{Down, -1, 0},
		{Left, 0, -1},
		{Right, 0, 1},
		{NE, 1, 1},
		{NW, 1, -1},
		{SE, -1, 1},
		{SW, -1, -1},
	}
	for _, tt := range tests {
		dRow, dCol := tt.dir.Vector()
		if dRow != tt.dRow || dCol != tt.dCol {
			t.Errorf("%s: got (%d,%d), want (%d,%d)", tt.dir, dRow, dCol, tt.dRow, tt.dCol)
		}
	}

	seen := make(map[[2]int]bool)
	for _, dir := range knightJump {
		dRow, dCol := dir.Vector()
		if abs(dRow)*abs(dCol) != 2 {
			t.Errorf("%v: (%d,%d) is not a knight offset", dir, dRow, dCol)
		}
		seen[[2]int{dRow, dCol}] = true
	}
	if len(seen) != 8 {
		t.Errorf("expected 8 distinct knight offsets, got %d", len(seen))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestFilterBlockedDestinations(t *testing.T) {
	tests := []struct {
		name     string
		occupant *Piece
		noAttack bool
		want     int
	}{
		{name: "Empty", want: 7},
		{name: "Friend", occupant: NewPiece(White, Knight), want: 2},
		{name: "Enemy", occupant: NewPiece(Black, Knight), want: 3},
		{name: "EnemyNoAttack", occupant: NewPiece(Black, Knight), noAttack: true, want: 2},
		{name: "FriendNoAttack", occupant: NewPiece(White, Knight), noAttack: true, want: 2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			board := NewBoard()
			if tt.occupant != nil {
				board.AddPiece(Position{Row: 4, Column: 1}, tt.occupant)
			}
			line := NewMovementLine(Position{1, 1}, Up, 7, tt.noAttack)

			got := line.FilterBlockedDestinations(board, White)
			if len(got) != tt.want {
				t.Fatalf("expected %d reachable squares, got %v", tt.want, got)
			}
			for i, pos := range got {
				if pos.Row != 2+i || pos.Column != 1 {
					t.Fatalf("reachable squares not a prefix: %v", got)
				}
			}
		})
	}
}

func TestFilterStopsAtEdge(t *testing.T) {
	line := NewMovementLine(Position{5, 6}, Right, 7, false)
	got := line.FilterBlockedDestinations(NewBoard(), Black)
	if len(got) != 2 {
		t.Fatalf("expected g5 and h5, got %v", got)
	}
}
