package model

type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
	NE
	NW
	SE
	SW
	Knight1
	Knight2
	Knight3
	Knight4
	Knight5
	Knight6
	Knight7
	Knight8
)

// unit steps as (row delta, column delta); rows grow toward Black's side
var directionVectors = [...][2]int{
	Up:      {1, 0},
	Down:    {-1, 0},
	Left:    {0, -1},
	Right:   {0, 1},
	NE:      {1, 1},
	NW:      {1, -1},
	SE:      {-1, 1},
	SW:      {-1, -1},
	Knight1: {2, 1},
	Knight2: {1, 2},
	Knight3: {-1, 2},
	Knight4: {-2, 1},
	Knight5: {-2, -1},
	Knight6: {-1, -2},
	Knight7: {1, -2},
	Knight8: {2, -1},
}

func (d Direction) Vector() (dRow, dColumn int) {
	if int(d) >= len(directionVectors) {
		return 0, 0
	}
	v := directionVectors[d]
	return v[0], v[1]
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	case NE:
		return "NE"
	case NW:
		return "NW"
	case SE:
		return "SE"
	case SW:
		return "SW"
	case Knight1, Knight2, Knight3, Knight4, Knight5, Knight6, Knight7, Knight8:
		return "KNIGHT"
	default:
		return "?"
	}
}

// MovementLine is a ray of candidate squares from an origin. The sequence is
// not bounds checked; filtering stops at the board edge.
type MovementLine struct {
	origin    Position
	direction Direction
	noAttack  bool
	sequence  []Position
}

// NewMovementLine builds the rng squares stepping out from origin along
// direction. noAttack forbids capturing on this line (pawn pushes).
func NewMovementLine(origin Position, direction Direction, rng int, noAttack bool) *MovementLine {
	if rng < 0 {
		rng = 0
	}
	line := &MovementLine{
		origin:    origin,
		direction: direction,
		noAttack:  noAttack,
		sequence:  make([]Position, 0, rng),
	}
	dRow, dColumn := direction.Vector()
	current := origin
	for i := 0; i < rng; i++ {
		current = current.offset(dRow, dColumn)
		line.sequence = append(line.sequence, current)
	}
	return line
}

func (l *MovementLine) Origin() Position     { return l.origin }
func (l *MovementLine) Direction() Direction { return l.direction }
func (l *MovementLine) NoAttack() bool       { return l.noAttack }

// Positions returns the candidate squares, nearest first.
func (l *MovementLine) Positions() []Position {
	out := make([]Position, len(l.sequence))
	copy(out, l.sequence)
	return out
}

// FilterBlockedDestinations returns the reachable prefix of the line for a
// piece of movingColor. An enemy square is included and ends the line, unless
// the line cannot attack, in which case it only ends it.
func (l *MovementLine) FilterBlockedDestinations(board *Board, movingColor TeamColor) []Position {
	reachable := make([]Position, 0, len(l.sequence))
	for _, destination := range l.sequence {
		if board.OutOfBounds(destination) {
			break
		}
		target := board.GetPiece(destination)
		if target == nil {
			reachable = append(reachable, destination)
			continue
		}
		if target.Color != movingColor && !l.noAttack {
			reachable = append(reachable, destination)
		}
		break
	}
	return reachable
}
