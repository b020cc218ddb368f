package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidAction = errors.New("invalid action")
)

// Mark is the content of a single board cell
type Mark byte

const (
	Empty Mark = '_'
	X     Mark = 'X'
	O     Mark = 'O'
)

func (m Mark) String() string {
	return string(m)
}

// Other returns the opposing mark. Empty has no opponent.
func (m Mark) Other() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	}
	return Empty
}

const BoardSize = 9

// Action is the index of the cell a mark is placed on
type Action int

func (a Action) Valid() bool {
	return a >= 0 && a < BoardSize
}

// State is the canonical encoding of a board, one character per cell in index order.
// It is comparable and can be used directly as a map key.
type State [BoardSize]byte

// EmptyState is the state of a freshly reset board
var EmptyState = State{'_', '_', '_', '_', '_', '_', '_', '_', '_'}

func (s State) String() string {
	return string(s[:])
}

// ParseState decodes the 9 character form produced by State.String
func ParseState(s string) (State, error) {
	var out State
	if len(s) != BoardSize {
		return out, fmt.Errorf("state %q: expected %d cells, got %d", s, BoardSize, len(s))
	}
	for i := 0; i < BoardSize; i++ {
		switch Mark(s[i]) {
		case Empty, X, O:
			out[i] = s[i]
		default:
			return out, fmt.Errorf("state %q: unknown mark %q at %d", s, s[i], i)
		}
	}
	return out, nil
}

// Key identifies one entry of the value table
type Key struct {
	State  State
	Action Action
}

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Board is the 3x3 grid
type Board struct {
	cells [BoardSize]Mark
}

func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// BoardFromState rebuilds a board from its canonical encoding
func BoardFromState(s State) *Board {
	b := &Board{}
	for i, c := range s {
		b.cells[i] = Mark(c)
	}
	return b
}

func (b *Board) Reset() {
	for i := range b.cells {
		b.cells[i] = Empty
	}
}

func (b *Board) Cell(i int) Mark {
	return b.cells[i]
}

// Apply places mark on the cell identified by action. The cell must be empty.
func (b *Board) Apply(action Action, mark Mark) error {
	if !action.Valid() {
		return fmt.Errorf("%w: cell %d out of range", ErrInvalidAction, action)
	}
	if mark != X && mark != O {
		return fmt.Errorf("%w: cannot place %q", ErrInvalidAction, byte(mark))
	}
	if b.cells[action] != Empty {
		return fmt.Errorf("%w: cell %d already holds %s", ErrInvalidAction, action, b.cells[action])
	}
	b.cells[action] = mark
	return nil
}

// Clear empties a cell. Used to revert hypothetical placements.
func (b *Board) Clear(action Action) {
	b.cells[action] = Empty
}

func (b *Board) IsWin(mark Mark) bool {
	for _, line := range lines {
		if b.cells[line[0]] == mark && b.cells[line[1]] == mark && b.cells[line[2]] == mark {
			return true
		}
	}
	return false
}

func (b *Board) IsFull() bool {
	for _, c := range b.cells {
		if c == Empty {
			return false
		}
	}
	return true
}

// IsDraw reports a full board with no winner
func (b *Board) IsDraw() bool {
	return b.IsFull() && !b.IsWin(X) && !b.IsWin(O)
}

// Winner returns the mark that completed a line, if any
func (b *Board) Winner() (Mark, bool) {
	if b.IsWin(X) {
		return X, true
	}
	if b.IsWin(O) {
		return O, true
	}
	return Empty, false
}

// ValidActions returns the empty cells in ascending order
func (b *Board) ValidActions() []Action {
	out := make([]Action, 0, BoardSize)
	for i, c := range b.cells {
		if c == Empty {
			out = append(out, Action(i))
		}
	}
	return out
}

func (b *Board) State() State {
	var s State
	for i, c := range b.cells {
		s[i] = byte(c)
	}
	return s
}

func (b *Board) Clone() *Board {
	return &Board{cells: b.cells}
}

func (b *Board) String() string {
	sb := new(strings.Builder)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			sb.WriteByte(byte(b.cells[r*3+c]))
		}
		if r < 2 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
