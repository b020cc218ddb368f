package core

// Learner is the agent being trained
type Learner interface {
	Mark() Mark
	// ChooseAction picks a move for the board. With explore set, a random move is taken with probability epsilon.
	// Returns false when no move is available.
	ChooseAction(board *Board, explore bool, epsilon float64) (Action, bool)
	UpdateValue(state State, action Action, reward float64, nextState State, nextActions []Action)
}

// Opponent is the fixed sparring partner, it never learns
type Opponent interface {
	Mark() Mark
	Move(board *Board) (Action, bool)
}

// ValueSnapshotter exposes the full contents of a value table for persistence
type ValueSnapshotter interface {
	Snapshot() map[Key]float64
}
