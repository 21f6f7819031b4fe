package game

// Move is what the rules engine reports for an accepted move. The state machine
// stores these in its history and replays them through the identity tracker.
type Move struct {
	From      Square
	To        Square
	Promotion PieceType
	Side      Side // the mover

	Capture     bool
	EnPassant   bool
	CastleKing  bool
	CastleQueen bool
	Check       bool // opponent left in check

	// Captured is the type of the piece removed by this move, NoPieceType when
	// the move captured nothing.
	Captured PieceType
}

func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoPieceType {
		s += m.Promotion.Letter()
	}
	return s
}

// Rules is the external rules engine. It alone validates legality; the state
// machine keeps its identity map in lock-step with every accepted mutation.
// ApplyMove and UndoLastMove mutate the engine in place and are not reversible
// by value, so exactly one owner must serialize calls against one handle.
type Rules interface {
	// ApplyMove executes a move, or returns an error leaving the engine untouched.
	ApplyMove(from, to Square, promotion PieceType) (Move, error)
	// UndoLastMove reverts the engine's most recent move. Reports false when
	// there is nothing to undo.
	UndoLastMove() (Move, bool)
	CurrentTurn() Side
	InCheck() bool
	Checkmate() bool
	Draw() bool
	InsufficientMaterial() bool
	ThreefoldRepetition() bool
	Snapshot() Snapshot
	// PositionString serializes the current position (opaque to the core).
	PositionString() string
}
