package game

import "time"

// Config sizes a new game.
type Config struct {
	// Allotment is each side's starting time.
	Allotment time.Duration
	White     Player
	Black     Player
	// OfferPause only controls whether a front end should show a pause control.
	// The pause transition itself is always rejected.
	OfferPause bool
}

// GameState is the canonical state of one game. Transitions return a new state
// value; callers must treat the returned value as canonical and discard the old
// one. The rules engine handle is deliberately not part of the state — it is
// mutated in place and threaded through every transition by its single owner.
type GameState struct {
	Board    Board
	Identity IdentityMap
	Clocks   ClockPair

	// History and Undos move in lock-step: one identity undo record per applied
	// move. Redo holds undone moves, newest last.
	History []Move
	Undos   []IdentityUndo
	Redo    []Move

	// Captured holds, per capturing side, the piece types it has taken, in order.
	Captured [2][]PieceType

	InCheck    [2]bool
	Completion Completion
	Players    [2]Player
	Turn       Side

	OfferPause bool
}

// NewGameState builds the state for a fresh game from the rules engine's
// initial layout: identifiers assigned from the starting position, clocks sized
// to the allotment and not yet running, empty histories, no completion.
func NewGameState(r Rules, cfg Config) *GameState {
	snap := r.Snapshot()
	ids := NewIdentityMap(snap)
	return &GameState{
		Board:    ProjectBoard(snap, ids),
		Identity: ids,
		Clocks:   NewClockPair(cfg.Allotment),
		Players:  [2]Player{cfg.White, cfg.Black},
		Turn:     r.CurrentTurn(),

		OfferPause: cfg.OfferPause,
	}
}

// Copy returns a deep copy, so a transition can mutate a draft without
// touching the state its caller still holds.
func (gs *GameState) Copy() *GameState {
	history := make([]Move, len(gs.History))
	copy(history, gs.History)

	undos := make([]IdentityUndo, len(gs.Undos))
	copy(undos, gs.Undos)

	redo := make([]Move, len(gs.Redo))
	copy(redo, gs.Redo)

	var captured [2][]PieceType
	for s := range gs.Captured {
		captured[s] = make([]PieceType, len(gs.Captured[s]))
		copy(captured[s], gs.Captured[s])
	}

	return &GameState{
		Board:      gs.Board,
		Identity:   gs.Identity.Copy(),
		Clocks:     gs.Clocks,
		History:    history,
		Undos:      undos,
		Redo:       redo,
		Captured:   captured,
		InCheck:    gs.InCheck,
		Completion: gs.Completion,
		Players:    gs.Players,
		Turn:       gs.Turn,
		OfferPause: gs.OfferPause,
	}
}

// Complete reports whether a terminal condition has been reached. Once true,
// board-mutating actions are rejected.
func (gs *GameState) Complete() bool {
	return gs.Completion.Complete()
}

// Ply is the number of moves currently in the forward history.
func (gs *GameState) Ply() int {
	return len(gs.History)
}

// PlayerFor returns the descriptor for a side.
func (gs *GameState) PlayerFor(s Side) Player {
	return gs.Players[s]
}
