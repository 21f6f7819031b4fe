package game

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"chesscore/utils"
)

// Action is one step applied to the game state machine. The full surface is
// MoveAction, UndoAction, RedoAction, PauseAction and CheckTimersAction.
type Action interface {
	isAction()
}

// MoveAction plays a move at a wall-clock instant. Legality is the rules
// engine's call; a rejection leaves the state unchanged.
type MoveAction struct {
	From      Square
	To        Square
	Promotion PieceType
	Now       time.Time
}

// UndoAction takes back the most recent move.
type UndoAction struct {
	Now time.Time
}

// RedoAction replays the most recently undone move.
type RedoAction struct {
	Now time.Time
}

// PauseAction is part of the action surface but always rejected; clocks are
// never frozen mid-game.
type PauseAction struct{}

// CheckTimersAction reconciles the clocks, completing the game on expiry.
type CheckTimersAction struct {
	Now time.Time
}

func (MoveAction) isAction()        {}
func (UndoAction) isAction()        {}
func (RedoAction) isAction()        {}
func (PauseAction) isAction()       {}
func (CheckTimersAction) isAction() {}

// Apply is the transition function. It consumes one action against the given
// rules engine handle and returns the new canonical state. On rejection the
// returned state carries no effect of the action itself, though a time-check
// that completed the game does stick. Transitions either fully commit or
// change nothing; they are not reentrant and must be serialized by one owner.
func (gs *GameState) Apply(r Rules, act Action) (*GameState, error) {
	switch a := act.(type) {
	case MoveAction:
		return gs.move(r, a)
	case UndoAction:
		return gs.undo(r, a)
	case RedoAction:
		return gs.redo(r, a)
	case PauseAction:
		log.Debug().Msg("pause requested but not supported, ignoring")
		return gs, ErrPauseUnsupported
	case CheckTimersAction:
		return gs.checkTimers(r, a.Now), nil
	}
	return gs, fmt.Errorf("unknown action %T", act)
}

// checkTimers reconciles the clocks at now. If the running side has run out,
// its remaining time is clamped to zero and the game completes with the
// out-of-time tag. Otherwise there is no state change and gs itself is
// returned. Inert once the game is complete.
func (gs *GameState) checkTimers(r Rules, now time.Time) *GameState {
	if gs.Complete() {
		return gs
	}
	draft := gs.Copy()
	if !draft.Clocks.Reconcile(now) {
		return gs
	}
	draft.Clocks.ForceExpire()
	draft.Completion = evaluateRules(r, true)
	log.Info().
		Stringer("side", draft.Turn).
		Str("completion", string(draft.Completion)).
		Msg("clock expired, game complete")
	return draft
}

func (gs *GameState) move(r Rules, a MoveAction) (*GameState, error) {
	next := gs.checkTimers(r, a.Now)
	if next.Complete() {
		return next, ErrGameComplete
	}

	draft := next.Copy()
	draft.Redo = nil
	mv, err := r.ApplyMove(a.From, a.To, a.Promotion)
	if err != nil {
		log.Debug().
			Str("from", a.From.String()).
			Str("to", a.To.String()).
			Err(err).
			Msg("move rejected by rules engine")
		return next, ErrIllegalMove
	}

	undo := draft.Identity.Apply(mv)
	draft.History = append(draft.History, mv)
	draft.Undos = append(draft.Undos, undo)
	if mv.Captured != NoPieceType {
		draft.Captured[mv.Side] = append(draft.Captured[mv.Side], mv.Captured)
	}
	draft.endMove(r, a.Now)
	return draft, nil
}

func (gs *GameState) undo(r Rules, a UndoAction) (*GameState, error) {
	next := gs.checkTimers(r, a.Now)
	if next.Complete() {
		return next, ErrGameComplete
	}
	if len(next.History) == 0 {
		return next, ErrNothingToUndo
	}

	if _, ok := r.UndoLastMove(); !ok {
		log.Error().
			Int("history", len(next.History)).
			Msg("rules engine reports nothing to undo despite non-empty history")
		return next, ErrNothingToUndo
	}

	draft := next.Copy()
	n := len(draft.History) - 1
	mv := draft.History[n]
	draft.History = draft.History[:n]
	u := draft.Undos[n]
	draft.Undos = draft.Undos[:n]

	draft.Identity.Reverse(mv, u)
	if mv.Captured != NoPieceType {
		caps := draft.Captured[mv.Side]
		if i := utils.FindLastIndex(caps, mv.Captured); i >= 0 {
			draft.Captured[mv.Side] = append(caps[:i], caps[i+1:]...)
		}
	}
	draft.Redo = append(draft.Redo, mv)
	draft.endMove(r, a.Now)
	return draft, nil
}

func (gs *GameState) redo(r Rules, a RedoAction) (*GameState, error) {
	next := gs.checkTimers(r, a.Now)
	if next.Complete() {
		return next, ErrGameComplete
	}
	if len(next.Redo) == 0 {
		return next, ErrNothingToRedo
	}

	n := len(next.Redo) - 1
	mv := next.Redo[n]
	applied, err := next.move(r, MoveAction{From: mv.From, To: mv.To, Promotion: mv.Promotion, Now: a.Now})
	if err != nil {
		return next, err
	}
	// move cleared the redo stack; restore everything beyond the replayed entry.
	applied.Redo = make([]Move, n)
	copy(applied.Redo, next.Redo[:n])
	return applied, nil
}

// endMove is the shared tail of move, undo and redo: switch the running clock,
// recompute the board projection and check flags, and re-evaluate completion.
// The clock charges the side that just moved: it starts on that side's commit
// and stops when the opponent commits.
func (gs *GameState) endMove(r Rules, now time.Time) {
	turn := r.CurrentTurn()
	gs.Turn = turn
	gs.Clocks.SwitchTurn(now, turn.Other())
	gs.Board = ProjectBoard(r.Snapshot(), gs.Identity)
	gs.InCheck = [2]bool{}
	gs.InCheck[turn] = r.InCheck()
	gs.Completion = evaluateRules(r, false)
}
