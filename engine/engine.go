// Package engine adapts github.com/notnil/chess to the game.Rules boundary:
// move validation and flags, terminal predicates, board snapshots and FEN
// serialization. The underlying library has no native undo, so UndoLastMove
// rebuilds the game by replaying all but the last move.
package engine

import (
	"fmt"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"

	"chesscore/game"
)

type Engine struct {
	g   *chess.Game
	fen string // starting position, empty for the standard layout
}

// New starts an engine at the standard starting position.
func New() *Engine {
	e := &Engine{}
	e.g = e.newGame()
	return e
}

// NewFromFEN starts an engine at an arbitrary position.
func NewFromFEN(fen string) (*Engine, error) {
	if _, err := chess.FEN(fen); err != nil {
		return nil, fmt.Errorf("engine: bad FEN: %w", err)
	}
	e := &Engine{fen: fen}
	e.g = e.newGame()
	return e, nil
}

func (e *Engine) newGame() *chess.Game {
	opts := []func(*chess.Game){chess.UseNotation(chess.UCINotation{})}
	if e.fen != "" {
		fen, _ := chess.FEN(e.fen)
		opts = append(opts, fen)
	}
	return chess.NewGame(opts...)
}

// ApplyMove executes from-to if the position allows it. Promotion must be given
// for promoting moves and absent otherwise.
func (e *Engine) ApplyMove(from, to game.Square, promotion game.PieceType) (game.Move, error) {
	for _, m := range e.g.ValidMoves() {
		if squareOf(m.S1()) != from || squareOf(m.S2()) != to || pieceTypeOf(m.Promo()) != promotion {
			continue
		}
		before := e.g.Position()
		if err := e.g.Move(m); err != nil {
			return game.Move{}, err
		}
		return e.describe(m, before), nil
	}
	return game.Move{}, fmt.Errorf("engine: no legal move %s%s", from, to)
}

// UndoLastMove reverts the most recent move by replaying the rest from the
// starting position. Reports false when no move has been made.
func (e *Engine) UndoLastMove() (game.Move, bool) {
	moves := e.g.Moves()
	if len(moves) == 0 {
		return game.Move{}, false
	}
	positions := e.g.Positions()
	undone := e.describe(moves[len(moves)-1], positions[len(positions)-2])

	replay := e.newGame()
	for _, m := range moves[:len(moves)-1] {
		if err := replay.Move(m); err != nil {
			log.Error().Stringer("move", m).Err(err).Msg("engine: replay diverged during undo")
			return game.Move{}, false
		}
	}
	e.g = replay
	return undone, true
}

func (e *Engine) CurrentTurn() game.Side {
	return sideOf(e.g.Position().Turn())
}

// InCheck reports whether the side to move is in check.
func (e *Engine) InCheck() bool {
	moves := e.g.Moves()
	if len(moves) == 0 {
		return false
	}
	return moves[len(moves)-1].HasTag(chess.Check)
}

func (e *Engine) Checkmate() bool {
	return e.g.Position().Status() == chess.Checkmate
}

// Draw reports stalemate, an eligible fifty-move or threefold claim, or
// insufficient material.
func (e *Engine) Draw() bool {
	if e.g.Position().Status() == chess.Stalemate {
		return true
	}
	for _, m := range e.g.EligibleDraws() {
		if m == chess.FiftyMoveRule || m == chess.ThreefoldRepetition {
			return true
		}
	}
	return e.InsufficientMaterial()
}

func (e *Engine) InsufficientMaterial() bool {
	return e.g.Outcome() == chess.Draw && e.g.Method() == chess.InsufficientMaterial
}

func (e *Engine) ThreefoldRepetition() bool {
	for _, m := range e.g.EligibleDraws() {
		if m == chess.ThreefoldRepetition {
			return true
		}
	}
	return false
}

func (e *Engine) Snapshot() game.Snapshot {
	var snap game.Snapshot
	board := e.g.Position().Board()
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			p := board.Piece(chessSquare(game.NewSquare(file, rank)))
			if p == chess.NoPiece {
				continue
			}
			snap[rank][file] = game.SnapshotCell{
				Type: pieceTypeOf(p.Type()),
				Side: sideOf(p.Color()),
			}
		}
	}
	return snap
}

// PositionString is the current position as FEN.
func (e *Engine) PositionString() string {
	return e.g.FEN()
}

// describe flattens an accepted library move into the boundary's Move record.
// before is the position the move was played from; the captured piece's type is
// read from it, off the destination square or, for en passant, off the captured
// pawn's own square.
func (e *Engine) describe(m *chess.Move, before *chess.Position) game.Move {
	mv := game.Move{
		From:        squareOf(m.S1()),
		To:          squareOf(m.S2()),
		Promotion:   pieceTypeOf(m.Promo()),
		Side:        sideOf(before.Turn()),
		Capture:     m.HasTag(chess.Capture),
		EnPassant:   m.HasTag(chess.EnPassant),
		CastleKing:  m.HasTag(chess.KingSideCastle),
		CastleQueen: m.HasTag(chess.QueenSideCastle),
		Check:       m.HasTag(chess.Check),
	}
	if mv.Capture || mv.EnPassant {
		capturedSq := m.S2()
		if mv.EnPassant {
			capturedSq = chessSquare(game.NewSquare(mv.To.File(), mv.From.Rank()))
		}
		mv.Captured = pieceTypeOf(before.Board().Piece(capturedSq).Type())
	}
	return mv
}

func squareOf(sq chess.Square) game.Square {
	return game.NewSquare(int(sq.File()), int(sq.Rank()))
}

func chessSquare(sq game.Square) chess.Square {
	return chess.Square(sq.Rank()*8 + sq.File())
}

func sideOf(c chess.Color) game.Side {
	if c == chess.Black {
		return game.Black
	}
	return game.White
}

func pieceTypeOf(t chess.PieceType) game.PieceType {
	switch t {
	case chess.Pawn:
		return game.Pawn
	case chess.Knight:
		return game.Knight
	case chess.Bishop:
		return game.Bishop
	case chess.Rook:
		return game.Rook
	case chess.Queen:
		return game.Queen
	case chess.King:
		return game.King
	}
	return game.NoPieceType
}
