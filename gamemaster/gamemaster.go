// Package gamemaster owns one (state, rules engine) pair and serializes every
// transition against it. The rules engine handle is mutated in place by
// transitions, so all access funnels through the master's mutex; the state
// value returned by State is safe to read concurrently between transitions.
package gamemaster

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"chesscore/game"
	"chesscore/oracle"
)

var (
	// ErrStaleSuggestion marks an oracle response that arrived after the game
	// moved on. The response is discarded, never applied.
	ErrStaleSuggestion = errors.New("stale suggestion discarded")
	ErrNoOracle        = errors.New("no oracle configured")
)

type GameMaster struct {
	mu     sync.Mutex
	rules  game.Rules
	state  *game.GameState
	oracle *oracle.Client
	now    func() time.Time
}

type Option func(*GameMaster)

// WithOracle wires the automated-opponent client.
func WithOracle(c *oracle.Client) Option {
	return func(gm *GameMaster) { gm.oracle = c }
}

// WithClock overrides the wall-clock source, for tests.
func WithClock(now func() time.Time) Option {
	return func(gm *GameMaster) { gm.now = now }
}

func New(r game.Rules, cfg game.Config, opts ...Option) *GameMaster {
	gm := &GameMaster{
		rules: r,
		state: game.NewGameState(r, cfg),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(gm)
	}
	return gm
}

// State returns the current canonical state. Callers may read it freely but
// must not feed it back into transitions themselves; the master does that.
func (gm *GameMaster) State() *game.GameState {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return gm.state
}

func (gm *GameMaster) Move(from, to game.Square, promotion game.PieceType) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return gm.apply(game.MoveAction{From: from, To: to, Promotion: promotion, Now: gm.now()})
}

func (gm *GameMaster) Undo() error {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return gm.apply(game.UndoAction{Now: gm.now()})
}

func (gm *GameMaster) Redo() error {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return gm.apply(game.RedoAction{Now: gm.now()})
}

func (gm *GameMaster) Pause() error {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return gm.apply(game.PauseAction{})
}

func (gm *GameMaster) CheckTimers() error {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return gm.apply(game.CheckTimersAction{Now: gm.now()})
}

// apply runs one transition and adopts its result. Callers hold the mutex.
func (gm *GameMaster) apply(act game.Action) error {
	next, err := gm.state.Apply(gm.rules, act)
	gm.state = next
	return err
}

// RequestAutoMove asks the oracle for the current position's move in the
// background and plays it when the response arrives, unless the game has moved
// on in the meantime. A failed call leaves the turn pending; there are no
// retries. done, when not nil, receives the outcome.
func (gm *GameMaster) RequestAutoMove(done func(error)) error {
	if gm.oracle == nil {
		return ErrNoOracle
	}
	gm.mu.Lock()
	position := gm.rules.PositionString()
	turn := gm.state.Turn
	gm.mu.Unlock()

	go func() {
		suggestion, err := gm.oracle.Suggest(position)
		if err != nil {
			log.Warn().Err(err).Msg("gamemaster: oracle call failed, turn stays pending")
		} else {
			err = gm.applySuggestion(position, turn, suggestion)
		}
		if done != nil {
			done(err)
		}
	}()
	return nil
}

// applySuggestion feeds an oracle response through the ordinary move
// transition. The response is discarded when the game has completed or is no
// longer at the position and turn it was requested for.
func (gm *GameMaster) applySuggestion(position string, turn game.Side, s oracle.Suggestion) error {
	from, err := game.ParseSquare(s.From)
	if err != nil {
		return err
	}
	to, err := game.ParseSquare(s.To)
	if err != nil {
		return err
	}
	promotion, err := game.ParsePieceType(s.Promotion)
	if err != nil {
		return err
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	if gm.state.Complete() || gm.state.Turn != turn || gm.rules.PositionString() != position {
		log.Info().
			Str("suggestion", s.From+s.To).
			Str("position", position).
			Msg("gamemaster: discarding stale suggestion")
		return ErrStaleSuggestion
	}
	return gm.apply(game.MoveAction{From: from, To: to, Promotion: promotion, Now: gm.now()})
}
