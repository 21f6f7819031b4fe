package oracle

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
)

var errNoMoves = errors.New("no legal moves in position")

// Suggester produces a move for the side to move in a serialized position.
type Suggester interface {
	Suggest(position string) (Suggestion, error)
}

// NewServeMux builds a mux serving /suggest backed by the given Suggester.
func NewServeMux(s Suggester) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/suggest", func(w http.ResponseWriter, r *http.Request) {
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
			return
		}
		suggestion, err := s.Suggest(req.Position)
		if err != nil {
			log.Warn().Str("position", req.Position).Err(err).Msg("oracle: no suggestion")
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(suggestion)
	})
	return mux
}

// ListenAndServe runs a suggestion server on addr.
func ListenAndServe(addr string, s Suggester) error {
	log.Info().Str("addr", addr).Msg("oracle: serving suggestions")
	return http.ListenAndServe(addr, NewServeMux(s))
}

// FirstLegal suggests the first legal move in the position. Deterministic
// rather than clever; it exists so the boundary can run end to end.
type FirstLegal struct{}

func (FirstLegal) Suggest(position string) (Suggestion, error) {
	fen, err := chess.FEN(position)
	if err != nil {
		return Suggestion{}, err
	}
	g := chess.NewGame(fen, chess.UseNotation(chess.UCINotation{}))
	moves := g.ValidMoves()
	if len(moves) == 0 {
		return Suggestion{}, errNoMoves
	}
	m := moves[0]
	s := Suggestion{From: m.S1().String(), To: m.S2().String()}
	if m.Promo() != chess.NoPieceType {
		s.Promotion = m.Promo().String()
	}
	return s, nil
}
