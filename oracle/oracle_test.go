package oracle

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func TestFirstLegal(t *testing.T) {
	t.Run("suggests a move in the starting position", func(t *testing.T) {
		s, err := FirstLegal{}.Suggest(startFEN)

		require.NoError(t, err)
		require.NotEmpty(t, s.From)
		require.NotEmpty(t, s.To)
	})

	t.Run("rejects garbage positions", func(t *testing.T) {
		_, err := FirstLegal{}.Suggest("not a position")

		require.Error(t, err)
	})

	t.Run("no moves in a mated position", func(t *testing.T) {
		// Fool's mate, white to move.
		_, err := FirstLegal{}.Suggest("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")

		require.Error(t, err)
	})
}

func TestClientServer(t *testing.T) {
	srv := httptest.NewServer(NewServeMux(FirstLegal{}))
	defer srv.Close()
	client := NewClient(srv.URL)

	t.Run("round trip", func(t *testing.T) {
		s, err := client.Suggest(startFEN)

		require.NoError(t, err)
		require.NotEmpty(t, s.From)
		require.NotEmpty(t, s.To)
	})

	t.Run("server error surfaces as a client error", func(t *testing.T) {
		_, err := client.Suggest("not a position")

		require.Error(t, err)
	})
}
