// Package oracle is the automated-opponent boundary: a client that posts a
// serialized position and receives a suggested move, and a matching HTTP
// server so another process can do the suggesting. The core never talks to
// this package; suggestions are fed back through the ordinary move transition.
package oracle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Request carries the position a suggestion is wanted for.
type Request struct {
	Position string `json:"position"`
}

// Suggestion is a move proposed for the side to move in the requested position.
type Suggestion struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

type Client struct {
	serverURL string
}

func NewClient(serverURL string) *Client {
	return &Client{serverURL: serverURL}
}

// Suggest asks the server for a move in the given position. Blocks until the
// server answers or the transport fails; callers own any timeout or retry
// policy (there is none here).
func (c *Client) Suggest(position string) (Suggestion, error) {
	data, err := json.Marshal(Request{Position: position})
	if err != nil {
		return Suggestion{}, err
	}
	resp, err := http.Post(c.serverURL+"/suggest", "application/json", bytes.NewBuffer(data))
	if err != nil {
		return Suggestion{}, fmt.Errorf("oracle: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Suggestion{}, fmt.Errorf("oracle: server returned %s", resp.Status)
	}
	var s Suggestion
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return Suggestion{}, fmt.Errorf("oracle: bad response: %w", err)
	}
	return s, nil
}
