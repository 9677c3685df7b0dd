package lcu

import (
	"context"
	"fmt"

	"runedraft/internal/static"
)

// GameflowPhase returns the current gameflow phase
func (c *Client) GameflowPhase(ctx context.Context) (static.Phase, error) {
	var phase string
	if err := c.Get(ctx, "/lol-gameflow/v1/gameflow-phase", &phase); err != nil {
		return "", fmt.Errorf("failed to get gameflow phase: %w", err)
	}
	return static.Phase(phase), nil
}

// GameflowSession is the subset of /lol-gameflow/v1/session we read.
type GameflowSession struct {
	Map struct {
		Name string `json:"name"`
	} `json:"map"`
}

// CurrentQueue returns the queue of the current lobby. Unknown maps fall
// back to the default queue.
func (c *Client) CurrentQueue(ctx context.Context) (*static.Queue, error) {
	var session GameflowSession
	if err := c.Get(ctx, "/lol-gameflow/v1/session", &session); err != nil {
		return nil, fmt.Errorf("failed to get gameflow session: %w", err)
	}

	queue, ok := static.QueueByLCUName(session.Map.Name)
	if !ok {
		c.log.WarnW("unknown map, using default queue", "map", session.Map.Name, "queue", static.DefaultQueue())
		return static.DefaultQueue(), nil
	}
	return queue, nil
}
