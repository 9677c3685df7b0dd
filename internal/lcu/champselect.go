package lcu

import (
	"context"
	"fmt"
	"strings"

	"runedraft/internal/build"
	"runedraft/internal/static"
)

// ChampSelectSession represents the champion select session data
type ChampSelectSession struct {
	GameID            int64               `json:"gameId"`
	MyTeam            []ChampSelectPlayer `json:"myTeam"`
	LocalPlayerCellID int                 `json:"localPlayerCellId"`
}

type ChampSelectPlayer struct {
	CellID           int    `json:"cellId"`
	ChampionID       int    `json:"championId"`
	AssignedPosition string `json:"assignedPosition"`
}

// LocalPlayer returns the local player's entry in myTeam.
func (s *ChampSelectSession) LocalPlayer() (ChampSelectPlayer, bool) {
	for _, p := range s.MyTeam {
		if p.CellID == s.LocalPlayerCellID {
			return p, true
		}
	}
	return ChampSelectPlayer{}, false
}

// ChampSelectSession returns the current champion select session
func (c *Client) ChampSelectSession(ctx context.Context) (*ChampSelectSession, error) {
	var session ChampSelectSession
	if err := c.Get(ctx, "/lol-champ-select/v1/session", &session); err != nil {
		return nil, fmt.Errorf("failed to get champ select session: %w", err)
	}
	return &session, nil
}

// AssignedRole returns the local player's assigned Summoner's Rift role, or
// nil when the queue has no position assignment.
func (c *Client) AssignedRole(ctx context.Context) (*static.Role, error) {
	session, err := c.ChampSelectSession(ctx)
	if err != nil {
		return nil, err
	}
	player, ok := session.LocalPlayer()
	if !ok {
		return nil, nil
	}
	return static.SummonersRift.RoleByLCUName(strings.ToLower(player.AssignedPosition)), nil
}

// CurrentChampion returns the locked-in champion id, or 0 when nothing is
// locked yet.
func (c *Client) CurrentChampion(ctx context.Context) (int, error) {
	var id int
	if err := c.Get(ctx, "/lol-champ-select/v1/current-champion", &id); err != nil {
		if IsNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get current champion: %w", err)
	}
	return id, nil
}

// SetSummonerSpells patches the local player's spell selection.
func (c *Client) SetSummonerSpells(ctx context.Context, spells build.SpellPair) error {
	if err := c.Patch(ctx, "/lol-champ-select/v1/session/my-selection", spells.Payload(), nil); err != nil {
		return fmt.Errorf("failed to set summoner spells: %w", err)
	}
	return nil
}
