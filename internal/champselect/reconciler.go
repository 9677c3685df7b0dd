// Package champselect drives one champion-select session: it waits for the
// player to lock in and keeps the client's generated rune pages, item set
// and summoner spells in step with the locked champion and the selected
// rune page.
package champselect

import (
	"context"
	"time"

	"runedraft/internal/build"
	"runedraft/internal/datasource"
	"runedraft/internal/feed"
	"runedraft/internal/lcu"
	"runedraft/internal/logger"
	"runedraft/internal/static"
)

// Client is the part of the game client the loop reads and writes.
type Client interface {
	GameflowPhase(ctx context.Context) (static.Phase, error)
	CurrentQueue(ctx context.Context) (*static.Queue, error)
	AssignedRole(ctx context.Context) (*static.Role, error)
	CurrentChampion(ctx context.Context) (int, error)

	RunePages(ctx context.Context) ([]lcu.RunePage, error)
	CreateRunePage(ctx context.Context, page build.RunePagePayload) error
	DeleteRunePage(ctx context.Context, id int64) error
	CurrentRunePage(ctx context.Context) (lcu.RunePage, error)
	SetCurrentRunePage(ctx context.Context, id int64) error

	ItemSets(ctx context.Context) (*lcu.ItemSets, error)
	ReplaceItemSets(ctx context.Context, sets *lcu.ItemSets) error

	SetSummonerSpells(ctx context.Context, spells build.SpellPair) error
}

var _ Client = (*lcu.Client)(nil)

// ChampionNamer resolves champion ids to display names.
type ChampionNamer interface {
	ChampionName(id int) string
}

// Params configures a Reconciler.
type Params struct {
	Client    Client
	Sources   datasource.Factory
	Champions ChampionNamer
	Emitter   feed.Emitter
	Logger    logger.Logger
	// PollInterval defaults to static.PollInterval.
	PollInterval time.Duration
}

// Reconciler runs the champion-select state machine.
type Reconciler struct {
	client    Client
	sources   datasource.Factory
	champions ChampionNamer
	emit      feed.Emitter
	log       logger.Logger
	interval  time.Duration
}

// NewReconciler creates a new Reconciler
func NewReconciler(p Params) *Reconciler {
	r := &Reconciler{
		client:    p.Client,
		sources:   p.Sources,
		champions: p.Champions,
		emit:      p.Emitter,
		log:       p.Logger,
		interval:  p.PollInterval,
	}
	if r.emit == nil {
		r.emit = feed.Nop{}
	}
	if r.log == nil {
		r.log = logger.NewNop()
	}
	if r.interval <= 0 {
		r.interval = static.PollInterval
	}
	return r
}

// session is read once when champion select starts.
type session struct {
	queue    *static.Queue
	assigned *static.Role
}

// loopState is carried from one inner-loop iteration to the next.
type loopState struct {
	prevChampion    string
	prevRole        *static.Role
	championChanged bool
	source          datasource.DataSource
}

// Run handles champion-select sessions until a game is in progress. Any
// client or data source error ends the run.
func (r *Reconciler) Run(ctx context.Context) error {
	for {
		phase, err := r.client.GameflowPhase(ctx)
		if err != nil {
			return err
		}
		if phase == static.PhaseInProgress {
			r.log.InfoW("game in progress, exiting")
			r.emit.Emit(feed.EventPhase, map[string]any{"phase": phase})
			return nil
		}

		r.log.InfoW("waiting for champ select")
		if err := r.waitForPhase(ctx, static.PhaseChampSelect); err != nil {
			return err
		}
		r.emit.Emit(feed.EventPhase, map[string]any{"phase": static.PhaseChampSelect})

		sess, err := r.readSession(ctx)
		if err != nil {
			return err
		}

		r.log.InfoW("waiting for champion lock in")
		if err := r.waitForChampion(ctx); err != nil {
			return err
		}

		if err := r.runSession(ctx, sess); err != nil {
			return err
		}
		r.log.InfoW("no longer in champ select")
		r.emit.Emit(feed.EventPhase, map[string]any{"phase": "left"})
	}
}

func (r *Reconciler) readSession(ctx context.Context) (session, error) {
	queue, err := r.client.CurrentQueue(ctx)
	if err != nil {
		return session{}, err
	}
	assigned, err := r.client.AssignedRole(ctx)
	if err != nil {
		return session{}, err
	}

	fields := []any{"queue", queue.LCUName}
	if assigned != nil {
		fields = append(fields, "assigned_role", assigned.DisplayName)
	}
	r.log.InfoW("entered champ select", fields...)
	return session{queue: queue, assigned: assigned}, nil
}

func (r *Reconciler) runSession(ctx context.Context, sess session) error {
	var state loopState
	for {
		phase, err := r.client.GameflowPhase(ctx)
		if err != nil {
			return err
		}
		if phase != static.PhaseChampSelect {
			return nil
		}

		if state, err = r.step(ctx, sess, state); err != nil {
			return err
		}
		if err := r.sleep(ctx); err != nil {
			return err
		}
	}
}

// step runs one reconciliation pass and returns the state for the next.
func (r *Reconciler) step(ctx context.Context, sess session, state loopState) (loopState, error) {
	championID, err := r.client.CurrentChampion(ctx)
	if err != nil {
		return state, err
	}
	champion := r.champions.ChampionName(championID)

	if champion != state.prevChampion {
		state.championChanged = true
		r.log.InfoW("locked in", "champion", champion, "champion_id", championID)
		r.emit.Emit(feed.EventChampion, map[string]any{"championId": championID, "champion": champion})

		state.source, err = r.sources(ctx, championID, sess.queue, sess.assigned)
		if err != nil {
			return state, err
		}
		if err := r.syncRunePages(ctx, state.source, sess.assigned); err != nil {
			return state, err
		}
	}

	role, err := r.currentPageRole(ctx, state.prevRole)
	if err != nil {
		return state, err
	}

	if state.championChanged || role != state.prevRole {
		if role == nil {
			r.log.WarnW("current rune page is not a generated page, skipping item set and spells", "champion", champion)
		} else {
			r.log.InfoW("rune page changed", "role", role.DisplayName)
			r.emit.Emit(feed.EventRole, map[string]any{"role": role.DisplayName})
			if err := r.syncItemSet(ctx, state.source, championID, champion, role); err != nil {
				return state, err
			}
			if err := r.syncSpells(ctx, state.source, role); err != nil {
				return state, err
			}
		}
	}

	state.prevChampion = champion
	state.prevRole = role
	state.championChanged = false
	return state, nil
}

// currentPageRole resolves the selected rune page to a role by name. A page
// that is not a generated one keeps the previous role.
func (r *Reconciler) currentPageRole(ctx context.Context, prev *static.Role) (*static.Role, error) {
	page, err := r.client.CurrentRunePage(ctx)
	if err != nil {
		return nil, err
	}
	if role := static.RoleByDisplayName(page.Name); role != nil {
		return role, nil
	}
	return prev, nil
}

func (r *Reconciler) waitForPhase(ctx context.Context, want static.Phase) error {
	for {
		phase, err := r.client.GameflowPhase(ctx)
		if err != nil {
			return err
		}
		if phase == want {
			return nil
		}
		if err := r.sleep(ctx); err != nil {
			return err
		}
	}
}

func (r *Reconciler) waitForChampion(ctx context.Context) error {
	for {
		id, err := r.client.CurrentChampion(ctx)
		if err != nil {
			return err
		}
		if id != 0 {
			return nil
		}
		if err := r.sleep(ctx); err != nil {
			return err
		}
	}
}

func (r *Reconciler) sleep(ctx context.Context) error {
	select {
	case <-time.After(r.interval):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
