// Package sync reconciles the local durable snapshot with the optional
// remote account store.
//
// Policy: local is the source of truth for the active session. Local writes
// settle synchronously before anything else proceeds; remote pushes are
// fire-and-forget background tasks whose failures are logged and swallowed.
// Two pushes issued in quick succession carry no ordering guarantee — the
// store's last-write-wins semantics resolve the race. The only blocking
// remote operation is the one-time startup pull, and it runs only when an
// authenticated session exists and no local snapshot does.
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/drfoodie/nutritrack/internal/client/models"
	"github.com/drfoodie/nutritrack/internal/client/remote"
	"github.com/drfoodie/nutritrack/internal/client/repositories/meals"
	"github.com/drfoodie/nutritrack/internal/client/repositories/profile"
	"github.com/drfoodie/nutritrack/internal/common"
	"github.com/drfoodie/nutritrack/internal/logging"
)

const defaultPushTimeout = 10 * time.Second

// Snapshot is the state handed to the application on startup.
type Snapshot struct {
	Profile *models.Profile
	Meals   []models.MealEntry
}

// Coordinator owns the local snapshot and mirrors it to the remote store.
type Coordinator struct {
	profiles profile.Repository
	meals    meals.Repository
	remote   remote.Client
	log      logging.Logger

	pushTimeout time.Duration
	now         func() time.Time

	wg sync.WaitGroup
}

// New builds a coordinator over the given repositories and remote client.
func New(p profile.Repository, m meals.Repository, r remote.Client, log logging.Logger) *Coordinator {
	return &Coordinator{
		profiles:    p,
		meals:       m,
		remote:      r,
		log:         log.With("component", "sync"),
		pushTimeout: defaultPushTimeout,
		now:         time.Now,
	}
}

// LoadOnStartup reads the local snapshot first so the UI can render
// immediately. A corrupt or absent document is "no saved state", not an
// error. When the remote session is authenticated and no local snapshot
// exists, a one-time remote pull runs to completion and its result is
// adopted as the new local snapshot.
func (c *Coordinator) LoadOnStartup(ctx context.Context) (*Snapshot, error) {
	snap := c.loadLocal(ctx)

	if snap.Profile == nil && len(snap.Meals) == 0 && c.remote.Authenticated() {
		remoteSnap, err := c.remote.Pull(ctx)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			c.log.Info(ctx, "no remote snapshot for account")
		case err != nil:
			c.log.Warn(ctx, "remote pull failed, starting empty", "error", err)
		default:
			c.adopt(ctx, remoteSnap)
			snap = &Snapshot{Profile: remoteSnap.Profile, Meals: remoteSnap.Meals}
		}
	}

	return snap, nil
}

func (c *Coordinator) loadLocal(ctx context.Context) *Snapshot {
	snap := &Snapshot{}

	doc, err := c.profiles.Get(ctx)
	switch {
	case errors.Is(err, common.ErrorNotFound):
	case err != nil:
		c.log.Warn(ctx, "local profile unreadable, treating as absent", "error", err)
	default:
		p, derr := models.DecodeProfile(doc, c.now())
		if derr != nil {
			c.log.Warn(ctx, "local profile corrupt, treating as absent", "error", derr)
		} else {
			snap.Profile = &p
		}
	}

	docs, err := c.meals.GetAll(ctx)
	if err != nil {
		c.log.Warn(ctx, "local meals unreadable, treating as absent", "error", err)
		return snap
	}
	for _, d := range docs {
		var e models.MealEntry
		if err := json.Unmarshal(d, &e); err != nil {
			c.log.Warn(ctx, "skipping corrupt meal record", "error", err)
			continue
		}
		snap.Meals = append(snap.Meals, e)
	}

	return snap
}

// adopt writes a pulled remote snapshot into the local store. Failures here
// are logged; the in-memory copy still serves the session.
func (c *Coordinator) adopt(ctx context.Context, snap *remote.Snapshot) {
	if snap.Profile != nil {
		if doc, err := json.Marshal(snap.Profile); err == nil {
			if err := c.profiles.Save(ctx, doc); err != nil {
				c.log.Warn(ctx, "failed to adopt remote profile locally", "error", err)
			}
		}
	}
	for _, e := range snap.Meals {
		doc, err := json.Marshal(e)
		if err != nil {
			continue
		}
		if err := c.meals.Upsert(ctx, e.ID, e.Timestamp, doc); err != nil {
			c.log.Warn(ctx, "failed to adopt remote meal locally", "id", e.ID, "error", err)
		}
	}
}

// SaveProfile writes the profile locally (must settle) and then pushes the
// same value to the remote store in the background when a session is active.
// The remote merges fields rather than replacing the document; a failed push
// never surfaces to the caller and never rolls back the local write.
func (c *Coordinator) SaveProfile(ctx context.Context, p models.Profile) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := c.profiles.Save(ctx, doc); err != nil {
		return err
	}

	c.push("profile push", func(ctx context.Context) error {
		return c.remote.PushProfile(ctx, p)
	})
	return nil
}

// SaveMeal writes one meal locally and pushes it in the background, keyed by
// its own identifier so concurrent meal pushes don't contend.
func (c *Coordinator) SaveMeal(ctx context.Context, e models.MealEntry) error {
	doc, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := c.meals.Upsert(ctx, e.ID, e.Timestamp, doc); err != nil {
		return err
	}

	c.push("meal push", func(ctx context.Context) error {
		return c.remote.PushMeal(ctx, e)
	})
	return nil
}

// DeleteMeal removes a meal locally and mirrors the delete in the
// background. Double-delete is idempotent on both sides.
func (c *Coordinator) DeleteMeal(ctx context.Context, id string) error {
	if err := c.meals.DeleteByID(ctx, id); err != nil {
		return err
	}

	c.push("meal delete", func(ctx context.Context) error {
		return c.remote.DeleteMeal(ctx, id)
	})
	return nil
}

// Logout clears the whole local snapshot and signs out of the remote session
// best-effort. Pending unsynced pushes are not flushed; whatever had not
// reached the remote before logout is lost there. That window is accepted.
func (c *Coordinator) Logout(ctx context.Context) error {
	if err := c.profiles.Clear(ctx); err != nil {
		return err
	}
	if err := c.meals.Clear(ctx); err != nil {
		return err
	}

	if c.remote.Authenticated() {
		if err := c.remote.SignOut(ctx); err != nil {
			c.log.Warn(ctx, "remote sign-out failed", "error", err)
		}
	}
	return nil
}

// Wait blocks until all in-flight background pushes finish. Used on
// shutdown and in tests; user flows never wait on it.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// push runs fn as a fire-and-forget background task with its own timeout
// context, so an unmounting caller discarding its context cannot cancel an
// already-issued push.
func (c *Coordinator) push(name string, fn func(ctx context.Context) error) {
	if !c.remote.Authenticated() {
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.pushTimeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			c.log.Warn(ctx, name+" failed, local state stands", "error", err)
		}
	}()
}
