// Package services hosts the application-state container. Tracker owns the
// in-memory {profile, meal log} for the session, applies the pure domain
// operations, and delegates every durable effect to the sync coordinator.
// All mutations originate from discrete user actions; there is no shared
// mutable state between sessions.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/drfoodie/nutritrack/internal/client/analysis"
	"github.com/drfoodie/nutritrack/internal/client/billing"
	"github.com/drfoodie/nutritrack/internal/client/meallog"
	"github.com/drfoodie/nutritrack/internal/client/models"
	"github.com/drfoodie/nutritrack/internal/client/quota"
	"github.com/drfoodie/nutritrack/internal/client/remote"
	"github.com/drfoodie/nutritrack/internal/client/repositories/metadata"
	syncx "github.com/drfoodie/nutritrack/internal/client/sync"
	"github.com/drfoodie/nutritrack/internal/logging"
	"github.com/drfoodie/nutritrack/internal/nutrition"
)

var (
	// ErrScanLimitReached is the quota guard branch: the free tier is
	// exhausted and the UI should answer with an upgrade prompt. It is an
	// expected flow outcome, not a fault.
	ErrScanLimitReached = errors.New("free scan limit reached")

	// ErrNoProfile means an operation that needs an onboarded profile ran
	// before onboarding completed.
	ErrNoProfile = errors.New("no active profile")
)

// MealInput collects what the user provides for one meal scan.
type MealInput struct {
	Type         models.MealType
	ImageJPEG    []byte
	ImageRef     string
	Description  string
	QuantityHint string
}

// Tracker is the single root owning session state.
type Tracker struct {
	coord    *syncx.Coordinator
	remote   remote.Client
	analyzer analysis.Analyzer
	meta     metadata.Repository
	log      logging.Logger

	now   func() time.Time
	newID func() string

	profile *models.Profile
	meals   []models.MealEntry
}

// NewTracker wires the container. State is empty until Start.
func NewTracker(coord *syncx.Coordinator, rc remote.Client, an analysis.Analyzer, meta metadata.Repository, log logging.Logger) *Tracker {
	return &Tracker{
		coord:    coord,
		remote:   rc,
		analyzer: an,
		meta:     meta,
		log:      log.With("component", "tracker"),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Start resumes any stored remote session and loads the startup snapshot.
// It is the one blocking load in the client; the caller stays in a loading
// state until it returns.
func (t *Tracker) Start(ctx context.Context) error {
	token, err := t.meta.Get(ctx, metadata.KeySessionToken)
	if err == nil && token != "" {
		accountID, _ := t.meta.Get(ctx, metadata.KeyAccountID)
		t.remote.Resume(remote.Session{Token: token, AccountID: accountID})
	}

	snap, err := t.coord.LoadOnStartup(ctx)
	if err != nil {
		return err
	}
	t.profile = snap.Profile
	t.meals = snap.Meals
	return nil
}

// Profile returns the active profile, or nil before onboarding.
func (t *Tracker) Profile() *models.Profile { return t.profile }

// Meals returns the session meal log, newest first.
func (t *Tracker) Meals() []models.MealEntry { return t.meals }

// Onboarded reports whether a completed profile is active.
func (t *Tracker) Onboarded() bool {
	return t.profile != nil && t.profile.OnboardingComplete
}

// CurrentTheme is the derived presentation theme. The core never touches
// presentation state beyond handing this value out.
func (t *Tracker) CurrentTheme() models.Theme {
	if t.profile == nil {
		return models.ThemeLight
	}
	return t.profile.Theme
}

// Onboard validates the draft and activates the new profile. Nothing is
// committed when validation fails.
func (t *Tracker) Onboard(ctx context.Context, d models.Draft) (models.Profile, error) {
	p, err := models.NewProfile(d, t.now())
	if err != nil {
		return models.Profile{}, err
	}
	if err := t.coord.SaveProfile(ctx, p); err != nil {
		return models.Profile{}, err
	}
	t.profile = &p
	return p, nil
}

// UpdateProfile applies a partial edit and persists the result.
func (t *Tracker) UpdateProfile(ctx context.Context, patch models.Patch) (models.Profile, error) {
	return t.mutateProfile(ctx, func(p models.Profile) models.Profile {
		return p.Update(patch, t.now())
	})
}

// ToggleGoal flips one goal's membership, never emptying the set.
func (t *Tracker) ToggleGoal(ctx context.Context, g nutrition.Goal) (models.Profile, error) {
	return t.mutateProfile(ctx, func(p models.Profile) models.Profile {
		return p.ToggleGoal(g, t.now())
	})
}

// SetTheme applies a theme choice under the entitlement invariant.
func (t *Tracker) SetTheme(ctx context.Context, theme models.Theme) (models.Profile, error) {
	return t.mutateProfile(ctx, func(p models.Profile) models.Profile {
		return p.SetTheme(theme)
	})
}

// Upgrade runs the opaque checkout flow. Success grants the premium
// entitlement; failure or cancellation changes nothing.
func (t *Tracker) Upgrade(ctx context.Context, checkout billing.Checkout) (models.Profile, error) {
	if t.profile == nil {
		return models.Profile{}, ErrNoProfile
	}
	if err := checkout.Run(ctx); err != nil {
		return *t.profile, err
	}
	return t.mutateProfile(ctx, func(p models.Profile) models.Profile {
		return p.GrantPremium()
	})
}

// LogMeal runs one scan: quota guard, analysis, entry creation, persistence,
// scan-count increment. On any analysis failure no partial entry exists and
// the scan is not counted.
func (t *Tracker) LogMeal(ctx context.Context, in MealInput) (*models.MealEntry, error) {
	if t.profile == nil {
		return nil, ErrNoProfile
	}
	if !quota.CanScan(*t.profile) {
		return nil, ErrScanLimitReached
	}

	result, err := t.analyzer.Analyze(ctx, analysis.Request{
		ImageJPEG:          in.ImageJPEG,
		Description:        in.Description,
		QuantityHint:       in.QuantityHint,
		Goals:              t.profile.Goals,
		DailyCalorieTarget: t.profile.DailyCalorieTarget,
		HealthConditions:   t.profile.HealthConditions,
	})
	if err != nil {
		return nil, err
	}

	entry := models.MealEntry{
		ID:           t.newID(),
		Timestamp:    t.now().UnixMilli(),
		Type:         in.Type,
		ImageRef:     in.ImageRef,
		Description:  in.Description,
		QuantityHint: in.QuantityHint,
		Analysis:     *result,
	}

	if err := t.coord.SaveMeal(ctx, entry); err != nil {
		return nil, err
	}
	t.meals = meallog.Append(t.meals, entry)

	if _, err := t.mutateProfile(ctx, models.Profile.IncrementScanCount); err != nil {
		// the meal is saved; a failed counter write is logged, not fatal
		t.log.Warn(ctx, "failed to persist scan count", "error", err)
	}

	return &entry, nil
}

// DeleteMeal removes one entry everywhere. Unknown ids are a no-op.
func (t *Tracker) DeleteMeal(ctx context.Context, id string) error {
	if err := t.coord.DeleteMeal(ctx, id); err != nil {
		return err
	}
	t.meals = meallog.Remove(t.meals, id)
	return nil
}

// Register creates a remote account and stores the session.
func (t *Tracker) Register(ctx context.Context, email, password string) error {
	s, err := t.remote.Register(ctx, email, password)
	if err != nil {
		return err
	}
	return t.storeSession(ctx, s)
}

// Login authenticates against the remote store. When no local snapshot
// exists yet, the account snapshot is pulled and adopted, same as the
// startup path.
func (t *Tracker) Login(ctx context.Context, email, password string) error {
	s, err := t.remote.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := t.storeSession(ctx, s); err != nil {
		return err
	}

	if t.profile == nil && len(t.meals) == 0 {
		snap, err := t.coord.LoadOnStartup(ctx)
		if err != nil {
			return err
		}
		t.profile = snap.Profile
		t.meals = snap.Meals
	}
	return nil
}

// Logout clears the local snapshot, the stored session and the in-memory
// state. Unsynced writes are not flushed first.
func (t *Tracker) Logout(ctx context.Context) error {
	if err := t.coord.Logout(ctx); err != nil {
		return err
	}
	_ = t.meta.Delete(ctx, metadata.KeySessionToken)
	_ = t.meta.Delete(ctx, metadata.KeyAccountID)
	t.profile = nil
	t.meals = nil
	return nil
}

// Close drains in-flight background pushes.
func (t *Tracker) Close() {
	t.coord.Wait()
}

func (t *Tracker) storeSession(ctx context.Context, s remote.Session) error {
	if err := t.meta.Set(ctx, metadata.KeySessionToken, s.Token); err != nil {
		return err
	}
	return t.meta.Set(ctx, metadata.KeyAccountID, s.AccountID)
}

func (t *Tracker) mutateProfile(ctx context.Context, fn func(models.Profile) models.Profile) (models.Profile, error) {
	if t.profile == nil {
		return models.Profile{}, ErrNoProfile
	}
	next := fn(*t.profile)
	if err := t.coord.SaveProfile(ctx, next); err != nil {
		return models.Profile{}, err
	}
	t.profile = &next
	return next, nil
}
