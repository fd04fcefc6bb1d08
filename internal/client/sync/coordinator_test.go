package sync

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	gosync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drfoodie/nutritrack/internal/client/models"
	"github.com/drfoodie/nutritrack/internal/client/remote"
	mealsrepo "github.com/drfoodie/nutritrack/internal/client/repositories/meals"
	profilerepo "github.com/drfoodie/nutritrack/internal/client/repositories/profile"
	"github.com/drfoodie/nutritrack/internal/common"
	"github.com/drfoodie/nutritrack/internal/logging"

	_ "modernc.org/sqlite"
)

// fakeRemote records calls and serves preset results.
type fakeRemote struct {
	mu gosync.Mutex

	authenticated bool

	pullSnap *remote.Snapshot
	pullErr  error

	pushedProfiles []models.Profile
	pushedMeals    []models.MealEntry
	deletedMeals   []string
	signedOut      bool

	pushErr error
}

func (f *fakeRemote) Register(ctx context.Context, email, password string) (remote.Session, error) {
	return remote.Session{}, nil
}
func (f *fakeRemote) Login(ctx context.Context, email, password string) (remote.Session, error) {
	return remote.Session{}, nil
}
func (f *fakeRemote) Resume(s remote.Session) {}
func (f *fakeRemote) Authenticated() bool     { return f.authenticated }

func (f *fakeRemote) Pull(ctx context.Context) (*remote.Snapshot, error) {
	if f.pullErr != nil {
		return nil, f.pullErr
	}
	return f.pullSnap, nil
}

func (f *fakeRemote) PushProfile(ctx context.Context, p models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushedProfiles = append(f.pushedProfiles, p)
	return nil
}

func (f *fakeRemote) PushMeal(ctx context.Context, e models.MealEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushedMeals = append(f.pushedMeals, e)
	return nil
}

func (f *fakeRemote) DeleteMeal(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pushErr != nil {
		return f.pushErr
	}
	f.deletedMeals = append(f.deletedMeals, id)
	return nil
}

func (f *fakeRemote) SignOut(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signedOut = true
	return nil
}

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE profile (
  id  INTEGER PRIMARY KEY CHECK (id = 1),
  doc TEXT NOT NULL
);
CREATE TABLE meals (
  id  TEXT PRIMARY KEY,
  ts  INTEGER NOT NULL,
  doc TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func newCoordinator(t *testing.T, r remote.Client) (*Coordinator, *sql.DB) {
	t.Helper()
	db := setupDB(t)
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	c := New(profilerepo.NewSQLiteRepository(db), mealsrepo.NewSQLiteRepository(db), r, log)
	return c, db
}

func testProfile() models.Profile {
	return models.Profile{Name: "Alex", HeightCm: 170, WeightKg: 70, OnboardingComplete: true, Theme: models.ThemeLight}
}

func TestLoadOnStartup_EmptyEverything(t *testing.T) {
	c, _ := newCoordinator(t, &fakeRemote{})

	snap, err := c.LoadOnStartup(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap.Profile)
	assert.Empty(t, snap.Meals)
}

func TestLoadOnStartup_LocalWins(t *testing.T) {
	// when a local snapshot exists, no remote pull happens at all
	r := &fakeRemote{authenticated: true, pullSnap: &remote.Snapshot{
		Profile: &models.Profile{Name: "remote"},
	}}
	c, db := newCoordinator(t, r)
	ctx := context.Background()

	doc, _ := json.Marshal(testProfile())
	_, err := db.Exec(`INSERT INTO profile (id, doc) VALUES (1, ?)`, string(doc))
	require.NoError(t, err)

	snap, err := c.LoadOnStartup(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap.Profile)
	assert.Equal(t, "Alex", snap.Profile.Name)
}

func TestLoadOnStartup_AdoptsRemoteWhenLocalAbsent(t *testing.T) {
	remoteProfile := testProfile()
	remoteProfile.Name = "FromRemote"
	r := &fakeRemote{authenticated: true, pullSnap: &remote.Snapshot{
		Profile: &remoteProfile,
		Meals: []models.MealEntry{
			{ID: "m1", Timestamp: 2000, Analysis: models.NutritionAnalysis{FoodName: "A", Calories: 100}},
			{ID: "m2", Timestamp: 1000, Analysis: models.NutritionAnalysis{FoodName: "B", Calories: 200}},
		},
	}}
	c, db := newCoordinator(t, r)
	ctx := context.Background()

	snap, err := c.LoadOnStartup(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap.Profile)
	assert.Equal(t, "FromRemote", snap.Profile.Name)
	assert.Len(t, snap.Meals, 2)

	// the pulled snapshot became the local one
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM meals`).Scan(&n))
	assert.Equal(t, 2, n)
	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM profile`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestLoadOnStartup_RemoteNotFoundStartsEmpty(t *testing.T) {
	r := &fakeRemote{authenticated: true, pullErr: common.ErrorNotFound}
	c, _ := newCoordinator(t, r)

	snap, err := c.LoadOnStartup(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap.Profile)
}

func TestLoadOnStartup_RemoteFailureIsSwallowed(t *testing.T) {
	r := &fakeRemote{authenticated: true, pullErr: errors.New("network down")}
	c, _ := newCoordinator(t, r)

	snap, err := c.LoadOnStartup(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap.Profile)
}

func TestLoadOnStartup_CorruptLocalProfileTreatedAsAbsent(t *testing.T) {
	c, db := newCoordinator(t, &fakeRemote{})
	_, err := db.Exec(`INSERT INTO profile (id, doc) VALUES (1, '{broken')`)
	require.NoError(t, err)

	snap, err := c.LoadOnStartup(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap.Profile)
}

func TestLoadOnStartup_CorruptMealRowIsSkipped(t *testing.T) {
	c, db := newCoordinator(t, &fakeRemote{})
	_, err := db.Exec(`INSERT INTO meals (id, ts, doc) VALUES ('bad', 2000, '{broken')`)
	require.NoError(t, err)
	good, _ := json.Marshal(models.MealEntry{ID: "good", Timestamp: 1000})
	_, err = db.Exec(`INSERT INTO meals (id, ts, doc) VALUES ('good', 1000, ?)`, string(good))
	require.NoError(t, err)

	snap, err := c.LoadOnStartup(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Meals, 1)
	assert.Equal(t, "good", snap.Meals[0].ID)
}

func TestSaveProfile_LocalThenBackgroundPush(t *testing.T) {
	r := &fakeRemote{authenticated: true}
	c, db := newCoordinator(t, r)
	ctx := context.Background()

	require.NoError(t, c.SaveProfile(ctx, testProfile()))
	c.Wait()

	var doc string
	require.NoError(t, db.QueryRow(`SELECT doc FROM profile WHERE id = 1`).Scan(&doc))
	assert.Contains(t, doc, `"Alex"`)

	require.Len(t, r.pushedProfiles, 1)
	assert.Equal(t, "Alex", r.pushedProfiles[0].Name)
}

func TestSaveProfile_PushFailureIsSwallowed(t *testing.T) {
	r := &fakeRemote{authenticated: true, pushErr: errors.New("remote down")}
	c, db := newCoordinator(t, r)

	// no error surfaces, and the local write is never rolled back
	require.NoError(t, c.SaveProfile(context.Background(), testProfile()))
	c.Wait()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM profile`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSaveProfile_NoSessionMeansNoPush(t *testing.T) {
	r := &fakeRemote{authenticated: false}
	c, _ := newCoordinator(t, r)

	require.NoError(t, c.SaveProfile(context.Background(), testProfile()))
	c.Wait()
	assert.Empty(t, r.pushedProfiles)
}

func TestSaveMealAndDeleteMeal(t *testing.T) {
	r := &fakeRemote{authenticated: true}
	c, db := newCoordinator(t, r)
	ctx := context.Background()

	e := models.MealEntry{ID: "m1", Timestamp: time.Now().UnixMilli(), Type: models.MealLunch,
		Analysis: models.NutritionAnalysis{FoodName: "Salad", Calories: 250}}
	require.NoError(t, c.SaveMeal(ctx, e))
	c.Wait()

	require.Len(t, r.pushedMeals, 1)
	assert.Equal(t, "m1", r.pushedMeals[0].ID)

	require.NoError(t, c.DeleteMeal(ctx, "m1"))
	c.Wait()
	assert.Equal(t, []string{"m1"}, r.deletedMeals)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM meals`).Scan(&n))
	assert.Zero(t, n)
}

func TestLogout_ClearsLocalAndSignsOut(t *testing.T) {
	r := &fakeRemote{authenticated: true}
	c, db := newCoordinator(t, r)
	ctx := context.Background()

	require.NoError(t, c.SaveProfile(ctx, testProfile()))
	require.NoError(t, c.SaveMeal(ctx, models.MealEntry{ID: "m1", Timestamp: 1}))
	c.Wait()

	require.NoError(t, c.Logout(ctx))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM profile`).Scan(&n))
	assert.Zero(t, n)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM meals`).Scan(&n))
	assert.Zero(t, n)
	assert.True(t, r.signedOut)
}
