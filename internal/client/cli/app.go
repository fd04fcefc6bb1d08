package cli

import (
	"bufio"
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/drfoodie/nutritrack/internal/client/analysis"
	"github.com/drfoodie/nutritrack/internal/client/config"
	"github.com/drfoodie/nutritrack/internal/client/remote"
	"github.com/drfoodie/nutritrack/internal/client/services"
	"github.com/drfoodie/nutritrack/internal/client/storage"
	syncx "github.com/drfoodie/nutritrack/internal/client/sync"
	"github.com/drfoodie/nutritrack/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the CLI together: local storage, the remote account store, the
// analysis backend and the tracker holding session state.
type App struct {
	config  *config.Config
	tracker *services.Tracker
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	repos, err := storage.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	rc := remote.NewHTTPClient(c.ServerAddr, c.RequestTimeout)
	analyzer := analysis.NewGeminiAnalyzer(c.GeminiAPIKey, c.GeminiModel, c.RequestTimeout)
	coord := syncx.New(repos.Profile, repos.Meals, rc, logger)
	tracker := services.NewTracker(coord, rc, analyzer, repos.Metadata, logger)

	return &App{config: c, tracker: tracker, reader: bufio.NewReader(os.Stdin)}, nil
}

// Run loads the startup snapshot and hands control to the REPL. It blocks
// until the user exits.
func (a *App) Run(ctx context.Context) error {
	defer a.tracker.Close()

	if err := a.tracker.Start(ctx); err != nil {
		return err
	}

	printlnFn("NutriTrack CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
	return nil
}

func (a *App) isOnboarded() bool {
	return a.tracker.Onboarded()
}

// status builds the prompt suffix: the profile name when onboarded, plus the
// current theme for premium users who changed it.
func (a *App) status() string {
	p := a.tracker.Profile()
	if p == nil {
		return ""
	}
	s := p.Name
	if p.IsPremium {
		s += " *"
	}
	return "(" + s + ")"
}
