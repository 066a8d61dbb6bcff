package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/physicalai/companion/internal/client/api"
	"github.com/physicalai/companion/internal/client/config"
	"github.com/physicalai/companion/internal/client/llm"
	"github.com/physicalai/companion/internal/client/services"
	"github.com/physicalai/companion/internal/client/storage"
	"github.com/physicalai/companion/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	session services.SessionService
	chat    *services.ChatService
	chapter *services.ChapterService
	reader  *bufio.Reader
	auth    authPrompt

	chapterText  string
	chapterTitle string
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	store := storage.NewSQLiteStore(db)

	apiClient := api.NewHTTPClient(c.BackendURL, logger)

	var session services.SessionService
	if c.AuthMode == config.AuthModeLocal {
		session = services.NewLocalSessionService(store, logger)
	} else {
		session = services.NewSessionService(apiClient, store, logger)
	}

	// The key may come from config or from an earlier "setkey" persisted in
	// the store; config wins.
	key := c.GeminiAPIKey
	if key == "" {
		if raw, err := store.Get(ctx, storage.KeyGeminiAPIKey); err == nil {
			key = string(raw)
		}
	}
	var generator services.Generator
	if key != "" {
		generator = llm.NewGeminiClient(key, c.GeminiModel, logger)
	}

	return &App{
		config:  c,
		logger:  logger,
		session: session,
		chat:    services.NewChatService(apiClient, c.QueryTimeout, logger),
		chapter: services.NewChapterService(apiClient, session, generator, c.AuthMode == config.AuthModeBackend, logger),
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Current() != nil
}

func (a *App) status() string {
	if u := a.session.Current(); u != nil {
		return fmt.Sprintf("(%s)", u.Email)
	}
	return ""
}

// Run restores a persisted session, then hands control to the REPL. It
// blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	if user, err := a.session.FetchCurrentUser(ctx); err == nil && user != nil {
		fmt.Printf("Welcome back, %s!\n", user.Name)
	}

	fmt.Println("Physical AI companion (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}
