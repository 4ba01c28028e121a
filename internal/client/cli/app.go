package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/secretstash/internal/client/client"
	"github.com/dmitrijs2005/secretstash/internal/client/config"
	"github.com/dmitrijs2005/secretstash/internal/client/models"
	"github.com/dmitrijs2005/secretstash/internal/client/services"
)

type sessionService interface {
	Restore(ctx context.Context) error
	Register(ctx context.Context, email string, password []byte) (int64, error)
	Login(ctx context.Context, email string, password []byte) (bool, error)
	SetUsername(ctx context.Context, username string) error
	Logout(ctx context.Context) error
	Current() services.Session
	LoggedIn() bool
	Ping(ctx context.Context) error
	Me(ctx context.Context) (*models.Profile, error)
}

type gameService interface {
	Secrets(ctx context.Context) ([]models.Secret, error)
	Post(ctx context.Context, message string, latitude, longitude float64) error
	Claim(ctx context.Context, secretID int64) error
	Stash(ctx context.Context) ([]models.StashEntry, error)
	Ranking(ctx context.Context) ([]models.RankingEntry, error)
}

type App struct {
	config  *config.Config
	db      *sql.DB
	session sessionService
	game    gameService
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}

	api := client.NewRESTClient(c.ServerURL, c.RequestTimeout)
	ss := services.NewSessionService(api, db)
	gs := services.NewGameService(api, ss)

	return &App{
		config:  c,
		db:      db,
		session: ss,
		game:    gs,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run restores the saved session and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) error {
	if a.db != nil {
		defer a.db.Close()
	}

	if err := a.session.Restore(ctx); err != nil {
		return err
	}

	pctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	err := a.session.Ping(pctx)
	cancel()
	if err != nil {
		fmt.Fprintf(a.out, "Warning: server at %s is not reachable: %s\n", a.config.ServerURL, describeError(err))
	}

	a.greet()
	runREPL(ctx, a, a.status, a.reader, a.out)
	return nil
}

func (a *App) greet() {
	cur := a.session.Current()
	switch {
	case a.session.LoggedIn():
		fmt.Fprintf(a.out, "Welcome back, %s! Type help for commands.\n", cur.Username)
	case cur.ProfileID != 0:
		fmt.Fprintln(a.out, "Your last login still needs a username. Type username to pick one.")
	default:
		fmt.Fprintln(a.out, "Type help for commands.")
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.LoggedIn()
}

// status is shown in the prompt.
func (a *App) status() string {
	cur := a.session.Current()
	switch {
	case a.session.LoggedIn():
		return cur.Username
	case cur.ProfileID != 0:
		return "(no username)"
	default:
		return "guest"
	}
}
