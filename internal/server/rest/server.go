// Package rest exposes the game over HTTP/JSON. Routes live under /api and
// every response carries {success, statusCode, message}.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/secretstash/internal/logging"
	"github.com/dmitrijs2005/secretstash/internal/server/config"
	"github.com/dmitrijs2005/secretstash/internal/server/models"
	"github.com/dmitrijs2005/secretstash/internal/server/services"
	"github.com/go-playground/validator/v10"
)

const shutdownTimeout = 10 * time.Second

// ProfileService is the subset of services.ProfileService used by handlers.
type ProfileService interface {
	RegisterUser(ctx context.Context, email string, passwordHash string) (int64, error)
	LoginUser(ctx context.Context, email string, password string) (*services.LoginResult, error)
	RegisterUsername(ctx context.Context, profileID int64, username string) (*services.LoginResult, error)
	GetProfileInfo(ctx context.Context, profileID int64) (*models.Profile, error)
}

// GameService is the subset of services.GameService used by handlers.
type GameService interface {
	GetAllMessages(ctx context.Context) ([]models.Secret, error)
	PostNewSecret(ctx context.Context, message string, ownerID int64, latitude, longitude float64) error
	GetStashedSecrets(ctx context.Context, profileID int64) ([]models.StashEntry, error)
	GetAllRanking(ctx context.Context) ([]models.RankingEntry, error)
	DeleteAndStashSecret(ctx context.Context, claimerID int64, secretID int64) error
}

// Pinger reports whether the store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	address     string
	logger      logging.Logger
	profiles    ProfileService
	game        GameService
	db          Pinger
	jwtSecret   []byte
	corsOrigins []string
	authLimiter *ipRateLimiter
	validate    *validator.Validate
}

func NewServer(cfg *config.Config, l logging.Logger, ps ProfileService, gs GameService, db Pinger) *Server {
	return &Server{
		address:     cfg.EndpointAddrHTTP,
		logger:      l.With("module", "rest_server"),
		profiles:    ps,
		game:        gs,
		db:          db,
		jwtSecret:   []byte(cfg.SecretKey),
		corsOrigins: cfg.CORSAllowedOrigins,
		authLimiter: newIPRateLimiter(cfg.AuthRateLimit),
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(sctx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-shutdownErr
}
