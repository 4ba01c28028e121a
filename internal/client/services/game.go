package services

import (
	"context"

	"github.com/dmitrijs2005/secretstash/internal/client/client"
	"github.com/dmitrijs2005/secretstash/internal/client/models"
)

// GameService runs game calls with the token of the current session.
type GameService struct {
	client  client.Client
	session *SessionService
}

func NewGameService(c client.Client, session *SessionService) *GameService {
	return &GameService{client: c, session: session}
}

func (g *GameService) Secrets(ctx context.Context) ([]models.Secret, error) {
	token, err := g.session.token()
	if err != nil {
		return nil, err
	}
	items, err := g.client.Secrets(ctx, token)
	if err != nil {
		return nil, g.session.checkAuth(ctx, err)
	}
	return items, nil
}

func (g *GameService) Post(ctx context.Context, message string, latitude, longitude float64) error {
	token, err := g.session.token()
	if err != nil {
		return err
	}
	if err := g.client.PostSecret(ctx, token, message, latitude, longitude); err != nil {
		return g.session.checkAuth(ctx, err)
	}
	return nil
}

// Claim moves someone else's secret into the player's stash.
func (g *GameService) Claim(ctx context.Context, secretID int64) error {
	token, err := g.session.token()
	if err != nil {
		return err
	}
	if err := g.client.Claim(ctx, token, secretID); err != nil {
		return g.session.checkAuth(ctx, err)
	}
	return nil
}

func (g *GameService) Stash(ctx context.Context) ([]models.StashEntry, error) {
	token, err := g.session.token()
	if err != nil {
		return nil, err
	}
	items, err := g.client.Stash(ctx, token)
	if err != nil {
		return nil, g.session.checkAuth(ctx, err)
	}
	return items, nil
}

func (g *GameService) Ranking(ctx context.Context) ([]models.RankingEntry, error) {
	token, err := g.session.token()
	if err != nil {
		return nil, err
	}
	items, err := g.client.Ranking(ctx, token)
	if err != nil {
		return nil, g.session.checkAuth(ctx, err)
	}
	return items, nil
}
