package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/secretstash/internal/client/models"
)

// RESTClient implements Client over HTTP/JSON.
type RESTClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type errorBody struct {
	Message string `json:"message"`
}

// do sends in as JSON (when non-nil) and decodes a 2xx body into out (when
// non-nil). Transport failures wrap ErrUnavailable, non-2xx answers become
// *APIError.
func (c *RESTClient) do(ctx context.Context, method, path, token string, in any, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		return &APIError{StatusCode: resp.StatusCode, Message: eb.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *RESTClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", "", nil, nil)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *RESTClient) Register(ctx context.Context, email string, password string) (int64, error) {
	var out struct {
		ProfileID int64 `json:"profile_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/profiles/register", "", credentials{email, password}, &out); err != nil {
		return 0, err
	}
	return out.ProfileID, nil
}

func (c *RESTClient) Login(ctx context.Context, email string, password string) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/profiles/login", "", credentials{email, password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) SetUsername(ctx context.Context, profileID int64, username string) (*models.LoginResponse, error) {
	in := struct {
		Username string `json:"username"`
	}{username}

	var out models.LoginResponse
	path := "/profiles/" + strconv.FormatInt(profileID, 10) + "/username"
	if err := c.do(ctx, http.MethodPatch, path, "", in, &out); err != nil {
		return nil, err
	}
	out.HasUsername = true
	return &out, nil
}

func (c *RESTClient) Me(ctx context.Context, token string) (*models.Profile, error) {
	var out struct {
		User models.Profile `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/profiles/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *RESTClient) Secrets(ctx context.Context, token string) ([]models.Secret, error) {
	var out struct {
		SecretMessages []models.Secret `json:"secretMessages"`
	}
	if err := c.do(ctx, http.MethodGet, "/game/getAllMessages", token, nil, &out); err != nil {
		return nil, err
	}
	return out.SecretMessages, nil
}

func (c *RESTClient) PostSecret(ctx context.Context, token string, message string, latitude, longitude float64) error {
	in := struct {
		Message   string  `json:"message"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}{message, latitude, longitude}
	return c.do(ctx, http.MethodPost, "/game/postNewSecret", token, in, nil)
}

func (c *RESTClient) Claim(ctx context.Context, token string, secretID int64) error {
	path := "/game/secrets/" + strconv.FormatInt(secretID, 10) + "/stash"
	return c.do(ctx, http.MethodPost, path, token, nil, nil)
}

func (c *RESTClient) Stash(ctx context.Context, token string) ([]models.StashEntry, error) {
	var out struct {
		StashedSecrets []models.StashEntry `json:"stashedSecrets"`
	}
	if err := c.do(ctx, http.MethodGet, "/game/stash", token, nil, &out); err != nil {
		return nil, err
	}
	return out.StashedSecrets, nil
}

func (c *RESTClient) Ranking(ctx context.Context, token string) ([]models.RankingEntry, error) {
	var out struct {
		Ranking []models.RankingEntry `json:"ranking"`
	}
	if err := c.do(ctx, http.MethodGet, "/game/ranking", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Ranking, nil
}

var _ Client = (*RESTClient)(nil)
