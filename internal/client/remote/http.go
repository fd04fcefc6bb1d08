package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/drfoodie/nutritrack/internal/client/models"
	"github.com/drfoodie/nutritrack/internal/common"
)

// HTTPClient implements Client over the account server's JSON API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	session Session
}

// NewHTTPClient returns a client for the server at baseURL
// (e.g. "http://localhost:8080").
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token     string `json:"token"`
	AccountID string `json:"accountId"`
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) (Session, error) {
	return c.authenticate(ctx, "/api/register", email, password)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (Session, error) {
	return c.authenticate(ctx, "/api/login", email, password)
}

func (c *HTTPClient) authenticate(ctx context.Context, path, email, password string) (Session, error) {
	var out sessionResponse
	err := c.do(ctx, http.MethodPost, path, credentialsRequest{Email: email, Password: password}, &out)
	if err != nil {
		return Session{}, err
	}
	c.session = Session{Token: out.Token, AccountID: out.AccountID}
	return c.session, nil
}

func (c *HTTPClient) Resume(s Session) {
	c.session = s
}

func (c *HTTPClient) Authenticated() bool {
	return c.session.Token != ""
}

func (c *HTTPClient) Pull(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	if err := c.do(ctx, http.MethodGet, "/api/snapshot", nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *HTTPClient) PushProfile(ctx context.Context, p models.Profile) error {
	return c.do(ctx, http.MethodPut, "/api/profile", p, nil)
}

func (c *HTTPClient) PushMeal(ctx context.Context, e models.MealEntry) error {
	return c.do(ctx, http.MethodPut, "/api/meals/"+url.PathEscape(e.ID), e, nil)
}

func (c *HTTPClient) DeleteMeal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/meals/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) SignOut(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/signout", nil, nil)
	c.session = Session{}
	return err
}

// do performs one JSON round trip. Status mapping: 404 → ErrorNotFound,
// 401/403 → ErrorUnauthorized, any other non-2xx → wrapped status error.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrorNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return common.ErrorUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("server returned %s", resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
