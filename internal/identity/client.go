package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"

	"github.com/pkg/errors"
)

type (
	// A Config holds everything needed to reach the identity provider.
	Config struct {
		// Endpoint is the base URL of the provider's auth API.
		Endpoint string
		// PublicKey is the provider's public API key sent with every request.
		PublicKey string
	}

	p      map[string]any
	client struct {
		http *http.Client
		cfg  Config
	}
)

// NewDefaultClient returns a new Client with default HTTP client.
func NewDefaultClient(cfg Config) (Client, error) {
	return NewClient(http.DefaultClient, cfg)
}

// NewClient returns a new Client.
// There is no shared state beyond the underlying HTTP client, so a single
// instance is safe for concurrent requests.
func NewClient(c *http.Client, cfg Config) (Client, error) {
	_, err := url.Parse(cfg.Endpoint)
	return &client{http: c, cfg: cfg}, errors.Wrap(err, "could not parse endpoint")
}

func (c *client) SignUp(ctx context.Context, email, password string) (*Registration, error) {
	res, err := c.post(ctx, "/signup", "", p{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, parseError(res.Body, res.StatusCode)
	}

	// The provider answers with a bare user record when an email confirmation
	// is pending, and with a session wrapping the user otherwise.
	var signup struct {
		Session
		ID    string `json:"id"`
		Email string `json:"email"`
		User  *User  `json:"user"`
	}
	dec := json.NewDecoder(res.Body)
	if err := dec.Decode(&signup); err != nil {
		return nil, errors.Wrap(err, "could not parse response")
	}

	if signup.AccessToken == "" {
		return &Registration{User: &User{ID: signup.ID, Email: signup.Email}}, nil
	}
	return &Registration{User: signup.User, Session: &signup.Session}, nil
}

func (c *client) SignIn(ctx context.Context, email, password string) (*Registration, error) {
	res, err := c.post(ctx, "/token", "grant_type=password", p{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, parseError(res.Body, res.StatusCode)
	}

	var login struct {
		Session
		User *User `json:"user"`
	}
	dec := json.NewDecoder(res.Body)
	if err := dec.Decode(&login); err != nil {
		return nil, errors.Wrap(err, "could not parse response")
	}

	return &Registration{User: login.User, Session: &login.Session}, nil
}

func (c *client) UserFromToken(ctx context.Context, token string) (*User, error) {
	req, err := c.request(ctx, http.MethodGet, "/user", "", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))

	res, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "could not perform request")
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, parseError(res.Body, res.StatusCode)
	}

	var user User
	dec := json.NewDecoder(res.Body)
	return &user, errors.Wrap(dec.Decode(&user), "could not parse response")
}

func (c *client) post(ctx context.Context, endpoint, query string, params p) (*http.Response, error) {
	req, err := c.request(ctx, http.MethodPost, endpoint, query, params)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	return res, errors.Wrap(err, "could not perform request")
}

func (c *client) request(ctx context.Context, method, endpoint, query string, params p) (*http.Request, error) {
	u, err := url.Parse(c.cfg.Endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse endpoint")
	}
	u.Path = path.Join(u.Path, endpoint)
	u.RawQuery = query

	var body *bytes.Reader
	if params != nil {
		payload, err := json.Marshal(params)
		if err != nil {
			return nil, errors.Wrap(err, "could not serialize params")
		}
		body = bytes.NewReader(payload)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	req.Header.Add("apikey", c.cfg.PublicKey)

	return req, nil
}
